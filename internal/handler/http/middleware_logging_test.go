package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
)

// makeRequest puts a buffer-backed zerolog logger into the request context
// the same way withTraceID does.
func makeRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := zerolog.New(buf).With().Timestamp().Logger()
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		path             string
		handlerStatus    int
		handlerResponse  string
		checkLogContains []string
	}{
		{
			name:            "GET vault 200",
			method:          http.MethodGet,
			path:            "/api/vault",
			handlerStatus:   http.StatusOK,
			handlerResponse: "{}",
			checkLogContains: []string{
				`"level":"info"`,
				`"method":"GET"`,
				`"uri":"/api/vault"`,
				`"status":200`,
				`"duration":`,
				`"size":2`,
			},
		},
		{
			name:            "POST version 201",
			method:          http.MethodPost,
			path:            "/api/vault/versions",
			handlerStatus:   http.StatusCreated,
			handlerResponse: "Created",
			checkLogContains: []string{`"level":"info"`, `"status":201`},
		},
		{
			name:          "DELETE device 204 no body",
			method:        http.MethodDelete,
			path:          "/api/devices/abc",
			handlerStatus: http.StatusNoContent,
			checkLogContains: []string{
				`"uri":"/api/devices/abc"`,
				`"status":204`,
				`"size":0`,
			},
		},
		{
			name:             "revoked device is a warning",
			method:           http.MethodPut,
			path:             "/api/vault",
			handlerStatus:    http.StatusForbidden,
			handlerResponse:  "device revoked",
			checkLogContains: []string{`"level":"warn"`, `"status":403`},
		},
		{
			name:             "server failure is an error",
			method:           http.MethodGet,
			path:             "/api/vault",
			handlerStatus:    http.StatusInternalServerError,
			handlerResponse:  "internal server error",
			checkLogContains: []string{`"level":"error"`, `"status":500`},
		},
		{
			name:             "query parameters preserved in uri",
			method:           http.MethodGet,
			path:             "/api/vault/versions?limit=10",
			handlerStatus:    http.StatusOK,
			handlerResponse:  "[]",
			checkLogContains: []string{`"uri":"/api/vault/versions?limit=10"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				if tt.handlerResponse != "" {
					_, _ = w.Write([]byte(tt.handlerResponse))
				}
			})

			rr := httptest.NewRecorder()
			withLogging(next).ServeHTTP(rr, makeRequest(tt.method, tt.path, &logBuf))

			assert.Equal(t, tt.handlerStatus, rr.Code)
			for _, expected := range tt.checkLogContains {
				assert.Contains(t, logBuf.String(), expected)
			}
		})
	}
}

func TestWithLogging_ResponseSize(t *testing.T) {
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 1024)))
		_, _ = w.Write([]byte(strings.Repeat("b", 24)))
	})

	withLogging(next).ServeHTTP(httptest.NewRecorder(), makeRequest(http.MethodGet, "/api/vault", &logBuf))

	assert.Contains(t, logBuf.String(), `"size":1048`)
}

// без явного WriteHeader статус считается 200
func TestWithLogging_NoStatusWritten(t *testing.T) {
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rr := httptest.NewRecorder()
	withLogging(next).ServeHTTP(rr, makeRequest(http.MethodGet, "/api/version", &logBuf))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, logBuf.String(), `"status":200`)
	assert.Contains(t, logBuf.String(), `"level":"info"`)
}

func TestWithLogging_DurationAccuracy(t *testing.T) {
	delay := 30 * time.Millisecond
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
	})

	start := time.Now()
	withLogging(next).ServeHTTP(httptest.NewRecorder(), makeRequest(http.MethodGet, "/slow", &logBuf))

	assert.GreaterOrEqual(t, time.Since(start), delay)
	assert.Contains(t, logBuf.String(), `"duration":`)
}

func TestWithLogging_PanicNotSuppressed(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	assert.Panics(t, func() {
		withLogging(next).ServeHTTP(httptest.NewRecorder(), makeRequest(http.MethodGet, "/panic", &bytes.Buffer{}))
	}, "withLogging should not recover panics")
}

func TestWithLogging_NopLogger(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	nop := logger.Nop()
	req := httptest.NewRequest(http.MethodGet, "/nop", nil)
	req = req.WithContext(nop.Logger.WithContext(req.Context()))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() { withLogging(next).ServeHTTP(rr, req) })
	assert.Equal(t, http.StatusOK, rr.Code)
}
