package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
)

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantKeep bool // false: заменён новым UUID
	}{
		{name: "reused", incoming: "sync-7f3a", wantKeep: true},
		{name: "uuid reused", incoming: "550e8400-e29b-41d4-a716-446655440000", wantKeep: true},
		{name: "missing"},
		{name: "whitespace", incoming: "bad id\twith spaces"},
		{name: "non ascii", incoming: "трасса"},
		{name: "newline injection", incoming: "x\n{\"level\":\"error\"}"},
		{name: "too long", incoming: strings.Repeat("x", maxTraceIDLength+1)},
		{name: "longest allowed", incoming: strings.Repeat("x", maxTraceIDLength), wantKeep: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodDelete, "/api/vault", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			assert.True(t, called)
			assert.Equal(t, http.StatusNoContent, rr.Code)

			got := rr.Header().Get(traceIDHeader)
			if tt.wantKeep {
				assert.Equal(t, tt.incoming, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err, "generated trace id %q", got)
		})
	}
}

func TestWithTraceID_LoggerCarriesIDs(t *testing.T) {
	tests := []struct {
		name       string
		deviceID   string
		wantDevice bool
	}{
		{name: "device id logged", deviceID: "0190a3c4-device", wantDevice: true},
		{name: "no device id"},
		{name: "broken device id dropped", deviceID: "dev 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("vault stored")
			})

			req := httptest.NewRequest(http.MethodPut, "/api/vault", nil)
			req.Header.Set(traceIDHeader, "trace-context-test")
			if tt.deviceID != "" {
				req.Header.Set(deviceIDHeader, tt.deviceID)
			}
			h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

			assert.Contains(t, buf.String(), `"trace_id":"trace-context-test"`)
			assert.Equal(t, tt.wantDevice, strings.Contains(buf.String(), `"device_id"`))
		})
	}
}

func TestWithTraceID_ConcurrentRequestsGetUniqueIDs(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	handler := h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	const n = 50
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/vault", nil))

			mu.Lock()
			seen[rr.Header().Get(traceIDHeader)] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func TestWithTraceID_OriginalRequestNotMutated(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	req := httptest.NewRequest(http.MethodGet, "/api/vault", nil)
	before := req.Context()

	h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, before, req.Context())
}
