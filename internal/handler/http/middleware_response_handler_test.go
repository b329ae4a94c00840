package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_WriteHeader_CalledTwice_IgnoresSecond(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusForbidden)
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusForbidden, w.status)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestResponseWriter_Write_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		header     int
		writes     []string
		wantStatus int
		wantSize   int
		wantBody   string
	}{
		{name: "implicit 200", writes: []string{"ok"}, wantStatus: http.StatusOK, wantSize: 2, wantBody: "ok"},
		{name: "explicit 201", header: http.StatusCreated, writes: []string{`{"createdAt":1}`}, wantStatus: http.StatusCreated, wantSize: 15, wantBody: `{"createdAt":1}`},
		{name: "size accumulates", writes: []string{"abc", "de", ""}, wantStatus: http.StatusOK, wantSize: 5, wantBody: "abcde"},
		{name: "no content", header: http.StatusNoContent, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rec}

			if tt.header != 0 {
				w.WriteHeader(tt.header)
			}
			for _, chunk := range tt.writes {
				_, err := w.Write([]byte(chunk))
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantStatus, w.status)
			assert.Equal(t, tt.wantSize, w.size)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestResponseWriter_InitialState(t *testing.T) {
	w := &responseWriter{ResponseWriter: httptest.NewRecorder()}

	assert.Zero(t, w.status)
	assert.Zero(t, w.size)
	assert.False(t, w.wroteHeader)
}

func TestResponseWriter_ProxiesHeadersToUnderlying(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)

	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestResponseWriter_ResponseControllerFlush(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	_, err := w.Write([]byte(`{"blob":"`))
	require.NoError(t, err)
	require.NoError(t, http.NewResponseController(w).Flush())

	assert.True(t, rec.Flushed)
	assert.Equal(t, http.StatusOK, w.status)
}
