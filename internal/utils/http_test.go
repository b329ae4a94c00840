package utils

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		status     int
		wantStatus int
		wantBody   string
		wantErr    bool
	}{
		{
			name:       "vault meta",
			data:       map[string]any{"updatedAt": 1700000000000, "schema": 1},
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   `{"schema":1,"updatedAt":1700000000000}`,
		},
		{
			name:       "created",
			data:       map[string]string{"createdAt": "2026-01-02T03:04:05Z"},
			status:     http.StatusCreated,
			wantStatus: http.StatusCreated,
			wantBody:   `{"createdAt":"2026-01-02T03:04:05Z"}`,
		},
		{
			// каналы не сериализуются в JSON
			name:       "unmarshalable",
			data:       make(chan int),
			status:     http.StatusOK,
			wantStatus: http.StatusInternalServerError,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Login string `json:"login"`
	}

	t.Run("single value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"login":"alice"}`))
		var got payload
		require.NoError(t, DecodeJSON(httptest.NewRecorder(), r, &got))
		assert.Equal(t, "alice", got.Login)
	})

	t.Run("trailing whitespace is fine", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{\"login\":\"bob\"}\n"))
		var got payload
		require.NoError(t, DecodeJSON(httptest.NewRecorder(), r, &got))
		assert.Equal(t, "bob", got.Login)
	})

	t.Run("second value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"login":"a"}{"login":"b"}`))
		var got payload
		assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), r, &got), ErrTrailingData)
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"login":`))
		var got payload
		assert.Error(t, DecodeJSON(httptest.NewRecorder(), r, &got))
	})

	t.Run("too large", func(t *testing.T) {
		body := `{"login":"` + string(bytes.Repeat([]byte("x"), MaxJSONBody)) + `"}`
		r := httptest.NewRequest(http.MethodPut, "/api/vault", strings.NewReader(body))
		var got payload

		err := DecodeJSON(httptest.NewRecorder(), r, &got)

		var tooLarge *http.MaxBytesError
		assert.True(t, errors.As(err, &tooLarge))
	})
}
