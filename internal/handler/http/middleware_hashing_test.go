package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/config"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
)

func TestCheckBodyHash(t *testing.T) {
	// payload is hashed exactly as written, including the odd spacing
	payload := `{"blob":"YQ==",  "meta":{"updatedAt":1}}`
	good := utils.HashHex([]byte(payload))

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"valid", `{"record":` + payload + `,"hash":"` + good + `"}`, http.StatusOK, ""},
		{"upper-case hex is a mismatch", `{"record":` + payload + `,"hash":"` + strings.ToUpper(good) + `"}`, http.StatusBadRequest, app.MsgInvalidHash},
		{"tampered payload", `{"record":{"blob":"Yg==",  "meta":{"updatedAt":1}},"hash":"` + good + `"}`, http.StatusBadRequest, app.MsgInvalidHash},
		{"missing hash", `{"record":` + payload + `}`, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"hash not a string", `{"record":` + payload + `,"hash":5}`, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"wrong field", `{"version":` + payload + `,"hash":"` + good + `"}`, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{"not json", `record=1`, http.StatusBadRequest, app.MsgInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newMockedHandler(t, config.Server{})

			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				seen = string(b)
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/vault", strings.NewReader(tt.body))
			h.checkBodyHash("record")(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.body, seen, "handler sees the original body")
				return
			}
			assert.Empty(t, seen)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}
