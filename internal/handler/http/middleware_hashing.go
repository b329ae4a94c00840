package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/utils"
)

// checkBodyHash verifies the HMAC sent next to an upload.
//
// The body is a JSON object with the payload under field and its hex
// HMAC-SHA256 under "hash". The HMAC is computed over the raw bytes of the
// payload exactly as they arrived, so the check does not depend on how the
// server would re-encode the struct. The body is restored for the handler.
func (h *Handler) checkBodyHash(field string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			body, err := io.ReadAll(r.Body)
			if err != nil {
				log.Err(err).Str("func", "*Handler.checkBodyHash").Msg("failed to read request body")
				http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var envelope map[string]json.RawMessage
			if err = json.Unmarshal(body, &envelope); err != nil {
				log.Err(err).Str("func", "*Handler.checkBodyHash").Msg("failed to decode JSON")
				http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
				return
			}

			payload, ok := envelope[field]
			var sent string
			if raw, found := envelope["hash"]; found {
				_ = json.Unmarshal(raw, &sent)
			}
			if !ok || sent == "" {
				log.Warn().Str("func", "*Handler.checkBodyHash").Str("field", field).Msg("payload or hash missing")
				http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
				return
			}

			computed := utils.HashHex(payload)
			if !utils.EqualHex(computed, sent) {
				log.Error().Str("func", "*Handler.checkBodyHash").
					Str("hash from request", sent).
					Str("hashed body", computed).
					Msg("hashes are not equal")
				http.Error(w, app.MsgInvalidHash, http.StatusBadRequest)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
