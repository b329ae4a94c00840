package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	traceIDHeader = "X-Trace-ID"

	maxTraceIDLength = 128
)

// withTraceID gives every request a trace id and a child logger carrying it,
// plus the caller's device id when one is sent. A usable incoming
// X-Trace-ID is reused, anything else is replaced by a fresh UUID. A device
// id that would not pass as a trace id is left out of the log.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID := r.Header.Get(traceIDHeader)
		if !validHeaderID(traceID) {
			traceID = uuid.NewString()
		}
		deviceID := r.Header.Get(deviceIDHeader)

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			c = c.Str("trace_id", traceID)
			if validHeaderID(deviceID) {
				c = c.Str("device_id", deviceID)
			}
			return c
		})
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

// validHeaderID accepts short printable ASCII without spaces.
func validHeaderID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
