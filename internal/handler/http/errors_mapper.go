package http

import (
	"errors"
	"net/http"

	"github.com/pentagon14032008-ux/Life-OS/internal/app"
	"github.com/pentagon14032008-ux/Life-OS/internal/logger"
	"github.com/pentagon14032008-ux/Life-OS/internal/service"
	"github.com/pentagon14032008-ux/Life-OS/internal/store"
	"github.com/pentagon14032008-ux/Life-OS/internal/validators"
)

type errorResponse struct {
	target error
	status int
	msg    string
}

// errorResponses is checked in order: the more specific sentinels come
// before the generic ones they are wrapped with.
var errorResponses = []errorResponse{
	{service.ErrDeviceRevoked, http.StatusForbidden, app.MsgDeviceRevoked},
	{service.ErrAccessDenied, http.StatusForbidden, app.MsgAccessDenied},

	{service.ErrInvalidBodyHash, http.StatusBadRequest, app.MsgInvalidHash},
	{validators.ErrEmptyBlob, http.StatusBadRequest, app.MsgInvalidBlob},
	{validators.ErrInvalidBlob, http.StatusBadRequest, app.MsgInvalidBlob},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrVersionIsNotSpecified, http.StatusBadRequest, app.MsgInvalidDataProvided},

	{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{store.ErrNoUserWasFound, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{service.ErrTokenIsExpired, http.StatusUnauthorized, app.MsgTokenIsExpired},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},

	{store.ErrLoginAlreadyExists, http.StatusConflict, app.MsgLoginAlreadyExists},

	{store.ErrVaultNotFound, http.StatusNotFound, app.MsgVaultNotFound},
	{store.ErrVersionNotFound, http.StatusNotFound, app.MsgVersionNotFound},
	{store.ErrDeviceNotFound, http.StatusNotFound, app.MsgDeviceNotFound},

	{service.ErrTooManyRequests, http.StatusTooManyRequests, app.MsgTooManyRequests},
}

func lookupError(err error) (int, string) {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.status, e.msg
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError answers with the status and wire message of err. The client
// matches the message text, so nothing else goes into the body.
func writeError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	status, msg := lookupError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Msg(msg)

	http.Error(w, msg, status)
}
