package adapter

import "errors"

// Transport errors. HTTP statuses are mapped onto them by mapHTTPError;
// failures that never produced a response are wrapped in [ErrNetwork].
var (
	ErrNetwork             = errors.New("network unavailable")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)
