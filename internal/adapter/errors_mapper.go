package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// StatusError is a non-2xx answer of the vault server. It unwraps to the
// transport sentinel of its status class, so callers keep using errors.Is.
type StatusError struct {
	Status int
	// Body is the trimmed plain-text message the server wrote.
	Body string
	// RetryAfter is set on 429 answers that carried a Retry-After header.
	RetryAfter time.Duration

	kind error
}

func (e *StatusError) Error() string {
	if e.kind == nil {
		return fmt.Sprintf("http %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.Body)
}

func (e *StatusError) Unwrap() error { return e.kind }

// ResponseBody returns the server message carried by err, "" when err did
// not come from a server answer.
func ResponseBody(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Body
	}
	return ""
}

var statusKinds = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrBadGateway,
	http.StatusGatewayTimeout:      ErrBadGateway,
}

func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	se := &StatusError{
		Status: status,
		Body:   strings.TrimSpace(string(resp.Body())),
		kind:   statusKinds[status],
	}
	if se.kind == nil && se.Body == "" {
		se.Body = http.StatusText(status)
	}
	if status == http.StatusTooManyRequests {
		if secs, err := strconv.Atoi(resp.Header().Get("Retry-After")); err == nil && secs > 0 {
			se.RetryAfter = time.Duration(secs) * time.Second
		}
	}
	return se
}

// transportError marks a request that never got a response.
func transportError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrNetwork, op, err)
}
