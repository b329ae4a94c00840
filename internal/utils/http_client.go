package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client with the given request timeout
// and user agent. Retries stay disabled: a failed sync attempt is retried by
// the next scheduled cycle, never inside the transport.
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	c := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	if userAgent != "" {
		c.SetHeader("User-Agent", userAgent)
	}
	return &HTTPClient{Client: c}
}
