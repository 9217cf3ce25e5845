package hermes

import (
	"net/http"
	"time"

	"github.com/0xRadioAc7iv/hermes-address/internal"
)

type Option func(*internal.Config)

func WithURL(url string) Option {
	return func(c *internal.Config) {
		c.URL = url
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *internal.Config) {
		c.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client. The client's own timeout applies
// instead of WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *internal.Config) {
		c.HTTPClient = client
	}
}

func WithMaxBodySize(n int64) Option {
	return func(c *internal.Config) {
		c.MaxBody = n
	}
}
