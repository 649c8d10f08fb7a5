package source

import (
	"net/http"
	"time"

	"github.com/okian/draftassist/pkg/logger"
)

const (
	defaultTimeout          = 10 * time.Second
	defaultFailureThreshold = 3
	defaultCooldown         = time.Minute
)

type options struct {
	httpClient       *http.Client
	timeout          time.Duration
	log              logger.Logger
	failureThreshold uint32
	cooldown         time.Duration
	headers          map[string]string
}

// Option configures a source client.
type Option func(*options)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithBreaker sets how many consecutive failures open a breaker and how long
// it stays open.
func WithBreaker(failures int, cooldown time.Duration) Option {
	return func(o *options) {
		if failures > 0 {
			o.failureThreshold = uint32(failures)
		}
		if cooldown > 0 {
			o.cooldown = cooldown
		}
	}
}

// WithHeader adds a request header.
func WithHeader(key, value string) Option {
	return func(o *options) { o.headers[key] = value }
}

func buildOptions(opts []Option) options {
	o := options{
		timeout:          defaultTimeout,
		log:              logger.Discard(),
		failureThreshold: defaultFailureThreshold,
		cooldown:         defaultCooldown,
		headers:          map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		opt(&o)
	}
	// A caller's client may be shared, so the timeout goes on a copy.
	c := http.Client{}
	if o.httpClient != nil {
		c = *o.httpClient
	}
	c.Timeout = o.timeout
	o.httpClient = &c
	return o
}
