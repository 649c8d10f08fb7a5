// Package source fetches draft and ranking payloads from their upstreams.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/draftassist/pkg/logger"
	"github.com/okian/draftassist/pkg/metrics"
	"github.com/sony/gobreaker"
)

const maxErrorBody = 512

// BaseClient issues GET requests and records fetch metrics.
type BaseClient struct {
	client  *http.Client
	headers map[string]string
	log     logger.Logger
}

// NewBaseClient creates a BaseClient using provided options.
func NewBaseClient(opts ...Option) *BaseClient {
	o := buildOptions(opts)
	return newBaseClient(o)
}

func newBaseClient(o options) *BaseClient {
	return &BaseClient{client: o.httpClient, headers: o.headers, log: o.log}
}

// Get fetches url and returns the body of a 2xx response. source labels the
// metrics and errors.
func (c *BaseClient) Get(ctx context.Context, source, url string) ([]byte, error) {
	start := time.Now()
	body, err := c.get(ctx, source, url)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.RecordFetch(source, outcome, time.Since(start).Seconds())
	return body, err
}

func (c *BaseClient) get(ctx context.Context, source, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Source: source, URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: source, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{
			Source:     source,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrStatus, snippet),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: source, URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// guarded runs Get behind a breaker. An open breaker fails fast with a
// FetchError.
func (c *BaseClient) guarded(ctx context.Context, cb *gobreaker.CircuitBreaker, source, url string) ([]byte, error) {
	out, err := cb.Execute(func() (interface{}, error) {
		return c.Get(ctx, source, url)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &FetchError{Source: source, URL: url, Err: err}
		}
		return nil, err
	}
	return out.([]byte), nil
}

func newBreaker(name string, o options) *gobreaker.CircuitBreaker {
	threshold := o.failureThreshold
	log := o.log
	metrics.UpdateBreakerState(name, int(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: o.cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn(context.Background(), "breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
			metrics.UpdateBreakerState(name, int(to))
		},
	})
}
