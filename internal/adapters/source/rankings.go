package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/okian/draftassist/internal/domain/catalog"
	"github.com/sony/gobreaker"
)

const sourceRankings = "rankings"

// RankingClient reads the ranking workbook.
type RankingClient struct {
	base    *BaseClient
	url     string
	breaker *gobreaker.CircuitBreaker
}

// NewRankingClient creates a client for the workbook endpoint.
func NewRankingClient(url string, opts ...Option) *RankingClient {
	o := buildOptions(opts)
	return &RankingClient{base: newBaseClient(o), url: url, breaker: newBreaker(sourceRankings, o)}
}

// Fetch returns the workbook tables. Numbers are kept as json.Number so rank
// columns survive as written.
func (c *RankingClient) Fetch(ctx context.Context) (catalog.RawData, error) {
	body, err := c.base.guarded(ctx, c.breaker, sourceRankings, c.url)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw catalog.RawData
	if err := dec.Decode(&raw); err != nil {
		return nil, &FetchError{Source: sourceRankings, URL: c.url, Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}
	return raw, nil
}
