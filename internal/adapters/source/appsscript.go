package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/okian/draftassist/pkg/logger"
	"github.com/sony/gobreaker"
)

const sourceAppsScript = "appsscript"

// Relay placeholders.
const (
	PlaceholderEscaped = "{url}"
	PlaceholderRaw     = "{raw}"
)

type relay struct {
	template string
	breaker  *gobreaker.CircuitBreaker
}

// AppsScriptClient reads the spreadsheet draft board through a chain of
// relays. The first relay answering 2xx wins.
type AppsScriptClient struct {
	base   *BaseClient
	target string
	relays []relay
	log    logger.Logger
}

// NewAppsScriptClient creates a client for target. Each relay template gets
// its own breaker so a dead relay is skipped quickly. With no templates the
// target is fetched directly.
func NewAppsScriptClient(target string, relays []string, opts ...Option) *AppsScriptClient {
	o := buildOptions(opts)
	if len(relays) == 0 {
		relays = []string{PlaceholderRaw}
	}
	c := &AppsScriptClient{base: newBaseClient(o), target: target, log: o.log}
	for i, tmpl := range relays {
		name := fmt.Sprintf("%s_relay_%d", sourceAppsScript, i)
		c.relays = append(c.relays, relay{template: tmpl, breaker: newBreaker(name, o)})
	}
	return c
}

// ExpandRelay substitutes target into a relay template.
func ExpandRelay(template, target string) string {
	return strings.NewReplacer(
		PlaceholderEscaped, url.QueryEscape(target),
		PlaceholderRaw, target,
	).Replace(template)
}

// Fetch returns the board payload. The body must be valid JSON; it is
// otherwise left undecoded for the normalizer.
func (c *AppsScriptClient) Fetch(ctx context.Context) (json.RawMessage, error) {
	var errs []error
	for i, r := range c.relays {
		u := ExpandRelay(r.template, c.target)
		c.log.Debug(ctx, "trying relay", logger.Int("relay", i), logger.String("url", u))

		body, err := c.base.guarded(ctx, r.breaker, sourceAppsScript, u)
		if err != nil {
			c.log.Warn(ctx, "relay failed", logger.Int("relay", i), logger.Error(err))
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if !json.Valid(body) {
			return nil, &FetchError{Source: sourceAppsScript, URL: u, Err: fmt.Errorf("%w: body is not JSON", ErrDecode)}
		}
		return json.RawMessage(body), nil
	}
	return nil, &FetchError{
		Source: sourceAppsScript,
		URL:    c.target,
		Err:    errors.Join(append([]error{ErrAllRelaysFailed}, errs...)...),
	}
}
