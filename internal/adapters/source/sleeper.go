package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/okian/draftassist/internal/domain/draft"
	"github.com/okian/draftassist/pkg/logger"
	"github.com/sony/gobreaker"
)

const sourceSleeper = "sleeper"

// SleeperClient reads a draft from the Sleeper API.
type SleeperClient struct {
	base    *BaseClient
	baseURL string
	breaker *gobreaker.CircuitBreaker
	log     logger.Logger
}

// NewSleeperClient creates a client for the API rooted at baseURL.
func NewSleeperClient(baseURL string, opts ...Option) *SleeperClient {
	o := buildOptions(opts)
	return &SleeperClient{
		base:    newBaseClient(o),
		baseURL: strings.TrimRight(baseURL, "/"),
		breaker: newBreaker(sourceSleeper, o),
		log:     o.log,
	}
}

// Fetch loads the draft and its picks, plus the league rosters and users
// when the draft belongs to a league. Roster and user failures are logged and
// leave those lists empty.
func (c *SleeperClient) Fetch(ctx context.Context, draftID string) (*draft.SleeperPayload, error) {
	if strings.TrimSpace(draftID) == "" {
		return nil, ErrNoDraftID
	}
	id := url.PathEscape(draftID)

	p := &draft.SleeperPayload{}
	if err := c.getJSON(ctx, "/draft/"+id, &p.Draft); err != nil {
		return nil, fmt.Errorf("draft %s: %w", draftID, err)
	}
	if err := c.getJSON(ctx, "/draft/"+id+"/picks", &p.Picks); err != nil {
		return nil, fmt.Errorf("draft %s picks: %w", draftID, err)
	}

	league := string(p.Draft.LeagueID)
	if league == "" {
		return p, nil
	}
	lid := url.PathEscape(league)
	if err := c.getJSON(ctx, "/league/"+lid+"/rosters", &p.Rosters); err != nil {
		p.Rosters = nil
		c.log.Warn(ctx, "rosters unavailable, using default team names",
			logger.String("league_id", league), logger.Error(err))
	}
	if err := c.getJSON(ctx, "/league/"+lid+"/users", &p.Users); err != nil {
		p.Users = nil
		c.log.Warn(ctx, "users unavailable, skipping display names",
			logger.String("league_id", league), logger.Error(err))
	}
	return p, nil
}

func (c *SleeperClient) getJSON(ctx context.Context, path string, v any) error {
	u := c.baseURL + path
	body, err := c.base.guarded(ctx, c.breaker, sourceSleeper, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &FetchError{Source: sourceSleeper, URL: u, Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}
	return nil
}
