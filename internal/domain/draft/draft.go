// Package draft converts raw draft-source payloads into a model.DraftState.
//
// Two sources are supported. The Sleeper API payload is structured. The
// spreadsheet board comes in an enhanced shape (rounds carry a picks array)
// and a simple shape (rounds are objects keyed by team name). The board shape
// is chosen by a structural probe, and a failed enhanced parse falls back to
// the simple one.
package draft

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/pkg/logger"
)

const (
	defaultTeams  = 10
	defaultRounds = 15
	maxTeams      = 32
	maxRounds     = 50
	unknownTeam   = "UNK"
	unknownRank   = 999
	unknownTier   = 5
)

// Raw is a fetched draft payload tagged by its source. Exactly one of Sleeper
// and Board is set.
type Raw struct {
	Source  model.DataSource
	Sleeper *SleeperPayload
	Board   json.RawMessage
}

// Identity describes how the local user is recognized in each source.
type Identity struct {
	// SleeperUserID is matched against picked_by and roster owners.
	SleeperUserID string
	// SleeperDisplayName replaces the user team's name when non-empty.
	SleeperDisplayName string
	// BoardMatch is a case-insensitive substring of the user's board column.
	BoardMatch string
}

// Normalizer builds DraftState values. It holds no per-draft state.
type Normalizer struct {
	identity Identity
	log      logger.Logger
}

// New creates a Normalizer using provided options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{log: logger.Discard()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize dispatches on the payload's source tag.
func (n *Normalizer) Normalize(ctx context.Context, raw Raw) (*model.DraftState, error) {
	switch raw.Source {
	case model.SourceSleeper:
		if raw.Sleeper == nil {
			return nil, &NormalizeError{Source: raw.Source, Shape: ShapeSleeper, Err: ErrMissingPayload}
		}
		return n.normalizeSleeper(ctx, raw.Sleeper)
	case model.SourceAppsScript:
		if len(raw.Board) == 0 {
			return nil, &NormalizeError{Source: raw.Source, Shape: ShapeSimple, Err: ErrMissingPayload}
		}
		return n.normalizeBoard(ctx, raw.Board)
	default:
		return nil, &NormalizeError{Source: raw.Source, Err: ErrUnknownSource}
	}
}

// finish fills the bookkeeping fields shared by every source.
func finish(s *model.DraftState, explicitComplete bool) {
	sort.SliceStable(s.DraftedPlayers, func(i, j int) bool {
		return s.DraftedPlayers[i].PickNumber < s.DraftedPlayers[j].PickNumber
	})
	made := len(s.DraftedPlayers)
	s.TotalPicks = s.TotalTeams * s.TotalRounds
	s.CurrentPick = min(made+1, s.TotalPicks+1)
	s.PicksRemaining = max(0, s.TotalPicks-made)
	if made >= s.TotalPicks || explicitComplete {
		s.Status = model.StatusComplete
	}
	for i := range s.Teams {
		if s.Teams[i].Picks == nil {
			s.Teams[i].Picks = []model.DraftedPlayer{}
		}
	}
	if s.DraftedPlayers == nil {
		s.DraftedPlayers = []model.DraftedPlayer{}
	}
}

func (n *Normalizer) unattributed(ctx context.Context, s *model.DraftState, p model.DraftedPlayer) {
	n.log.Warn(ctx, "pick not attributed to any team",
		logger.String("source", string(s.DataSource)),
		logger.Int("pick", p.PickNumber),
		logger.String("player", p.DisplayName()),
		logger.Int("draft_slot", p.TeamID),
	)
	s.Unattributed = append(s.Unattributed, p)
}
