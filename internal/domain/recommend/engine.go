// Package recommend scores available players against the user's roster and
// builds the draft analysis report.
package recommend

import (
	"sort"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/snake"
)

const (
	defaultLimit        = 6
	defaultKickerRound  = 14
	defaultDefenseRound = 13
)

// Recommendation is one scored candidate.
type Recommendation struct {
	Player model.Player `json:"player"`
	Score
}

// Report is everything the engine derives for one draft state.
type Report struct {
	UserTeamID          int                                   `json:"userTeamId"`
	CurrentRound        int                                   `json:"currentRound"`
	UserNextPick        int                                   `json:"userNextPick"`
	PositionCounts      map[model.Position]int                `json:"positionCounts"`
	PositionNeeds       map[model.Position]int                `json:"positionNeeds"`
	Recommendations     []Recommendation                      `json:"recommendations"`
	TierDrops           map[model.Position]TierDrop           `json:"tierDrops"`
	PositionalBreakdown map[model.Position]PositionalBreakdown `json:"positionalBreakdown"`
	Stacks              []Stack                               `json:"stackOpportunities"`
	ByeConflicts        []ByeConflict                         `json:"byeConflicts"`
	ByeAlternatives     []ByeAlternatives                     `json:"byeAlternatives"`
	ValueAnalysis       []ValuePlayer                         `json:"valueAnalysis"`
	Scarcity            map[model.Position]Scarcity           `json:"scarcity"`
	ScarcityAlerts      []model.Position                      `json:"scarcityAlerts"`
	Projection          Projection                            `json:"projection"`
}

// Engine produces recommendation reports. It is safe for concurrent use.
type Engine struct {
	limit        int
	kickerRound  int
	defenseRound int
}

// New creates an Engine using provided options.
func New(opts ...Option) *Engine {
	e := &Engine{limit: defaultLimit, kickerRound: defaultKickerRound, defenseRound: defaultDefenseRound}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend builds the report for the user's team. catalog is the full
// player list and available the still-undrafted subset.
func (e *Engine) Recommend(state *model.DraftState, catalog, available []model.Player) (*Report, error) {
	if state == nil {
		return nil, ErrNoUserTeam
	}
	team, ok := state.UserTeam()
	if !ok {
		return nil, ErrNoUserTeam
	}

	idx := NewIndex(catalog)
	roster := NewRoster(team.Picks, idx)
	round := CurrentRound(state)

	r := &Report{
		UserTeamID:          team.ID,
		CurrentRound:        round,
		UserNextPick:        snake.NextPickForTeam(state.CurrentPick, team.ID, state.TotalTeams),
		PositionCounts:      roster.Counts,
		PositionNeeds:       roster.Needs,
		Recommendations:     e.Rank(available, roster, round),
		TierDrops:           TierDrops(available),
		PositionalBreakdown: Breakdowns(roster, available),
		Stacks:              Stacks(roster, available),
		ByeConflicts:        ByeConflicts(roster),
		ValueAnalysis:       Values(available),
		Scarcity:            PositionScarcity(available),
		Projection:          Project(state, team.ID, available),
	}
	r.ByeAlternatives = Alternatives(r.ByeConflicts, available)
	for _, pos := range model.RosterPositions {
		if r.Scarcity[pos].Level == ScarcityCritical {
			r.ScarcityAlerts = append(r.ScarcityAlerts, pos)
		}
	}
	return r, nil
}

// Rank scores every eligible candidate and keeps the best. Ties go to the
// lower rank, then to catalog order.
func (e *Engine) Rank(available []model.Player, roster Roster, round int) []Recommendation {
	recs := make([]Recommendation, 0, len(available))
	for _, p := range available {
		if !e.eligible(p.Position, round) {
			continue
		}
		recs = append(recs, Recommendation{Player: p, Score: ScorePlayer(p, roster, round)})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Total != recs[j].Total {
			return recs[i].Total > recs[j].Total
		}
		return recs[i].Player.Rank < recs[j].Player.Rank
	})
	if len(recs) > e.limit {
		recs = recs[:e.limit]
	}
	return recs
}

func (e *Engine) eligible(pos model.Position, round int) bool {
	switch pos {
	case model.K:
		return round >= e.kickerRound
	case model.D:
		return round >= e.defenseRound
	default:
		return true
	}
}

// CurrentRound is the round of the pick on the clock.
func CurrentRound(state *model.DraftState) int {
	r, ok := snake.Round(max(1, state.CurrentPick), state.TotalTeams)
	if !ok {
		return 1
	}
	return r
}
