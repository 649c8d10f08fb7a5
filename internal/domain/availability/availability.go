// Package availability derives the players still on the board.
package availability

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/names"
)

// ErrInvalidQuery is returned for unknown positions or sort orders.
var ErrInvalidQuery = errors.New("invalid player query")

// DraftedNames collects the display names of every pick. Names that
// normalize to empty are dropped.
func DraftedNames(state *model.DraftState) names.Set {
	if state == nil {
		return names.Set{}
	}
	set := make(names.Set, len(state.DraftedPlayers))
	for _, p := range state.DraftedPlayers {
		set.Add(p.DisplayName())
	}
	return set
}

// Available returns catalog players whose name matches no pick, sorted by
// rank. Matching is exact after normalization; a spelling difference between
// sources leaves a drafted player listed.
func Available(catalog []model.Player, state *model.DraftState) []model.Player {
	drafted := DraftedNames(state)
	out := make([]model.Player, 0, len(catalog))
	for _, p := range catalog {
		if !drafted.Has(p.Name) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

// SortOrder selects the ordering of a player view.
type SortOrder string

const (
	SortRank      SortOrder = "rank"
	SortADP       SortOrder = "adp"
	SortProjected SortOrder = "projected"
	SortName      SortOrder = "name"
)

// Query filters and orders a player list.
type Query struct {
	// Position is a position code or "ALL". Empty means ALL.
	Position string
	// Search matches a substring of the player name or NFL team.
	Search string
	Sort   SortOrder
	// Limit caps the result; zero means no cap.
	Limit int
}

// Validate checks the position and sort order.
func (q Query) Validate() error {
	if p := strings.ToUpper(strings.TrimSpace(q.Position)); p != "" && p != "ALL" && model.ParsePosition(p) == model.Unknown {
		return fmt.Errorf("%w: position %q", ErrInvalidQuery, q.Position)
	}
	switch q.Sort {
	case "", SortRank, SortADP, SortProjected, SortName:
	default:
		return fmt.Errorf("%w: sort %q", ErrInvalidQuery, q.Sort)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidQuery)
	}
	return nil
}

// Filter applies a query to players without modifying the input.
func Filter(players []model.Player, q Query) ([]model.Player, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	pos := strings.ToUpper(strings.TrimSpace(q.Position))
	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		if pos != "" && pos != "ALL" && p.Position != model.ParsePosition(pos) {
			continue
		}
		if q.Search != "" && !names.Contains(p.Name, q.Search) && !names.Contains(p.Team, q.Search) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortADP:
		sort.SliceStable(out, func(i, j int) bool { return adpLess(out[i], out[j]) })
	case SortProjected:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ProjectedPoints > out[j].ProjectedPoints })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return names.Normalize(out[i].Name) < names.Normalize(out[j].Name) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// adpLess orders by numeric ADP; players without one sort last by rank.
func adpLess(a, b model.Player) bool {
	av, aok := a.ADPNumber()
	bv, bok := b.ADPNumber()
	switch {
	case aok && bok:
		return av < bv
	case aok != bok:
		return aok
	default:
		return a.Rank < b.Rank
	}
}
