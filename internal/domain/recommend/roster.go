package recommend

import (
	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/names"
)

// Roster is a team's picks resolved against the catalog.
type Roster struct {
	Picks []model.DraftedPlayer
	// Resolved holds the catalog entry of each pick, when one matched.
	Resolved []*model.Player
	Counts   map[model.Position]int
	Needs    map[model.Position]int
	// ByeCounts counts rostered players per known bye week.
	ByeCounts map[int]int
}

// Index looks catalog players up by name key.
type Index map[names.Key]*model.Player

// NewIndex indexes a catalog. Later duplicates win.
func NewIndex(catalog []model.Player) Index {
	idx := make(Index, len(catalog))
	for i := range catalog {
		idx[names.Normalize(catalog[i].Name)] = &catalog[i]
	}
	return idx
}

// Lookup finds a pick's catalog entry.
func (idx Index) Lookup(p model.DraftedPlayer) (*model.Player, bool) {
	pl, ok := idx[names.Normalize(p.DisplayName())]
	return pl, ok
}

// NewRoster resolves picks and tallies positions and bye weeks.
func NewRoster(picks []model.DraftedPlayer, idx Index) Roster {
	r := Roster{
		Picks:     picks,
		Resolved:  make([]*model.Player, len(picks)),
		Counts:    PositionCounts(picks),
		ByeCounts: map[int]int{},
	}
	r.Needs = PositionNeeds(r.Counts)
	for i, p := range picks {
		if pl, ok := idx.Lookup(p); ok {
			r.Resolved[i] = pl
			if pl.Bye > 0 {
				r.ByeCounts[pl.Bye]++
			}
		}
	}
	return r
}

// PositionCounts tallies picks per roster position.
func PositionCounts(picks []model.DraftedPlayer) map[model.Position]int {
	counts := make(map[model.Position]int, len(model.RosterPositions))
	for _, pos := range model.RosterPositions {
		counts[pos] = 0
	}
	for _, p := range picks {
		if _, ok := model.IdealRoster[p.Position]; ok {
			counts[p.Position]++
		}
	}
	return counts
}

// PositionNeeds returns the open starting slots per position.
func PositionNeeds(counts map[model.Position]int) map[model.Position]int {
	needs := make(map[model.Position]int, len(model.IdealRoster))
	for pos, ideal := range model.IdealRoster {
		needs[pos] = max(0, ideal-counts[pos])
	}
	return needs
}

// qbs returns the rostered quarterbacks with their NFL team. The catalog
// team wins over the draft source's team.
func (r Roster) qbs() []qbRef {
	var out []qbRef
	for i, p := range r.Picks {
		if p.Position != model.QB {
			continue
		}
		ref := qbRef{name: p.DisplayName(), team: p.Team}
		if pl := r.Resolved[i]; pl != nil {
			ref.team = pl.Team
			ref.projected = pl.ProjectedPoints
		}
		if ref.team == "" || ref.team == "UNK" {
			continue
		}
		out = append(out, ref)
	}
	return out
}

type qbRef struct {
	name      string
	team      string
	projected float64
}
