// Package depthchart joins NFL depth charts with the player catalog and the
// draft so a UI can show who is still on the board.
package depthchart

import (
	"github.com/okian/draftassist/internal/domain/availability"
	"github.com/okian/draftassist/internal/domain/catalog"
	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/names"
)

// Positions shown on a depth chart, in display order.
var Positions = []model.Position{model.QB, model.RB, model.WR, model.TE}

// Entry is one player on a depth chart.
type Entry struct {
	Slot     string         `json:"slot"`
	Name     string         `json:"name"`
	Position model.Position `json:"position"`
	// Rank and Tier are zero when the player is not in the catalog.
	Rank    int  `json:"rank"`
	Tier    int  `json:"tier"`
	Drafted bool `json:"drafted"`
}

// Team is one NFL team's chart grouped by position.
type Team struct {
	Team      string                     `json:"team"`
	Positions map[model.Position][]Entry `json:"positions"`
}

type catalogKey struct {
	name names.Key
	pos  model.Position
}

// Build assembles the charts. Slots for positions outside Positions are
// skipped.
func Build(charts []catalog.DepthTeam, players []model.Player, state *model.DraftState) []Team {
	byKey := make(map[catalogKey]model.Player, len(players))
	for _, p := range players {
		k := catalogKey{names.Normalize(p.Name), p.Position}
		if _, dup := byKey[k]; !dup {
			byKey[k] = p
		}
	}
	drafted := availability.DraftedNames(state)

	out := make([]Team, 0, len(charts))
	for _, dt := range charts {
		t := Team{Team: dt.Team, Positions: make(map[model.Position][]Entry, len(Positions))}
		for _, pos := range Positions {
			t.Positions[pos] = []Entry{}
		}
		for _, s := range dt.Slots {
			if _, shown := t.Positions[s.Position]; !shown {
				continue
			}
			e := Entry{Slot: s.Key, Name: s.Player, Position: s.Position, Drafted: drafted.Has(s.Player)}
			if p, ok := byKey[catalogKey{names.Normalize(s.Player), s.Position}]; ok {
				e.Rank, e.Tier = p.Rank, p.Tier
			}
			t.Positions[s.Position] = append(t.Positions[s.Position], e)
		}
		out = append(out, t)
	}
	return out
}
