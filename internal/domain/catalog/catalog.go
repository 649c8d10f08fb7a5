// Package catalog turns the ranking workbook into a sorted player list.
package catalog

import (
	"sort"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/names"
)

// Workbook table names shared by every league.
const (
	TableDepthCharts = "Depth Charts"
	TableInjuries    = "Injuries"
	TableRookies     = "Rookies"
)

const (
	tierWidth = 12
	maxTier   = 11
)

// RawData is the decoded ranking payload, keyed by table name.
type RawData map[string]any

// Rank field aliases, in lookup order.
var (
	globalRankFields     = []string{"G_Rank", "Global_Rank", "Overall_Rank"}
	positionalRankFields = []string{"Pos Rank", "Pos_Rank", "Rank"}
)

// DefaultTables maps each league onto its ranking table.
func DefaultTables() map[string]string {
	return map[string]string{
		"FanDuel": "FanDuel Rankings",
		"Jackson": "Jackson Rankings",
		"GVSU":    "Team Pahl Rankings",
	}
}

// Catalog builds player lists for leagues.
type Catalog struct {
	tables map[string]string
}

// New creates a Catalog using provided options.
func New(opts ...Option) *Catalog {
	c := &Catalog{tables: DefaultTables()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Leagues lists the configured leagues in name order.
func (c *Catalog) Leagues() []string {
	out := make([]string, 0, len(c.tables))
	for l := range c.tables {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// HasLeague reports whether a league has a configured ranking table.
func (c *Catalog) HasLeague(league string) bool {
	_, ok := c.tables[league]
	return ok
}

// Build returns the league's players sorted by rank. A league without a
// ranking table, or a table that is not a list, yields an empty result.
func (c *Catalog) Build(raw RawData, league string) []model.Player {
	table, ok := c.tables[league]
	if !ok || raw == nil {
		return []model.Player{}
	}
	rows, ok := raw[table].([]any)
	if !ok {
		return []model.Player{}
	}

	depth := depthIndex(raw[TableDepthCharts])
	injuries := injuryIndex(raw[TableInjuries])
	rookies := rookieIndex(raw[TableRookies])

	players := make([]model.Player, 0, len(rows))
	for i, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			row = map[string]any{}
		}
		players = append(players, buildPlayer(i, row, depth, injuries, rookies))
	}

	sort.SliceStable(players, func(a, b int) bool { return players[a].Rank < players[b].Rank })
	return players
}

// Tier maps a global rank onto its tier: bands of 12, capped at 11.
func Tier(rank int) int {
	if rank < 1 {
		return 1
	}
	t := (rank + tierWidth - 1) / tierWidth
	if t > maxTier {
		return maxTier
	}
	return t
}

func buildPlayer(index int, row map[string]any, depth map[names.Key]depthEntry, injuries map[names.Key]injuryEntry, rookies map[names.Key]rookieEntry) model.Player {
	name := model.Text(row["Name"])
	key := names.Normalize(name)

	rank := rankOr(row, globalRankFields, index+1)
	p := model.Player{
		ID:              index + 1,
		Name:            name,
		Position:        model.ParsePosition(model.Text(firstTruthy(row, "Pos", "Position"))),
		Team:            "FA",
		Rank:            rank,
		PositionalRank:  rankOr(row, positionalRankFields, index+1),
		Tier:            Tier(rank),
		ADP:             orEmpty(row["ADP"]),
		Risk:            orEmpty(row["Risk"]),
		Upside:          orEmpty(row["Upside"]),
		Boom:            orEmpty(row["Boom"]),
		Bust:            orEmpty(row["Bust"]),
		Raw:             row,
	}
	if proj, ok := model.LeadingFloat(firstTruthy(row, "Proj")); ok && proj > 0 {
		p.ProjectedPoints = proj
	}
	if bye, ok := model.LeadingInt(row["Bye"]); ok && bye > 0 {
		p.Bye = bye
	}
	if t := model.Text(firstTruthy(row, "Team")); t != "" {
		p.Team = t
	}
	if d, ok := depth[key]; ok {
		if d.team != "" {
			p.Team = d.team
		}
		p.DepthSlot = d.slot
	}
	if inj, ok := injuries[key]; ok {
		p.Injury, p.InjuryStatus, p.InjuryUpdated = inj.injury, inj.status, inj.updated
	}
	if r, ok := rookies[key]; ok {
		p.IsRookie = true
		p.College, p.DraftRound, p.DraftPick = r.college, r.round, r.pick
	}
	return p
}

// rankOr reads the first truthy alias as a leading integer. Zero or an
// unparseable value falls back to def.
func rankOr(row map[string]any, fields []string, def int) int {
	if v, ok := model.LeadingInt(firstTruthy(row, fields...)); ok && v != 0 {
		return v
	}
	return def
}

func firstTruthy(row map[string]any, fields ...string) any {
	for _, f := range fields {
		if v, ok := row[f]; ok && truthy(v) {
			return v
		}
	}
	return nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		if f, ok := model.LeadingFloat(t); ok {
			return f != 0
		}
		return true
	}
}

func orEmpty(v any) any {
	if !truthy(v) {
		return ""
	}
	return v
}
