package catalog

import (
	"sort"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/names"
)

type depthEntry struct {
	team string
	slot string
}

type injuryEntry struct {
	injury, status, updated string
}

type rookieEntry struct {
	college     string
	round, pick any
}

// DepthTeam is one NFL team's depth chart row.
type DepthTeam struct {
	Team  string
	Slots []DepthSlot
}

// DepthSlot is one named slot on a depth chart.
type DepthSlot struct {
	Key      string
	Position model.Position
	Player   string
}

// DepthCharts parses the depth chart table. Slot keys are sorted within a team.
func DepthCharts(raw RawData) []DepthTeam {
	if raw == nil {
		return nil
	}
	return parseDepth(raw[TableDepthCharts])
}

func parseDepth(v any) []DepthTeam {
	rows, _ := v.([]any)
	out := make([]DepthTeam, 0, len(rows))
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		keys := make([]string, 0, len(row))
		for k := range row {
			if k != "Team" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		dt := DepthTeam{Team: model.Text(row["Team"])}
		for _, k := range keys {
			name := model.Text(row[k])
			if name == "" {
				continue
			}
			dt.Slots = append(dt.Slots, DepthSlot{Key: k, Position: model.PositionFromSlot(k), Player: name})
		}
		out = append(out, dt)
	}
	return out
}

// Later rows overwrite earlier ones for a repeated name.
func depthIndex(v any) map[names.Key]depthEntry {
	idx := make(map[names.Key]depthEntry)
	for _, dt := range parseDepth(v) {
		for _, s := range dt.Slots {
			idx[names.Normalize(s.Player)] = depthEntry{team: dt.Team, slot: s.Key}
		}
	}
	return idx
}

func injuryIndex(v any) map[names.Key]injuryEntry {
	rows, _ := v.([]any)
	idx := make(map[names.Key]injuryEntry, len(rows))
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		idx[names.Normalize(model.Text(row["Player"]))] = injuryEntry{
			injury:  model.Text(row["Injury"]),
			status:  model.Text(row["Status"]),
			updated: model.Text(row["Updated"]),
		}
	}
	return idx
}

func rookieIndex(v any) map[names.Key]rookieEntry {
	rows, _ := v.([]any)
	idx := make(map[names.Key]rookieEntry, len(rows))
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		idx[names.Normalize(model.Text(row["Name"]))] = rookieEntry{
			college: model.Text(row["College"]),
			round:   row["Round"],
			pick:    row["Pick"],
		}
	}
	return idx
}
