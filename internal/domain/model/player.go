package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Player is one ranked player in a catalog load.
type Player struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Position        Position `json:"position"`
	Team            string   `json:"team"`
	Rank            int      `json:"rank"`
	PositionalRank  int      `json:"positionalRank"`
	Tier            int      `json:"tier"`
	ProjectedPoints float64  `json:"projectedPoints"`
	Bye             int      `json:"bye"`

	// Opaque source values, passed through unmodified.
	ADP    any `json:"adp"`
	Risk   any `json:"risk"`
	Upside any `json:"upside"`
	Boom   any `json:"boom"`
	Bust   any `json:"bust"`

	IsRookie   bool   `json:"isRookie"`
	College    string `json:"college,omitempty"`
	DraftRound any    `json:"draftRound,omitempty"`
	DraftPick  any    `json:"draftPick,omitempty"`

	Injury        string `json:"injury,omitempty"`
	InjuryStatus  string `json:"injuryStatus,omitempty"`
	InjuryUpdated string `json:"injuryUpdated,omitempty"`

	// DepthSlot is the depth-chart key the player was listed under, e.g. "WR2".
	DepthSlot string `json:"depthSlot,omitempty"`

	// Raw holds every column of the source ranking row.
	Raw map[string]any `json:"raw,omitempty"`
}

// ADPText renders the opaque ADP value as text.
func (p Player) ADPText() string {
	return Text(p.ADP)
}

// ADPNumber reads the ADP as a leading float, the way a lenient parser would.
func (p Player) ADPNumber() (float64, bool) {
	return LeadingFloat(p.ADP)
}

// UpsideNumber reads the upside value, falling back to def.
func (p Player) UpsideNumber(def float64) float64 {
	if v, ok := LeadingFloat(p.Upside); ok {
		return v
	}
	return def
}

// Text renders an opaque source value as text. nil renders empty.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// LeadingInt parses the integer prefix of an opaque value. Numbers are
// truncated toward zero. Text without a digit prefix does not parse.
func LeadingInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case string:
		s := strings.TrimSpace(t)
		end := 0
		if end < len(s) && (s[end] == '-' || s[end] == '+') {
			end++
		}
		digits := end
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if end == digits {
			return 0, false
		}
		i, err := strconv.Atoi(s[:end])
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// LeadingFloat parses the decimal prefix of an opaque value.
func LeadingFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(t)
		end := 0
		if end < len(s) && (s[end] == '-' || s[end] == '+') {
			end++
		}
		digits, dot := 0, false
		for end < len(s) {
			c := s[end]
			if c >= '0' && c <= '9' {
				digits++
			} else if c == '.' && !dot {
				dot = true
			} else {
				break
			}
			end++
		}
		if digits == 0 {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
