// Package model contains the canonical draft domain values passed between layers.
package model

import "strings"

// Position is a canonical roster position.
type Position string

const (
	QB      Position = "QB"
	RB      Position = "RB"
	WR      Position = "WR"
	TE      Position = "TE"
	K       Position = "K"
	D       Position = "D"
	Unknown Position = "UNK"
)

// RosterPositions lists the positions of the ideal roster in display order.
var RosterPositions = []Position{QB, RB, WR, TE, K, D}

// IdealRoster is the starting roster shape used for need and balance math.
var IdealRoster = map[Position]int{QB: 1, RB: 2, WR: 2, TE: 1, K: 1, D: 1}

// ParsePosition maps a source abbreviation onto a canonical Position.
// Every defense spelling collapses to D.
func ParsePosition(s string) Position {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QB":
		return QB
	case "RB":
		return RB
	case "WR":
		return WR
	case "TE":
		return TE
	case "K", "PK":
		return K
	case "D", "DEF", "DST", "D/ST", "DEFENSE":
		return D
	default:
		return Unknown
	}
}

// PositionFromSlot derives a position from a depth-chart slot key such as
// "WR2". The first position contained in the key wins.
func PositionFromSlot(key string) Position {
	for _, p := range []Position{QB, RB, WR, TE, K, D} {
		if strings.Contains(key, string(p)) {
			return p
		}
	}
	return Unknown
}
