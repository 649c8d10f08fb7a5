package recommend

import (
	"math"
	"sort"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/names"
	"github.com/okian/draftassist/internal/domain/snake"
)

const (
	missingADP       = 999
	missingRank      = 999
	missingTier      = 11
	defaultUpside    = 5
	breakdownTop     = 3
	stackTargets     = 3
	alternativeCount = 5
	alternativeRank  = 100
	valueCount       = 10
	scarcityPool     = 12
	tierJumpMin      = 2
	tierDropWindow   = 3
	tierDropUrgent   = 2
)

// Scarcity levels.
const (
	ScarcityCritical = "Critical"
	ScarcityLow      = "Low"
	ScarcityGood     = "Good"
)

var (
	tierDropPositions  = []model.Position{model.QB, model.RB, model.WR, model.TE}
	breakdownPositions = []model.Position{model.RB, model.WR, model.QB, model.TE, model.D, model.K}
)

// TierDrop warns that a position is about to fall off a tier cliff.
type TierDrop struct {
	CurrentTier      int  `json:"currentTier"`
	NextTier         int  `json:"nextTier"`
	PlayersUntilDrop int  `json:"playersUntilDrop"`
	NextPickInRange  bool `json:"nextPickInRange"`
}

// TierDrops reports positions whose next tier is at least two tiers worse
// and no more than three players away.
func TierDrops(available []model.Player) map[model.Position]TierDrop {
	out := map[model.Position]TierDrop{}
	for _, pos := range tierDropPositions {
		players := byPosition(available, pos)
		sort.SliceStable(players, func(i, j int) bool { return tierOf(players[i]) < tierOf(players[j]) })
		if len(players) == 0 {
			continue
		}
		current := tierOf(players[0])
		for i := 1; i < len(players); i++ {
			next := tierOf(players[i])
			if next <= current {
				continue
			}
			if next-current >= tierJumpMin && i <= tierDropWindow {
				out[pos] = TierDrop{
					CurrentTier:      current,
					NextTier:         next,
					PlayersUntilDrop: i,
					NextPickInRange:  i <= tierDropUrgent,
				}
			}
			break
		}
	}
	return out
}

// RosterEntry is a rostered pick enriched with catalog values.
type RosterEntry struct {
	Pick            model.DraftedPlayer `json:"pick"`
	Rank            int                 `json:"rank"`
	Tier            int                 `json:"tier"`
	ProjectedPoints float64             `json:"projectedPoints"`
	Bye             int                 `json:"bye"`
}

// PositionalBreakdown summarizes one position for the user.
type PositionalBreakdown struct {
	Drafted   []RosterEntry  `json:"drafted"`
	Available int            `json:"available"`
	ByRank    []model.Player `json:"byRank"`
	ByADP     []model.Player `json:"byAdp"`
	ByUpside  []model.Player `json:"byUpside"`
	Need      bool           `json:"need"`
	Count     int            `json:"count"`
}

// Breakdowns builds the per-position tables.
func Breakdowns(roster Roster, available []model.Player) map[model.Position]PositionalBreakdown {
	out := make(map[model.Position]PositionalBreakdown, len(breakdownPositions))
	entries := rosterEntries(roster)
	for _, pos := range breakdownPositions {
		var drafted []RosterEntry
		for _, e := range entries {
			if e.Pick.Position == pos {
				drafted = append(drafted, e)
			}
		}
		sort.SliceStable(drafted, func(i, j int) bool { return drafted[i].Rank < drafted[j].Rank })

		players := byPosition(available, pos)
		byRank := append([]model.Player(nil), players...)
		sort.SliceStable(byRank, func(i, j int) bool { return rankOf(byRank[i]) < rankOf(byRank[j]) })
		byADP := append([]model.Player(nil), players...)
		sort.SliceStable(byADP, func(i, j int) bool { return adpOf(byADP[i]) < adpOf(byADP[j]) })
		byUpside := append([]model.Player(nil), players...)
		sort.SliceStable(byUpside, func(i, j int) bool {
			return byUpside[i].UpsideNumber(defaultUpside) > byUpside[j].UpsideNumber(defaultUpside)
		})

		out[pos] = PositionalBreakdown{
			Drafted:   drafted,
			Available: len(players),
			ByRank:    head(byRank, breakdownTop),
			ByADP:     head(byADP, breakdownTop),
			ByUpside:  head(byUpside, breakdownTop),
			Need:      roster.Needs[pos] > 0,
			Count:     roster.Counts[pos],
		}
	}
	return out
}

// Stack pairs a rostered QB with available pass catchers on his team.
type Stack struct {
	QB              string         `json:"qb"`
	Team            string         `json:"team"`
	Targets         []model.Player `json:"targets"`
	ProjectedPoints float64        `json:"projectedPoints"`
}

// Stacks lists up to three WR/TE targets per rostered QB, by ADP.
func Stacks(roster Roster, available []model.Player) []Stack {
	var out []Stack
	for _, qb := range roster.qbs() {
		var targets []model.Player
		for _, p := range available {
			if (p.Position == model.WR || p.Position == model.TE) && names.Equal(p.Team, qb.team) {
				targets = append(targets, p)
			}
		}
		if len(targets) == 0 {
			continue
		}
		sort.SliceStable(targets, func(i, j int) bool { return adpOf(targets[i]) < adpOf(targets[j]) })
		out = append(out, Stack{QB: qb.name, Team: qb.team, Targets: head(targets, stackTargets), ProjectedPoints: qb.projected})
	}
	return out
}

// ByeConflict is a bye week shared by two or more rostered players.
type ByeConflict struct {
	Week    int      `json:"week"`
	Players []string `json:"players"`
	Count   int      `json:"count"`
}

// ByeConflicts lists conflicting weeks in week order.
func ByeConflicts(roster Roster) []ByeConflict {
	byWeek := map[int][]string{}
	for i, p := range roster.Picks {
		if pl := roster.Resolved[i]; pl != nil && pl.Bye > 0 {
			byWeek[pl.Bye] = append(byWeek[pl.Bye], p.DisplayName())
		}
	}
	var out []ByeConflict
	for week, players := range byWeek {
		if len(players) >= 2 {
			out = append(out, ByeConflict{Week: week, Players: players, Count: len(players)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

// ByeAlternatives offers well-ranked players off a conflicting bye.
type ByeAlternatives struct {
	Week         int            `json:"week"`
	Alternatives []model.Player `json:"alternatives"`
}

// Alternatives lists up to five available players ranked in the top 100
// whose bye differs from each conflict week.
func Alternatives(conflicts []ByeConflict, available []model.Player) []ByeAlternatives {
	out := make([]ByeAlternatives, 0, len(conflicts))
	for _, c := range conflicts {
		var alts []model.Player
		for _, p := range available {
			if p.Bye != c.Week && p.Rank <= alternativeRank {
				alts = append(alts, p)
				if len(alts) == alternativeCount {
					break
				}
			}
		}
		out = append(out, ByeAlternatives{Week: c.Week, Alternatives: alts})
	}
	return out
}

// ValuePlayer compares a player's ADP with the ranking.
type ValuePlayer struct {
	Player  model.Player `json:"player"`
	Value   float64      `json:"value"`
	IsValue bool         `json:"isValue"`
	IsReach bool         `json:"isReach"`
}

// Values ranks players with a numeric ADP by how far it strays from rank.
func Values(available []model.Player) []ValuePlayer {
	var out []ValuePlayer
	for _, p := range available {
		adp, ok := p.ADPNumber()
		if !ok || adp == 0 || p.Rank == 0 {
			continue
		}
		v := adp - float64(p.Rank)
		out = append(out, ValuePlayer{Player: p, Value: v, IsValue: v > 0, IsReach: v < 0})
	}
	sort.SliceStable(out, func(i, j int) bool { return math.Abs(out[i].Value) > math.Abs(out[j].Value) })
	return head(out, valueCount)
}

// Scarcity describes how deep a position still is.
type Scarcity struct {
	TopPlayers []model.Player `json:"topPlayers"`
	Count      int            `json:"count"`
	Level      string         `json:"level"`
	Next       *model.Player  `json:"next,omitempty"`
}

// PositionScarcity grades each position by its top twelve available players.
func PositionScarcity(available []model.Player) map[model.Position]Scarcity {
	out := make(map[model.Position]Scarcity, len(model.RosterPositions))
	for _, pos := range model.RosterPositions {
		players := byPosition(available, pos)
		sort.SliceStable(players, func(i, j int) bool { return rankOf(players[i]) < rankOf(players[j]) })
		top := head(players, scarcityPool)
		s := Scarcity{TopPlayers: top, Count: len(top)}
		switch {
		case len(top) < 6:
			s.Level = ScarcityCritical
		case len(top) < 10:
			s.Level = ScarcityLow
		default:
			s.Level = ScarcityGood
		}
		if len(top) > 0 {
			next := top[0]
			s.Next = &next
		}
		out[pos] = s
	}
	return out
}

// Projection lists players likely to go before the user's next turn.
type Projection struct {
	NextPick       int            `json:"nextPick"`
	PicksUntilTurn int            `json:"picksUntilTurn"`
	Players        []model.Player `json:"players"`
}

// Project scans the remaining picks for the user's next turn. Players with a
// numeric ADP are expected to go first in ADP order, then the rest by rank.
func Project(state *model.DraftState, teamID int, available []model.Player) Projection {
	var pr Projection
	for pick := state.CurrentPick; pick <= state.TotalPicks; pick++ {
		if owner, ok := snake.TeamForPick(pick, state.TotalTeams); ok && owner == teamID {
			pr.NextPick = pick
			break
		}
	}
	if pr.NextPick != 0 {
		pr.PicksUntilTurn = snake.PicksUntil(state.CurrentPick, pr.NextPick)
	} else {
		pr.PicksUntilTurn = max(0, state.TotalPicks-state.CurrentPick+1)
	}
	if pr.PicksUntilTurn == 0 {
		return pr
	}

	var withADP, without []model.Player
	for _, p := range available {
		if v, ok := p.ADPNumber(); ok && v != 0 {
			withADP = append(withADP, p)
		} else {
			without = append(without, p)
		}
	}
	sort.SliceStable(withADP, func(i, j int) bool { return adpOf(withADP[i]) < adpOf(withADP[j]) })
	sort.SliceStable(without, func(i, j int) bool { return without[i].Rank < without[j].Rank })
	pr.Players = head(append(withADP, without...), pr.PicksUntilTurn)
	return pr
}

func rosterEntries(roster Roster) []RosterEntry {
	out := make([]RosterEntry, 0, len(roster.Picks))
	for i, p := range roster.Picks {
		e := RosterEntry{Pick: p, Rank: missingRank, Tier: missingTier}
		if pl := roster.Resolved[i]; pl != nil {
			e.Rank, e.Tier = rankOf(*pl), tierOf(*pl)
			e.ProjectedPoints, e.Bye = pl.ProjectedPoints, pl.Bye
		}
		out = append(out, e)
	}
	return out
}

func byPosition(players []model.Player, pos model.Position) []model.Player {
	var out []model.Player
	for _, p := range players {
		if p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func tierOf(p model.Player) int {
	if p.Tier < 1 {
		return missingTier
	}
	return p.Tier
}

func rankOf(p model.Player) int {
	if p.Rank < 1 {
		return missingRank
	}
	return p.Rank
}

func adpOf(p model.Player) float64 {
	if v, ok := p.ADPNumber(); ok && v != 0 {
		return v
	}
	return missingADP
}
