package recommend

import (
	"math"
	"sort"

	"github.com/okian/draftassist/internal/domain/model"
)

const (
	overviewFirstWeek = 5
	overviewLastWeek  = 14
)

// Team composition labels.
const (
	TeamRBHeavy  = "RB-Heavy"
	TeamWRHeavy  = "WR-Heavy"
	TeamQBHeavy  = "QB-Heavy"
	TeamTEHeavy  = "TE-Heavy"
	TeamBalanced = "Balanced"
)

// ByeWeek lists the rostered players off in one week.
type ByeWeek struct {
	Week        int      `json:"week"`
	Players     []string `json:"players"`
	Count       int      `json:"count"`
	HasConflict bool     `json:"hasConflict"`
}

// TeamAnalysis summarizes a roster's construction.
type TeamAnalysis struct {
	TeamID          int                        `json:"teamId"`
	TeamName        string                     `json:"teamName"`
	TotalPlayers    int                        `json:"totalPlayers"`
	PositionCounts  map[model.Position]int     `json:"positionCounts"`
	TierCounts      map[int]int                `json:"tierCounts"`
	ProjectedPoints map[model.Position]float64 `json:"projectedPoints"`
	BalanceScore    int                        `json:"balanceScore"`
	TeamType        string                     `json:"teamType"`
	TopTiers        int                        `json:"topTiers"`
	MidTiers        int                        `json:"midTiers"`
	LateTiers       int                        `json:"lateTiers"`
	ByeWeeks        []int                      `json:"byeWeeks"`
	ByeConflicts    []ByeConflict              `json:"byeConflicts"`
	ByeOverview     []ByeWeek                  `json:"byeOverview"`
}

// AnalyzeTeam analyzes a team by slot; slot 0 selects the user's team.
func AnalyzeTeam(state *model.DraftState, catalog []model.Player, teamID int) (*TeamAnalysis, error) {
	if state == nil {
		return nil, ErrNoUserTeam
	}
	var (
		team model.Team
		ok   bool
	)
	if teamID == 0 {
		if team, ok = state.UserTeam(); !ok {
			return nil, ErrNoUserTeam
		}
	} else if team, ok = state.TeamByID(teamID); !ok {
		return nil, ErrUnknownTeam
	}
	a := Analyze(team, NewIndex(catalog))
	return &a, nil
}

// Analyze builds the composition summary of one team.
func Analyze(team model.Team, idx Index) TeamAnalysis {
	roster := NewRoster(team.Picks, idx)
	a := TeamAnalysis{
		TeamID:          team.ID,
		TeamName:        team.Name,
		TotalPlayers:    len(team.Picks),
		PositionCounts:  roster.Counts,
		TierCounts:      make(map[int]int, missingTier),
		ProjectedPoints: make(map[model.Position]float64, len(model.RosterPositions)),
		ByeConflicts:    ByeConflicts(roster),
	}
	for t := 1; t <= missingTier; t++ {
		a.TierCounts[t] = 0
	}
	for _, pos := range model.RosterPositions {
		a.ProjectedPoints[pos] = 0
	}

	byWeek := map[int][]string{}
	for i, p := range roster.Picks {
		pl := roster.Resolved[i]
		if pl == nil {
			continue
		}
		a.TierCounts[tierOf(*pl)]++
		if _, tracked := model.IdealRoster[p.Position]; tracked {
			a.ProjectedPoints[p.Position] += pl.ProjectedPoints
		}
		if pl.Bye > 0 {
			byWeek[pl.Bye] = append(byWeek[pl.Bye], p.DisplayName())
		}
	}

	a.BalanceScore = balanceScore(roster.Counts)
	a.TeamType = teamType(roster.Counts)
	a.TopTiers = a.TierCounts[1] + a.TierCounts[2] + a.TierCounts[3]
	a.MidTiers = a.TierCounts[4] + a.TierCounts[5] + a.TierCounts[6]
	for t := 7; t <= missingTier; t++ {
		a.LateTiers += a.TierCounts[t]
	}

	a.ByeWeeks = make([]int, 0, len(byWeek))
	for w := range byWeek {
		a.ByeWeeks = append(a.ByeWeeks, w)
	}
	sort.Ints(a.ByeWeeks)

	for w := overviewFirstWeek; w <= overviewLastWeek; w++ {
		players := byWeek[w]
		a.ByeOverview = append(a.ByeOverview, ByeWeek{Week: w, Players: players, Count: len(players), HasConflict: len(players) >= 2})
	}
	return a
}

// balanceScore averages each position's closeness to the ideal roster, as a
// percentage. Overfilled positions can pull it below zero.
func balanceScore(counts map[model.Position]int) int {
	var total float64
	for _, pos := range model.RosterPositions {
		ideal := float64(model.IdealRoster[pos])
		diff := math.Abs(float64(counts[pos]) - ideal)
		total += (1 - diff/ideal) * 100
	}
	return int(math.Round(total / float64(len(model.RosterPositions))))
}

func teamType(c map[model.Position]int) string {
	switch {
	case c[model.RB] > c[model.WR]+1:
		return TeamRBHeavy
	case c[model.WR] > c[model.RB]+1:
		return TeamWRHeavy
	case c[model.QB] > 1:
		return TeamQBHeavy
	case c[model.TE] > 1:
		return TeamTEHeavy
	default:
		return TeamBalanced
	}
}
