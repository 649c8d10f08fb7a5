// Package board lays a draft out as a rounds by teams grid and summarizes
// its progress.
package board

import (
	"math"
	"sort"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/snake"
)

// NoPosition is reported as the most drafted position of an empty draft.
const NoPosition = "None"

// TeamHeader identifies a grid column.
type TeamHeader struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	DraftPosition int    `json:"draftPosition"`
	IsUserTeam    bool   `json:"isUserTeam"`
	Picks         int    `json:"picks"`
}

// Cell is one round of one team. Player is nil until the pick is made.
type Cell struct {
	Round      int                  `json:"round"`
	TeamID     int                  `json:"teamId"`
	PickNumber int                  `json:"pickNumber"`
	Player     *model.DraftedPlayer `json:"player"`
}

// Info summarizes the draft for a header panel.
type Info struct {
	Status              model.DraftStatus `json:"draftStatus"`
	DataSource          model.DataSource  `json:"dataSource"`
	LeagueName          string            `json:"leagueName"`
	Season              string            `json:"season"`
	DraftType           string            `json:"draftType"`
	TotalTeams          int               `json:"totalTeams"`
	TotalRounds         int               `json:"totalRounds"`
	TotalPicks          int               `json:"totalPicks"`
	CurrentPick         int               `json:"currentPick"`
	CurrentRound        int               `json:"currentRound"`
	PicksMade           int               `json:"picksMade"`
	PicksRemaining      int               `json:"picksRemaining"`
	ProgressPercent     int               `json:"progressPercent"`
	AveragePicksPerTeam int               `json:"averagePicksPerTeam"`
	MostDraftedPosition string            `json:"mostDraftedPosition"`
	TeamsWithPicks      int               `json:"teamsWithPicks"`
	OnTheClock          *TeamHeader       `json:"onTheClock,omitempty"`
	UserTeam            *TeamHeader       `json:"userTeam,omitempty"`
}

// Board is the grid plus its summary. Rows are rounds, columns follow Teams.
type Board struct {
	Teams []TeamHeader `json:"teams"`
	Rows  [][]Cell     `json:"rows"`
	Info  Info         `json:"info"`
}

// Build lays out a draft. A nil state yields an empty board.
func Build(state *model.DraftState) Board {
	if state == nil {
		return Board{Teams: []TeamHeader{}, Rows: [][]Cell{}, Info: Info{MostDraftedPosition: NoPosition}}
	}
	teams := append([]model.Team(nil), state.Teams...)
	sort.SliceStable(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })

	b := Board{Teams: make([]TeamHeader, 0, len(teams))}
	for _, t := range teams {
		b.Teams = append(b.Teams, header(t))
	}

	rounds := state.TotalRounds
	picks := make([][]model.DraftedPlayer, len(teams))
	for i, t := range teams {
		picks[i] = ordered(t.Picks)
		rounds = max(rounds, len(t.Picks))
	}
	b.Rows = make([][]Cell, rounds)
	for r := 1; r <= rounds; r++ {
		row := make([]Cell, len(teams))
		for col, t := range teams {
			c := Cell{Round: r, TeamID: t.ID}
			c.PickNumber, _ = snake.PickNumberForTeamAndRound(t.ID-1, r, len(teams))
			if r <= len(picks[col]) {
				c.Player = &picks[col][r-1]
			}
			row[col] = c
		}
		b.Rows[r-1] = row
	}
	b.Info = Summarize(state)
	return b
}

// Summarize computes the draft info panel.
func Summarize(state *model.DraftState) Info {
	if state == nil {
		return Info{MostDraftedPosition: NoPosition}
	}
	made := len(state.DraftedPlayers)
	in := Info{
		Status:              state.Status,
		DataSource:          state.DataSource,
		LeagueName:          state.LeagueName,
		Season:              state.Season,
		DraftType:           state.DraftType,
		TotalTeams:          state.TotalTeams,
		TotalRounds:         state.TotalRounds,
		TotalPicks:          state.TotalPicks,
		CurrentPick:         state.CurrentPick,
		CurrentRound:        1,
		PicksMade:           made,
		PicksRemaining:      state.PicksRemaining,
		MostDraftedPosition: MostDraftedPosition(state.DraftedPlayers),
	}
	if in.TotalTeams == 0 {
		in.TotalTeams = len(state.Teams)
	}
	if state.TotalPicks > 0 {
		in.ProgressPercent = int(math.Round(float64(made) / float64(state.TotalPicks) * 100))
	}
	if len(state.Teams) > 0 {
		in.AveragePicksPerTeam = int(math.Round(float64(made) / float64(len(state.Teams))))
	}
	for _, t := range state.Teams {
		if len(t.Picks) > 0 {
			in.TeamsWithPicks++
		}
	}
	if r, ok := snake.Round(state.CurrentPick, in.TotalTeams); ok {
		in.CurrentRound = r
	}
	if state.Status != model.StatusComplete {
		if slot, ok := snake.TeamForPick(state.CurrentPick, in.TotalTeams); ok {
			if t, found := state.TeamByID(slot); found {
				h := header(t)
				in.OnTheClock = &h
			}
		}
	}
	if t, ok := state.UserTeam(); ok {
		h := header(t)
		in.UserTeam = &h
	}
	return in
}

// MostDraftedPosition returns the position picked most often. Ties go to the
// position picked first.
func MostDraftedPosition(picks []model.DraftedPlayer) string {
	if len(picks) == 0 {
		return NoPosition
	}
	counts := map[model.Position]int{}
	var order []model.Position
	for _, p := range picks {
		pos := p.Position
		if pos == "" {
			pos = model.Unknown
		}
		if counts[pos] == 0 {
			order = append(order, pos)
		}
		counts[pos]++
	}
	best := order[0]
	for _, pos := range order[1:] {
		if counts[pos] > counts[best] {
			best = pos
		}
	}
	return string(best)
}

func ordered(picks []model.DraftedPlayer) []model.DraftedPlayer {
	out := append([]model.DraftedPlayer(nil), picks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PickNumber < out[j].PickNumber })
	return out
}

func header(t model.Team) TeamHeader {
	return TeamHeader{ID: t.ID, Name: t.Name, DraftPosition: t.DraftPosition, IsUserTeam: t.IsUserTeam, Picks: len(t.Picks)}
}
