package draft

import (
	"context"
	"fmt"
	"strconv"

	"github.com/okian/draftassist/internal/domain/model"
)

// SleeperPayload groups the Sleeper responses for one draft. Rosters and
// Users are optional.
type SleeperPayload struct {
	Draft   SleeperDraft    `json:"draft"`
	Picks   []SleeperPick   `json:"picks"`
	Rosters []SleeperRoster `json:"rosters,omitempty"`
	Users   []SleeperUser   `json:"users,omitempty"`
}

// SleeperDraft is the draft-by-id response.
type SleeperDraft struct {
	DraftID  FlexString `json:"draft_id"`
	LeagueID FlexString `json:"league_id"`
	Status   string     `json:"status"`
	Type     string     `json:"type"`
	Season   FlexString `json:"season"`
	Settings struct {
		Teams  FlexInt `json:"teams"`
		Rounds FlexInt `json:"rounds"`
	} `json:"settings"`
	SlotToRosterID map[string]FlexInt `json:"slot_to_roster_id"`
	Metadata       struct {
		Name string `json:"name"`
	} `json:"metadata"`
}

// SleeperPick is one entry of the draft picks response.
type SleeperPick struct {
	PlayerID  FlexString `json:"player_id"`
	PickedBy  FlexString `json:"picked_by"`
	DraftSlot FlexInt    `json:"draft_slot"`
	Round     FlexInt    `json:"round"`
	PickNo    FlexInt    `json:"pick_no"`
	Metadata  struct {
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		Position  string  `json:"position"`
		Team      string  `json:"team"`
		Rank      FlexInt `json:"rank"`
		Tier      FlexInt `json:"tier"`
	} `json:"metadata"`
}

// SleeperRoster maps a roster onto its owner.
type SleeperRoster struct {
	OwnerID  FlexString `json:"owner_id"`
	RosterID FlexInt    `json:"roster_id"`
}

// SleeperUser carries a league member's display name.
type SleeperUser struct {
	UserID      FlexString `json:"user_id"`
	DisplayName string     `json:"display_name"`
}

func (n *Normalizer) normalizeSleeper(ctx context.Context, p *SleeperPayload) (*model.DraftState, error) {
	d := p.Draft
	teamCount := or(int(d.Settings.Teams), defaultTeams)
	if teamCount < 1 || teamCount > maxTeams {
		return nil, &NormalizeError{Source: model.SourceSleeper, Shape: ShapeSleeper, Err: fmt.Errorf("%w: %d teams", ErrDraftSize, teamCount)}
	}
	rounds := or(int(d.Settings.Rounds), defaultRounds)
	if rounds > maxRounds {
		return nil, &NormalizeError{Source: model.SourceSleeper, Shape: ShapeSleeper, Err: fmt.Errorf("%w: %d rounds", ErrDraftSize, rounds)}
	}
	userID := n.identity.SleeperUserID

	userSlot := 0
	if userID != "" {
		for _, pk := range p.Picks {
			if string(pk.PickedBy) == userID {
				userSlot = int(pk.DraftSlot)
			}
		}
	}

	owners := make(map[int]string, len(p.Rosters))
	for _, r := range p.Rosters {
		if r.OwnerID != "" && r.RosterID != 0 {
			owners[int(r.RosterID)] = string(r.OwnerID)
		}
	}
	displayNames := make(map[string]string, len(p.Users))
	for _, u := range p.Users {
		if u.UserID != "" && u.DisplayName != "" {
			displayNames[string(u.UserID)] = u.DisplayName
		}
	}

	s := &model.DraftState{
		Teams:       make([]model.Team, 0, teamCount),
		Status:      sleeperStatus(d.Status),
		TotalTeams:  teamCount,
		TotalRounds: rounds,
		DataSource:  model.SourceSleeper,
		LeagueName:  orString(d.Metadata.Name, "Sleeper League"),
		DraftType:   orString(d.Type, "snake"),
		Season:      string(d.Season),
	}

	for slot := 1; slot <= teamCount; slot++ {
		rosterID := or(int(d.SlotToRosterID[strconv.Itoa(slot)]), slot)
		owner := owners[rosterID]
		name := displayNames[owner]
		if owner == "" || name == "" {
			name = fmt.Sprintf("Team %d", rosterID)
		}
		s.Teams = append(s.Teams, model.Team{
			ID:            slot,
			Name:          name,
			OwnerID:       owner,
			RosterID:      rosterID,
			DraftPosition: slot,
		})
	}

	// Before the user has picked, fall back to roster ownership.
	if userSlot < 1 || userSlot > teamCount {
		userSlot = 0
		for _, t := range s.Teams {
			if userID != "" && t.OwnerID == userID {
				userSlot = t.ID
				break
			}
		}
	}
	if userSlot != 0 {
		t := &s.Teams[userSlot-1]
		t.IsUserTeam = true
		if n.identity.SleeperDisplayName != "" {
			t.Name = n.identity.SleeperDisplayName
		}
		s.UserTeamID = userSlot
	}

	for i, pk := range p.Picks {
		rec := sleeperRecord(i, pk)
		team := n.attributeSleeper(s, rec)
		if team == nil {
			s.DraftedPlayers = append(s.DraftedPlayers, rec)
			n.unattributed(ctx, s, rec)
			continue
		}
		rec.TeamID = team.ID
		team.Picks = append(team.Picks, rec)
		s.DraftedPlayers = append(s.DraftedPlayers, rec)
	}

	finish(s, d.Status == string(model.StatusComplete))
	return s, nil
}

// attributeSleeper resolves a pick's team via picked_by ownership, then via
// the recorded draft slot.
func (n *Normalizer) attributeSleeper(s *model.DraftState, rec model.DraftedPlayer) *model.Team {
	if rec.PickedBy != "" {
		for i := range s.Teams {
			if s.Teams[i].OwnerID == rec.PickedBy {
				return &s.Teams[i]
			}
		}
	}
	if rec.TeamID >= 1 && rec.TeamID <= len(s.Teams) {
		return &s.Teams[rec.TeamID-1]
	}
	return nil
}

func sleeperRecord(index int, pk SleeperPick) model.DraftedPlayer {
	m := pk.Metadata
	name := "Unknown Player"
	if m.FirstName != "" && m.LastName != "" {
		name = m.FirstName + " " + m.LastName
	}
	pos := model.ParsePosition(m.Position)
	return model.DraftedPlayer{
		ID:         string(pk.PlayerID),
		Name:       name,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Position:   pos,
		Team:       orString(m.Team, unknownTeam),
		Rank:       or(int(m.Rank), unknownRank),
		Tier:       or(int(m.Tier), unknownTier),
		TeamID:     int(pk.DraftSlot),
		PickedBy:   string(pk.PickedBy),
		DraftRound: or(int(pk.Round), 1),
		PickNumber: or(int(pk.PickNo), index+1),
	}
}

func sleeperStatus(s string) model.DraftStatus {
	switch s {
	case "pre_draft":
		return model.StatusPreDraft
	case "complete":
		return model.StatusComplete
	default:
		return model.StatusInProgress
	}
}

// or returns v unless it is below 1.
func or(v, def int) int {
	if v < 1 {
		return def
	}
	return v
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
