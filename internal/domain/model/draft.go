package model

import "strings"

// DraftStatus is the lifecycle state of a draft.
type DraftStatus string

const (
	StatusPreDraft   DraftStatus = "pre_draft"
	StatusInProgress DraftStatus = "in_progress"
	StatusComplete   DraftStatus = "complete"
)

// DataSource names the upstream a DraftState was built from.
type DataSource string

const (
	SourceSleeper    DataSource = "sleeper"
	SourceAppsScript DataSource = "google_apps_script"
)

// DraftedPlayer is one pick as reported by the draft source.
type DraftedPlayer struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	FirstName  string   `json:"firstName,omitempty"`
	LastName   string   `json:"lastName,omitempty"`
	Position   Position `json:"position"`
	Team       string   `json:"team"`
	Rank       int      `json:"rank"`
	Tier       int      `json:"tier"`
	TeamID     int      `json:"teamId"`
	PickedBy   string   `json:"pickedBy,omitempty"`
	DraftRound int      `json:"draftRound"`
	PickNumber int      `json:"pickNumber"`
}

// DisplayName prefers the first and last name from source metadata.
func (d DraftedPlayer) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName))
	if d.FirstName != "" && d.LastName != "" && full != "" {
		return full
	}
	return d.Name
}

// Team is one draft slot.
type Team struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	OwnerID       string          `json:"ownerId,omitempty"`
	RosterID      int             `json:"rosterId,omitempty"`
	Picks         []DraftedPlayer `json:"picks"`
	DraftPosition int             `json:"draftPosition"`
	IsUserTeam    bool            `json:"isUserTeam"`
}

// DraftState is an immutable view of a draft, rebuilt on every refresh.
type DraftState struct {
	CurrentPick    int             `json:"currentPick"`
	Teams          []Team          `json:"teams"`
	DraftedPlayers []DraftedPlayer `json:"draftedPlayers"`
	Status         DraftStatus     `json:"draftStatus"`
	TotalRounds    int             `json:"totalRounds"`
	TotalTeams     int             `json:"totalTeams"`
	TotalPicks     int             `json:"totalPicks"`
	PicksRemaining int             `json:"picksRemaining"`
	// UserTeamID is the slot of the local user's team; 0 means none.
	UserTeamID int        `json:"userTeamId"`
	DataSource DataSource `json:"dataSource"`
	LeagueName string     `json:"leagueName"`
	DraftType  string     `json:"draftType"`
	Season     string     `json:"season"`
	// Unattributed lists picks no team claimed. They still count as drafted.
	Unattributed []DraftedPlayer `json:"unattributed,omitempty"`
}

// TeamByID returns the team at a draft slot.
func (s *DraftState) TeamByID(id int) (Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// UserTeam returns the local user's team when one was identified.
func (s *DraftState) UserTeam() (Team, bool) {
	if s.UserTeamID == 0 {
		return Team{}, false
	}
	return s.TeamByID(s.UserTeamID)
}

// AttributedPicks counts picks held on team rosters.
func (s *DraftState) AttributedPicks() int {
	n := 0
	for _, t := range s.Teams {
		n += len(t.Picks)
	}
	return n
}

// AttributionHolds reports whether every pick is on exactly one roster or in
// the unattributed list.
func (s *DraftState) AttributionHolds() bool {
	return s.AttributedPicks() == len(s.DraftedPlayers)-len(s.Unattributed)
}
