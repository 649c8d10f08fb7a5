package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/names"
)

const (
	boardKey          = "Draft Board"
	defaultBoardName  = "Google Apps Script League"
	defaultBoardDraft = "snake"
)

type enhancedPick struct {
	Team     string     `json:"team"`
	Player   FlexString `json:"player"`
	Position string     `json:"position"`
	Rank     FlexInt    `json:"rank"`
	Tier     FlexInt    `json:"tier"`
}

type enhancedPayload struct {
	Board []struct {
		Picks []enhancedPick `json:"picks"`
	} `json:"Draft Board"`
	Teams []struct {
		Name          string  `json:"name"`
		DraftPosition FlexInt `json:"draftPosition"`
	} `json:"teams"`
	Settings struct {
		TotalRounds FlexInt    `json:"totalRounds"`
		LeagueName  string     `json:"leagueName"`
		DraftType   string     `json:"draftType"`
		Season      FlexString `json:"season"`
	} `json:"settings"`
}

// normalizeBoard parses a spreadsheet board. Enhanced is tried first when the
// probe sees a picks array; any enhanced failure falls back to simple.
func (n *Normalizer) normalizeBoard(ctx context.Context, data json.RawMessage) (*model.DraftState, error) {
	rounds, err := boardRounds(data)
	if err != nil {
		return nil, &NormalizeError{Source: model.SourceAppsScript, Shape: ShapeSimple, Err: err}
	}

	if probeEnhanced(rounds) {
		s, enhancedErr := n.normalizeEnhanced(ctx, data)
		if enhancedErr == nil {
			return s, nil
		}
		s, simpleErr := n.normalizeSimple(ctx, rounds)
		if simpleErr == nil {
			return s, nil
		}
		return nil, errors.Join(
			&NormalizeError{Source: model.SourceAppsScript, Shape: ShapeEnhanced, Err: enhancedErr},
			&NormalizeError{Source: model.SourceAppsScript, Shape: ShapeSimple, Err: simpleErr},
		)
	}

	s, err := n.normalizeSimple(ctx, rounds)
	if err != nil {
		return nil, &NormalizeError{Source: model.SourceAppsScript, Shape: ShapeSimple, Err: err}
	}
	return s, nil
}

func boardRounds(data json.RawMessage) ([]json.RawMessage, error) {
	top, ok := decodeObject(data)
	if !ok {
		return nil, ErrInvalidBoard
	}
	raw, ok := lookup(top, boardKey)
	if !ok || !isArray(raw) {
		return nil, ErrInvalidBoard
	}
	var rounds []json.RawMessage
	if err := json.Unmarshal(raw, &rounds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	return rounds, nil
}

// probeEnhanced reports whether the first round carries a picks array.
func probeEnhanced(rounds []json.RawMessage) bool {
	if len(rounds) == 0 {
		return false
	}
	first, ok := decodeObject(rounds[0])
	if !ok {
		return false
	}
	picks, ok := lookup(first, "picks")
	return ok && isArray(picks)
}

func (n *Normalizer) normalizeEnhanced(ctx context.Context, data json.RawMessage) (*model.DraftState, error) {
	var p enhancedPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotEnhanced, err)
	}
	if len(p.Teams) == 0 {
		return nil, ErrNoEnhancedTeams
	}
	if rounds := int(p.Settings.TotalRounds); rounds > maxRounds {
		return nil, fmt.Errorf("%w: %d rounds", ErrDraftSize, rounds)
	}

	s := &model.DraftState{
		Teams:       make([]model.Team, 0, len(p.Teams)),
		Status:      model.StatusInProgress,
		TotalTeams:  len(p.Teams),
		TotalRounds: or(int(p.Settings.TotalRounds), len(p.Board)),
		DataSource:  model.SourceAppsScript,
		LeagueName:  orString(p.Settings.LeagueName, defaultBoardName),
		DraftType:   orString(p.Settings.DraftType, defaultBoardDraft),
		Season:      string(p.Settings.Season),
	}
	for i, t := range p.Teams {
		s.Teams = append(s.Teams, model.Team{
			ID:            i + 1,
			Name:          t.Name,
			DraftPosition: or(int(t.DraftPosition), i+1),
		})
	}

	pickNumber := 1
	for r, round := range p.Board {
		for _, pk := range round.Picks {
			name := strings.TrimSpace(string(pk.Player))
			if name == "" {
				continue
			}
			rec := model.DraftedPlayer{
				ID:         fmt.Sprintf("pick-%d", pickNumber),
				Name:       name,
				Position:   model.ParsePosition(pk.Position),
				Team:       unknownTeam,
				Rank:       or(int(pk.Rank), unknownRank),
				Tier:       or(int(pk.Tier), unknownTier),
				DraftRound: r + 1,
				PickNumber: pickNumber,
			}
			pickNumber++
			n.attributeByName(ctx, s, rec, pk.Team)
		}
	}

	n.markBoardUser(s)
	finish(s, false)
	return s, nil
}

// normalizeSimple reads rounds keyed by team column. Pick numbers follow the
// board's scan order: rounds top to bottom, columns left to right.
func (n *Normalizer) normalizeSimple(ctx context.Context, rounds []json.RawMessage) (*model.DraftState, error) {
	if len(rounds) == 0 {
		return nil, ErrNoRounds
	}
	first, ok := decodeObject(rounds[0])
	if !ok {
		return nil, ErrNoRounds
	}
	if len(first) == 0 {
		return nil, ErrNoTeams
	}
	for _, col := range first {
		if isArray(col.value) {
			return nil, fmt.Errorf("%w: column %q holds a list, not a pick", ErrNoTeams, col.key)
		}
	}

	s := &model.DraftState{
		Teams:       make([]model.Team, 0, len(first)),
		Status:      model.StatusInProgress,
		TotalTeams:  len(first),
		TotalRounds: len(rounds),
		DataSource:  model.SourceAppsScript,
		LeagueName:  defaultBoardName,
		DraftType:   defaultBoardDraft,
	}
	for i, col := range first {
		s.Teams = append(s.Teams, model.Team{ID: i + 1, Name: col.key, DraftPosition: i + 1})
	}

	pickNumber := 1
	for r, raw := range rounds {
		cells, ok := decodeObject(raw)
		if !ok {
			continue
		}
		for i := range s.Teams {
			cell, ok := lookup(cells, s.Teams[i].Name)
			if !ok {
				continue
			}
			name, pos, ok := parseCell(cell)
			if !ok {
				continue
			}
			rec := model.DraftedPlayer{
				ID:         fmt.Sprintf("pick-%d", pickNumber),
				Name:       name,
				Position:   pos,
				Team:       unknownTeam,
				Rank:       unknownRank,
				Tier:       unknownTier,
				TeamID:     s.Teams[i].ID,
				DraftRound: r + 1,
				PickNumber: pickNumber,
			}
			pickNumber++
			s.Teams[i].Picks = append(s.Teams[i].Picks, rec)
			s.DraftedPlayers = append(s.DraftedPlayers, rec)
		}
	}

	n.markBoardUser(s)
	finish(s, false)
	return s, nil
}

// parseCell reads a plain name or a {player, position} object.
func parseCell(cell json.RawMessage) (string, model.Position, bool) {
	var name string
	if err := json.Unmarshal(cell, &name); err == nil {
		name = strings.TrimSpace(name)
		return name, model.Unknown, name != ""
	}
	var obj struct {
		Player   FlexString `json:"player"`
		Position string     `json:"position"`
	}
	if err := json.Unmarshal(cell, &obj); err != nil {
		return "", "", false
	}
	name = strings.TrimSpace(string(obj.Player))
	return name, model.ParsePosition(obj.Position), name != ""
}

func (n *Normalizer) attributeByName(ctx context.Context, s *model.DraftState, rec model.DraftedPlayer, teamName string) {
	s.DraftedPlayers = append(s.DraftedPlayers, rec)
	for i := range s.Teams {
		if names.Equal(s.Teams[i].Name, teamName) {
			rec.TeamID = s.Teams[i].ID
			s.DraftedPlayers[len(s.DraftedPlayers)-1] = rec
			s.Teams[i].Picks = append(s.Teams[i].Picks, rec)
			return
		}
	}
	n.unattributed(ctx, s, rec)
}

// markBoardUser flags the first team whose name contains the board match.
func (n *Normalizer) markBoardUser(s *model.DraftState) {
	for i := range s.Teams {
		if names.Contains(s.Teams[i].Name, n.identity.BoardMatch) {
			s.Teams[i].IsUserTeam = true
			s.UserTeamID = s.Teams[i].ID
			return
		}
	}
}
