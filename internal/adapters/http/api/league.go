package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/draftassist/internal/adapters/repository"
	service "github.com/okian/draftassist/internal/app"
)

// LeagueDependencies defines the league operations.
type LeagueDependencies interface {
	SelectLeague(ctx context.Context, league string) (*repository.Snapshot, error)
	League() string
	Leagues() []string
}

// LeagueHandler lists and switches leagues.
type LeagueHandler struct {
	deps LeagueDependencies
	errs errorWriter
}

// NewLeagueHandler creates a new league handler.
func NewLeagueHandler(deps LeagueDependencies, errs errorWriter) *LeagueHandler {
	return &LeagueHandler{deps: deps, errs: errs}
}

type leaguesResponse struct {
	Selected string   `json:"selected"`
	Leagues  []string `json:"leagues"`
}

type leagueRequest struct {
	League string `json:"league"`
}

type leagueResponse struct {
	League  string          `json:"league"`
	Applied bool            `json:"applied"`
	Update  *service.Update `json:"update,omitempty"`
}

// HandleGetLeagues handles GET /leagues requests.
func (h *LeagueHandler) HandleGetLeagues(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, leaguesResponse{Selected: h.deps.League(), Leagues: h.deps.Leagues()})
}

// HandlePostLeague handles POST /league requests. Before the first refresh
// the selection is stored and answered with 202.
func (h *LeagueHandler) HandlePostLeague(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_league"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req leagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.write(r.Context(), w, op, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	league := strings.TrimSpace(req.League)
	if league == "" {
		h.errs.write(r.Context(), w, op, fmt.Errorf("%w: missing league", ErrBadRequest))
		return
	}

	snap, err := h.deps.SelectLeague(r.Context(), league)
	switch {
	case errors.Is(err, service.ErrNoSnapshot):
		writeJSON(w, http.StatusAccepted, leagueResponse{League: league})
	case err != nil:
		h.errs.write(r.Context(), w, op, err)
	default:
		u := service.UpdateFrom(snap)
		writeJSON(w, http.StatusOK, leagueResponse{League: league, Applied: true, Update: &u})
	}
}
