package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/draftassist/internal/domain/availability"
)

// PlayersHandler serves the available players view.
type PlayersHandler struct {
	deps     SnapshotReader
	maxLimit int
	errs     errorWriter
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps SnapshotReader, maxLimit int, errs errorWriter) *PlayersHandler {
	return &PlayersHandler{deps: deps, maxLimit: maxLimit, errs: errs}
}

// HandleGetPlayers handles GET /players?position=&search=&sort=&limit=
// requests. Without a limit the whole available list is returned.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_players"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	query := availability.Query{
		Position: q.Get("position"),
		Search:   q.Get("search"),
		Sort:     availability.SortOrder(q.Get("sort")),
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			h.errs.write(r.Context(), w, op, fmt.Errorf("%w: limit %q", ErrBadRequest, s))
			return
		}
		if n > h.maxLimit {
			h.errs.write(r.Context(), w, op, fmt.Errorf("%w: limit %d above %d", ErrLimit, n, h.maxLimit))
			return
		}
		query.Limit = n
	}
	if err := query.Validate(); err != nil {
		h.errs.write(r.Context(), w, op, err)
		return
	}

	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		h.errs.write(r.Context(), w, op, err)
		return
	}
	players, err := availability.Filter(snap.Available, query)
	if err != nil {
		h.errs.write(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, wrap(snap, players))
}
