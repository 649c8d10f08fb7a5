package api

import (
	"net/http"

	"github.com/okian/draftassist/internal/domain/board"
	"github.com/okian/draftassist/internal/domain/model"
)

// DraftHandler serves the normalized draft state and its board grid.
type DraftHandler struct {
	deps SnapshotReader
	errs errorWriter
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(deps SnapshotReader, errs errorWriter) *DraftHandler {
	return &DraftHandler{deps: deps, errs: errs}
}

type draftResponse struct {
	State *model.DraftState `json:"state"`
	Info  board.Info        `json:"info"`
}

// HandleGetDraft handles GET /draft requests.
func (h *DraftHandler) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_draft"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		h.errs.write(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, wrap(snap, draftResponse{State: snap.State, Info: board.Summarize(snap.State)}))
}

// HandleGetBoard handles GET /board requests.
func (h *DraftHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_board"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		h.errs.write(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, wrap(snap, board.Build(snap.State)))
}
