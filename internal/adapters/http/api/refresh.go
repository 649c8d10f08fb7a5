package api

import (
	"context"
	"net/http"

	"github.com/okian/draftassist/internal/adapters/repository"
	service "github.com/okian/draftassist/internal/app"
)

// RefreshDependencies defines the refresh operation.
type RefreshDependencies interface {
	Refresh(ctx context.Context) (*repository.Snapshot, error)
}

// RefreshHandler triggers a refresh cycle.
type RefreshHandler struct {
	deps RefreshDependencies
	errs errorWriter
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies, errs errorWriter) *RefreshHandler {
	return &RefreshHandler{deps: deps, errs: errs}
}

// HandlePostRefresh handles POST /refresh requests. It answers once the
// cycle has applied or failed; an overlapping call answers 409.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Refresh(r.Context())
	if err != nil {
		h.errs.write(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, service.UpdateFrom(snap))
}
