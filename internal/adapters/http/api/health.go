// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/okian/draftassist/internal/adapters/repository"
	"github.com/okian/draftassist/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SnapshotReader reads the applied snapshot.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (*repository.Snapshot, error)
}

// HealthHandler handles health check and metrics requests.
type HealthHandler struct {
	deps    SnapshotReader
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps SnapshotReader) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status     string     `json:"status"`
	SnapshotID string     `json:"snapshotId,omitempty"`
	Version    uint64     `json:"version"`
	AppliedAt  *time.Time `json:"appliedAt,omitempty"`
}

// HandleHealth handles GET /healthz requests.
// If the Accept header asks for openmetrics or plain text, it returns
// Prometheus metrics. Otherwise it returns the JSON health status; the
// status is "loading" until the first snapshot is applied.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/openmetrics-text") || strings.Contains(accept, "text/plain") {
		h.metrics.ServeHTTP(w, r)
		return
	}

	resp := healthResponse{Status: "loading"}
	if snap, err := h.deps.Snapshot(r.Context()); err == nil {
		at := snap.AppliedAt
		resp = healthResponse{Status: "ok", SnapshotID: snap.ID, Version: snap.Version, AppliedAt: &at}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleMetrics handles GET /metrics requests.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
