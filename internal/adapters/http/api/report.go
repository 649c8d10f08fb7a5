package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/draftassist/internal/domain/catalog"
	"github.com/okian/draftassist/internal/domain/depthchart"
	"github.com/okian/draftassist/internal/domain/recommend"
)

// ReportHandler serves the recommendation report and the team views.
type ReportHandler struct {
	deps SnapshotReader
	errs errorWriter
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps SnapshotReader, errs errorWriter) *ReportHandler {
	return &ReportHandler{deps: deps, errs: errs}
}

// HandleGetRecommendations handles GET /recommendations requests. A draft
// without an identified user team answers 422.
func (h *ReportHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_recommendations"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		h.errs.write(r.Context(), w, op, err)
		return
	}
	if snap.ReportErr != nil {
		h.errs.write(r.Context(), w, op, snap.ReportErr)
		return
	}
	writeJSON(w, http.StatusOK, wrap(snap, snap.Report))
}

// HandleGetAnalysis handles GET /analysis?team=N requests. Without a team
// the user's team is analyzed.
func (h *ReportHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_analysis"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	teamID := 0
	if s := r.URL.Query().Get("team"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			h.errs.write(r.Context(), w, op, fmt.Errorf("%w: team %q", ErrBadRequest, s))
			return
		}
		teamID = n
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		h.errs.write(r.Context(), w, op, err)
		return
	}
	analysis, err := recommend.AnalyzeTeam(snap.State, snap.Catalog, teamID)
	if err != nil {
		h.errs.write(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, wrap(snap, analysis))
}

// HandleGetDepthCharts handles GET /depth-charts requests.
func (h *ReportHandler) HandleGetDepthCharts(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_depth_charts"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		h.errs.write(r.Context(), w, op, err)
		return
	}
	charts := depthchart.Build(catalog.DepthCharts(snap.Rankings), snap.Catalog, snap.State)
	writeJSON(w, http.StatusOK, wrap(snap, charts))
}
