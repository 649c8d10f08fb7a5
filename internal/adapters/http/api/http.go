// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/draftassist/internal/adapters/repository"
	"github.com/okian/draftassist/pkg/logger"
)

// defaultMaxLimit caps the players view when no option is given.
const defaultMaxLimit = 500

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Snapshot returns the applied snapshot.
	Snapshot(ctx context.Context) (*repository.Snapshot, error)

	// Refresh runs one refresh cycle and returns the applied snapshot.
	Refresh(ctx context.Context) (*repository.Snapshot, error)

	// SelectLeague switches the ranking table and rebuilds the snapshot.
	SelectLeague(ctx context.Context, league string) (*repository.Snapshot, error)

	League() string
	Leagues() []string
}

// Server wires HTTP routes for the draft API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	draftHandler   *DraftHandler
	playersHandler *PlayersHandler
	reportHandler  *ReportHandler
	leagueHandler  *LeagueHandler
	refreshHandler *RefreshHandler
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	maxLimit int
	logger   logger.Logger
}

// WithMaxLimit caps the limit accepted by the players view.
func WithMaxLimit(n int) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxLimit = n
		}
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{maxLimit: defaultMaxLimit, logger: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	errs := errorWriter{log: o.logger}
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		draftHandler:   NewDraftHandler(deps, errs),
		playersHandler: NewPlayersHandler(deps, o.maxLimit, errs),
		reportHandler:  NewReportHandler(deps, errs),
		leagueHandler:  NewLeagueHandler(deps, errs),
		refreshHandler: NewRefreshHandler(deps, errs),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/metrics", "metrics", s.healthHandler.HandleMetrics)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/draft", "draft", s.draftHandler.HandleGetDraft)
	route("/board", "board", s.draftHandler.HandleGetBoard)
	route("/players", "players", s.playersHandler.HandleGetPlayers)
	route("/recommendations", "recommendations", s.reportHandler.HandleGetRecommendations)
	route("/analysis", "analysis", s.reportHandler.HandleGetAnalysis)
	route("/depth-charts", "depth_charts", s.reportHandler.HandleGetDepthCharts)
	route("/leagues", "leagues", s.leagueHandler.HandleGetLeagues)
	route("/league", "league", s.leagueHandler.HandlePostLeague)
	route("/refresh", "refresh", s.refreshHandler.HandlePostRefresh)
}

// envelope wraps every snapshot-derived view with the identity of the
// snapshot it was read from.
type envelope struct {
	SnapshotID string `json:"snapshotId"`
	Version    uint64 `json:"version"`
	League     string `json:"league"`
	Data       any    `json:"data"`
}

func wrap(snap *repository.Snapshot, data any) envelope {
	return envelope{SnapshotID: snap.ID, Version: snap.Version, League: snap.League, Data: data}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
