package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/draftassist/internal/adapters/source"
	service "github.com/okian/draftassist/internal/app"
	"github.com/okian/draftassist/internal/domain/availability"
	"github.com/okian/draftassist/internal/domain/draft"
	"github.com/okian/draftassist/internal/domain/recommend"
	"github.com/okian/draftassist/pkg/logger"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrLimit      = errors.New("limit exceeded")
)

// errorWriter translates service and domain errors into HTTP responses.
type errorWriter struct {
	log logger.Logger
}

// classify maps an error onto its status and response code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrLimit):
		return http.StatusBadRequest, "limit_exceeded"
	case errors.Is(err, ErrBadRequest), errors.Is(err, availability.ErrInvalidQuery):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrUnknownLeague):
		return http.StatusBadRequest, "unknown_league"
	case errors.Is(err, service.ErrNoSnapshot):
		return http.StatusNotFound, "no_snapshot"
	case errors.Is(err, recommend.ErrUnknownTeam):
		return http.StatusNotFound, "unknown_team"
	case errors.Is(err, service.ErrRefreshInFlight):
		return http.StatusConflict, "refresh_in_flight"
	case errors.Is(err, recommend.ErrNoUserTeam):
		return http.StatusUnprocessableEntity, "no_user_team"
	case errors.Is(err, source.ErrFetch):
		return http.StatusBadGateway, "fetch_failed"
	case errors.Is(err, draft.ErrNormalize):
		return http.StatusBadGateway, "normalize_failed"
	case errors.Is(err, service.ErrStopped):
		return http.StatusServiceUnavailable, "stopped"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func (e errorWriter) write(ctx context.Context, w http.ResponseWriter, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		e.log.Warn(ctx, "request failed", logger.String("op", op), logger.Int("status", status), logger.Error(err))
	}
	writeError(w, status, code, err)
}
