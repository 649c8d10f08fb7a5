package service

import (
	"errors"

	"github.com/okian/draftassist/internal/adapters/repository"
)

// Sentinel errors returned by the Service.
var (
	ErrRefreshInFlight = errors.New("refresh already in flight")
	ErrStopped         = errors.New("service stopped")
	ErrNoSnapshot      = repository.ErrNoSnapshot
	ErrUnknownLeague   = errors.New("unknown league")
	ErrNoSource        = errors.New("draft source not configured")
	ErrNoRankings      = errors.New("ranking source not configured")
)
