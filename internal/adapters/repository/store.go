// Package repository holds the last applied draft snapshot.
package repository

import (
	"context"
	"time"

	"github.com/okian/draftassist/internal/domain/catalog"
	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/recommend"
)

// Snapshot is one applied refresh. It is never mutated after Apply; readers
// share it freely.
type Snapshot struct {
	ID        string
	Version   uint64
	AppliedAt time.Time
	// RefreshID correlates the snapshot with the refresh logs.
	RefreshID string

	League string
	State  *model.DraftState
	// Rankings is the raw workbook the catalog was built from, kept so the
	// league can be switched without refetching.
	Rankings  catalog.RawData
	Catalog   []model.Player
	Available []model.Player

	// Report is nil when ReportErr is set, e.g. no user team was found.
	Report    *recommend.Report
	ReportErr error
}

// Store provides access to the applied snapshot.
type Store interface {
	// Current returns the applied snapshot or ErrNoSnapshot.
	Current(ctx context.Context) (*Snapshot, error)

	// Apply stamps and publishes s, replacing the current snapshot. The
	// stamped copy is returned; s itself is not modified.
	Apply(ctx context.Context, s Snapshot) (*Snapshot, error)

	// Version returns the number of applied snapshots.
	Version(ctx context.Context) uint64
}
