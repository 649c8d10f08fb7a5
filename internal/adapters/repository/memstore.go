package repository

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/okian/draftassist/pkg/metrics"
)

// MemoryStore keeps the current snapshot behind an atomic pointer. Writers
// are serialized; readers never lock.
type MemoryStore struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[Snapshot]
	version  atomic.Uint64
	closed   atomic.Bool

	clock clockwork.Clock
	newID func() string
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		clock: clockwork.NewRealClock(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current implements Store.Current.
func (s *MemoryStore) Current(_ context.Context) (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Apply implements Store.Apply.
func (s *MemoryStore) Apply(_ context.Context, in Snapshot) (*Snapshot, error) {
	if in.State == nil {
		return nil, ErrInvalidState
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	snap := in
	snap.ID = s.newID()
	snap.Version = s.version.Add(1)
	snap.AppliedAt = s.clock.Now()
	s.snapshot.Store(&snap)

	unattributed := len(snap.State.Unattributed)
	metrics.UpdateSnapshot(len(snap.Catalog), len(snap.State.DraftedPlayers), len(snap.Available), unattributed, snap.AppliedAt.Unix())
	return &snap, nil
}

// Version implements Store.Version.
func (s *MemoryStore) Version(_ context.Context) uint64 {
	return s.version.Load()
}

// Close rejects further applies. The current snapshot stays readable.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed.Store(true)
	return nil
}
