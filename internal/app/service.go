// Package service orchestrates draft refreshes and serves the derived views
// to the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/okian/draftassist/internal/adapters/poller"
	"github.com/okian/draftassist/internal/adapters/repository"
	"github.com/okian/draftassist/internal/domain/availability"
	"github.com/okian/draftassist/internal/domain/catalog"
	"github.com/okian/draftassist/internal/domain/draft"
	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/recommend"
	"github.com/okian/draftassist/pkg/logger"
	"github.com/okian/draftassist/pkg/metrics"
)

const (
	defaultLeague       = "FanDuel"
	subscriberBuffer    = 4
	pollerShutdownLimit = 10 * time.Second
)

// SleeperFetcher loads a Sleeper draft.
type SleeperFetcher interface {
	Fetch(ctx context.Context, draftID string) (*draft.SleeperPayload, error)
}

// BoardFetcher loads the spreadsheet draft board.
type BoardFetcher interface {
	Fetch(ctx context.Context) (json.RawMessage, error)
}

// RankingFetcher loads the ranking workbook.
type RankingFetcher interface {
	Fetch(ctx context.Context) (catalog.RawData, error)
}

// Update summarizes a newly applied snapshot for subscribers.
type Update struct {
	SnapshotID     string            `json:"snapshotId"`
	Version        uint64            `json:"version"`
	AppliedAt      time.Time         `json:"appliedAt"`
	League         string            `json:"league"`
	Status         model.DraftStatus `json:"draftStatus"`
	CurrentPick    int               `json:"currentPick"`
	PicksRemaining int               `json:"picksRemaining"`
	Drafted        int               `json:"drafted"`
	Unattributed   int               `json:"unattributed"`
}

// Service runs refresh cycles and answers read queries from the applied
// snapshot.
type Service struct {
	mu sync.RWMutex

	// Sources
	dataSource model.DataSource
	draftID    string
	sleeper    SleeperFetcher
	board      BoardFetcher
	rankings   RankingFetcher

	// Domain
	normalizer *draft.Normalizer
	engine     *recommend.Engine
	catalog    *catalog.Catalog
	league     string

	store           repository.Store
	refreshInterval time.Duration
	poller          *poller.Poller
	clock           clockwork.Clock

	// State
	started  bool
	stopped  atomic.Bool
	inFlight atomic.Bool

	subMu       sync.Mutex
	subscribers map[int]chan Update
	nextSub     int

	// Logging
	logger logger.Logger
}

// New constructs a Service. A draft source and a ranking source must be set
// before Refresh can succeed.
func New(opts ...Option) *Service {
	s := &Service{
		normalizer:  draft.New(),
		engine:      recommend.New(),
		catalog:     catalog.New(),
		league:      defaultLeague,
		clock:       clockwork.NewRealClock(),
		subscribers: make(map[int]chan Update),
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithClock(s.clock))
	}
	return s
}

// Start launches the periodic refresh when an interval is configured.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.stopped.Load() {
		return ErrStopped
	}

	if s.refreshInterval > 0 {
		p, err := poller.New(poller.RefresherFunc(func(ctx context.Context) error {
			_, err := s.Refresh(ctx)
			if errors.Is(err, ErrRefreshInFlight) {
				return nil
			}
			return err
		}), s.refreshInterval,
			poller.WithClock(s.clock),
			poller.WithLogger(s.logger),
			poller.WithImmediate(true),
		)
		if err != nil {
			return fmt.Errorf("start poller: %w", err)
		}
		s.poller = p
		go p.Run(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "draft service started",
		logger.String("data_source", string(s.dataSource)),
		logger.String("league", s.league),
		logger.Duration("refresh_interval", s.refreshInterval),
	)
	return nil
}

// Stop shuts the service down. A refresh still running when Stop is called
// has its result discarded.
func (s *Service) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping draft service...")

	s.mu.Lock()
	p := s.poller
	s.started = false
	s.mu.Unlock()

	if p != nil {
		sctx, cancel := context.WithTimeout(ctx, pollerShutdownLimit)
		if err := p.Shutdown(sctx); err != nil {
			s.logger.Warn(ctx, "poller shutdown", logger.Error(err))
		}
		cancel()
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.subMu.Lock()
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
	s.subMu.Unlock()
	metrics.UpdateStreamClients(0)

	s.logger.Info(ctx, "draft service stopped")
}

// Refresh fetches both sources, rebuilds every derived view and applies the
// result. Overlapping calls are rejected with ErrRefreshInFlight. On any
// failure the previous snapshot stays current.
func (s *Service) Refresh(ctx context.Context) (*repository.Snapshot, error) {
	if s.stopped.Load() {
		return nil, ErrStopped
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		metrics.RecordRefreshRejected()
		return nil, ErrRefreshInFlight
	}
	defer s.inFlight.Store(false)

	refreshID := uuid.NewString()
	ctx = logger.ContextWithFields(ctx, logger.String("refresh_id", refreshID))
	start := s.clock.Now()

	snap, err := s.refresh(ctx, refreshID)

	took := s.clock.Since(start)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrStopped) {
			outcome = "discarded"
		}
		metrics.RecordRefresh(outcome, took.Seconds())
		s.logger.Warn(ctx, "refresh failed", logger.Error(err), logger.Duration("took", took))
		return nil, err
	}
	metrics.RecordRefresh("ok", took.Seconds())
	s.logger.Info(ctx, "refresh applied",
		logger.String("snapshot_id", snap.ID),
		logger.Int("current_pick", snap.State.CurrentPick),
		logger.Int("drafted", len(snap.State.DraftedPlayers)),
		logger.Int("unattributed", len(snap.State.Unattributed)),
		logger.Duration("took", took),
	)
	s.publish(snap)
	return snap, nil
}

func (s *Service) refresh(ctx context.Context, refreshID string) (*repository.Snapshot, error) {
	if s.rankings == nil {
		return nil, ErrNoRankings
	}

	var (
		wg       sync.WaitGroup
		raw      draft.Raw
		draftErr error
		workbook catalog.RawData
		rankErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		raw, draftErr = s.fetchDraft(ctx)
	}()
	go func() {
		defer wg.Done()
		workbook, rankErr = s.rankings.Fetch(ctx)
	}()
	wg.Wait()
	if err := errors.Join(draftErr, rankErr); err != nil {
		return nil, err
	}
	if s.stopped.Load() {
		return nil, ErrStopped
	}

	state, err := s.normalizer.Normalize(ctx, raw)
	if err != nil {
		var ne *draft.NormalizeError
		if errors.As(err, &ne) {
			metrics.RecordNormalizeError(string(ne.Shape))
		}
		return nil, err
	}

	s.mu.RLock()
	league := s.league
	s.mu.RUnlock()

	snap := s.derive(repository.Snapshot{
		RefreshID: refreshID,
		League:    league,
		State:     state,
		Rankings:  workbook,
	})
	if s.stopped.Load() {
		return nil, ErrStopped
	}
	return s.store.Apply(ctx, snap)
}

func (s *Service) fetchDraft(ctx context.Context) (draft.Raw, error) {
	switch s.dataSource {
	case model.SourceSleeper:
		if s.sleeper == nil {
			return draft.Raw{}, ErrNoSource
		}
		p, err := s.sleeper.Fetch(ctx, s.draftID)
		if err != nil {
			return draft.Raw{}, err
		}
		return draft.Raw{Source: model.SourceSleeper, Sleeper: p}, nil
	case model.SourceAppsScript:
		if s.board == nil {
			return draft.Raw{}, ErrNoSource
		}
		b, err := s.board.Fetch(ctx)
		if err != nil {
			return draft.Raw{}, err
		}
		return draft.Raw{Source: model.SourceAppsScript, Board: b}, nil
	default:
		return draft.Raw{}, ErrNoSource
	}
}

// derive fills the catalog, availability and report of a snapshot from its
// state and rankings.
func (s *Service) derive(snap repository.Snapshot) repository.Snapshot {
	snap.Catalog = s.catalog.Build(snap.Rankings, snap.League)
	snap.Available = availability.Available(snap.Catalog, snap.State)
	snap.Report, snap.ReportErr = s.engine.Recommend(snap.State, snap.Catalog, snap.Available)
	if snap.ReportErr == nil {
		metrics.RecordRecommendationRun()
	}
	return snap
}

// SelectLeague switches the ranking table and rebuilds the current snapshot
// from the rankings it already holds.
func (s *Service) SelectLeague(ctx context.Context, league string) (*repository.Snapshot, error) {
	if !s.catalog.HasLeague(league) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLeague, league)
	}
	if s.stopped.Load() {
		return nil, ErrStopped
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		metrics.RecordRefreshRejected()
		return nil, ErrRefreshInFlight
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	s.league = league
	s.mu.Unlock()

	cur, err := s.store.Current(ctx)
	if errors.Is(err, repository.ErrNoSnapshot) {
		s.logger.Info(ctx, "league selected before first refresh", logger.String("league", league))
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	next := *cur
	next.League = league
	snap, err := s.store.Apply(ctx, s.derive(next))
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "league switched", logger.String("league", league), logger.Int("players", len(snap.Catalog)))
	s.publish(snap)
	return snap, nil
}

// League returns the selected league.
func (s *Service) League() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.league
}

// Leagues lists the selectable leagues.
func (s *Service) Leagues() []string {
	return s.catalog.Leagues()
}

// Snapshot returns the applied snapshot.
func (s *Service) Snapshot(ctx context.Context) (*repository.Snapshot, error) {
	return s.store.Current(ctx)
}

// Subscribe registers for snapshot updates. Slow subscribers miss updates
// rather than block refreshes. The channel is closed by cancel or Stop.
func (s *Service) Subscribe() (<-chan Update, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ch := make(chan Update, subscriberBuffer)
	if s.stopped.Load() {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch
	metrics.UpdateStreamClients(len(s.subscribers))

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			if c, ok := s.subscribers[id]; ok {
				close(c)
				delete(s.subscribers, id)
				metrics.UpdateStreamClients(len(s.subscribers))
			}
		})
	}
}

func (s *Service) publish(snap *repository.Snapshot) {
	u := UpdateFrom(snap)
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- u:
		default:
		}
	}
}

// UpdateFrom summarizes a snapshot.
func UpdateFrom(snap *repository.Snapshot) Update {
	return Update{
		SnapshotID:     snap.ID,
		Version:        snap.Version,
		AppliedAt:      snap.AppliedAt,
		League:         snap.League,
		Status:         snap.State.Status,
		CurrentPick:    snap.State.CurrentPick,
		PicksRemaining: snap.State.PicksRemaining,
		Drafted:        len(snap.State.DraftedPlayers),
		Unattributed:   len(snap.State.Unattributed),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"dataSource":      string(s.dataSource),
		"league":          s.league,
		"refreshInFlight": s.inFlight.Load(),
		"version":         s.store.Version(ctx),
	}
	if s.refreshInterval > 0 {
		stats["refreshIntervalSec"] = int(s.refreshInterval / time.Second)
	}

	if snap, err := s.store.Current(ctx); err == nil {
		stats["snapshotId"] = snap.ID
		stats["appliedAt"] = snap.AppliedAt
		stats["catalogPlayers"] = len(snap.Catalog)
		stats["availablePlayers"] = len(snap.Available)
		stats["draftedPlayers"] = len(snap.State.DraftedPlayers)
		stats["unattributedPicks"] = len(snap.State.Unattributed)
	}

	s.subMu.Lock()
	stats["subscribers"] = len(s.subscribers)
	s.subMu.Unlock()
	return stats
}
