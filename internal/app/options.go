package service

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/okian/draftassist/internal/adapters/repository"
	"github.com/okian/draftassist/internal/domain/catalog"
	"github.com/okian/draftassist/internal/domain/draft"
	"github.com/okian/draftassist/internal/domain/model"
	"github.com/okian/draftassist/internal/domain/recommend"
	"github.com/okian/draftassist/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSleeper selects the Sleeper draft source for draftID.
func WithSleeper(f SleeperFetcher, draftID string) Option {
	return func(s *Service) {
		s.sleeper = f
		s.draftID = draftID
		s.dataSource = model.SourceSleeper
	}
}

// WithBoard selects the spreadsheet draft board source.
func WithBoard(f BoardFetcher) Option {
	return func(s *Service) {
		s.board = f
		s.dataSource = model.SourceAppsScript
	}
}

// WithRankings sets the ranking workbook source.
func WithRankings(f RankingFetcher) Option {
	return func(s *Service) { s.rankings = f }
}

// WithNormalizer replaces the draft normalizer.
func WithNormalizer(n *draft.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithEngine replaces the recommendation engine.
func WithEngine(e *recommend.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithCatalog replaces the catalog builder.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithLeague sets the initial league.
func WithLeague(league string) Option {
	return func(s *Service) {
		if league != "" {
			s.league = league
		}
	}
}

// WithStore replaces the snapshot store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithRefreshInterval enables periodic refresh once started.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithClock sets the clock for timings and the poller.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
