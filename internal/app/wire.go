package service

import (
	"github.com/okian/draftassist/internal/adapters/source"
	"github.com/okian/draftassist/internal/config"
	"github.com/okian/draftassist/internal/domain/catalog"
	"github.com/okian/draftassist/internal/domain/draft"
	"github.com/okian/draftassist/internal/domain/recommend"
	"github.com/okian/draftassist/pkg/logger"
)

// FromConfig builds a Service with its source clients and domain components
// configured from cfg. Extra options are applied last.
func FromConfig(cfg *config.Config, log logger.Logger, opts ...Option) *Service {
	common := []source.Option{
		source.WithTimeout(cfg.RequestTimeout()),
		source.WithBreaker(cfg.BreakerFailureThreshold, cfg.BreakerCooldown()),
	}
	clientOpts := func(name string) []source.Option {
		return append(append([]source.Option{}, common...), source.WithLogger(log.Named(name)))
	}

	base := []Option{
		WithLogger(log.Named("service")),
		WithLeague(cfg.League),
		WithRefreshInterval(cfg.RefreshInterval()),
		WithRankings(source.NewRankingClient(cfg.RankingURL, clientOpts("rankings")...)),
		WithCatalog(catalog.New(catalog.WithTables(cfg.RankingTables))),
		WithEngine(recommend.New(recommend.WithLimit(cfg.RecommendationLimit))),
		WithNormalizer(draft.New(
			draft.WithIdentity(draft.Identity{
				SleeperUserID:      cfg.SleeperUserID,
				SleeperDisplayName: cfg.SleeperDisplayName,
				BoardMatch:         cfg.SpreadsheetUserMatch,
			}),
			draft.WithLogger(log.Named("normalizer")),
		)),
	}
	if cfg.DataSource == config.SourceSleeper {
		base = append(base, WithSleeper(source.NewSleeperClient(cfg.SleeperBaseURL, clientOpts("sleeper")...), cfg.DraftID))
	} else {
		base = append(base, WithBoard(source.NewAppsScriptClient(cfg.AppsScriptURL, cfg.Relays, clientOpts("appsscript")...)))
	}
	return New(append(base, opts...)...)
}
