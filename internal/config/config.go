// Package config defines service configuration and its defaults.
//
// Conventions:
// - Keys are flat snake_case names shared by the YAML file and the
//   DRAFTASSIST_ environment variables.
// - New(ctx) returns the defaults; Load(ctx) layers file and env on top.
package config

import (
	"context"
	"time"
)

// Data sources.
const (
	SourceSleeper    = "sleeper"
	SourceAppsScript = "google_apps_script"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataSource selects the draft feed: sleeper or google_apps_script.
	DataSource string `koanf:"data_source"`

	// DraftID is the Sleeper draft to follow. Required for sleeper.
	DraftID string `koanf:"draft_id"`

	// League selects the ranking table used to build the catalog.
	League string `koanf:"league"`

	SleeperBaseURL string `koanf:"sleeper_base_url"`
	AppsScriptURL  string `koanf:"apps_script_url"`
	RankingURL     string `koanf:"ranking_url"`

	// Relays are URL templates tried in order for the spreadsheet board.
	// {url} expands to the query-escaped target and {raw} to the target as is.
	Relays []string `koanf:"relays"`

	SleeperUserID        string `koanf:"sleeper_user_id"`
	SleeperDisplayName   string `koanf:"sleeper_display_name"`
	SpreadsheetUserMatch string `koanf:"spreadsheet_user_match"`

	// RankingTables maps league names to ranking payload table names.
	RankingTables map[string]string `koanf:"ranking_tables"`

	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// RefreshIntervalSec enables periodic refresh; 0 disables it.
	RefreshIntervalSec int `koanf:"refresh_interval_sec"`

	RecommendationLimit int `koanf:"recommendation_limit"`

	// BreakerFailureThreshold consecutive failures open a relay breaker for
	// BreakerCooldownSec seconds.
	BreakerFailureThreshold int `koanf:"breaker_failure_threshold"`
	BreakerCooldownSec      int `koanf:"breaker_cooldown_sec"`

	// AllowedOrigins lists CORS origins for the browser UI.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// New returns the default configuration. Context is accepted first to
// follow the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		DataSource:     SourceAppsScript,
		League:         "FanDuel",
		SleeperBaseURL: "https://api.sleeper.app/v1",
		AppsScriptURL:  "https://script.google.com/macros/s/AKfycbyrc3faGJjl42kfneDjTv7KmAr8b9p2FAjgHXriwVC80tw1diwANlEyQVwISkPz5BAO_Q/exec",
		RankingURL:     "https://script.google.com/macros/s/AKfycbw46dGDE9LUoUh-ahhLgXHGACbe-ECQXhj-HHaJA_qozEU1YQd9yD-Q_TVQluVobijogw/exec",
		Relays: []string{
			"{raw}",
			"https://corsproxy.io/?{url}",
			"https://api.allorigins.win/raw?url={url}",
			"https://cors-anywhere.herokuapp.com/{raw}",
		},
		SleeperUserID:        "331180436753502208",
		SleeperDisplayName:   "CoryPahl",
		SpreadsheetUserMatch: "Cory",
		RankingTables: map[string]string{
			"FanDuel": "FanDuel Rankings",
			"Jackson": "Jackson Rankings",
			"GVSU":    "Team Pahl Rankings",
		},
		RequestTimeoutMS:        10_000,
		RefreshIntervalSec:      0,
		RecommendationLimit:     6,
		BreakerFailureThreshold: 3,
		BreakerCooldownSec:      60,
		AllowedOrigins:          []string{"http://localhost:3000"},
	}
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// RefreshInterval returns the auto refresh period; zero disables it.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSec) * time.Second
}

// BreakerCooldown returns how long an open breaker stays open.
func (c *Config) BreakerCooldown() time.Duration {
	return time.Duration(c.BreakerCooldownSec) * time.Second
}
