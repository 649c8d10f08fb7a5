package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	service "github.com/okian/draftassist/internal/app"
	"github.com/okian/draftassist/internal/adapters/source"
	"github.com/okian/draftassist/internal/config"
	"github.com/okian/draftassist/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromConfig(t *testing.T) {
	Convey("Given upstream board and ranking endpoints", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/board", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(boardJSON))
		})
		mux.HandleFunc("/rankings", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(workbookJSON))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		cfg := config.New(context.Background())
		cfg.AppsScriptURL = srv.URL + "/board"
		cfg.RankingURL = srv.URL + "/rankings"
		cfg.Relays = []string{source.PlaceholderRaw}

		Convey("When a service is built from the config and refreshed", func() {
			svc := service.FromConfig(cfg, logger.Discard(), service.WithClock(clockwork.NewFakeClock()))
			defer svc.Stop()
			snap, err := svc.Refresh(context.Background())

			Convey("Then the configured sources and identity are used", func() {
				So(err, ShouldBeNil)
				So(snap.League, ShouldEqual, "FanDuel")
				So(snap.State.UserTeamID, ShouldEqual, 1)
				So(len(snap.Available), ShouldEqual, 2)
				So(len(snap.Report.Recommendations), ShouldEqual, 2)
				So(svc.GetStats()["dataSource"], ShouldEqual, config.SourceAppsScript)
			})
		})

		Convey("When the ranking endpoint is wrong", func() {
			cfg.RankingURL = srv.URL + "/missing"
			svc := service.FromConfig(cfg, logger.Discard())
			defer svc.Stop()
			_, err := svc.Refresh(context.Background())

			Convey("Then the refresh fails with a fetch error", func() {
				So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
				So(errors.Is(err, source.ErrStatus), ShouldBeTrue)
			})
		})

		Convey("When the config selects Sleeper", func() {
			cfg.DataSource = config.SourceSleeper
			cfg.DraftID = "42"
			cfg.SleeperBaseURL = srv.URL
			svc := service.FromConfig(cfg, logger.Discard())
			defer svc.Stop()

			Convey("Then the Sleeper source is wired", func() {
				So(svc.GetStats()["dataSource"], ShouldEqual, config.SourceSleeper)
				_, err := svc.Refresh(context.Background())
				So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
			})
		})
	})
}
