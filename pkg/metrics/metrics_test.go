package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func gauge(reg *prometheus.Registry, name string) (float64, bool) {
	families, err := reg.Gather()
	if err != nil {
		return 0, false
	}
	for _, mf := range families {
		if mf.GetName() != name || mf.GetType() != dto.MetricType_GAUGE {
			continue
		}
		for _, m := range mf.GetMetric() {
			return m.GetGauge().GetValue(), true
		}
	}
	return 0, false
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given a private registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("draft"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)
			m.streamClients.Set(3)

			Convey("Then collectors are registered under the namespace", func() {
				So(m, ShouldNotBeNil)
				v, ok := gauge(registry, "test_draft_stream_clients")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 3)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording refresh and fetch metrics", func() {
			So(func() {
				RecordFetch("sleeper", "ok", 0.2)
				RecordFetch("rankings", "error", 1.5)
				RecordRefresh("ok", 0.4)
				RecordRefreshRejected()
				RecordNormalizeError("simple")
				UpdateBreakerState("relay-0", 2)
				UpdateSnapshot(300, 40, 262, 2, 1700000000)
				RecordRecommendationRun()
				RecordHTTPRequest("/draft", "GET", "200")
				RecordHTTPRequestDuration("/draft", "GET", "200", 3)
				UpdateStreamClients(1)
			}, ShouldNotPanic)

			Convey("Then the gauges reflect the last snapshot", func() {
				v, ok := gauge(GetRegistry(), "draftassist_unattributed_picks")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 2)
				v, ok = gauge(GetRegistry(), "draftassist_available_players")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 262)
			})
		})
	})
}
