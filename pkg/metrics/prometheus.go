// Package metrics provides Prometheus metrics for the draftassist service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the service exposes.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Upstream fetches
	fetchRequests *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	breakerState  *prometheus.GaugeVec

	// Refresh cycle
	refreshes          *prometheus.CounterVec
	refreshDuration    prometheus.Histogram
	refreshRejected    prometheus.Counter
	normalizeErrors    *prometheus.CounterVec
	unattributedPicks  prometheus.Gauge
	catalogPlayers     prometheus.Gauge
	draftedPlayers     prometheus.Gauge
	availablePlayers   prometheus.Gauge
	snapshotLastUnix   prometheus.Gauge
	recommendationRuns prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	streamClients       prometheus.Gauge
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

var globalManager = NewManager(WithPrometheusRegistry(customRegistry)) //nolint:gochecknoglobals // singleton

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "draftassist",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.fetchRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_requests_total",
		Help:      "Upstream fetches by source and outcome",
	}, []string{"source", "outcome"})

	m.fetchLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_seconds",
		Help:      "Upstream fetch latency in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"source"})

	m.breakerState = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "breaker_state",
		Help:      "Circuit breaker state per upstream (0 closed, 1 half-open, 2 open)",
	}, []string{"breaker"})

	m.refreshes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refreshes_total",
		Help:      "Refresh cycles by outcome",
	}, []string{"outcome"})

	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_duration_seconds",
		Help:      "Duration of a full fetch-and-rebuild cycle",
		Buckets:   m.histogramBuckets,
	})

	m.refreshRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_rejected_total",
		Help:      "Refreshes rejected because another one was in flight",
	})

	m.normalizeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "normalize_errors_total",
		Help:      "Draft payloads that failed normalization, by shape",
	}, []string{"shape"})

	m.unattributedPicks = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unattributed_picks",
		Help:      "Picks in the current draft state that no team claims",
	})

	m.catalogPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_players",
		Help:      "Players in the current ranking catalog",
	})

	m.draftedPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "drafted_players",
		Help:      "Picks made in the current draft state",
	})

	m.availablePlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "available_players",
		Help:      "Catalog players not matched to a pick",
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix_seconds",
		Help:      "Unix time the current snapshot was applied",
	})

	m.recommendationRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendation_runs_total",
		Help:      "Recommendation reports computed",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.streamClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stream_clients",
		Help:      "Connected websocket clients",
	})
}

// RecordFetch counts one upstream fetch; outcome is "ok" or "error".
func RecordFetch(source, outcome string, seconds float64) {
	globalManager.fetchRequests.WithLabelValues(source, outcome).Inc()
	globalManager.fetchLatency.WithLabelValues(source).Observe(seconds)
}

// UpdateBreakerState publishes a breaker's state code.
func UpdateBreakerState(name string, state int) {
	globalManager.breakerState.WithLabelValues(name).Set(float64(state))
}

// RecordRefresh counts a finished refresh cycle.
func RecordRefresh(outcome string, seconds float64) {
	globalManager.refreshes.WithLabelValues(outcome).Inc()
	globalManager.refreshDuration.Observe(seconds)
}

// RecordRefreshRejected counts a refresh turned away by the in-flight guard.
func RecordRefreshRejected() {
	globalManager.refreshRejected.Inc()
}

// RecordNormalizeError counts a draft payload that could not be normalized.
func RecordNormalizeError(shape string) {
	globalManager.normalizeErrors.WithLabelValues(shape).Inc()
}

// UpdateSnapshot publishes the sizes of a freshly applied snapshot.
func UpdateSnapshot(catalog, drafted, available, unattributed int, appliedUnix int64) {
	globalManager.catalogPlayers.Set(float64(catalog))
	globalManager.draftedPlayers.Set(float64(drafted))
	globalManager.availablePlayers.Set(float64(available))
	globalManager.unattributedPicks.Set(float64(unattributed))
	globalManager.snapshotLastUnix.Set(float64(appliedUnix))
}

// RecordRecommendationRun counts a computed recommendation report.
func RecordRecommendationRun() {
	globalManager.recommendationRuns.Inc()
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateStreamClients publishes the connected websocket client count.
func UpdateStreamClients(n int) {
	globalManager.streamClients.Set(float64(n))
}

// GetRegistry returns the registry holding the service collectors.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
