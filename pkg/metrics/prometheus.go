// Package metrics provides Prometheus metrics for the kallelse allocation tool.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the allocation tool.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Allocation Metrics - What the engine decided
	matchesAllocated      prometheus.Counter
	callUps               *prometheus.CounterVec
	reserveCallUps        prometheus.Counter
	goalkeeperAssignments prometheus.Counter
	allocationIssues      *prometheus.CounterVec

	// Run Metrics
	playersTracked prometheus.Gauge
	matchesTracked prometheus.Gauge
	runDuration    prometheus.Histogram

	// Workbook Metrics - I/O adapter timings
	workbookReadDuration  prometheus.Histogram
	workbookWriteDuration prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "kallelse",
		subsystem:        "allocation",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.matchesAllocated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_allocated_total",
		Help:      "Total number of matches processed by the allocator",
	})

	m.callUps = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "call_ups_total",
		Help:      "Total number of standard call-ups, labeled by venue",
	}, []string{"venue"})

	m.reserveCallUps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reserve_call_ups_total",
		Help:      "Total number of reserve call-ups (reserve chain and backfill)",
	})

	m.goalkeeperAssignments = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "goalkeeper_assignments_total",
		Help:      "Total number of goalkeeper assignments",
	})

	m.allocationIssues = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "issues_total",
		Help:      "Total number of degraded allocation outcomes, labeled by kind",
	}, []string{"kind"})

	m.playersTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_tracked",
		Help:      "Number of players in the roster of the current run",
	})

	m.matchesTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_tracked",
		Help:      "Number of match columns in the current run",
	})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Histogram of full allocation run duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.workbookReadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workbook_read_duration_seconds",
		Help:      "Histogram of input workbook parse duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.workbookWriteDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workbook_write_duration_seconds",
		Help:      "Histogram of output workbook write duration in seconds",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers operating on the global manager.

// RecordMatchAllocated increments the processed-matches counter.
func RecordMatchAllocated() {
	if globalManager.enabled {
		globalManager.matchesAllocated.Inc()
	}
}

// RecordCallUp increments the standard call-up counter for a venue.
func RecordCallUp(venue string) {
	if globalManager.enabled {
		globalManager.callUps.WithLabelValues(venue).Inc()
	}
}

// RecordReserveCallUp increments the reserve call-up counter.
func RecordReserveCallUp() {
	if globalManager.enabled {
		globalManager.reserveCallUps.Inc()
	}
}

// RecordGoalkeeperAssignment increments the goalkeeper assignment counter.
func RecordGoalkeeperAssignment() {
	if globalManager.enabled {
		globalManager.goalkeeperAssignments.Inc()
	}
}

// RecordAllocationIssue increments the issue counter for a kind.
func RecordAllocationIssue(kind string) {
	if globalManager.enabled {
		globalManager.allocationIssues.WithLabelValues(kind).Inc()
	}
}

// UpdatePlayersTracked sets the roster size gauge.
func UpdatePlayersTracked(count int) {
	if globalManager.enabled {
		globalManager.playersTracked.Set(float64(count))
	}
}

// UpdateMatchesTracked sets the match column gauge.
func UpdateMatchesTracked(count int) {
	if globalManager.enabled {
		globalManager.matchesTracked.Set(float64(count))
	}
}

// ObserveRunDuration records the duration of a full allocation run.
func ObserveRunDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.runDuration.Observe(seconds)
	}
}

// ObserveWorkbookReadDuration records the input parse duration.
func ObserveWorkbookReadDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.workbookReadDuration.Observe(seconds)
	}
}

// ObserveWorkbookWriteDuration records the output write duration.
func ObserveWorkbookWriteDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.workbookWriteDuration.Observe(seconds)
	}
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Handler returns an HTTP handler serving the global registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}
