package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/outlet/pkg/transition"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "outlet").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for snapshot lifetime.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: a new registry per Metrics.
	Registry *prometheus.Registry
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "outlet",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}
}

// Metrics records transition and session metrics. It implements
// transition.Observer and is safe for concurrent use by many sessions.
type Metrics struct {
	registry *prometheus.Registry

	precommits       *prometheus.CounterVec
	captures         *prometheus.CounterVec
	released         *prometheus.CounterVec
	pending          prometheus.Gauge
	snapshotLifetime prometheus.Histogram
	activeSessions   prometheus.Gauge
	framesSent       prometheus.Counter
	wsErrors         *prometheus.CounterVec
}

var _ transition.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	factory := promauto.With(config.Registry)
	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}
	gaugeOpts := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts(counterOpts(name, help))
	}

	return &Metrics{
		registry: config.Registry,

		precommits: factory.NewCounterVec(
			counterOpts("precommits_total", "Pre-commit navigation events handled, by lookup result"),
			[]string{"result"}),

		captures: factory.NewCounterVec(
			counterOpts("captures_total", "Snapshots queued, by capture mode"),
			[]string{"mode"}),

		released: factory.NewCounterVec(
			counterOpts("snapshots_released_total", "Snapshots released, by reason"),
			[]string{"reason"}),

		pending: factory.NewGauge(
			gaugeOpts("pending_snapshots", "Snapshots currently playing an exit animation")),

		snapshotLifetime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "snapshot_lifetime_seconds",
			Help:        "Time from capture to release of a snapshot",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		activeSessions: factory.NewGauge(
			gaugeOpts("active_sessions", "Number of connected sessions")),

		framesSent: factory.NewCounter(
			counterOpts("frames_sent_total", "Render frames written to clients")),

		wsErrors: factory.NewCounterVec(
			counterOpts("websocket_errors_total", "WebSocket errors by type"),
			[]string{"type"}),
	}
}

// Registry returns the registry the metrics are registered in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// PreCommit implements transition.Observer.
func (m *Metrics) PreCommit(_, _ string) func(string, bool) {
	return func(_ string, found bool) {
		result := "unmatched"
		if found {
			result = "matched"
		}
		m.precommits.WithLabelValues(result).Inc()
	}
}

// SnapshotQueued implements transition.Observer.
func (m *Metrics) SnapshotQueued(_ string, _ int, mode transition.Mode) {
	m.captures.WithLabelValues(mode.String()).Inc()
	m.pending.Inc()
}

// SnapshotReleased implements transition.Observer.
func (m *Metrics) SnapshotReleased(_ string, _ int, reason transition.ReleaseReason, age time.Duration) {
	m.released.WithLabelValues(reason.String()).Inc()
	m.pending.Dec()
	m.snapshotLifetime.Observe(age.Seconds())
}

// RecordSessionOpen records a new session.
func (m *Metrics) RecordSessionOpen() {
	m.activeSessions.Inc()
}

// RecordSessionClose records a closed session.
func (m *Metrics) RecordSessionClose() {
	m.activeSessions.Dec()
}

// RecordFrame records a render frame sent to a client.
func (m *Metrics) RecordFrame() {
	m.framesSent.Inc()
}

// RecordWebSocketError records a transport error. kind should be a small
// fixed set such as "read", "write" or "decode".
func (m *Metrics) RecordWebSocketError(kind string) {
	m.wsErrors.WithLabelValues(kind).Inc()
}
