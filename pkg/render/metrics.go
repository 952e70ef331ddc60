package render

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors of a Renderer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "domrender").
	Namespace string

	// Subsystem is the metrics subsystem (default: "render").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "domrender",
		Subsystem: "render",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds renderer counters. A nil *Metrics records nothing.
//
// Collected:
//   - domrender_render_nodes_total{kind}: nodes created, by element/text
//   - domrender_render_listeners_total{mode}: listeners bound, by direct/debounce/throttle
//   - domrender_render_warnings_total{reason}: invalid_handler, rate_conflict
//   - domrender_render_aborts_total: Abort calls
//   - domrender_render_duration_seconds: Render call duration
type Metrics struct {
	nodes     *prometheus.CounterVec
	listeners *prometheus.CounterVec
	warnings  *prometheus.CounterVec
	aborts    prometheus.Counter
	duration  prometheus.Histogram
}

// NewMetrics creates and registers the renderer collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_total",
			Help:        "Total number of native nodes created",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		listeners: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_total",
			Help:        "Total number of event listeners bound",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),

		warnings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "warnings_total",
			Help:        "Total number of handler warnings",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		aborts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "aborts_total",
			Help:        "Total number of signal aborts",
			ConstLabels: config.ConstLabels,
		}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "duration_seconds",
			Help:        "Render call duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{.00001, .0001, .001, .01, .1, 1},
		}),
	}
}

func (m *Metrics) node(kind string) {
	if m != nil {
		m.nodes.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) listener(mode string) {
	if m != nil {
		m.listeners.WithLabelValues(mode).Inc()
	}
}

func (m *Metrics) warning(reason string) {
	if m != nil {
		m.warnings.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) abort() {
	if m != nil {
		m.aborts.Inc()
	}
}

func (m *Metrics) observeRender(d time.Duration) {
	if m != nil {
		m.duration.Observe(d.Seconds())
	}
}
