package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/sonner/pkg/toast"
)

// Config configures the Prometheus collector.
type Config struct {
	// Namespace is the metrics namespace (default: "sonner").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "sonner",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records toast store events as Prometheus metrics.
type Collector struct {
	eventsTotal  *prometheus.CounterVec
	activeToasts prometheus.Gauge
	promises     *prometheus.CounterVec
}

// New creates a collector and registers its metrics.
// Registering twice on the same registry panics, as with promauto.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of toast store mutations",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "kind"}),

		activeToasts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_toasts",
			Help:        "Number of notifications currently in the registry",
			ConstLabels: config.ConstLabels,
		}),

		promises: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "promises_total",
			Help:        "Total number of tracked promises by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),
	}
}

// Observe implements toast.Observer.
func (c *Collector) Observe(e toast.Event) {
	switch e.Type {
	case toast.EventPromiseResolved:
		c.promises.WithLabelValues("resolved").Inc()
	case toast.EventPromiseRejected:
		c.promises.WithLabelValues("rejected").Inc()
	case toast.EventPromiseHTTPError:
		c.promises.WithLabelValues("http_error").Inc()
	default:
		kind := string(e.Kind)
		if kind == "" {
			kind = "none"
		}
		c.eventsTotal.WithLabelValues(string(e.Type), kind).Inc()
	}
	c.activeToasts.Set(float64(e.Active))
}
