package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/urltree"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "outlet").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "outlet",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics collects navigation metrics. It is a router.Middleware; its
// Activator method tracks mounted outlets.
type Metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	navigationErrors   *prometheus.CounterVec
	routeChanges       *prometheus.CounterVec
	activeRoutes       *prometheus.GaugeVec
}

// NewMetrics registers the navigation metrics with the configured registry.
//
// Metrics collected:
//   - outlet_navigations_total: navigations by trigger and status
//   - outlet_navigation_duration_seconds: navigation duration by trigger
//   - outlet_navigation_errors_total: failed navigations by error type
//   - outlet_route_changes_total: routes created, reused and retired by committed navigations
//   - outlet_active_routes: mounted components per outlet (via Activator)
//
// Registering twice with the same registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations",
			ConstLabels: config.ConstLabels,
		}, []string{"trigger", "status"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation duration in seconds, guards included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"trigger"}),

		navigationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Total number of failed navigations",
			ConstLabels: config.ConstLabels,
		}, []string{"error_type"}),

		routeChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "route_changes_total",
			Help:        "Routes created, reused and retired by committed navigations",
			ConstLabels: config.ConstLabels,
		}, []string{"change"}),

		activeRoutes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_routes",
			Help:        "Number of mounted components per outlet",
			ConstLabels: config.ConstLabels,
		}, []string{"outlet"}),
	}
}

// Prometheus creates middleware that collects navigation metrics.
//
// Example:
//
//	r := router.New(root, routes,
//	    router.WithMiddleware(middleware.Prometheus(middleware.WithNamespace("myapp"))),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) router.Middleware {
	return NewMetrics(opts...)
}

// Handle implements router.Middleware.
func (m *Metrics) Handle(ctx context.Context, nav *router.Navigation, next func(context.Context) error) error {
	start := time.Now()
	err := next(ctx)

	trigger := string(nav.Trigger)
	m.navigationDuration.WithLabelValues(trigger).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
		m.navigationErrors.WithLabelValues(categorizeError(err)).Inc()
	} else {
		m.routeChanges.WithLabelValues("created").Add(float64(nav.Created))
		m.routeChanges.WithLabelValues("reused").Add(float64(nav.Reused))
		m.routeChanges.WithLabelValues("retired").Add(float64(nav.Retired))
	}
	m.navigationsTotal.WithLabelValues(trigger, status).Inc()

	return err
}

// Activator returns an outlet activator that tracks mounted components.
// Combine it with the application's activator using router.MultiActivator.
func (m *Metrics) Activator() router.OutletActivator {
	return router.ActivatorFuncs{
		OnActivate: func(outlet string, _ router.Component, _ *router.ActivatedRoute) {
			m.activeRoutes.WithLabelValues(outlet).Inc()
		},
		OnDeactivate: func(outlet string, _ *router.ActivatedRoute) {
			m.activeRoutes.WithLabelValues(outlet).Dec()
		},
	}
}

// categorizeError returns a low-cardinality label for a navigation error.
func categorizeError(err error) string {
	var parseErr *urltree.ParseError
	switch {
	case errors.As(err, &parseErr):
		return "parse"
	case errors.Is(err, router.ErrNoMatch):
		return "no_match"
	case errors.Is(err, router.ErrUnknownGuard):
		return "unknown_guard"
	case errors.Is(err, router.ErrGuardRejected):
		return "guard_rejected"
	case errors.Is(err, router.ErrNavigationSuperseded):
		return "superseded"
	case errors.Is(err, router.ErrNavigationCanceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	case errors.Is(err, ErrPanic):
		return "panic"
	default:
		return "internal"
	}
}
