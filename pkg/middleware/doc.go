// Package middleware provides navigation middleware for outlet routers.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//   - Logging and panic recovery
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware opens a span per navigation. Guards receive
// the span in their context.
//
//	r := router.New(root, routes,
//	    router.WithMiddleware(middleware.OpenTelemetry()),
//	)
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithNavigationFilter(func(nav *router.Navigation) bool {
//	        return nav.Trigger != router.TriggerPopState
//	    }),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware counts navigations, their outcome and the
// routes they create, reuse and retire:
//   - outlet_navigations_total
//   - outlet_navigation_duration_seconds
//   - outlet_navigation_errors_total
//   - outlet_route_changes_total
//   - outlet_active_routes
//
// outlet_active_routes is fed by the activator:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r := router.New(root, routes,
//	    router.WithMiddleware(m),
//	    router.WithActivator(router.MultiActivator(app, m.Activator())),
//	)
//
// # Ordering
//
// Middleware runs first to last. Put Recover first so it also covers the
// others:
//
//	router.WithMiddleware(
//	    middleware.Recover(logger),
//	    middleware.Logging(logger),
//	    middleware.OpenTelemetry(),
//	    m,
//	)
package middleware
