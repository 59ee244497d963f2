package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/outlet/pkg/router"
)

// Default tracer name for outlet navigations.
const defaultTracerName = "outlet"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "outlet").
	TracerName string

	// TracerProvider supplies the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider

	// IncludeURL includes the requested navigation URL in traces.
	// Enabled by default.
	IncludeURL bool

	// Filter determines which navigations to trace.
	// Return true to trace the navigation, false to skip.
	// If nil, all navigations are traced.
	Filter func(nav *router.Navigation) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(nav *router.Navigation) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeURL enables/disables including the navigation URL in traces.
func WithIncludeURL(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeURL = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(nav *router.Navigation) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(nav *router.Navigation) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
		IncludeURL: true,
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// Each navigation gets a span named "outlet.navigate" carrying its ID and
// trigger. Guards and middleware further down the chain receive the span
// in their context. Once the navigation returns, the span records the
// route counts or the error.
//
// The tracer comes from the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main():
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	tracer := provider.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(ctx context.Context, nav *router.Navigation, next func(context.Context) error) error {
		if config.Filter != nil && !config.Filter(nav) {
			return next(ctx)
		}

		attrs := []attribute.KeyValue{
			attribute.String("outlet.navigation_id", nav.ID),
			attribute.String("outlet.trigger", string(nav.Trigger)),
		}
		if config.IncludeURL {
			attrs = append(attrs, attribute.String("outlet.url", nav.URL))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(nav)...)
		}

		spanCtx, span := tracer.Start(ctx, "outlet.navigate",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(nav.Start),
		)
		defer span.End(trace.WithTimestamp(time.Now()))

		err := next(context.WithValue(spanCtx, spanContextKey{}, span))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String("outlet.error_type", categorizeError(err)))
			return err
		}

		span.SetStatus(codes.Ok, "")
		span.SetAttributes(
			attribute.Int("outlet.routes.created", nav.Created),
			attribute.Int("outlet.routes.reused", nav.Reused),
			attribute.Int("outlet.routes.retired", nav.Retired),
		)
		return nil
	})
}

type spanContextKey struct{}

// SpanFromContext returns the navigation span the OpenTelemetry middleware
// stored in ctx, or nil. Guards use it to annotate the navigation:
//
//	func (g authGuard) CanActivate(ctx context.Context, ...) (bool, error) {
//	    if span := middleware.SpanFromContext(ctx); span != nil {
//	        span.AddEvent("auth.check")
//	    }
//	    ...
//	}
func SpanFromContext(ctx context.Context) trace.Span {
	if span, ok := ctx.Value(spanContextKey{}).(trace.Span); ok {
		return span
	}
	return nil
}
