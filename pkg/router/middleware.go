package router

import (
	"context"
	"time"
)

// Trigger names what started a navigation.
type Trigger string

const (
	// TriggerImperative: NavigateByURL or Navigate.
	TriggerImperative Trigger = "imperative"

	// TriggerPopState: Back or Forward.
	TriggerPopState Trigger = "popstate"
)

// Navigation describes one navigation attempt as it passes through the
// middleware chain. The router fills in the counts once the attempt commits.
type Navigation struct {
	// ID is unique per attempt.
	ID string

	// URL is the navigation string as requested.
	URL string

	Trigger Trigger
	Start   time.Time

	// Created, Reused and Retired count routes once the navigation commits.
	Created int
	Reused  int
	Retired int
}

// Middleware wraps navigation attempts.
type Middleware interface {
	// Handle processes the navigation and optionally calls next.
	// Returning without calling next cancels the navigation; return an
	// error to report why.
	Handle(ctx context.Context, nav *Navigation, next func(context.Context) error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(ctx context.Context, nav *Navigation, next func(context.Context) error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, nav *Navigation, next func(context.Context) error) error {
	return f(ctx, nav, next)
}

// ComposeMiddleware runs mw in order (first to last) around handler.
func ComposeMiddleware(ctx context.Context, nav *Navigation, mw []Middleware, handler func(context.Context) error) error {
	if len(mw) == 0 {
		return handler(ctx)
	}

	// Build chain from end to start
	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func(ctx context.Context) error {
			return m.Handle(ctx, nav, next)
		}
	}

	return chain(ctx)
}

// Chain creates a middleware that combines multiple middleware in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, nav *Navigation, next func(context.Context) error) error {
		return ComposeMiddleware(ctx, nav, middleware, next)
	})
}

// Skip bypasses mw for navigations where condition is true.
func Skip(condition func(nav *Navigation) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, nav *Navigation, next func(context.Context) error) error {
		if condition(nav) {
			return next(ctx)
		}
		return mw.Handle(ctx, nav, next)
	})
}

// Only runs mw only for navigations where condition is true.
func Only(condition func(nav *Navigation) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, nav *Navigation, next func(context.Context) error) error {
		if !condition(nav) {
			return next(ctx)
		}
		return mw.Handle(ctx, nav, next)
	})
}
