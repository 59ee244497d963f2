package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/vango-dev/outlet/pkg/router"
)

// ErrPanic wraps a panic recovered from a navigation.
var ErrPanic = errors.New("navigation panicked")

// Logging creates middleware that logs one line per navigation. Failed
// navigations log at Warn, all others at Info.
func Logging(logger *slog.Logger) router.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "navigation")

	return router.MiddlewareFunc(func(ctx context.Context, nav *router.Navigation, next func(context.Context) error) error {
		err := next(ctx)

		attrs := []any{
			"navigation_id", nav.ID,
			"url", nav.URL,
			"trigger", string(nav.Trigger),
			"duration", time.Since(nav.Start),
		}
		if err != nil {
			logger.WarnContext(ctx, "navigation failed", append(attrs, "error", err)...)
			return err
		}
		logger.InfoContext(ctx, "navigation",
			append(attrs, "created", nav.Created, "reused", nav.Reused, "retired", nav.Retired)...)
		return nil
	})
}

// Recover creates middleware that turns a panic further down the chain
// (a guard, an activator, inner middleware) into an error wrapping
// ErrPanic.
func Recover(logger *slog.Logger) router.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return router.MiddlewareFunc(func(ctx context.Context, nav *router.Navigation, next func(context.Context) error) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("navigation panic",
					"panic", r,
					"navigation_id", nav.ID,
					"url", nav.URL,
					"stack", string(debug.Stack()))
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()
		return next(ctx)
	})
}
