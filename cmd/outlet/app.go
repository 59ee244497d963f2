package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"

	"github.com/vango-dev/outlet/internal/config"
	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/middleware"
	"github.com/vango-dev/outlet/pkg/routeconfig"
	"github.com/vango-dev/outlet/pkg/router"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	routes     string
	configPath string
	json       bool
	noColor    bool
	verbose    bool
}

// loadConfig resolves the project configuration. An explicit --config must
// exist; otherwise the nearest outlet.json is used, falling back to
// defaults. The OUTLET_* environment is applied either way.
func (g *globals) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case g.configPath != "":
		cfg, err = config.LoadFile(g.configPath)
	default:
		cfg, err = findConfig()
	}
	if err != nil {
		return nil, err
	}

	environ, err := config.Environment(envDir(cfg))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(environ); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfig() (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := config.FindProjectRoot(wd)
	if err != nil {
		var oe *errors.OutletError
		if stderrors.As(err, &oe) && oe.Code == "E153" {
			return config.New(), nil
		}
		return nil, err
	}
	return config.Load(root)
}

func envDir(cfg *config.Config) string {
	if dir := cfg.Dir(); dir != "" {
		return dir
	}
	return "."
}

// routesSource returns --routes when given, else the configured source.
func (g *globals) routesSource(cfg *config.Config) string {
	if g.routes != "" {
		return g.routes
	}
	return cfg.RoutesSource()
}

// loadRoutes loads and validates the route configuration.
func (g *globals) loadRoutes(ctx context.Context, cfg *config.Config) ([]*router.Route, error) {
	src := g.routesSource(cfg)
	routes, err := routeconfig.Open(ctx, src)
	if err != nil {
		oe := errors.Classify(err)
		if oe.Code == "E160" {
			oe = errors.New("E144").Wrap(err)
		}
		return nil, oe
	}
	return routes, nil
}

// logger returns a text logger on stderr: Debug with --verbose, Warn otherwise.
func (g *globals) logger() *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// routerOptions builds the router options every command shares: guards
// from the config, panic recovery, logging, and tracing when enabled.
func routerOptions(cfg *config.Config, routes []*router.Route, logger *slog.Logger) []router.Option {
	opts := []router.Option{router.WithLogger(logger)}

	for _, name := range routeconfig.GuardNames(routes) {
		guard := router.Allow
		if cfg.Denies(name) {
			guard = router.Deny
		}
		opts = append(opts, router.WithGuard(name, guard))
	}

	mw := []router.Middleware{
		middleware.Recover(logger),
		middleware.Logging(logger),
	}
	if cfg.Tracing.Enabled {
		mw = append(mw, middleware.OpenTelemetry())
	}
	return append(opts, router.WithMiddleware(mw...))
}
