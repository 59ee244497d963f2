package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/internal/inspect"
	"github.com/vango-dev/outlet/pkg/middleware"
	"github.com/vango-dev/outlet/pkg/routeconfig"
	"github.com/vango-dev/outlet/pkg/router"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		port  int
		host  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP inspector",
		Long: `Start the HTTP inspector for the route configuration.

The inspector parses, recognizes and navigates over HTTP, streams outlet
activations over a websocket and exposes Prometheus metrics.

Routes:
  GET  /healthz
  GET  /api/parse?url=
  GET  /api/recognize?url=
  POST /api/navigate     {"url": "/team/22"}
  GET  /api/state
  GET  /ws
  GET  /metrics

Examples:
  outlet serve
  outlet serve --port=8080 --routes s3://configs/routes.json
  outlet serve --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			routes, err := g.loadRoutes(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			logger := g.logger()
			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics := middleware.NewMetrics(
				middleware.WithNamespace(cfg.Metrics.Namespace),
				middleware.WithRegistry(registry),
			)
			hub := inspect.NewHub(logger)

			opts := append(routerOptions(cfg, routes, logger),
				router.WithMiddleware(metrics),
				router.WithActivator(router.MultiActivator(hub, metrics.Activator())),
			)
			r := router.New(cfg.Root, routes, opts...)

			ins := inspect.New(inspect.Options{
				Router:        r,
				RootComponent: cfg.Root,
				Hub:           hub,
				Gatherer:      registry,
				Logger:        logger,
			})

			w := cmd.OutOrStdout()
			printBanner(w)
			success(w, "Loaded %d top-level routes from %s", len(routes), g.routesSource(cfg))
			info(w, "Inspector running at %s", cfg.URL())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				src := g.routesSource(cfg)
				if strings.HasPrefix(src, "s3://") {
					logger.Warn("--watch ignored for S3 route sources", "source", src)
				} else {
					watcher := routeconfig.NewWatcher(routeconfig.WatcherConfig{
						Path: src,
						OnReload: func(routes []*router.Route) {
							r.ResetConfig(routes)
							logger.Info("routes reloaded", "source", src, "routes", len(routes))
						},
						OnError: func(err error) {
							logger.Warn("routes not reloaded", "source", src, "error", err)
						},
					})
					go watcher.Start(ctx)
					info(w, "Watching %s for changes", src)
				}
			}
			return ins.Serve(ctx, cfg.Address())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from outlet.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from outlet.json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the route file when it changes")

	return cmd
}
