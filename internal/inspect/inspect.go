package inspect

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/urltree"
)

// Options configures an Inspector.
type Options struct {
	// Router is the router the inspector drives. Required.
	Router *router.Router

	// RootComponent is given to the root of recognized snapshots.
	RootComponent router.Component

	// Hub serves /ws. The router should have it installed as an activator.
	// Nil disables /ws.
	Hub *Hub

	// Gatherer serves /metrics. Nil disables /metrics.
	Gatherer prometheus.Gatherer

	Logger *slog.Logger
}

// Inspector exposes a router over HTTP.
type Inspector struct {
	router *router.Router
	root   router.Component
	hub    *Hub
	gather prometheus.Gatherer
	logger *slog.Logger
}

// New creates an inspector.
func New(opts Options) *Inspector {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{
		router: opts.Router,
		root:   opts.RootComponent,
		hub:    opts.Hub,
		gather: opts.Gatherer,
		logger: logger.With("component", "inspect"),
	}
}

// Handler returns the inspector's routes.
func (i *Inspector) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(i.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/parse", i.handleParse)
		r.Get("/recognize", i.handleRecognize)
		r.Post("/navigate", i.handleNavigate)
		r.Get("/state", i.handleState)
	})

	if i.hub != nil {
		r.Get("/ws", i.hub.HandleWebSocket)
	}
	if i.gather != nil {
		r.Handle("/metrics", promhttp.HandlerFor(i.gather, promhttp.HandlerOpts{}))
	}
	return r
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (i *Inspector) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           i.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	i.logger.Info("inspector listening", "addr", addr)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return errors.New("E161").Wrap(err)
		}
	}

	if i.hub != nil {
		i.hub.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (i *Inspector) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		i.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type parseResponse struct {
	URL  string           `json:"url"`
	Tree *urltree.URLTree `json:"tree"`
}

func (i *Inspector) handleParse(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	tree, err := urltree.Parse(url)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{URL: urltree.Serialize(tree), Tree: tree})
}

func (i *Inspector) handleRecognize(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	tree, err := urltree.Parse(url)
	if err != nil {
		writeError(w, err)
		return
	}
	res := router.Recognize(i.root, i.router.Config(), tree, url)
	snapshot, ok := res.Snapshot()
	if !ok {
		writeError(w, res.Err())
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

type navigateRequest struct {
	URL     string `json:"url"`
	Replace bool   `json:"replace,omitempty"`
}

type navigateResponse struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Created int    `json:"created"`
	Reused  int    `json:"reused"`
	Retired int    `json:"retired"`
}

func (i *Inspector) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "body must be {\"url\": \"...\"}"})
		return
	}

	var opts []router.NavigateOption
	if req.Replace {
		opts = append(opts, router.WithReplace())
	}
	nav, err := i.router.NavigateByURL(r.Context(), req.URL, opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, navigateResponse{
		ID:      nav.ID,
		URL:     i.router.URL(),
		Created: nav.Created,
		Reused:  nav.Reused,
		Retired: nav.Retired,
	})
}

func (i *Inspector) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, i.router.State())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	oe := errors.Classify(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(oe))
	w.Write([]byte(oe.FormatJSON()))
}

// statusFor maps a classified error onto an HTTP status.
func statusFor(oe *errors.OutletError) int {
	switch {
	case oe.Category == errors.CategoryParse:
		return http.StatusBadRequest
	case oe.Category == errors.CategoryRecognition:
		return http.StatusNotFound
	case stderrors.Is(oe, router.ErrGuardRejected):
		return http.StatusForbidden
	case stderrors.Is(oe, router.ErrNavigationSuperseded), stderrors.Is(oe, router.ErrNavigationCanceled):
		return http.StatusConflict
	case strings.HasPrefix(oe.Code, "E13"):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
