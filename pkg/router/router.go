package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/outlet/pkg/urltree"
)

// Navigation errors.
var (
	// ErrGuardRejected is returned when a guard refuses a route.
	ErrGuardRejected = errors.New("navigation rejected by guard")

	// ErrUnknownGuard is returned when a route names a guard that was
	// never registered.
	ErrUnknownGuard = errors.New("unknown guard")

	// ErrNavigationSuperseded is returned to a navigation that was
	// overtaken by a newer one before it could commit.
	ErrNavigationSuperseded = errors.New("navigation superseded")

	// ErrNavigationCanceled is returned when middleware ends a navigation
	// without running it.
	ErrNavigationCanceled = errors.New("navigation canceled")

	// ErrNoHistory is returned by Back and Forward at either end of history.
	ErrNoHistory = errors.New("no history entry")
)

// Router runs navigations: parse, recognize, reconcile, guard, commit.
//
// One navigation commits at a time. Starting a navigation cancels the
// context of the one in flight, which then fails with
// ErrNavigationSuperseded instead of committing.
type Router struct {
	logger     *slog.Logger
	activator  OutletActivator
	guards     map[string]Guard
	middleware []Middleware
	location   Location

	// navMu serializes reconcile through commit.
	navMu sync.Mutex

	mu            sync.RWMutex
	rootComponent Component
	config        []*Route
	state         *RouterState
	tree          *urltree.URLTree
	latest        string
	cancel        context.CancelFunc
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithActivator sets the collaborator that mounts and unmounts components.
func WithActivator(a OutletActivator) Option {
	return func(r *Router) {
		r.activator = a
	}
}

// WithGuard registers a guard under the name routes use in CanActivate.
func WithGuard(name string, g Guard) Option {
	return func(r *Router) {
		r.guards[name] = g
	}
}

// WithMiddleware appends navigation middleware.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// WithLocation sets the history committed URLs are recorded in.
func WithLocation(l Location) Option {
	return func(r *Router) {
		r.location = l
	}
}

// New creates a router with the given root component and configuration.
// The configuration is used by reference; see Route.
func New(rootComponent Component, config []*Route, opts ...Option) *Router {
	r := &Router{
		logger:        slog.Default().With("component", "router"),
		activator:     nopActivator{},
		guards:        make(map[string]Guard),
		location:      NewHistory(),
		rootComponent: rootComponent,
		config:        config,
		state:         NewEmptyState(rootComponent),
		tree:          urltree.New(nil, nil, ""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResetConfig replaces the route configuration. Live routes built from the
// old configuration are never reused by later navigations.
func (r *Router) ResetConfig(config []*Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config = config
}

// Config returns the route configuration.
func (r *Router) Config() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.config
}

// State returns the committed live tree.
func (r *Router) State() *RouterState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// URLTree returns the committed URL tree.
func (r *Router) URLTree() *urltree.URLTree {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree
}

// URL returns the committed URL in canonical form.
func (r *Router) URL() string {
	return urltree.Serialize(r.URLTree())
}

// Location returns the router's history.
func (r *Router) Location() Location {
	return r.location
}

// NavigateByURL navigates to a navigation string.
func (r *Router) NavigateByURL(ctx context.Context, url string, opts ...NavigateOption) (*Navigation, error) {
	o := buildOptions(opts)
	return r.run(ctx, url, TriggerImperative, o, func() (*urltree.URLTree, error) {
		tree, err := urltree.Parse(url)
		if err != nil {
			return nil, err
		}
		if o.QueryParams == nil && o.Fragment == "" {
			return tree, nil
		}
		return CreateURLTree(nil, nil, []string{urltree.Serialize(tree)}, o.QueryParams, o.Fragment)
	})
}

// Navigate navigates to link commands, resolved as CreateURLTree does
// against the committed state.
func (r *Router) Navigate(ctx context.Context, commands []string, opts ...NavigateOption) (*Navigation, error) {
	o := buildOptions(opts)
	return r.run(ctx, strings.Join(commands, "/"), TriggerImperative, o, func() (*urltree.URLTree, error) {
		return CreateURLTree(r.State(), o.RelativeTo, commands, o.QueryParams, o.Fragment)
	})
}

// Back navigates to the previous history entry. When that navigation
// fails, history is moved forward again.
func (r *Router) Back(ctx context.Context) (*Navigation, error) {
	url, ok := r.location.Back()
	if !ok {
		return nil, ErrNoHistory
	}
	nav, err := r.popState(ctx, url)
	if err != nil {
		r.location.Forward()
	}
	return nav, err
}

// Forward navigates to the next history entry. When that navigation
// fails, history is moved back again.
func (r *Router) Forward(ctx context.Context) (*Navigation, error) {
	url, ok := r.location.Forward()
	if !ok {
		return nil, ErrNoHistory
	}
	nav, err := r.popState(ctx, url)
	if err != nil {
		r.location.Back()
	}
	return nav, err
}

func (r *Router) popState(ctx context.Context, url string) (*Navigation, error) {
	o := NavigateOptions{SkipLocationChange: true}
	return r.run(ctx, url, TriggerPopState, o, func() (*urltree.URLTree, error) {
		return urltree.Parse(url)
	})
}

func (r *Router) run(ctx context.Context, url string, trigger Trigger, o NavigateOptions, target func() (*urltree.URLTree, error)) (*Navigation, error) {
	nav := &Navigation{
		ID:      uuid.NewString(),
		URL:     url,
		Trigger: trigger,
		Start:   time.Now(),
	}

	ran := false
	err := ComposeMiddleware(ctx, nav, r.middleware, func(ctx context.Context) error {
		ran = true
		return r.navigate(ctx, nav, o, target)
	})
	if err == nil && !ran {
		err = ErrNavigationCanceled
	}
	return nav, err
}

func (r *Router) navigate(ctx context.Context, nav *Navigation, o NavigateOptions, target func() (*urltree.URLTree, error)) error {
	logger := r.logger.With("navigation_id", nav.ID, "url", nav.URL)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.latest = nav.ID
	r.cancel = cancel
	r.mu.Unlock()

	tree, err := target()
	if err != nil {
		logger.Warn("navigation failed", "error", err)
		return err
	}
	url := urltree.Serialize(tree)
	logger.Debug("navigation parsed", "canonical", url)

	r.mu.RLock()
	rootComponent, config := r.rootComponent, r.config
	r.mu.RUnlock()

	rec := Recognize(rootComponent, config, tree, url)
	snapshot, ok := rec.Snapshot()
	if !ok {
		logger.Warn("navigation failed", "error", rec.Err())
		return rec.Err()
	}
	logger.Debug("navigation recognized", "routes", len(snapshot.Values())-1)

	r.navMu.Lock()
	defer r.navMu.Unlock()

	if r.superseded(nav) {
		logger.Info("navigation superseded")
		return ErrNavigationSuperseded
	}

	prev := r.State()
	next := CreateRouterState(snapshot, prev)
	diff := Diff(prev, next)
	logger.Debug("navigation reconciled",
		"created", len(diff.Created),
		"reused", len(diff.Reused),
		"retired", len(diff.Retired),
	)

	if err := r.checkGuards(ctx, next, snapshot); err != nil {
		abandon(next)
		if r.superseded(nav) {
			logger.Info("navigation superseded")
			return ErrNavigationSuperseded
		}
		logger.Info("navigation rejected", "error", err)
		return err
	}
	if r.superseded(nav) {
		abandon(next)
		logger.Info("navigation superseded")
		return ErrNavigationSuperseded
	}

	r.commit(next, diff, tree)
	if !o.SkipLocationChange {
		if o.Replace {
			r.location.Replace(url)
		} else {
			r.location.Go(url)
		}
	}

	nav.Created = len(diff.Created)
	nav.Reused = len(diff.Reused)
	nav.Retired = len(diff.Retired)
	logger.Debug("navigation committed",
		"created", nav.Created,
		"reused", nav.Reused,
		"retired", nav.Retired,
	)
	return nil
}

func (r *Router) superseded(nav *Navigation) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest != nav.ID
}

// checkGuards evaluates the guards of every route whose future differs from
// what it shows now. Guards run top-down in declaration order; the first
// rejection ends the check.
func (r *Router) checkGuards(ctx context.Context, next *RouterState, snapshot *RouterStateSnapshot) error {
	for _, route := range next.Values() {
		if !route.hasPendingChange() {
			continue
		}
		future := route.FutureSnapshot()
		for _, name := range future.CanActivate {
			g, ok := r.guards[name]
			if !ok {
				return fmt.Errorf("%w %q on route %q", ErrUnknownGuard, name, future.RouteConfig.Path)
			}
			admit, err := g.CanActivate(ctx, future, snapshot)
			if err != nil {
				return fmt.Errorf("%w: guard %q on route %q: %w", ErrGuardRejected, name, future.RouteConfig.Path, err)
			}
			if !admit {
				return fmt.Errorf("%w: guard %q on route %q", ErrGuardRejected, name, future.RouteConfig.Path)
			}
		}
	}
	return nil
}

// commit retires routes that left the tree, then advances the new tree
// top-down and mounts the routes it created.
func (r *Router) commit(next *RouterState, diff StateDiff, tree *urltree.URLTree) {
	for _, route := range diff.Retired {
		route.Retire()
		if route.Component != nil {
			r.activator.Deactivate(route.Outlet, route)
		}
	}

	for _, route := range next.Values() {
		route.Advance()
		if route.Component != nil && slices.Contains(diff.Created, route) {
			r.activator.Activate(route.Outlet, route.Component, route)
		}
	}

	r.mu.Lock()
	r.state = next
	r.tree = tree
	r.mu.Unlock()
}

func abandon(state *RouterState) {
	for _, route := range state.Values() {
		route.Abandon()
	}
}
