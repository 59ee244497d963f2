package router

import (
	"sync"

	"github.com/vango-dev/outlet/pkg/urltree"
)

// Phase is the lifecycle position of an ActivatedRoute.
type Phase int

const (
	// PhaseNew: created by reconciliation, only a future snapshot exists.
	PhaseNew Phase = iota

	// PhaseCurrent: the future has been committed and nothing is pending.
	PhaseCurrent

	// PhaseSuperseded: a new future is pending on top of the current snapshot.
	PhaseSuperseded

	// PhaseRetired: no longer part of any live tree. Terminal.
	PhaseRetired
)

func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseCurrent:
		return "current"
	case PhaseSuperseded:
		return "superseded"
	case PhaseRetired:
		return "retired"
	}
	return "unknown"
}

// ParamsObserver receives the parameters of a route whenever they change.
type ParamsObserver func(Params)

// ActivatedRoute is the live counterpart of a snapshot. Its identity is
// kept for as long as navigations keep matching the same route in the same
// outlet, so components mounted for it survive parameter changes.
type ActivatedRoute struct {
	Outlet      string
	Component   Component
	RouteConfig *Route

	mu       sync.RWMutex
	phase    Phase
	current  *ActivatedRouteSnapshot
	future   *ActivatedRouteSnapshot
	observer ParamsObserver
}

func newActivatedRoute(s *ActivatedRouteSnapshot) *ActivatedRoute {
	return &ActivatedRoute{
		Outlet:      s.Outlet,
		Component:   s.Component,
		RouteConfig: s.RouteConfig,
		phase:       PhaseNew,
		future:      s,
	}
}

// Phase returns the lifecycle phase.
func (a *ActivatedRoute) Phase() Phase {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.phase
}

// Snapshot returns the committed snapshot, or nil before the first commit.
func (a *ActivatedRoute) Snapshot() *ActivatedRouteSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// FutureSnapshot returns the snapshot the next commit will install.
func (a *ActivatedRoute) FutureSnapshot() *ActivatedRouteSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.future
}

// Params returns a copy of the committed parameters.
func (a *ActivatedRoute) Params() Params {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return Params{}
	}
	return a.current.Params.Clone()
}

// URL returns the committed segment run.
func (a *ActivatedRoute) URL() []urltree.Segment {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return nil
	}
	return a.current.URL
}

// SetParamsObserver registers fn for parameter changes, replacing any
// previous observer. A route that already has committed parameters delivers
// them to fn immediately.
func (a *ActivatedRoute) SetParamsObserver(fn ParamsObserver) {
	a.mu.Lock()
	a.observer = fn
	var params Params
	if a.current != nil && fn != nil {
		params = a.current.Params.Clone()
	}
	a.mu.Unlock()

	if params != nil {
		fn(params)
	}
}

// setFuture installs the snapshot the next Advance will commit.
func (a *ActivatedRoute) setFuture(s *ActivatedRouteSnapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase == PhaseRetired {
		return
	}
	a.future = s
	if a.phase == PhaseCurrent {
		a.phase = PhaseSuperseded
	}
}

// Advance commits the future snapshot. The params observer is called when
// the committed parameters differ from the previous ones. Advance reports
// whether the parameters changed.
func (a *ActivatedRoute) Advance() bool {
	a.mu.Lock()
	if a.phase != PhaseNew && a.phase != PhaseSuperseded {
		a.mu.Unlock()
		return false
	}
	prev := a.current
	a.current = a.future
	a.phase = PhaseCurrent

	changed := prev == nil || !prev.Params.Equal(a.current.Params)
	observer := a.observer
	params := a.current.Params.Clone()
	a.mu.Unlock()

	if changed && observer != nil {
		observer(params)
	}
	return changed
}

// Abandon drops a pending future. A superseded route returns to its
// current snapshot; a route that was never committed is retired.
func (a *ActivatedRoute) Abandon() {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.phase {
	case PhaseSuperseded:
		a.future = a.current
		a.phase = PhaseCurrent
	case PhaseNew:
		a.phase = PhaseRetired
		a.observer = nil
	}
}

// Retire ends the route's life. Later calls to Advance do nothing.
func (a *ActivatedRoute) Retire() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.phase = PhaseRetired
	a.observer = nil
}

// hasPendingChange reports whether committing the future would change what
// the route shows: the route is new or its parameters differ.
func (a *ActivatedRoute) hasPendingChange() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	switch a.phase {
	case PhaseNew:
		return true
	case PhaseSuperseded:
		return !a.current.Params.Equal(a.future.Params)
	}
	return false
}

func (a *ActivatedRoute) String() string {
	a.mu.RLock()
	s := a.future
	if a.current != nil {
		s = a.current
	}
	a.mu.RUnlock()
	if s == nil {
		return "ActivatedRoute()"
	}
	return s.String()
}

// RouterState is the live tree of activated routes.
type RouterState struct {
	*Tree[*ActivatedRoute]

	snapshot *RouterStateSnapshot
}

// NewRouterState wraps a live tree together with the snapshot it was built for.
func NewRouterState(root *TreeNode[*ActivatedRoute], snapshot *RouterStateSnapshot) *RouterState {
	return &RouterState{Tree: NewTree(root), snapshot: snapshot}
}

// NewEmptyState returns the state before any navigation: a committed root
// route holding rootComponent and nothing else.
func NewEmptyState(rootComponent Component) *RouterState {
	snap := NewRouterStateSnapshot(&TreeNode[*ActivatedRouteSnapshot]{
		Value: newRootSnapshot(rootComponent, Params{}, ""),
	}, "")
	root := newActivatedRoute(snap.Root())
	root.Advance()
	return NewRouterState(&TreeNode[*ActivatedRoute]{Value: root}, snap)
}

// Snapshot returns the snapshot tree this state was created from.
func (s *RouterState) Snapshot() *RouterStateSnapshot {
	return s.snapshot
}

// QueryParams returns the query parameters of the state's URL.
func (s *RouterState) QueryParams() Params {
	return s.snapshot.QueryParams()
}

// Fragment returns the fragment of the state's URL.
func (s *RouterState) Fragment() string {
	return s.snapshot.Fragment()
}
