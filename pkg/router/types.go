package router

import (
	"context"
	"fmt"

	"github.com/vango-dev/outlet/pkg/urltree"
)

// PrimaryOutlet is the outlet a route targets when none is named.
const PrimaryOutlet = urltree.PrimaryOutlet

// Params maps parameter names to values.
type Params = urltree.Params

// Component is an opaque reference to whatever renders into an outlet.
// The router never inspects it.
type Component = any

// Route is one node of the route configuration.
//
// Routes are compared by pointer. The configuration must be built once and
// shared across navigations.
type Route struct {
	// Path is the pattern matched against URL segments, e.g. "team/:id",
	// "**" or "".
	Path string

	// Component is rendered into the outlet. Nil makes the route componentless.
	Component Component

	// Outlet is the outlet this route targets. Empty means primary.
	Outlet string

	// Index marks the default route used when nothing more is specified.
	Index bool

	// CanActivate lists guard names checked before the route is activated.
	CanActivate []string

	// Children are matched against whatever this route leaves unconsumed.
	Children []*Route
}

// OutletName returns the outlet the route targets.
func (r *Route) OutletName() string {
	if r.Outlet == "" {
		return PrimaryOutlet
	}
	return r.Outlet
}

// IsWildcard reports whether the route matches every remaining segment.
func (r *Route) IsWildcard() bool {
	return r.Path == "**"
}

// IsComponentless reports whether the route has no component.
func (r *Route) IsComponentless() bool {
	return r.Component == nil
}

func (r *Route) String() string {
	switch {
	case r.Index:
		return "(index)"
	case r.Path == "":
		return "(empty)"
	}
	return r.Path
}

// ComponentName returns a printable name for a component reference.
func ComponentName(c Component) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%T", c)
}

// Guard decides whether a route may be activated.
//
// A guard may block; it should return when ctx is done. Returning false or
// an error rejects the navigation.
type Guard interface {
	CanActivate(ctx context.Context, route *ActivatedRouteSnapshot, state *RouterStateSnapshot) (bool, error)
}

// GuardFunc is a function adapter for Guard.
type GuardFunc func(ctx context.Context, route *ActivatedRouteSnapshot, state *RouterStateSnapshot) (bool, error)

// CanActivate implements Guard.
func (f GuardFunc) CanActivate(ctx context.Context, route *ActivatedRouteSnapshot, state *RouterStateSnapshot) (bool, error) {
	return f(ctx, route, state)
}

// Allow is a guard that admits every route.
var Allow Guard = GuardFunc(func(context.Context, *ActivatedRouteSnapshot, *RouterStateSnapshot) (bool, error) {
	return true, nil
})

// Deny is a guard that rejects every route.
var Deny Guard = GuardFunc(func(context.Context, *ActivatedRouteSnapshot, *RouterStateSnapshot) (bool, error) {
	return false, nil
})
