// Package routeconfig loads route configurations from JSON.
//
// A route configuration file is a JSON array of route objects:
//
//	[
//	  {"path": "team/:id", "component": "Team", "children": [
//	    {"path": "user/:name", "component": "User", "canActivate": ["auth"]},
//	    {"path": "simple", "component": "Simple", "outlet": "right"}
//	  ]},
//	  {"path": "**", "component": "NotFound"}
//	]
//
// Components are referenced by name. The loaded []*router.Route is meant to
// be built once and shared: the router reuses live routes only while their
// configuration pointers stay the same.
package routeconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vango-dev/outlet/pkg/router"
)

// ErrMalformed is returned for input that is not a JSON route array.
var ErrMalformed = errors.New("malformed route config")

// RouteSpec is the JSON form of a router.Route.
type RouteSpec struct {
	Path        string       `json:"path,omitempty"`
	Component   string       `json:"component,omitempty"`
	Outlet      string       `json:"outlet,omitempty"`
	Index       bool         `json:"index,omitempty"`
	CanActivate []string     `json:"canActivate,omitempty"`
	Children    []*RouteSpec `json:"children,omitempty"`
}

// Decode reads a JSON route array. Unknown fields are rejected.
func Decode(r io.Reader) ([]*RouteSpec, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var specs []*RouteSpec
	if err := dec.Decode(&specs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return specs, nil
}

// Parse decodes data as a JSON route array and builds the routes.
func Parse(data []byte) ([]*router.Route, error) {
	specs, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return Build(specs), nil
}

// Build converts specs to router routes. Components become their names;
// an empty name makes the route componentless.
func Build(specs []*RouteSpec) []*router.Route {
	if specs == nil {
		return nil
	}
	routes := make([]*router.Route, len(specs))
	for i, s := range specs {
		if s == nil {
			continue
		}
		routes[i] = &router.Route{
			Path:        s.Path,
			Outlet:      s.Outlet,
			Index:       s.Index,
			CanActivate: s.CanActivate,
			Children:    Build(s.Children),
		}
		if s.Component != "" {
			routes[i].Component = s.Component
		}
	}
	return routes
}

// Specs converts router routes back to their JSON form.
func Specs(routes []*router.Route) []*RouteSpec {
	if routes == nil {
		return nil
	}
	specs := make([]*RouteSpec, len(routes))
	for i, r := range routes {
		if r == nil {
			continue
		}
		specs[i] = &RouteSpec{
			Path:        r.Path,
			Component:   router.ComponentName(r.Component),
			Outlet:      r.Outlet,
			Index:       r.Index,
			CanActivate: r.CanActivate,
			Children:    Specs(r.Children),
		}
	}
	return specs
}

// Load reads routes from src and validates them.
func Load(ctx context.Context, src Source) ([]*router.Route, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	specs, err := Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	routes := Build(specs)
	if err := router.Validate(routes); err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return routes, nil
}

// GuardNames returns every guard name referenced by routes, in first-seen order.
func GuardNames(routes []*router.Route) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func([]*router.Route)
	walk = func(rs []*router.Route) {
		for _, r := range rs {
			if r == nil {
				continue
			}
			for _, g := range r.CanActivate {
				if !seen[g] {
					seen[g] = true
					out = append(out, g)
				}
			}
			walk(r.Children)
		}
	}
	walk(routes)
	return out
}
