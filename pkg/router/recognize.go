package router

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vango-dev/outlet/pkg/urltree"
)

// ErrNoMatch is wrapped by every *NoMatchError.
var ErrNoMatch = errors.New("no route matches")

// NoMatchError reports that no configuration accounts for a URL.
type NoMatchError struct {
	// URL is the navigation string being recognized.
	URL string

	// Outlet and Segment locate the deepest run that could not be matched.
	// Segment is empty when an outlet had nothing left to consume.
	Outlet  string
	Segment string
}

func (e *NoMatchError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("%v %q (outlet %q)", ErrNoMatch, e.URL, e.Outlet)
	}
	return fmt.Sprintf("%v %q (outlet %q, segment %q)", ErrNoMatch, e.URL, e.Outlet, e.Segment)
}

// Unwrap returns ErrNoMatch.
func (e *NoMatchError) Unwrap() error {
	return ErrNoMatch
}

// Recognition is the outcome of Recognize: a snapshot tree or a no-match.
type Recognition struct {
	snapshot *RouterStateSnapshot
	err      *NoMatchError
}

// Snapshot returns the recognized tree and true, or nil and false.
func (r Recognition) Snapshot() (*RouterStateSnapshot, bool) {
	return r.snapshot, r.snapshot != nil
}

// OK reports whether recognition succeeded.
func (r Recognition) OK() bool {
	return r.snapshot != nil
}

// Err returns the *NoMatchError for a failed recognition, or nil.
func (r Recognition) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Recognize matches config against tree and builds the snapshot tree.
//
// Outlets are matched depth first, primary first, then in the order they
// appear in the URL. Within an outlet the routes are tried in config order
// and the first one that accounts for the rest of the URL wins; a route
// whose children cannot consume what it leaves over is backtracked.
//
// Recognize is pure: it neither mutates config nor keeps references to
// anything but the routes it matched.
func Recognize(rootComponent Component, config []*Route, tree *urltree.URLTree, url string) Recognition {
	r := &recognizer{
		url:      url,
		query:    tree.QueryParams(),
		fragment: tree.Fragment(),
	}

	root := &TreeNode[*ActivatedRouteSnapshot]{
		Value: newRootSnapshot(rootComponent, r.query, r.fragment),
	}

	group := tree.Root()
	if group.IsEmpty() {
		// An empty URL may still select an index or empty-path route.
		if children, err := r.processSegments(config, group, nil, PrimaryOutlet, nil); err == nil {
			root.Children = children
		}
	} else {
		children, err := r.processChildren(config, group)
		if err != nil {
			return Recognition{err: err}
		}
		root.Children = children
	}

	return Recognition{snapshot: NewRouterStateSnapshot(root, url)}
}

type recognizer struct {
	url      string
	query    Params
	fragment string
}

type snapshotNode = TreeNode[*ActivatedRouteSnapshot]

// processChildren matches every child outlet of group against config.
//
// Named outlets written after a primary run, as in "team/22/user/victor(right:x)",
// bind at the level of the route that consumes the run's last segment. If
// they do not match there they are matched at this level instead. When the
// group has no primary outlet an index or empty-path route may still fill it.
func (r *recognizer) processChildren(config []*Route, group *urltree.SegmentGroup) ([]*snapshotNode, *NoMatchError) {
	children := group.Children()
	primary := group.Child(PrimaryOutlet)

	if primary != nil && primary.NumSegments() > 0 && len(children) > 1 {
		var named []urltree.Child
		for _, c := range children {
			if c.Outlet != PrimaryOutlet {
				named = append(named, c)
			}
		}
		if nodes, err := r.processSegments(config, primary, primary.Segments(), PrimaryOutlet, named); err == nil {
			return nodes, nil
		}
	}

	var out []*snapshotNode
	if primary == nil {
		if nodes, err := r.processSegments(config, urltree.EmptyGroup(), nil, PrimaryOutlet, nil); err == nil {
			out = append(out, nodes...)
		}
	}
	for _, c := range children {
		nodes, err := r.processOutlet(config, c.Group, c.Outlet)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

// processOutlet matches the group stored under one outlet. A group without
// segments lists outlets of its own: its primary entry takes the enclosing
// outlet's name and the others are matched alongside it.
func (r *recognizer) processOutlet(config []*Route, group *urltree.SegmentGroup, outlet string) ([]*snapshotNode, *NoMatchError) {
	if group.NumSegments() > 0 || !group.HasChildren() {
		return r.processSegments(config, group, group.Segments(), outlet, nil)
	}

	var out []*snapshotNode
	for _, c := range group.Children() {
		name := c.Outlet
		if name == PrimaryOutlet {
			name = outlet
		}
		nodes, err := r.processOutlet(config, c.Group, name)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

// processSegments finds the first route for outlet that accounts for
// segments and everything below group. named holds outlets that must be
// matched beside the route consuming the last segment.
func (r *recognizer) processSegments(config []*Route, group *urltree.SegmentGroup, segments []urltree.Segment, outlet string, named []urltree.Child) ([]*snapshotNode, *NoMatchError) {
	var deepest *NoMatchError
	isLastGroup := !group.HasChildren()

	for _, route := range config {
		if route == nil || route.OutletName() != outlet {
			continue
		}
		res, ok := Match(route, segments, isLastGroup)
		if !ok {
			continue
		}

		last := res.Consumed == len(segments)
		pending := named
		if last {
			pending = nil
		}
		node, err := r.processRoute(route, group, segments, res, outlet, pending)
		if err == nil && last && len(named) > 0 {
			var siblings []*snapshotNode
			if siblings, err = r.processNamed(config, named); err == nil {
				return append([]*snapshotNode{node}, siblings...), nil
			}
		}
		if err == nil {
			return []*snapshotNode{node}, nil
		}
		if deepest == nil {
			deepest = err
		}
	}

	if deepest != nil {
		return nil, deepest
	}
	e := &NoMatchError{URL: r.url, Outlet: outlet}
	if len(segments) > 0 {
		e.Segment = segments[0].Path
	}
	return nil, e
}

func (r *recognizer) processNamed(config []*Route, named []urltree.Child) ([]*snapshotNode, *NoMatchError) {
	var out []*snapshotNode
	for _, c := range named {
		nodes, err := r.processOutlet(config, c.Group, c.Outlet)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (r *recognizer) processRoute(route *Route, group *urltree.SegmentGroup, segments []urltree.Segment, res MatchResult, outlet string, named []urltree.Child) (*snapshotNode, *NoMatchError) {
	rest := segments[res.Consumed:]
	node := &snapshotNode{Value: &ActivatedRouteSnapshot{
		URL:         slices.Clone(segments[:res.Consumed]),
		Params:      res.Params,
		QueryParams: r.query,
		Fragment:    r.fragment,
		Outlet:      outlet,
		Component:   route.Component,
		RouteConfig: route,
		CanActivate: slices.Clone(route.CanActivate),
	}}

	switch {
	case len(rest) > 0:
		// The rest of the run continues in the primary outlet of this route.
		children, err := r.processSegments(route.Children, group, rest, PrimaryOutlet, named)
		if err != nil {
			return nil, err
		}
		node.Children = children

	case group.HasChildren():
		children, err := r.processChildren(route.Children, group)
		if err != nil {
			return nil, err
		}
		node.Children = children

	case len(route.Children) > 0:
		// Nothing left to consume; an index or empty-path child may still apply.
		if children, err := r.processSegments(route.Children, group, nil, PrimaryOutlet, nil); err == nil {
			node.Children = children
		}
	}

	return node, nil
}
