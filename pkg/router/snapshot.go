package router

import (
	"slices"
	"strings"

	"github.com/vango-dev/outlet/pkg/urltree"
)

// ActivatedRouteSnapshot is the immutable result of matching one route.
type ActivatedRouteSnapshot struct {
	// URL is the segment run the route consumed.
	URL []urltree.Segment

	// Params are the bound path and matrix parameters.
	Params Params

	// QueryParams and Fragment are shared by every node of one snapshot tree.
	QueryParams Params
	Fragment    string

	Outlet    string
	Component Component

	// RouteConfig is the matched route. It is nil for the root.
	RouteConfig *Route

	// CanActivate lists the guards declared by RouteConfig, uninterpreted.
	CanActivate []string
}

// Path returns the consumed segments joined by "/", without matrix parameters.
func (s *ActivatedRouteSnapshot) Path() string {
	parts := make([]string, len(s.URL))
	for i, seg := range s.URL {
		parts[i] = seg.Path
	}
	return strings.Join(parts, "/")
}

func (s *ActivatedRouteSnapshot) String() string {
	var b strings.Builder
	b.WriteString("Route(url:'")
	for i, seg := range s.URL {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(seg.String())
	}
	b.WriteString("', path:'")
	if s.RouteConfig != nil {
		b.WriteString(s.RouteConfig.Path)
	}
	b.WriteString("')")
	return b.String()
}

// RouterStateSnapshot is a tree of snapshots produced for one URL.
type RouterStateSnapshot struct {
	*Tree[*ActivatedRouteSnapshot]

	// URL is the navigation string the tree was recognized from.
	URL string
}

// NewRouterStateSnapshot wraps a snapshot tree.
func NewRouterStateSnapshot(root *TreeNode[*ActivatedRouteSnapshot], url string) *RouterStateSnapshot {
	return &RouterStateSnapshot{Tree: NewTree(root), URL: url}
}

// QueryParams returns the query parameters of the URL.
func (s *RouterStateSnapshot) QueryParams() Params {
	return s.Root().QueryParams.Clone()
}

// Fragment returns the URL fragment.
func (s *RouterStateSnapshot) Fragment() string {
	return s.Root().Fragment
}

// Format renders the tree one node per line, indented by depth.
func (s *RouterStateSnapshot) Format() string {
	var b strings.Builder
	s.Walk(func(n *ActivatedRouteSnapshot, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		if depth == 0 {
			b.WriteString("(root)")
		} else {
			b.WriteString(n.Outlet)
			b.WriteString(": ")
			b.WriteString(n.RouteConfig.String())
		}
		if name := ComponentName(n.Component); name != "" {
			b.WriteString(" -> ")
			b.WriteString(name)
		}
		if len(n.Params) > 0 {
			keys := make([]string, 0, len(n.Params))
			for k := range n.Params {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			b.WriteString(" {")
			for i, k := range keys {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(k)
				b.WriteByte('=')
				b.WriteString(n.Params[k])
			}
			b.WriteByte('}')
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

func newRootSnapshot(rootComponent Component, query Params, fragment string) *ActivatedRouteSnapshot {
	return &ActivatedRouteSnapshot{
		Params:      Params{},
		QueryParams: query,
		Fragment:    fragment,
		Outlet:      PrimaryOutlet,
		Component:   rootComponent,
	}
}
