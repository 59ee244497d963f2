package router

import (
	"encoding/json"
	"strings"
)

// RouteJSON is the JSON form of one snapshot or live route.
type RouteJSON struct {
	Outlet    string       `json:"outlet"`
	Component string       `json:"component,omitempty"`
	Route     string       `json:"route,omitempty"`
	URL       string       `json:"url"`
	Params    Params       `json:"params,omitempty"`
	Phase     string       `json:"phase,omitempty"`
	Children  []*RouteJSON `json:"children,omitempty"`
}

// MarshalJSON renders the snapshot tree with its URL, query and fragment.
func (s *RouterStateSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		URL         string     `json:"url"`
		QueryParams Params     `json:"queryParams,omitempty"`
		Fragment    string     `json:"fragment,omitempty"`
		Root        *RouteJSON `json:"root"`
	}{
		URL:         s.URL,
		QueryParams: s.QueryParams(),
		Fragment:    s.Fragment(),
		Root:        snapshotJSON(s.RootNode()),
	})
}

// MarshalJSON renders the live tree, including each route's phase.
func (s *RouterState) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		URL  string     `json:"url"`
		Root *RouteJSON `json:"root"`
	}{
		URL:  s.snapshot.URL,
		Root: stateJSON(s.RootNode()),
	})
}

func snapshotJSON(n *TreeNode[*ActivatedRouteSnapshot]) *RouteJSON {
	out := routeJSON(n.Value)
	for _, c := range n.Children {
		out.Children = append(out.Children, snapshotJSON(c))
	}
	return out
}

func stateJSON(n *TreeNode[*ActivatedRoute]) *RouteJSON {
	s := n.Value.Snapshot()
	if s == nil {
		s = n.Value.FutureSnapshot()
	}
	out := routeJSON(s)
	out.Phase = n.Value.Phase().String()
	for _, c := range n.Children {
		out.Children = append(out.Children, stateJSON(c))
	}
	return out
}

func routeJSON(s *ActivatedRouteSnapshot) *RouteJSON {
	segs := make([]string, len(s.URL))
	for i, seg := range s.URL {
		segs[i] = seg.String()
	}
	out := &RouteJSON{
		Outlet:    s.Outlet,
		Component: ComponentName(s.Component),
		URL:       strings.Join(segs, "/"),
		Params:    s.Params,
	}
	if s.RouteConfig != nil {
		out.Route = s.RouteConfig.String()
	}
	return out
}
