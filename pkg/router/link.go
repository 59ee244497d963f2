package router

import (
	"strings"

	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/urltree"
)

// CreateURLTree builds a navigation target from link commands.
//
// Commands are joined with "/". A target starting with "/" is absolute and
// may use the full grammar, including outlet groups. Any other target is
// resolved against the primary URL consumed from the root down to
// relativeTo (the root when nil), with "." and ".." moving the way they do
// in file paths:
//
//	relativeTo at /team/22/link, "../simple"  → /team/22/simple
//	relativeTo at /team/22/link, "./details" → /team/22/link/details
//
// Query parameters and fragment replace whatever the target carries when
// query is non-nil or fragment is non-empty.
func CreateURLTree(state *RouterState, relativeTo *ActivatedRoute, commands []string, query Params, fragment string) (*urltree.URLTree, error) {
	target := strings.Join(commands, "/")
	path, rest := splitTarget(target)

	if !strings.HasPrefix(path, "/") {
		resolved, err := routepath.Resolve(baseSegments(state, relativeTo), path)
		if err != nil {
			return nil, err
		}
		path = "/" + strings.Join(resolved, "/")
	}

	tree, err := urltree.Parse(path + rest)
	if err != nil {
		return nil, err
	}

	if query == nil && fragment == "" {
		return tree, nil
	}
	if query == nil {
		query = tree.QueryParams()
	}
	if fragment == "" {
		fragment = tree.Fragment()
	}
	return urltree.New(tree.Root(), query, fragment), nil
}

// splitTarget separates the path of a link target from its query string
// and fragment.
func splitTarget(target string) (path, rest string) {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		return target[:i], target[i:]
	}
	return target, ""
}

// baseSegments returns the encoded primary segments consumed from the root
// down to route.
func baseSegments(state *RouterState, route *ActivatedRoute) []string {
	if state == nil || route == nil {
		return nil
	}
	var out []string
	for _, a := range state.PathFromRoot(route) {
		for _, s := range a.URL() {
			out = append(out, s.String())
		}
	}
	return out
}
