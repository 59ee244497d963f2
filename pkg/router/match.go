package router

import (
	"maps"
	"strings"

	"github.com/vango-dev/outlet/pkg/urltree"
)

// MatchResult describes a successful match of one route.
type MatchResult struct {
	// Consumed is the number of segments the route accounts for.
	Consumed int

	// Params holds path parameters merged with the matrix parameters of
	// every consumed segment.
	Params Params
}

// Match tests one route against the remaining segments of a group.
//
// isLastGroup reports that the group has no child outlets left to match,
// which index routes require. A false result is an ordinary outcome: the
// caller moves on to the next route.
func Match(route *Route, segments []urltree.Segment, isLastGroup bool) (MatchResult, bool) {
	switch {
	case route.IsWildcard():
		return bind(nil, segments), true

	case route.Index:
		if len(segments) > 0 || !isLastGroup {
			return MatchResult{}, false
		}
		return MatchResult{Params: Params{}}, true
	}

	parts := splitPath(route.Path)
	if len(parts) == 0 {
		return MatchResult{Params: Params{}}, true
	}
	if len(parts) > len(segments) {
		return MatchResult{}, false
	}

	pathParams := Params{}
	for i, part := range parts {
		seg := segments[i]
		if name, ok := strings.CutPrefix(part, ":"); ok {
			pathParams[name] = seg.Path
			continue
		}
		if part != seg.Path {
			return MatchResult{}, false
		}
	}
	return bind(pathParams, segments[:len(parts)]), true
}

// bind merges matrix parameters over path parameters. Later segments win.
func bind(pathParams Params, consumed []urltree.Segment) MatchResult {
	params := pathParams.Clone()
	for _, s := range consumed {
		maps.Copy(params, s.Params)
	}
	return MatchResult{Consumed: len(consumed), Params: params}
}

// splitPath splits a route pattern into parts. Leading and trailing slashes
// are ignored, so "/user/:name" and "user/:name" are the same pattern.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
