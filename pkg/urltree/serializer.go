package urltree

import (
	"slices"
	"strings"

	"github.com/vango-dev/outlet/pkg/routepath"
)

// Serialize returns the canonical string for t.
//
// An empty root serializes to "", any other root to "/" followed by its
// outlets. Query parameters are written in key order so that equal trees
// always produce equal strings.
func Serialize(t *URLTree) string {
	var b strings.Builder
	if !t.root.IsEmpty() {
		b.WriteByte('/')
		writeChildren(&b, t.root.Children())
	}

	if len(t.queryParams) > 0 {
		keys := make([]string, 0, len(t.queryParams))
		for k := range t.queryParams {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		b.WriteByte('?')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(routepath.Encode(k))
			b.WriteByte('=')
			b.WriteString(routepath.Encode(t.queryParams[k]))
		}
	}

	if t.fragment != "" {
		b.WriteByte('#')
		b.WriteString(routepath.Encode(t.fragment))
	}
	return b.String()
}

// SerializeGroup returns the string form of a single group as it would
// appear under an outlet.
func SerializeGroup(g *SegmentGroup) string {
	var b strings.Builder
	writeOutletGroup(&b, g)
	return b.String()
}

// writeChildren writes a list of outlets that share one level: the primary
// run (with its nested groups) followed by "(name:group//...)" siblings.
func writeChildren(b *strings.Builder, children []Child) {
	var others []Child
	for _, c := range children {
		if c.Outlet == PrimaryOutlet {
			writeRun(b, c.Group)
			continue
		}
		others = append(others, c)
	}
	if len(others) == 0 {
		return
	}

	b.WriteByte('(')
	for i, c := range others {
		if i > 0 {
			b.WriteString("//")
		}
		b.WriteString(routepath.Encode(c.Outlet))
		b.WriteByte(':')
		writeOutletGroup(b, c.Group)
	}
	b.WriteByte(')')
}

// writeRun writes a group's segments followed by "/(...)" for its children.
// A run without segments is written as "((...))" so that its outlets parse
// back under the primary entry rather than beside it.
func writeRun(b *strings.Builder, g *SegmentGroup) {
	for i, s := range g.segments {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(serializeSegment(s))
	}
	if !g.HasChildren() {
		return
	}
	bare := len(g.segments) == 0
	if bare {
		b.WriteByte('(')
	} else {
		b.WriteByte('/')
	}

	b.WriteByte('(')
	for i, c := range g.Children() {
		if i > 0 {
			b.WriteString("//")
		}
		if c.Outlet != PrimaryOutlet {
			b.WriteString(routepath.Encode(c.Outlet))
			b.WriteByte(':')
		}
		writeOutletGroup(b, c.Group)
	}
	b.WriteByte(')')
	if bare {
		b.WriteByte(')')
	}
}

// writeOutletGroup is the inverse of collapse: a group without segments
// is written as the outlet list it was built from.
func writeOutletGroup(b *strings.Builder, g *SegmentGroup) {
	if len(g.segments) == 0 {
		writeChildren(b, g.Children())
		return
	}
	writeRun(b, g)
}

func serializeSegment(s Segment) string {
	if len(s.Params) == 0 {
		return routepath.Encode(s.Path)
	}

	keys := make([]string, 0, len(s.Params))
	for k := range s.Params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString(routepath.Encode(s.Path))
	for _, k := range keys {
		b.WriteByte(';')
		b.WriteString(routepath.Encode(k))
		b.WriteByte('=')
		b.WriteString(routepath.Encode(s.Params[k]))
	}
	return b.String()
}
