package urltree

import (
	"maps"
	"slices"
)

// PrimaryOutlet is the outlet name used when none is given.
const PrimaryOutlet = "primary"

// Params maps parameter names to values. It is used for matrix parameters,
// query parameters and resolved route parameters alike.
type Params map[string]string

// Clone returns a copy of p. A nil map clones to an empty one.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Equal reports whether p and o hold the same entries. Nil and empty maps
// are equal.
func (p Params) Equal(o Params) bool {
	return maps.Equal(p, o)
}

// Segment is one path element with its matrix parameters.
type Segment struct {
	Path   string `json:"path"`
	Params Params `json:"params,omitempty"`
}

// NewSegment creates a segment, copying params.
func NewSegment(path string, params Params) Segment {
	return Segment{Path: path, Params: params.Clone()}
}

// Equal reports whether two segments have the same path and parameters.
func (s Segment) Equal(o Segment) bool {
	return s.Path == o.Path && s.Params.Equal(o.Params)
}

// String returns the serialized form of the segment, e.g. "path;p=11".
func (s Segment) String() string {
	return serializeSegment(s)
}

// Child pairs an outlet name with its segment group. It is used to build
// groups with a defined child order.
type Child struct {
	Outlet string
	Group  *SegmentGroup
}

// SegmentGroup is a run of segments plus child groups keyed by outlet.
// A group never changes after construction.
type SegmentGroup struct {
	segments []Segment
	outlets  []string
	children map[string]*SegmentGroup
}

// NewGroup creates a segment group. Children keep the order given, except
// that the primary outlet is always moved to the front. When an outlet
// appears twice the later group replaces the earlier one in place.
func NewGroup(segments []Segment, children ...Child) *SegmentGroup {
	g := &SegmentGroup{
		segments: make([]Segment, len(segments)),
		children: make(map[string]*SegmentGroup, len(children)),
	}
	for i, s := range segments {
		g.segments[i] = NewSegment(s.Path, s.Params)
	}

	for _, c := range children {
		outlet := c.Outlet
		if outlet == "" {
			outlet = PrimaryOutlet
		}
		if c.Group == nil {
			continue
		}
		if _, exists := g.children[outlet]; !exists {
			if outlet == PrimaryOutlet {
				g.outlets = append([]string{outlet}, g.outlets...)
			} else {
				g.outlets = append(g.outlets, outlet)
			}
		}
		g.children[outlet] = c.Group
	}
	return g
}

// EmptyGroup returns a group with no segments and no children.
func EmptyGroup() *SegmentGroup {
	return NewGroup(nil)
}

// Segments returns a copy of the group's segment run.
func (g *SegmentGroup) Segments() []Segment {
	return slices.Clone(g.segments)
}

// NumSegments returns the length of the segment run.
func (g *SegmentGroup) NumSegments() int {
	return len(g.segments)
}

// Outlets returns the child outlet names, primary first.
func (g *SegmentGroup) Outlets() []string {
	return slices.Clone(g.outlets)
}

// Child returns the child group for an outlet, or nil.
func (g *SegmentGroup) Child(outlet string) *SegmentGroup {
	return g.children[outlet]
}

// Children returns the child groups in outlet order.
func (g *SegmentGroup) Children() []Child {
	out := make([]Child, len(g.outlets))
	for i, name := range g.outlets {
		out[i] = Child{Outlet: name, Group: g.children[name]}
	}
	return out
}

// HasChildren reports whether the group has any child outlet.
func (g *SegmentGroup) HasChildren() bool {
	return len(g.outlets) > 0
}

// IsEmpty reports whether the group has neither segments nor children.
func (g *SegmentGroup) IsEmpty() bool {
	return len(g.segments) == 0 && len(g.outlets) == 0
}

// Equal compares two groups structurally, including child order.
func (g *SegmentGroup) Equal(o *SegmentGroup) bool {
	if g == o {
		return true
	}
	if g == nil || o == nil {
		return false
	}
	if !slices.EqualFunc(g.segments, o.segments, Segment.Equal) {
		return false
	}
	if !slices.Equal(g.outlets, o.outlets) {
		return false
	}
	for _, name := range g.outlets {
		if !g.children[name].Equal(o.children[name]) {
			return false
		}
	}
	return true
}

// URLTree is a parsed navigation string: a root group, the query
// parameters and an optional fragment. An empty fragment means none.
type URLTree struct {
	root        *SegmentGroup
	queryParams Params
	fragment    string
}

// New creates a URL tree. A root that carries segments itself is moved
// under the primary outlet of an empty root, which is where Parse puts
// top-level segments.
func New(root *SegmentGroup, queryParams Params, fragment string) *URLTree {
	if root == nil {
		root = EmptyGroup()
	}
	if len(root.segments) > 0 {
		root = NewGroup(nil, Child{Outlet: PrimaryOutlet, Group: root})
	}
	return &URLTree{
		root:        root,
		queryParams: queryParams.Clone(),
		fragment:    fragment,
	}
}

// Root returns the root group.
func (t *URLTree) Root() *SegmentGroup {
	return t.root
}

// QueryParams returns a copy of the query parameters.
func (t *URLTree) QueryParams() Params {
	return t.queryParams.Clone()
}

// Fragment returns the fragment, or "" when there is none.
func (t *URLTree) Fragment() string {
	return t.fragment
}

// Equal compares two trees structurally.
func (t *URLTree) Equal(o *URLTree) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	return t.fragment == o.fragment &&
		t.queryParams.Equal(o.queryParams) &&
		t.root.Equal(o.root)
}

// String returns the canonical serialized form.
func (t *URLTree) String() string {
	return Serialize(t)
}
