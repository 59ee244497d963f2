package urltree

import "encoding/json"

type groupJSON struct {
	Segments []Segment    `json:"segments"`
	Children []outletJSON `json:"children,omitempty"`
}

type outletJSON struct {
	Outlet string        `json:"outlet"`
	Group  *SegmentGroup `json:"group"`
}

// MarshalJSON renders the group with its children as an ordered list.
func (g *SegmentGroup) MarshalJSON() ([]byte, error) {
	out := groupJSON{Segments: g.segments}
	if out.Segments == nil {
		out.Segments = []Segment{}
	}
	for _, c := range g.Children() {
		out.Children = append(out.Children, outletJSON{Outlet: c.Outlet, Group: c.Group})
	}
	return json.Marshal(out)
}

// MarshalJSON renders the tree together with its canonical string.
func (t *URLTree) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		URL         string        `json:"url"`
		Root        *SegmentGroup `json:"root"`
		QueryParams Params        `json:"queryParams,omitempty"`
		Fragment    string        `json:"fragment,omitempty"`
	}{
		URL:         Serialize(t),
		Root:        t.root,
		QueryParams: t.queryParams,
		Fragment:    t.fragment,
	})
}
