package router

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/outlet/pkg/urltree"
)

func recognize(t *testing.T, config []*Route, url string) *RouterStateSnapshot {
	t.Helper()
	rec := Recognize("root", config, urltree.MustParse(url), url)
	s, ok := rec.Snapshot()
	if !ok {
		t.Fatalf("Recognize(%q) failed: %v", url, rec.Err())
	}
	return s
}

func checkSnapshot(t *testing.T, s *ActivatedRouteSnapshot, component Component, outlet string, params Params) {
	t.Helper()
	if s == nil {
		t.Fatal("snapshot is nil")
	}
	if s.Component != component {
		t.Errorf("component = %v, want %v", s.Component, component)
	}
	if s.Outlet != outlet {
		t.Errorf("outlet = %q, want %q", s.Outlet, outlet)
	}
	if !s.Params.Equal(params) {
		t.Errorf("params = %v, want %v", s.Params, params)
	}
}

func TestRecognizeSingleRoute(t *testing.T) {
	s := recognize(t, []*Route{{Path: "a", Component: "A"}}, "a")

	checkSnapshot(t, s.Root(), "root", PrimaryOutlet, Params{})
	checkSnapshot(t, s.FirstChild(s.Root()), "A", PrimaryOutlet, Params{})
}

func TestRecognizeSecondaryOutlets(t *testing.T) {
	config := []*Route{
		{Path: "a", Component: "A"},
		{Path: "b", Component: "B", Outlet: "left"},
		{Path: "c", Component: "C", Outlet: "right"},
	}
	s := recognize(t, config, "a(left:b//right:c)")

	c := s.Children(s.Root())
	if len(c) != 3 {
		t.Fatalf("len(children) = %d, want 3", len(c))
	}
	checkSnapshot(t, c[0], "A", PrimaryOutlet, Params{})
	checkSnapshot(t, c[1], "B", "left", Params{})
	checkSnapshot(t, c[2], "C", "right", Params{})
}

func TestRecognizeOutletOrderFollowsURL(t *testing.T) {
	config := []*Route{
		{Path: "a", Component: "A"},
		{Path: "b", Component: "B", Outlet: "left"},
		{Path: "c", Component: "C", Outlet: "right"},
	}
	s := recognize(t, config, "a(right:c//left:b)")

	var outlets []string
	for _, c := range s.Children(s.Root()) {
		outlets = append(outlets, c.Outlet)
	}
	if !reflect.DeepEqual(outlets, []string{PrimaryOutlet, "right", "left"}) {
		t.Errorf("outlets = %v", outlets)
	}
}

func TestRecognizeParams(t *testing.T) {
	s := recognize(t, []*Route{{Path: "a/:id", Component: "A"}}, "a/1;p=11")
	checkSnapshot(t, s.FirstChild(s.Root()), "A", PrimaryOutlet, Params{"id": "1", "p": "11"})
}

func TestRecognizeNestedChildren(t *testing.T) {
	config := []*Route{
		{Path: "team/:id", Component: "team", Children: []*Route{
			{Path: "user/:name", Component: "user"},
			{Path: "simple", Component: "simple", Outlet: "right"},
		}},
	}
	s := recognize(t, config, "/team/22/(user/victor//right:simple)")

	team := s.FirstChild(s.Root())
	checkSnapshot(t, team, "team", PrimaryOutlet, Params{"id": "22"})

	c := s.Children(team)
	if len(c) != 2 {
		t.Fatalf("len(team children) = %d, want 2", len(c))
	}
	checkSnapshot(t, c[0], "user", PrimaryOutlet, Params{"name": "victor"})
	checkSnapshot(t, c[1], "simple", "right", Params{})
}

func TestRecognizeContinuesRunIntoChildren(t *testing.T) {
	config := []*Route{
		{Path: "team/:id", Component: "team", Children: []*Route{
			{Path: "user/:name", Component: "user"},
		}},
	}
	s := recognize(t, config, "/team/22/user/victor")

	team := s.FirstChild(s.Root())
	user := s.FirstChild(team)
	checkSnapshot(t, user, "user", PrimaryOutlet, Params{"name": "victor"})
	if got := user.Path(); got != "user/victor" {
		t.Errorf("user path = %q", got)
	}
	if got := team.Path(); got != "team/22" {
		t.Errorf("team path = %q", got)
	}
}

func TestRecognizeTrailingOutletBindsBesideLastRoute(t *testing.T) {
	config := []*Route{
		{Path: "team/:id", Component: "team", Children: []*Route{
			{Path: "user/:name", Component: "user"},
			{Path: "simple", Component: "simple", Outlet: "right"},
		}},
	}
	s := recognize(t, config, "/team/22/user/victor(right:simple)")

	root := s.Children(s.Root())
	if len(root) != 1 {
		t.Fatalf("len(root children) = %d, want 1", len(root))
	}
	team := root[0]
	checkSnapshot(t, team, "team", PrimaryOutlet, Params{"id": "22"})

	c := s.Children(team)
	if len(c) != 2 {
		t.Fatalf("len(team children) = %d, want 2", len(c))
	}
	checkSnapshot(t, c[0], "user", PrimaryOutlet, Params{"name": "victor"})
	checkSnapshot(t, c[1], "simple", "right", Params{})
}

func TestRecognizeTrailingOutletFallsBackToGroupLevel(t *testing.T) {
	config := []*Route{
		{Path: "team/:id", Component: "team", Children: []*Route{
			{Path: "user/:name", Component: "user"},
		}},
		{Path: "simple", Component: "simple", Outlet: "right"},
	}
	s := recognize(t, config, "/team/22/user/victor(right:simple)")

	c := s.Children(s.Root())
	if len(c) != 2 {
		t.Fatalf("len(root children) = %d, want 2", len(c))
	}
	checkSnapshot(t, c[0], "team", PrimaryOutlet, Params{"id": "22"})
	checkSnapshot(t, c[1], "simple", "right", Params{})
	if got := len(s.Children(c[0])); got != 1 {
		t.Errorf("len(team children) = %d, want 1", got)
	}
}

func TestRecognizeIndexFillsPrimaryBesideNamedOutlet(t *testing.T) {
	config := []*Route{
		{Path: "team/:id", Component: "team", Children: []*Route{
			{Index: true, Component: "overview"},
			{Path: "simple", Component: "simple", Outlet: "right"},
		}},
	}
	s := recognize(t, config, "/team/22/(right:simple)")

	team := s.FirstChild(s.Root())
	c := s.Children(team)
	if len(c) != 2 {
		t.Fatalf("len(team children) = %d, want 2", len(c))
	}
	checkSnapshot(t, c[0], "overview", PrimaryOutlet, Params{})
	checkSnapshot(t, c[1], "simple", "right", Params{})
}

func TestRecognizeNamedOutletWithoutIndex(t *testing.T) {
	config := []*Route{
		{Path: "team/:id", Component: "team", Children: []*Route{
			{Path: "user/:name", Component: "user"},
			{Path: "simple", Component: "simple", Outlet: "right"},
		}},
	}
	s := recognize(t, config, "/team/22/(right:simple)")

	c := s.Children(s.FirstChild(s.Root()))
	if len(c) != 1 {
		t.Fatalf("len(team children) = %d, want 1", len(c))
	}
	checkSnapshot(t, c[0], "simple", "right", Params{})
}

func TestRecognizeSkipsNilRoutes(t *testing.T) {
	config := []*Route{
		nil,
		{Path: "team/:id", Component: "team", Children: []*Route{nil, {Path: "user/:name", Component: "user"}}},
	}
	s := recognize(t, config, "/team/22/user/victor")
	checkSnapshot(t, s.FirstChild(s.FirstChild(s.Root())), "user", PrimaryOutlet, Params{"name": "victor"})

	rec := Recognize("root", []*Route{nil}, urltree.MustParse("/a"), "/a")
	if !errors.Is(rec.Err(), ErrNoMatch) {
		t.Errorf("Err() = %v, want ErrNoMatch", rec.Err())
	}
}

func TestRecognizeComponentless(t *testing.T) {
	config := []*Route{
		{Path: "a/:id", Children: []*Route{
			{Path: "b", Component: "A"},
			{Path: "c", Component: "B", Outlet: "right"},
		}},
	}
	s := recognize(t, config, "a/1;p=11/(b//right:c)")

	p := s.FirstChild(s.Root())
	checkSnapshot(t, p, nil, PrimaryOutlet, Params{"id": "1", "p": "11"})

	c := s.Children(p)
	if len(c) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(c))
	}
	checkSnapshot(t, c[0], "A", PrimaryOutlet, Params{})
	checkSnapshot(t, c[1], "B", "right", Params{})
}

func TestRecognizeIndexRoute(t *testing.T) {
	config := []*Route{
		{Index: true, Component: "simple"},
		{Path: "/user/:name", Component: "user"},
	}

	s := recognize(t, config, "/")
	checkSnapshot(t, s.FirstChild(s.Root()), "simple", PrimaryOutlet, Params{})

	s = recognize(t, config, "/user/victor")
	checkSnapshot(t, s.FirstChild(s.Root()), "user", PrimaryOutlet, Params{"name": "victor"})
}

func TestRecognizeIndexChild(t *testing.T) {
	config := []*Route{
		{Path: "team/:id", Component: "team", Children: []*Route{
			{Index: true, Component: "overview"},
			{Path: "user/:name", Component: "user"},
		}},
	}
	s := recognize(t, config, "/team/22")

	team := s.FirstChild(s.Root())
	checkSnapshot(t, s.FirstChild(team), "overview", PrimaryOutlet, Params{})
}

func TestRecognizeEmptyURLWithoutIndex(t *testing.T) {
	s := recognize(t, []*Route{{Path: "team/:id", Component: "team"}}, "")
	if got := s.Children(s.Root()); len(got) != 0 {
		t.Errorf("root children = %d, want 0", len(got))
	}
}

func TestRecognizeConfigOrderWins(t *testing.T) {
	config := []*Route{
		{Path: "a/:id", Component: "param"},
		{Path: "a/b", Component: "literal"},
	}
	s := recognize(t, config, "a/b")
	checkSnapshot(t, s.FirstChild(s.Root()), "param", PrimaryOutlet, Params{"id": "b"})
}

func TestRecognizeBacktracksFromEmptyPath(t *testing.T) {
	config := []*Route{
		{Path: "", Component: "shell", Children: []*Route{
			{Path: "b", Component: "B"},
		}},
		{Path: "a", Component: "X"},
	}

	s := recognize(t, config, "a")
	checkSnapshot(t, s.FirstChild(s.Root()), "X", PrimaryOutlet, Params{})

	s = recognize(t, config, "b")
	shell := s.FirstChild(s.Root())
	checkSnapshot(t, shell, "shell", PrimaryOutlet, Params{})
	checkSnapshot(t, s.FirstChild(shell), "B", PrimaryOutlet, Params{})
}

func TestRecognizeBacktracksFromFailedChildren(t *testing.T) {
	config := []*Route{
		{Path: "a", Component: "A1", Children: []*Route{
			{Path: "x", Component: "X"},
		}},
		{Path: "a/y", Component: "A2"},
	}
	s := recognize(t, config, "a/y")
	checkSnapshot(t, s.FirstChild(s.Root()), "A2", PrimaryOutlet, Params{})
}

func TestRecognizeWildcard(t *testing.T) {
	config := []*Route{
		{Path: "team/:id", Component: "team"},
		{Path: "**", Component: "notfound"},
	}
	s := recognize(t, config, "/some/other;x=1/path")

	n := s.FirstChild(s.Root())
	checkSnapshot(t, n, "notfound", PrimaryOutlet, Params{"x": "1"})
	if len(n.URL) != 3 {
		t.Errorf("wildcard consumed %d segments, want 3", len(n.URL))
	}
}

func TestRecognizeNamedOutletGroup(t *testing.T) {
	config := []*Route{
		{Path: "a", Component: "A", Outlet: "left"},
		{Path: "b", Component: "B", Outlet: "x"},
	}
	s := recognize(t, config, "/(left:a(x:b))")

	c := s.Children(s.Root())
	if len(c) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(c))
	}
	checkSnapshot(t, c[0], "A", "left", Params{})
	checkSnapshot(t, c[1], "B", "x", Params{})
}

func TestRecognizeQueryAndFragment(t *testing.T) {
	config := []*Route{
		{Path: "team/:id", Component: "team", Children: []*Route{
			{Path: "user/:name", Component: "user"},
		}},
	}
	s := recognize(t, config, "/team/22/user/victor?name=1#frag")

	if got := s.QueryParams(); !got.Equal(Params{"name": "1"}) {
		t.Errorf("QueryParams() = %v", got)
	}
	if s.Fragment() != "frag" {
		t.Errorf("Fragment() = %q", s.Fragment())
	}
	s.Walk(func(n *ActivatedRouteSnapshot, _ int) bool {
		if !n.QueryParams.Equal(Params{"name": "1"}) || n.Fragment != "frag" {
			t.Errorf("node %v query = %v fragment = %q", n, n.QueryParams, n.Fragment)
		}
		return true
	})
}

func TestRecognizeAttachesGuards(t *testing.T) {
	config := []*Route{{Path: "team/:id", Component: "team", CanActivate: []string{"auth", "owner"}}}
	s := recognize(t, config, "/team/22")

	if got := s.FirstChild(s.Root()).CanActivate; !reflect.DeepEqual(got, []string{"auth", "owner"}) {
		t.Errorf("CanActivate = %v", got)
	}
}

func TestRecognizeKeepsConfigIdentity(t *testing.T) {
	team := &Route{Path: "team/:id", Component: "team"}
	s := recognize(t, []*Route{team}, "/team/22")
	if s.FirstChild(s.Root()).RouteConfig != team {
		t.Error("RouteConfig should be the configured *Route")
	}
}

func TestRecognizeFailures(t *testing.T) {
	tests := []struct {
		name   string
		config []*Route
		url    string
		outlet string
		seg    string
	}{
		{
			name:   "no route",
			config: []*Route{{Path: "team/:id", Component: "team"}},
			url:    "user/5",
			outlet: PrimaryOutlet,
			seg:    "user",
		},
		{
			name:   "leftover segments",
			config: []*Route{{Path: "team/:id", Component: "team"}},
			url:    "team/22/extra",
			outlet: PrimaryOutlet,
			seg:    "extra",
		},
		{
			name:   "unknown outlet",
			config: []*Route{{Path: "a", Component: "A"}},
			url:    "a(left:b)",
			outlet: "left",
			seg:    "b",
		},
		{
			name: "trailing outlet unknown at every level",
			config: []*Route{
				{Path: "team/:id", Component: "team", Children: []*Route{
					{Path: "user/:name", Component: "user"},
				}},
			},
			url:    "/team/22/user/victor(right:simple)",
			outlet: "right",
			seg:    "simple",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recognize("root", tt.config, urltree.MustParse(tt.url), tt.url)
			if rec.OK() {
				t.Fatal("Recognize should fail")
			}
			if s, ok := rec.Snapshot(); ok || s != nil {
				t.Error("Snapshot() should return nil, false")
			}

			err := rec.Err()
			if !errors.Is(err, ErrNoMatch) {
				t.Fatalf("err = %v, want ErrNoMatch", err)
			}
			var nm *NoMatchError
			if !errors.As(err, &nm) {
				t.Fatalf("err %T is not *NoMatchError", err)
			}
			if nm.URL != tt.url || nm.Outlet != tt.outlet || nm.Segment != tt.seg {
				t.Errorf("NoMatchError = %+v, want outlet %q segment %q", nm, tt.outlet, tt.seg)
			}
		})
	}
}

func TestRecognitionOKHasNoError(t *testing.T) {
	rec := Recognize("root", nil, urltree.MustParse(""), "")
	if !rec.OK() || rec.Err() != nil {
		t.Errorf("OK() = %v, Err() = %v", rec.OK(), rec.Err())
	}
}
