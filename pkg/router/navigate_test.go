package router

import "testing"

func TestHistory(t *testing.T) {
	h := NewHistory()
	if h.Path() != "" || h.Len() != 1 {
		t.Fatalf("new history: path = %q, len = %d", h.Path(), h.Len())
	}
	if _, ok := h.Back(); ok {
		t.Error("Back on a fresh history should fail")
	}

	h.Go("/a")
	h.Go("/b")
	h.Go("/c")

	if p, ok := h.Back(); !ok || p != "/b" {
		t.Errorf("Back() = %q, %v", p, ok)
	}
	if p, ok := h.Back(); !ok || p != "/a" {
		t.Errorf("Back() = %q, %v", p, ok)
	}
	if p, ok := h.Forward(); !ok || p != "/b" {
		t.Errorf("Forward() = %q, %v", p, ok)
	}

	h.Go("/d")
	if h.Len() != 4 {
		t.Errorf("Go should drop forward entries, len = %d", h.Len())
	}
	if _, ok := h.Forward(); ok {
		t.Error("Forward at the newest entry should fail")
	}

	h.Replace("/e")
	if h.Path() != "/e" || h.Len() != 4 {
		t.Errorf("after Replace: path = %q, len = %d", h.Path(), h.Len())
	}
}

func TestNavigateOptions(t *testing.T) {
	route := newActivatedRoute(snap(nil))
	query := Params{"a": "1"}

	o := buildOptions([]NavigateOption{
		WithReplace(),
		WithoutLocationChange(),
		RelativeTo(route),
		WithQueryParams(query),
		WithFragment("f"),
	})

	if !o.Replace || !o.SkipLocationChange || o.RelativeTo != route || o.Fragment != "f" {
		t.Errorf("options = %+v", o)
	}
	query["a"] = "2"
	if o.QueryParams["a"] != "1" {
		t.Error("WithQueryParams should copy its argument")
	}
}
