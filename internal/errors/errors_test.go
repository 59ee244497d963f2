package errors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/vango-dev/outlet/pkg/middleware"
	"github.com/vango-dev/outlet/pkg/routeconfig"
	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/urltree"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "parse error",
			code:    "E101",
			wantMsg: "Unterminated outlet group",
			wantCat: CategoryParse,
		},
		{
			name:    "recognition error",
			code:    "E120",
			wantMsg: "No route matches URL",
			wantCat: CategoryRecognition,
		},
		{
			name:    "navigation error",
			code:    "E130",
			wantMsg: "Navigation rejected by guard",
			wantCat: CategoryNavigation,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "routes.json")
	if err.Message != `file "routes.json" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "routes.json" not found`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestOutletError_Error(t *testing.T) {
	err := New("E101")
	if got, want := err.Error(), "E101: Unterminated outlet group"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.Wrap(fmt.Errorf("inner"))
	if got, want := err.Error(), "E101: Unterminated outlet group: inner"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &OutletError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestOutletError_Builders(t *testing.T) {
	err := New("E120").
		WithURL("/team/22/x", 9).
		WithSuggestion("Add a route").
		WithExample("{path: 'x'}").
		WithDetail("Custom detail")

	if err.Input == nil || err.Input.URL != "/team/22/x" || err.Input.Offset != 9 {
		t.Errorf("Input = %+v", err.Input)
	}
	if err.Suggestion != "Add a route" || err.Example != "{path: 'x'}" || err.Detail != "Custom detail" {
		t.Errorf("err = %+v", err)
	}
}

func TestOutletError_Wrap(t *testing.T) {
	inner := router.ErrGuardRejected
	outer := New("E130").Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !errors.Is(outer, router.ErrGuardRejected) {
		t.Error("errors.Is should see through OutletError")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E160") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	oe := New("E101")
	if FromError(oe, "E160") != oe {
		t.Error("FromError should return OutletError as-is")
	}
	if FromError(fmt.Errorf("context: %w", oe), "E160") != oe {
		t.Error("FromError should find a wrapped OutletError")
	}

	stdErr := errors.New("test error")
	result := FromError(stdErr, "E160")
	if result.Wrapped != stdErr || result.Code != "E160" {
		t.Errorf("FromError = %+v", result)
	}
}

func TestClassify(t *testing.T) {
	parse := func(url string) error {
		_, err := urltree.Parse(url)
		return err
	}
	recognize := func(config []*router.Route, url string) error {
		return router.Recognize("root", config, urltree.MustParse(url), url).Err()
	}
	team := []*router.Route{{Path: "team/:id", Component: "team", Children: []*router.Route{
		{Path: "user/:name", Component: "user"},
	}}}

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantOffset int
	}{
		{"unterminated", parse("/team/(22"), "E101", 6},
		{"duplicate outlet", parse("a(left:b//left:c)"), "E106", -2},
		{"forbidden char", parse("/a b"), "E104", 2},
		{"bad escape", parse("/a%zz"), "E103", 2},
		{"escapes root", routepath.ErrPathEscapesRoot, "E107", -2},
		{"no match", recognize(team, "/team/22/extra"), "E120", 9},
		{"no match at root", recognize(team, "/user/5"), "E120", 1},
		{"wrong outlet level", recognize(team, "/team/22(right:x)"), "E121", -1},
		{"guard", fmt.Errorf("%w: guard %q", router.ErrGuardRejected, "auth"), "E130", -2},
		{"unknown guard", fmt.Errorf("%w %q", router.ErrUnknownGuard, "auth"), "E131", -2},
		{"superseded", router.ErrNavigationSuperseded, "E132", -2},
		{"canceled", router.ErrNavigationCanceled, "E133", -2},
		{"no history", router.ErrNoHistory, "E134", -2},
		{"panic", fmt.Errorf("%w: boom", middleware.ErrPanic), "E135", -2},
		{"validation", router.Validate([]*router.Route{{Path: "a/:"}}), "E141", -2},
		{"malformed routes", fmt.Errorf("%w: eof", routeconfig.ErrMalformed), "E140", -2},
		{"missing routes", fmt.Errorf("open routes: %w", os.ErrNotExist), "E142", -2},
		{"bad source", routeconfig.ErrInvalidSource, "E143", -2},
		{"already coded", New("E152"), "E152", -2},
		{"unknown", errors.New("disk on fire"), "E160", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("test error is nil")
			}
			got := Classify(tt.err)
			if got.Code != tt.wantCode {
				t.Fatalf("Code = %s, want %s (err: %v)", got.Code, tt.wantCode, tt.err)
			}
			if tt.wantOffset == -2 {
				return
			}
			if got.Input == nil {
				t.Fatal("Input is nil")
			}
			if got.Input.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", got.Input.Offset, tt.wantOffset)
			}
		})
	}

	if Classify(nil) != nil {
		t.Error("Classify(nil) should return nil")
	}
}

func TestClassifyFromRouter(t *testing.T) {
	r := router.New("root", []*router.Route{{Path: "a", Component: "A"}})
	_, err := r.NavigateByURL(context.Background(), "/b")

	got := Classify(err)
	if got.Code != "E120" || got.Input.URL != "/b" {
		t.Errorf("Classify = %+v", got)
	}
	if !errors.Is(got, router.ErrNoMatch) {
		t.Error("classified error should still match ErrNoMatch")
	}
}

func TestClassifyValidationDetail(t *testing.T) {
	err := router.Validate([]*router.Route{
		{Path: "**", Component: "NotFound"},
		{Path: "a", Component: "A"},
	})
	got := Classify(err)
	if !strings.Contains(got.Detail, "can never match at a") {
		t.Errorf("Detail = %q", got.Detail)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	_, parseErr := urltree.Parse("/team/(22")
	formatted := Classify(parseErr).
		WithSuggestion("Close the group").
		WithExample("/team/(22)").
		Format()

	for _, want := range []string{
		"ERROR E101: Unterminated outlet group",
		"  /team/(22\n        ^\n",
		"has no matching ')'",
		"Cause: ",
		"Hint: Close the group",
		"Example:",
		"Learn more: https://outlet.vango.dev/docs/errors/E101",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatWithoutOffset(t *testing.T) {
	DisableColors()
	defer EnableColors()

	formatted := New("E120").WithURL("/x", -1).Format()
	if strings.Contains(formatted, "^") {
		t.Errorf("no caret expected without an offset:\n%s", formatted)
	}
	if !strings.Contains(formatted, "  /x\n") {
		t.Errorf("Format missing URL:\n%s", formatted)
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		err  *OutletError
		want string
	}{
		{New("E101").WithURL("/a(b", 2), `E101: Unterminated outlet group ("/a(b" at offset 2)`},
		{New("E120").WithURL("/x", -1), `E120: No route matches URL ("/x")`},
		{New("E132"), "E132: Navigation superseded"},
		{&OutletError{Message: "plain"}, "plain"},
	}

	for _, tt := range tests {
		if got := tt.err.FormatCompact(); got != tt.want {
			t.Errorf("FormatCompact() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E101").WithURL(`/a"(b`, 2).Wrap(errors.New("inner")).WithSuggestion("fix it")

	var decoded struct {
		Code     string `json:"code"`
		Category string `json:"category"`
		Message  string `json:"message"`
		Input    struct {
			URL    string `json:"url"`
			Offset int    `json:"offset"`
		} `json:"input"`
		Cause      string `json:"cause"`
		Suggestion string `json:"suggestion"`
		DocURL     string `json:"docUrl"`
	}
	if e := json.Unmarshal([]byte(err.FormatJSON()), &decoded); e != nil {
		t.Fatalf("FormatJSON is not valid JSON: %v\n%s", e, err.FormatJSON())
	}
	if decoded.Code != "E101" || decoded.Category != "parse" || decoded.Input.URL != `/a"(b` ||
		decoded.Input.Offset != 2 || decoded.Cause != "inner" || decoded.Suggestion != "fix it" ||
		decoded.DocURL == "" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("cli: %w", New("E143")))
	if !strings.Contains(buf.String(), "ERROR E143: Invalid route source") {
		t.Errorf("PrintError = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, errors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("PrintError = %q", buf.String())
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("registry is empty")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted: %s before %s", codes[i-1], codes[i])
		}
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %s = %+v", code, tmpl)
		}
	}

	Register("E199", ErrorTemplate{Category: CategoryCLI, Message: "Custom"})
	defer delete(registry, "E199")
	if New("E199").Message != "Custom" {
		t.Error("registered template not used")
	}
}

func TestWrapText(t *testing.T) {
	if wrapText("", 10) != nil {
		t.Error("empty text should give no lines")
	}
	lines := wrapText("one two three four five", 9)
	for _, l := range lines {
		if len(l) > 9 {
			t.Errorf("line %q longer than 9", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five" {
		t.Errorf("lines = %v", lines)
	}
}
