package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const teamRoutes = `[
  {"path": "team/:id", "component": "team", "children": [
    {"path": "user/:name", "component": "user"},
    {"path": "simple", "component": "simple", "outlet": "right"},
    {"path": "admin", "component": "admin", "canActivate": ["admin"]}
  ]}
]`

// project writes outlet.json and routes.json to a temp dir and returns the
// --config flag pointing at it.
func project(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	cfg := `{"routes": "routes.json", "root": "app", "guards": {"deny": ["admin"]}}`
	if err := os.WriteFile(filepath.Join(dir, "outlet.json"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "routes.json"), []byte(teamRoutes), 0644); err != nil {
		t.Fatal(err)
	}
	return []string{"--no-color", "--config", filepath.Join(dir, "outlet.json")}
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "version", "--short")
	if code != 0 || out != "dev\n" {
		t.Errorf("version --short = %d %q", code, out)
	}

	code, out, _ = runCLI(t, "version")
	if code != 0 || !strings.Contains(out, "Version:    dev") {
		t.Errorf("version = %d %q", code, out)
	}
}

func TestParse(t *testing.T) {
	code, out, stderr := runCLI(t, "parse", "/team/22/(user/victor//right:simple)?debug=1#top")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	want := strings.Join([]string{
		"/team/22/(user/victor//right:simple)?debug=1#top",
		"primary: team/22",
		"  primary: user/victor",
		"  right: simple",
		"query: debug=1",
		"fragment: top",
		"",
	}, "\n")
	if out != want {
		t.Errorf("parse output:\n%s\nwant:\n%s", out, want)
	}
}

func TestParseJSON(t *testing.T) {
	code, out, stderr := runCLI(t, "parse", "--json", "a/(right:c//b)")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var got struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %s: %v", out, err)
	}
	if got.URL != "/a/(b//right:c)" {
		t.Errorf("url = %q, want %q", got.URL, "/a/(b//right:c)")
	}
}

func TestParseError(t *testing.T) {
	code, _, stderr := runCLI(t, "--no-color", "parse", "/team/(22")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	for _, want := range []string{"ERROR E101: Unterminated outlet group", "  /team/(22\n        ^"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestParseErrorJSON(t *testing.T) {
	code, _, stderr := runCLI(t, "--json", "parse", "/a b")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	var got struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal([]byte(stderr), &got); err != nil {
		t.Fatalf("unmarshal %s: %v", stderr, err)
	}
	if got.Code != "E104" {
		t.Errorf("code = %q, want E104", got.Code)
	}
}

func TestSerialize(t *testing.T) {
	code, out, stderr := runCLI(t, "serialize", "a/(right:c//b)", "team/22/", "")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if want := "/a/(b//right:c)\n/team/22\n\n"; out != want {
		t.Errorf("serialize = %q, want %q", out, want)
	}
}

func TestRecognize(t *testing.T) {
	args := append(project(t), "recognize", "/team/22/(user/victor//right:simple)")
	code, out, stderr := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{
		"(root) -> app\n",
		"  primary: team/:id -> team {id=22}\n",
		"    primary: user/:name -> user {name=victor}\n",
		"    right: simple -> simple\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRecognizeNoMatch(t *testing.T) {
	args := append(project(t), "recognize", "/nowhere")
	code, _, stderr := runCLI(t, args...)
	if code != 1 || !strings.Contains(stderr, "E120") {
		t.Errorf("exit = %d, stderr:\n%s", code, stderr)
	}
}

func TestRecognizeRoutesFlag(t *testing.T) {
	dir := t.TempDir()
	routes := filepath.Join(dir, "other.json")
	if err := os.WriteFile(routes, []byte(`[{"path": "inbox/:id", "component": "inbox"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	args := append(project(t), "--routes", routes, "recognize", "/inbox/33")
	code, out, stderr := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(out, "inbox {id=33}") {
		t.Errorf("output:\n%s", out)
	}
}

func TestMissingRoutes(t *testing.T) {
	args := append(project(t), "--routes", filepath.Join(t.TempDir(), "missing.json"), "recognize", "/a")
	code, _, stderr := runCLI(t, args...)
	if code != 1 || !strings.Contains(stderr, "E142") {
		t.Errorf("exit = %d, stderr:\n%s", code, stderr)
	}
}

func TestNavigate(t *testing.T) {
	args := append(project(t), "navigate", "/team/22/user/victor", "/team/33/user/victor")
	code, out, stderr := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	want := strings.Join([]string{
		"→ /team/22/user/victor  (created 2, reused 1, retired 0)",
		"  + primary: team",
		"  + primary: user",
		"→ /team/33/user/victor  (created 0, reused 3, retired 0)",
	}, "\n")
	if !strings.HasPrefix(out, want) {
		t.Errorf("navigate output:\n%s\nwant prefix:\n%s", out, want)
	}
}

func TestNavigateJSONWithBack(t *testing.T) {
	args := append(project(t), "--json", "navigate", "--back", "1", "/team/22/user/victor", "/team/22/(user/victor//right:simple)")
	code, out, stderr := runCLI(t, args...)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var steps []step
	if err := json.Unmarshal([]byte(out), &steps); err != nil {
		t.Fatalf("unmarshal %s: %v", out, err)
	}
	if len(steps) != 3 {
		t.Fatalf("len(steps) = %d, want 3", len(steps))
	}
	if steps[1].Created != 1 || len(steps[1].Events) != 1 || steps[1].Events[0].Component != "simple" {
		t.Errorf("step 2 = %+v", steps[1])
	}
	last := steps[2]
	if last.Request != "(back)" || last.URL != "/team/22/user/victor" || last.Retired != 1 {
		t.Errorf("back step = %+v", last)
	}
	if len(last.Events) != 1 || last.Events[0].Type != "deactivate" {
		t.Errorf("back events = %+v", last.Events)
	}
}

func TestNavigateDeniedGuard(t *testing.T) {
	args := append(project(t), "navigate", "/team/22/admin")
	code, _, stderr := runCLI(t, args...)
	if code != 1 || !strings.Contains(stderr, "E130") {
		t.Errorf("exit = %d, stderr:\n%s", code, stderr)
	}
}

func TestNavigateGuardAllowedWithoutDeny(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "outlet.json"), []byte(`{"routes": "routes.json"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "routes.json"), []byte(teamRoutes), 0644); err != nil {
		t.Fatal(err)
	}

	code, out, stderr := runCLI(t, "--no-color", "--config", filepath.Join(dir, "outlet.json"), "navigate", "/team/22/admin")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(out, "+ primary: admin") {
		t.Errorf("output:\n%s", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outlet.json")
	if err := os.WriteFile(path, []byte(`{"server": {"port": 70000}}`), 0644); err != nil {
		t.Fatal(err)
	}
	code, _, stderr := runCLI(t, "--no-color", "--config", path, "recognize", "/a")
	if code != 1 || !strings.Contains(stderr, "E150") {
		t.Errorf("exit = %d, stderr:\n%s", code, stderr)
	}
}
