package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spiffcs/widgets/internal/constants"
	"github.com/spiffcs/widgets/internal/output"
	"github.com/spiffcs/widgets/internal/tui"
)

// setupHome points the user config directory at a temp dir and returns it.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	return home
}

func writeGlobalConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, constants.AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// fakePrompter answers the interactive screens from canned values.
type fakePrompter struct {
	menus     []int
	edit      string
	editSaved bool
	form      []string
	formOK    bool
	titles    []string
}

func (f *fakePrompter) Menu(title string, _ []string) (int, error) {
	f.titles = append(f.titles, title)
	if len(f.menus) == 0 {
		return -1, nil
	}
	c := f.menus[0]
	f.menus = f.menus[1:]
	return c, nil
}

func (f *fakePrompter) Edit(title, _ string, validate func(string) error) (string, bool, error) {
	f.titles = append(f.titles, title)
	if err := validate(f.edit); err != nil {
		return "", false, err
	}
	return f.edit, f.editSaved, nil
}

func (f *fakePrompter) Form(title string, _ []tui.Field) ([]string, bool, error) {
	f.titles = append(f.titles, title)
	return f.form, f.formOK, nil
}

func usePrompter(t *testing.T, p prompter) {
	t.Helper()
	prev := prompt
	prompt = p
	t.Cleanup(func() { prompt = prev })
}

func TestNew(t *testing.T) {
	cmd := New()
	if cmd == nil {
		t.Fatal("New() returned nil")
	}
	if cmd.Use != "widgets" {
		t.Errorf("expected Use to be 'widgets', got %q", cmd.Use)
	}

	want := []string{"days", "notes", "badge", "overlay", "update", "bootstrap", "menu", "config", "version"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-10-14")
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "widgets 1.2.3") || !strings.Contains(out, "abc123") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestDaysJSON(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()

	out, err := execute(t, "days", "--dir", dir, "--tui=false", "-o", "json", "--at", "2025-08-22")
	if err != nil {
		t.Fatalf("days error: %v", err)
	}

	var records []output.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 default records, got %d", len(records))
	}
	if records[0].Text != "1年6月" || records[1].Text != "0天" || records[2].Text != "25年" {
		t.Errorf("unexpected records %+v", records)
	}
	if _, err := os.Stat(filepath.Join(dir, "my-days.json")); err != nil {
		t.Errorf("expected data file created: %v", err)
	}
}

func TestDaysPreview(t *testing.T) {
	setupHome(t)
	out, err := execute(t, "days", "--dir", t.TempDir(), "--preview", "--size", "small", "--at", "2025-08-22")
	if err != nil {
		t.Fatalf("days --preview error: %v", err)
	}
	if !strings.Contains(out, "纪念日") || !strings.Contains(out, "0天") {
		t.Errorf("unexpected preview:\n%s", out)
	}

	if _, err := execute(t, "days", "--dir", t.TempDir(), "--preview", "--size", "huge"); err == nil {
		t.Error("expected error for invalid size")
	}
}

func TestDaysUsesConfigLocale(t *testing.T) {
	home := setupHome(t)
	writeGlobalConfig(t, home, "locale: en\ndefault_format: yaml\n")

	out, err := execute(t, "days", "--dir", t.TempDir(), "--at", "2025-08-22")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "text: 1y6m") {
		t.Errorf("expected English units in YAML output:\n%s", out)
	}
}

func TestDaysEditFile(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()

	file := filepath.Join(t.TempDir(), "days.json")
	if err := os.WriteFile(file, []byte(`[{"title":"Wedding","date":"2020-05-20"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "days", "edit", "--dir", dir, "--file", file); err != nil {
		t.Fatalf("days edit error: %v", err)
	}

	out, err := execute(t, "days", "--dir", dir, "-o", "json", "--at", "2025-05-20")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"title": "Wedding"`) || !strings.Contains(out, `"years": 5`) {
		t.Errorf("unexpected output after edit:\n%s", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"title":"x","date":"nope"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "days", "edit", "--dir", dir, "--file", bad); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestDaysEditPrompt(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()
	p := &fakePrompter{edit: `[{"title":"Trip","date":"2026-01-01"}]`, editSaved: true}
	usePrompter(t, p)

	out, err := execute(t, "days", "edit", "--dir", dir, "--tui")
	if err != nil {
		t.Fatalf("days edit error: %v", err)
	}
	if !strings.Contains(out, "Saved") {
		t.Errorf("unexpected output %q", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "my-days.json"))
	if err != nil || !strings.Contains(string(data), "Trip") {
		t.Errorf("expected edited list saved, got %q (%v)", data, err)
	}
}

func TestDaysEditNoTerminal(t *testing.T) {
	setupHome(t)
	if _, err := execute(t, "days", "edit", "--dir", t.TempDir(), "--tui=false"); err == nil {
		t.Error("expected error without terminal or --file")
	}
}

func TestBadge(t *testing.T) {
	setupHome(t)
	out, err := execute(t, "badge", "--at", "2026-10-14")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "10月14号 周三" {
		t.Errorf("badge = %q", out)
	}

	out, err = execute(t, "badge", "--at", "2026-10-14", "--en")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "Oct 14 Wed" {
		t.Errorf("badge --en = %q", out)
	}
}

func TestOverlayOut(t *testing.T) {
	setupHome(t)
	path := filepath.Join(t.TempDir(), "overlay.png")

	if _, err := execute(t, "overlay", "--out", path, "--width", "120", "--height", "600", "--scale", "1"); err != nil {
		t.Fatalf("overlay error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}

	if _, err := execute(t, "overlay", "--accent", "blue"); err == nil {
		t.Error("expected error for invalid accent")
	}
}

func scriptServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/my-days.js", "/my-notes.js":
			fmt.Fprintf(w, "%s\nconst x = 1\n", constants.ScriptMarker)
		case "/broken.js":
			fmt.Fprintln(w, "<html>not a script</html>")
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUpdate(t *testing.T) {
	home := setupHome(t)
	srv := scriptServer(t)
	writeGlobalConfig(t, home, fmt.Sprintf(`
scripts:
  - name: my-days
    url: %[1]s/my-days.js
  - name: my-notes
    url: %[1]s/my-notes.js
  - name: broken
    url: %[1]s/broken.js
`, srv.URL))
	dir := t.TempDir()

	out, err := execute(t, "update", "--dir", dir, "--tui=false", "my-days", "my-notes")
	if err != nil {
		t.Fatalf("update error: %v\n%s", err, out)
	}
	for _, name := range []string{"my-days.js", "my-notes.js"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s saved: %v", name, err)
		}
	}

	out, err = execute(t, "update", "--dir", dir, "--tui=false")
	if err == nil || !strings.Contains(err.Error(), "1 of 3") {
		t.Errorf("expected one failure, got %v", err)
	}
	if !strings.Contains(out, "broken") {
		t.Errorf("expected failed script listed:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.js")); !errors.Is(err, os.ErrNotExist) {
		t.Error("expected invalid source not to be written")
	}

	if _, err := execute(t, "update", "--dir", dir, "nope"); err == nil {
		t.Error("expected error for unknown script")
	}
}

func TestBootstrap(t *testing.T) {
	home := setupHome(t)
	srv := scriptServer(t)
	writeGlobalConfig(t, home, fmt.Sprintf("scripts:\n  - name: my-days\n    url: %s/my-days.js\n", srv.URL))
	dir := t.TempDir()

	out, err := execute(t, "bootstrap", "--dir", dir, "my-days")
	if err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}
	if !strings.Contains(out, filepath.Join(dir, "my-days.js")) {
		t.Errorf("unexpected output %q", out)
	}
}

func notesServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-budibase-api-key") != "key" || r.URL.Path != "/api/public/v1/tables/tbl/rows/search" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"content":"buy milk"}]}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNotes(t *testing.T) {
	home := setupHome(t)
	srv := notesServer(t)
	writeGlobalConfig(t, home, fmt.Sprintf("notes:\n  base_url: %s\n", srv.URL))

	out, err := execute(t, "notes", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Keychain not configured.") {
		t.Errorf("expected not configured result, got %s", out)
	}

	if _, err := execute(t, "notes", "set-key", "--api-key", "key", "--app-id", "app", "--table-id", "tbl"); err != nil {
		t.Fatalf("set-key error: %v", err)
	}

	out, err = execute(t, "notes", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"success": true`) || !strings.Contains(out, "buy milk") {
		t.Errorf("unexpected notes result %s", out)
	}

	out, err = execute(t, "notes", "--size", "medium")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "buy milk") || !strings.Contains(out, "最后更新") {
		t.Errorf("unexpected notes widget:\n%s", out)
	}
}

func TestNotesSetKeyPrompt(t *testing.T) {
	setupHome(t)
	usePrompter(t, &fakePrompter{form: []string{"key", "", "tbl"}, formOK: true})

	if _, err := execute(t, "notes", "set-key", "--tui"); err == nil {
		t.Error("expected error for empty app id")
	}
}

func TestMenuPreview(t *testing.T) {
	setupHome(t)
	p := &fakePrompter{menus: []int{actionPreview, 0}}
	usePrompter(t, p)

	out, err := execute(t, "menu", "days", "--dir", t.TempDir(), "--tui")
	if err != nil {
		t.Fatalf("menu error: %v", err)
	}
	if !strings.Contains(out, "MyDay") {
		t.Errorf("expected preview output:\n%s", out)
	}
	if len(p.titles) != 2 || p.titles[0] != "my-days" || p.titles[1] != "Preview size" {
		t.Errorf("unexpected screens %v", p.titles)
	}
}

func TestMenuExit(t *testing.T) {
	setupHome(t)
	for _, choice := range []int{actionExit, -1} {
		usePrompter(t, &fakePrompter{menus: []int{choice}})
		out, err := execute(t, "menu", "notes", "--dir", t.TempDir(), "--tui")
		if err != nil || out != "" {
			t.Errorf("choice %d: out=%q err=%v", choice, out, err)
		}
	}
}

func TestMenuRequiresTerminal(t *testing.T) {
	setupHome(t)
	if _, err := execute(t, "menu", "--tui=false"); err == nil {
		t.Error("expected error without terminal")
	}
	if _, err := execute(t, "menu", "weather", "--tui"); err == nil {
		t.Error("expected error for unknown widget")
	}
}

func TestMenuItems(t *testing.T) {
	if got := menuItems("my-notes")[1]; got != "Set API Key" {
		t.Errorf("notes menu item = %q", got)
	}
	if got := menuItems("my-days")[1]; got != "Edit config" {
		t.Errorf("days menu item = %q", got)
	}
}

func TestConfigSet(t *testing.T) {
	home := setupHome(t)

	if _, err := execute(t, "config", "set", "size", "small"); err != nil {
		t.Fatalf("config set error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(home, constants.AppName, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "default_size: small") {
		t.Errorf("unexpected config file:\n%s", data)
	}

	if _, err := execute(t, "config", "set", "api_key", "x"); err == nil {
		t.Error("expected credentials to be rejected")
	}
}

func TestConfigDefaultsJSON(t *testing.T) {
	setupHome(t)
	out, err := execute(t, "config", "defaults", "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m["default_size"] != "medium" {
		t.Errorf("default_size = %v", m["default_size"])
	}
}

func TestTUIFlag(t *testing.T) {
	opts := &Options{}
	f := newTUIFlag(opts)

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"true", "true", false},
		{"no", "false", false},
		{"auto", "auto", false},
		{"maybe", "auto", true},
	}
	for _, tt := range tests {
		err := f.Set(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q) error = %v", tt.input, err)
		}
		if f.String() != tt.want {
			t.Errorf("after Set(%q) String() = %q, want %q", tt.input, f.String(), tt.want)
		}
	}

	on := true
	if shouldUseTUI(NewOptions(WithTUI(&on), WithVerbosity(1))) {
		t.Error("expected verbose logging to disable the TUI")
	}
	if !shouldUseTUI(NewOptions(WithTUI(&on))) {
		t.Error("expected forced TUI")
	}
}
