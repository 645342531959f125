package profile

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/navicore/xedit/internal/xedit/editor"
)

func writeProfile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "PROFILE.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, `
trunc = 80
zone = [1, 80]
number = true
case = "RESPECT"
macro_path = ["./macros"]

[colors]
curline = "yellow"
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Trunc == nil || *s.Trunc != 80 {
		t.Errorf("Trunc = %v, want 80", s.Trunc)
	}
	if len(s.Zone) != 2 || s.Zone[0] != 1 || s.Zone[1] != 80 {
		t.Errorf("Zone = %v, want [1 80]", s.Zone)
	}
	if s.Number == nil || !*s.Number {
		t.Errorf("Number = %v, want true", s.Number)
	}
	if s.Case == nil || *s.Case != "RESPECT" {
		t.Errorf("Case = %v, want RESPECT", s.Case)
	}
	if len(s.MacroPath) != 1 || s.MacroPath[0] != "./macros" {
		t.Errorf("MacroPath = %v, want [./macros]", s.MacroPath)
	}
	if s.Colors["curline"] != "yellow" {
		t.Errorf("Colors[curline] = %q, want yellow", s.Colors["curline"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "nope.toml")); err == nil {
		t.Fatal("Load() error = nil, want FileNotFound")
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "trunc = [not valid")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func TestApplySetsEditorState(t *testing.T) {
	ed := editor.New()
	trunc := 64
	number := false
	s := &Settings{
		Trunc:  &trunc,
		Zone:   []int{1, 64},
		Number: &number,
		Colors: map[string]string{"curline": "green"},
	}

	if err := Apply(ed, s); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if ed.Trunc() != 64 {
		t.Errorf("Trunc() = %d, want 64", ed.Trunc())
	}
	if ed.ShowNumber() {
		t.Error("ShowNumber() = true, want false")
	}
	if _, ok := ed.ColorOverride("CURLINE"); !ok {
		t.Error("ColorOverride(CURLINE) not set")
	}
}

func TestApplySetsPfKeys(t *testing.T) {
	ed := editor.New()
	s := &Settings{PfKeys: map[string]string{"3": "SAVE"}}

	if err := Apply(ed, s); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	text, ok := ed.PfKey(3)
	if !ok || text != "SAVE" {
		t.Errorf("PfKey(3) = (%q, %v), want (SAVE, true)", text, ok)
	}
}

func TestApplyInvalidPfKeySlotReportsError(t *testing.T) {
	ed := editor.New()
	s := &Settings{PfKeys: map[string]string{"99": "SAVE"}}

	if err := Apply(ed, s); err == nil {
		t.Fatal("Apply() error = nil, want invalid PF key slot error")
	}
}

func TestApplyUnknownColorAreaReportsError(t *testing.T) {
	ed := editor.New()
	s := &Settings{Colors: map[string]string{"nosucharea": "red"}}

	if err := Apply(ed, s); err == nil {
		t.Fatal("Apply() error = nil, want unknown colour area error")
	}
}

func TestApplyNilSettingsIsNoOp(t *testing.T) {
	if err := Apply(editor.New(), nil); err != nil {
		t.Fatalf("Apply(nil) error: %v", err)
	}
}

func TestLoaderWithFS(t *testing.T) {
	fsys := fstest.MapFS{
		"PROFILE.toml": &fstest.MapFile{Data: []byte("trunc = 40\n")},
	}
	loader := NewLoader(WithFS(fsys))

	s, err := loader.Load("PROFILE.toml")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Trunc == nil || *s.Trunc != 40 {
		t.Errorf("Trunc = %v, want 40", s.Trunc)
	}
}

func TestApplySetsMacroPath(t *testing.T) {
	ed := editor.New()
	s := &Settings{MacroPath: []string{"/usr/local/xedit/macros"}}

	if err := Apply(ed, s); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if got := ed.MacroPath(); len(got) != 1 || got[0] != "/usr/local/xedit/macros" {
		t.Errorf("MacroPath() = %v, want [/usr/local/xedit/macros]", got)
	}
}
