package macro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/navicore/xedit/internal/xedit/editor"
	xerrors "github.com/navicore/xedit/internal/xedit/errors"
)

func TestSplitFirstWord(t *testing.T) {
	cases := []struct {
		in, name, rest string
	}{
		{"CENTER", "CENTER", ""},
		{"CENTER arg1 arg2", "CENTER", "arg1 arg2"},
		{"  CENTER  arg  ", "CENTER", "arg"},
	}
	for _, c := range cases {
		name, rest := splitFirstWord(c.in)
		if name != c.name || rest != c.rest {
			t.Errorf("splitFirstWord(%q) = (%q, %q), want (%q, %q)", c.in, name, rest, c.name, c.rest)
		}
	}
}

func TestReturnCodeFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{xerrors.New(xerrors.TargetNotFound, "not found"), 2},
		{xerrors.FileNotFoundf("x.lua"), 5},
		{xerrors.Wrap(xerrors.Io, os.ErrClosed), 5},
		{xerrors.New(xerrors.InvalidCommand, "Cannot delete at Top of File"), 1},
	}
	for _, c := range cases {
		if got := returnCodeFor(c.err); got != c.want {
			t.Errorf("returnCodeFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestResolveFindsCaseInsensitiveMatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Center.lua"), []byte("-- noop"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b := NewBridge(editor.New(), []string{dir})
	defer b.Close()

	path, err := b.resolve("center")
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}
	if filepath.Base(path) != "Center.lua" {
		t.Errorf("resolve() = %q, want basename Center.lua", path)
	}
}

func TestResolveMissingMacroErrors(t *testing.T) {
	dir := t.TempDir()
	b := NewBridge(editor.New(), []string{dir})
	defer b.Close()

	if _, err := b.resolve("NOSUCHMACRO"); err == nil {
		t.Fatal("resolve() error = nil, want FileNotFound")
	}
}

func TestRunMacroExecutesCommand(t *testing.T) {
	dir := t.TempDir()
	src := `xedit.command("DOWN 2")`
	if err := os.WriteFile(filepath.Join(dir, "GO.lua"), []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	ed := editor.NewFromLines([]string{"a", "b", "c"})
	b := NewBridge(ed, []string{dir})
	defer b.Close()
	ed.SetMacroRunner(b)

	if _, err := b.RunMacro("GO"); err != nil {
		t.Fatalf("RunMacro() error: %v", err)
	}
	if ed.CurrentLine() != 3 {
		t.Errorf("CurrentLine() = %d, want 3", ed.CurrentLine())
	}
}

func TestRunMacroParseErrorReturnsCodeThree(t *testing.T) {
	dir := t.TempDir()
	src := `
local rc = xedit.command("ZZZNOTACOMMAND")
if rc == 3 then
	xedit.command("DOWN 3")
else
	xedit.command("DOWN 1")
end
`
	if err := os.WriteFile(filepath.Join(dir, "GO.lua"), []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	ed := editor.NewFromLines([]string{"a", "b", "c", "d"})
	b := NewBridge(ed, []string{dir})
	defer b.Close()
	ed.SetMacroRunner(b)

	if _, err := b.RunMacro("GO"); err != nil {
		t.Fatalf("RunMacro() error: %v", err)
	}
	if ed.CurrentLine() != 4 {
		t.Errorf("CurrentLine() = %d, want 4 (parse error should return code 3)", ed.CurrentLine())
	}
}

func TestRunProfileMissingIsSilent(t *testing.T) {
	dir := t.TempDir()
	ed := editor.New()
	b := NewBridge(ed, []string{dir})
	defer b.Close()

	b.RunProfile() // must not panic
}
