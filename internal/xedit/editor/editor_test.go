package editor

import (
	"testing"

	"github.com/navicore/xedit/internal/xedit/command"
	"github.com/navicore/xedit/internal/xedit/prefix"
	"github.com/navicore/xedit/internal/xedit/target"
)

func mustTarget(t *testing.T, s string) *target.Target {
	t.Helper()
	tgt, err := target.Parse(s)
	if err != nil {
		t.Fatalf("target.Parse(%q) error: %v", s, err)
	}
	return tgt
}

func TestNavigateUpDown(t *testing.T) {
	e := NewFromLines([]string{"a", "b", "c"})
	e.currentLine = 0

	if _, err := e.Execute(command.Command{Kind: command.Down, Count: 2}); err != nil {
		t.Fatalf("Down error: %v", err)
	}
	if e.CurrentLine() != 2 {
		t.Errorf("CurrentLine() = %d, want 2", e.CurrentLine())
	}

	if _, err := e.Execute(command.Command{Kind: command.Up, Count: 5}); err != nil {
		t.Fatalf("Up error: %v", err)
	}
	if e.CurrentLine() != 0 {
		t.Errorf("CurrentLine() = %d, want 0 (clamped at TOF)", e.CurrentLine())
	}

	if _, err := e.Execute(command.Command{Kind: command.Down, Count: 99}); err != nil {
		t.Fatalf("Down error: %v", err)
	}
	if e.CurrentLine() != 3 {
		t.Errorf("CurrentLine() = %d, want 3 (clamped at EOF)", e.CurrentLine())
	}
}

func TestTopAndBottom(t *testing.T) {
	e := NewFromLines([]string{"a", "b", "c"})
	if _, err := e.Execute(command.Command{Kind: command.Bottom}); err != nil {
		t.Fatalf("Bottom error: %v", err)
	}
	if e.CurrentLine() != 3 {
		t.Errorf("CurrentLine() = %d, want 3", e.CurrentLine())
	}
	if _, err := e.Execute(command.Command{Kind: command.Top}); err != nil {
		t.Fatalf("Top error: %v", err)
	}
	if e.CurrentLine() != 0 {
		t.Errorf("CurrentLine() = %d, want 0", e.CurrentLine())
	}
	// a repeated Top is an idempotent no-op
	if _, err := e.Execute(command.Command{Kind: command.Top}); err != nil {
		t.Fatalf("Top error: %v", err)
	}
	if e.CurrentLine() != 0 {
		t.Errorf("CurrentLine() = %d, want 0", e.CurrentLine())
	}
}

func TestLocateForward(t *testing.T) {
	e := NewFromLines([]string{"alpha", "beta", "gamma", "delta"})
	e.currentLine = 0
	tgt := mustTarget(t, "/gamma/")
	if _, err := e.Execute(command.Command{Kind: command.Locate, Target: tgt}); err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if e.CurrentLine() != 3 {
		t.Errorf("CurrentLine() = %d, want 3", e.CurrentLine())
	}
}

func TestLocateNotFound(t *testing.T) {
	e := NewFromLines([]string{"alpha", "beta"})
	tgt := mustTarget(t, "/zzz/")
	if _, err := e.Execute(command.Command{Kind: command.Locate, Target: tgt}); err == nil {
		t.Fatal("Locate() error = nil, want TargetNotFound")
	}
}

func TestLocateBackwardFromTOFNeverMatches(t *testing.T) {
	e := NewFromLines([]string{"alpha", "beta"})
	e.currentLine = 0
	tgt := mustTarget(t, "-/alpha/")
	if _, err := e.Execute(command.Command{Kind: command.Locate, Target: tgt}); err == nil {
		t.Fatal("Locate() error = nil, want TargetNotFound from TOF")
	}
}

func TestChangeText(t *testing.T) {
	e := NewFromLines([]string{"hello world"})
	e.currentLine = 1
	result, err := e.Execute(command.Command{Kind: command.Change, From: "hello", To: "hi"})
	if err != nil {
		t.Fatalf("Change error: %v", err)
	}
	if !result.HasMsg {
		t.Error("Change result has no message")
	}
	text, _ := e.LineText(1)
	if text != "hi world" {
		t.Errorf("LineText(1) = %q, want %q", text, "hi world")
	}
}

func TestChangeNotFound(t *testing.T) {
	e := NewFromLines([]string{"hello world"})
	e.currentLine = 1
	if _, err := e.Execute(command.Command{Kind: command.Change, From: "zzz", To: "hi"}); err == nil {
		t.Fatal("Change() error = nil, want TargetNotFound")
	}
}

func TestInputLineSequence(t *testing.T) {
	e := NewFromLines([]string{"first"})
	e.currentLine = 1
	e.InputLine("second")
	e.InputLine("third")
	if e.BufferLen() != 3 {
		t.Fatalf("BufferLen() = %d, want 3", e.BufferLen())
	}
	if e.CurrentLine() != 3 {
		t.Errorf("CurrentLine() = %d, want 3", e.CurrentLine())
	}
	if e.AltCount() != 2 {
		t.Errorf("AltCount() = %d, want 2", e.AltCount())
	}
}

func TestDeleteCurrentLine(t *testing.T) {
	e := NewFromLines([]string{"a", "b", "c"})
	e.currentLine = 2
	if _, err := e.Execute(command.Command{Kind: command.Delete}); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if e.BufferLen() != 2 {
		t.Fatalf("BufferLen() = %d, want 2", e.BufferLen())
	}
	text, _ := e.LineText(2)
	if text != "c" {
		t.Errorf("LineText(2) = %q, want %q", text, "c")
	}
}

func TestDeleteAtTOFErrors(t *testing.T) {
	e := NewFromLines([]string{"a"})
	e.currentLine = 0
	if _, err := e.Execute(command.Command{Kind: command.Delete}); err == nil {
		t.Fatal("Delete() error = nil, want error at TOF")
	}
}

func TestDeleteStar(t *testing.T) {
	e := NewFromLines([]string{"a", "b", "c", "d"})
	e.currentLine = 2
	tgt := mustTarget(t, "*")
	if _, err := e.Execute(command.Command{Kind: command.Delete, Target: tgt}); err != nil {
		t.Fatalf("Delete * error: %v", err)
	}
	if e.BufferLen() != 1 {
		t.Fatalf("BufferLen() = %d, want 1", e.BufferLen())
	}
}

func TestQuitModifiedErrors(t *testing.T) {
	e := NewFromLines([]string{"a"})
	e.currentLine = 1
	if _, err := e.Execute(command.Command{Kind: command.Change, From: "a", To: "b"}); err != nil {
		t.Fatalf("Change error: %v", err)
	}
	if _, err := e.Execute(command.Command{Kind: command.Quit}); err == nil {
		t.Fatal("Quit() error = nil, want FileModified")
	}
	result, err := e.Execute(command.Command{Kind: command.QQuit})
	if err != nil {
		t.Fatalf("QQuit error: %v", err)
	}
	if result.Action != command.ActionQuit {
		t.Errorf("QQuit Action = %v, want ActionQuit", result.Action)
	}
}

func TestUndoRoundTrip(t *testing.T) {
	e := NewFromLines([]string{"a", "b"})
	e.currentLine = 1
	original := append([]string(nil), e.Buffer().Lines()...)

	if _, err := e.Execute(command.Command{Kind: command.Change, From: "a", To: "z"}); err != nil {
		t.Fatalf("Change error: %v", err)
	}
	if _, err := e.Execute(command.Command{Kind: command.Undo}); err != nil {
		t.Fatalf("Undo error: %v", err)
	}
	restored := e.Buffer().Lines()
	if len(restored) != len(original) || restored[0] != original[0] {
		t.Errorf("Lines() after undo = %v, want %v", restored, original)
	}
}

func TestUndoWithoutHistoryErrors(t *testing.T) {
	e := NewFromLines([]string{"a"})
	if _, err := e.Execute(command.Command{Kind: command.Undo}); err == nil {
		t.Fatal("Undo() error = nil, want error")
	}
}

func TestAllFilterThenReset(t *testing.T) {
	e := NewFromLines([]string{"apple", "banana", "apricot", "cherry"})
	tgt := mustTarget(t, "/ap/")
	result, err := e.Execute(command.Command{Kind: command.All, Target: tgt})
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if !result.HasMsg {
		t.Error("All result has no message")
	}
	if e.IsLineVisible(1) != true || e.IsLineVisible(2) != false || e.IsLineVisible(3) != true {
		t.Errorf("visibility = %v %v %v, want true false true", e.IsLineVisible(1), e.IsLineVisible(2), e.IsLineVisible(3))
	}

	if _, err := e.Execute(command.Command{Kind: command.All}); err != nil {
		t.Fatalf("All reset error: %v", err)
	}
	if !e.IsLineVisible(2) {
		t.Error("IsLineVisible(2) = false after ALL reset, want true")
	}
}

func TestSortAscendingThenDescendingReverses(t *testing.T) {
	e := NewFromLines([]string{"charlie", "alpha", "bravo"})
	e.currentLine = 1
	tgt := mustTarget(t, "*")

	if _, err := e.Execute(command.Command{Kind: command.Sort, SortArgs: command.SortArgs{
		Target: tgt, Ascending: true,
	}}); err != nil {
		t.Fatalf("Sort ascending error: %v", err)
	}
	lines := e.Buffer().Lines()
	if lines[0] != "alpha" || lines[1] != "bravo" || lines[2] != "charlie" {
		t.Errorf("Lines() = %v, want ascending order", lines)
	}

	e.currentLine = 1
	if _, err := e.Execute(command.Command{Kind: command.Sort, SortArgs: command.SortArgs{
		Target: tgt, Ascending: false,
	}}); err != nil {
		t.Fatalf("Sort descending error: %v", err)
	}
	lines = e.Buffer().Lines()
	if lines[0] != "charlie" || lines[1] != "bravo" || lines[2] != "alpha" {
		t.Errorf("Lines() = %v, want descending order", lines)
	}
}

func TestPrefixDelete(t *testing.T) {
	e := NewFromLines([]string{"a", "b", "c"})
	cmd, ok := prefix.Parse("d")
	if !ok {
		t.Fatal("prefix.Parse(d) failed")
	}
	if _, err := e.ExecutePrefix(2, cmd); err != nil {
		t.Fatalf("ExecutePrefix error: %v", err)
	}
	if e.BufferLen() != 2 {
		t.Fatalf("BufferLen() = %d, want 2", e.BufferLen())
	}
	text, _ := e.LineText(2)
	if text != "c" {
		t.Errorf("LineText(2) = %q, want %q", text, "c")
	}
}

func TestPrefixDuplicate(t *testing.T) {
	e := NewFromLines([]string{"a", "b"})
	cmd, ok := prefix.Parse(`"2`)
	if !ok {
		t.Fatal(`prefix.Parse(") failed`)
	}
	if _, err := e.ExecutePrefix(1, cmd); err != nil {
		t.Fatalf("ExecutePrefix error: %v", err)
	}
	if e.BufferLen() != 4 {
		t.Fatalf("BufferLen() = %d, want 4", e.BufferLen())
	}
	for i := 2; i <= 3; i++ {
		text, _ := e.LineText(i)
		if text != "a" {
			t.Errorf("LineText(%d) = %q, want %q", i, text, "a")
		}
	}
}

func TestPrefixBlockDelete(t *testing.T) {
	e := NewFromLines([]string{"a", "b", "c", "d", "e"})
	cmd, ok := prefix.Parse("dd")
	if !ok {
		t.Fatal("prefix.Parse(dd) failed")
	}
	if _, err := e.ExecutePrefix(4, cmd); err != nil {
		t.Fatalf("ExecutePrefix first dd error: %v", err)
	}
	if !e.HasPendingBlock() {
		t.Fatal("HasPendingBlock() = false after first dd, want true")
	}
	if _, err := e.ExecutePrefix(2, cmd); err != nil {
		t.Fatalf("ExecutePrefix second dd error: %v", err)
	}
	if e.HasPendingBlock() {
		t.Error("HasPendingBlock() = true after closing dd, want false")
	}
	if e.BufferLen() != 2 {
		t.Fatalf("BufferLen() = %d, want 2", e.BufferLen())
	}
	first, _ := e.LineText(1)
	second, _ := e.LineText(2)
	if first != "a" || second != "e" {
		t.Errorf("Lines = %q, %q, want a, e", first, second)
	}
}

func TestPrefixCopyFollowing(t *testing.T) {
	e := NewFromLines([]string{"a", "b", "c"})
	copyCmd, _ := prefix.Parse("c")
	if _, err := e.ExecutePrefix(1, copyCmd); err != nil {
		t.Fatalf("ExecutePrefix c error: %v", err)
	}
	followCmd, _ := prefix.Parse("f")
	if _, err := e.ExecutePrefix(3, followCmd); err != nil {
		t.Fatalf("ExecutePrefix f error: %v", err)
	}
	if e.BufferLen() != 4 {
		t.Fatalf("BufferLen() = %d, want 4", e.BufferLen())
	}
	text, _ := e.LineText(4)
	if text != "a" {
		t.Errorf("LineText(4) = %q, want %q", text, "a")
	}
}

func TestSetColorThenQuery(t *testing.T) {
	e := NewFromLines([]string{"a"})
	sc := command.SetCommand{Kind: command.SetColor, ColorArea: command.AreaCurLine, ColorName: "RED"}
	if _, err := e.Execute(command.Command{Kind: command.Set, Set: sc}); err != nil {
		t.Fatalf("Set color error: %v", err)
	}
	result, err := e.Execute(command.Command{Kind: command.Query, QueryWhat: "COLOR CURLINE"})
	if err != nil {
		t.Fatalf("Query color error: %v", err)
	}
	if result.Message != "Color CURLINE=#ff0000" {
		t.Errorf("Query message = %q, want %q", result.Message, "Color CURLINE=#ff0000")
	}
}

func TestSetColorThenQueryWithDifferentAreaAbbreviation(t *testing.T) {
	e := NewFromLines([]string{"a"})
	sc := command.SetCommand{Kind: command.SetColor, ColorArea: command.AreaFile, ColorName: "BLUE"}
	if _, err := e.Execute(command.Command{Kind: command.Set, Set: sc}); err != nil {
		t.Fatalf("Set color error: %v", err)
	}
	result, err := e.Execute(command.Command{Kind: command.Query, QueryWhat: "COLOR FILE"})
	if err != nil {
		t.Fatalf("Query color error: %v", err)
	}
	if result.Message != "Color FILEAREA=#0000ff" {
		t.Errorf("Query message = %q, want %q", result.Message, "Color FILEAREA=#0000ff")
	}
}

func TestSetInvalidColorPropagatesError(t *testing.T) {
	e := NewFromLines([]string{"a"})
	sc := command.SetCommand{Kind: command.SetColor, ColorArea: command.AreaFile, ColorName: "NOTACOLOR"}
	if _, err := e.Execute(command.Command{Kind: command.Set, Set: sc}); err == nil {
		t.Fatal("Set color error = nil, want error")
	}
}

func TestStackNoOpWithoutDataStack(t *testing.T) {
	e := NewFromLines([]string{"a", "b"})
	e.currentLine = 1
	if _, err := e.Execute(command.Command{Kind: command.Stack, Count: 2}); err != nil {
		t.Fatalf("Stack error: %v", err)
	}
}

type fakeStack struct {
	pushed   [][]string
	enqueued [][]string
}

func (f *fakeStack) Push(lines []string)    { f.pushed = append(f.pushed, lines) }
func (f *fakeStack) Enqueue(lines []string) { f.enqueued = append(f.enqueued, lines) }

func TestStackPushesToDataStack(t *testing.T) {
	e := NewFromLines([]string{"a", "b", "c"})
	fs := &fakeStack{}
	e.SetDataStack(fs)
	e.currentLine = 1
	if _, err := e.Execute(command.Command{Kind: command.Stack, Count: 2}); err != nil {
		t.Fatalf("Stack error: %v", err)
	}
	if len(fs.pushed) != 1 || len(fs.pushed[0]) != 2 {
		t.Fatalf("pushed = %v, want one entry of 2 lines", fs.pushed)
	}
}
