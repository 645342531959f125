package editor

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/navicore/xedit/internal/xedit/buffer"
	"github.com/navicore/xedit/internal/xedit/command"
	xerrors "github.com/navicore/xedit/internal/xedit/errors"
	"github.com/navicore/xedit/internal/xedit/history"
	"github.com/navicore/xedit/internal/xedit/prefix"
)

// DataStack is the host's external data-stack facility that STACK and
// QUEUE push/enqueue lines onto. A nil DataStack makes those commands a
// silent no-op.
type DataStack interface {
	Push(lines []string)
	Enqueue(lines []string)
}

// MacroRunner lets a macro bridge register itself with an Editor without
// the editor package importing the macro package back.
type MacroRunner interface {
	RunMacro(nameAndArgs string) (command.Result, error)
	RunProfile()
}

// Editor owns one open file: its Buffer, cursor, persistent settings, and
// transient operational state. It has no internal locking and is not safe
// for concurrent use from multiple goroutines.
type Editor struct {
	buf         *buffer.Buffer
	currentLine int
	currentCol  int

	filename string
	filetype string
	filemode string
	filepath string
	hasPath  bool
	readonly bool

	trunc       int
	zoneLeft    int
	zoneRight   int
	showNumber  bool
	showPrefix  bool
	showScale   bool
	caseRespect bool
	hex         bool
	stay        bool
	wrap        bool
	curline     command.CurLinePosition
	verifyStart int
	verifyEnd   int
	showShadow  bool

	reservedLines  map[int]string
	colorOverrides map[string]string
	pfKeys         map[int]string
	macroPath      []string

	altCount       int
	message        string
	hasMessage     bool
	allFilter      []bool
	hasAllFilter   bool
	pendingBlock   *prefix.PendingBlock
	pendingOp      *prefix.PendingOperation
	undo           *history.Stack
	cursorRequest  *command.CursorTarget
	commandHistory []string
	pageSize       int
	stack          DataStack
	macroRunner    MacroRunner
}

// New returns an empty Editor with XEDIT's default settings.
func New() *Editor {
	return &Editor{
		buf:            buffer.New(),
		currentCol:     1,
		filemode:       "A1",
		trunc:          72,
		zoneLeft:       1,
		zoneRight:      72,
		showNumber:     true,
		showPrefix:     true,
		stay:           true,
		curline:        command.CurLinePosition{Middle: true},
		verifyStart:    1,
		verifyEnd:      80,
		reservedLines:  make(map[int]string),
		colorOverrides: make(map[string]string),
		pfKeys:         make(map[int]string),
		undo:           history.New(),
		pageSize:       20,
	}
}

// NewFromLines returns an Editor preloaded with lines and default settings,
// as the ring uses for a freshly added, not-yet-saved file.
func NewFromLines(lines []string) *Editor {
	e := New()
	e.buf = buffer.FromLines(lines)
	if len(lines) > 0 {
		e.currentLine = 1
	}
	return e
}

// -- Accessors --

func (e *Editor) Buffer() *buffer.Buffer                  { return e.buf }
func (e *Editor) CurrentLine() int                        { return e.currentLine }
func (e *Editor) CurrentCol() int                         { return e.currentCol }
func (e *Editor) Filename() string                        { return e.filename }
func (e *Editor) Filetype() string                        { return e.filetype }
func (e *Editor) Filemode() string                        { return e.filemode }
func (e *Editor) Trunc() int                               { return e.trunc }
func (e *Editor) AltCount() int                            { return e.altCount }
func (e *Editor) ShowNumber() bool                         { return e.showNumber }
func (e *Editor) ShowPrefix() bool                         { return e.showPrefix }
func (e *Editor) ShowScale() bool                          { return e.showScale }
func (e *Editor) CurlinePosition() command.CurLinePosition { return e.curline }
func (e *Editor) CaseRespect() bool                        { return e.caseRespect }
func (e *Editor) Wrap() bool                               { return e.wrap }
func (e *Editor) Hex() bool                                { return e.hex }
func (e *Editor) Stay() bool                               { return e.stay }
func (e *Editor) ShowShadow() bool                         { return e.showShadow }
func (e *Editor) VerifyStart() int                         { return e.verifyStart }
func (e *Editor) VerifyEnd() int                           { return e.verifyEnd }
func (e *Editor) IsModified() bool                         { return e.buf.IsModified() }
func (e *Editor) HasPendingBlock() bool                    { return e.pendingBlock != nil }
func (e *Editor) IsReadonly() bool                         { return e.readonly }

// Message returns the current status message and whether one is set.
func (e *Editor) Message() (string, bool) { return e.message, e.hasMessage }

func (e *Editor) setMessage(msg string) {
	e.message = msg
	e.hasMessage = true
}

// SetMessage lets a host-side collaborator (the macro bridge's PROFILE
// loader, a REPL driver) post a status message the same way a command
// result would.
func (e *Editor) SetMessage(msg string) { e.setMessage(msg) }

// PfKey returns the command text bound to PF key n, valid only for 1..24.
func (e *Editor) PfKey(n int) (string, bool) {
	if n < 1 || n > 24 {
		return "", false
	}
	v, ok := e.pfKeys[n]
	return v, ok
}

// ReservedLine returns the text the host must render at the given row.
func (e *Editor) ReservedLine(row int) (string, bool) {
	v, ok := e.reservedLines[row]
	return v, ok
}

// ColorOverride returns the color hex bound to a named screen area.
func (e *Editor) ColorOverride(name string) (string, bool) {
	v, ok := e.colorOverrides[strings.ToUpper(name)]
	return v, ok
}

// IsLineVisible reports whether line n passes the ALL filter, or true if
// no filter is active.
func (e *Editor) IsLineVisible(n int) bool {
	if !e.hasAllFilter {
		return true
	}
	if n < 1 || n > len(e.allFilter) {
		return true
	}
	return e.allFilter[n-1]
}

// ShadowCountAfter returns how many consecutive hidden lines immediately
// follow line n under the ALL filter.
func (e *Editor) ShadowCountAfter(n int) int {
	if !e.hasAllFilter {
		return 0
	}
	count := 0
	for i := n + 1; i <= len(e.allFilter); i++ {
		if e.allFilter[i-1] {
			break
		}
		count++
	}
	return count
}

func (e *Editor) BufferLen() int                    { return e.buf.Len() }
func (e *Editor) LineText(n int) (string, bool)     { return e.buf.LineText(n) }
func (e *Editor) CurrentLineText() string {
	if e.currentLine == 0 {
		return ""
	}
	text, _ := e.buf.LineText(e.currentLine)
	return text
}
func (e *Editor) AtTOF() bool { return e.currentLine == 0 }
func (e *Editor) AtEOF() bool { return e.currentLine >= e.buf.Len() }

func (e *Editor) lineText(n int) (string, bool) { return e.buf.LineText(n) }

// -- Host wiring --

func (e *Editor) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	e.pageSize = n
}

func (e *Editor) SetMacroPath(dirs []string) { e.macroPath = dirs }
func (e *Editor) MacroPath() []string        { return e.macroPath }

func (e *Editor) SetDataStack(s DataStack) { e.stack = s }

func (e *Editor) SetMacroRunner(r MacroRunner) { e.macroRunner = r }

func (e *Editor) SetReadonly(ro bool) { e.readonly = ro }

// SetFilemode validates and sets the CMS-style filemode: one letter A-Z
// (or '*') plus a digit 0-6. Digits 0-1 are read/write, 2-6 read-only.
func (e *Editor) SetFilemode(mode string) error {
	if len(mode) != 2 {
		return xerrors.Newf(xerrors.InvalidCommand, "Invalid filemode: %s", mode)
	}
	letter, digit := mode[0], mode[1]
	validLetter := (letter >= 'A' && letter <= 'Z') || letter == '*'
	validDigit := digit >= '0' && digit <= '6'
	if !validLetter || !validDigit {
		return xerrors.Newf(xerrors.InvalidCommand, "Invalid filemode: %s", mode)
	}
	e.filemode = mode
	e.readonly = digit >= '2'
	return nil
}

func (e *Editor) PushHistory(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	e.commandHistory = append(e.commandHistory, text)
}

func (e *Editor) CommandHistory() []string { return e.commandHistory }

// TakeCursorRequest returns and clears the one-shot cursor-focus hint set
// by the CURSOR command.
func (e *Editor) TakeCursorRequest() (command.CursorTarget, bool) {
	if e.cursorRequest == nil {
		return command.CursorTarget{}, false
	}
	req := *e.cursorRequest
	e.cursorRequest = nil
	return req, true
}

// RunProfile runs the PROFILE macro via the registered MacroRunner, if
// any. A missing runner or a missing profile is silently ignored.
func (e *Editor) RunProfile() {
	if e.macroRunner != nil {
		e.macroRunner.RunProfile()
	}
}

// -- File operations --

// LoadFile reads path as newline-delimited UTF-8 text, replacing the
// buffer. Lines that fail to decode are skipped without error.
func (e *Editor) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return xerrors.FileNotFoundf(path)
	}
	lines := splitLines(string(data))
	valid := lines[:0]
	for _, l := range lines {
		if utf8.ValidString(l) {
			valid = append(valid, l)
		}
	}
	lines = valid
	e.buf = buffer.FromLines(lines)

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	e.filename = strings.ToUpper(stem)
	e.filetype = strings.ToUpper(strings.TrimPrefix(ext, "."))
	e.filepath = path
	e.hasPath = true

	maxWidth := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxWidth {
			maxWidth = n
		}
	}
	if maxWidth > e.trunc {
		e.trunc = maxWidth
		e.zoneRight = maxWidth
		e.verifyEnd = maxWidth
	}

	if e.buf.IsEmpty() {
		e.currentLine = 0
	} else {
		e.currentLine = 1
	}
	e.altCount = 0
	e.undo.Clear()
	e.hasAllFilter = false
	e.allFilter = nil
	return nil
}

// SaveFile writes the buffer to the bound path as newline-joined text
// plus a trailing newline, unless the buffer is empty.
func (e *Editor) SaveFile() error {
	if !e.hasPath {
		return xerrors.ErrNoFile()
	}
	if e.readonly {
		return xerrors.ErrReadOnly()
	}
	content := strings.Join(e.buf.Lines(), "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(e.filepath, []byte(content), 0o644); err != nil {
		return xerrors.Wrap(xerrors.Io, err)
	}
	e.buf.ClearModified()
	e.altCount = 0
	return nil
}

// splitLines splits text on newlines, tolerating CRLF, and drops the
// single trailing empty element a terminal newline produces.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (e *Editor) snapshot() {
	e.undo.Save(e.buf.Lines(), e.currentLine, e.altCount)
}
