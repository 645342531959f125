package buffer

// RecordFormat is the on-disk record layout of a file's lines.
type RecordFormat int

const (
	// Variable is the default: lines may differ in length.
	Variable RecordFormat = iota
	// Fixed marks a fixed-length record file. Lines are stored and saved
	// at their own length; no padding to LRECL is applied.
	Fixed
)

func (r RecordFormat) String() string {
	if r == Fixed {
		return "F"
	}
	return "V"
}

// Line is a single addressable line of text.
type Line struct {
	text string
}

// NewLine wraps text as a Line.
func NewLine(text string) Line {
	return Line{text: text}
}

// Text returns the line's content.
func (l Line) Text() string {
	return l.text
}

// Len returns the line's length in runes.
func (l Line) Len() int {
	return len([]rune(l.text))
}

// defaultLRECL is the LRECL assumed for an empty or freshly created buffer.
const defaultLRECL = 80

// Buffer is an ordered sequence of Lines plus record-format metadata and a
// modified bit. Line numbers are 1-based; 0 addresses the virtual Top of
// File position.
type Buffer struct {
	lines    []Line
	recfm    RecordFormat
	lrecl    int
	modified bool
}

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// WithRecordFormat sets the buffer's record format.
func WithRecordFormat(rf RecordFormat) Option {
	return func(b *Buffer) { b.recfm = rf }
}

// WithLRECL sets the buffer's logical record length floor.
func WithLRECL(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.lrecl = n
		}
	}
}

// New returns an empty buffer with LRECL 80 and Variable record format.
func New(opts ...Option) *Buffer {
	b := &Buffer{recfm: Variable, lrecl: defaultLRECL}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromLines builds a buffer from plain text lines. LRECL is raised to the
// longest line's length if it exceeds the default of 80.
func FromLines(texts []string, opts ...Option) *Buffer {
	b := New(opts...)
	maxLen := defaultLRECL
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = NewLine(t)
		if n := lines[i].Len(); n > maxLen {
			maxLen = n
		}
	}
	b.lines = lines
	if b.lrecl < maxLen {
		b.lrecl = maxLen
	}
	return b
}

// Len returns the number of lines in the buffer.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// IsEmpty reports whether the buffer has no lines.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Get returns the line at the given 1-based line number.
func (b *Buffer) Get(lineNum int) (Line, bool) {
	if lineNum <= 0 || lineNum > len(b.lines) {
		return Line{}, false
	}
	return b.lines[lineNum-1], true
}

// LineText returns the text of the line at the given 1-based line number.
func (b *Buffer) LineText(lineNum int) (string, bool) {
	l, ok := b.Get(lineNum)
	if !ok {
		return "", false
	}
	return l.text, true
}

// SetText replaces the text of the line at the given 1-based line number.
// It is a no-op if lineNum is out of range.
func (b *Buffer) SetText(lineNum int, text string) {
	if lineNum <= 0 || lineNum > len(b.lines) {
		return
	}
	b.lines[lineNum-1] = NewLine(text)
	b.modified = true
}

// InsertAfter inserts a single line after the given 1-based line number.
// afterLine 0 inserts at the top; a value at or beyond Len appends.
func (b *Buffer) InsertAfter(afterLine int, text string) {
	b.InsertLinesAfter(afterLine, []string{text})
}

// InsertLinesAfter inserts multiple lines, in order, after the given
// 1-based line number.
func (b *Buffer) InsertLinesAfter(afterLine int, texts []string) {
	if len(texts) == 0 {
		return
	}
	idx := afterLine
	if idx < 0 {
		idx = 0
	}
	if idx > len(b.lines) {
		idx = len(b.lines)
	}
	inserted := make([]Line, len(texts))
	for i, t := range texts {
		inserted[i] = NewLine(t)
	}
	b.lines = append(b.lines[:idx], append(inserted, b.lines[idx:]...)...)
	b.modified = true
}

// Delete removes the line at the given 1-based line number and returns it.
func (b *Buffer) Delete(lineNum int) (Line, bool) {
	if lineNum <= 0 || lineNum > len(b.lines) {
		return Line{}, false
	}
	removed := b.lines[lineNum-1]
	b.lines = append(b.lines[:lineNum-1], b.lines[lineNum:]...)
	b.modified = true
	return removed, true
}

// DeleteRange removes lines [from, to] inclusive, 1-based, clamped to the
// buffer's length. An out-of-order or out-of-range request (from == 0,
// from > Len, or to < from) is a no-op returning nil.
func (b *Buffer) DeleteRange(from, to int) []Line {
	if from <= 0 || from > len(b.lines) || to < from {
		return nil
	}
	if to > len(b.lines) {
		to = len(b.lines)
	}
	removed := append([]Line(nil), b.lines[from-1:to]...)
	b.lines = append(b.lines[:from-1], b.lines[to:]...)
	b.modified = true
	return removed
}

// IsModified reports whether the buffer has been mutated since the last
// ClearModified.
func (b *Buffer) IsModified() bool {
	return b.modified
}

// ClearModified resets the modified bit, called after a successful load or
// save.
func (b *Buffer) ClearModified() {
	b.modified = false
}

// RecFm returns the buffer's record format.
func (b *Buffer) RecFm() RecordFormat {
	return b.recfm
}

// LRECL returns the buffer's logical record length.
func (b *Buffer) LRECL() int {
	return b.lrecl
}

// SetLRECL sets the buffer's logical record length directly; a
// non-positive n is ignored.
func (b *Buffer) SetLRECL(n int) {
	if n > 0 {
		b.lrecl = n
	}
}

// Lines returns the buffer's plain text, one entry per line, for callers
// that need a snapshot (SORT, UNDO, save).
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.text
	}
	return out
}

// Clone returns a detached copy of the buffer's current lines, suitable
// for an undo snapshot.
func (b *Buffer) Clone() *Buffer {
	clone := &Buffer{
		recfm:    b.recfm,
		lrecl:    b.lrecl,
		modified: b.modified,
		lines:    append([]Line(nil), b.lines...),
	}
	return clone
}
