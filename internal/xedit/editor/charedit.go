package editor

// OvertypeChar replaces the rune at 1-based column col on lineNum with ch,
// extending the line with spaces if col falls past its current end. It
// does not touch the undo snapshot or alt_count: character-level editing
// is a continuous, per-keystroke operation distinct from line commands.
func (e *Editor) OvertypeChar(lineNum, col int, ch rune) {
	text, ok := e.buf.LineText(lineNum)
	if !ok {
		return
	}
	runes := []rune(text)
	idx := col - 1
	if idx < 0 {
		return
	}
	for len(runes) <= idx {
		runes = append(runes, ' ')
	}
	runes[idx] = ch
	e.buf.SetText(lineNum, string(runes))
}

// InsertChar inserts ch before 1-based column col on lineNum, padding with
// spaces if col falls past the line's current end.
func (e *Editor) InsertChar(lineNum, col int, ch rune) {
	text, ok := e.buf.LineText(lineNum)
	if !ok {
		return
	}
	runes := []rune(text)
	idx := col - 1
	if idx < 0 {
		return
	}
	for len(runes) < idx {
		runes = append(runes, ' ')
	}
	if idx >= len(runes) {
		runes = append(runes, ch)
	} else {
		runes = append(runes[:idx], append([]rune{ch}, runes[idx:]...)...)
	}
	e.buf.SetText(lineNum, string(runes))
}

// DeleteChar removes the rune at 1-based column col on lineNum, a no-op
// if col is past the line's end.
func (e *Editor) DeleteChar(lineNum, col int) {
	text, ok := e.buf.LineText(lineNum)
	if !ok {
		return
	}
	runes := []rune(text)
	idx := col - 1
	if idx < 0 || idx >= len(runes) {
		return
	}
	runes = append(runes[:idx], runes[idx+1:]...)
	e.buf.SetText(lineNum, string(runes))
}
