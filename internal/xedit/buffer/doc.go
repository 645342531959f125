// Package buffer provides the line-oriented text buffer at the heart of the
// editor engine.
//
// Unlike a byte-rope buffer, an xedit Buffer is an ordered sequence of
// whole Lines addressed by 1-based line number; position 0 is the virtual
// Top of File marker. The buffer tracks a record format and logical
// record length (LRECL) alongside a modified bit that every successful
// mutation sets.
//
// Basic usage:
//
//	buf := buffer.FromLines([]string{"hello", "world"})
//	buf.InsertAfter(1, "middle")
//	buf.Delete(3)
//	text, ok := buf.LineText(1)
package buffer
