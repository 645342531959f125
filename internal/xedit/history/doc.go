// Package history implements the single-level undo snapshot an Editor
// takes before any mutating command: a detached copy of line texts plus
// the scalar cursor position and alteration count. A new snapshot
// overwrites whatever was stored before; there is no undo stack.
package history
