// Package editor implements the XEDIT editor core: one Editor owns a
// Buffer, a current-line cursor, persistent settings, and transient
// operational state (pending block/copy/move protocols, a single-level
// undo snapshot, an optional ALL-filter visibility vector). Editor.Execute
// and Editor.ExecutePrefix are the two entry points a host command loop
// or macro bridge drives.
package editor
