// Package target implements XEDIT's line-addressing sublanguage: absolute
// and relative line numbers, forward/backward string search, the
// end-of-buffer star, and Boolean AND/OR combinations of string targets.
//
// Parse produces a Target value from text; Resolve turns a Target into an
// absolute line number against a given buffer length and current line,
// consulting a caller-supplied line-text lookup for string targets.
package target
