// Package command parses XEDIT command-line text into a tagged Command
// value, using an abbreviation table that mirrors IBM XEDIT's own
// minimum-prefix-length conventions (exact match first, then the first
// prefix match in table order, with a handful of explicit disambiguation
// overrides).
package command
