// Package prefix parses the short tokens typed into XEDIT's prefix area
// (the line-number column) and models the two stateful protocols built on
// top of them: a two-marker block operation (dd, cc, mm, "") and a
// pending copy/move awaiting an f or p destination marker.
package prefix
