// Package macro embeds gopher-lua as XEDIT's macro scripting engine.
//
// A macro is a Lua script run against one Editor. Before execution the
// bridge populates a global "xedit" table with EXTRACT-style fields
// (xedit.curline, xedit.size, xedit.fname, ...) mirroring IBM XEDIT's
// stem-variable convention, and installs xedit.command(text), the Lua
// analogue of ADDRESS XEDIT: it parses text as an XEDIT command line and
// executes it against the bound Editor, returning a numeric return code.
//
//	bridge := macro.NewBridge(ed, []string{"./macros"})
//	ed.SetMacroRunner(bridge)
//	result, err := ed.Execute(command.Command{Kind: command.Macro, Text: "CENTER", HasText: true})
//
// Bridge implements editor.MacroRunner, so an Editor invokes it
// without importing this package back.
package macro
