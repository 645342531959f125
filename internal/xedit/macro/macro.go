package macro

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	lua "github.com/yuin/gopher-lua"

	"github.com/navicore/xedit/internal/xedit/command"
	xerrors "github.com/navicore/xedit/internal/xedit/errors"
	"github.com/navicore/xedit/internal/xedit/editor"
)

// Bridge runs Lua macros against one bound Editor. It implements
// editor.MacroRunner, so the Editor invokes it through that interface
// without this package's dependency on editor becoming a cycle.
type Bridge struct {
	ed *editor.Editor

	mu         sync.Mutex
	searchPath []string
	resolved   map[string]string

	watcher *fsnotify.Watcher
}

// NewBridge returns a Bridge that resolves bare macro names against the
// given ordered list of directories, each tried in turn for "NAME.lua"
// (case-insensitive). A best-effort fsnotify watcher on those
// directories invalidates the resolution cache when files are added,
// renamed, or removed, so a macro edited mid-session is picked up
// without restarting the editor.
func NewBridge(ed *editor.Editor, searchPath []string) *Bridge {
	b := &Bridge{
		ed:         ed,
		searchPath: searchPath,
		resolved:   make(map[string]string),
	}
	if w, err := fsnotify.NewWatcher(); err == nil {
		b.watcher = w
		for _, dir := range searchPath {
			_ = w.Add(dir)
		}
		go b.watchLoop()
	}
	return b
}

// Close releases the fsnotify watcher, if one was started.
func (b *Bridge) Close() error {
	if b.watcher == nil {
		return nil
	}
	return b.watcher.Close()
}

func (b *Bridge) watchLoop() {
	for {
		select {
		case _, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			b.mu.Lock()
			b.resolved = make(map[string]string)
			b.mu.Unlock()
		case _, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// resolve finds the file backing macro name, caching the result until
// the next fsnotify invalidation.
func (b *Bridge) resolve(name string) (string, error) {
	b.mu.Lock()
	if path, ok := b.resolved[strings.ToUpper(name)]; ok {
		b.mu.Unlock()
		return path, nil
	}
	b.mu.Unlock()

	want := strings.ToUpper(name) + ".LUA"
	for _, dir := range b.searchPath {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.ToUpper(entry.Name()) == want {
				path := filepath.Join(dir, entry.Name())
				b.mu.Lock()
				b.resolved[strings.ToUpper(name)] = path
				b.mu.Unlock()
				return path, nil
			}
		}
	}
	return "", xerrors.FileNotFoundf(name)
}

// RunMacro parses "NAME args..." and runs NAME's Lua source with args
// passed through as the macro's single string argument.
func (b *Bridge) RunMacro(nameAndArgs string) (command.Result, error) {
	name, args := splitFirstWord(nameAndArgs)
	if name == "" {
		return command.Result{}, xerrors.New(xerrors.InvalidCommand, "MACRO requires a name")
	}
	path, err := b.resolve(name)
	if err != nil {
		return command.Result{}, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return command.Result{}, xerrors.Wrap(xerrors.Io, err)
	}
	return b.run(string(source), args)
}

// RunProfile runs the PROFILE macro if one is found on the search path.
// A missing PROFILE is silently ignored; a PROFILE that errors has its
// error text posted as the editor's message rather than aborting, since
// RunProfile (the editor.MacroRunner method) returns nothing.
func (b *Bridge) RunProfile() {
	path, err := b.resolve("PROFILE")
	if err != nil {
		return
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if _, err := b.run(string(source), ""); err != nil {
		b.ed.SetMessage(err.Error())
	}
}

func splitFirstWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx:])
}

// run executes source as a Lua macro against the bound Editor, with the
// "xedit" global table pre-populated per XEDIT's EXTRACT convention and
// an xedit.command(text) function standing in for ADDRESS XEDIT.
func (b *Bridge) run(source, args string) (command.Result, error) {
	L := lua.NewState()
	defer L.Close()

	vb := newValueBridge(L)
	xeditTable := L.NewTable()
	b.populateExtract(vb, xeditTable)
	xeditTable.RawSetString("args", lua.LString(args))
	xeditTable.RawSetString("command", L.NewFunction(b.luaCommand(vb)))
	L.SetGlobal("xedit", xeditTable)

	if err := L.DoString(source); err != nil {
		return command.Result{}, xerrors.New(xerrors.InvalidCommand, fmt.Sprintf("macro error: %v", err))
	}

	if msg, ok := b.ed.Message(); ok {
		return command.WithMessage(msg), nil
	}
	return command.Ok(), nil
}

// luaCommand returns the Lua-callable backing xedit.command(text): it
// strips a leading "COMMAND " (any case), answers an EXTRACT with 0 since
// the xedit table is already populated, and otherwise parses text as an
// XEDIT command line, executes it, and returns a numeric return code in
// the IBM XEDIT tradition (0 success).
func (b *Bridge) luaCommand(vb *valueBridge) lua.LGFunction {
	return func(L *lua.LState) int {
		text, ok := vb.getString(L.Get(1))
		if !ok {
			L.Push(lua.LNumber(returnCodeFor(xerrors.New(xerrors.InvalidCommand, "command() requires a string"))))
			return 1
		}
		text = strings.TrimSpace(text)
		const prefix = "COMMAND "
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = strings.TrimSpace(text[len(prefix):])
		}
		if upper := strings.ToUpper(text); upper == "EXTRACT" || strings.HasPrefix(upper, "EXTRACT ") {
			L.Push(lua.LNumber(0))
			return 1
		}
		cmd, err := command.Parse(text)
		if err != nil {
			L.Push(lua.LNumber(3))
			return 1
		}
		_, err = b.ed.Execute(cmd)
		L.Push(lua.LNumber(returnCodeFor(err)))
		return 1
	}
}

// returnCodeFor maps an Editor execution error to the return code a
// REXX-style command handler reports: 0 success, 2 target not found, 5
// file/IO failure, 1 any other rejection. Parse-stage failures are
// mapped to 3 (unknown/malformed command) by the caller before
// execution is ever attempted, so this function never needs to inspect
// message text to tell the two apart.
func returnCodeFor(err error) int {
	if err == nil {
		return 0
	}
	xe, ok := xerrors.As(err)
	if !ok {
		return 1
	}
	switch xe.Kind {
	case xerrors.TargetNotFound:
		return 2
	case xerrors.FileNotFound, xerrors.Io:
		return 5
	default:
		return 1
	}
}

func (b *Bridge) populateExtract(vb *valueBridge, t *lua.LTable) {
	ed := b.ed
	vb.setInt(t, "curline", ed.CurrentLine())
	vb.setString(t, "curlinetext", ed.CurrentLineText())
	vb.setInt(t, "size", ed.BufferLen())
	vb.setInt(t, "line", ed.CurrentLine())
	vb.setInt(t, "column", ed.CurrentCol())
	vb.setInt(t, "trunc", ed.Trunc())
	vb.setInt(t, "alt", ed.AltCount())
	vb.setInt(t, "lrecl", ed.Buffer().LRECL())
	vb.setString(t, "recfm", ed.Buffer().RecFm().String())
	vb.setString(t, "fname", ed.Filename())
	vb.setString(t, "ftype", ed.Filetype())
	vb.setString(t, "fmode", ed.Filemode())
	vb.setOnOff(t, "tof", ed.AtTOF())
	vb.setOnOff(t, "eof", ed.AtEOF())
	vb.setOnOff(t, "modified", ed.IsModified())
	vb.setOnOff(t, "number", ed.ShowNumber())
	vb.setOnOff(t, "prefix", ed.ShowPrefix())
	vb.setOnOff(t, "scale", ed.ShowScale())
	vb.setOnOff(t, "wrap", ed.Wrap())
	vb.setOnOff(t, "hex", ed.Hex())
	vb.setOnOff(t, "stay", ed.Stay())
	vb.setOnOff(t, "shadow", ed.ShowShadow())
	if ed.CaseRespect() {
		vb.setString(t, "case", "RESPECT")
	} else {
		vb.setString(t, "case", "IGNORE")
	}
	vb.setString(t, "verify", fmt.Sprintf("%d %d", ed.VerifyStart(), ed.VerifyEnd()))
	if msg, ok := ed.Message(); ok {
		vb.setString(t, "lastmsg", msg)
	} else {
		vb.setString(t, "lastmsg", "")
	}
}
