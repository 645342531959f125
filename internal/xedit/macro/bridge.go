package macro

import (
	lua "github.com/yuin/gopher-lua"
)

// valueBridge does the small slice of Go/Lua value conversion XEDIT's
// fixed EXTRACT surface needs: setting string/int/bool fields on a table
// and reading a string back. The full reflection-based converter a
// general-purpose plugin host needs (arbitrary struct/slice/map
// marshaling) has no exerciser here — macros only ever exchange fixed
// stem fields and command-result return codes.
type valueBridge struct {
	L *lua.LState
}

func newValueBridge(L *lua.LState) *valueBridge {
	return &valueBridge{L: L}
}

func (b *valueBridge) setString(t *lua.LTable, key, val string) {
	t.RawSetString(key, lua.LString(val))
}

func (b *valueBridge) setInt(t *lua.LTable, key string, val int) {
	t.RawSetString(key, lua.LNumber(val))
}

func (b *valueBridge) setBool(t *lua.LTable, key string, val bool) {
	t.RawSetString(key, lua.LBool(val))
}

func (b *valueBridge) setOnOff(t *lua.LTable, key string, val bool) {
	if val {
		b.setString(t, key, "ON")
	} else {
		b.setString(t, key, "OFF")
	}
}

func (b *valueBridge) getString(v lua.LValue) (string, bool) {
	s, ok := v.(lua.LString)
	if !ok {
		return "", false
	}
	return string(s), true
}
