package modules

import (
	"fmt"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// LuaToGo converts a Lua value to a Go value. Tables with only positive
// integer keys become slices, other tables become maps.
func LuaToGo(v lua.LValue) interface{} {
	switch val := v.(type) {
	case lua.LString:
		return string(val)
	case lua.LNumber:
		return float64(val)
	case lua.LBool:
		return bool(val)
	case *lua.LTable:
		if n := val.MaxN(); n > 0 && n == countKeys(val) {
			arr := make([]interface{}, n)
			for i := 1; i <= n; i++ {
				arr[i-1] = LuaToGo(val.RawGetInt(i))
			}
			return arr
		}
		obj := make(map[string]interface{})
		val.ForEach(func(k, v lua.LValue) {
			obj[lua.LVAsString(k)] = LuaToGo(v)
		})
		return obj
	case *lua.LNilType:
		return nil
	default:
		return v.String()
	}
}

func countKeys(t *lua.LTable) int {
	n := 0
	t.ForEach(func(_, _ lua.LValue) { n++ })
	return n
}

// GoToLuaValue converts a Go value to a Lua value.
func GoToLuaValue(L *lua.LState, v interface{}) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case uint8:
		return lua.LNumber(val)
	case uint32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []interface{}:
		tbl := L.NewTable()
		for i, item := range val {
			tbl.RawSetInt(i+1, GoToLuaValue(L, item))
		}
		return tbl
	case map[string]interface{}:
		tbl := L.NewTable()
		for k, v := range val {
			tbl.RawSetString(k, GoToLuaValue(L, v))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprintf("%v", v))
	}
}

// CheckCode reads a remote code argument: a number, or a string in decimal
// or 0x-prefixed hex.
func CheckCode(L *lua.LState, n int) uint32 {
	switch v := L.Get(n).(type) {
	case lua.LNumber:
		if v < 0 || float64(v) > float64(^uint32(0)) {
			L.ArgError(n, "code out of range")
			return 0
		}
		return uint32(v)
	case lua.LString:
		code, err := strconv.ParseUint(string(v), 0, 32)
		if err != nil {
			L.ArgError(n, fmt.Sprintf("invalid code %q", string(v)))
			return 0
		}
		return uint32(code)
	default:
		L.TypeError(n, lua.LTNumber)
		return 0
	}
}

// checkUint8 reads an integer argument clamped to 0..255.
func checkUint8(L *lua.LState, n int) uint8 {
	v := L.CheckInt(n)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
