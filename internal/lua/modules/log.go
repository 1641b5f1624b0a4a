package modules

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

// LogModule exposes log.debug/info/warn/error to scripts. Each takes a
// message and an optional table of fields.
type LogModule struct{}

// NewLogModule creates a new log module
func NewLogModule() *LogModule {
	return &LogModule{}
}

// Loader is the module loader for Lua
func (m *LogModule) Loader(L *lua.LState) int {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"debug": m.at(zerolog.DebugLevel),
		"info":  m.at(zerolog.InfoLevel),
		"warn":  m.at(zerolog.WarnLevel),
		"error": m.at(zerolog.ErrorLevel),
	})
	L.Push(mod)
	return 1
}

func (m *LogModule) at(level zerolog.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		msg := L.CheckString(1)
		event := log.WithLevel(level).Str("source", "lua")
		if tbl, ok := L.Get(2).(*lua.LTable); ok {
			tbl.ForEach(func(k, v lua.LValue) {
				event = event.Interface(lua.LVAsString(k), LuaToGo(v))
			})
		}
		event.Msg(msg)
		return 0
	}
}
