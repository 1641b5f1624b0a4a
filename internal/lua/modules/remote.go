package modules

import (
	"fmt"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

// Handler is a script function bound to a remote code.
type Handler struct {
	Code   uint32
	Fn     *lua.LFunction
	Repeat bool // run again while the button is held
}

// RemoteModule provides remote.on() and remote.off() to Lua.
//
//	local remote = require("remote")
//	remote.on(0xFF02FD, function(code) led.toggle() end)
//	remote.on("0xFF3AC5", function() led.bri_up() end, { rpt = true })
type RemoteModule struct {
	handlers map[uint32]Handler
}

// NewRemoteModule creates a new remote module
func NewRemoteModule() *RemoteModule {
	return &RemoteModule{handlers: make(map[uint32]Handler)}
}

// Loader is the module loader for Lua
func (m *RemoteModule) Loader(L *lua.LState) int {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"on":  m.on,
		"off": m.off,
	})
	L.Push(mod)
	return 1
}

// on(code, fn, opts) - bind fn to code, replacing any earlier binding
func (m *RemoteModule) on(L *lua.LState) int {
	code := CheckCode(L, 1)
	fn := L.CheckFunction(2)
	opts := L.OptTable(3, L.NewTable())

	m.handlers[code] = Handler{
		Code:   code,
		Fn:     fn,
		Repeat: lua.LVAsBool(opts.RawGetString("rpt")),
	}
	log.Debug().Str("code", formatCode(code)).Msg("Registered Lua remote handler")
	return 0
}

// off(code) - remove the binding for code
func (m *RemoteModule) off(L *lua.LState) int {
	delete(m.handlers, CheckCode(L, 1))
	return 0
}

// Handler returns the binding for code. Only call from the Lua worker.
func (m *RemoteModule) Handler(code uint32) (Handler, bool) {
	h, ok := m.handlers[code]
	return h, ok
}

// Len returns the number of bound codes.
func (m *RemoteModule) Len() int {
	return len(m.handlers)
}

func formatCode(code uint32) string {
	return fmt.Sprintf("0x%X", code)
}
