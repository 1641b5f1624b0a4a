package modules

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/ledremote/internal/strip"
)

// Actions are the engine operations scripts can call.
type Actions interface {
	Toggle() bool
	TurnOn() bool
	TurnOff() bool
	ActivateNightMode() bool
	IncBrightness() bool
	DecBrightness() bool
	SetBrightness(bri uint8)
	ChangeColor(c uint32, cct int)
	SetColorRandom()
	ChangeWhite(amount int)
	ChangeEffect(fx uint8)
	NextEffect()
	PrevEffect()
	ChangePalette(pal uint8)
	NextPalette()
	PrevPalette()
	IncEffectSpeed() bool
	DecEffectSpeed() bool
	IncEffectIntensity() bool
	DecEffectIntensity() bool
	NightlightStart()
	Preset(id uint8)
	PresetWithFallback(id, effect, palette uint8)
}

// Snapshotter reports the current strip state.
type Snapshotter interface {
	Snapshot() strip.State
}

// LedModule provides the led.* functions that drive the strip.
type LedModule struct {
	actions Actions
	state   Snapshotter
}

// NewLedModule creates a new led module
func NewLedModule(actions Actions, state Snapshotter) *LedModule {
	return &LedModule{actions: actions, state: state}
}

// Loader is the module loader for Lua
func (m *LedModule) Loader(L *lua.LState) int {
	if m.actions == nil || m.state == nil {
		L.RaiseError("led module is not available")
		return 0
	}
	a := m.actions
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"toggle":         boolFn(a.Toggle),
		"on":             boolFn(a.TurnOn),
		"off":            boolFn(a.TurnOff),
		"night":          boolFn(a.ActivateNightMode),
		"bri_up":         boolFn(a.IncBrightness),
		"bri_down":       boolFn(a.DecBrightness),
		"speed_up":       boolFn(a.IncEffectSpeed),
		"speed_down":     boolFn(a.DecEffectSpeed),
		"intensity_up":   boolFn(a.IncEffectIntensity),
		"intensity_down": boolFn(a.DecEffectIntensity),
		"random_color":   voidFn(a.SetColorRandom),
		"next_effect":    voidFn(a.NextEffect),
		"prev_effect":    voidFn(a.PrevEffect),
		"next_palette":   voidFn(a.NextPalette),
		"prev_palette":   voidFn(a.PrevPalette),
		"nightlight":     voidFn(a.NightlightStart),
		"brightness":     m.brightness,
		"color":          m.color,
		"hsv":            m.hsv,
		"white":          m.white,
		"effect":         m.effect,
		"palette":        m.palette,
		"preset":         m.preset,
		"state":          m.snapshot,
	})
	L.Push(mod)
	return 1
}

func boolFn(fn func() bool) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LBool(fn()))
		return 1
	}
}

func voidFn(fn func()) lua.LGFunction {
	return func(L *lua.LState) int {
		fn()
		return 0
	}
}

// brightness(bri)
func (m *LedModule) brightness(L *lua.LState) int {
	m.actions.SetBrightness(checkUint8(L, 1))
	return 0
}

// color(c, cct) - c is a number (0xWWRRGGBB) or a "#rrggbb" string
func (m *LedModule) color(L *lua.LState) int {
	var c uint32
	switch v := L.Get(1).(type) {
	case lua.LNumber:
		c = uint32(v)
	case lua.LString:
		parsed, err := colorful.Hex(string(v))
		if err != nil {
			L.ArgError(1, fmt.Sprintf("invalid color %q", string(v)))
			return 0
		}
		r, g, b := parsed.RGB255()
		c = strip.RGBW32(r, g, b, 0)
	default:
		L.TypeError(1, lua.LTNumber)
		return 0
	}
	m.actions.ChangeColor(c, L.OptInt(2, -1))
	return 0
}

// hsv(h, s, v) - h in degrees, s and v in 0..1
func (m *LedModule) hsv(L *lua.LState) int {
	c := colorful.Hsv(float64(L.CheckNumber(1)), float64(L.CheckNumber(2)), float64(L.OptNumber(3, 1))).Clamped()
	r, g, b := c.RGB255()
	m.actions.ChangeColor(strip.RGBW32(r, g, b, 0), -1)
	return 0
}

// white(delta) - relative white channel change
func (m *LedModule) white(L *lua.LState) int {
	m.actions.ChangeWhite(L.CheckInt(1))
	return 0
}

// effect(fx)
func (m *LedModule) effect(L *lua.LState) int {
	m.actions.ChangeEffect(checkUint8(L, 1))
	return 0
}

// palette(pal)
func (m *LedModule) palette(L *lua.LState) int {
	m.actions.ChangePalette(checkUint8(L, 1))
	return 0
}

// preset(id, fx, pal) - with fx the effect is applied when the preset is missing
func (m *LedModule) preset(L *lua.LState) int {
	id := checkUint8(L, 1)
	if L.GetTop() < 2 {
		m.actions.Preset(id)
		return 0
	}
	fx := checkUint8(L, 2)
	pal := uint8(L.OptInt(3, 0))
	m.actions.PresetWithFallback(id, fx, pal)
	return 0
}

// state() - returns on, bri, nl and the main segment's fx, pal, sx, ix, col
func (m *LedModule) snapshot(L *lua.LState) int {
	st := m.state.Snapshot()
	out := map[string]interface{}{
		"on":  st.On,
		"bri": st.Brightness,
		"nl":  st.Nightlight.On,
	}
	for _, seg := range st.Segments {
		if seg.ID != st.MainSeg {
			continue
		}
		out["fx"] = seg.Mode
		out["pal"] = seg.Palette
		out["sx"] = seg.Speed
		out["ix"] = seg.Intensity
		if len(seg.Colors) > 0 {
			c := seg.Colors[0]
			out["col"] = fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
		}
		break
	}
	L.Push(GoToLuaValue(L, out))
	return 1
}
