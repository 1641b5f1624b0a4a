// Package action implements the lighting actions that remote controls trigger.
//
// Every remote driver (IR families, RF, ESP-NOW buttons, JSON command files,
// Lua scripts) maps its input onto the same small set of operations here, so
// brightness stepping, night mode and color handling behave identically no
// matter which remote was used.
package action

import (
	"github.com/dokzlo13/ledremote/internal/strip"
	"github.com/dokzlo13/ledremote/internal/targeting"
)

// brightnessSteps follows a geometric progression from 5 to 255, so repeated
// presses feel even to the eye.
var brightnessSteps = [...]uint8{
	5, 7, 9, 12, 16, 20, 26, 34, 43, 56, 72, 93, 119, 154, 198, 255,
}

// colorCycle is the fixed order used by the "next color" action.
var colorCycle = [...]uint32{
	strip.ColorWhite,
	strip.ColorRed,
	strip.ColorReddish,
	strip.ColorOrange,
	strip.ColorYellowish,
	strip.ColorGreen,
	strip.ColorGreenish,
	strip.ColorTurquoise,
	strip.ColorCyan,
	strip.ColorBlue,
	strip.ColorDeepBlue,
	strip.ColorPurple,
	strip.ColorPink,
}

// Host applies presets. Preset storage and the JSON state API live outside
// the engine.
type Host interface {
	ApplyPreset(id uint8, mode strip.CallMode) bool
	ApplyPresetWithFallback(id uint8, mode strip.CallMode, effect, palette uint8)
}

// Options configures an Engine.
type Options struct {
	Scope              targeting.Scope
	ApplyToAllSelected bool
}

// Engine applies remote actions to a strip.
type Engine struct {
	strip    *strip.Strip
	host     Host
	notifier strip.Notifier
	session  *Session
	opts     Options
}

// New creates an engine. The session may be shared with other engines.
func New(s *strip.Strip, host Host, notifier strip.Notifier, session *Session, opts Options) *Engine {
	if session == nil {
		session = NewSession()
	}
	return &Engine{
		strip:    s,
		host:     host,
		notifier: notifier,
		session:  session,
		opts:     opts,
	}
}

// WithScope returns an engine sharing this engine's state but targeting a different scope.
func (e *Engine) WithScope(scope targeting.Scope) *Engine {
	c := *e
	c.opts.Scope = scope
	return &c
}

// Strip returns the strip the engine operates on.
func (e *Engine) Strip() *strip.Strip { return e.strip }

// Session returns the engine's session.
func (e *Engine) Session() *Session { return e.session }

func (e *Engine) segments() *targeting.Iterator {
	return targeting.New(e.strip, e.opts.Scope, e.opts.ApplyToAllSelected)
}

// forEach applies fn to every targeted segment, then mirrors the first one
// into the global state.
func (e *Engine) forEach(fn func(seg *strip.Segment)) {
	it := e.segments()
	for ; it.Valid(); it.Next() {
		fn(it.Segment())
	}
	e.strip.SetValuesFromSegment(it.First())
	e.strip.StateChanged = true
}

func (e *Engine) update() {
	e.Notify(strip.CallModeButton)
}

// Notify raises a state-updated notification with mode.
func (e *Engine) Notify(mode strip.CallMode) {
	if e.notifier != nil {
		e.notifier.StateUpdated(mode)
	}
}

// Toggle turns the strip off if it is on, or on if it is off.
func (e *Engine) Toggle() bool {
	if e.strip.Bri == 0 {
		return e.TurnOn()
	}
	return e.TurnOff()
}

// TurnOn restores the last brightness. Leaving night mode counts as a change.
func (e *Engine) TurnOn() bool {
	changed := false
	if e.session.NightModeActive() {
		e.strip.Bri = uint8(e.session.brightnessBeforeNightMode)
		e.session.brightnessBeforeNightMode = NightModeDeactivated
		changed = true
	}
	if e.strip.Bri == 0 {
		e.strip.Bri = e.strip.BriLast
		e.strip.RestartRuntime()
		e.strip.StateChanged = true
		changed = true
	}
	if changed {
		e.update()
	}
	return changed
}

// TurnOff turns the strip off, remembering the brightness for TurnOn.
func (e *Engine) TurnOff() bool {
	changed := false
	if e.session.NightModeActive() {
		e.strip.Bri = uint8(e.session.brightnessBeforeNightMode)
		e.session.brightnessBeforeNightMode = NightModeDeactivated
		changed = true
	}
	if e.strip.Bri != 0 {
		e.strip.BriLast = e.strip.Bri
		e.strip.Bri = 0
		e.strip.NightlightActive = false
		e.strip.StateChanged = true
		changed = true
	}
	if changed {
		e.update()
	}
	return changed
}

// NightModeActive reports whether night mode is active.
func (e *Engine) NightModeActive() bool {
	return e.session.NightModeActive()
}

// ActivateNightMode saves the brightness and dims to NightModeBrightness.
func (e *Engine) ActivateNightMode() bool {
	if e.session.NightModeActive() {
		return false
	}
	e.session.brightnessBeforeNightMode = int(e.strip.Bri)
	e.strip.Bri = NightModeBrightness
	e.update()
	return true
}

// ResetNightMode restores the brightness saved by ActivateNightMode.
func (e *Engine) ResetNightMode() bool {
	if !e.session.NightModeActive() {
		return false
	}
	e.strip.Bri = uint8(e.session.brightnessBeforeNightMode)
	e.session.brightnessBeforeNightMode = NightModeDeactivated
	e.update()
	return true
}

// IncBrightness moves to the next brightness step above the current value.
func (e *Engine) IncBrightness() bool {
	if e.session.NightModeActive() {
		return false
	}
	for _, step := range brightnessSteps {
		if step > e.strip.Bri {
			e.strip.Bri = step
			e.update()
			return true
		}
	}
	return false
}

// DecBrightness moves to the next brightness step below the current value.
// It never turns the strip off.
func (e *Engine) DecBrightness() bool {
	if e.session.NightModeActive() {
		return false
	}
	for i := len(brightnessSteps) - 1; i >= 0; i-- {
		if brightnessSteps[i] < e.strip.Bri {
			e.strip.Bri = brightnessSteps[i]
			e.update()
			return true
		}
	}
	return false
}

// IncBrightnessAlternate steps linearly, slower below 16%.
func (e *Engine) IncBrightnessAlternate() bool {
	if e.session.NightModeActive() {
		return false
	}
	return e.IncBrightnessBy(alternateDelta(e.strip.Bri))
}

// DecBrightnessAlternate steps linearly, slower below 16%.
func (e *Engine) DecBrightnessAlternate() bool {
	if e.session.NightModeActive() {
		return false
	}
	return e.DecBrightnessBy(alternateDelta(e.strip.Bri))
}

func alternateDelta(bri uint8) uint8 {
	if bri < 40 {
		return 2
	}
	return 5
}

// IncBrightnessBy adds delta, saturating at 255.
func (e *Engine) IncBrightnessBy(delta uint8) bool {
	if e.session.NightModeActive() {
		return false
	}
	if e.strip.Bri == 255 {
		return false
	}
	if e.strip.Bri >= 255-delta {
		e.strip.Bri = 255
	} else {
		e.strip.Bri += delta
	}
	e.update()
	return true
}

// DecBrightnessBy subtracts delta, saturating at 1. A strip that is off is
// turned on at brightness 1.
func (e *Engine) DecBrightnessBy(delta uint8) bool {
	if e.session.NightModeActive() {
		return false
	}
	switch {
	case e.strip.Bri == 1:
		return false
	case e.strip.Bri == 0:
		e.strip.RestartRuntime()
		e.strip.Bri = 1
	case e.strip.Bri <= delta:
		e.strip.Bri = 1
	default:
		e.strip.Bri -= delta
	}
	e.update()
	return true
}

// SetBrightness sets an absolute brightness. Zero turns the strip off; any
// other value leaves night mode without restoring the saved brightness.
func (e *Engine) SetBrightness(bri uint8) {
	if bri == 0 {
		e.TurnOff()
		return
	}
	e.session.brightnessBeforeNightMode = NightModeDeactivated
	if e.strip.Bri == 0 {
		e.strip.RestartRuntime()
	}
	e.strip.Bri = bri
	e.update()
}

// NightlightStart starts the timed nightlight fade. The fade itself is run
// by the render loop.
func (e *Engine) NightlightStart() {
	e.strip.NightlightActive = true
	e.strip.NightlightStart = e.session.now()
	e.update()
}

// Preset applies a stored preset.
func (e *Engine) Preset(id uint8) {
	e.ResetNightMode()
	if e.host != nil {
		e.host.ApplyPreset(id, strip.CallModeButtonPreset)
	}
}

// PresetWithFallback applies a stored preset, or the given effect and
// palette if the preset does not exist.
func (e *Engine) PresetWithFallback(id, effect, palette uint8) {
	e.ResetNightMode()
	if e.host != nil {
		e.host.ApplyPresetWithFallback(id, strip.CallModeButtonPreset, effect, palette)
	}
}

// relativeChange adds amount to v, clamped to [lo, hi].
func relativeChange(v uint8, amount int, lo, hi uint8) uint8 {
	if lo >= hi {
		return v
	}
	n := int(v) + amount
	if n > int(hi) {
		n = int(hi)
	}
	if n < int(lo) {
		n = int(lo)
	}
	return uint8(n)
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
