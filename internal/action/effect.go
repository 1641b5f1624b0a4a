package action

import "github.com/dokzlo13/ledremote/internal/strip"

// ChangeEffect sets the effect mode of every targeted segment.
func (e *Engine) ChangeEffect(fx uint8) {
	e.forEach(func(seg *strip.Segment) {
		seg.SetMode(fx)
	})
	e.update()
}

// NextEffect steps to the next effect, wrapping around.
func (e *Engine) NextEffect() {
	e.ChangeEffect(uint8((int(e.strip.EffectCurrent) + 1) % e.strip.ModeCount()))
}

// PrevEffect steps to the previous effect, wrapping around.
func (e *Engine) PrevEffect() {
	fx := int(e.strip.EffectCurrent) - 1
	if fx < 0 {
		fx = e.strip.ModeCount() - 1
	}
	e.ChangeEffect(uint8(fx))
}

// ChangePalette sets the palette of every targeted segment.
func (e *Engine) ChangePalette(pal uint8) {
	e.forEach(func(seg *strip.Segment) {
		seg.SetPalette(pal)
	})
	e.update()
}

// NextPalette steps to the next palette, wrapping around.
func (e *Engine) NextPalette() {
	e.ChangePalette(uint8((int(e.strip.EffectPalette) + 1) % e.strip.PaletteCount()))
}

// PrevPalette steps to the previous palette, wrapping around.
func (e *Engine) PrevPalette() {
	pal := int(e.strip.EffectPalette) - 1
	if pal < 0 {
		pal = e.strip.PaletteCount() - 1
	}
	e.ChangePalette(uint8(pal))
}

// ChangeEffectSpeed sets the effect speed.
func (e *Engine) ChangeEffectSpeed(speed uint8) {
	e.forEach(func(seg *strip.Segment) {
		seg.Speed = speed
	})
	e.update()
}

// ChangeEffectSpeedRelative adds delta to the speed, clamped to 0..255.
func (e *Engine) ChangeEffectSpeedRelative(delta int) {
	e.ChangeEffectSpeed(clamp8(int(e.strip.EffectSpeed) + delta))
}

// IncEffectSpeed steps the speed up by 12, or by 1 near the top.
func (e *Engine) IncEffectSpeed() bool {
	v, ok := stepUp(e.strip.EffectSpeed)
	if ok {
		e.ChangeEffectSpeed(v)
	}
	return ok
}

// DecEffectSpeed steps the speed down by 12, or by 1 near the bottom.
func (e *Engine) DecEffectSpeed() bool {
	v, ok := stepDown(e.strip.EffectSpeed)
	if ok {
		e.ChangeEffectSpeed(v)
	}
	return ok
}

// ChangeEffectIntensity sets the effect intensity.
func (e *Engine) ChangeEffectIntensity(intensity uint8) {
	e.forEach(func(seg *strip.Segment) {
		seg.Intensity = intensity
	})
	e.update()
}

// ChangeEffectIntensityRelative adds delta to the intensity, clamped to 0..255.
func (e *Engine) ChangeEffectIntensityRelative(delta int) {
	e.ChangeEffectIntensity(clamp8(int(e.strip.EffectIntensity) + delta))
}

// IncEffectIntensity steps the intensity up by 12, or by 1 near the top.
func (e *Engine) IncEffectIntensity() bool {
	v, ok := stepUp(e.strip.EffectIntensity)
	if ok {
		e.ChangeEffectIntensity(v)
	}
	return ok
}

// DecEffectIntensity steps the intensity down by 12, or by 1 near the bottom.
func (e *Engine) DecEffectIntensity() bool {
	v, ok := stepDown(e.strip.EffectIntensity)
	if ok {
		e.ChangeEffectIntensity(v)
	}
	return ok
}

func stepUp(v uint8) (uint8, bool) {
	switch {
	case v < 240:
		return v + 12, true
	case v < 255:
		return v + 1, true
	}
	return v, false
}

func stepDown(v uint8) (uint8, bool) {
	switch {
	case v > 15:
		return v - 12, true
	case v > 0:
		return v - 1, true
	}
	return v, false
}

// The OrHue and OrSaturation variants act on the primary color instead when
// the solid color effect is active.

func (e *Engine) IncEffectSpeedOrHue() {
	if e.strip.EffectCurrent != strip.FXStatic {
		e.ChangeEffectSpeedRelative(16)
		return
	}
	e.ChangeHueRelative(16)
}

func (e *Engine) DecEffectSpeedOrHue() {
	if e.strip.EffectCurrent != strip.FXStatic {
		e.ChangeEffectSpeedRelative(-16)
		return
	}
	e.ChangeHueRelative(-16)
}

func (e *Engine) IncEffectIntensityOrSaturation() {
	if e.strip.EffectCurrent != strip.FXStatic {
		e.ChangeEffectIntensityRelative(16)
		return
	}
	e.ChangeSaturationRelative(16)
}

func (e *Engine) DecEffectIntensityOrSaturation() {
	if e.strip.EffectCurrent != strip.FXStatic {
		e.ChangeEffectIntensityRelative(-16)
		return
	}
	e.ChangeSaturationRelative(-16)
}

// ChangeCustomRelative changes custom effect parameter 1, 2 or 3. Parameter 3
// is a 5-bit field. Unknown ids address parameter 1.
func (e *Engine) ChangeCustomRelative(param int, delta int) {
	first := e.segments().Segment()
	var v uint8
	switch param {
	case 2:
		v = clamp8(int(first.Custom2) + delta)
	case 3:
		n := int(first.Custom3) + delta
		if n > 31 {
			n = 31
		}
		v = clamp8(n)
	default:
		v = clamp8(int(first.Custom1) + delta)
	}
	e.forEach(func(seg *strip.Segment) {
		switch param {
		case 2:
			seg.Custom2 = v
		case 3:
			seg.Custom3 = v
		default:
			seg.Custom1 = v
		}
	})
	e.update()
}
