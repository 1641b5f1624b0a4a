package action

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dokzlo13/ledremote/internal/strip"
)

// NoChange is passed for optional numeric parameters that should be left alone.
const NoChange = -1

// ChangeColor sets the primary color of every targeted segment.
func (e *Engine) ChangeColor(c uint32, cct int) {
	e.changeColorEffectAndPalette(c, cct, NoChange, NoChange)
}

// ChangeColorStatic sets the primary color and switches to the static effect.
func (e *Engine) ChangeColorStatic(c uint32, cct int) {
	e.changeColorEffectAndPalette(c, cct, int(strip.FXStatic), NoChange)
}

// changeColorEffectAndPalette writes only the channels a segment can show.
// Black after masking leaves the color untouched.
func (e *Engine) changeColorEffectAndPalette(c uint32, cct, effect, palette int) {
	e.forEach(func(seg *strip.Segment) {
		var mask uint32
		if seg.IsRGB() {
			mask |= 0x00FFFFFF
		}
		if seg.HasWhite() {
			mask |= 0xFF000000
		}
		switch {
		case seg.HasWhite() && seg.AutoWhite() && c&0xFF000000 != 0:
			// White requested on an auto-white segment: show it as full RGB white.
			seg.SetColor(0, c|0x00FFFFFF)
		case c&mask != 0:
			seg.SetColor(0, c&mask)
		}
		if seg.IsCCT() && cct >= 0 {
			seg.SetCCT(cct)
		}
		if effect >= 0 {
			seg.SetMode(uint8(effect))
		}
		if palette >= 0 {
			seg.SetPalette(uint8(palette))
		}
	})
	e.update()
}

// SetColorRandom picks a random fully saturated hue, keeping the white channel.
func (e *Engine) SetColorRandom() {
	hue := uint8(e.session.Intn(256))
	r, g, b := hsvToRGB(hue, 255, 255)
	e.ChangeColor(strip.RGBW32(r, g, b, strip.W(e.strip.ColPri)), NoChange)
}

// ChangeHueRelative rotates the hue of the primary color.
func (e *Engine) ChangeHueRelative(delta int) {
	e.changeHueSaturationRelative(delta, 0)
}

// ChangeSaturationRelative changes the saturation of the primary color.
func (e *Engine) ChangeSaturationRelative(delta int) {
	e.changeHueSaturationRelative(0, delta)
}

// changeHueSaturationRelative derives the new color from the first targeted
// segment and writes it to all of them. The white channel is kept.
func (e *Engine) changeHueSaturationRelative(hueDelta, satDelta int) {
	it := e.segments()
	old := it.Segment().Colors[0]

	h, s, v := rgbToHSV(strip.R(old), strip.G(old), strip.B(old))
	h = wrapHue(h, hueDelta)
	s = clamp8(int(s) + satDelta)
	r, g, b := hsvToRGB(h, s, v)
	c := strip.RGBW32(r, g, b, strip.W(old))

	e.forEach(func(seg *strip.Segment) {
		seg.Colors[0] = c
	})
	e.update()
}

// wrapHue rolls over at the byte boundary by 255 rather than 256.
func wrapHue(h uint8, delta int) uint8 {
	n := int(h) + delta
	if n > 255 {
		n -= 255
	}
	if n < 0 {
		n += 255
	}
	return clamp8(n)
}

func rgbToHSV(r, g, b uint8) (h, s, v uint8) {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	hf, sf, vf := c.Hsv()
	hue := int(math.Round(hf*256/360)) % 256
	return uint8(hue), uint8(math.Round(sf * 255)), uint8(math.Round(vf * 255))
}

func hsvToRGB(h, s, v uint8) (r, g, b uint8) {
	c := colorful.Hsv(float64(h)*360/256, float64(s)/255, float64(v)/255)
	r, g, b = c.Clamped().RGB255()
	return r, g, b
}

// ChangeWhite changes the white channel, never below 5.
func (e *Engine) ChangeWhite(amount int) {
	c := e.segments().Segment().Colors[0]
	w := relativeChange(strip.W(c), amount, 5, 255)
	e.ChangeColor(strip.RGBW32(strip.R(c), strip.G(c), strip.B(c), w), NoChange)
}

// WhiteOff clears the white channel, remembering it for WhiteOn.
func (e *Engine) WhiteOff() {
	c := e.segments().Segment().Colors[0]
	if w := strip.W(c); w != 0 {
		e.strip.WhiteLast = w
	}
	e.ChangeColor(strip.RGBW32(strip.R(c), strip.G(c), strip.B(c), 0), NoChange)
}

// WhiteOn restores the white channel cleared by WhiteOff.
func (e *Engine) WhiteOn() {
	c := e.segments().Segment().Colors[0]
	e.ChangeColor(strip.RGBW32(strip.R(c), strip.G(c), strip.B(c), e.strip.WhiteLast), NoChange)
}

// SetWhiteAndChangeCctRelative sets a static white and moves the color
// temperature of the main segment by delta.
func (e *Engine) SetWhiteAndChangeCctRelative(c uint32, delta int) {
	cct := clamp8(int(e.strip.MainSegment().CCT) + delta)
	e.ChangeColorStatic(c, int(cct))
}

// ChangeCct sets the color temperature, 0..255 or Kelvin.
func (e *Engine) ChangeCct(cct int) {
	e.forEach(func(seg *strip.Segment) {
		seg.SetCCT(cct)
	})
	e.update()
}

// SetToPlainStaticBrightWhite turns the strip on at full brightness with a
// static white and the default palette.
func (e *Engine) SetToPlainStaticBrightWhite() {
	if e.strip.Bri == 0 {
		e.strip.RestartRuntime()
	}
	e.strip.Bri = 255
	e.strip.StateChanged = true
	e.changeColorEffectAndPalette(strip.ColorWhite, NoChange, int(strip.FXStatic), 0)
}

// NextColorInCycle advances the color cursor and returns the new color.
func (e *Engine) NextColorInCycle() uint32 {
	e.session.colorCycleIndex++
	if e.session.colorCycleIndex >= len(colorCycle) {
		e.session.colorCycleIndex = 0
	}
	return colorCycle[e.session.colorCycleIndex]
}

// NextColorAndPalette applies the next cycle color and the next palette.
// The palette stops at the last one.
func (e *Engine) NextColorAndPalette() {
	c := e.NextColorInCycle()
	pal := relativeChange(e.strip.EffectPalette, 1, 0, uint8(e.strip.PaletteCount()-1))
	e.changeColorEffectAndPalette(c, NoChange, NoChange, int(pal))
}
