package decoder

import (
	"github.com/dokzlo13/ledremote/internal/action"
	"github.com/dokzlo13/ledremote/internal/strip"
)

// binding runs the action for one button and reports what holding the
// button should repeat.
type binding func(d *Decoder) RepeatAction

type table map[uint32]binding

func brightUp(d *Decoder) RepeatAction {
	if d.engine.IncBrightness() {
		return RepeatBrightUp
	}
	return RepeatNone
}

func brightDown(d *Decoder) RepeatAction {
	if d.engine.DecBrightness() {
		return RepeatBrightDown
	}
	return RepeatNone
}

func speedUp(d *Decoder) RepeatAction {
	d.engine.IncEffectSpeedOrHue()
	return RepeatSpeedUp
}

func speedDown(d *Decoder) RepeatAction {
	d.engine.DecEffectSpeedOrHue()
	return RepeatSpeedDown
}

func intensityUp(d *Decoder) RepeatAction {
	d.engine.IncEffectIntensityOrSaturation()
	return RepeatIntensityUp
}

func intensityDown(d *Decoder) RepeatAction {
	d.engine.DecEffectIntensityOrSaturation()
	return RepeatIntensityDown
}

func powerOn(d *Decoder) RepeatAction {
	d.engine.TurnOn()
	return RepeatNone
}

// powerOnHold is ON on the remotes where holding it starts the nightlight.
func powerOnHold(d *Decoder) RepeatAction {
	d.engine.TurnOn()
	return RepeatLongPressOn
}

func powerOff(d *Decoder) RepeatAction {
	d.engine.TurnOff()
	return RepeatNone
}

func toggle(d *Decoder) RepeatAction {
	d.engine.Toggle()
	return RepeatNone
}

func color(c uint32) binding {
	return func(d *Decoder) RepeatAction {
		d.engine.ChangeColor(c, action.NoChange)
		return RepeatNone
	}
}

func colorStatic(c uint32, cct int) binding {
	return func(d *Decoder) RepeatAction {
		d.engine.ChangeColorStatic(c, cct)
		return RepeatNone
	}
}

func brightness(bri uint8) binding {
	return func(d *Decoder) RepeatAction {
		d.engine.SetBrightness(bri)
		return RepeatNone
	}
}

func effect(fx uint8) binding {
	return func(d *Decoder) RepeatAction {
		d.engine.ChangeEffect(fx)
		return RepeatNone
	}
}

func simple(fn func(e *action.Engine)) binding {
	return func(d *Decoder) RepeatAction {
		fn(d.engine)
		return RepeatNone
	}
}

// presetFallback applies a preset with a fixed fallback palette. The host
// reports the preset change; the button press is reported on top of it.
func presetFallback(id, fx, pal uint8) binding {
	return func(d *Decoder) RepeatAction {
		d.engine.PresetWithFallback(id, fx, pal)
		d.engine.Notify(strip.CallModeButton)
		return RepeatNone
	}
}

// presetFallbackKeepPalette falls back to the palette currently in use.
func presetFallbackKeepPalette(id, fx uint8) binding {
	return func(d *Decoder) RepeatAction {
		d.engine.PresetWithFallback(id, fx, d.engine.Strip().EffectPalette)
		d.engine.Notify(strip.CallModeButton)
		return RepeatNone
	}
}

var ir24Table = table{
	IR24Brighter:  brightUp,
	IR24Darker:    brightDown,
	IR24Off:       powerOff,
	IR24On:        powerOnHold,
	IR24Red:       color(strip.ColorRed),
	IR24Reddish:   color(strip.ColorReddish),
	IR24Orange:    color(strip.ColorOrange),
	IR24Yellowish: color(strip.ColorYellowish),
	IR24Yellow:    color(strip.ColorYellow),
	IR24Green:     color(strip.ColorGreen),
	IR24Greenish:  color(strip.ColorGreenish),
	IR24Turquoise: color(strip.ColorTurquoise),
	IR24Cyan:      color(strip.ColorCyan),
	IR24Aqua:      color(strip.ColorAqua),
	IR24Blue:      color(strip.ColorBlue),
	IR24DeepBlue:  color(strip.ColorDeepBlue),
	IR24Purple:    color(strip.ColorPurple),
	IR24Magenta:   color(strip.ColorMagenta),
	IR24Pink:      color(strip.ColorPink),
	IR24White:     colorStatic(strip.ColorWhite, action.NoChange),
	IR24Flash:     presetFallbackKeepPalette(1, strip.FXColorTwinkle),
	IR24Strobe:    presetFallbackKeepPalette(2, strip.FXRainbowCycle),
	IR24Fade:      presetFallbackKeepPalette(3, strip.FXBreath),
	IR24Smooth:    presetFallbackKeepPalette(4, strip.FXRainbow),
}

var ir24OldTable = table{
	IR24OldBrighter:  brightUp,
	IR24OldDarker:    brightDown,
	IR24OldOff:       powerOff,
	IR24OldOn:        powerOn,
	IR24OldRed:       color(strip.ColorRed),
	IR24OldReddish:   color(strip.ColorReddish),
	IR24OldOrange:    color(strip.ColorOrange),
	IR24OldYellowish: color(strip.ColorYellowish),
	IR24OldYellow:    color(strip.ColorYellow),
	IR24OldGreen:     color(strip.ColorGreen),
	IR24OldGreenish:  color(strip.ColorGreenish),
	IR24OldTurquoise: color(strip.ColorTurquoise),
	IR24OldCyan:      color(strip.ColorCyan),
	IR24OldAqua:      color(strip.ColorAqua),
	IR24OldBlue:      color(strip.ColorBlue),
	IR24OldDeepBlue:  color(strip.ColorDeepBlue),
	IR24OldPurple:    color(strip.ColorPurple),
	IR24OldMagenta:   color(strip.ColorMagenta),
	IR24OldPink:      color(strip.ColorPink),
	IR24OldWhite:     colorStatic(strip.ColorWhite, action.NoChange),
	IR24OldFlash:     presetFallback(1, strip.FXColorTwinkle, 0),
	IR24OldStrobe:    presetFallback(2, strip.FXRainbowCycle, 0),
	IR24OldFade:      presetFallback(3, strip.FXBreath, 0),
	IR24OldSmooth:    presetFallback(4, strip.FXRainbow, 0),
}

var ir24CTTable = table{
	IR24CTBrighter:  brightUp,
	IR24CTDarker:    brightDown,
	IR24CTOff:       powerOff,
	IR24CTOn:        powerOnHold,
	IR24CTRed:       color(strip.ColorRed),
	IR24CTReddish:   color(strip.ColorReddish),
	IR24CTOrange:    color(strip.ColorOrange),
	IR24CTYellowish: color(strip.ColorYellowish),
	IR24CTYellow:    color(strip.ColorYellow),
	IR24CTGreen:     color(strip.ColorGreen),
	IR24CTGreenish:  color(strip.ColorGreenish),
	IR24CTTurquoise: color(strip.ColorTurquoise),
	IR24CTCyan:      color(strip.ColorCyan),
	IR24CTAqua:      color(strip.ColorAqua),
	IR24CTBlue:      color(strip.ColorBlue),
	IR24CTDeepBlue:  color(strip.ColorDeepBlue),
	IR24CTPurple:    color(strip.ColorPurple),
	IR24CTMagenta:   color(strip.ColorMagenta),
	IR24CTPink:      color(strip.ColorPink),
	IR24CTColdWhite: colorStatic(strip.ColorColdWhite2, 255),
	IR24CTWarmWhite: colorStatic(strip.ColorWarmWhite2, 0),
	IR24CTCTPlus: simple(func(e *action.Engine) {
		e.SetWhiteAndChangeCctRelative(strip.ColorColdWhite, 1)
	}),
	IR24CTCTMinus: simple(func(e *action.Engine) {
		e.SetWhiteAndChangeCctRelative(strip.ColorWarmWhite, -1)
	}),
	IR24CTMemory: colorStatic(strip.ColorNeutralWhite, 127),
}

var ir40Table = table{
	IR40BPlus:      brightUp,
	IR40BMinus:     brightDown,
	IR40Off:        powerOff,
	IR40On:         powerOnHold,
	IR40Red:        color(strip.ColorRed),
	IR40Reddish:    color(strip.ColorReddish),
	IR40Orange:     color(strip.ColorOrange),
	IR40Yellowish:  color(strip.ColorYellowish),
	IR40Yellow:     color(strip.ColorYellow),
	IR40Green:      color(strip.ColorGreen),
	IR40Greenish:   color(strip.ColorGreenish),
	IR40Turquoise:  color(strip.ColorTurquoise),
	IR40Cyan:       color(strip.ColorCyan),
	IR40Aqua:       color(strip.ColorAqua),
	IR40Blue:       color(strip.ColorBlue),
	IR40DeepBlue:   color(strip.ColorDeepBlue),
	IR40Purple:     color(strip.ColorPurple),
	IR40Magenta:    color(strip.ColorMagenta),
	IR40Pink:       color(strip.ColorPink),
	IR40WarmWhite2: colorStatic(strip.ColorWarmWhite2, 0),
	IR40WarmWhite:  colorStatic(strip.ColorWarmWhite, 63),
	IR40White:      colorStatic(strip.ColorNeutralWhite, 127),
	IR40ColdWhite:  colorStatic(strip.ColorColdWhite, 191),
	IR40ColdWhite2: colorStatic(strip.ColorColdWhite2, 255),
	IR40WPlus: func(d *Decoder) RepeatAction {
		d.engine.ChangeWhite(10)
		return RepeatWhiteUp
	},
	IR40WMinus: func(d *Decoder) RepeatAction {
		d.engine.ChangeWhite(-10)
		return RepeatWhiteDown
	},
	IR40WOff:  simple((*action.Engine).WhiteOff),
	IR40WOn:   simple((*action.Engine).WhiteOn),
	IR40W25:   brightness(63),
	IR40W50:   brightness(127),
	IR40W75:   brightness(191),
	IR40W100:  brightness(255),
	IR40Quick: speedUp,
	IR40Slow:  speedDown,
	IR40Jump7: intensityUp,
	IR40Auto:  intensityDown,
	IR40Jump3: presetFallback(1, strip.FXStatic, 0),
	IR40Fade3: presetFallback(2, strip.FXBreath, 0),
	IR40Fade7: presetFallback(3, strip.FXFireFlicker, 0),
	IR40Flash: presetFallback(4, strip.FXRainbow, 0),
}

var ir44Table = table{
	IR44BPlus:      brightUp,
	IR44BMinus:     brightDown,
	IR44Off:        powerOff,
	IR44On:         powerOnHold,
	IR44Red:        color(strip.ColorRed),
	IR44Reddish:    color(strip.ColorReddish),
	IR44Orange:     color(strip.ColorOrange),
	IR44Yellowish:  color(strip.ColorYellowish),
	IR44Yellow:     color(strip.ColorYellow),
	IR44Green:      color(strip.ColorGreen),
	IR44Greenish:   color(strip.ColorGreenish),
	IR44Turquoise:  color(strip.ColorTurquoise),
	IR44Cyan:       color(strip.ColorCyan),
	IR44Aqua:       color(strip.ColorAqua),
	IR44Blue:       color(strip.ColorBlue),
	IR44DeepBlue:   color(strip.ColorDeepBlue),
	IR44Purple:     color(strip.ColorPurple),
	IR44Magenta:    color(strip.ColorMagenta),
	IR44Pink:       color(strip.ColorPink),
	IR44White:      colorStatic(strip.ColorNeutralWhite, 127),
	IR44WarmWhite2: colorStatic(strip.ColorWarmWhite2, 0),
	IR44WarmWhite:  colorStatic(strip.ColorWarmWhite, 63),
	IR44ColdWhite:  colorStatic(strip.ColorColdWhite, 191),
	IR44ColdWhite2: colorStatic(strip.ColorColdWhite2, 255),
	IR44RedPlus:    simple((*action.Engine).NextEffect),
	IR44RedMinus:   simple((*action.Engine).PrevEffect),
	IR44GreenPlus:  simple((*action.Engine).NextPalette),
	IR44GreenMinus: simple((*action.Engine).PrevPalette),
	IR44BluePlus:   intensityUp,
	IR44BlueMinus:  intensityDown,
	IR44Quick:      speedUp,
	IR44Slow:       speedDown,
	IR44DIY1:       presetFallback(1, strip.FXStatic, 0),
	IR44DIY2:       presetFallback(2, strip.FXBreath, 0),
	IR44DIY3:       presetFallback(3, strip.FXFireFlicker, 0),
	IR44DIY4:       presetFallback(4, strip.FXRainbow, 0),
	IR44DIY5:       presetFallback(5, strip.FXMeteor, 0),
	IR44DIY6:       presetFallback(6, strip.FXRain, 0),
	IR44Auto:       effect(strip.FXStatic),
	IR44Flash:      effect(strip.FXPalette),
	IR44Jump3:      brightness(63),
	IR44Jump7:      brightness(127),
	IR44Fade3:      brightness(191),
	IR44Fade7:      brightness(255),
}

var ir21Table = table{
	IR21Brighter:  brightUp,
	IR21Darker:    brightDown,
	IR21Off:       powerOff,
	IR21On:        powerOn,
	IR21Red:       color(strip.ColorRed),
	IR21Reddish:   color(strip.ColorReddish),
	IR21Orange:    color(strip.ColorOrange),
	IR21Yellowish: color(strip.ColorYellowish),
	IR21Green:     color(strip.ColorGreen),
	IR21Greenish:  color(strip.ColorGreenish),
	IR21Turquoise: color(strip.ColorTurquoise),
	IR21Cyan:      color(strip.ColorCyan),
	IR21Blue:      color(strip.ColorBlue),
	IR21DeepBlue:  color(strip.ColorDeepBlue),
	IR21Purple:    color(strip.ColorPurple),
	IR21Pink:      color(strip.ColorPink),
	IR21White:     colorStatic(strip.ColorWhite, action.NoChange),
	IR21Flash:     presetFallback(1, strip.FXColorTwinkle, 0),
	IR21Strobe:    presetFallback(2, strip.FXRainbowCycle, 0),
	IR21Fade:      presetFallback(3, strip.FXBreath, 0),
	IR21Smooth:    presetFallback(4, strip.FXRainbow, 0),
}

var ir6Table = table{
	IR6Power:       toggle,
	IR6ChannelUp:   brightUp,
	IR6ChannelDown: brightDown,
	IR6VolumeUp:    simple((*action.Engine).NextEffect),
	IR6VolumeDown:  simple((*action.Engine).NextColorAndPalette),
	IR6Mute:        simple((*action.Engine).SetToPlainStaticBrightWhite),
}

var ir9Table = table{
	IR9Power:  toggle,
	IR9A:      presetFallbackKeepPalette(1, strip.FXColorTwinkle),
	IR9B:      presetFallbackKeepPalette(2, strip.FXRainbowCycle),
	IR9C:      presetFallbackKeepPalette(3, strip.FXBreath),
	IR9Up:     brightUp,
	IR9Down:   brightDown,
	IR9Left:   speedUp,
	IR9Right:  speedDown,
	IR9Select: simple((*action.Engine).NextEffect),
}
