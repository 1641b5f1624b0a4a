package strip

// Effect mode ids referenced by remote layouts. The full effect list belongs
// to the render engine; only the count is known here.
const (
	FXStatic       uint8 = 0
	FXBreath       uint8 = 2
	FXRainbow      uint8 = 8
	FXRainbowCycle uint8 = 9
	FXRain         uint8 = 43
	FXFireFlicker  uint8 = 45
	FXPalette      uint8 = 65
	FXColorTwinkle uint8 = 74
	FXMeteor       uint8 = 76
)

// Defaults used when the config does not override the engine counts.
const (
	DefaultModeCount    = 187
	DefaultPaletteCount = 71

	// MaxCount is the largest mode or palette count; ids are 8-bit.
	MaxCount = 256
)
