package strip

// RGBW32 packs four channels into the 32-bit WRGB layout used for segment colors.
func RGBW32(r, g, b, w uint8) uint32 {
	return uint32(w)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// R returns the red channel of a packed color.
func R(c uint32) uint8 { return uint8(c >> 16) }

// G returns the green channel of a packed color.
func G(c uint32) uint8 { return uint8(c >> 8) }

// B returns the blue channel of a packed color.
func B(c uint32) uint8 { return uint8(c) }

// W returns the white channel of a packed color.
func W(c uint32) uint8 { return uint8(c >> 24) }

// Named colors used by remote layouts.
const (
	ColorRed          uint32 = 0xFF0000
	ColorReddish      uint32 = 0xFF7800
	ColorOrange       uint32 = 0xFFA000
	ColorYellowish    uint32 = 0xFFC800
	ColorYellow       uint32 = 0xFFFF00
	ColorGreen        uint32 = 0x00FF00
	ColorGreenish     uint32 = 0x00FF78
	ColorTurquoise    uint32 = 0x00FFA0
	ColorCyan         uint32 = 0x00FFDC
	ColorAqua         uint32 = 0x00C8FF
	ColorBlue         uint32 = 0x00A0FF
	ColorDeepBlue     uint32 = 0x0000FF
	ColorPurple       uint32 = 0xAA00FF
	ColorMagenta      uint32 = 0xFF00DC
	ColorPink         uint32 = 0xFF00A0
	ColorWhite        uint32 = 0xFFFFFFFF
	ColorWarmWhite2   uint32 = 0xFFFFAA69
	ColorWarmWhite    uint32 = 0xFFFFBF8E
	ColorNeutralWhite uint32 = 0xFFFFD4B4
	ColorColdWhite    uint32 = 0xFFFFE9D9
	ColorColdWhite2   uint32 = 0xFFFFFFFF
)
