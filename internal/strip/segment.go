package strip

// Light capability bits reported by a segment.
const (
	CapRGB       uint8 = 1 << 0 // RGB capable
	CapWhite     uint8 = 1 << 1 // has a white or CCT channel
	CapCCT       uint8 = 1 << 2 // CCT capable
	CapAutoWhite uint8 = 1 << 3 // white channel is auto-calculated (no UI slider)
)

// CCT is stored as 0..255; larger inputs are Kelvin values in this range.
const (
	cctKelvinMin = 1900
	cctKelvinMax = 10091
)

// Segment is an independently addressable sub-range of the strip.
type Segment struct {
	ID           int
	Colors       [3]uint32
	CCT          uint8
	Mode         uint8
	Palette      uint8
	Speed        uint8
	Intensity    uint8
	Custom1      uint8
	Custom2      uint8
	Custom3      uint8 // 5-bit field
	Active       bool
	Selected     bool
	Capabilities uint8

	strip *Strip
}

// IsRGB reports whether the segment accepts RGB colors.
func (s *Segment) IsRGB() bool { return s.Capabilities&CapRGB != 0 }

// HasWhite reports whether the segment has a white or CCT channel.
func (s *Segment) HasWhite() bool { return s.Capabilities&CapWhite != 0 }

// IsCCT reports whether the segment supports color temperature.
func (s *Segment) IsCCT() bool { return s.Capabilities&CapCCT != 0 }

// AutoWhite reports whether the white channel is calculated from RGB.
func (s *Segment) AutoWhite() bool { return s.Capabilities&CapAutoWhite != 0 }

// SetColor sets one of the three color slots. Out of range slots are ignored.
func (s *Segment) SetColor(slot int, c uint32) {
	if slot < 0 || slot >= len(s.Colors) {
		return
	}
	s.Colors[slot] = c
}

// SetCCT sets the color temperature. Values above 255 are Kelvin.
func (s *Segment) SetCCT(cct int) {
	if cct > 255 {
		if cct < cctKelvinMin {
			cct = cctKelvinMin
		}
		if cct > cctKelvinMax {
			cct = cctKelvinMax
		}
		cct = (cct - cctKelvinMin) * 255 / (cctKelvinMax - cctKelvinMin)
	}
	if cct < 0 {
		cct = 0
	}
	s.CCT = uint8(cct)
}

// SetMode sets the effect mode, falling back to static for unknown ids.
func (s *Segment) SetMode(fx uint8) {
	if s.strip != nil && int(fx) >= s.strip.ModeCount() {
		fx = FXStatic
	}
	s.Mode = fx
}

// SetPalette sets the palette, falling back to the default palette for unknown ids.
func (s *Segment) SetPalette(pal uint8) {
	if s.strip != nil && int(pal) >= s.strip.PaletteCount() {
		pal = 0
	}
	s.Palette = pal
}
