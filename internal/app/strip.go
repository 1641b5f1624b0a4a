package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dokzlo13/ledremote/internal/config"
	"github.com/dokzlo13/ledremote/internal/strip"
)

// defaultSegmentColor is used for segments configured without a color.
const defaultSegmentColor = 0xFFA000

// newStrip builds the strip model from config.
func newStrip(cfg config.StripConfig) (*strip.Strip, error) {
	opts := strip.Options{
		Brightness:   cfg.Brightness,
		MainSegment:  cfg.MainSegment,
		ModeCount:    cfg.ModeCount,
		PaletteCount: cfg.PaletteCount,
	}
	for i, sc := range cfg.Segments {
		color, err := parseColor(sc.Color)
		if err != nil {
			return nil, fmt.Errorf("strip.segments[%d]: %w", i, err)
		}
		opts.Segments = append(opts.Segments, strip.SegmentOptions{
			Capabilities: capabilities(sc),
			Active:       true,
			Selected:     sc.IsSelected(),
			Color:        color,
			Mode:         sc.Mode,
			Palette:      sc.Palette,
			Speed:        orDefault(sc.Speed, 128),
			Intensity:    orDefault(sc.Intensity, 128),
		})
	}
	return strip.New(opts), nil
}

// capabilities maps the segment flags to capability bits. A segment with no
// flags is plain RGB.
func capabilities(sc config.SegmentConfig) uint8 {
	var caps uint8
	if sc.RGB {
		caps |= strip.CapRGB
	}
	if sc.White || sc.CCT || sc.AutoWhite {
		caps |= strip.CapWhite
	}
	if sc.CCT {
		caps |= strip.CapCCT
	}
	if sc.AutoWhite {
		caps |= strip.CapAutoWhite
	}
	if caps == 0 {
		caps = strip.CapRGB
	}
	return caps
}

// parseColor parses RRGGBB or WWRRGGBB, with an optional leading '#'.
func parseColor(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return defaultSegmentColor, nil
	}
	if len(s) != 6 && len(s) != 8 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}

// orDefault treats zero as unset.
func orDefault(v, def uint8) uint8 {
	if v == 0 {
		return def
	}
	return v
}
