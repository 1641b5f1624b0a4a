// Package strip models the LED strip state that remote actions operate on:
// its segments and the global values mirrored from the first targeted segment.
//
// The render loop and output drivers live outside this package. They report
// frame transmission through SetUpdating so that filesystem work can avoid
// overlapping a sendout.
package strip

import (
	"sync/atomic"
	"time"
)

// SegmentOptions describes a segment at construction time.
type SegmentOptions struct {
	Capabilities uint8
	Active       bool
	Selected     bool
	Color        uint32
	Mode         uint8
	Palette      uint8
	Speed        uint8
	Intensity    uint8
}

// Options configures a Strip.
type Options struct {
	Segments     []SegmentOptions
	MainSegment  int
	ModeCount    int
	PaletteCount int
	Brightness   uint8
	DefaultWhite uint8
}

// Strip is the shared strip state. It is not safe for concurrent use; all
// mutation happens on the main loop goroutine.
type Strip struct {
	segments     []*Segment
	mainSegment  int
	modeCount    int
	paletteCount int

	updating        atomic.Bool
	runtimeRestarts int

	// Global state, mirrored from the first targeted segment after changes.
	Bri              uint8
	BriLast          uint8
	StateChanged     bool
	NightlightActive bool
	NightlightStart  time.Time
	EffectCurrent    uint8
	EffectSpeed      uint8
	EffectIntensity  uint8
	EffectPalette    uint8
	ColPri           uint32
	WhiteLast        uint8
}

// New creates a strip. A strip always has at least one segment.
func New(opts Options) *Strip {
	s := &Strip{
		modeCount:    opts.ModeCount,
		paletteCount: opts.PaletteCount,
		Bri:          opts.Brightness,
		BriLast:      128,
		WhiteLast:    opts.DefaultWhite,
	}
	if s.modeCount <= 0 {
		s.modeCount = DefaultModeCount
	}
	if s.paletteCount <= 0 {
		s.paletteCount = DefaultPaletteCount
	}
	s.modeCount = min(s.modeCount, MaxCount)
	s.paletteCount = min(s.paletteCount, MaxCount)
	if s.WhiteLast == 0 {
		s.WhiteLast = 128
	}

	segs := opts.Segments
	if len(segs) == 0 {
		segs = []SegmentOptions{{Capabilities: CapRGB, Active: true, Selected: true, Color: 0xFFA000, Speed: 128, Intensity: 128}}
	}
	for i, so := range segs {
		s.segments = append(s.segments, &Segment{
			ID:           i,
			Colors:       [3]uint32{so.Color},
			Mode:         so.Mode,
			Palette:      so.Palette,
			Speed:        so.Speed,
			Intensity:    so.Intensity,
			Active:       so.Active,
			Selected:     so.Selected,
			Capabilities: so.Capabilities,
			CCT:          127,
			strip:        s,
		})
	}

	s.mainSegment = opts.MainSegment
	if s.mainSegment < 0 || s.mainSegment >= len(s.segments) {
		s.mainSegment = 0
	}
	if s.Bri > 0 {
		s.BriLast = s.Bri
	}
	s.SetValuesFromSegment(s.MainSegment())
	return s
}

// SegmentCount returns the number of segments.
func (s *Strip) SegmentCount() int { return len(s.segments) }

// Segment returns the segment at index i, or the main segment if i is out of range.
func (s *Strip) Segment(i int) *Segment {
	if i < 0 || i >= len(s.segments) {
		return s.MainSegment()
	}
	return s.segments[i]
}

// MainSegmentID returns the index of the main segment.
func (s *Strip) MainSegmentID() int { return s.mainSegment }

// MainSegment returns the main segment.
func (s *Strip) MainSegment() *Segment { return s.segments[s.mainSegment] }

// FirstSelectedSegmentID returns the first segment that is both active and
// selected, or the main segment if there is none.
func (s *Strip) FirstSelectedSegmentID() int {
	for i, seg := range s.segments {
		if seg.Active && seg.Selected {
			return i
		}
	}
	return s.mainSegment
}

// ModeCount returns the number of effect modes known to the render engine.
func (s *Strip) ModeCount() int { return s.modeCount }

// PaletteCount returns the number of palettes known to the render engine.
func (s *Strip) PaletteCount() int { return s.paletteCount }

// IsUpdating reports whether a frame is currently being sent out.
func (s *Strip) IsUpdating() bool { return s.updating.Load() }

// SetUpdating is called by output drivers around frame transmission.
func (s *Strip) SetUpdating(v bool) { s.updating.Store(v) }

// RestartRuntime restarts effect timing, used when the strip turns on.
func (s *Strip) RestartRuntime() { s.runtimeRestarts++ }

// RuntimeRestarts returns how many times the effect runtime was restarted.
func (s *Strip) RuntimeRestarts() int { return s.runtimeRestarts }

// SetValuesFromSegment mirrors a segment into the global shadow values.
func (s *Strip) SetValuesFromSegment(seg *Segment) {
	s.ColPri = seg.Colors[0]
	s.EffectCurrent = seg.Mode
	s.EffectSpeed = seg.Speed
	s.EffectIntensity = seg.Intensity
	s.EffectPalette = seg.Palette
}
