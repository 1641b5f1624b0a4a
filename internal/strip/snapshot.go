package strip

// SegmentState is the serializable form of a segment.
type SegmentState struct {
	ID        int        `json:"id"`
	On        bool       `json:"on"`
	Selected  bool       `json:"sel"`
	Mode      uint8      `json:"fx"`
	Palette   uint8      `json:"pal"`
	Speed     uint8      `json:"sx"`
	Intensity uint8      `json:"ix"`
	Custom1   uint8      `json:"c1"`
	Custom2   uint8      `json:"c2"`
	Custom3   uint8      `json:"c3"`
	CCT       uint8      `json:"cct"`
	Colors    [][4]uint8 `json:"col"`
}

// State is the serializable form of the whole strip, in the same shape the
// JSON state API accepts.
type State struct {
	On         bool            `json:"on"`
	Brightness uint8           `json:"bri"`
	Nightlight NightlightState `json:"nl"`
	MainSeg    int             `json:"mainseg"`
	Segments   []SegmentState  `json:"seg"`
}

// NightlightState reports whether the nightlight fade is running.
type NightlightState struct {
	On bool `json:"on"`
}

// Snapshot captures the current state.
func (s *Strip) Snapshot() State {
	st := State{
		On:         s.Bri > 0,
		Brightness: s.Bri,
		Nightlight: NightlightState{On: s.NightlightActive},
		MainSeg:    s.mainSegment,
		Segments:   make([]SegmentState, 0, len(s.segments)),
	}
	if st.Brightness == 0 {
		st.Brightness = s.BriLast
	}
	for _, seg := range s.segments {
		ss := SegmentState{
			ID:        seg.ID,
			On:        seg.Active,
			Selected:  seg.Selected,
			Mode:      seg.Mode,
			Palette:   seg.Palette,
			Speed:     seg.Speed,
			Intensity: seg.Intensity,
			Custom1:   seg.Custom1,
			Custom2:   seg.Custom2,
			Custom3:   seg.Custom3,
			CCT:       seg.CCT,
		}
		for _, c := range seg.Colors {
			ss.Colors = append(ss.Colors, [4]uint8{R(c), G(c), B(c), W(c)})
		}
		st.Segments = append(st.Segments, ss)
	}
	return st
}
