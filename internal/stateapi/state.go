package stateapi

import (
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/dokzlo13/ledremote/internal/strip"
)

// maxPresetDepth stops presets from recursively loading each other.
const maxPresetDepth = 1

// DeserializeState applies a JSON state document and raises a state-updated
// notification with the given call mode.
//
// Recognized fields: "bri", "on" (bool or "t" to toggle), "nl" {"on"},
// "seg" (object or array of segment objects) and "ps" (preset id).
// Segment objects without "id" change every selected segment.
func (a *API) DeserializeState(data []byte, mode strip.CallMode) error {
	return a.deserialize(data, mode, 0)
}

func (a *API) deserialize(data []byte, mode strip.CallMode, depth int) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidState
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return ErrInvalidState
	}

	if bri := doc.Get("bri"); bri.Exists() && bri.Type == gjson.Number {
		a.setBrightness(clampRange(int(bri.Int()), 0, 255))
	}

	if on := doc.Get("on"); on.Exists() {
		switch {
		case on.Type == gjson.String && on.Str == "t":
			if a.strip.Bri == 0 {
				a.turnOn()
			} else {
				a.turnOff()
			}
		case on.Type == gjson.True:
			a.turnOn()
		case on.Type == gjson.False:
			a.turnOff()
		}
	}

	if nl := doc.Get("nl.on"); nl.Exists() {
		if nl.Bool() && !a.strip.NightlightActive {
			a.strip.NightlightStart = a.now()
		}
		a.strip.NightlightActive = nl.Bool()
	}

	if seg := doc.Get("seg"); seg.Exists() {
		if seg.IsArray() {
			seg.ForEach(func(_, v gjson.Result) bool {
				a.applySegment(v)
				return true
			})
		} else if seg.IsObject() {
			a.applySegment(seg)
		}
	}

	a.mirror()

	if ps := doc.Get("ps"); ps.Exists() && depth < maxPresetDepth {
		id := ps.Int()
		if id > 0 && id < 256 && a.applyPreset(uint8(id), mode, depth) {
			return nil
		}
	}

	a.notify(mode)
	return nil
}

func (a *API) applySegment(obj gjson.Result) {
	if !obj.IsObject() {
		return
	}
	id := -1
	if v := obj.Get("id"); v.Exists() {
		id = int(v.Int())
		if id < 0 || id >= a.strip.SegmentCount() {
			return
		}
	}

	a.eachTarget(id, func(seg *strip.Segment) {
		if v := obj.Get("on"); v.Exists() {
			seg.Active = v.Bool()
		}
		if v := obj.Get("sel"); v.Exists() {
			seg.Selected = v.Bool()
		}
		if v := obj.Get("fx"); v.Exists() {
			seg.SetMode(clampRange(int(v.Int()), 0, 255))
		}
		if v := obj.Get("pal"); v.Exists() {
			seg.SetPalette(clampRange(int(v.Int()), 0, 255))
		}
		if v := obj.Get("sx"); v.Exists() {
			seg.Speed = clampRange(int(v.Int()), 0, 255)
		}
		if v := obj.Get("ix"); v.Exists() {
			seg.Intensity = clampRange(int(v.Int()), 0, 255)
		}
		if v := obj.Get("c1"); v.Exists() {
			seg.Custom1 = clampRange(int(v.Int()), 0, 255)
		}
		if v := obj.Get("c2"); v.Exists() {
			seg.Custom2 = clampRange(int(v.Int()), 0, 255)
		}
		if v := obj.Get("c3"); v.Exists() {
			seg.Custom3 = clampRange(int(v.Int()), 0, 31)
		}
		if v := obj.Get("cct"); v.Exists() {
			seg.SetCCT(int(v.Int()))
		}
		if v := obj.Get("col"); v.IsArray() {
			slot := 0
			v.ForEach(func(_, c gjson.Result) bool {
				if col, ok := parseJSONColor(c); ok {
					seg.SetColor(slot, col)
				}
				slot++
				return slot < 3
			})
		}
	})
}

// parseJSONColor accepts [r,g,b], [r,g,b,w] or a "RRGGBB"/"WWRRGGBB" hex string.
func parseJSONColor(c gjson.Result) (uint32, bool) {
	switch {
	case c.IsArray():
		ch := c.Array()
		if len(ch) < 3 {
			return 0, false
		}
		var w uint8
		if len(ch) > 3 {
			w = clampRange(int(ch[3].Int()), 0, 255)
		}
		return strip.RGBW32(
			clampRange(int(ch[0].Int()), 0, 255),
			clampRange(int(ch[1].Int()), 0, 255),
			clampRange(int(ch[2].Int()), 0, 255),
			w,
		), true
	case c.Type == gjson.String:
		if len(c.Str) != 6 && len(c.Str) != 8 {
			return 0, false
		}
		v, err := strconv.ParseUint(c.Str, 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	}
	return 0, false
}
