package stateapi

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/strip"
)

// HandleSet applies a query-string request of the form "win&KEY=VALUE&...".
// It returns false if the request does not start with "win".
//
// Supported keys:
//
//	A   brightness (0 turns off)
//	T   power: 0 off, 1 on, 2 toggle
//	FX  effect mode
//	FP  palette
//	SX  effect speed
//	IX  effect intensity
//	CL  primary color, "hRRGGBB", "hWWRRGGBB" or decimal
//	SS  target segment; without it all selected segments are changed
//	PL  apply preset
//
// Numeric values accept "~" (+1, wrapping), "~-" (-1, wrapping) and "~N" or
// "~-N" (relative, clamped). HandleSet does not raise a notification; the
// caller decides which call mode to report.
func (a *API) HandleSet(req string) bool {
	if !strings.HasPrefix(req, "win") {
		return false
	}

	params := parseQuery(strings.TrimPrefix(req, "win"))

	target := -1
	if v, ok := params["SS"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < a.strip.SegmentCount() {
			target = n
		}
	}
	ref := a.strip.Segment(a.strip.FirstSelectedSegmentID())
	if target >= 0 {
		ref = a.strip.Segment(target)
	}

	if v, ok := params["A"]; ok {
		bri := a.strip.Bri
		if bri == 0 {
			bri = a.strip.BriLast
		}
		if parseNumber(v, &bri, 0, 255) {
			a.setBrightness(bri)
		}
	}

	if v, ok := params["T"]; ok {
		switch v {
		case "0":
			a.turnOff()
		case "1":
			a.turnOn()
		case "2":
			if a.strip.Bri == 0 {
				a.turnOn()
			} else {
				a.turnOff()
			}
		}
	}

	segField := func(key string, get func(*strip.Segment) uint8, set func(*strip.Segment, uint8), maxv uint8) {
		v, ok := params[key]
		if !ok {
			return
		}
		val := get(ref)
		if !parseNumber(v, &val, 0, maxv) {
			return
		}
		a.eachTarget(target, func(seg *strip.Segment) { set(seg, val) })
	}
	segField("FX",
		func(s *strip.Segment) uint8 { return s.Mode },
		func(s *strip.Segment, v uint8) { s.SetMode(v) },
		uint8(a.strip.ModeCount()-1))
	segField("FP",
		func(s *strip.Segment) uint8 { return s.Palette },
		func(s *strip.Segment, v uint8) { s.SetPalette(v) },
		uint8(a.strip.PaletteCount()-1))
	segField("SX",
		func(s *strip.Segment) uint8 { return s.Speed },
		func(s *strip.Segment, v uint8) { s.Speed = v },
		255)
	segField("IX",
		func(s *strip.Segment) uint8 { return s.Intensity },
		func(s *strip.Segment, v uint8) { s.Intensity = v },
		255)

	if v, ok := params["CL"]; ok {
		if c, ok := parseColor(v); ok {
			a.eachTarget(target, func(seg *strip.Segment) { seg.SetColor(0, c) })
		} else {
			log.Debug().Str("value", v).Msg("Ignoring invalid CL value")
		}
	}

	if v, ok := params["PL"]; ok {
		if id, err := strconv.Atoi(v); err == nil && id > 0 && id < 256 {
			a.ApplyPreset(uint8(id), strip.CallModeDirectChange)
		}
	}

	a.mirror()
	return true
}

// parseQuery splits "&K=V&K2=V2" into upper-cased keys. Later keys win.
func parseQuery(q string) map[string]string {
	params := make(map[string]string)
	for _, part := range strings.Split(q, "&") {
		if part == "" {
			continue
		}
		k, v, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		params[strings.ToUpper(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return params
}

// parseNumber updates val from an absolute or "~" relative value. It returns
// false if s is not a number.
func parseNumber(s string, val *uint8, minv, maxv uint8) bool {
	if !strings.HasPrefix(s, "~") {
		n, err := strconv.Atoi(s)
		if err != nil {
			return false
		}
		*val = clampRange(n, minv, maxv)
		return true
	}

	rel := s[1:]
	switch rel {
	case "", "+":
		if *val >= maxv {
			*val = minv
		} else {
			*val++
		}
		return true
	case "-":
		if *val <= minv {
			*val = maxv
		} else {
			*val--
		}
		return true
	}

	n, err := strconv.Atoi(rel)
	if err != nil {
		return false
	}
	*val = clampRange(int(*val)+n, minv, maxv)
	return true
}

func clampRange(n int, minv, maxv uint8) uint8 {
	if n < int(minv) {
		return minv
	}
	if n > int(maxv) {
		return maxv
	}
	return uint8(n)
}

// parseColor accepts "hRRGGBB", "hWWRRGGBB" or a decimal packed color.
func parseColor(s string) (uint32, bool) {
	if strings.HasPrefix(s, "h") || strings.HasPrefix(s, "H") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return 0, false
		}
		c, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(c), true
	}
	c, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(c), true
}
