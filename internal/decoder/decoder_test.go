package decoder

import (
	"errors"
	"testing"

	"github.com/dokzlo13/ledremote/internal/action"
	"github.com/dokzlo13/ledremote/internal/jsoncmd"
	"github.com/dokzlo13/ledremote/internal/strip"
	"github.com/dokzlo13/ledremote/internal/targeting"
)

type fallbackCall struct {
	id, effect, palette uint8
}

type fakeHost struct {
	fallbacks []fallbackCall
}

func (h *fakeHost) ApplyPreset(id uint8, mode strip.CallMode) bool { return true }

func (h *fakeHost) ApplyPresetWithFallback(id uint8, mode strip.CallMode, effect, palette uint8) {
	h.fallbacks = append(h.fallbacks, fallbackCall{id, effect, palette})
}

func newDecoder(remote RemoteType, program Program, segs ...strip.SegmentOptions) (*Decoder, *strip.Strip, *fakeHost) {
	s := strip.New(strip.Options{Segments: segs, Brightness: 128, ModeCount: 100, PaletteCount: 20})
	host := &fakeHost{}
	e := action.New(s, host, nil, nil, action.Options{Scope: targeting.AllSelected})
	return New(remote, e, program), s, host
}

func TestRepeatReplaysBrightness(t *testing.T) {
	d, s, _ := newDecoder(RemoteIR24, nil)

	steps := []struct {
		code uint32
		want uint8
	}{
		{IR24Brighter, 154},
		{RepeatCode, 198},
		{RepeatCode, 255},
		{RepeatCode, 255},
	}
	for i, st := range steps {
		if err := d.Decode(st.code); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if s.Bri != st.want {
			t.Errorf("step %d: Bri = %d, want %d", i, s.Bri, st.want)
		}
	}
	if got := d.Memory().Repeats; got != 3 {
		t.Errorf("Repeats = %d, want 3", got)
	}

	// A new code resets the repeat memory.
	if err := d.Decode(IR24Red); err != nil {
		t.Fatal(err)
	}
	if m := d.Memory(); m.Action != RepeatNone || m.Repeats != 0 || m.LastValidCode != IR24Red {
		t.Errorf("memory after new code = %+v", m)
	}
	if err := d.Decode(RepeatCode); err != nil {
		t.Fatal(err)
	}
	if s.Bri != 255 {
		t.Errorf("repeat of a color key changed brightness to %d", s.Bri)
	}
}

func TestBrightnessAtLimitIsNotRepeatable(t *testing.T) {
	d, s, _ := newDecoder(RemoteIR40, nil)
	s.Bri = 255

	_ = d.Decode(IR40BPlus)
	if got := d.Memory().Action; got != RepeatNone {
		t.Errorf("Action = %v, want none", got)
	}
}

func TestLongPressOnStartsNightlight(t *testing.T) {
	d, s, _ := newDecoder(RemoteIR24, nil)
	s.Bri = 0

	_ = d.Decode(IR24On)
	if s.Bri == 0 {
		t.Fatal("ON did not turn the strip on")
	}
	for i := 1; i <= longPressRepeats; i++ {
		_ = d.Decode(RepeatCode)
		if s.NightlightActive {
			t.Fatalf("nightlight started after %d repeats", i)
		}
	}
	_ = d.Decode(RepeatCode)
	if !s.NightlightActive {
		t.Error("nightlight not started after a long press")
	}
}

func TestLongPressOnOnlyForHoldRemotes(t *testing.T) {
	d, s, _ := newDecoder(RemoteIR21, nil)

	_ = d.Decode(IR21On)
	for i := 0; i < 10; i++ {
		_ = d.Decode(RepeatCode)
	}
	if s.NightlightActive {
		t.Error("IR21 ON must not start the nightlight")
	}
}

func TestWhiteRepeat(t *testing.T) {
	d, s, _ := newDecoder(RemoteIR40, nil, strip.SegmentOptions{
		Capabilities: strip.CapRGB | strip.CapWhite,
		Active:       true,
		Selected:     true,
		Color:        strip.RGBW32(255, 0, 0, 100),
	})

	_ = d.Decode(IR40WPlus)
	_ = d.Decode(RepeatCode)
	if got := strip.W(s.Segment(0).Colors[0]); got != 120 {
		t.Errorf("white = %d, want 120", got)
	}
	_ = d.Decode(IR40WMinus)
	_ = d.Decode(RepeatCode)
	if got := strip.W(s.Segment(0).Colors[0]); got != 100 {
		t.Errorf("white = %d, want 100", got)
	}
}

func TestStaticFamilyDropsWideCodes(t *testing.T) {
	d, s, _ := newDecoder(RemoteIR44, nil)
	before := s.Segment(0).Colors[0]

	_ = d.Decode(IR44Red | 0x01000000)
	if s.Segment(0).Colors[0] != before {
		t.Error("code above 24 bits was applied")
	}
	if m := d.Memory(); m != (Memory{}) {
		t.Errorf("memory = %+v, want reset", m)
	}
}

func TestIR24Layouts(t *testing.T) {
	tests := []struct {
		name     string
		code     uint32
		wantPal  uint8
		wantFX   uint8
		wantID   uint8
		fallback bool
		color    uint32
	}{
		{name: "new_red", code: IR24Red, color: strip.ColorRed},
		{name: "old_red", code: IR24OldRed, color: strip.ColorRed},
		{name: "new_flash_keeps_palette", code: IR24Flash, fallback: true, wantID: 1, wantFX: strip.FXColorTwinkle, wantPal: 7},
		{name: "old_flash_default_palette", code: IR24OldFlash, fallback: true, wantID: 1, wantFX: strip.FXColorTwinkle, wantPal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, s, host := newDecoder(RemoteIR24, nil)
			s.EffectPalette = 7

			if err := d.Decode(tt.code); err != nil {
				t.Fatal(err)
			}
			if tt.fallback {
				want := fallbackCall{tt.wantID, tt.wantFX, tt.wantPal}
				if len(host.fallbacks) != 1 || host.fallbacks[0] != want {
					t.Errorf("fallbacks = %v, want %v", host.fallbacks, want)
				}
				return
			}
			if got := s.Segment(0).Colors[0]; got != tt.color {
				t.Errorf("color = %06X, want %06X", got, tt.color)
			}
		})
	}
}

func TestIR24CTWhites(t *testing.T) {
	d, s, _ := newDecoder(RemoteIR24CT, nil, strip.SegmentOptions{
		Capabilities: strip.CapRGB | strip.CapWhite | strip.CapCCT,
		Active:       true,
		Selected:     true,
		Mode:         9,
	})

	_ = d.Decode(IR24CTWarmWhite)
	seg := s.Segment(0)
	if seg.CCT != 0 || seg.Mode != strip.FXStatic {
		t.Errorf("warm white: cct = %d mode = %d", seg.CCT, seg.Mode)
	}
	_ = d.Decode(IR24CTCTPlus)
	if seg.CCT != 1 {
		t.Errorf("CT+: cct = %d, want 1", seg.CCT)
	}
}

type fakeRunner struct {
	results map[string]jsoncmd.Result
	keys    []string
	err     error
}

func (r *fakeRunner) Run(moduleID uint8, fileName, key string) (jsoncmd.Result, error) {
	r.keys = append(r.keys, key)
	if r.err != nil {
		return jsoncmd.ResultOK, r.err
	}
	return r.results[key], nil
}

func TestJSONModeRepeat(t *testing.T) {
	runner := &fakeRunner{results: map[string]jsoncmd.Result{
		"0xFF3AC5": jsoncmd.ResultRepeatable,
		"0xFF827D": jsoncmd.ResultOK,
	}}
	d, _, _ := newDecoder(RemoteJSON, NewIRJSONProgram(runner))

	_ = d.Decode(0xFF3AC5)
	_ = d.Decode(RepeatCode)
	_ = d.Decode(RepeatCode)
	if len(runner.keys) != 3 || runner.keys[2] != "0xFF3AC5" {
		t.Errorf("keys = %v", runner.keys)
	}

	runner.keys = nil
	_ = d.Decode(0xFF827D)
	_ = d.Decode(RepeatCode)
	if len(runner.keys) != 1 {
		t.Errorf("non-repeatable code was replayed: %v", runner.keys)
	}

	// JSON mode accepts codes wider than 24 bits.
	runner.keys = nil
	_ = d.Decode(0x1FF3AC5)
	if len(runner.keys) != 1 || runner.keys[0] != "0x1FF3AC5" {
		t.Errorf("keys = %v", runner.keys)
	}
}

func TestJSONModeErrors(t *testing.T) {
	runner := &fakeRunner{err: jsoncmd.ErrFileMissing}
	d, _, _ := newDecoder(RemoteJSON, NewIRJSONProgram(runner))

	if err := d.Decode(0xFF3AC5); !errors.Is(err, jsoncmd.ErrFileMissing) {
		t.Errorf("err = %v, want ErrFileMissing", err)
	}
	if d.Memory().LastValidCode != 0 {
		t.Error("failed code must not be remembered")
	}

	d = New(RemoteJSON, nil, nil)
	if err := d.Decode(1); err == nil {
		t.Error("JSON remote without a program must fail")
	}
}

func TestRFProgramKey(t *testing.T) {
	p := NewRFProgram(&fakeRunner{})
	if got := p.Key(5592405); got != "5592405" {
		t.Errorf("Key = %q", got)
	}
}

func TestParseRemoteType(t *testing.T) {
	tests := []struct {
		in      string
		want    RemoteType
		wantErr bool
	}{
		{"", RemoteNone, false},
		{"IR44", RemoteIR44, false},
		{" json ", RemoteJSON, false},
		{"lua", RemoteLua, false},
		{"ir99", RemoteNone, true},
	}
	for _, tt := range tests {
		got, err := ParseRemoteType(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseRemoteType(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestPresetButtonsNotifyButtonMode(t *testing.T) {
	s := strip.New(strip.Options{Brightness: 128, ModeCount: 100, PaletteCount: 20})
	host := &fakeHost{}
	var modes []strip.CallMode
	notifier := strip.NotifierFunc(func(m strip.CallMode) { modes = append(modes, m) })
	d := New(RemoteIR24, action.New(s, host, notifier, nil, action.Options{Scope: targeting.AllSelected}), nil)

	if err := d.Decode(IR24Flash); err != nil {
		t.Fatal(err)
	}
	if len(host.fallbacks) != 1 || host.fallbacks[0].id != 1 {
		t.Fatalf("fallbacks = %+v", host.fallbacks)
	}
	if len(modes) != 1 || modes[0] != strip.CallModeButton {
		t.Errorf("notifications = %v, want one button-triggered", modes)
	}
}

func TestDecodeLeavesNightlightAlone(t *testing.T) {
	d, s, _ := newDecoder(RemoteIR24, nil)
	s.Bri = 0
	s.NightlightActive = true

	if err := d.Decode(IR24Red); err != nil {
		t.Fatal(err)
	}
	if !s.NightlightActive {
		t.Error("decoding a color code cleared the nightlight")
	}
}
