package lua

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/dokzlo13/ledremote/internal/action"
	"github.com/dokzlo13/ledremote/internal/decoder"
	"github.com/dokzlo13/ledremote/internal/jsoncmd"
	"github.com/dokzlo13/ledremote/internal/strip"
	"github.com/dokzlo13/ledremote/internal/targeting"
)

const script = `
local remote = require("remote")
local led = require("led")
local log = require("log")

remote.on(0xF700FF, function() led.bri_up() end, { rpt = true })
remote.on("0xF7C03F", function(code)
  log.info("power", { code = code })
  led.toggle()
end)
remote.on(100, function() led.color("#ff0000") end)
remote.on(101, function() led.effect(9) end)
remote.on(102, function()
  local st = led.state()
  if st.fx == 9 then led.brightness(10) end
end)
remote.on(103, function() error("boom") end)
remote.on(104, function() end)
remote.off(104)
`

func newRuntime(t *testing.T, src string) (*Runtime, *strip.Strip) {
	t.Helper()
	return newRuntimeWithTimeout(t, src, 0)
}

func newRuntimeWithTimeout(t *testing.T, src string, timeout time.Duration) (*Runtime, *strip.Strip) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/remote.lua", []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	s := strip.New(strip.Options{Brightness: 128, ModeCount: 100, PaletteCount: 20})
	e := action.New(s, nil, nil, nil, action.Options{Scope: targeting.AllSelected})

	rt := NewRuntime(Deps{Actions: e, State: s, CallTimeout: timeout})
	if err := rt.LoadScript(fs, "/remote.lua"); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rt.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		rt.Close()
	})
	return rt, s
}

func TestDispatch(t *testing.T) {
	rt, s := newRuntime(t, script)

	repeat, err := rt.Dispatch(0xF700FF)
	if err != nil || !repeat {
		t.Fatalf("Dispatch(bri up) = %v, %v", repeat, err)
	}
	if s.Bri != 154 {
		t.Errorf("Bri = %d, want 154", s.Bri)
	}

	if repeat, err := rt.Dispatch(0xF7C03F); err != nil || repeat {
		t.Fatalf("Dispatch(toggle) = %v, %v", repeat, err)
	}
	if s.Bri != 0 {
		t.Errorf("toggle left Bri = %d", s.Bri)
	}
}

func TestDispatchColorAndState(t *testing.T) {
	rt, s := newRuntime(t, script)

	for _, code := range []uint32{100, 101, 102} {
		if _, err := rt.Dispatch(code); err != nil {
			t.Fatalf("Dispatch(%d): %v", code, err)
		}
	}
	seg := s.MainSegment()
	if seg.Colors[0]&0xFFFFFF != 0xFF0000 {
		t.Errorf("color = %06X, want FF0000", seg.Colors[0]&0xFFFFFF)
	}
	if seg.Mode != 9 {
		t.Errorf("mode = %d, want 9", seg.Mode)
	}
	if s.Bri != 10 {
		t.Errorf("state() did not see the effect: Bri = %d", s.Bri)
	}
}

func TestDispatchErrors(t *testing.T) {
	rt, _ := newRuntime(t, script)

	if _, err := rt.Dispatch(0x1234); !errors.Is(err, jsoncmd.ErrCodeNotMapped) {
		t.Errorf("unbound code: err = %v", err)
	}
	if _, err := rt.Dispatch(104); !errors.Is(err, jsoncmd.ErrCodeNotMapped) {
		t.Errorf("removed binding: err = %v", err)
	}
	if _, err := rt.Dispatch(103); err == nil {
		t.Error("script error was not returned")
	}
	// The worker survives a failing handler.
	if _, err := rt.Dispatch(101); err != nil {
		t.Errorf("after failure: %v", err)
	}
}

func TestDispatchLockBusy(t *testing.T) {
	rt, s := newRuntime(t, script)

	if !rt.lock.TryAcquire(jsoncmd.ModuleIR) {
		t.Fatal("lock not free")
	}
	if _, err := rt.Dispatch(0xF700FF); !errors.Is(err, jsoncmd.ErrLockUnavailable) {
		t.Errorf("err = %v, want ErrLockUnavailable", err)
	}
	rt.lock.Release()
	if s.Bri != 128 {
		t.Errorf("handler ran while locked: Bri = %d", s.Bri)
	}
}

func TestDecoderRepeatsLuaBinding(t *testing.T) {
	rt, s := newRuntime(t, script)
	e := action.New(s, nil, nil, nil, action.Options{Scope: targeting.AllSelected})
	d := decoder.New(decoder.RemoteLua, e, rt)

	for _, code := range []uint32{0xF700FF, decoder.RepeatCode} {
		if err := d.Decode(code); err != nil {
			t.Fatal(err)
		}
	}
	if s.Bri != 198 {
		t.Errorf("Bri = %d, want 198 after press and one repeat", s.Bri)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	rt := NewRuntime(Deps{})
	defer rt.Close()

	if err := rt.LoadScript(afero.NewMemMapFs(), "/missing.lua"); err == nil {
		t.Error("missing script loaded")
	}

	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/bad.lua", []byte(`remote = require("remote") remote.on({}, nil)`), 0o644)
	if err := rt.LoadScript(fs, "/bad.lua"); err == nil {
		t.Error("bad binding accepted")
	}
}

func TestDispatchTimeoutStopsHandler(t *testing.T) {
	rt, s := newRuntimeWithTimeout(t, `
local remote = require("remote")
local led = require("led")
remote.on(1, function()
  while true do
    led.bri_up()
    led.bri_down()
  end
end)
remote.on(2, function() led.brightness(200) end)
`, 20*time.Millisecond)

	if _, err := rt.Dispatch(1); err == nil {
		t.Fatal("Dispatch(endless) succeeded, want timeout error")
	}
	if _, held := rt.lock.Owner(); held {
		t.Error("buffer lock still held after Dispatch returned")
	}

	// The handler must not touch the strip once Dispatch has returned.
	s.Bri = 50
	time.Sleep(50 * time.Millisecond)
	if s.Bri != 50 {
		t.Fatalf("Bri = %d after Dispatch returned, want 50", s.Bri)
	}

	if _, err := rt.Dispatch(2); err != nil {
		t.Fatalf("Dispatch after timeout: %v", err)
	}
	if s.Bri != 200 {
		t.Errorf("Bri = %d, want 200", s.Bri)
	}
}
