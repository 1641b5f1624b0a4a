package app

import (
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dokzlo13/ledremote/internal/config"
	"github.com/dokzlo13/ledremote/internal/decoder"
	"github.com/dokzlo13/ledremote/internal/ledger"
	"github.com/dokzlo13/ledremote/internal/remote"
	"github.com/dokzlo13/ledremote/internal/strip"
)

func newTestServices(t *testing.T, yaml string, files map[string]string) *Services {
	t.Helper()
	cfg, err := config.Parse([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	cfg.Database.Path = filepath.Join(dir, "ledremote.sqlite")
	cfg.Remote.DataDir = filepath.Join(dir, "data")
	if err := os.MkdirAll(cfg.Remote.DataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(cfg.Remote.DataDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s, err := NewServices(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestIRCodeReachesStripAndLedger(t *testing.T) {
	s := newTestServices(t, `
remote:
  type: ir24
ir:
  enabled: true
ledger:
  enabled: true
`, nil)

	if !s.IRQueue.Push(decoder.IR24Brighter) {
		t.Fatal("queue rejected code")
	}
	s.Loop.Tick(time.Now())

	if s.Strip.Bri != 154 {
		t.Fatalf("Bri = %d, want 154", s.Strip.Bri)
	}

	waitFor(t, "ledger entries", func() bool {
		codes, _ := s.Ledger.GetByType(ledger.EventCode, 10)
		states, _ := s.Ledger.GetByType(ledger.EventStateUpdated, 10)
		return len(codes) == 1 && len(states) == 1
	})
	states, _ := s.Ledger.GetByType(ledger.EventStateUpdated, 10)
	if states[0].Source != "ir" || states[0].CallMode != strip.CallModeButton.String() {
		t.Errorf("state entry = %+v", states[0])
	}
}

func TestIRDisabledWithoutRemoteType(t *testing.T) {
	s := newTestServices(t, `
ir:
  enabled: true
`, nil)
	if s.IRQueue != nil || s.Loop.ir != nil {
		t.Error("IR input wired with remote type none")
	}
}

func TestRFCommandFile(t *testing.T) {
	s := newTestServices(t, `
rf:
  enabled: true
remote:
  bus_wait: 1ms
`, map[string]string{
		"remote433.json": `{"1234": {"cmd": "T=0"}}`,
	})

	s.RFQueue.Push(1234)
	s.Loop.Tick(time.Now())

	if s.Strip.Bri != 0 {
		t.Errorf("Bri = %d, want 0", s.Strip.Bri)
	}
	if s.Loop.rf.LastCode() != 1234 {
		t.Errorf("LastCode = %d", s.Loop.rf.LastCode())
	}
}

func TestESPNowFixedTable(t *testing.T) {
	s := newTestServices(t, `
espnow:
  enabled: true
remote:
  bus_wait: 1ms
`, nil)

	frame := make([]byte, remote.PacketSize)
	binary.LittleEndian.PutUint32(frame[1:5], 7)
	frame[5] = 32
	frame[6] = remote.ButtonOff

	tap := &buttonTap{next: s.Remote, bus: s.Bus}
	if err := tap.OnPacket("aabbccddeeff", frame); err != nil {
		t.Fatal(err)
	}
	s.Loop.Tick(time.Now())

	if s.Strip.Bri != 0 {
		t.Errorf("Bri = %d, want 0 after OFF", s.Strip.Bri)
	}
}

func TestUnknownRemoteType(t *testing.T) {
	cfg, err := config.Parse([]byte("remote:\n  type: ir99\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewServices(cfg); err == nil {
		t.Error("unknown remote type accepted")
	}
}

func TestNewStrip(t *testing.T) {
	no := false
	s, err := newStrip(config.StripConfig{
		Brightness: 90,
		Segments: []config.SegmentConfig{
			{Color: "#00FF00"},
			{Color: "80FF0000", RGB: true, White: true, Selected: &no},
			{CCT: true},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Bri != 90 || s.SegmentCount() != 3 {
		t.Fatalf("Bri = %d, segments = %d", s.Bri, s.SegmentCount())
	}

	tests := []struct {
		i        int
		color    uint32
		caps     uint8
		selected bool
	}{
		{0, 0x00FF00, strip.CapRGB, true},
		{1, 0x80FF0000, strip.CapRGB | strip.CapWhite, false},
		{2, defaultSegmentColor, strip.CapWhite | strip.CapCCT, true},
	}
	for _, tt := range tests {
		seg := s.Segment(tt.i)
		if seg.Colors[0] != tt.color || seg.Capabilities != tt.caps || seg.Selected != tt.selected {
			t.Errorf("segment %d = color %08X caps %b sel %v", tt.i, seg.Colors[0], seg.Capabilities, seg.Selected)
		}
		if seg.Speed != 128 || seg.Intensity != 128 {
			t.Errorf("segment %d speed/intensity = %d/%d", tt.i, seg.Speed, seg.Intensity)
		}
	}

	if _, err := newStrip(config.StripConfig{Segments: []config.SegmentConfig{{Color: "red"}}}); err == nil {
		t.Error("invalid color accepted")
	}
}

func TestHealthReady(t *testing.T) {
	ready := false
	h := NewHealthService("127.0.0.1", 0, time.Second, func() bool { return ready }).Handler()

	get := func(path string) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}
	if got := get("/health"); got != http.StatusOK {
		t.Errorf("/health = %d", got)
	}
	if got := get("/ready"); got != http.StatusServiceUnavailable {
		t.Errorf("/ready while not ready = %d", got)
	}
	ready = true
	if got := get("/ready"); got != http.StatusOK {
		t.Errorf("/ready = %d", got)
	}
}

func TestInputs(t *testing.T) {
	tests := []struct {
		yaml string
		want string
	}{
		{"remote:\n  type: ir24\nir:\n  enabled: true\n", "ir"},
		{"rf:\n  enabled: true\nespnow:\n  enabled: true\n", "rf433,espnow"},
		{"ir:\n  enabled: true\n", ""},
	}
	for _, tt := range tests {
		s := newTestServices(t, tt.yaml, nil)
		if got := strings.Join(s.Inputs(), ","); got != tt.want {
			t.Errorf("Inputs() = %q, want %q", got, tt.want)
		}
	}
}
