// Package remote handles WiZmote buttons received over ESP-NOW.
//
// Packets arrive on a network goroutine. OnPacket only records the button;
// the action runs later from Handle on the main loop, so command files are
// never read concurrently with a frame being rendered.
package remote

import (
	"encoding/binary"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/jsoncmd"
	"github.com/dokzlo13/ledremote/internal/strip"
)

// WiZmote button ids.
const (
	ButtonOn         = 1
	ButtonOff        = 2
	ButtonNight      = 3
	ButtonBrightDown = 8
	ButtonBrightUp   = 9
	ButtonOne        = 16
	ButtonTwo        = 17
	ButtonThree      = 18
	ButtonFour       = 19

	SmartButtonOn         = 100
	SmartButtonOff        = 101
	SmartButtonBrightUp   = 102
	SmartButtonBrightDown = 103
)

// PacketSize is the length of a WiZmote frame.
const PacketSize = 13

const noButton = -1

// Packet errors.
var (
	ErrBadPacketSize  = errors.New("wizmote packet has wrong size")
	ErrUnlinkedSender = errors.New("packet from unlinked sender")
	ErrDuplicateSeq   = errors.New("duplicate sequence number")
)

// Packet is a decoded WiZmote frame.
//
//	offset 0     program
//	offset 1..4  sequence number, little endian
//	offset 5     data type, 32
//	offset 6     button
//	offset 7..12 battery level and padding
type Packet struct {
	Program uint8
	Seq     uint32
	Button  uint8
}

// ParsePacket decodes a WiZmote frame.
func ParsePacket(data []byte) (Packet, error) {
	if len(data) != PacketSize {
		return Packet{}, ErrBadPacketSize
	}
	return Packet{
		Program: data[0],
		Seq:     binary.LittleEndian.Uint32(data[1:5]),
		Button:  data[6],
	}, nil
}

// Runner executes command file entries.
type Runner interface {
	Run(moduleID uint8, fileName, key string) (jsoncmd.Result, error)
}

// Actions are the engine operations bound to the fixed button table.
type Actions interface {
	TurnOn() bool
	TurnOff() bool
	ActivateNightMode() bool
	IncBrightness() bool
	DecBrightness() bool
	PresetWithFallback(id, effect, palette uint8)
}

// Options configures an Adapter.
type Options struct {
	// LinkedRemote is the sender MAC address accepted by OnPacket, as
	// twelve hex digits. Empty accepts any sender.
	LinkedRemote string
	// CommandFile overrides the fixed table per button. Defaults to /remote.json.
	CommandFile string
}

// Adapter hands button presses from the receive path to the main loop.
type Adapter struct {
	runner  Runner
	actions Actions
	opts    Options

	mu      sync.Mutex
	button  int
	lastSeq uint32
	seen    bool
}

// New creates an adapter.
func New(runner Runner, actions Actions, opts Options) *Adapter {
	if opts.CommandFile == "" {
		opts.CommandFile = "/remote.json"
	}
	opts.LinkedRemote = normalizeMAC(opts.LinkedRemote)
	return &Adapter{
		runner:  runner,
		actions: actions,
		opts:    opts,
		button:  noButton,
	}
}

// OnPacket records the button of a packet received from src. It does no
// other work and is safe to call from any goroutine.
func (a *Adapter) OnPacket(src string, data []byte) error {
	if a.opts.LinkedRemote != "" && normalizeMAC(src) != a.opts.LinkedRemote {
		return ErrUnlinkedSender
	}
	p, err := ParsePacket(data)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seen && p.Seq == a.lastSeq {
		return ErrDuplicateSeq
	}
	a.lastSeq = p.Seq
	a.seen = true
	a.button = int(p.Button)
	return nil
}

// Press records a button without a sequence number, e.g. from a local GPIO
// button.
func (a *Adapter) Press(button uint8) {
	a.mu.Lock()
	a.button = int(button)
	a.mu.Unlock()
}

// Pending returns the recorded button, or false if there is none.
func (a *Adapter) Pending() (uint8, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.button == noButton {
		return 0, false
	}
	return uint8(a.button), true
}

// Handle runs the recorded button, if any. It must be called from the main loop.
func (a *Adapter) Handle() {
	a.mu.Lock()
	button := a.button
	a.button = noButton
	a.mu.Unlock()

	if button == noButton {
		return
	}
	if a.runCommandFile(button) {
		return
	}
	if !a.runFixed(button) {
		log.Debug().Int("button", button).Msg("Unknown remote button")
	}
}

func (a *Adapter) runCommandFile(button int) bool {
	if a.runner == nil {
		return false
	}
	_, err := a.runner.Run(jsoncmd.ModuleRemote, a.opts.CommandFile, strconv.Itoa(button))
	switch {
	case err == nil:
		return true
	case errors.Is(err, jsoncmd.ErrFileMissing), errors.Is(err, jsoncmd.ErrCodeNotMapped):
		return false
	case errors.Is(err, jsoncmd.ErrPresetIDOutOfRange):
		log.Warn().Err(err).Int("button", button).Msg("Remote command rejected")
		return false
	default:
		log.Debug().Err(err).Int("button", button).Msg("Remote command not run")
		return false
	}
}

func (a *Adapter) runFixed(button int) bool {
	switch button {
	case ButtonOn, SmartButtonOn:
		a.actions.TurnOn()
	case ButtonOff, SmartButtonOff:
		a.actions.TurnOff()
	case ButtonNight:
		a.actions.ActivateNightMode()
	case ButtonOne:
		a.actions.PresetWithFallback(1, strip.FXStatic, 0)
	case ButtonTwo:
		a.actions.PresetWithFallback(2, strip.FXBreath, 0)
	case ButtonThree:
		a.actions.PresetWithFallback(3, strip.FXFireFlicker, 0)
	case ButtonFour:
		a.actions.PresetWithFallback(4, strip.FXRainbow, 0)
	case ButtonBrightUp, SmartButtonBrightUp:
		a.actions.IncBrightness()
	case ButtonBrightDown, SmartButtonBrightDown:
		a.actions.DecBrightness()
	default:
		return false
	}
	return true
}

func normalizeMAC(mac string) string {
	mac = strings.ToLower(mac)
	return strings.NewReplacer(":", "", "-", "").Replace(mac)
}
