// Package decoder turns raw remote codes into actions.
//
// Static IR families are fixed code tables. The JSON and Lua families hand
// every code to a Program, which looks the code up in a user file or script.
// Holding a button makes NEC remotes send RepeatCode; the decoder remembers
// the last repeatable action and replays it for every repeat.
package decoder

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/action"
)

// RemoteType selects the code table used by a Decoder.
type RemoteType int

const (
	RemoteNone RemoteType = iota
	RemoteIR24
	RemoteIR24CT
	RemoteIR40
	RemoteIR44
	RemoteIR21
	RemoteIR6
	RemoteIR9
	RemoteJSON
	RemoteLua
)

var remoteNames = map[RemoteType]string{
	RemoteNone:   "none",
	RemoteIR24:   "ir24",
	RemoteIR24CT: "ir24ct",
	RemoteIR40:   "ir40",
	RemoteIR44:   "ir44",
	RemoteIR21:   "ir21",
	RemoteIR6:    "ir6",
	RemoteIR9:    "ir9",
	RemoteJSON:   "json",
	RemoteLua:    "lua",
}

func (t RemoteType) String() string {
	if name, ok := remoteNames[t]; ok {
		return name
	}
	return fmt.Sprintf("remote(%d)", int(t))
}

// ParseRemoteType parses a remote type name as used in the config file.
func ParseRemoteType(s string) (RemoteType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RemoteNone, nil
	}
	for t, name := range remoteNames {
		if name == s {
			return t, nil
		}
	}
	return RemoteNone, fmt.Errorf("unknown remote type %q", s)
}

// programmable reports whether codes are resolved by a Program.
func (t RemoteType) programmable() bool {
	return t == RemoteJSON || t == RemoteLua
}

// RepeatAction is what holding the last button repeats.
type RepeatAction int

const (
	RepeatNone RepeatAction = iota
	RepeatBrightUp
	RepeatBrightDown
	RepeatSpeedUp
	RepeatSpeedDown
	RepeatIntensityUp
	RepeatIntensityDown
	RepeatWhiteUp
	RepeatWhiteDown
	// RepeatLongPressOn starts the nightlight once the button is held long enough.
	RepeatLongPressOn
)

// longPressRepeats is the number of repeat signals after which a held ON
// button starts the nightlight.
const longPressRepeats = 7

// Memory is the decoder's repeat state.
type Memory struct {
	LastValidCode uint32
	Action        RepeatAction
	Repeats       int
}

// Program resolves codes that are not in a static table.
type Program interface {
	// Dispatch runs the action bound to code. repeatable reports whether
	// holding the button should run it again.
	Dispatch(code uint32) (repeatable bool, err error)
}

// Decoder maps codes of one remote family to engine actions.
type Decoder struct {
	remote  RemoteType
	engine  *action.Engine
	program Program
	mem     Memory
}

// New creates a decoder. program is required for the JSON and Lua families
// and ignored otherwise. State-updated notifications are sent by the engine
// and the program, never by the decoder itself.
func New(remote RemoteType, engine *action.Engine, program Program) *Decoder {
	return &Decoder{
		remote:  remote,
		engine:  engine,
		program: program,
	}
}

// Remote returns the configured remote family.
func (d *Decoder) Remote() RemoteType { return d.remote }

// Memory returns a copy of the repeat state.
func (d *Decoder) Memory() Memory { return d.mem }

// Decode handles one received code. Errors come from the Program and
// describe codes that could not be run.
func (d *Decoder) Decode(code uint32) error {
	if d.remote == RemoteNone {
		return nil
	}
	if code == RepeatCode {
		d.mem.Repeats++
		return d.repeat()
	}

	d.mem = Memory{}

	if d.remote.programmable() {
		return d.dispatch(code)
	}

	if code > maxStaticCode {
		return nil
	}

	bind, ok := d.lookup(code)
	if !ok {
		log.Debug().Str("code", fmt.Sprintf("0x%X", code)).Str("remote", d.remote.String()).Msg("Code not in remote table")
		return nil
	}
	d.mem.Action = bind(d)
	d.mem.LastValidCode = code
	return nil
}

func (d *Decoder) lookup(code uint32) (binding, bool) {
	var t table
	switch d.remote {
	case RemoteIR24:
		if code > ir24OldThreshold {
			t = ir24OldTable
		} else {
			t = ir24Table
		}
	case RemoteIR24CT:
		t = ir24CTTable
	case RemoteIR40:
		t = ir40Table
	case RemoteIR44:
		t = ir44Table
	case RemoteIR21:
		t = ir21Table
	case RemoteIR6:
		t = ir6Table
	case RemoteIR9:
		t = ir9Table
	}
	b, ok := t[code]
	return b, ok
}

func (d *Decoder) dispatch(code uint32) error {
	if d.program == nil {
		return fmt.Errorf("remote %s has no program", d.remote)
	}
	repeatable, err := d.program.Dispatch(code)
	if err != nil {
		return err
	}
	if repeatable {
		d.mem.LastValidCode = code
	}
	return nil
}

func (d *Decoder) repeat() error {
	if d.remote.programmable() {
		if d.mem.LastValidCode == 0 {
			return nil
		}
		return d.dispatch(d.mem.LastValidCode)
	}

	e := d.engine
	switch d.mem.Action {
	case RepeatBrightUp:
		e.IncBrightness()
	case RepeatBrightDown:
		e.DecBrightness()
	case RepeatSpeedUp:
		e.IncEffectSpeedOrHue()
	case RepeatSpeedDown:
		e.DecEffectSpeedOrHue()
	case RepeatIntensityUp:
		e.IncEffectIntensityOrSaturation()
	case RepeatIntensityDown:
		e.DecEffectIntensityOrSaturation()
	case RepeatWhiteUp:
		e.ChangeWhite(10)
	case RepeatWhiteDown:
		e.ChangeWhite(-10)
	case RepeatLongPressOn:
		if d.mem.Repeats > longPressRepeats {
			e.NightlightStart()
		}
	}
	return nil
}
