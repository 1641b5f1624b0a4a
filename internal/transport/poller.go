package transport

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/decoder"
	"github.com/dokzlo13/ledremote/internal/jsoncmd"
)

// Poll timing.
const (
	IRCheckInterval     = 120 * time.Millisecond
	IRCheckIntervalBusy = 240 * time.Millisecond
	DuplicateWindow     = 800 * time.Millisecond
)

// UpdateState reports whether the strip is sending a frame.
type UpdateState interface {
	IsUpdating() bool
}

// CodeDecoder handles one raw code.
type CodeDecoder interface {
	Decode(code uint32) error
}

// IRPoller drains an IR receiver into a decoder at a bounded rate.
type IRPoller struct {
	rx      Receiver
	dec     CodeDecoder
	updates UpdateState

	lastCheck  time.Time
	lastCode   uint32
	lastCodeAt time.Time
}

// NewIRPoller creates an IR poller.
func NewIRPoller(rx Receiver, dec CodeDecoder, updates UpdateState) *IRPoller {
	return &IRPoller{rx: rx, dec: dec, updates: updates}
}

// Handle checks the receiver once if enough time has passed since the last
// check. While a frame is being sent the interval is doubled.
func (p *IRPoller) Handle(now time.Time) {
	since := now.Sub(p.lastCheck)
	if since <= IRCheckInterval {
		return
	}
	if p.updates != nil && p.updates.IsUpdating() && since < IRCheckIntervalBusy {
		return
	}
	p.lastCheck = now

	code, ok := p.rx.Poll()
	if !ok {
		return
	}
	if code != 0 {
		log.Debug().Str("code", fmt.Sprintf("0x%X", code)).Msg("IR received")
	}

	if code != decoder.RepeatCode {
		if code == p.lastCode && now.Sub(p.lastCodeAt) < DuplicateWindow {
			return
		}
		p.lastCode = code
		p.lastCodeAt = now
	}

	if err := p.dec.Decode(code); err != nil {
		logCommandError(err, "ir", fmt.Sprintf("0x%X", code))
	}
}

// RFPoller drains a 433 MHz receiver into a command program.
type RFPoller struct {
	rx      Receiver
	program decoder.Program
	updates UpdateState

	lastCode uint32
	lastAt   time.Time
}

// NewRFPoller creates an RF poller.
func NewRFPoller(rx Receiver, program decoder.Program, updates UpdateState) *RFPoller {
	return &RFPoller{rx: rx, program: program, updates: updates}
}

// LastCode returns the last accepted code.
func (p *RFPoller) LastCode() uint32 { return p.lastCode }

// Handle runs at most one received code. Nothing is read while a frame is
// being sent.
func (p *RFPoller) Handle(now time.Time) {
	if p.updates != nil && p.updates.IsUpdating() {
		return
	}
	code, ok := p.rx.Poll()
	if !ok {
		return
	}
	// Long presses resend the same code; limit them.
	if code == p.lastCode && now.Sub(p.lastAt) < DuplicateWindow {
		return
	}
	p.lastCode = code
	p.lastAt = now

	log.Debug().Uint32("code", code).Msg("RF433 received")

	if _, err := p.program.Dispatch(code); err != nil {
		if errors.Is(err, jsoncmd.ErrCodeNotMapped) || errors.Is(err, jsoncmd.ErrFileMissing) {
			log.Debug().Uint32("code", code).Msg("RF433 unknown button")
			return
		}
		logCommandError(err, "rf433", fmt.Sprint(code))
	}
}

func logCommandError(err error, source, code string) {
	switch {
	case errors.Is(err, jsoncmd.ErrFileMissing), errors.Is(err, jsoncmd.ErrPresetIDOutOfRange):
		log.Warn().Err(err).Str("source", source).Str("code", code).Msg("Remote command failed")
	default:
		log.Debug().Err(err).Str("source", source).Str("code", code).Msg("Remote command not run")
	}
}
