// Package gpio turns local push buttons on GPIO lines into remote button presses.
package gpio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	gpiod "github.com/warthog618/go-gpiocdev"
)

// Presser receives button presses.
type Presser interface {
	Press(button uint8)
}

// Button maps a GPIO line to a remote button id.
type Button struct {
	Name     string
	Pin      int
	ID       uint8
	PullUp   bool
	Inverted bool // active low
}

// Buttons watches a set of GPIO lines.
type Buttons struct {
	mu    sync.Mutex
	chip  *gpiod.Chip
	lines []*gpiod.Line
}

// Open requests every button line on chipName and forwards debounced presses
// to p. Line events arrive on a gpiocdev goroutine; p must be safe for
// concurrent use.
func Open(chipName string, buttons []Button, debounce time.Duration, p Presser) (*Buttons, error) {
	chip, err := gpiod.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open chip %s: %w", chipName, err)
	}
	b := &Buttons{chip: chip}

	for _, btn := range buttons {
		w := newWatcher(btn, debounce, p)
		opts := []gpiod.LineReqOption{
			gpiod.AsInput,
			gpiod.WithBothEdges,
			gpiod.WithEventHandler(w.handle),
		}
		if btn.PullUp {
			opts = append(opts, gpiod.WithPullUp)
		}
		line, err := chip.RequestLine(btn.Pin, opts...)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request input pin %d: %w", btn.Pin, err)
		}
		b.lines = append(b.lines, line)
		log.Info().Str("name", btn.Name).Int("pin", btn.Pin).Uint8("button", btn.ID).Msg("GPIO button ready")
	}
	return b, nil
}

// Close releases all lines and the chip.
func (b *Buttons) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	for _, line := range b.lines {
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close input line: %w", err))
		}
	}
	b.lines = nil
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		b.chip = nil
	}
	return errors.Join(errs...)
}

// watcher debounces one line. Every edge updates the line state; a press is
// forwarded when the line becomes active at least the debounce time after
// the previous forwarded press.
type watcher struct {
	btn      Button
	debounce time.Duration
	presser  Presser
	now      func() time.Time

	mu        sync.Mutex
	pressed   bool
	lastPress time.Time
}

func newWatcher(btn Button, debounce time.Duration, p Presser) *watcher {
	return &watcher{btn: btn, debounce: debounce, presser: p, now: time.Now}
}

func (w *watcher) handle(evt gpiod.LineEvent) {
	if w.edge(evt.Type, w.now()) {
		log.Debug().Str("name", w.btn.Name).Uint8("button", w.btn.ID).Msg("GPIO button pressed")
		w.presser.Press(w.btn.ID)
	}
}

// edge records an edge and reports whether it is a new press.
func (w *watcher) edge(t gpiod.LineEventType, now time.Time) bool {
	pressed := isPressedFromEdge(t, w.btn.Inverted)

	w.mu.Lock()
	defer w.mu.Unlock()
	if pressed == w.pressed {
		return false
	}
	w.pressed = pressed
	if !pressed || now.Sub(w.lastPress) < w.debounce {
		return false
	}
	w.lastPress = now
	return true
}

func isPressedFromEdge(t gpiod.LineEventType, inverted bool) bool {
	if inverted {
		return t == gpiod.LineEventFallingEdge
	}
	return t == gpiod.LineEventRisingEdge
}
