// Package stateapi applies externally described state to the strip: the
// query-string "win&..." API, JSON state documents and presets.
//
// The API is not safe for concurrent use. It runs on the main loop together
// with the action engine.
package stateapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/preset"
	"github.com/dokzlo13/ledremote/internal/strip"
)

// ErrInvalidState is returned for state documents that are not JSON objects.
var ErrInvalidState = errors.New("invalid state document")

// API applies state changes to a strip and manages presets.
type API struct {
	strip    *strip.Strip
	presets  preset.Store
	notifier strip.Notifier
	now      func() time.Time
}

// New creates a state API. presets may be nil, in which case every preset is missing.
func New(s *strip.Strip, presets preset.Store, notifier strip.Notifier) *API {
	return &API{
		strip:    s,
		presets:  presets,
		notifier: notifier,
		now:      time.Now,
	}
}

func (a *API) notify(mode strip.CallMode) {
	if a.notifier != nil {
		a.notifier.StateUpdated(mode)
	}
}

// ApplyPreset loads a stored preset. It returns false if the preset does not exist.
func (a *API) ApplyPreset(id uint8, mode strip.CallMode) bool {
	return a.applyPreset(id, mode, 0)
}

func (a *API) applyPreset(id uint8, mode strip.CallMode, depth int) bool {
	if a.presets == nil {
		return false
	}
	p, err := a.presets.Get(id)
	if err != nil {
		log.Error().Err(err).Uint8("preset", id).Msg("Failed to load preset")
		return false
	}
	if p == nil {
		log.Debug().Uint8("preset", id).Msg("Preset not found")
		return false
	}
	if err := a.deserialize(p.State, mode, depth+1); err != nil {
		log.Error().Err(err).Uint8("preset", id).Msg("Stored preset is invalid")
		return false
	}
	return true
}

// ApplyPresetWithFallback loads a stored preset, or sets the given effect and
// palette on the selected segments if it does not exist.
func (a *API) ApplyPresetWithFallback(id uint8, mode strip.CallMode, effect, palette uint8) {
	if a.ApplyPreset(id, mode) {
		return
	}
	a.eachTarget(-1, func(seg *strip.Segment) {
		seg.SetMode(effect)
		seg.SetPalette(palette)
	})
	a.mirror()
	a.notify(mode)
}

// SavePreset stores the current state under id.
func (a *API) SavePreset(id int, name string) error {
	if id < preset.MinID || id > preset.MaxID {
		return fmt.Errorf("%w: %d", preset.ErrInvalidID, id)
	}
	if a.presets == nil {
		return errors.New("no preset store configured")
	}
	data, err := json.Marshal(a.strip.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return a.presets.Save(preset.Preset{ID: uint8(id), Name: name, State: data})
}

// eachTarget calls fn for segment id, or for every selected segment when id
// is negative. Unknown ids are ignored.
func (a *API) eachTarget(id int, fn func(seg *strip.Segment)) {
	if id >= 0 {
		if id < a.strip.SegmentCount() {
			fn(a.strip.Segment(id))
		}
		return
	}
	matched := false
	for i := 0; i < a.strip.SegmentCount(); i++ {
		seg := a.strip.Segment(i)
		if seg.Active && seg.Selected {
			fn(seg)
			matched = true
		}
	}
	if !matched {
		fn(a.strip.MainSegment())
	}
}

// mirror copies the first selected segment into the global state.
func (a *API) mirror() {
	a.strip.SetValuesFromSegment(a.strip.Segment(a.strip.FirstSelectedSegmentID()))
	a.strip.StateChanged = true
}

func (a *API) turnOn() {
	if a.strip.Bri == 0 {
		a.strip.Bri = a.strip.BriLast
		a.strip.RestartRuntime()
	}
}

func (a *API) turnOff() {
	if a.strip.Bri != 0 {
		a.strip.BriLast = a.strip.Bri
		a.strip.Bri = 0
	}
}

func (a *API) setBrightness(bri uint8) {
	if bri == 0 {
		a.turnOff()
		return
	}
	if a.strip.Bri == 0 {
		a.strip.RestartRuntime()
	}
	a.strip.Bri = bri
}
