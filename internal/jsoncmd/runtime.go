// Package jsoncmd runs user-defined remote commands stored in JSON files.
//
// A command file maps remote codes to entries:
//
//	{
//	  "0xFF02FD": {"cmd": "T=2"},
//	  "0xFF3AC5": {"cmd": "!incBri"},
//	  "0xFF1AE5": {"cmd": {"seg": [{"fx": 9}]}},
//	  "0xFF9A65": {"cmd": "!presetFallback", "PL": 3, "FX": 45},
//	  "0xFF0AF5": {"cmd": "A=~16", "rpt": true}
//	}
package jsoncmd

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/dokzlo13/ledremote/internal/strip"
)

// Errors returned by Run.
var (
	ErrLockUnavailable    = errors.New("command buffer is locked")
	ErrFileMissing        = errors.New("command file does not exist")
	ErrCodeNotMapped      = errors.New("code not found in command file")
	ErrCommandHasNoAction = errors.New("command has no action")
	ErrPresetIDOutOfRange = errors.New("preset id out of range")
)

// Result describes a successful run.
type Result int

const (
	ResultOK Result = iota
	// ResultRepeatable tells the caller to repeat the code while the button is held.
	ResultRepeatable
)

func (r Result) String() string {
	if r == ResultRepeatable {
		return "ok-repeatable"
	}
	return "ok"
}

// DefaultBusWait is how long Run waits for an in-flight frame, about one frame.
const DefaultBusWait = 24 * time.Millisecond

// StateAPI applies state described by command entries.
type StateAPI interface {
	HandleSet(req string) bool
	DeserializeState(data []byte, mode strip.CallMode) error
	SavePreset(id int, name string) error
}

// Actions are the engine operations reachable from "!" verbs.
type Actions interface {
	IncBrightness() bool
	DecBrightness() bool
	PresetWithFallback(id, effect, palette uint8)
}

// Options configures a Runtime.
type Options struct {
	ApplyToAllSelected bool
	BusWait            time.Duration
}

// Runtime executes command file entries.
type Runtime struct {
	fs       afero.Fs
	lock     *BufferLock
	strip    *strip.Strip
	state    StateAPI
	actions  Actions
	notifier strip.Notifier
	opts     Options

	intn func(n int) int
	now  func() time.Time
}

// New creates a runtime. Command files are resolved against fs.
func New(fs afero.Fs, lock *BufferLock, s *strip.Strip, state StateAPI, actions Actions, notifier strip.Notifier, intn func(n int) int, opts Options) *Runtime {
	if opts.BusWait <= 0 {
		opts.BusWait = DefaultBusWait
	}
	if lock == nil {
		lock = NewBufferLock()
	}
	if intn == nil {
		intn = rand.Intn
	}
	return &Runtime{
		fs:       fs,
		lock:     lock,
		strip:    s,
		state:    state,
		actions:  actions,
		notifier: notifier,
		opts:     opts,
		intn:     intn,
		now:      time.Now,
	}
}

// Lock returns the buffer lock shared by all callers of this runtime.
func (r *Runtime) Lock() *BufferLock { return r.lock }

// ApplyToAllSelected reports whether commands fan out to all selected segments.
func (r *Runtime) ApplyToAllSelected() bool { return r.opts.ApplyToAllSelected }

// Run looks up key in fileName and executes the entry.
func (r *Runtime) Run(moduleID uint8, fileName, key string) (Result, error) {
	if !r.lock.TryAcquire(moduleID) {
		return ResultOK, ErrLockUnavailable
	}
	locked := true
	release := func() {
		if locked {
			r.lock.Release()
			locked = false
		}
	}
	defer release()

	r.waitForBus()

	entry, err := r.lookup(fileName, key)
	if err != nil {
		return ResultOK, err
	}

	cmd := Parse(entry, ParseOptions{
		ApplyToAllSelected: r.opts.ApplyToAllSelected,
		MainSegment:        r.strip.MainSegmentID(),
	})

	switch c := cmd.(type) {
	case SavePreset:
		if c.ID < 1 || c.ID > 250 {
			return ResultOK, fmt.Errorf("%w: %d", ErrPresetIDOutOfRange, c.ID)
		}
		if err := r.state.SavePreset(c.ID, fmt.Sprintf("IR Preset %d", c.ID)); err != nil {
			return ResultOK, fmt.Errorf("failed to save preset %d: %w", c.ID, err)
		}
		release()
		r.notify(strip.CallModeButtonPreset)
		return ResultOK, nil

	case State:
		release()
		err := r.state.DeserializeState(c.JSON, strip.CallModeButtonPreset)
		if err != nil {
			return ResultOK, fmt.Errorf("failed to apply state for %s: %w", key, err)
		}
		return ResultOK, nil

	case IncBrightness:
		release()
		r.actions.IncBrightness()
		return ResultRepeatable, nil

	case DecBrightness:
		release()
		r.actions.DecBrightness()
		return ResultRepeatable, nil

	case PresetFallback:
		effect := c.Effect
		if effect == RandomEffect {
			effect = 0
			if n := r.strip.ModeCount() - 1; n > 0 {
				effect = r.intn(n)
			}
		}
		release()
		r.actions.PresetWithFallback(c.Preset, uint8(effect), c.Palette)
		return ResultOK, nil

	case Query:
		r.state.HandleSet(c.Fragment)
		release()
		r.notify(strip.CallModeButtonPreset)
		if c.Repeatable {
			return ResultRepeatable, nil
		}
		return ResultOK, nil
	}

	log.Debug().Str("file", fileName).Str("key", key).Msg("Command has no action")
	return ResultOK, ErrCommandHasNoAction
}

// waitForBus gives an in-flight frame a short time to finish before the
// filesystem is touched. It proceeds after the timeout regardless.
func (r *Runtime) waitForBus() {
	start := r.now()
	for r.strip.IsUpdating() && r.now().Sub(start) < r.opts.BusWait {
		runtime.Gosched()
	}
}

func (r *Runtime) lookup(fileName, key string) (gjson.Result, error) {
	data, err := afero.ReadFile(r.fs, fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return gjson.Result{}, fmt.Errorf("%w: %s", ErrFileMissing, fileName)
		}
		return gjson.Result{}, fmt.Errorf("failed to read %s: %w", fileName, err)
	}

	entry := gjson.GetBytes(data, gjson.Escape(key))
	if !entry.IsObject() {
		return gjson.Result{}, ErrCodeNotMapped
	}
	return entry, nil
}

func (r *Runtime) notify(mode strip.CallMode) {
	if r.notifier != nil {
		r.notifier.StateUpdated(mode)
	}
}
