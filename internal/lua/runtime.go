// Package lua runs the scripted remote family: a Lua script binds remote
// codes to functions that drive the strip.
package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/ledremote/internal/jsoncmd"
	"github.com/dokzlo13/ledremote/internal/lua/modules"
)

// ErrRuntimeClosed is returned when the Lua runtime is closed
var ErrRuntimeClosed = errors.New("lua runtime closed")

// DefaultCallTimeout bounds how long Dispatch waits for the worker.
const DefaultCallTimeout = time.Second

// Work item states.
const (
	workPending int32 = iota
	workRunning
	workCancelled
)

// work is a call executed on the Lua worker goroutine under its own context.
type work struct {
	ctx   context.Context
	fn    func(ctx context.Context, L *lua.LState) error
	state atomic.Int32
	done  chan error
}

// Deps groups what the script modules need.
type Deps struct {
	Actions modules.Actions
	State   modules.Snapshotter
	// Lock is the command buffer lock shared with the JSON command runtime.
	Lock        *jsoncmd.BufferLock
	CallTimeout time.Duration
}

// Runtime owns the Lua VM. Only the goroutine in Run touches it once the
// script is loaded.
type Runtime struct {
	L           *lua.LState
	lock        *jsoncmd.BufferLock
	remote      *modules.RemoteModule
	callTimeout time.Duration

	workQueue chan *work
	closing   chan struct{}
	closeOnce sync.Once
}

// NewRuntime creates a runtime with the log, remote and led modules preloaded.
func NewRuntime(deps Deps) *Runtime {
	if deps.Lock == nil {
		deps.Lock = jsoncmd.NewBufferLock()
	}
	if deps.CallTimeout <= 0 {
		deps.CallTimeout = DefaultCallTimeout
	}

	r := &Runtime{
		L:           lua.NewState(),
		lock:        deps.Lock,
		remote:      modules.NewRemoteModule(),
		callTimeout: deps.CallTimeout,
		workQueue:   make(chan *work, 16),
		closing:     make(chan struct{}),
	}

	r.L.PreloadModule("log", modules.NewLogModule().Loader)
	r.L.PreloadModule("remote", r.remote.Loader)
	r.L.PreloadModule("led", modules.NewLedModule(deps.Actions, deps.State).Loader)
	return r
}

// LoadScript reads name from fs and executes it. Must be called before Run.
func (r *Runtime) LoadScript(fs afero.Fs, name string) error {
	src, err := afero.ReadFile(fs, name)
	if err != nil {
		return fmt.Errorf("read Lua script: %w", err)
	}
	log.Info().Str("path", name).Msg("Loading Lua script")
	if err := r.L.DoString(string(src)); err != nil {
		return fmt.Errorf("failed to execute Lua script: %w", err)
	}
	log.Info().Int("bindings", r.remote.Len()).Msg("Lua script loaded successfully")
	return nil
}

// Dispatch runs the handler bound to code on the worker and reports whether
// it repeats while held. The command buffer lock is held until the handler
// has returned; a handler still running at the call timeout is aborted.
func (r *Runtime) Dispatch(code uint32) (bool, error) {
	if !r.lock.TryAcquire(jsoncmd.ModuleLua) {
		return false, jsoncmd.ErrLockUnavailable
	}
	defer r.lock.Release()

	ctx, cancel := context.WithTimeout(context.Background(), r.callTimeout)
	defer cancel()

	var repeat bool
	err := r.call(ctx, func(_ context.Context, L *lua.LState) error {
		h, ok := r.remote.Handler(code)
		if !ok {
			return jsoncmd.ErrCodeNotMapped
		}
		L.Push(h.Fn)
		L.Push(lua.LNumber(code))
		if err := L.PCall(1, 0, nil); err != nil {
			return fmt.Errorf("lua handler for 0x%X: %w", code, err)
		}
		repeat = h.Repeat
		return nil
	})
	return repeat, err
}

// call queues fn and waits for its result. Once the worker has started fn,
// call returns only after fn does. The script is aborted through ctx.
func (r *Runtime) call(ctx context.Context, fn func(context.Context, *lua.LState) error) error {
	w := &work{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case <-r.closing:
		return ErrRuntimeClosed
	case <-ctx.Done():
		return ctx.Err()
	case r.workQueue <- w:
	}

	var stopErr error
	select {
	case err := <-w.done:
		return err
	case <-ctx.Done():
		stopErr = ctx.Err()
	case <-r.closing:
		stopErr = ErrRuntimeClosed
	}
	if w.state.CompareAndSwap(workPending, workCancelled) {
		return stopErr
	}
	return <-w.done
}

// Run is the Lua worker loop. It exits when ctx is cancelled or the runtime
// is closed.
func (r *Runtime) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.closing:
			return
		case w := <-r.workQueue:
			r.execute(w)
		}
	}
}

func (r *Runtime) execute(w *work) {
	if !w.state.CompareAndSwap(workPending, workRunning) {
		return
	}
	var err error
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("Lua work panicked - worker continuing")
			err = fmt.Errorf("lua work panicked: %v", rec)
		}
		r.L.RemoveContext()
		w.done <- err
	}()
	r.L.SetContext(w.ctx)
	err = w.fn(w.ctx, r.L)
}

// Close stops accepting work and closes the Lua state. Call after Run has
// returned.
func (r *Runtime) Close() {
	r.closeOnce.Do(func() {
		close(r.closing)
	})
	r.L.Close()
}
