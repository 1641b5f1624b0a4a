package app

import (
	"context"
	"sync"

	"github.com/spf13/afero"

	"github.com/dokzlo13/ledremote/internal/jsoncmd"
	luart "github.com/dokzlo13/ledremote/internal/lua"
	"github.com/dokzlo13/ledremote/internal/lua/modules"
)

// LuaService wraps the Lua runtime used by the "lua" remote family.
type LuaService struct {
	Runtime *luart.Runtime
	fs      afero.Fs
	script  string
	wg      sync.WaitGroup
}

// NewLuaService creates a new LuaService.
func NewLuaService(fs afero.Fs, script string, actions modules.Actions, state modules.Snapshotter, lock *jsoncmd.BufferLock) *LuaService {
	return &LuaService{
		Runtime: luart.NewRuntime(luart.Deps{Actions: actions, State: state, Lock: lock}),
		fs:      fs,
		script:  script,
	}
}

// LoadScript loads and executes the Lua script. Must be called before Start.
func (s *LuaService) LoadScript() error {
	return s.Runtime.LoadScript(s.fs, s.script)
}

// Start begins the Lua worker goroutine.
func (s *LuaService) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Runtime.Run(ctx)
	}()
}

// Close waits for the worker to exit and closes the runtime. The context
// passed to Start must be cancelled first.
func (s *LuaService) Close() {
	s.wg.Wait()
	s.Runtime.Close()
}
