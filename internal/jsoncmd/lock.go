package jsoncmd

import (
	"sync"
	"sync/atomic"
)

// Module ids identify the holder of the buffer lock in logs.
const (
	ModuleIR     uint8 = 13
	ModuleRemote uint8 = 22
	ModuleLua    uint8 = 30
)

// BufferLock guards the shared command buffer. Acquisition never blocks.
type BufferLock struct {
	mu    sync.Mutex
	owner atomic.Int32 // module id, -1 when free
}

// NewBufferLock creates an unlocked lock.
func NewBufferLock() *BufferLock {
	l := &BufferLock{}
	l.owner.Store(-1)
	return l
}

// TryAcquire takes the lock for moduleID, or returns false if it is held.
func (l *BufferLock) TryAcquire(moduleID uint8) bool {
	if !l.mu.TryLock() {
		return false
	}
	l.owner.Store(int32(moduleID))
	return true
}

// Release frees the lock.
func (l *BufferLock) Release() {
	l.owner.Store(-1)
	l.mu.Unlock()
}

// Owner returns the module id holding the lock.
func (l *BufferLock) Owner() (uint8, bool) {
	o := l.owner.Load()
	if o < 0 {
		return 0, false
	}
	return uint8(o), true
}
