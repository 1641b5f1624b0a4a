package app

import (
	"context"
	"time"

	"github.com/dokzlo13/ledremote/internal/remote"
	"github.com/dokzlo13/ledremote/internal/transport"
)

// Loop is the single goroutine that owns the strip. Receivers and the button
// adapter only queue input; every state change happens inside Tick.
type Loop struct {
	ir     *transport.IRPoller
	rf     *transport.RFPoller
	remote *remote.Adapter
}

// Tick polls every enabled input once.
func (l *Loop) Tick(now time.Time) {
	if l.ir != nil {
		l.ir.Handle(now)
	}
	if l.rf != nil {
		l.rf.Handle(now)
	}
	if l.remote != nil {
		l.remote.Handle()
	}
}

// Run ticks every interval until ctx is cancelled.
func (l *Loop) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Tick(now)
		}
	}
}
