// Package transport polls remote receivers from the main loop and feeds the
// received codes into their decoders.
package transport

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Receiver is a non-blocking source of raw remote codes.
type Receiver interface {
	// Poll returns the next received code, or false if none is waiting.
	Poll() (uint32, bool)
}

// QueueReceiver is a bounded Receiver fed by other goroutines (MQTT
// subscriptions, HTTP handlers, GPIO watchers, tests).
type QueueReceiver struct {
	ch      chan uint32
	dropped atomic.Uint64
}

// NewQueueReceiver creates a receiver holding up to size codes.
func NewQueueReceiver(size int) *QueueReceiver {
	if size <= 0 {
		size = 16
	}
	return &QueueReceiver{ch: make(chan uint32, size)}
}

// Push enqueues a code. It never blocks; when the queue is full the code is
// dropped and false is returned.
func (q *QueueReceiver) Push(code uint32) bool {
	select {
	case q.ch <- code:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Poll implements Receiver.
func (q *QueueReceiver) Poll() (uint32, bool) {
	select {
	case code := <-q.ch:
		return code, true
	default:
		return 0, false
	}
}

// Len returns the number of queued codes.
func (q *QueueReceiver) Len() int { return len(q.ch) }

// Dropped returns how many codes were discarded because the queue was full.
func (q *QueueReceiver) Dropped() uint64 { return q.dropped.Load() }

// ParseCode parses a textual code: hex with a 0x prefix, or decimal.
func ParseCode(payload []byte) (uint32, error) {
	s := strings.TrimSpace(string(payload))
	var (
		v   uint64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 32)
	} else {
		v, err = strconv.ParseUint(s, 10, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid code %q: %w", s, err)
	}
	return uint32(v), nil
}
