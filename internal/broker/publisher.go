package broker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/dokzlo13/ledremote/internal/eventbus"
)

// StatePublisher publishes the latest strip state on <prefix>/state. Bursts
// of notifications are coalesced: only the newest state waiting when the
// rate limiter allows a publish is sent.
type StatePublisher struct {
	pub     Publisher
	topic   string
	limiter *rate.Limiter

	mu      sync.Mutex
	pending map[string]interface{}
	latest  time.Time
	trigger chan struct{}
}

// NewStatePublisher creates a publisher allowing at most rps publishes per second.
func NewStatePublisher(pub Publisher, prefix string, rps float64) *StatePublisher {
	if rps <= 0 {
		rps = 5
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &StatePublisher{
		pub:     pub,
		topic:   Topic(prefix, TopicState),
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		trigger: make(chan struct{}, 1),
	}
}

// Subscribe registers the publisher for state-updated events.
func (p *StatePublisher) Subscribe(bus *eventbus.Bus) {
	bus.Subscribe(eventbus.EventTypeStateUpdated, p.Handle)
}

// Handle queues the state carried by a state-updated event.
func (p *StatePublisher) Handle(e eventbus.Event) {
	state, ok := e.Data[eventbus.KeyState]
	if !ok {
		return
	}
	msg := map[string]interface{}{
		"id":        e.ID,
		"call_mode": e.Data[eventbus.KeyCallMode],
		"source":    e.Data[eventbus.KeySource],
		"state":     state,
	}

	p.mu.Lock()
	// Bus workers may deliver events out of order.
	if e.Timestamp.Before(p.latest) {
		p.mu.Unlock()
		return
	}
	p.pending = msg
	p.latest = e.Timestamp
	p.mu.Unlock()

	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Run publishes queued states until ctx is cancelled.
func (p *StatePublisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.trigger:
		}

		if err := p.limiter.Wait(ctx); err != nil {
			return
		}

		p.mu.Lock()
		msg := p.pending
		p.pending = nil
		p.mu.Unlock()
		if msg == nil {
			continue
		}

		if err := p.pub.Publish(p.topic, 0, true, msg); err != nil {
			log.Warn().Err(err).Str("topic", p.topic).Msg("Failed to publish state")
		}
	}
}
