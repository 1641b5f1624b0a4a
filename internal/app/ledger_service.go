package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/eventbus"
	"github.com/dokzlo13/ledremote/internal/ledger"
)

// LedgerService records bus events in the ledger and prunes old entries.
type LedgerService struct {
	ledger    *ledger.Ledger
	interval  time.Duration
	retention time.Duration
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(l *ledger.Ledger, interval, retention time.Duration) *LedgerService {
	return &LedgerService{ledger: l, interval: interval, retention: retention}
}

// Subscribe registers the ledger for state, code and button events.
func (s *LedgerService) Subscribe(bus *eventbus.Bus) {
	bus.Subscribe(eventbus.EventTypeStateUpdated, func(e eventbus.Event) {
		s.record(ledger.EventStateUpdated, e, e.Data[eventbus.KeyState])
	})
	bus.Subscribe(eventbus.EventTypeCode, func(e eventbus.Event) {
		s.record(ledger.EventCode, e, e.Data)
	})
	bus.Subscribe(eventbus.EventTypeButton, func(e eventbus.Event) {
		s.record(ledger.EventButton, e, e.Data)
	})
}

func (s *LedgerService) record(t ledger.EventType, e eventbus.Event, payload any) {
	callMode, _ := e.Data[eventbus.KeyCallMode].(string)
	source, _ := e.Data[eventbus.KeySource].(string)
	if err := s.ledger.Append(e.ID, t, e.Timestamp, callMode, source, payload); err != nil {
		log.Error().Err(err).Str("event_id", e.ID).Str("type", string(t)).Msg("Failed to append ledger entry")
	}
}

// Start runs the periodic cleanup until ctx is cancelled.
func (s *LedgerService) Start(ctx context.Context) {
	go s.runCleanup(ctx)
}

func (s *LedgerService) runCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *LedgerService) cleanup() {
	deleted, err := s.ledger.DeleteOlderThan(s.retention)
	if err != nil {
		log.Error().Err(err).Msg("Failed to cleanup old ledger entries")
	} else if deleted > 0 {
		log.Info().Int64("deleted", deleted).Dur("retention", s.retention).Msg("Cleaned up old ledger entries")
	}
}
