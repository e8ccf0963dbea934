package service

import (
	"context"
	"sync"

	"cryptoledger/internal/core/domain"
	"cryptoledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// Dispatcher fans committed ledger events out to registered subscribers.
// Delivery is at-least-once and strictly post-commit: callers hand it the
// ChangeSet the transactor returned, never one from an open transaction.
// A failing subscriber is logged as undelivered and not retried here;
// subscribers needing stronger guarantees sit behind a durable channel
// such as the NATS adapter.
type Dispatcher struct {
	mu   sync.RWMutex
	subs []ports.EventSubscriber
	log  zerolog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(log zerolog.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Register adds a subscriber. Safe for concurrent use.
func (d *Dispatcher) Register(s ports.EventSubscriber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, s)
	d.log.Info().Str("subscriber", s.Name()).Msg("event subscriber registered")
}

// Dispatch delivers every event in the change set to every subscriber, in
// record order.
func (d *Dispatcher) Dispatch(ctx context.Context, changes *domain.ChangeSet) {
	if changes == nil || changes.Empty() {
		return
	}

	d.mu.RLock()
	subs := d.subs
	d.mu.RUnlock()

	for _, e := range changes.Events() {
		if len(subs) == 0 {
			d.log.Warn().Str("event", e.Type).Msg("no subscribers registered, event dropped")
			continue
		}
		for _, sub := range subs {
			if err := sub.Receive(ctx, e); err != nil {
				d.log.Error().
					Err(err).
					Str("subscriber", sub.Name()).
					Str("event", e.Type).
					Str("txid", e.TxID).
					Msg("event delivery failed")
			}
		}
	}
}

var _ ports.EventDispatcher = (*Dispatcher)(nil)
