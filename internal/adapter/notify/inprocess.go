package notify

import (
	"context"

	"cryptoledger/internal/core/domain"
)

// InProcess delivers events to a Go callback in the same process. This is
// the cheapest subscriber for applications embedding the ledger directly.
type InProcess struct {
	name string
	fn   func(ctx context.Context, e domain.Event) error
}

// NewInProcess wraps a callback as an event subscriber.
func NewInProcess(name string, fn func(ctx context.Context, e domain.Event) error) *InProcess {
	return &InProcess{name: name, fn: fn}
}

func (s *InProcess) Name() string {
	return s.name
}

func (s *InProcess) Receive(ctx context.Context, e domain.Event) error {
	return s.fn(ctx, e)
}
