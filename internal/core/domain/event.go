package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event types delivered to subscribers.
const (
	EventDepositReceived    = "DEPOSIT_RECEIVED"
	EventConfirmationUpdate = "CONFIRMATION_UPDATE"
	EventBroadcastSettled   = "BROADCAST_SETTLED"
)

// Event is the record delivered to notification subscribers for every
// committed ledger change.
type Event struct {
	Type          string     `json:"type"`
	Asset         string     `json:"asset"`
	WalletID      uuid.UUID  `json:"wallet"`
	AccountID     *uuid.UUID `json:"account,omitempty"`
	Address       string     `json:"address,omitempty"`
	TxID          string     `json:"network_txid,omitempty"`
	Amount        int64      `json:"amount"`
	Confirmations int        `json:"confirmations"`
	Timestamp     time.Time  `json:"timestamp"`
}

// ChangeSet collects the entity changes made by one unit of work. The
// transaction wrapper hands a fresh ChangeSet to every attempt and returns
// it to the caller only after the commit succeeds, so events buffered here
// can never describe state that was rolled back by a conflict retry.
type ChangeSet struct {
	events []Event
}

// Record buffers an event for post-commit dispatch. The timestamp is
// stamped here if the caller left it zero.
func (c *ChangeSet) Record(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	c.events = append(c.events, e)
}

// Events returns the buffered events in record order.
func (c *ChangeSet) Events() []Event {
	return c.events
}

// Empty reports whether the unit of work recorded no changes.
func (c *ChangeSet) Empty() bool {
	return len(c.events) == 0
}
