package domain

import (
	"time"

	"github.com/google/uuid"
)

// NetworkTransactionDirection tells whether funds entered or left the wallet.
type NetworkTransactionDirection string

const (
	DirectionIncoming NetworkTransactionDirection = "INCOMING"
	DirectionOutgoing NetworkTransactionDirection = "OUTGOING"
)

// NetworkTransactionState is derived from confirmations and the threshold.
type NetworkTransactionState string

const (
	StatePending    NetworkTransactionState = "PENDING"
	StateConfirming NetworkTransactionState = "CONFIRMING"
	StateSettled    NetworkTransactionState = "SETTLED"
)

// NetworkTransaction records one entry on the external network: an outgoing
// broadcast or an incoming deposit.
//
// Outgoing lifecycle: created -> OpenedAt committed -> backend send attempted
// -> TxID and ClosedAt committed -> confirmations advance -> terminal.
// A row with OpenedAt set and ClosedAt unset after a restart is ambiguous:
// the broadcast may or may not have reached the network. That is a durable,
// queryable state requiring reconciliation, not an error.
type NetworkTransaction struct {
	ID        uuid.UUID                   `json:"id"`
	WalletID  uuid.UUID                   `json:"wallet_id"`
	Direction NetworkTransactionDirection `json:"direction"`
	// TxID is the network transaction id; nil until known. For outgoing
	// rows it is set only when the backend confirms the send.
	TxID *string `json:"txid,omitempty"`
	// AddressID is the receiving address for incoming rows.
	AddressID *uuid.UUID `json:"address_id,omitempty"`
	// TargetAddress is the external destination for outgoing rows.
	TargetAddress string `json:"target_address,omitempty"`
	Amount        int64  `json:"amount"` // smallest unit
	// Confirmations advance monotonically; lower or equal updates are no-ops.
	Confirmations int        `json:"confirmations"`
	OpenedAt      *time.Time `json:"opened_at,omitempty"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	// Terminal rows have reached the confirmation threshold and are
	// excluded from polling forever.
	Terminal  bool      `json:"terminal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State reports where the row is in the pending -> confirming -> settled
// machine for the given confirmation threshold.
func (n *NetworkTransaction) State(threshold int) NetworkTransactionState {
	switch {
	case n.Terminal || n.Confirmations >= threshold:
		return StateSettled
	case n.Confirmations > 0:
		return StateConfirming
	default:
		return StatePending
	}
}

// IsAmbiguous reports whether a broadcast was opened but never closed:
// the send may or may not have reached the network. Such rows are never
// retried automatically without explicit classification.
func (n *NetworkTransaction) IsAmbiguous() bool {
	return n.Direction == DirectionOutgoing && n.OpenedAt != nil && n.ClosedAt == nil
}

// PendingBroadcast reports whether the row still waits for its first
// broadcast attempt.
func (n *NetworkTransaction) PendingBroadcast() bool {
	return n.Direction == DirectionOutgoing && n.OpenedAt == nil
}

// Reference is the deterministic identity handed to the chain backend with
// every send, so an interrupted broadcast can later be looked up or replayed
// idempotently.
func (n *NetworkTransaction) Reference() string {
	return n.ID.String()
}
