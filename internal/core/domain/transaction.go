package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes ledger movements that stay inside one wallet
// from movements crossing the wallet boundary.
type TransactionType string

const (
	// TransactionTypeInternal moves funds between two accounts of the same
	// wallet. Fully synchronous, never touches the network.
	TransactionTypeInternal TransactionType = "INTERNAL"
	// TransactionTypeExternal is tied to a NetworkTransaction: an outgoing
	// withdrawal or an incoming deposit.
	TransactionTypeExternal TransactionType = "EXTERNAL"
	// TransactionTypeFee records network fees charged on a broadcast against
	// the wallet's fee account.
	TransactionTypeFee TransactionType = "FEE"
)

// Transaction is an immutable internal ledger movement record.
//
// Invariant: a Transaction debiting an account is created in the same
// database transaction that decremented that account's balance; there is
// no balance change without a ledger row and vice versa.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	WalletID        uuid.UUID       `json:"wallet_id"`
	Type            TransactionType `json:"type"`
	Amount          int64           `json:"amount"` // smallest unit, always positive
	DebitAccountID  *uuid.UUID      `json:"debit_account_id,omitempty"`
	CreditAccountID *uuid.UUID      `json:"credit_account_id,omitempty"`
	// NetworkTransactionID links external movements to their network record.
	NetworkTransactionID *uuid.UUID `json:"network_transaction_id,omitempty"`
	Note                 string     `json:"note,omitempty"`
	// Processed is set by the application once it has handled the
	// transaction; processed deposits are no longer re-announced.
	Processed bool      `json:"processed"`
	CreatedAt time.Time `json:"created_at"`
}

// IsDeposit reports whether this is an inbound external movement.
func (t *Transaction) IsDeposit() bool {
	return t.Type == TransactionTypeExternal && t.DebitAccountID == nil && t.CreditAccountID != nil
}

// IsWithdrawal reports whether this is an outbound external movement.
func (t *Transaction) IsWithdrawal() bool {
	return t.Type == TransactionTypeExternal && t.DebitAccountID != nil && t.CreditAccountID == nil
}
