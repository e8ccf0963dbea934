package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is the ledger scope for one asset. It owns Accounts and Addresses
// and is created once per asset at setup; only its children mutate afterwards.
//
// Invariant: Balance equals the sum of its account balances, which in turn
// equals settled deposits minus settled and in-flight withdrawals.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	Asset     string    `json:"asset"`
	Name      string    `json:"name"`
	Balance   int64     `json:"balance"` // smallest unit
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
