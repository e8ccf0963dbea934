package domain

import (
	"time"

	"github.com/google/uuid"
)

// NetworkFeeAccountName labels the per-wallet bookkeeping account that
// absorbs network fees charged on outgoing broadcasts.
const NetworkFeeAccountName = "Network fees"

// Account is a named balance bucket inside a Wallet, owned by an
// application-level user or purpose.
//
// Invariant: Balance never goes negative (the fee account is the one
// sanctioned exception, as fees are charged to it before the application
// settles them). Balance mutations commit atomically with the Transaction
// row recording the change.
type Account struct {
	ID        uuid.UUID `json:"id"`
	WalletID  uuid.UUID `json:"wallet_id"`
	Name      string    `json:"name"`
	Balance   int64     `json:"balance"` // smallest unit
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsFeeAccount reports whether this is the wallet's network-fee account.
func (a *Account) IsFeeAccount() bool {
	return a.Name == NetworkFeeAccountName
}
