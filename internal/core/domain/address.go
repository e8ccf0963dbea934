package domain

import (
	"time"

	"github.com/google/uuid"
)

// Address is a network-visible receiving endpoint bound to exactly one
// Account. Immutable once created; never reused across accounts. It is the
// join key between inbound network deposits and Accounts.
type Address struct {
	ID        uuid.UUID  `json:"id"`
	AccountID uuid.UUID  `json:"account_id"`
	WalletID  uuid.UUID  `json:"wallet_id"`
	Address   string     `json:"address"`  // backend-specific encoding
	Received  int64      `json:"received"` // cumulative credited amount, smallest unit
	CreatedAt time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

// IsArchived reports whether the address has been taken out of rescan and
// deposit monitoring.
func (a *Address) IsArchived() bool {
	return a.ArchivedAt != nil
}
