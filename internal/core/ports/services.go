package ports

import (
	"context"
	"time"

	"cryptoledger/internal/core/domain"

	"github.com/google/uuid"
)

// DepositNotice carries one inbound transfer observation, whether pushed by
// the backend's notification channel or discovered by a rescan. The pair
// (Address, TxID) is the idempotency key: re-delivery is absorbed silently.
type DepositNotice struct {
	Address       string
	TxID          string
	Amount        int64 // smallest unit
	Confirmations int
}

// LedgerService is the public surface of the ledger entity model. Every
// mutation runs inside the conflict-resolving transaction wrapper.
type LedgerService interface {
	CreateAccount(ctx context.Context, name string) (*domain.Account, error)
	GetOrCreateAccount(ctx context.Context, name string) (*domain.Account, error)
	CreateReceivingAddress(ctx context.Context, accountID uuid.UUID) (*domain.Address, error)
	// Send routes to SendInternal when the target address belongs to this
	// wallet, otherwise to SendExternal.
	Send(ctx context.Context, fromAccountID uuid.UUID, targetAddress string, amount int64, note string) (*domain.Transaction, error)
	SendInternal(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount int64, note string) (*domain.Transaction, error)
	SendExternal(ctx context.Context, fromAccountID uuid.UUID, targetAddress string, amount int64, note string) (*domain.Transaction, error)
	CreditDeposit(ctx context.Context, notice DepositNotice) (*domain.NetworkTransaction, error)
	MarkProcessed(ctx context.Context, transactionID uuid.UUID) error
	// Read side
	GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListAccountTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, error)
}

// EventSubscriber receives ledger events after the originating transaction
// has committed. Delivery is at-least-once; a subscriber returning an error
// is logged as undelivered and not retried by the dispatcher.
type EventSubscriber interface {
	Name() string
	Receive(ctx context.Context, e domain.Event) error
}

// EventDispatcher fans committed changes out to registered subscribers.
type EventDispatcher interface {
	Register(s EventSubscriber)
	Dispatch(ctx context.Context, changes *domain.ChangeSet)
}

// DedupCache is the best-effort fast path for absorbing duplicate deposit
// notifications before touching the store. The store-level idempotency of
// CreditDeposit remains authoritative; cache errors are never fatal.
//
// Seen only reads; Mark records. A notice must be marked only after its
// store transaction has committed, so a failed credit stays retryable.
type DedupCache interface {
	// Seen reports whether the key has been marked.
	Seen(ctx context.Context, key string) (bool, error)
	// Mark records the key for the given TTL.
	Mark(ctx context.Context, key string, ttl time.Duration) error
}
