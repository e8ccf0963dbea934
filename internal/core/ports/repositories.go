package ports

import (
	"context"
	"time"

	"cryptoledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repositories operate on one asset's table-set. Methods accepting pgx.Tx
// run inside a serializable unit of work (see Transactor); they rely on the
// store's isolation level only and take no row locks of their own. Methods
// without a pgx.Tx are plain pool reads for display purposes and give
// weaker guarantees.

// WalletRepository defines persistence operations for the asset wallet.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error
	GetByAsset(ctx context.Context, asset string) (*domain.Wallet, error)
	GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	// AdjustBalance adds delta (possibly negative) to the wallet balance.
	AdjustBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) error
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx pgx.Tx, a *domain.Account) error
	GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)
	GetByName(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, name string) (*domain.Account, error)
	// AdjustBalance adds delta to the account balance and returns the new
	// balance so the caller can assert the non-negative invariant.
	AdjustBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) (int64, error)
	// Read-side queries
	Get(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	List(ctx context.Context, walletID uuid.UUID) ([]domain.Account, error)
	SumBalances(ctx context.Context, walletID uuid.UUID) (int64, error)
}

// AddressRepository defines persistence operations for receiving addresses.
type AddressRepository interface {
	Create(ctx context.Context, tx pgx.Tx, a *domain.Address) error
	GetByAddress(ctx context.Context, tx pgx.Tx, address string) (*domain.Address, error)
	AddReceived(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) error
	// ListActive returns all non-archived receiving addresses; the rescan
	// pass walks this set.
	ListActive(ctx context.Context, walletID uuid.UUID) ([]domain.Address, error)
}

// TransactionRepository defines persistence operations for ledger movements.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	MarkProcessed(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, error)
}

// NetworkTransactionRepository defines persistence for network send/receive
// records and their broadcast bookkeeping.
type NetworkTransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, n *domain.NetworkTransaction) error
	GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.NetworkTransaction, error)
	// GetIncoming looks up an incoming record by its idempotency key
	// (network txid + receiving address).
	GetIncoming(ctx context.Context, tx pgx.Tx, txid string, addressID uuid.UUID) (*domain.NetworkTransaction, error)
	// Open stamps opened_at on a row that has never been opened. Returns
	// false when the row was already opened (another broadcaster won).
	Open(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (bool, error)
	// Close stamps the network txid and closed_at after a confirmed send.
	Close(ctx context.Context, tx pgx.Tx, id uuid.UUID, txid string, at time.Time) error
	// Reopen clears opened_at on a broadcast classified as lost, making the
	// row eligible for another attempt.
	Reopen(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	// UpdateConfirmations advances the confirmation count. The update is
	// monotonic: rows are only moved forward, duplicate or out-of-order
	// counts are no-ops. Returns true when the row actually changed.
	UpdateConfirmations(ctx context.Context, tx pgx.Tx, id uuid.UUID, confirmations int, terminal bool) (bool, error)
	// Poll-set queries (pool reads; each row is then handled in its own
	// serializable unit of work).
	ListPendingBroadcast(ctx context.Context, walletID uuid.UUID) ([]domain.NetworkTransaction, error)
	ListAmbiguous(ctx context.Context, walletID uuid.UUID) ([]domain.NetworkTransaction, error)
	ListUnsettled(ctx context.Context, walletID uuid.UUID) ([]domain.NetworkTransaction, error)
}

// UnitOfWork is a function replayed verbatim on serialization conflict.
// It must not have side effects outside the store: no network calls, no
// event delivery. Changes are recorded on the ChangeSet, which the wrapper
// hands back only after a successful commit.
type UnitOfWork func(ctx context.Context, tx pgx.Tx, changes *domain.ChangeSet) error

// Transactor executes units of work at serializable isolation, retrying
// serialization failures with randomized backoff up to a bound. It is the
// only sanctioned way ledger state is mutated.
type Transactor interface {
	RunSerializable(ctx context.Context, fn UnitOfWork) (*domain.ChangeSet, error)
}
