package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cryptoledger/internal/core/domain"
	"cryptoledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore holds all ledger state for one asset in plain maps. Entities are
// stored by value so the transactor can snapshot and restore the whole
// store, giving tests real rollback semantics on error paths.
type memStore struct {
	wallets      map[uuid.UUID]domain.Wallet
	accounts     map[uuid.UUID]domain.Account
	addresses    map[uuid.UUID]domain.Address
	transactions map[uuid.UUID]domain.Transaction
	networkTxs   map[uuid.UUID]domain.NetworkTransaction
}

func newMemStore() *memStore {
	return &memStore{
		wallets:      make(map[uuid.UUID]domain.Wallet),
		accounts:     make(map[uuid.UUID]domain.Account),
		addresses:    make(map[uuid.UUID]domain.Address),
		transactions: make(map[uuid.UUID]domain.Transaction),
		networkTxs:   make(map[uuid.UUID]domain.NetworkTransaction),
	}
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for k, v := range s.wallets {
		snap.wallets[k] = v
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	for k, v := range s.addresses {
		snap.addresses[k] = v
	}
	for k, v := range s.transactions {
		snap.transactions[k] = v
	}
	for k, v := range s.networkTxs {
		snap.networkTxs[k] = v
	}
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.wallets = snap.wallets
	s.accounts = snap.accounts
	s.addresses = snap.addresses
	s.transactions = snap.transactions
	s.networkTxs = snap.networkTxs
}

// memTransactor runs units of work against the memStore, restoring the
// snapshot when the unit fails.
type memTransactor struct {
	mu    sync.Mutex
	store *memStore
}

func newMemTransactor(store *memStore) *memTransactor {
	return &memTransactor{store: store}
}

func (t *memTransactor) RunSerializable(ctx context.Context, fn ports.UnitOfWork) (*domain.ChangeSet, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.store.snapshot()
	changes := &domain.ChangeSet{}
	if err := fn(ctx, &noopTx{}, changes); err != nil {
		t.store.restore(snap)
		return nil, err
	}
	return changes, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *noopTx) Conn() *pgx.Conn                                              { return nil }

// --- Wallet repo ---

type memWalletRepo struct{ store *memStore }

func (r *memWalletRepo) Create(_ context.Context, _ pgx.Tx, w *domain.Wallet) error {
	r.store.wallets[w.ID] = *w
	return nil
}

func (r *memWalletRepo) GetByAsset(_ context.Context, asset string) (*domain.Wallet, error) {
	for _, w := range r.store.wallets {
		if w.Asset == asset {
			cp := w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWalletRepo) GetByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	w, ok := r.store.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := w
	return &cp, nil
}

func (r *memWalletRepo) AdjustBalance(_ context.Context, _ pgx.Tx, id uuid.UUID, delta int64) error {
	w, ok := r.store.wallets[id]
	if !ok {
		return fmt.Errorf("wallet not found: %s", id)
	}
	w.Balance += delta
	r.store.wallets[id] = w
	return nil
}

// --- Account repo ---

type memAccountRepo struct{ store *memStore }

func (r *memAccountRepo) Create(_ context.Context, _ pgx.Tx, a *domain.Account) error {
	r.store.accounts[a.ID] = *a
	return nil
}

func (r *memAccountRepo) GetByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := a
	return &cp, nil
}

func (r *memAccountRepo) GetByName(_ context.Context, _ pgx.Tx, walletID uuid.UUID, name string) (*domain.Account, error) {
	for _, a := range r.store.accounts {
		if a.WalletID == walletID && a.Name == name {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAccountRepo) AdjustBalance(_ context.Context, _ pgx.Tx, id uuid.UUID, delta int64) (int64, error) {
	a, ok := r.store.accounts[id]
	if !ok {
		return 0, fmt.Errorf("account not found: %s", id)
	}
	a.Balance += delta
	r.store.accounts[id] = a
	return a.Balance, nil
}

func (r *memAccountRepo) Get(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.GetByID(context.Background(), nil, id)
}

func (r *memAccountRepo) List(_ context.Context, walletID uuid.UUID) ([]domain.Account, error) {
	var out []domain.Account
	for _, a := range r.store.accounts {
		if a.WalletID == walletID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAccountRepo) SumBalances(_ context.Context, walletID uuid.UUID) (int64, error) {
	var sum int64
	for _, a := range r.store.accounts {
		if a.WalletID == walletID {
			sum += a.Balance
		}
	}
	return sum, nil
}

// --- Address repo ---

type memAddressRepo struct{ store *memStore }

func (r *memAddressRepo) Create(_ context.Context, _ pgx.Tx, a *domain.Address) error {
	r.store.addresses[a.ID] = *a
	return nil
}

func (r *memAddressRepo) GetByAddress(_ context.Context, _ pgx.Tx, address string) (*domain.Address, error) {
	for _, a := range r.store.addresses {
		if a.Address == address {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAddressRepo) AddReceived(_ context.Context, _ pgx.Tx, id uuid.UUID, delta int64) error {
	a, ok := r.store.addresses[id]
	if !ok {
		return fmt.Errorf("address not found: %s", id)
	}
	a.Received += delta
	r.store.addresses[id] = a
	return nil
}

func (r *memAddressRepo) ListActive(_ context.Context, walletID uuid.UUID) ([]domain.Address, error) {
	var out []domain.Address
	for _, a := range r.store.addresses {
		if a.WalletID == walletID && a.ArchivedAt == nil {
			out = append(out, a)
		}
	}
	return out, nil
}

// --- Transaction repo ---

type memTransactionRepo struct{ store *memStore }

func (r *memTransactionRepo) Create(_ context.Context, _ pgx.Tx, t *domain.Transaction) error {
	r.store.transactions[t.ID] = *t
	return nil
}

func (r *memTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	t, ok := r.store.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (r *memTransactionRepo) MarkProcessed(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	t, ok := r.store.transactions[id]
	if !ok {
		return fmt.Errorf("transaction not found: %s", id)
	}
	t.Processed = true
	r.store.transactions[id] = t
	return nil
}

func (r *memTransactionRepo) ListByAccount(_ context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range r.store.transactions {
		if (t.DebitAccountID != nil && *t.DebitAccountID == accountID) ||
			(t.CreditAccountID != nil && *t.CreditAccountID == accountID) {
			out = append(out, t)
		}
	}
	return out, nil
}

// --- Network transaction repo ---

type memNetworkTxRepo struct{ store *memStore }

func (r *memNetworkTxRepo) Create(_ context.Context, _ pgx.Tx, n *domain.NetworkTransaction) error {
	r.store.networkTxs[n.ID] = *n
	return nil
}

func (r *memNetworkTxRepo) GetByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.NetworkTransaction, error) {
	n, ok := r.store.networkTxs[id]
	if !ok {
		return nil, nil
	}
	cp := n
	return &cp, nil
}

func (r *memNetworkTxRepo) GetIncoming(_ context.Context, _ pgx.Tx, txid string, addressID uuid.UUID) (*domain.NetworkTransaction, error) {
	for _, n := range r.store.networkTxs {
		if n.Direction == domain.DirectionIncoming &&
			n.TxID != nil && *n.TxID == txid &&
			n.AddressID != nil && *n.AddressID == addressID {
			cp := n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memNetworkTxRepo) Open(_ context.Context, _ pgx.Tx, id uuid.UUID, at time.Time) (bool, error) {
	n, ok := r.store.networkTxs[id]
	if !ok {
		return false, fmt.Errorf("network transaction not found: %s", id)
	}
	if n.OpenedAt != nil {
		return false, nil
	}
	n.OpenedAt = &at
	r.store.networkTxs[id] = n
	return true, nil
}

func (r *memNetworkTxRepo) Close(_ context.Context, _ pgx.Tx, id uuid.UUID, txid string, at time.Time) error {
	n, ok := r.store.networkTxs[id]
	if !ok {
		return fmt.Errorf("network transaction not found: %s", id)
	}
	if n.ClosedAt != nil {
		return fmt.Errorf("network transaction already closed: %s", id)
	}
	n.TxID = &txid
	n.ClosedAt = &at
	r.store.networkTxs[id] = n
	return nil
}

func (r *memNetworkTxRepo) Reopen(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	n, ok := r.store.networkTxs[id]
	if !ok {
		return fmt.Errorf("network transaction not found: %s", id)
	}
	n.OpenedAt = nil
	r.store.networkTxs[id] = n
	return nil
}

func (r *memNetworkTxRepo) UpdateConfirmations(_ context.Context, _ pgx.Tx, id uuid.UUID, confirmations int, terminal bool) (bool, error) {
	n, ok := r.store.networkTxs[id]
	if !ok {
		return false, fmt.Errorf("network transaction not found: %s", id)
	}
	if confirmations <= n.Confirmations {
		return false, nil
	}
	n.Confirmations = confirmations
	n.Terminal = terminal
	r.store.networkTxs[id] = n
	return true, nil
}

func (r *memNetworkTxRepo) ListPendingBroadcast(_ context.Context, walletID uuid.UUID) ([]domain.NetworkTransaction, error) {
	var out []domain.NetworkTransaction
	for _, n := range r.store.networkTxs {
		if n.WalletID == walletID && n.PendingBroadcast() {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNetworkTxRepo) ListAmbiguous(_ context.Context, walletID uuid.UUID) ([]domain.NetworkTransaction, error) {
	var out []domain.NetworkTransaction
	for _, n := range r.store.networkTxs {
		if n.WalletID == walletID && n.IsAmbiguous() {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNetworkTxRepo) ListUnsettled(_ context.Context, walletID uuid.UUID) ([]domain.NetworkTransaction, error) {
	var out []domain.NetworkTransaction
	for _, n := range r.store.networkTxs {
		if n.WalletID == walletID && n.TxID != nil && !n.Terminal {
			out = append(out, n)
		}
	}
	return out, nil
}

// captureDispatcher records dispatched events for assertions.
type captureDispatcher struct {
	events []domain.Event
}

func (d *captureDispatcher) Register(_ ports.EventSubscriber) {}

func (d *captureDispatcher) Dispatch(_ context.Context, changes *domain.ChangeSet) {
	d.events = append(d.events, changes.Events()...)
}

var (
	_ ports.WalletRepository             = (*memWalletRepo)(nil)
	_ ports.AccountRepository            = (*memAccountRepo)(nil)
	_ ports.AddressRepository            = (*memAddressRepo)(nil)
	_ ports.TransactionRepository        = (*memTransactionRepo)(nil)
	_ ports.NetworkTransactionRepository = (*memNetworkTxRepo)(nil)
	_ ports.Transactor                   = (*memTransactor)(nil)
	_ ports.EventDispatcher              = (*captureDispatcher)(nil)
)
