package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cryptoledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// NetworkTxRepo implements ports.NetworkTransactionRepository.
type NetworkTxRepo struct {
	pool Pool
}

// NewNetworkTxRepo creates a new NetworkTxRepo.
func NewNetworkTxRepo(pool Pool) *NetworkTxRepo {
	return &NetworkTxRepo{pool: pool}
}

const networkTxColumns = `id, wallet_id, direction, txid, address_id, target_address,
		amount, confirmations, opened_at, closed_at, terminal, created_at, updated_at`

// Create inserts a network transaction within a transaction.
func (r *NetworkTxRepo) Create(ctx context.Context, tx pgx.Tx, n *domain.NetworkTransaction) error {
	query := `INSERT INTO network_transactions (id, wallet_id, direction, txid, address_id, target_address,
		amount, confirmations, opened_at, closed_at, terminal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := tx.Exec(ctx, query,
		n.ID, n.WalletID, n.Direction, n.TxID, n.AddressID, n.TargetAddress,
		n.Amount, n.Confirmations, n.OpenedAt, n.ClosedAt, n.Terminal, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert network transaction: %w", err)
	}
	return nil
}

// GetByID fetches a network transaction inside a unit of work.
func (r *NetworkTxRepo) GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.NetworkTransaction, error) {
	query := `SELECT ` + networkTxColumns + ` FROM network_transactions WHERE id = $1`
	return scanNetworkTx(tx.QueryRow(ctx, query, id))
}

// GetIncoming looks up an incoming record by network txid and receiving
// address. This is the idempotency probe for deposit notifications.
func (r *NetworkTxRepo) GetIncoming(ctx context.Context, tx pgx.Tx, txid string, addressID uuid.UUID) (*domain.NetworkTransaction, error) {
	query := `SELECT ` + networkTxColumns + ` FROM network_transactions
		WHERE direction = $1 AND txid = $2 AND address_id = $3`
	return scanNetworkTx(tx.QueryRow(ctx, query, domain.DirectionIncoming, txid, addressID))
}

// Open stamps opened_at on a never-opened row. The WHERE guard makes the
// point of no return single-shot even if two broadcasters race.
func (r *NetworkTxRepo) Open(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (bool, error) {
	query := `UPDATE network_transactions SET opened_at = $1, updated_at = NOW()
		WHERE id = $2 AND opened_at IS NULL`

	tag, err := tx.Exec(ctx, query, at, id)
	if err != nil {
		return false, fmt.Errorf("open network transaction: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Close stamps the network txid and closed_at after a confirmed send.
func (r *NetworkTxRepo) Close(ctx context.Context, tx pgx.Tx, id uuid.UUID, txid string, at time.Time) error {
	query := `UPDATE network_transactions SET txid = $1, closed_at = $2, updated_at = NOW()
		WHERE id = $3 AND closed_at IS NULL`

	tag, err := tx.Exec(ctx, query, txid, at, id)
	if err != nil {
		return fmt.Errorf("close network transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("network transaction %s not open or not found", id)
	}
	return nil
}

// Reopen clears opened_at on a broadcast classified as lost.
func (r *NetworkTxRepo) Reopen(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `UPDATE network_transactions SET opened_at = NULL, updated_at = NOW()
		WHERE id = $1 AND closed_at IS NULL`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("reopen network transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("network transaction %s already closed or not found", id)
	}
	return nil
}

// UpdateConfirmations advances the confirmation count. The WHERE clause
// enforces monotonicity: a stale or duplicate count affects zero rows.
func (r *NetworkTxRepo) UpdateConfirmations(ctx context.Context, tx pgx.Tx, id uuid.UUID, confirmations int, terminal bool) (bool, error) {
	query := `UPDATE network_transactions
		SET confirmations = $1, terminal = $2, updated_at = NOW()
		WHERE id = $3 AND confirmations < $1`

	tag, err := tx.Exec(ctx, query, confirmations, terminal, id)
	if err != nil {
		return false, fmt.Errorf("update confirmations: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListPendingBroadcast fetches outgoing rows that have never been opened.
func (r *NetworkTxRepo) ListPendingBroadcast(ctx context.Context, walletID uuid.UUID) ([]domain.NetworkTransaction, error) {
	query := `SELECT ` + networkTxColumns + ` FROM network_transactions
		WHERE wallet_id = $1 AND direction = $2 AND opened_at IS NULL AND closed_at IS NULL
		ORDER BY created_at`
	return r.list(ctx, query, walletID, domain.DirectionOutgoing)
}

// ListAmbiguous fetches outgoing rows opened but never closed: broadcasts
// that may or may not have reached the network.
func (r *NetworkTxRepo) ListAmbiguous(ctx context.Context, walletID uuid.UUID) ([]domain.NetworkTransaction, error) {
	query := `SELECT ` + networkTxColumns + ` FROM network_transactions
		WHERE wallet_id = $1 AND direction = $2 AND opened_at IS NOT NULL AND closed_at IS NULL
		ORDER BY opened_at`
	return r.list(ctx, query, walletID, domain.DirectionOutgoing)
}

// ListUnsettled fetches the polling set: rows with a known txid that have
// not reached the confirmation threshold. Terminal rows never reappear
// here, which bounds the set to pending work rather than all history.
func (r *NetworkTxRepo) ListUnsettled(ctx context.Context, walletID uuid.UUID) ([]domain.NetworkTransaction, error) {
	query := `SELECT ` + networkTxColumns + ` FROM network_transactions
		WHERE wallet_id = $1 AND txid IS NOT NULL AND NOT terminal
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list network transactions: %w", err)
	}
	return collectNetworkTxs(rows)
}

func (r *NetworkTxRepo) list(ctx context.Context, query string, walletID uuid.UUID, direction domain.NetworkTransactionDirection) ([]domain.NetworkTransaction, error) {
	rows, err := r.pool.Query(ctx, query, walletID, direction)
	if err != nil {
		return nil, fmt.Errorf("list network transactions: %w", err)
	}
	return collectNetworkTxs(rows)
}

func collectNetworkTxs(rows pgx.Rows) ([]domain.NetworkTransaction, error) {
	defer rows.Close()

	var ntxs []domain.NetworkTransaction
	for rows.Next() {
		n := domain.NetworkTransaction{}
		err := rows.Scan(
			&n.ID, &n.WalletID, &n.Direction, &n.TxID, &n.AddressID, &n.TargetAddress,
			&n.Amount, &n.Confirmations, &n.OpenedAt, &n.ClosedAt, &n.Terminal, &n.CreatedAt, &n.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan network transaction row: %w", err)
		}
		ntxs = append(ntxs, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate network transaction rows: %w", err)
	}
	return ntxs, nil
}

func scanNetworkTx(row pgx.Row) (*domain.NetworkTransaction, error) {
	n := &domain.NetworkTransaction{}
	err := row.Scan(
		&n.ID, &n.WalletID, &n.Direction, &n.TxID, &n.AddressID, &n.TargetAddress,
		&n.Amount, &n.Confirmations, &n.OpenedAt, &n.ClosedAt, &n.Terminal, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan network transaction: %w", err)
	}
	return n, nil
}
