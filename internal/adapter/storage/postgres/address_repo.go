package postgres

import (
	"context"
	"errors"
	"fmt"

	"cryptoledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AddressRepo implements ports.AddressRepository.
type AddressRepo struct {
	pool Pool
}

// NewAddressRepo creates a new AddressRepo.
func NewAddressRepo(pool Pool) *AddressRepo {
	return &AddressRepo{pool: pool}
}

const addressColumns = `id, account_id, wallet_id, address, received, created_at, archived_at`

// Create inserts a new receiving address within a transaction.
func (r *AddressRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Address) error {
	query := `INSERT INTO addresses (id, account_id, wallet_id, address, received, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query, a.ID, a.AccountID, a.WalletID, a.Address, a.Received, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

// GetByAddress fetches an address row by its network string inside a unit
// of work.
func (r *AddressRepo) GetByAddress(ctx context.Context, tx pgx.Tx, address string) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE address = $1`
	return scanAddress(tx.QueryRow(ctx, query, address))
}

// AddReceived adds delta to the cumulative received amount.
func (r *AddressRepo) AddReceived(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) error {
	query := `UPDATE addresses SET received = received + $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("add address received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("address not found: %s", id)
	}
	return nil
}

// ListActive fetches all non-archived receiving addresses of a wallet.
func (r *AddressRepo) ListActive(ctx context.Context, walletID uuid.UUID) ([]domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses
		WHERE wallet_id = $1 AND archived_at IS NULL ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list active addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		a := domain.Address{}
		if err := rows.Scan(&a.ID, &a.AccountID, &a.WalletID, &a.Address, &a.Received, &a.CreatedAt, &a.ArchivedAt); err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}
	return addresses, nil
}

func scanAddress(row pgx.Row) (*domain.Address, error) {
	a := &domain.Address{}
	err := row.Scan(&a.ID, &a.AccountID, &a.WalletID, &a.Address, &a.Received, &a.CreatedAt, &a.ArchivedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan address: %w", err)
	}
	return a, nil
}
