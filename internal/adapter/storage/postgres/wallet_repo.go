package postgres

import (
	"context"
	"errors"
	"fmt"

	"cryptoledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts the asset wallet within a transaction.
func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, asset, name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query, w.ID, w.Asset, w.Name, w.Balance, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByAsset fetches the wallet for an asset (non-transactional read).
func (r *WalletRepo) GetByAsset(ctx context.Context, asset string) (*domain.Wallet, error) {
	query := `SELECT id, asset, name, balance, created_at, updated_at
		FROM wallets WHERE asset = $1`

	return scanWallet(r.pool.QueryRow(ctx, query, asset))
}

// GetByID fetches a wallet inside a unit of work.
func (r *WalletRepo) GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, asset, name, balance, created_at, updated_at
		FROM wallets WHERE id = $1`

	return scanWallet(tx.QueryRow(ctx, query, id))
}

// AdjustBalance adds delta to the wallet balance within a transaction.
func (r *WalletRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("adjust wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", id)
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(&w.ID, &w.Asset, &w.Name, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}
