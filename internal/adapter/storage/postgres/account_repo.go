package postgres

import (
	"context"
	"errors"
	"fmt"

	"cryptoledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const accountColumns = `id, wallet_id, name, balance, created_at, updated_at`

// Create inserts a new account within a transaction.
func (r *AccountRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	query := `INSERT INTO accounts (id, wallet_id, name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query, a.ID, a.WalletID, a.Name, a.Balance, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID fetches an account inside a unit of work.
func (r *AccountRepo) GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(tx.QueryRow(ctx, query, id))
}

// GetByName fetches an account by wallet and name inside a unit of work.
func (r *AccountRepo) GetByName(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE wallet_id = $1 AND name = $2`
	return scanAccount(tx.QueryRow(ctx, query, walletID, name))
}

// AdjustBalance adds delta to the account balance and returns the new
// balance. The accounts table carries a CHECK constraint keeping user
// account balances non-negative (the network fee account is exempt);
// services validate before debiting so the constraint should never fire
// in practice.
func (r *AccountRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) (int64, error) {
	query := `UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2 RETURNING balance`

	var balance int64
	err := tx.QueryRow(ctx, query, delta, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("account not found: %s", id)
		}
		return 0, fmt.Errorf("adjust account balance: %w", err)
	}
	return balance, nil
}

// Get fetches an account by id (non-transactional read).
func (r *AccountRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// List fetches all accounts of a wallet ordered by creation time.
func (r *AccountRepo) List(ctx context.Context, walletID uuid.UUID) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE wallet_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a := domain.Account{}
		if err := rows.Scan(&a.ID, &a.WalletID, &a.Name, &a.Balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}
	return accounts, nil
}

// SumBalances totals all account balances of a wallet, used by the wallet
// balance invariant check.
func (r *AccountRepo) SumBalances(ctx context.Context, walletID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE wallet_id = $1`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, walletID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum account balances: %w", err)
	}
	return sum, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(&a.ID, &a.WalletID, &a.Name, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}
