package postgres

import (
	"context"
	"testing"
	"time"

	"cryptoledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(walletID uuid.UUID) *domain.Account {
	return &domain.Account{
		ID:        uuid.New(),
		WalletID:  walletID,
		Name:      "alice",
		Balance:   100000,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func accountColumnNames() []string {
	return []string{"id", "wallet_id", "name", "balance", "created_at", "updated_at"}
}

func accountRow(a *domain.Account) *pgxmock.Rows {
	return pgxmock.NewRows(accountColumnNames()).AddRow(
		a.ID, a.WalletID, a.Name, a.Balance, a.CreatedAt, a.UpdatedAt,
	)
}

func TestAccountRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(a.ID, a.WalletID, a.Name, a.Balance, a.CreatedAt, a.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_AdjustBalance_ReturnsNewBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE accounts SET balance = balance \\+ .+ RETURNING balance").
		WithArgs(int64(-40000), id).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(60000)))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	balance, err := repo.AdjustBalance(context.Background(), tx, id, -40000)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByName_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	walletID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM accounts WHERE wallet_id .+ AND name").
		WithArgs(walletID, "nobody").
		WillReturnRows(pgxmock.NewRows(accountColumnNames()))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	got, err := repo.GetByName(context.Background(), tx, walletID, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	walletID := uuid.New()
	a := newTestAccount(walletID)
	b := newTestAccount(walletID)
	b.Name = "bob"

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE wallet_id .+ ORDER BY created_at").
		WithArgs(walletID).
		WillReturnRows(pgxmock.NewRows(accountColumnNames()).
			AddRow(a.ID, a.WalletID, a.Name, a.Balance, a.CreatedAt, a.UpdatedAt).
			AddRow(b.ID, b.WalletID, b.Name, b.Balance, b.CreatedAt, b.UpdatedAt))

	accounts, err := repo.List(context.Background(), walletID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "alice", accounts[0].Name)
	assert.Equal(t, "bob", accounts[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_SumBalances(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	walletID := uuid.New()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(balance\\), 0\\) FROM accounts").
		WithArgs(walletID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(250000)))

	sum, err := repo.SumBalances(context.Background(), walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(250000), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}
