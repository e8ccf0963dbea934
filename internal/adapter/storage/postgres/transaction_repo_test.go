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

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	debit := uuid.New()
	credit := uuid.New()
	trn := &domain.Transaction{
		ID:              uuid.New(),
		WalletID:        uuid.New(),
		Type:            domain.TransactionTypeInternal,
		Amount:          100000,
		DebitAccountID:  &debit,
		CreditAccountID: &credit,
		Note:            "rent",
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(trn.ID, trn.WalletID, trn.Type, trn.Amount, trn.DebitAccountID, trn.CreditAccountID,
			trn.NetworkTransactionID, trn.Note, trn.Processed, trn.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, trn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_MarkProcessed_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions SET processed").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.MarkProcessed(context.Background(), tx, id)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListByAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	accountID := uuid.New()
	txID := uuid.New()
	created := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM transactions .+ debit_account_id .+ OR credit_account_id").
		WithArgs(accountID, 50, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "wallet_id", "type", "amount", "debit_account_id", "credit_account_id",
			"network_transaction_id", "note", "processed", "created_at",
		}).AddRow(
			txID, uuid.New(), domain.TransactionTypeExternal, int64(75000),
			(*uuid.UUID)(nil), &accountID, (*uuid.UUID)(nil), "", false, created,
		))

	txns, err := repo.ListByAccount(context.Background(), accountID, 50, 0)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, txID, txns[0].ID)
	assert.Nil(t, txns[0].DebitAccountID)
	require.NotNil(t, txns[0].CreditAccountID)
	assert.Equal(t, accountID, *txns[0].CreditAccountID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
