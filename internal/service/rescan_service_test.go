package service

import (
	"context"
	"io"
	"testing"

	"cryptoledger/internal/core/domain"
	"cryptoledger/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRescanAll_RecoversMissedDeposits(t *testing.T) {
	env := newTestEnv(t)
	r := NewRescanner(env.asset, env.ledger, zerolog.New(io.Discard))

	account, err := env.ledger.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	addr, err := env.ledger.CreateReceivingAddress(context.Background(), account.ID)
	require.NoError(t, err)

	// Transfers the wallet never heard about.
	env.backend.InjectReceived(addr.Address, ports.ReceivedTx{TxID: "missed-1", Amount: 700, Confirmations: 1})
	env.backend.InjectReceived(addr.Address, ports.ReceivedTx{TxID: "missed-2", Amount: 300, Confirmations: 0})

	applied, err := r.RescanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	got, err := env.ledger.GetAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Balance)
	assertWalletEquation(t, env)
}

func TestRescanAll_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	r := NewRescanner(env.asset, env.ledger, zerolog.New(io.Discard))

	account, err := env.ledger.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	addr, err := env.ledger.CreateReceivingAddress(context.Background(), account.ID)
	require.NoError(t, err)

	env.backend.InjectReceived(addr.Address, ports.ReceivedTx{TxID: "tx-1", Amount: 500, Confirmations: 2})

	_, err = r.RescanAll(context.Background())
	require.NoError(t, err)
	_, err = r.RescanAll(context.Background())
	require.NoError(t, err)

	got, err := env.ledger.GetAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.Balance, "replaying history must not double-credit")
}

func TestRescanAll_AdvancesStaleConfirmations(t *testing.T) {
	env := newTestEnv(t)
	r := NewRescanner(env.asset, env.ledger, zerolog.New(io.Discard))

	account, err := env.ledger.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	addr, err := env.ledger.CreateReceivingAddress(context.Background(), account.ID)
	require.NoError(t, err)

	_, err = env.ledger.CreditDeposit(context.Background(), ports.DepositNotice{
		Address: addr.Address, TxID: "tx-1", Amount: 500, Confirmations: 0,
	})
	require.NoError(t, err)

	env.backend.InjectReceived(addr.Address, ports.ReceivedTx{TxID: "tx-1", Amount: 500, Confirmations: testThreshold})

	_, err = r.RescanAll(context.Background())
	require.NoError(t, err)

	var incoming *domain.NetworkTransaction
	for _, n := range env.store.networkTxs {
		if n.Direction == domain.DirectionIncoming {
			cp := n
			incoming = &cp
		}
	}
	require.NotNil(t, incoming)
	assert.Equal(t, testThreshold, incoming.Confirmations)
	assert.True(t, incoming.Terminal)
}

func TestRescanAll_SkipsArchivedAddresses(t *testing.T) {
	env := newTestEnv(t)
	r := NewRescanner(env.asset, env.ledger, zerolog.New(io.Discard))

	account, err := env.ledger.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	addr, err := env.ledger.CreateReceivingAddress(context.Background(), account.ID)
	require.NoError(t, err)

	row := env.store.addresses[addr.ID]
	now := row.CreatedAt
	row.ArchivedAt = &now
	env.store.addresses[addr.ID] = row

	env.backend.InjectReceived(addr.Address, ports.ReceivedTx{TxID: "tx-1", Amount: 500, Confirmations: 1})

	applied, err := r.RescanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
}
