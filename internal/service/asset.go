package service

import (
	"context"
	"fmt"
	"time"

	"cryptoledger/internal/core/domain"
	"cryptoledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Asset bundles everything one configured asset needs: its repositories
// (bound to the asset's schema), its transactor, its chain backend and its
// confirmation threshold. One Asset is constructed per configured asset at
// process start and threaded through explicitly; there is no global
// registry.
type Asset struct {
	Name      string
	Decimals  int32
	Threshold int
	WalletID  uuid.UUID

	Wallets      ports.WalletRepository
	Accounts     ports.AccountRepository
	Addresses    ports.AddressRepository
	Transactions ports.TransactionRepository
	NetworkTxs   ports.NetworkTransactionRepository
	Transactor   ports.Transactor
	Backend      ports.ChainBackend
}

// EnsureWallet creates the asset wallet and its network fee account on
// first run and resolves WalletID. Safe to call from both processes
// concurrently.
func (a *Asset) EnsureWallet(ctx context.Context, log zerolog.Logger) error {
	w, err := a.Wallets.GetByAsset(ctx, a.Name)
	if err != nil {
		return fmt.Errorf("looking up wallet for %s: %w", a.Name, err)
	}

	if w == nil {
		now := time.Now().UTC()
		created := &domain.Wallet{ID: uuid.New(), Asset: a.Name, Name: a.Name, CreatedAt: now, UpdatedAt: now}
		_, err = a.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
			if err := a.Wallets.Create(ctx, tx, created); err != nil {
				return err
			}
			fee := &domain.Account{ID: uuid.New(), WalletID: created.ID, Name: domain.NetworkFeeAccountName, CreatedAt: now, UpdatedAt: now}
			return a.Accounts.Create(ctx, tx, fee)
		})
		if err != nil {
			// The other process may have won the race; re-read before
			// treating this as fatal.
			w, rerr := a.Wallets.GetByAsset(ctx, a.Name)
			if rerr != nil || w == nil {
				return fmt.Errorf("creating wallet for %s: %w", a.Name, err)
			}
			a.WalletID = w.ID
			return nil
		}
		log.Info().Str("asset", a.Name).Str("wallet_id", created.ID.String()).Msg("wallet created")
		a.WalletID = created.ID
		return nil
	}

	a.WalletID = w.ID
	return nil
}
