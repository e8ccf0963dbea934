package service

import (
	"context"
	"time"

	"cryptoledger/internal/core/domain"
	"cryptoledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Broadcaster pushes reserved external sends to the network. Each broadcast
// runs in three phases: commit opened_at, call the backend outside any
// store transaction, commit txid and closed_at. A crash between the first
// and last phase leaves the row ambiguous; ambiguous rows are never resent
// blindly, only reconciled through the backend's send lookup.
type Broadcaster struct {
	asset *Asset
	log   zerolog.Logger
}

// NewBroadcaster creates the broadcast service for an asset.
func NewBroadcaster(asset *Asset, log zerolog.Logger) *Broadcaster {
	return &Broadcaster{asset: asset, log: log}
}

// BroadcastPending sends every reservation that has never been opened.
// Returns the number of broadcasts that completed both phases.
func (b *Broadcaster) BroadcastPending(ctx context.Context) (int, error) {
	rows, err := b.asset.NetworkTxs.ListPendingBroadcast(ctx, b.asset.WalletID)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range rows {
		if err := b.broadcastOne(ctx, &rows[i]); err != nil {
			b.log.Error().
				Err(err).
				Str("network_tx_id", rows[i].ID.String()).
				Msg("broadcast failed")
			continue
		}
		sent++
	}
	return sent, nil
}

func (b *Broadcaster) broadcastOne(ctx context.Context, ntx *domain.NetworkTransaction) error {
	// Phase 1: claim the row. Losing the claim means the other process is
	// broadcasting it.
	var claimed bool
	_, err := b.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
		var err error
		claimed, err = b.asset.NetworkTxs.Open(ctx, tx, ntx.ID, time.Now().UTC())
		return err
	})
	if err != nil {
		return err
	}
	if !claimed {
		b.log.Debug().Str("network_tx_id", ntx.ID.String()).Msg("broadcast already claimed elsewhere")
		return nil
	}

	// Phase 2: the network send, outside any store transaction. On failure
	// the row stays open and ambiguous until reconciliation classifies it.
	res, err := b.asset.Backend.Send(ctx, ports.SendRequest{
		Reference: ntx.Reference(),
		Address:   ntx.TargetAddress,
		Amount:    ntx.Amount,
	})
	if err != nil {
		b.log.Warn().
			Err(err).
			Str("network_tx_id", ntx.ID.String()).
			Msg("send failed after open, row left for reconciliation")
		return err
	}

	// Phase 3: record the outcome.
	_, err = b.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
		if err := b.asset.NetworkTxs.Close(ctx, tx, ntx.ID, res.TxID, time.Now().UTC()); err != nil {
			return err
		}
		if res.Fee > 0 {
			return b.chargeNetworkFee(ctx, tx, ntx.ID, res.TxID, res.Fee)
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.log.Info().
		Str("network_tx_id", ntx.ID.String()).
		Str("txid", res.TxID).
		Int64("amount", ntx.Amount).
		Msg("broadcast completed")
	return nil
}

// chargeNetworkFee books the backend-reported fee against the wallet's fee
// account. The fee account may run negative; it tracks an expense, not
// user funds.
func (b *Broadcaster) chargeNetworkFee(ctx context.Context, tx pgx.Tx, ntxID uuid.UUID, txid string, fee int64) error {
	feeAccount, err := b.asset.Accounts.GetByName(ctx, tx, b.asset.WalletID, domain.NetworkFeeAccountName)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if feeAccount == nil {
		feeAccount = &domain.Account{ID: uuid.New(), WalletID: b.asset.WalletID, Name: domain.NetworkFeeAccountName, CreatedAt: now, UpdatedAt: now}
		if err := b.asset.Accounts.Create(ctx, tx, feeAccount); err != nil {
			return err
		}
	}

	if _, err := b.asset.Accounts.AdjustBalance(ctx, tx, feeAccount.ID, -fee); err != nil {
		return err
	}
	if err := b.asset.Wallets.AdjustBalance(ctx, tx, b.asset.WalletID, -fee); err != nil {
		return err
	}

	entry := &domain.Transaction{
		ID:                   uuid.New(),
		WalletID:             b.asset.WalletID,
		Type:                 domain.TransactionTypeFee,
		Amount:               fee,
		DebitAccountID:       &feeAccount.ID,
		NetworkTransactionID: &ntxID,
		Note:                 "Network fee for " + txid,
		CreatedAt:            now,
	}
	return b.asset.Transactions.Create(ctx, tx, entry)
}

// ListAmbiguous exposes opened-but-unclosed broadcasts for the operator
// view.
func (b *Broadcaster) ListAmbiguous(ctx context.Context) ([]domain.NetworkTransaction, error) {
	return b.asset.NetworkTxs.ListAmbiguous(ctx, b.asset.WalletID)
}

// ReconcileAmbiguous classifies every ambiguous broadcast through the
// backend's send lookup. A broadcast the backend confirms is closed with
// its txid; one the backend definitively never saw is reopened for another
// attempt; anything the backend cannot answer for stays ambiguous. Run at
// helper startup and periodically after.
func (b *Broadcaster) ReconcileAmbiguous(ctx context.Context) error {
	rows, err := b.asset.NetworkTxs.ListAmbiguous(ctx, b.asset.WalletID)
	if err != nil {
		return err
	}

	for i := range rows {
		row := &rows[i]
		txid, found, err := b.asset.Backend.LookupSend(ctx, row.Reference())
		if err != nil {
			b.log.Warn().
				Err(err).
				Str("network_tx_id", row.ID.String()).
				Msg("backend cannot classify broadcast, leaving ambiguous")
			continue
		}

		if found {
			_, err = b.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
				return b.asset.NetworkTxs.Close(ctx, tx, row.ID, txid, time.Now().UTC())
			})
			if err != nil {
				return err
			}
			b.log.Info().
				Str("network_tx_id", row.ID.String()).
				Str("txid", txid).
				Msg("ambiguous broadcast resolved as sent")
			// The lookup does not report the fee the send paid, so no fee
			// entry is booked here. Flag it for manual adjustment.
			b.log.Warn().
				Str("network_tx_id", row.ID.String()).
				Str("txid", txid).
				Msg("network fee not booked for reconciled broadcast, adjust the fee account manually")
			continue
		}

		_, err = b.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, _ *domain.ChangeSet) error {
			return b.asset.NetworkTxs.Reopen(ctx, tx, row.ID)
		})
		if err != nil {
			return err
		}
		b.log.Info().
			Str("network_tx_id", row.ID.String()).
			Msg("ambiguous broadcast resolved as lost, reopened")
	}
	return nil
}
