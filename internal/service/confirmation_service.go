package service

import (
	"context"

	"cryptoledger/internal/core/domain"
	"cryptoledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ConfirmationPoller advances confirmation counts for every network
// transaction that has a txid but has not settled. Each row gets its own
// serializable unit of work, so one contended row never rolls back the
// whole sweep. Updates are monotonic: a backend briefly reporting a lower
// count is a no-op.
type ConfirmationPoller struct {
	asset      *Asset
	dispatcher ports.EventDispatcher
	log        zerolog.Logger
}

// NewConfirmationPoller creates the polling service for an asset.
func NewConfirmationPoller(asset *Asset, dispatcher ports.EventDispatcher, log zerolog.Logger) *ConfirmationPoller {
	return &ConfirmationPoller{asset: asset, dispatcher: dispatcher, log: log}
}

// PollOnce performs one sweep over the unsettled set. Returns the number of
// rows whose confirmation count advanced.
func (p *ConfirmationPoller) PollOnce(ctx context.Context) (int, error) {
	rows, err := p.asset.NetworkTxs.ListUnsettled(ctx, p.asset.WalletID)
	if err != nil {
		return 0, err
	}

	advanced := 0
	for i := range rows {
		row := &rows[i]
		if row.TxID == nil {
			continue
		}

		count, err := p.asset.Backend.GetConfirmations(ctx, *row.TxID)
		if err != nil {
			p.log.Warn().
				Err(err).
				Str("txid", *row.TxID).
				Msg("confirmation lookup failed, row left for next sweep")
			continue
		}

		changed, err := p.updateRow(ctx, row, count)
		if err != nil {
			p.log.Error().
				Err(err).
				Str("network_tx_id", row.ID.String()).
				Msg("confirmation update failed")
			continue
		}
		if changed {
			advanced++
		}
	}
	return advanced, nil
}

func (p *ConfirmationPoller) updateRow(ctx context.Context, row *domain.NetworkTransaction, count int) (bool, error) {
	terminal := count >= p.asset.Threshold

	var changed bool
	changes, err := p.asset.Transactor.RunSerializable(ctx, func(ctx context.Context, tx pgx.Tx, changes *domain.ChangeSet) error {
		var err error
		changed, err = p.asset.NetworkTxs.UpdateConfirmations(ctx, tx, row.ID, count, terminal)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		eventType := domain.EventConfirmationUpdate
		if terminal && row.Direction == domain.DirectionOutgoing {
			eventType = domain.EventBroadcastSettled
		}
		changes.Record(domain.Event{
			Type:          eventType,
			Asset:         p.asset.Name,
			WalletID:      p.asset.WalletID,
			TxID:          *row.TxID,
			Amount:        row.Amount,
			Confirmations: count,
		})
		return nil
	})
	if err != nil {
		return false, err
	}

	if p.dispatcher != nil {
		p.dispatcher.Dispatch(ctx, changes)
	}
	return changed, nil
}
