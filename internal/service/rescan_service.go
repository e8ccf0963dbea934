package service

import (
	"context"

	"cryptoledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// Rescanner replays the full deposit history of every active receiving
// address through CreditDeposit. Because CreditDeposit is idempotent the
// rescan is safe at any time; it only recovers deposits whose notification
// was missed and advances stale confirmation counts.
type Rescanner struct {
	asset  *Asset
	ledger ports.LedgerService
	log    zerolog.Logger
}

// NewRescanner creates the rescan service for an asset.
func NewRescanner(asset *Asset, ledger ports.LedgerService, log zerolog.Logger) *Rescanner {
	return &Rescanner{asset: asset, ledger: ledger, log: log}
}

// RescanAll walks every active address and feeds each reported transfer
// back into the ledger. Returns the number of observations applied.
func (r *Rescanner) RescanAll(ctx context.Context) (int, error) {
	addresses, err := r.asset.Addresses.ListActive(ctx, r.asset.WalletID)
	if err != nil {
		return 0, err
	}

	applied := 0
	for i := range addresses {
		addr := &addresses[i]
		received, err := r.asset.Backend.ListReceived(ctx, addr.Address)
		if err != nil {
			r.log.Warn().
				Err(err).
				Str("address", addr.Address).
				Msg("rescan lookup failed, address skipped")
			continue
		}

		for _, tx := range received {
			_, err := r.ledger.CreditDeposit(ctx, ports.DepositNotice{
				Address:       addr.Address,
				TxID:          tx.TxID,
				Amount:        tx.Amount,
				Confirmations: tx.Confirmations,
			})
			if err != nil {
				r.log.Error().
					Err(err).
					Str("address", addr.Address).
					Str("txid", tx.TxID).
					Msg("rescan credit failed")
				continue
			}
			applied++
		}
	}

	r.log.Info().Int("addresses", len(addresses)).Int("applied", applied).Msg("rescan finished")
	return applied, nil
}
