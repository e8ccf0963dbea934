package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cryptoledger/config"
	backendAdapter "cryptoledger/internal/adapter/backend"
	"cryptoledger/internal/adapter/notify"
	pgStorage "cryptoledger/internal/adapter/storage/postgres"
	redisStorage "cryptoledger/internal/adapter/storage/redis"
	"cryptoledger/internal/service"
	"cryptoledger/pkg/logger"

	"github.com/rs/zerolog"
)

// assetWorkers bundles the background services of one asset.
type assetWorkers struct {
	name        string
	broadcaster *service.Broadcaster
	poller      *service.ConfirmationPoller
	rescanner   *service.Rescanner
}

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("helper", cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Dur("broadcast_interval", cfg.Helper.BroadcastInterval).
		Dur("poll_interval", cfg.Helper.PollInterval).
		Int("assets", len(cfg.Assets)).
		Msg("Starting cryptoledger helper")

	if len(cfg.Assets) == 0 {
		log.Fatal().Msg("No assets configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Redis client (shared by all assets)
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	dedupCache := redisStorage.NewDedupCache(rdb)

	// Event dispatcher with the configured subscriber channels
	dispatcher := service.NewDispatcher(log)
	for _, url := range cfg.Notify.HTTPURLs {
		dispatcher.Register(notify.NewHTTPSubscriber(url, 10*time.Second))
	}
	for _, script := range cfg.Notify.Scripts {
		dispatcher.Register(notify.NewScriptSubscriber(script))
	}
	if cfg.Notify.NATS.URL != "" {
		natsSub, err := notify.NewNATSSubscriber(cfg.Notify.NATS, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to NATS")
		}
		defer natsSub.Close()
		dispatcher.Register(natsSub)
	}

	workers := make([]*assetWorkers, 0, len(cfg.Assets))
	for _, ac := range cfg.Assets {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, ac.Schema, log)
		if err != nil {
			log.Fatal().Err(err).Str("asset", ac.Name).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		chainBackend, err := backendAdapter.New(ac.Backend, log)
		if err != nil {
			log.Fatal().Err(err).Str("asset", ac.Name).Msg("Failed to initialize chain backend")
		}

		asset := &service.Asset{
			Name:         ac.Name,
			Decimals:     ac.Decimals,
			Threshold:    ac.ConfirmationThreshold,
			Wallets:      pgStorage.NewWalletRepo(pool),
			Accounts:     pgStorage.NewAccountRepo(pool),
			Addresses:    pgStorage.NewAddressRepo(pool),
			Transactions: pgStorage.NewTransactionRepo(pool),
			NetworkTxs:   pgStorage.NewNetworkTxRepo(pool),
			Transactor:   pgStorage.NewTransactor(pool, cfg.Ledger.MaxConflictRetries, cfg.Ledger.RetryBackoffBase, log),
			Backend:      chainBackend,
		}
		if err := asset.EnsureWallet(ctx, log); err != nil {
			log.Fatal().Err(err).Str("asset", ac.Name).Msg("Failed to ensure wallet")
		}

		ledger := service.NewLedger(asset, dedupCache, dispatcher, cfg.Ledger.UniqueAccountNames, log)

		workers = append(workers, &assetWorkers{
			name:        ac.Name,
			broadcaster: service.NewBroadcaster(asset, log),
			poller:      service.NewConfirmationPoller(asset, dispatcher, log),
			rescanner:   service.NewRescanner(asset, ledger, log),
		})
	}

	// Recovery pass before the loops start: classify broadcasts left
	// ambiguous by a previous crash, then optionally rescan every active
	// address against the backend.
	for _, w := range workers {
		if err := w.broadcaster.ReconcileAmbiguous(ctx); err != nil {
			log.Error().Err(err).Str("asset", w.name).Msg("Startup reconciliation failed")
		}
		if cfg.Helper.RescanOnStart {
			if n, err := w.rescanner.RescanAll(ctx); err != nil {
				log.Error().Err(err).Str("asset", w.name).Msg("Startup rescan failed")
			} else {
				log.Info().Str("asset", w.name).Int("notices", n).Msg("Startup rescan complete")
			}
		}
	}

	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(2)
		go func(w *assetWorkers) {
			defer wg.Done()
			broadcastLoop(ctx, w, cfg.Helper.BroadcastInterval, log)
		}(w)
		go func(w *assetWorkers) {
			defer wg.Done()
			pollLoop(ctx, w, cfg.Helper.PollInterval, log)
		}(w)
	}

	<-ctx.Done()
	log.Info().Msg("Shutting down helper...")
	wg.Wait()
	log.Info().Msg("Helper exited")
}

// broadcastLoop pushes pending withdrawals to the network and keeps trying
// to classify rows whose send outcome is unknown.
func broadcastLoop(ctx context.Context, w *assetWorkers, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := w.broadcaster.BroadcastPending(ctx); err != nil {
				log.Error().Err(err).Str("asset", w.name).Msg("Broadcast pass failed")
			} else if n > 0 {
				log.Info().Str("asset", w.name).Int("sent", n).Msg("Broadcast pass complete")
			}
			if err := w.broadcaster.ReconcileAmbiguous(ctx); err != nil {
				log.Error().Err(err).Str("asset", w.name).Msg("Reconciliation pass failed")
			}
		}
	}
}

// pollLoop advances confirmation counts for every non-terminal network
// transaction.
func pollLoop(ctx context.Context, w *assetWorkers, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := w.poller.PollOnce(ctx); err != nil {
				log.Error().Err(err).Str("asset", w.name).Msg("Confirmation poll failed")
			} else if n > 0 {
				log.Debug().Str("asset", w.name).Int("advanced", n).Msg("Confirmation poll complete")
			}
		}
	}
}
