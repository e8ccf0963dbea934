package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptoledger/config"
	backendAdapter "cryptoledger/internal/adapter/backend"
	httpHandler "cryptoledger/internal/adapter/http/handler"
	"cryptoledger/internal/adapter/notify"
	pgStorage "cryptoledger/internal/adapter/storage/postgres"
	redisStorage "cryptoledger/internal/adapter/storage/redis"
	"cryptoledger/internal/core/ports"
	"cryptoledger/internal/service"
	"cryptoledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("api", cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Int("assets", len(cfg.Assets)).
		Msg("Starting cryptoledger API")

	if len(cfg.Assets) == 0 {
		log.Fatal().Msg("No assets configured")
	}

	ctx := context.Background()

	// Initialize Redis client (shared by all assets)
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

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

	// Per-asset wiring: each asset gets its own schema-bound pool,
	// repositories, transactor and chain backend.
	assets := make(map[string]httpHandler.AssetDeps, len(cfg.Assets))
	healthCheckers := []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)}

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
		broadcaster := service.NewBroadcaster(asset, log)

		assets[ac.Name] = httpHandler.AssetDeps{
			Ledger:    ledger,
			Ambiguous: broadcaster,
			Decimals:  ac.Decimals,
			Threshold: ac.ConfirmationThreshold,
		}
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool, "postgresql:"+ac.Schema))

		log.Info().Str("asset", ac.Name).Str("schema", ac.Schema).Msg("Asset ledger ready")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Assets:         assets,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
