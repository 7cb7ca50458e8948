// Service: TON Connect wallet session, jetton shop and round rewards for the game frontend.
// Usage: go run ./cmd/gamefi
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/AlexZinkM/ton-gamefi/docs"
	"github.com/AlexZinkM/ton-gamefi/gamefi"
	"github.com/AlexZinkM/ton-gamefi/internal/api"
	"github.com/AlexZinkM/ton-gamefi/internal/client"
	"github.com/AlexZinkM/ton-gamefi/internal/config"
	"github.com/AlexZinkM/ton-gamefi/internal/crypto"
	"github.com/AlexZinkM/ton-gamefi/internal/handler"
	"github.com/AlexZinkM/ton-gamefi/internal/metrics"
	"github.com/AlexZinkM/ton-gamefi/internal/session"
	"github.com/AlexZinkM/ton-gamefi/internal/storage"
	"github.com/AlexZinkM/ton-gamefi/ton"
)

// @title        TON GameFi API
// @version      1.0
// @description  Wallet session, on-chain purchases and rewards for a Telegram mini game.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("service stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.LogDevelopment {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return storage.NewMemoryStore(), func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return storage.NewRedisStore(rdb, "gamefi:"), func() { rdb.Close() }, nil
	}

	passphrase, err := cfg.PromptForPassphrase("Store passphrase: ")
	if err != nil {
		return nil, nil, err
	}
	defer clear(passphrase)

	fs, err := storage.OpenFileStore(cfg.StoreFilePath, passphrase, crypto.DefaultScryptN)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() { fs.Close() }, nil
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(reg); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	tonClient, err := client.NewTonClient(ctx, cfg.TonConfigURL, cfg.ChainRPS, logger.Named("ton"))
	if err != nil {
		return err
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	builder := ton.NewBuilder(tonClient, ton.BuilderOptions{
		TTL:            cfg.TransactionTTL,
		Network:        cfg.ChainID(),
		TokenRecipient: cfg.TokenRecipient,
	})
	logger.Info("transaction builder ready",
		zap.String("network", cfg.ChainID()),
		zap.Duration("valid_for", builder.TTL()),
	)

	sessions := session.NewManager(client.NewBridgeClient(cfg.BridgeURL, logger.Named("bridge")), store, session.Options{
		ManifestURL:    cfg.ManifestURL,
		ReturnStrategy: cfg.ReturnStrategy,
		UniversalLink:  cfg.WalletUniversalLink,
		Network:        cfg.ChainID(),
		ConnectTimeout: cfg.ConnectTimeout,
	}, logger.Named("session"))
	defer sessions.Close()

	coordinator := gamefi.NewCoordinator(
		sessions,
		builder,
		tonClient,
		client.NewLedgerClient(cfg.LedgerEndpoint, logger.Named("ledger")),
		store,
		gamefi.Options{
			TokenMaster:           cfg.TokenMaster,
			Catalog:               catalog,
			BalanceReloadInterval: cfg.BalanceReloadInterval,
			ShopReloadInterval:    cfg.ShopReloadInterval,
			StrictBalanceCheck:    cfg.StrictBalanceCheck,
		},
		logger.Named("gamefi"),
	)
	defer coordinator.Close()
	sessions.OnStatusChange(coordinator.OnStatusChange)

	if _, err := coordinator.LoadEquipped(ctx); err != nil {
		logger.Warn("failed to load chosen item", zap.Error(err))
	}
	s, err := sessions.RestoreConnection(ctx)
	if err != nil {
		logger.Warn("failed to restore wallet session", zap.Error(err))
	}
	logger.Info("wallet session", zap.String("status", string(s.Status)))

	router := api.SetupRouter(api.Handlers{
		Wallet: handler.NewWalletHandler(sessions, builder, tonClient, logger.Named("wallet")),
		Shop:   handler.NewShopHandler(coordinator, sessions, cfg.TokenDecimals, logger.Named("shop")),
		Status: handler.NewStatusHandler(sessions, logger.Named("status")),
	}, reg, logger.Named("http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("network", cfg.Network))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
