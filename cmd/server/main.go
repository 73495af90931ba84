package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shopblue/storefront/internal/cart"
	"github.com/shopblue/storefront/internal/catalog"
	"github.com/shopblue/storefront/internal/checkout"
	"github.com/shopblue/storefront/internal/config"
	"github.com/shopblue/storefront/internal/ledger"
	"github.com/shopblue/storefront/internal/logger"
	"github.com/shopblue/storefront/internal/payment"
	"github.com/shopblue/storefront/internal/persistence"
	"github.com/shopblue/storefront/internal/session"
	"github.com/shopblue/storefront/internal/sourcing"
	"github.com/shopblue/storefront/internal/wishlist"

	shophttp "github.com/shopblue/storefront/internal/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	snapshots, cleanup, err := buildSnapshotStore(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to set up snapshot store", zap.Error(err))
	}
	defer cleanup()

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	catalogStore := catalog.NewStore(startCtx, snapshots, zlog)
	cartSvc := cart.NewService(startCtx, snapshots, zlog)
	orders := ledger.NewLedger(startCtx, snapshots, zlog)
	cancel()

	provider := buildPaymentProvider(cfg, zlog)
	workflow := checkout.NewWorkflow(cartSvc, orders, provider, cfg.Checkout.ProcessingDelay, zlog)

	sourcingClient := sourcing.NewClient(
		cfg.Sourcing.BaseURL,
		cfg.Sourcing.APIKey,
		cfg.Sourcing.Model,
		cfg.Sourcing.Timeout,
		zlog,
	)

	router := shophttp.NewRouter(shophttp.Deps{
		Catalog:        catalogStore,
		Cart:           cartSvc,
		Ledger:         orders,
		Checkout:       workflow,
		Wishlist:       wishlist.NewService(catalogStore),
		Sessions:       session.NewStore(cfg.Checkout.LoginDelay),
		Sourcing:       sourcingClient,
		Logger:         zlog,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("storefront listening", zap.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("forced shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}

func buildSnapshotStore(cfg *config.Config, zlog *zap.Logger) (persistence.SnapshotStore, func(), error) {
	if !cfg.Redis.Enabled {
		zlog.Info("redis disabled, snapshots held in memory only")
		return persistence.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	return persistence.NewRedisStore(client, zlog), func() { client.Close() }, nil
}

func buildPaymentProvider(cfg *config.Config, zlog *zap.Logger) payment.Provider {
	if cfg.Payment.Mode == "http" && cfg.Payment.BaseURL != "" {
		return payment.NewHTTPProvider(cfg.Payment.BaseURL, cfg.Payment.Timeout, zlog)
	}
	return payment.NewSimulatedProvider(nil)
}
