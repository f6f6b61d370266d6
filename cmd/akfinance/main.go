package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"akfinance/internal/amqp"
	"akfinance/internal/cache"
	"akfinance/internal/config"
	"akfinance/internal/export"
	apphttp "akfinance/internal/http"
	"akfinance/internal/ledgerapi"
	"akfinance/internal/log"
	"akfinance/internal/services"
	"akfinance/internal/settings"
)

func main() {
	// .env is optional, real deployments set environment directly
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", log.FieldError, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := settings.NewStore(settings.Backend(cfg.SettingsBackend), cfg.SQLiteDBPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var exporter export.Exporter
	if cfg.GoogleSpreadsheetID != "" {
		sheetsExporter, err := export.NewSheetsExporter(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, logger)
		if err != nil {
			logger.Warn("sheets export disabled", log.FieldError, err)
		} else {
			exporter = sheetsExporter
		}
	}

	pages := cache.NewLRUCache[*services.LedgerPage](cfg.LedgerCacheSize, cfg.LedgerCacheTTL)
	manager := cache.NewManager(logger)
	manager.Register(pages)
	manager.StartCleanup(10 * time.Minute)
	defer manager.Stop()

	fetcher := ledgerapi.NewClient(cfg.LedgerAPIURL, cfg.LedgerAPITimeout)
	ledgerSvc := services.NewLedgerService(fetcher, pages, logger)

	srv := apphttp.NewServer(
		cfg,
		services.NewCalculatorService(cfg, logger),
		services.NewBalanceSheetService(exporter, logger),
		ledgerSvc,
		store,
		logger,
	)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server",
			log.FieldOperation, log.OpStartup,
			"addr", srv.Addr,
			"settings_backend", cfg.SettingsBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// Broker is optional: without it cached ledger pages just expire
	// by TTL instead of being invalidated on change events.
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Warn("AMQP unavailable, relying on cache TTL", log.FieldError, err)
		} else {
			defer client.Close()
			g.Go(func() error {
				err := client.ConsumeTransactionEvents(gctx, func(event *amqp.TransactionEvent) error {
					ledgerSvc.Invalidate()
					return nil
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		}
	}

	return g.Wait()
}
