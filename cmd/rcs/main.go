package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/app"
	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/catalog"
	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/ledger"
	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/platform/db"
	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/quote"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dsn := cfg.PGDSN
	if cfg.DBEmbedded {
		embedded, embeddedDSN, err := db.StartEmbedded(db.EmbeddedConfig{
			DataDir: cfg.DBDataDir,
			Port:    cfg.DBPort,
		})
		if err != nil {
			logger.Error("start embedded postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := embedded.Stop(); err != nil {
				logger.Warn("stop embedded postgres", slog.Any("error", err))
			}
		}()
		dsn = embeddedDSN
		logger.Info("embedded postgres up", slog.String("data_dir", cfg.DBDataDir))
	}

	pool, err := db.New(ctx, dsn)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	catalogService := catalog.NewService(catalog.NewRepository(pool))
	if cfg.SeedCatalog {
		seeded, err := catalogService.Seed(ctx)
		if err != nil {
			logger.Error("seed catalog", slog.Any("error", err))
			os.Exit(1)
		}
		if seeded > 0 {
			logger.Info("seeded catalog", slog.Int("materials", seeded))
		}
	}

	quoteService := quote.NewService(quote.NewRepository(pool), quote.NewCalculator(cfg.Circle), cfg.HistoryCap)
	ledgerService := ledger.NewService(ledger.NewRepository(pool))

	materials, err := catalogService.List(ctx)
	if err != nil {
		logger.Error("list materials", slog.Any("error", err))
		os.Exit(1)
	}
	heads, err := quoteService.ListHeads(ctx)
	if err != nil {
		logger.Error("list quotes", slog.Any("error", err))
		os.Exit(1)
	}
	consumption, err := ledgerService.ConsumptionForPeriod(ctx, ledger.PeriodCurrentMonth)
	if err != nil {
		logger.Error("consumption summary", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("ready",
		slog.String("env", cfg.AppEnv),
		slog.Float64("circle", cfg.Circle),
		slog.Int("history_cap", cfg.HistoryCap),
		slog.Int("materials", len(materials)),
		slog.Int("quotes", len(heads)),
		slog.Int("consumed_materials_this_month", len(consumption)))

	<-ctx.Done()
	logger.Info("shutting down")
}
