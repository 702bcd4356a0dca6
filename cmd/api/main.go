package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/torqueworks/garageledger-backend/api/routes"
	"github.com/torqueworks/garageledger-backend/internal/ledger"
	"github.com/torqueworks/garageledger-backend/internal/reports"
	"github.com/torqueworks/garageledger-backend/internal/seed"
	"github.com/torqueworks/garageledger-backend/internal/storage"
	"github.com/torqueworks/garageledger-backend/pkg/config"
	"github.com/torqueworks/garageledger-backend/pkg/logger"
	"github.com/torqueworks/garageledger-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	ledgerMetrics := metrics.NewLedgerMetrics(registry)

	store := storage.NewFileStore(cfg.Storage)

	ledgerService, err := ledger.NewService(ledger.Params{
		Repo:        store,
		Seeder:      seed.Starter{},
		Logger:      logg,
		Metrics:     ledgerMetrics,
		DisableSeed: cfg.Seed.Disable,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	if err := ledgerService.Load(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to load ledger data", err)
		os.Exit(1)
	}
	if err := ledgerService.Save(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to persist ledger data", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(ledgerService)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"data_dir": store.Dir(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, httpMetrics, registry, store, ledgerService, reportsService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
