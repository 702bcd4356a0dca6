package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/torqueworks/garageledger-backend/internal/ledger"
	"github.com/torqueworks/garageledger-backend/internal/seed"
	"github.com/torqueworks/garageledger-backend/internal/storage"
	"github.com/torqueworks/garageledger-backend/pkg/config"
	"github.com/torqueworks/garageledger-backend/pkg/logger"
	"github.com/torqueworks/garageledger-backend/pkg/models"
)

// Writes the starter catalog into the data directory. By default only
// empty collections are filled; -force replaces the catalogs outright.
// Customers and invoices are always carried over untouched.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	force := flag.Bool("force", false, "replace existing parts and services with the starter catalog")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store := storage.NewFileStore(cfg.Storage)
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"data_dir": store.Dir(),
		"force":    *force,
	})

	parts, _, err := store.LoadParts(ctx)
	requireResource(ctx, logg, "parts", err)
	services, _, err := store.LoadServices(ctx)
	requireResource(ctx, logg, "services", err)
	customers, _, err := store.LoadCustomers(ctx)
	requireResource(ctx, logg, "customers", err)
	invoices, _, err := store.LoadInvoices(ctx)
	requireResource(ctx, logg, "invoices", err)

	starter := seed.Starter{}
	if *force || len(parts) == 0 {
		parts = map[string]models.Part{}
		for _, part := range starter.Parts() {
			parts[part.ID] = part
		}
	}
	if *force || len(services) == 0 {
		services = map[string]models.Service{}
		for _, svc := range starter.Services() {
			services[svc.ID] = svc
		}
	}
	if customers == nil {
		customers = map[string]models.Customer{}
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}

	err = store.SaveAll(ctx, ledger.Snapshot{
		Parts:     parts,
		Services:  services,
		Customers: customers,
		Invoices:  invoices,
	})
	requireResource(ctx, logg, "save", err)

	logg.Info(logg.WithFields(ctx, map[string]any{
		"parts":    len(parts),
		"services": len(services),
	}), "starter catalog written")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
