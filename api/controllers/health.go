package controllers

import (
	"context"
	"net/http"

	"github.com/torqueworks/garageledger-backend/api/responses"
	"github.com/torqueworks/garageledger-backend/pkg/config"
	pkgerrors "github.com/torqueworks/garageledger-backend/pkg/errors"
	"github.com/torqueworks/garageledger-backend/pkg/logger"
)

// StoragePinger reports whether the backing data directory is usable.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GarageLedger-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, store StoragePinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GarageLedger-Env", cfg.App.Env)
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "storage not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
