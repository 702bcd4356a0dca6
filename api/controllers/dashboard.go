package controllers

import (
	"net/http"

	"github.com/torqueworks/garageledger-backend/api/responses"
	"github.com/torqueworks/garageledger-backend/internal/ledger"
	pkgerrors "github.com/torqueworks/garageledger-backend/pkg/errors"
	"github.com/torqueworks/garageledger-backend/pkg/logger"
	"github.com/torqueworks/garageledger-backend/pkg/models"
)

type dashboardResponse struct {
	Stats    ledger.Stats  `json:"stats"`
	LowStock []models.Part `json:"low_stock"`
}

// Dashboard returns the quick stats and low-stock alerts in one payload.
func Dashboard(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}
		responses.WriteSuccess(w, dashboardResponse{
			Stats:    svc.Stats(r.Context()),
			LowStock: svc.LowStock(r.Context()),
		})
	}
}
