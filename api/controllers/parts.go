package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/torqueworks/garageledger-backend/api/responses"
	"github.com/torqueworks/garageledger-backend/api/validators"
	"github.com/torqueworks/garageledger-backend/internal/ledger"
	pkgerrors "github.com/torqueworks/garageledger-backend/pkg/errors"
	"github.com/torqueworks/garageledger-backend/pkg/logger"
)

// ListParts returns the parts catalog in id order.
func ListParts(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}
		parts := svc.Parts(r.Context())
		responses.WriteList(w, parts, len(parts))
	}
}

// GetPart returns a single part by id.
func GetPart(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}
		part, err := svc.GetPart(r.Context(), chi.URLParam(r, "partId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, part)
	}
}

// LowStockParts returns parts at or below their reorder threshold.
func LowStockParts(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}
		low := svc.LowStock(r.Context())
		responses.WriteList(w, low, len(low))
	}
}

type addPartRequest struct {
	ID           string           `json:"id" validate:"required"`
	Name         string           `json:"name" validate:"required"`
	Price        decimal.Decimal  `json:"price"`
	Quantity     int              `json:"quantity" validate:"min=0"`
	ReorderLevel int              `json:"reorder_level" validate:"min=0"`
	TaxRate      *decimal.Decimal `json:"tax_rate,omitempty"`
}

// CreatePart inserts or replaces a part, then persists the full ledger.
func CreatePart(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}

		var payload addPartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.AddPart(r.Context(), ledger.AddPartInput{
			ID:           payload.ID,
			Name:         payload.Name,
			Price:        payload.Price,
			Quantity:     payload.Quantity,
			ReorderLevel: payload.ReorderLevel,
			TaxRate:      payload.TaxRate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Save(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, part)
	}
}
