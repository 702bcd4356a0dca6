package controllers

import (
	"net/http"

	"github.com/torqueworks/garageledger-backend/api/responses"
	"github.com/torqueworks/garageledger-backend/api/validators"
	"github.com/torqueworks/garageledger-backend/internal/ledger"
	pkgerrors "github.com/torqueworks/garageledger-backend/pkg/errors"
	"github.com/torqueworks/garageledger-backend/pkg/logger"
)

// ListInvoices returns the invoice sequence in insertion order.
func ListInvoices(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}
		invoices := svc.Invoices(r.Context())
		responses.WriteList(w, invoices, len(invoices))
	}
}

type invoicePartLineRequest struct {
	PartID   string `json:"part_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type createInvoiceRequest struct {
	CustomerID string                   `json:"customer_id,omitempty"`
	Parts      []invoicePartLineRequest `json:"parts,omitempty" validate:"omitempty,dive"`
	ServiceIDs []string                 `json:"service_ids,omitempty" validate:"omitempty,dive,required"`
}

// CreateInvoice prices the referenced line-items against the current
// catalog, appends the invoice, and persists the full ledger.
func CreateInvoice(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}

		var payload createInvoiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ledger.CreateInvoiceInput{
			CustomerID: payload.CustomerID,
			ServiceIDs: payload.ServiceIDs,
		}
		for _, line := range payload.Parts {
			input.Parts = append(input.Parts, ledger.PartLineInput{
				PartID:   line.PartID,
				Quantity: line.Quantity,
			})
		}

		invoice, err := svc.CreateInvoice(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Save(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}
