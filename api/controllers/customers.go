package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/torqueworks/garageledger-backend/api/responses"
	"github.com/torqueworks/garageledger-backend/api/validators"
	"github.com/torqueworks/garageledger-backend/internal/ledger"
	pkgerrors "github.com/torqueworks/garageledger-backend/pkg/errors"
	"github.com/torqueworks/garageledger-backend/pkg/logger"
)

func ListCustomers(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}
		customers := svc.Customers(r.Context())
		responses.WriteList(w, customers, len(customers))
	}
}

func GetCustomer(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}
		customer, err := svc.GetCustomer(r.Context(), chi.URLParam(r, "customerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

type addCustomerRequest struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
	VehicleModel  string `json:"vehicle_model,omitempty"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
}

func CreateCustomer(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}

		var payload addCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.AddCustomer(r.Context(), ledger.AddCustomerInput{
			ID:            payload.ID,
			Name:          payload.Name,
			Phone:         payload.Phone,
			VehicleNumber: payload.VehicleNumber,
			VehicleModel:  payload.VehicleModel,
			Email:         payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Save(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}
