package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/torqueworks/garageledger-backend/pkg/models"
)

// The keyed collections decode through envelope structs whose fields are
// all pointers: a field missing from the persisted record fails the load
// instead of silently zeroing, and DisallowUnknownFields rejects extras.
// The persisted schema is the explicit field list on the model types.

type partEnvelope struct {
	ID           *string          `json:"id"`
	Name         *string          `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	Quantity     *int             `json:"quantity"`
	ReorderLevel *int             `json:"reorder_level"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
}

type serviceEnvelope struct {
	ID        *string          `json:"id"`
	Name      *string          `json:"name"`
	BasePrice *decimal.Decimal `json:"base_price"`
	TaxRate   *decimal.Decimal `json:"tax_rate"`
}

type customerEnvelope struct {
	ID            *string `json:"id"`
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	VehicleNumber *string `json:"vehicle_number"`
	VehicleModel  *string `json:"vehicle_model"`
	Email         *string `json:"email"`
}

func decodeParts(raw []byte) (map[string]models.Part, error) {
	envelopes := map[string]partEnvelope{}
	if err := strictUnmarshal(raw, &envelopes); err != nil {
		return nil, err
	}
	parts := make(map[string]models.Part, len(envelopes))
	for key, env := range envelopes {
		if err := requireFields(key, map[string]bool{
			"id":            env.ID != nil,
			"name":          env.Name != nil,
			"price":         env.Price != nil,
			"quantity":      env.Quantity != nil,
			"reorder_level": env.ReorderLevel != nil,
			"tax_rate":      env.TaxRate != nil,
		}); err != nil {
			return nil, err
		}
		parts[key] = models.Part{
			ID:           *env.ID,
			Name:         *env.Name,
			Price:        *env.Price,
			Quantity:     *env.Quantity,
			ReorderLevel: *env.ReorderLevel,
			TaxRate:      *env.TaxRate,
		}
	}
	return parts, nil
}

func decodeServices(raw []byte) (map[string]models.Service, error) {
	envelopes := map[string]serviceEnvelope{}
	if err := strictUnmarshal(raw, &envelopes); err != nil {
		return nil, err
	}
	services := make(map[string]models.Service, len(envelopes))
	for key, env := range envelopes {
		if err := requireFields(key, map[string]bool{
			"id":         env.ID != nil,
			"name":       env.Name != nil,
			"base_price": env.BasePrice != nil,
			"tax_rate":   env.TaxRate != nil,
		}); err != nil {
			return nil, err
		}
		services[key] = models.Service{
			ID:        *env.ID,
			Name:      *env.Name,
			BasePrice: *env.BasePrice,
			TaxRate:   *env.TaxRate,
		}
	}
	return services, nil
}

func decodeCustomers(raw []byte) (map[string]models.Customer, error) {
	envelopes := map[string]customerEnvelope{}
	if err := strictUnmarshal(raw, &envelopes); err != nil {
		return nil, err
	}
	customers := make(map[string]models.Customer, len(envelopes))
	for key, env := range envelopes {
		if err := requireFields(key, map[string]bool{
			"id":    env.ID != nil,
			"name":  env.Name != nil,
			"phone": env.Phone != nil,
		}); err != nil {
			return nil, err
		}
		customer := models.Customer{
			ID:    *env.ID,
			Name:  *env.Name,
			Phone: *env.Phone,
		}
		if env.VehicleNumber != nil {
			customer.VehicleNumber = *env.VehicleNumber
		}
		if env.VehicleModel != nil {
			customer.VehicleModel = *env.VehicleModel
		}
		if env.Email != nil {
			customer.Email = *env.Email
		}
		customers[key] = customer
	}
	return customers, nil
}

// Invoices predate the typed schema, so decoding stays lenient: unknown
// fields are ignored and absent optional fields default. Entries still
// have to parse as the invoice shape.
func decodeInvoices(raw []byte) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	if err := json.Unmarshal(raw, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func strictUnmarshal(raw []byte, dest any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func requireFields(key string, present map[string]bool) error {
	for field, ok := range present {
		if !ok {
			return fmt.Errorf("record %q: missing required field %q", key, field)
		}
	}
	return nil
}
