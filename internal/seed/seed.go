package seed

import (
	"github.com/shopspring/decimal"

	"github.com/torqueworks/garageledger-backend/pkg/models"
)

// Starter provides the fixed catalog injected when no persisted state
// exists. Not idempotent on its own; the ledger's load gating ensures it
// runs at most once.
type Starter struct{}

func (Starter) Parts() []models.Part {
	return []models.Part{
		{ID: "P001", Name: "Oil Filter", Price: decimal.RequireFromString("15.99"), Quantity: 50, ReorderLevel: 10, TaxRate: models.DefaultTaxRate},
		{ID: "P002", Name: "Brake Pad", Price: decimal.RequireFromString("45.99"), Quantity: 30, ReorderLevel: 8, TaxRate: models.DefaultTaxRate},
		{ID: "P003", Name: "Engine Oil (1L)", Price: decimal.RequireFromString("8.99"), Quantity: 100, ReorderLevel: 20, TaxRate: models.DefaultTaxRate},
	}
}

func (Starter) Services() []models.Service {
	return []models.Service{
		{ID: "S001", Name: "Oil Change", BasePrice: decimal.RequireFromString("30.00"), TaxRate: models.DefaultTaxRate},
		{ID: "S002", Name: "Brake Service", BasePrice: decimal.RequireFromString("80.00"), TaxRate: models.DefaultTaxRate},
		{ID: "S003", Name: "General Inspection", BasePrice: decimal.RequireFromString("50.00"), TaxRate: models.DefaultTaxRate},
	}
}
