package models

import "github.com/shopspring/decimal"

// Service is a billable labor offering.
type Service struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
}
