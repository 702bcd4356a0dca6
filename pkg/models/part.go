package models

import "github.com/shopspring/decimal"

// DefaultTaxRate is the flat rate applied when a record does not carry its own.
var DefaultTaxRate = decimal.RequireFromString("0.1")

// Part is a purchasable inventory item.
type Part struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
}

// LowStock reports whether the part has fallen to or below its reorder
// threshold. Derived, never stored.
func (p Part) LowStock() bool {
	return p.Quantity <= p.ReorderLevel
}
