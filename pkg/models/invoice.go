package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// InvoicePartLine records a part sold on an invoice.
type InvoicePartLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceServiceLine records a service performed on an invoice.
type InvoiceServiceLine struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Invoice is an immutable historical sale record. Invoices are appended to
// an ordered sequence and never mutated after creation.
type Invoice struct {
	ID           string               `json:"id"`
	CustomerID   string               `json:"customer_id,omitempty"`
	CustomerName string               `json:"customer_name,omitempty"`
	Parts        []InvoicePartLine    `json:"parts"`
	Services     []InvoiceServiceLine `json:"services"`
	Subtotal     decimal.Decimal      `json:"subtotal"`
	Tax          decimal.Decimal      `json:"tax"`
	Total        decimal.Decimal      `json:"total"`
	CreatedAt    time.Time            `json:"created_at"`
}

// Validate checks the invoice shape report consumers depend on. Line-item
// problems are accumulated so a caller sees every defect at once.
func (i Invoice) Validate() error {
	var err error

	if strings.TrimSpace(i.ID) == "" {
		err = multierr.Append(err, fmt.Errorf("invoice id is required"))
	}
	if i.Total.IsNegative() {
		err = multierr.Append(err, fmt.Errorf("total must be non-negative"))
	}
	if i.Tax.IsNegative() {
		err = multierr.Append(err, fmt.Errorf("tax must be non-negative"))
	}
	if len(i.Parts) == 0 && len(i.Services) == 0 {
		err = multierr.Append(err, fmt.Errorf("invoice needs at least one line-item"))
	}

	for idx, line := range i.Parts {
		if strings.TrimSpace(line.Name) == "" {
			err = multierr.Append(err, fmt.Errorf("parts[%d]: name is required", idx))
		}
		if line.Quantity <= 0 {
			err = multierr.Append(err, fmt.Errorf("parts[%d]: quantity must be positive", idx))
		}
		if line.UnitPrice.IsNegative() {
			err = multierr.Append(err, fmt.Errorf("parts[%d]: unit price must be non-negative", idx))
		}
	}

	for idx, line := range i.Services {
		if strings.TrimSpace(line.Name) == "" {
			err = multierr.Append(err, fmt.Errorf("services[%d]: name is required", idx))
		}
		if line.Price.IsNegative() {
			err = multierr.Append(err, fmt.Errorf("services[%d]: price must be non-negative", idx))
		}
	}

	return err
}
