package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/torqueworks/garageledger-backend/pkg/errors"
	"github.com/torqueworks/garageledger-backend/pkg/models"
)

// Range optionally bounds a report by invoice creation time, inclusive.
type Range struct {
	From *time.Time
	To   *time.Time
}

func (r Range) contains(ts time.Time) bool {
	if r.From != nil && ts.Before(*r.From) {
		return false
	}
	if r.To != nil && ts.After(*r.To) {
		return false
	}
	return true
}

// Summary aggregates all invoices in range.
type Summary struct {
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	InvoiceCount int             `json:"invoice_count"`
}

// PartSalesRow is one part grouped by name with quantities summed.
type PartSalesRow struct {
	Name         string `json:"name"`
	QuantitySold int    `json:"quantity_sold"`
}

// ServicePopularityRow is one service grouped by name with invoices counted.
type ServicePopularityRow struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Service computes aggregate reports over the invoice sequence.
type Service interface {
	SalesSummary(ctx context.Context, rng Range) (Summary, error)
	PopularParts(ctx context.Context, rng Range) ([]PartSalesRow, error)
	ServicePopularity(ctx context.Context, rng Range) ([]ServicePopularityRow, error)
}

// InvoiceReader is the slice of the ledger the reports need.
type InvoiceReader interface {
	Invoices(ctx context.Context) []models.Invoice
}

type service struct {
	ledger InvoiceReader
}

// NewService wires a reports service over the provided ledger reader.
func NewService(ledger InvoiceReader) (Service, error) {
	if ledger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "invoice reader required")
	}
	return &service{ledger: ledger}, nil
}

func (s *service) SalesSummary(ctx context.Context, rng Range) (Summary, error) {
	summary := Summary{
		TotalSales: decimal.Zero,
		TotalTax:   decimal.Zero,
	}
	for _, invoice := range s.ledger.Invoices(ctx) {
		if !rng.contains(invoice.CreatedAt) {
			continue
		}
		summary.TotalSales = summary.TotalSales.Add(invoice.Total)
		summary.TotalTax = summary.TotalTax.Add(invoice.Tax)
		summary.InvoiceCount++
	}
	return summary, nil
}

func (s *service) PopularParts(ctx context.Context, rng Range) ([]PartSalesRow, error) {
	sold := map[string]int{}
	for _, invoice := range s.ledger.Invoices(ctx) {
		if !rng.contains(invoice.CreatedAt) {
			continue
		}
		for _, line := range invoice.Parts {
			sold[line.Name] += line.Quantity
		}
	}

	rows := make([]PartSalesRow, 0, len(sold))
	for name, quantity := range sold {
		rows = append(rows, PartSalesRow{Name: name, QuantitySold: quantity})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].QuantitySold != rows[j].QuantitySold {
			return rows[i].QuantitySold > rows[j].QuantitySold
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

func (s *service) ServicePopularity(ctx context.Context, rng Range) ([]ServicePopularityRow, error) {
	counts := map[string]int{}
	for _, invoice := range s.ledger.Invoices(ctx) {
		if !rng.contains(invoice.CreatedAt) {
			continue
		}
		for _, line := range invoice.Services {
			counts[line.Name]++
		}
	}

	rows := make([]ServicePopularityRow, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, ServicePopularityRow{Name: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}
