package seed

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStarterCatalogLiterals(t *testing.T) {
	parts := Starter{}.Parts()
	if len(parts) != 3 {
		t.Fatalf("expected 3 starter parts, got %d", len(parts))
	}
	if parts[0].ID != "P001" || parts[0].Name != "Oil Filter" || !parts[0].Price.Equal(decimal.RequireFromString("15.99")) {
		t.Fatalf("unexpected first part: %+v", parts[0])
	}
	if parts[2].Quantity != 100 || parts[2].ReorderLevel != 20 {
		t.Fatalf("unexpected third part: %+v", parts[2])
	}

	services := Starter{}.Services()
	if len(services) != 3 {
		t.Fatalf("expected 3 starter services, got %d", len(services))
	}
	if services[1].ID != "S002" || !services[1].BasePrice.Equal(decimal.RequireFromString("80.00")) {
		t.Fatalf("unexpected second service: %+v", services[1])
	}
	for _, svc := range services {
		if !svc.TaxRate.Equal(decimal.RequireFromString("0.1")) {
			t.Fatalf("expected flat tax rate on %s, got %v", svc.ID, svc.TaxRate)
		}
	}
}
