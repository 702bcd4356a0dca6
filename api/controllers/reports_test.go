package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/torqueworks/garageledger-backend/internal/reports"
)

type stubReportsService struct {
	summary   reports.Summary
	partRows  []reports.PartSalesRow
	svcRows   []reports.ServicePopularityRow
	lastRange reports.Range
}

func (s *stubReportsService) SalesSummary(ctx context.Context, rng reports.Range) (reports.Summary, error) {
	s.lastRange = rng
	return s.summary, nil
}

func (s *stubReportsService) PopularParts(ctx context.Context, rng reports.Range) ([]reports.PartSalesRow, error) {
	s.lastRange = rng
	return s.partRows, nil
}

func (s *stubReportsService) ServicePopularity(ctx context.Context, rng reports.Range) ([]reports.ServicePopularityRow, error) {
	s.lastRange = rng
	return s.svcRows, nil
}

func TestSalesSummaryReport(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stub := &stubReportsService{
			summary: reports.Summary{
				TotalSales:   decimal.RequireFromString("150"),
				TotalTax:     decimal.RequireFromString("15"),
				InvoiceCount: 2,
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales-summary", nil)
		rec := httptest.NewRecorder()
		SalesSummaryReport(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var payload struct {
			Data reports.Summary `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if payload.Data.InvoiceCount != 2 {
			t.Fatalf("expected 2 invoices, got %d", payload.Data.InvoiceCount)
		}
		if !payload.Data.TotalSales.Equal(decimal.RequireFromString("150")) {
			t.Fatalf("expected total 150, got %s", payload.Data.TotalSales)
		}
	})

	t.Run("range parsed", func(t *testing.T) {
		stub := &stubReportsService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales-summary?from=2026-01-01T00:00:00Z&to=2026-02-01T00:00:00Z", nil)
		rec := httptest.NewRecorder()
		SalesSummaryReport(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.lastRange.From == nil || stub.lastRange.To == nil {
			t.Fatalf("expected both range bounds set")
		}
		if stub.lastRange.From.Month() != 1 || stub.lastRange.To.Month() != 2 {
			t.Fatalf("unexpected range: %v %v", stub.lastRange.From, stub.lastRange.To)
		}
	})

	t.Run("bad timestamp rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/sales-summary?from=yesterday", nil)
		rec := httptest.NewRecorder()
		SalesSummaryReport(&stubReportsService{}, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPopularPartsReport(t *testing.T) {
	stub := &stubReportsService{
		partRows: []reports.PartSalesRow{
			{Name: "Oil Filter", QuantitySold: 4},
			{Name: "Brake Pad", QuantitySold: 1},
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/popular-parts", nil)
	rec := httptest.NewRecorder()
	PopularPartsReport(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Data  []reports.PartSalesRow `json:"data"`
		Count int                    `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Count != 2 || payload.Data[0].Name != "Oil Filter" {
		t.Fatalf("unexpected rows: %+v", payload.Data)
	}
}

func TestServicePopularityReport(t *testing.T) {
	stub := &stubReportsService{
		svcRows: []reports.ServicePopularityRow{{Name: "Oil Change", Count: 2}},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/service-popularity", nil)
	rec := httptest.NewRecorder()
	ServicePopularityReport(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Data []reports.ServicePopularityRow `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Count != 2 {
		t.Fatalf("unexpected rows: %+v", payload.Data)
	}
}
