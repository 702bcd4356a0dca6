package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/torqueworks/garageledger-backend/internal/ledger"
	pkgerrors "github.com/torqueworks/garageledger-backend/pkg/errors"
	"github.com/torqueworks/garageledger-backend/pkg/logger"
	"github.com/torqueworks/garageledger-backend/pkg/models"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestListParts(t *testing.T) {
	stub := &stubLedgerService{
		parts: []models.Part{
			{ID: "P001", Name: "Oil Filter", Price: decimal.RequireFromString("15.99"), Quantity: 50, ReorderLevel: 10},
			{ID: "P002", Name: "Brake Pad", Price: decimal.RequireFromString("45.99"), Quantity: 30, ReorderLevel: 8},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts", nil)
	rec := httptest.NewRecorder()
	ListParts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Data  []models.Part `json:"data"`
		Count int           `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Count != 2 || len(payload.Data) != 2 {
		t.Fatalf("expected 2 parts, got count=%d len=%d", payload.Count, len(payload.Data))
	}
	if payload.Data[0].ID != "P001" {
		t.Fatalf("expected P001 first, got %s", payload.Data[0].ID)
	}
}

func TestGetPart(t *testing.T) {
	stub := &stubLedgerService{
		parts: []models.Part{
			{ID: "P001", Name: "Oil Filter", Price: decimal.RequireFromString("15.99")},
		},
	}

	makeRequest := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/"+id, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("partId", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		GetPart(stub, testLogger()).ServeHTTP(rec, req)
		return rec
	}

	t.Run("found", func(t *testing.T) {
		rec := makeRequest("P001")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("missing", func(t *testing.T) {
		rec := makeRequest("P404")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestLowStockParts(t *testing.T) {
	stub := &stubLedgerService{
		lowStock: []models.Part{
			{ID: "P002", Name: "Brake Pad", Quantity: 5, ReorderLevel: 8},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/low-stock", nil)
	rec := httptest.NewRecorder()
	LowStockParts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Count != 1 {
		t.Fatalf("expected 1 low-stock part, got %d", payload.Count)
	}
}

func TestCreatePart(t *testing.T) {
	t.Run("success persists", func(t *testing.T) {
		stub := &stubLedgerService{}
		body := `{"id":"P010","name":"Air Filter","price":"12.50","quantity":20,"reorder_level":5}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		CreatePart(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.addedPart == nil {
			t.Fatalf("expected AddPart to be invoked")
		}
		if stub.addedPart.ID != "P010" {
			t.Fatalf("expected part id P010, got %s", stub.addedPart.ID)
		}
		if !stub.saved {
			t.Fatalf("expected Save to be invoked after AddPart")
		}
	})

	t.Run("missing id rejected", func(t *testing.T) {
		stub := &stubLedgerService{}
		body := `{"name":"Air Filter","price":"12.50"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		CreatePart(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.addedPart != nil {
			t.Fatalf("expected AddPart not to be invoked")
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		stub := &stubLedgerService{}
		body := `{"id":"P010","name":"Air Filter","price":"12.50","colour":"red"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		CreatePart(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("save failure surfaces", func(t *testing.T) {
		stub := &stubLedgerService{saveErr: pkgerrors.New(pkgerrors.CodeStorage, "disk full")}
		body := `{"id":"P010","name":"Air Filter","price":"12.50"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		CreatePart(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

type stubLedgerService struct {
	parts     []models.Part
	services  []models.Service
	customers []models.Customer
	invoices  []models.Invoice
	lowStock  []models.Part
	stats     ledger.Stats

	addedPart     *models.Part
	addedService  *models.Service
	addedCustomer *models.Customer
	createdInput  *ledger.CreateInvoiceInput
	createErr     error
	saved         bool
	saveErr       error
}

func (s *stubLedgerService) Load(ctx context.Context) error { return nil }

func (s *stubLedgerService) Save(ctx context.Context) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = true
	return nil
}

func (s *stubLedgerService) AddPart(ctx context.Context, input ledger.AddPartInput) (models.Part, error) {
	part := models.Part{ID: input.ID, Name: input.Name, Price: input.Price, Quantity: input.Quantity, ReorderLevel: input.ReorderLevel}
	s.addedPart = &part
	return part, nil
}

func (s *stubLedgerService) AddService(ctx context.Context, input ledger.AddServiceInput) (models.Service, error) {
	svc := models.Service{ID: input.ID, Name: input.Name, BasePrice: input.BasePrice}
	s.addedService = &svc
	return svc, nil
}

func (s *stubLedgerService) AddCustomer(ctx context.Context, input ledger.AddCustomerInput) (models.Customer, error) {
	customer := models.Customer{ID: input.ID, Name: input.Name, Phone: input.Phone}
	s.addedCustomer = &customer
	return customer, nil
}

func (s *stubLedgerService) CreateInvoice(ctx context.Context, input ledger.CreateInvoiceInput) (models.Invoice, error) {
	if s.createErr != nil {
		return models.Invoice{}, s.createErr
	}
	s.createdInput = &input
	return models.Invoice{ID: "INV-STUB"}, nil
}

func (s *stubLedgerService) Parts(ctx context.Context) []models.Part { return s.parts }

func (s *stubLedgerService) GetPart(ctx context.Context, id string) (models.Part, error) {
	for _, part := range s.parts {
		if part.ID == id {
			return part, nil
		}
	}
	return models.Part{}, pkgerrors.New(pkgerrors.CodeNotFound, "part "+id+" not found")
}

func (s *stubLedgerService) Services(ctx context.Context) []models.Service { return s.services }

func (s *stubLedgerService) GetService(ctx context.Context, id string) (models.Service, error) {
	for _, svc := range s.services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return models.Service{}, pkgerrors.New(pkgerrors.CodeNotFound, "service "+id+" not found")
}

func (s *stubLedgerService) Customers(ctx context.Context) []models.Customer { return s.customers }

func (s *stubLedgerService) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	for _, customer := range s.customers {
		if customer.ID == id {
			return customer, nil
		}
	}
	return models.Customer{}, pkgerrors.New(pkgerrors.CodeNotFound, "customer "+id+" not found")
}

func (s *stubLedgerService) Invoices(ctx context.Context) []models.Invoice { return s.invoices }

func (s *stubLedgerService) LowStock(ctx context.Context) []models.Part { return s.lowStock }

func (s *stubLedgerService) Stats(ctx context.Context) ledger.Stats { return s.stats }
