package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/torqueworks/garageledger-backend/pkg/errors"
	"github.com/torqueworks/garageledger-backend/pkg/models"
)

func TestListInvoices(t *testing.T) {
	stub := &stubLedgerService{
		invoices: []models.Invoice{{ID: "INV-1"}, {ID: "INV-2"}},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	rec := httptest.NewRecorder()
	ListInvoices(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Data  []models.Invoice `json:"data"`
		Count int              `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Count != 2 {
		t.Fatalf("expected 2 invoices, got %d", payload.Count)
	}
	if payload.Data[0].ID != "INV-1" {
		t.Fatalf("expected insertion order preserved, got %s first", payload.Data[0].ID)
	}
}

func TestCreateInvoice(t *testing.T) {
	t.Run("success persists", func(t *testing.T) {
		stub := &stubLedgerService{}
		body := `{"customer_id":"C001","parts":[{"part_id":"P001","quantity":2}],"service_ids":["S001"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		CreateInvoice(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.createdInput == nil {
			t.Fatalf("expected CreateInvoice to be invoked")
		}
		if stub.createdInput.CustomerID != "C001" {
			t.Fatalf("expected customer C001, got %s", stub.createdInput.CustomerID)
		}
		if len(stub.createdInput.Parts) != 1 || stub.createdInput.Parts[0].Quantity != 2 {
			t.Fatalf("unexpected part lines: %+v", stub.createdInput.Parts)
		}
		if !stub.saved {
			t.Fatalf("expected Save to be invoked after CreateInvoice")
		}
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		stub := &stubLedgerService{}
		body := `{"parts":[{"part_id":"P001","quantity":0}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		CreateInvoice(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.createdInput != nil {
			t.Fatalf("expected CreateInvoice not to be invoked")
		}
	})

	t.Run("unknown reference surfaces", func(t *testing.T) {
		stub := &stubLedgerService{createErr: pkgerrors.New(pkgerrors.CodeNotFound, "part P404 not found")}
		body := `{"parts":[{"part_id":"P404","quantity":1}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		CreateInvoice(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if stub.saved {
			t.Fatalf("expected Save not to be invoked on failure")
		}
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		CreateInvoice(&stubLedgerService{}, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
