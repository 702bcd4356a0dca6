package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/torqueworks/garageledger-backend/pkg/errors"
	"github.com/torqueworks/garageledger-backend/pkg/logger"
	"github.com/torqueworks/garageledger-backend/pkg/metrics"
	"github.com/torqueworks/garageledger-backend/pkg/models"
)

// Snapshot is the complete ledger state handed to the repository on save.
type Snapshot struct {
	Parts     map[string]models.Part
	Services  map[string]models.Service
	Customers map[string]models.Customer
	Invoices  []models.Invoice
}

// Repository persists the four collections. Load methods report whether a
// backing file existed; an absent file is not an error.
type Repository interface {
	LoadParts(ctx context.Context) (map[string]models.Part, bool, error)
	LoadServices(ctx context.Context) (map[string]models.Service, bool, error)
	LoadCustomers(ctx context.Context) (map[string]models.Customer, bool, error)
	LoadInvoices(ctx context.Context) ([]models.Invoice, bool, error)
	SaveAll(ctx context.Context, snap Snapshot) error
}

// Seeder supplies the starter catalog used when no persisted state exists.
type Seeder interface {
	Parts() []models.Part
	Services() []models.Service
}

// Service exposes the shop ledger: four collections loaded at startup,
// mutated in memory through add operations, and rewritten to storage as a
// whole on Save. Adds never persist on their own; callers invoke Save.
type Service interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error

	AddPart(ctx context.Context, input AddPartInput) (models.Part, error)
	AddService(ctx context.Context, input AddServiceInput) (models.Service, error)
	AddCustomer(ctx context.Context, input AddCustomerInput) (models.Customer, error)
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (models.Invoice, error)

	Parts(ctx context.Context) []models.Part
	GetPart(ctx context.Context, id string) (models.Part, error)
	Services(ctx context.Context) []models.Service
	GetService(ctx context.Context, id string) (models.Service, error)
	Customers(ctx context.Context) []models.Customer
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	Invoices(ctx context.Context) []models.Invoice

	LowStock(ctx context.Context) []models.Part
	Stats(ctx context.Context) Stats
}

// Stats summarizes the ledger for the dashboard.
type Stats struct {
	Parts     int `json:"parts"`
	Services  int `json:"services"`
	Customers int `json:"customers"`
	Invoices  int `json:"invoices"`
	LowStock  int `json:"low_stock"`
}

// Params wires a store. Repo is required; the rest degrade gracefully.
type Params struct {
	Repo        Repository
	Seeder      Seeder
	Logger      *logger.Logger
	Metrics     *metrics.LedgerMetrics
	DisableSeed bool
	Now         func() time.Time
	NewID       func() string
}

type store struct {
	mu sync.RWMutex

	parts     map[string]models.Part
	services  map[string]models.Service
	customers map[string]models.Customer
	invoices  []models.Invoice

	repo        Repository
	seeder      Seeder
	logg        *logger.Logger
	metrics     *metrics.LedgerMetrics
	disableSeed bool
	now         func() time.Time
	newID       func() string
}

// NewService constructs an empty store. Call Load before serving reads.
func NewService(params Params) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ledger repository required")
	}
	if params.Now == nil {
		params.Now = func() time.Time { return time.Now().UTC() }
	}
	if params.NewID == nil {
		params.NewID = uuid.NewString
	}
	return &store{
		parts:       map[string]models.Part{},
		services:    map[string]models.Service{},
		customers:   map[string]models.Customer{},
		invoices:    []models.Invoice{},
		repo:        params.Repo,
		seeder:      params.Seeder,
		logg:        params.Logger,
		metrics:     params.Metrics,
		disableSeed: params.DisableSeed,
		now:         params.Now,
		newID:       params.NewID,
	}, nil
}

// Load populates all four collections from storage. An absent file leaves
// its collection empty. Sample data is injected only when neither catalog
// file exists; a persisted parts file, even an empty one, suppresses
// seeding entirely.
func (s *store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts, partsFound, err := s.repo.LoadParts(ctx)
	if err != nil {
		return err
	}
	services, servicesFound, err := s.repo.LoadServices(ctx)
	if err != nil {
		return err
	}
	customers, _, err := s.repo.LoadCustomers(ctx)
	if err != nil {
		return err
	}
	invoices, _, err := s.repo.LoadInvoices(ctx)
	if err != nil {
		return err
	}

	s.parts = parts
	s.services = services
	s.customers = customers
	s.invoices = invoices
	if s.parts == nil {
		s.parts = map[string]models.Part{}
	}
	if s.services == nil {
		s.services = map[string]models.Service{}
	}
	if s.customers == nil {
		s.customers = map[string]models.Customer{}
	}
	if s.invoices == nil {
		s.invoices = []models.Invoice{}
	}

	if !partsFound && !servicesFound && !s.disableSeed && s.seeder != nil {
		for _, part := range s.seeder.Parts() {
			s.parts[part.ID] = part
		}
		for _, svc := range s.seeder.Services() {
			s.services[svc.ID] = svc
		}
		if s.logg != nil {
			s.logg.Info(ctx, "ledger.seeded")
		}
	}

	s.publishSizes()
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"parts":     len(s.parts),
			"services":  len(s.services),
			"customers": len(s.customers),
			"invoices":  len(s.invoices),
		})
		s.logg.Info(ctx, "ledger.loaded")
	}
	return nil
}

// Save rewrites the complete in-memory state through the repository. No
// delta save exists; every call replaces all four files.
func (s *store) Save(ctx context.Context) error {
	s.mu.RLock()
	snap := Snapshot{
		Parts:     make(map[string]models.Part, len(s.parts)),
		Services:  make(map[string]models.Service, len(s.services)),
		Customers: make(map[string]models.Customer, len(s.customers)),
		Invoices:  make([]models.Invoice, len(s.invoices)),
	}
	for id, part := range s.parts {
		snap.Parts[id] = part
	}
	for id, svc := range s.services {
		snap.Services[id] = svc
	}
	for id, customer := range s.customers {
		snap.Customers[id] = customer
	}
	copy(snap.Invoices, s.invoices)
	s.mu.RUnlock()

	if err := s.repo.SaveAll(ctx, snap); err != nil {
		s.metrics.IncSaveFailure()
		if s.logg != nil {
			s.logg.Error(ctx, "ledger.save_failed", err)
		}
		return err
	}
	s.metrics.IncSave()
	return nil
}

// AddPartInput carries a new or replacement part. TaxRate defaults to the
// flat shop rate when nil.
type AddPartInput struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	Quantity     int
	ReorderLevel int
	TaxRate      *decimal.Decimal
}

func (s *store) AddPart(ctx context.Context, input AddPartInput) (models.Part, error) {
	id := strings.TrimSpace(input.ID)
	name := strings.TrimSpace(input.Name)
	details := map[string]string{}
	if id == "" {
		details["id"] = "is required"
	}
	if name == "" {
		details["name"] = "is required"
	}
	if input.Price.IsNegative() {
		details["price"] = "must be non-negative"
	}
	if input.Quantity < 0 {
		details["quantity"] = "must be non-negative"
	}
	if input.ReorderLevel < 0 {
		details["reorder_level"] = "must be non-negative"
	}
	if input.TaxRate != nil && input.TaxRate.IsNegative() {
		details["tax_rate"] = "must be non-negative"
	}
	if len(details) > 0 {
		return models.Part{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid part").WithDetails(details)
	}

	taxRate := models.DefaultTaxRate
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}
	part := models.Part{
		ID:           id,
		Name:         name,
		Price:        input.Price,
		Quantity:     input.Quantity,
		ReorderLevel: input.ReorderLevel,
		TaxRate:      taxRate,
	}

	s.mu.Lock()
	// Re-adding an existing id silently replaces the record.
	s.parts[id] = part
	s.publishSizes()
	s.mu.Unlock()
	return part, nil
}

// AddServiceInput carries a new or replacement service offering.
type AddServiceInput struct {
	ID        string
	Name      string
	BasePrice decimal.Decimal
	TaxRate   *decimal.Decimal
}

func (s *store) AddService(ctx context.Context, input AddServiceInput) (models.Service, error) {
	id := strings.TrimSpace(input.ID)
	name := strings.TrimSpace(input.Name)
	details := map[string]string{}
	if id == "" {
		details["id"] = "is required"
	}
	if name == "" {
		details["name"] = "is required"
	}
	if input.BasePrice.IsNegative() {
		details["base_price"] = "must be non-negative"
	}
	if input.TaxRate != nil && input.TaxRate.IsNegative() {
		details["tax_rate"] = "must be non-negative"
	}
	if len(details) > 0 {
		return models.Service{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid service").WithDetails(details)
	}

	taxRate := models.DefaultTaxRate
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}
	svc := models.Service{
		ID:        id,
		Name:      name,
		BasePrice: input.BasePrice,
		TaxRate:   taxRate,
	}

	s.mu.Lock()
	s.services[id] = svc
	s.publishSizes()
	s.mu.Unlock()
	return svc, nil
}

// AddCustomerInput carries a new or replacement customer record.
type AddCustomerInput struct {
	ID            string
	Name          string
	Phone         string
	VehicleNumber string
	VehicleModel  string
	Email         string
}

func (s *store) AddCustomer(ctx context.Context, input AddCustomerInput) (models.Customer, error) {
	id := strings.TrimSpace(input.ID)
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	details := map[string]string{}
	if id == "" {
		details["id"] = "is required"
	}
	if name == "" {
		details["name"] = "is required"
	}
	if phone == "" {
		details["phone"] = "is required"
	}
	if len(details) > 0 {
		return models.Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer").WithDetails(details)
	}

	customer := models.Customer{
		ID:            id,
		Name:          name,
		Phone:         phone,
		VehicleNumber: strings.TrimSpace(input.VehicleNumber),
		VehicleModel:  strings.TrimSpace(input.VehicleModel),
		Email:         strings.TrimSpace(input.Email),
	}

	s.mu.Lock()
	s.customers[id] = customer
	s.publishSizes()
	s.mu.Unlock()
	return customer, nil
}

// PartLineInput references a catalog part sold on an invoice.
type PartLineInput struct {
	PartID   string
	Quantity int
}

// CreateInvoiceInput builds an invoice from catalog references. Prices and
// tax come from the catalog records at creation time; stock is not
// decremented.
type CreateInvoiceInput struct {
	CustomerID string
	Parts      []PartLineInput
	ServiceIDs []string
}

func (s *store) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice := models.Invoice{
		ID:        s.newID(),
		Parts:     []models.InvoicePartLine{},
		Services:  []models.InvoiceServiceLine{},
		CreatedAt: s.now(),
	}

	if customerID := strings.TrimSpace(input.CustomerID); customerID != "" {
		customer, ok := s.customers[customerID]
		if !ok {
			return models.Invoice{}, pkgerrors.New(pkgerrors.CodeNotFound, "customer "+customerID+" not found")
		}
		invoice.CustomerID = customer.ID
		invoice.CustomerName = customer.Name
	}

	subtotal := decimal.Zero
	tax := decimal.Zero

	for _, line := range input.Parts {
		part, ok := s.parts[line.PartID]
		if !ok {
			return models.Invoice{}, pkgerrors.New(pkgerrors.CodeNotFound, "part "+line.PartID+" not found")
		}
		if line.Quantity <= 0 {
			return models.Invoice{}, pkgerrors.New(pkgerrors.CodeValidation, "part quantity must be positive").
				WithDetails(map[string]string{"part_id": line.PartID})
		}
		lineTotal := part.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		tax = tax.Add(lineTotal.Mul(part.TaxRate))
		invoice.Parts = append(invoice.Parts, models.InvoicePartLine{
			Name:      part.Name,
			Quantity:  line.Quantity,
			UnitPrice: part.Price,
		})
	}

	for _, serviceID := range input.ServiceIDs {
		svc, ok := s.services[serviceID]
		if !ok {
			return models.Invoice{}, pkgerrors.New(pkgerrors.CodeNotFound, "service "+serviceID+" not found")
		}
		subtotal = subtotal.Add(svc.BasePrice)
		tax = tax.Add(svc.BasePrice.Mul(svc.TaxRate))
		invoice.Services = append(invoice.Services, models.InvoiceServiceLine{
			Name:  svc.Name,
			Price: svc.BasePrice,
		})
	}

	invoice.Subtotal = subtotal.Round(2)
	invoice.Tax = tax.Round(2)
	invoice.Total = invoice.Subtotal.Add(invoice.Tax)

	if err := invoice.Validate(); err != nil {
		return models.Invoice{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice")
	}

	s.invoices = append(s.invoices, invoice)
	s.publishSizes()
	return invoice, nil
}

func (s *store) Parts(ctx context.Context) []models.Part {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Part, 0, len(s.parts))
	for _, part := range s.parts {
		out = append(out, part)
	}
	sortByID(out, func(p models.Part) string { return p.ID })
	return out
}

func (s *store) GetPart(ctx context.Context, id string) (models.Part, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	part, ok := s.parts[id]
	if !ok {
		return models.Part{}, pkgerrors.New(pkgerrors.CodeNotFound, "part "+id+" not found")
	}
	return part, nil
}

func (s *store) Services(ctx context.Context) []models.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc)
	}
	sortByID(out, func(v models.Service) string { return v.ID })
	return out
}

func (s *store) GetService(ctx context.Context, id string) (models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[id]
	if !ok {
		return models.Service{}, pkgerrors.New(pkgerrors.CodeNotFound, "service "+id+" not found")
	}
	return svc, nil
}

func (s *store) Customers(ctx context.Context) []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		out = append(out, customer)
	}
	sortByID(out, func(c models.Customer) string { return c.ID })
	return out
}

func (s *store) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[id]
	if !ok {
		return models.Customer{}, pkgerrors.New(pkgerrors.CodeNotFound, "customer "+id+" not found")
	}
	return customer, nil
}

// Invoices returns the sequence in insertion order.
func (s *store) Invoices(ctx context.Context) []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// LowStock returns parts at or below their reorder threshold, in id order.
func (s *store) LowStock(ctx context.Context) []models.Part {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Part{}
	for _, part := range s.parts {
		if part.LowStock() {
			out = append(out, part)
		}
	}
	sortByID(out, func(p models.Part) string { return p.ID })
	return out
}

func (s *store) Stats(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lowStock := 0
	for _, part := range s.parts {
		if part.LowStock() {
			lowStock++
		}
	}
	return Stats{
		Parts:     len(s.parts),
		Services:  len(s.services),
		Customers: len(s.customers),
		Invoices:  len(s.invoices),
		LowStock:  lowStock,
	}
}

// publishSizes assumes the caller holds the lock.
func (s *store) publishSizes() {
	s.metrics.SetCollectionSize("parts", len(s.parts))
	s.metrics.SetCollectionSize("services", len(s.services))
	s.metrics.SetCollectionSize("customers", len(s.customers))
	s.metrics.SetCollectionSize("invoices", len(s.invoices))
}

func sortByID[T any](items []T, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}
