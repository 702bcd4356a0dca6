package storage

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/torqueworks/garageledger-backend/internal/ledger"
	"github.com/torqueworks/garageledger-backend/pkg/config"
	pkgerrors "github.com/torqueworks/garageledger-backend/pkg/errors"
	"github.com/torqueworks/garageledger-backend/pkg/models"
)

const (
	partsFile     = "parts.json"
	servicesFile  = "services.json"
	customersFile = "customers.json"
	invoicesFile  = "invoices.json"
)

// FileStore persists each collection as one JSON file under a data
// directory. Saves are whole-file replaces; there is no locking against
// other processes and no atomic rename.
type FileStore struct {
	dir      string
	filePerm fs.FileMode
	dirPerm  fs.FileMode
}

// NewFileStore returns a store rooted at the configured data directory.
func NewFileStore(cfg config.StorageConfig) *FileStore {
	return &FileStore{
		dir:      cfg.DataDir,
		filePerm: cfg.FilePerm(),
		dirPerm:  cfg.DirPerm(),
	}
}

// Dir exposes the data directory for logging.
func (s *FileStore) Dir() string {
	return s.dir
}

// Ping verifies the data directory is usable, creating it if absent.
func (s *FileStore) Ping(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, s.dirPerm); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "creating data directory")
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "checking data directory")
	}
	if !info.IsDir() {
		return pkgerrors.New(pkgerrors.CodeStorage, "data path is not a directory")
	}
	return nil
}

func (s *FileStore) LoadParts(ctx context.Context) (map[string]models.Part, bool, error) {
	raw, found, err := s.read(partsFile)
	if err != nil || !found {
		return map[string]models.Part{}, found, err
	}
	parts, err := decodeParts(raw)
	if err != nil {
		return nil, true, pkgerrors.Wrap(pkgerrors.CodeCorruptData, err, "decoding "+partsFile)
	}
	return parts, true, nil
}

func (s *FileStore) LoadServices(ctx context.Context) (map[string]models.Service, bool, error) {
	raw, found, err := s.read(servicesFile)
	if err != nil || !found {
		return map[string]models.Service{}, found, err
	}
	services, err := decodeServices(raw)
	if err != nil {
		return nil, true, pkgerrors.Wrap(pkgerrors.CodeCorruptData, err, "decoding "+servicesFile)
	}
	return services, true, nil
}

func (s *FileStore) LoadCustomers(ctx context.Context) (map[string]models.Customer, bool, error) {
	raw, found, err := s.read(customersFile)
	if err != nil || !found {
		return map[string]models.Customer{}, found, err
	}
	customers, err := decodeCustomers(raw)
	if err != nil {
		return nil, true, pkgerrors.Wrap(pkgerrors.CodeCorruptData, err, "decoding "+customersFile)
	}
	return customers, true, nil
}

func (s *FileStore) LoadInvoices(ctx context.Context) ([]models.Invoice, bool, error) {
	raw, found, err := s.read(invoicesFile)
	if err != nil || !found {
		return []models.Invoice{}, found, err
	}
	invoices, err := decodeInvoices(raw)
	if err != nil {
		return nil, true, pkgerrors.Wrap(pkgerrors.CodeCorruptData, err, "decoding "+invoicesFile)
	}
	return invoices, true, nil
}

// SaveAll rewrites all four collection files, creating the data directory
// if absent. A failure part-way leaves earlier files newer than later
// ones; callers treat any error as fatal for the save.
func (s *FileStore) SaveAll(ctx context.Context, snap ledger.Snapshot) error {
	if err := os.MkdirAll(s.dir, s.dirPerm); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "creating data directory")
	}

	files := []struct {
		name    string
		payload any
	}{
		{partsFile, snap.Parts},
		{servicesFile, snap.Services},
		{customersFile, snap.Customers},
		{invoicesFile, snap.Invoices},
	}
	for _, file := range files {
		raw, err := json.MarshalIndent(file.payload, "", "  ")
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding "+file.name)
		}
		if err := os.WriteFile(filepath.Join(s.dir, file.name), raw, s.filePerm); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "writing "+file.name)
		}
	}
	return nil
}

func (s *FileStore) read(name string) ([]byte, bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "reading "+name)
	}
	return raw, true, nil
}
