package memory

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/ledger"
)

// SeedFile is the optional dataset file looked up by NewFromFiles.
const SeedFile = "seed_dashboard.json"

// Store serves an immutable dataset from memory.
type Store struct {
	mu   sync.RWMutex
	data ledger.Dataset
}

func New(d ledger.Dataset) *Store {
	return &Store{data: d}
}

// NewFromFiles serves LoadOrDefault(base).
func NewFromFiles(base string) *Store {
	return New(LoadOrDefault(base))
}

// LoadOrDefault loads base/seed_dashboard.json, falling back to the built-in
// demo data when the file is missing or invalid.
func LoadOrDefault(base string) ledger.Dataset {
	path := filepath.Join(base, SeedFile)
	d, err := ledger.LoadDataset(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Ignoring invalid seed file", "path", path, "error", err)
		}
		return DefaultDataset()
	}
	return d
}

func (s *Store) ReadAccount(_ context.Context) (core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Account, nil
}

// ListTransactions returns a copy of the dataset transactions.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.data.Transactions...), nil
}

func (s *Store) ListActions(_ context.Context) ([]core.QuickAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.QuickAction(nil), s.data.Actions...), nil
}
