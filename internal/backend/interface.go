package backend

import (
	"context"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/ledger"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/services"
)

// Backend is everything the dashboard reads
type Backend interface {
	ledger.AccountReader
	ledger.TransactionLister
	ledger.ActionLister
}

// CleanupFunc releases backend resources
type CleanupFunc func() error

// ReadyFunc reports whether the backend can serve requests
type ReadyFunc func(ctx context.Context) error

// BackendResult contains the backend instance and its lifecycle hooks
type BackendResult struct {
	Backend Backend
	// Publisher is nil when no broker is configured.
	Publisher services.EventPublisher
	Ready     ReadyFunc
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Seed data directory, read by both backends
	DataDirectory string

	// AMQP, optional
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
