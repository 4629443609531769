package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/amqp"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/ledger/memory"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger

	// newPublisher is swapped in tests; production dials the broker.
	newPublisher func(url, exchange, queue string) (*amqp.Client, error)
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger:       logger,
		newPublisher: amqp.NewClient,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.DataDirectory == "" {
		config.DataDirectory = defaultDataDirectory
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		result = f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	f.attachPublisher(result, config)
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	if err := repo.Seed(ctx, memory.LoadOrDefault(config.DataDirectory)); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("failed to seed SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"data_directory", config.DataDirectory)

	return &BackendResult{
		Backend: repo,
		Ready:   repo.Ping,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) *BackendResult {
	store := memory.NewFromFiles(config.DataDirectory)

	f.logger.Info("Initialized memory backend", "data_directory", config.DataDirectory)

	return &BackendResult{
		Backend: store,
		Ready:   func(context.Context) error { return nil },
		Cleanup: func() error { return nil },
	}
}

// attachPublisher dials the broker when configured. A broker outage never
// prevents startup; quick actions are then only acknowledged locally.
func (f *DefaultFactory) attachPublisher(result *BackendResult, config Config) {
	if config.AMQPURL == "" {
		return
	}

	client, err := f.newPublisher(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		return
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	result.Publisher = client
	backendCleanup := result.Cleanup
	result.Cleanup = func() error {
		if err := client.Close(); err != nil {
			f.logger.Warn("Failed to close AMQP client", "error", err)
		}
		return backendCleanup()
	}
}
