package backend

import (
	"context"
	"fmt"
	"path/filepath"

	"finanger/internal/log"
	"finanger/internal/storage"
	"finanger/internal/store"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *log.Logger) Factory {
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentStorage),
	}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case JSONBackend:
		return f.createJSONBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createJSONBackend(config Config) (*Result, error) {
	dataDir := config.DataDirectory

	f.logger.Info("Initialized JSON file backend",
		log.FieldBackend, JSONBackend,
		"data_directory", dataDir)

	return &Result{
		Backend: &Backend{
			Users:        store.NewUserStore(filepath.Join(dataDir, "users.json")),
			Transactions: store.NewTransactionStore(filepath.Join(dataDir, "transactions")),
			Goals:        store.NewGoalStore(filepath.Join(dataDir, "goals")),
		},
		Cleanup: nil, // file stores hold no open handles
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		log.FieldBackend, SQLiteBackend,
		"db_path", config.SQLiteDBPath)

	return &Result{
		Backend: &Backend{
			Users:        repo.Users(),
			Transactions: repo.Transactions(),
			Goals:        repo.Goals(),
		},
		Cleanup: repo.Close,
	}, nil
}
