// Package backend selects and assembles the persistence layer. Both the JSON
// file stores and the SQLite repositories satisfy the same repository
// interfaces, so the rest of the application is backend-agnostic.
package backend

import (
	"context"

	"finanger/internal/core"
)

// UserRepository stores credential records keyed by case-insensitive username.
type UserRepository interface {
	All() ([]core.User, error)
	Append(u core.User) error
	FindByUsername(name string) (core.User, error)
	FindByID(id string) (core.User, error)
	Update(oldName string, updated core.User) error
}

// TransactionRepository stores per-user transactions matched structurally.
type TransactionRepository interface {
	Load(userID string) ([]core.Transaction, error)
	Add(userID string, t core.Transaction) error
	Replace(userID string, txs []core.Transaction) error
	Update(userID string, old, updated core.Transaction) error
	Delete(userID string, t core.Transaction) error
}

// GoalRepository stores per-user goals matched by generated id.
type GoalRepository interface {
	Load(userID string) ([]core.Goal, error)
	Add(userID string, g core.Goal) (core.Goal, error)
	Get(userID, goalID string) (core.Goal, error)
	Update(userID string, updated core.Goal) error
	Delete(userID, goalID string) error
}

// Backend bundles the three repositories of one persistence layer.
type Backend struct {
	Users        UserRepository
	Transactions TransactionRepository
	Goals        GoalRepository
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the backend instance and optional cleanup function.
type Result struct {
	Backend *Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}
