// Package interfaces defines service contracts for FinPilot
package interfaces

import (
	"context"

	"github.com/naganikhilbijjala/finpilot/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	InternalStore() InternalStore
	PortfolioStore() PortfolioStore

	Close() error
}

// InternalStore manages user accounts and system-level KV.
type InternalStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]string, error)

	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	Close() error
}

// PortfolioStore manages per-user portfolio transactions.
type PortfolioStore interface {
	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error

	// ListTransactions returns the user's transactions ordered by purchase
	// date ascending.
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)

	Close() error
}
