// Package storage provides BadgerDB-based persistence
package storage

import (
	"fmt"

	"github.com/naganikhilbijjala/finpilot/internal/common"
	"github.com/naganikhilbijjala/finpilot/internal/interfaces"
	"github.com/naganikhilbijjala/finpilot/internal/storage/badger"
)

// Manager coordinates the two storage areas: internal (user accounts +
// system KV) and user (portfolio transactions).
type Manager struct {
	internalStore  interfaces.InternalStore
	portfolioStore interfaces.PortfolioStore
	logger         *common.Logger
}

// NewStorageManager opens both storage areas from the config paths.
func NewStorageManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	internalDB, err := badger.NewStore(logger, config.Storage.Internal.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open internal store: %w", err)
	}

	userDB, err := badger.NewStore(logger, config.Storage.User.Path)
	if err != nil {
		internalDB.Close()
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}

	return &Manager{
		internalStore:  badger.NewInternalStorage(internalDB, logger),
		portfolioStore: badger.NewTransactionStorage(userDB, logger),
		logger:         logger,
	}, nil
}

// InternalStore returns the user-account and system KV store.
func (m *Manager) InternalStore() interfaces.InternalStore {
	return m.internalStore
}

// PortfolioStore returns the transaction store.
func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.portfolioStore
}

// Close closes all storage areas.
func (m *Manager) Close() error {
	var firstErr error
	if m.portfolioStore != nil {
		if err := m.portfolioStore.Close(); err != nil {
			firstErr = err
		}
	}
	if m.internalStore != nil {
		if err := m.internalStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
