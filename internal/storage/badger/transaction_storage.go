package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/naganikhilbijjala/finpilot/internal/common"
	"github.com/naganikhilbijjala/finpilot/internal/models"
)

type transactionStorage struct {
	store  *Store
	logger *common.Logger
}

// NewTransactionStorage creates a PortfolioStore backed by BadgerHold.
func NewTransactionStorage(store *Store, logger *common.Logger) *transactionStorage {
	return &transactionStorage{store: store, logger: logger}
}

func (s *transactionStorage) GetTransaction(_ context.Context, userID, id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.store.db.Get(id, &tx)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("transaction '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get transaction '%s': %w", id, err)
	}
	// Transactions are user-scoped; another user's record is not found.
	if tx.UserID != userID {
		return nil, fmt.Errorf("transaction '%s' not found", id)
	}
	return &tx, nil
}

func (s *transactionStorage) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	if err := s.store.db.Upsert(tx.ID, tx); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	s.logger.Debug().
		Str("id", tx.ID).
		Str("user_id", tx.UserID).
		Str("ticker", tx.Ticker).
		Msg("Transaction saved")
	return nil
}

func (s *transactionStorage) DeleteTransaction(ctx context.Context, userID, id string) error {
	// Verify ownership before deleting.
	if _, err := s.GetTransaction(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.db.Delete(id, models.Transaction{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete transaction '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Str("user_id", userID).Msg("Transaction deleted")
	return nil
}

func (s *transactionStorage) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := s.store.db.Find(&txns, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	sort.Slice(txns, func(i, j int) bool {
		return txns[i].PurchasedAt.Before(txns[j].PurchasedAt)
	})

	return txns, nil
}

func (s *transactionStorage) Close() error {
	return s.store.Close()
}
