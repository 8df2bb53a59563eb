// Package portfolio manages user transactions and computes portfolio
// analytics against live market prices.
package portfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/naganikhilbijjala/finpilot/internal/common"
	"github.com/naganikhilbijjala/finpilot/internal/interfaces"
	"github.com/naganikhilbijjala/finpilot/internal/models"
	"github.com/naganikhilbijjala/finpilot/internal/services/analytics"
)

// Service implements the PortfolioService interface.
type Service struct {
	storage    interfaces.StorageManager
	quotes     interfaces.QuoteClient
	aggregator *analytics.Aggregator
	logger     *common.Logger
}

// NewService creates a new portfolio service.
func NewService(storage interfaces.StorageManager, quotes interfaces.QuoteClient, logger *common.Logger) *Service {
	return &Service{
		storage:    storage,
		quotes:     quotes,
		aggregator: analytics.NewAggregator(logger),
		logger:     logger,
	}
}

// ListTransactions returns the user's transactions, purchase date ascending.
func (s *Service) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	txns, err := s.storage.PortfolioStore().ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// CreateTransaction validates and stores a new transaction for the user.
func (s *Service) CreateTransaction(ctx context.Context, userID string, tx *models.Transaction) (*models.Transaction, error) {
	now := time.Now().UTC()

	tx.Normalize()
	if err := tx.Validate(now); err != nil {
		return nil, err
	}

	tx.ID = uuid.New().String()
	tx.UserID = userID
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := s.storage.PortfolioStore().SaveTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("ticker", tx.Ticker).
		Float64("quantity", tx.Quantity).
		Msg("Transaction created")

	return tx, nil
}

// UpdateTransaction replaces all user-editable fields of an existing
// transaction (ticker, quantity, price, purchase date).
func (s *Service) UpdateTransaction(ctx context.Context, userID, id string, tx *models.Transaction) (*models.Transaction, error) {
	now := time.Now().UTC()

	existing, err := s.storage.PortfolioStore().GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	tx.Normalize()
	if err := tx.Validate(now); err != nil {
		return nil, err
	}

	existing.Ticker = tx.Ticker
	existing.Quantity = tx.Quantity
	existing.Price = tx.Price
	existing.PurchasedAt = tx.PurchasedAt
	existing.UpdatedAt = now

	if err := s.storage.PortfolioStore().SaveTransaction(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeleteTransaction removes one of the user's transactions.
func (s *Service) DeleteTransaction(ctx context.Context, userID, id string) error {
	return s.storage.PortfolioStore().DeleteTransaction(ctx, userID, id)
}

// GetQuote returns the current market quote for one ticker.
func (s *Service) GetQuote(ctx context.Context, ticker string) (*models.StockPrice, error) {
	return s.quotes.GetQuote(ctx, ticker)
}

// GetAnalytics loads the user's transactions, fetches current prices for all
// distinct tickers in parallel, and computes the analytics document as of now.
func (s *Service) GetAnalytics(ctx context.Context, userID string, now time.Time) (*models.PortfolioAnalytics, error) {
	txns, err := s.storage.PortfolioStore().ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	prices := s.fetchPrices(ctx, distinctTickers(txns))

	return s.aggregator.Aggregate(txns, prices, now), nil
}

// distinctTickers returns the distinct tickers in first-appearance order.
func distinctTickers(txns []models.Transaction) []string {
	var tickers []string
	seen := make(map[string]bool)
	for _, tx := range txns {
		if !seen[tx.Ticker] {
			seen[tx.Ticker] = true
			tickers = append(tickers, tx.Ticker)
		}
	}
	return tickers
}

// fetchPrices fans out one quote request per ticker. Failures are
// independent: a failed fetch logs and leaves its ticker out of the map,
// which the aggregator treats as a skipped holding.
func (s *Service) fetchPrices(ctx context.Context, tickers []string) map[string]*models.StockPrice {
	prices := make(map[string]*models.StockPrice, len(tickers))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()

			quote, err := s.quotes.GetQuote(ctx, ticker)
			if err != nil {
				s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Failed to fetch price")
				return
			}

			mu.Lock()
			prices[ticker] = quote
			mu.Unlock()
		}(ticker)
	}

	wg.Wait()

	return prices
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
