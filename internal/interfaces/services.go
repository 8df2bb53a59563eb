package interfaces

import (
	"context"
	"time"

	"github.com/naganikhilbijjala/finpilot/internal/models"
)

// PortfolioService manages portfolio transactions and computes analytics.
type PortfolioService interface {
	// ListTransactions returns the user's transactions, purchase date ascending.
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)

	// CreateTransaction validates and stores a new transaction.
	CreateTransaction(ctx context.Context, userID string, tx *models.Transaction) (*models.Transaction, error)

	// UpdateTransaction replaces all user-editable fields of an existing transaction.
	UpdateTransaction(ctx context.Context, userID, id string, tx *models.Transaction) (*models.Transaction, error)

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, userID, id string) error

	// GetAnalytics fetches current prices for the user's holdings and
	// computes the full portfolio analytics document as of now.
	GetAnalytics(ctx context.Context, userID string, now time.Time) (*models.PortfolioAnalytics, error)

	// GetQuote returns the current market quote for one ticker.
	GetQuote(ctx context.Context, ticker string) (*models.StockPrice, error)
}
