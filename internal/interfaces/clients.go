package interfaces

import (
	"context"

	"github.com/naganikhilbijjala/finpilot/internal/models"
)

// QuoteClient fetches current market quotes for instruments.
type QuoteClient interface {
	// GetQuote returns the current price for a ticker.
	GetQuote(ctx context.Context, ticker string) (*models.StockPrice, error)
}
