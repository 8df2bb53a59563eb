package analytics

import (
	"errors"
	"time"

	"github.com/naganikhilbijjala/finpilot/internal/common"
	"github.com/naganikhilbijjala/finpilot/internal/models"
)

// Aggregator groups raw transactions into holdings and computes per-holding
// and portfolio-level return metrics. It holds no state between calls apart
// from the logger; identical inputs produce identical output.
type Aggregator struct {
	logger *common.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger *common.Logger) *Aggregator {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Aggregator{logger: logger}
}

// Aggregate groups transactions by ticker (first-appearance order), computes
// cost basis, valuation, and gain per holding, and dispatches to CAGR for
// single-transaction holdings or XIRR for multi-transaction holdings.
//
// A ticker with no entry in prices is skipped entirely — logged, excluded
// from holdings and from the portfolio sums — so one stale price feed never
// aborts the rest of the portfolio. The overall XIRR is computed over the
// flat transaction list plus the total current value as one terminal inflow,
// not from the per-holding rates.
func (a *Aggregator) Aggregate(transactions []models.Transaction, prices map[string]*models.StockPrice, now time.Time) *models.PortfolioAnalytics {
	analytics := &models.PortfolioAnalytics{
		Holdings:    []models.Holding{},
		LastUpdated: now,
	}

	if len(transactions) == 0 {
		return analytics
	}

	// Group by ticker, preserving first-appearance order.
	var tickers []string
	byTicker := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		if _, seen := byTicker[tx.Ticker]; !seen {
			tickers = append(tickers, tx.Ticker)
		}
		byTicker[tx.Ticker] = append(byTicker[tx.Ticker], tx)
	}

	totalInvested := 0.0
	totalCurrentValue := 0.0

	for _, ticker := range tickers {
		txns := byTicker[ticker]

		price, ok := prices[ticker]
		if !ok || price == nil {
			a.logger.Warn().Str("ticker", ticker).Msg("No price data available, skipping holding")
			continue
		}

		totalQuantity := 0.0
		totalCost := 0.0
		for _, tx := range txns {
			totalQuantity += tx.Quantity
			totalCost += tx.Quantity * tx.Price
		}

		averagePrice := totalCost / totalQuantity
		currentValue := totalQuantity * price.CurrentPrice
		absoluteGain := currentValue - totalCost
		percentageGain := absoluteGain / totalCost * 100

		holding := models.Holding{
			Ticker:         ticker,
			TotalQuantity:  totalQuantity,
			AveragePrice:   averagePrice,
			CurrentPrice:   price.CurrentPrice,
			TotalInvested:  totalCost,
			CurrentValue:   currentValue,
			AbsoluteGain:   absoluteGain,
			PercentageGain: percentageGain,
			Transactions:   txns,
		}

		if len(txns) == 1 {
			cagr, err := CalculateCAGRFromDates(txns[0].Price, price.CurrentPrice, txns[0].PurchasedAt, now)
			if err != nil {
				if !errors.Is(err, ErrInvalidInput) {
					a.logger.Error().Err(err).Str("ticker", ticker).Msg("CAGR calculation failed")
				} else {
					a.logger.Warn().Err(err).Str("ticker", ticker).Msg("CAGR calculation failed")
				}
			} else {
				holding.CAGR = &cagr
			}
		} else {
			holding.XIRR = CalculateStockXIRR(txns, price.CurrentPrice, now)
		}

		analytics.Holdings = append(analytics.Holdings, holding)
		totalInvested += totalCost
		totalCurrentValue += currentValue
	}

	analytics.TotalInvested = totalInvested
	analytics.TotalCurrentValue = totalCurrentValue
	analytics.TotalAbsoluteGain = totalCurrentValue - totalInvested
	if totalInvested > 0 {
		analytics.TotalPercentageGain = analytics.TotalAbsoluteGain / totalInvested * 100
	}

	analytics.OverallXIRR = CalculateXIRR(BuildCashFlows(transactions, totalCurrentValue, now))

	return analytics
}
