package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naganikhilbijjala/finpilot/internal/common"
	"github.com/naganikhilbijjala/finpilot/internal/models"
)

func testAggregator() *Aggregator {
	return NewAggregator(common.NewSilentLogger())
}

func price(ticker string, p float64) *models.StockPrice {
	return &models.StockPrice{Ticker: ticker, CurrentPrice: p, Currency: "USD"}
}

func TestAggregate_Empty(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got := testAggregator().Aggregate(nil, map[string]*models.StockPrice{}, now)

	require.NotNil(t, got)
	assert.Empty(t, got.Holdings)
	assert.Zero(t, got.TotalInvested)
	assert.Zero(t, got.TotalCurrentValue)
	assert.Zero(t, got.TotalAbsoluteGain)
	assert.Zero(t, got.TotalPercentageGain)
	assert.Nil(t, got.OverallXIRR)
	assert.Equal(t, now, got.LastUpdated)
}

func TestAggregate_SingleTransactionUsesCAGR(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{ID: "1", Ticker: "AAPL", Quantity: 10, Price: 100, PurchasedAt: now.AddDate(-1, 0, 0)},
	}
	prices := map[string]*models.StockPrice{"AAPL": price("AAPL", 120)}

	got := testAggregator().Aggregate(txns, prices, now)

	require.Len(t, got.Holdings, 1)
	h := got.Holdings[0]
	assert.Equal(t, "AAPL", h.Ticker)
	assert.NotNil(t, h.CAGR, "single-transaction holding carries CAGR")
	assert.Nil(t, h.XIRR, "single-transaction holding has null XIRR")
	assert.InDelta(t, 1000.0, h.TotalInvested, 1e-9)
	assert.InDelta(t, 1200.0, h.CurrentValue, 1e-9)
	assert.InDelta(t, 200.0, h.AbsoluteGain, 1e-9)
	assert.InDelta(t, 20.0, h.PercentageGain, 1e-9)
}

func TestAggregate_MultipleTransactionsUseXIRR(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{ID: "1", Ticker: "VTI", Quantity: 10, Price: 200, PurchasedAt: now.AddDate(-2, 0, 0)},
		{ID: "2", Ticker: "VTI", Quantity: 10, Price: 220, PurchasedAt: now.AddDate(-1, 0, 0)},
	}
	prices := map[string]*models.StockPrice{"VTI": price("VTI", 250)}

	got := testAggregator().Aggregate(txns, prices, now)

	require.Len(t, got.Holdings, 1)
	h := got.Holdings[0]
	assert.Nil(t, h.CAGR, "multi-transaction holding has null CAGR")
	require.NotNil(t, h.XIRR)
	assert.Greater(t, *h.XIRR, 0.0)
	assert.InDelta(t, 210.0, h.AveragePrice, 1e-9)
}

func TestAggregate_MissingPriceSkipsHolding(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{ID: "1", Ticker: "AAPL", Quantity: 10, Price: 100, PurchasedAt: now.AddDate(-1, 0, 0)},
		{ID: "2", Ticker: "GONE", Quantity: 5, Price: 50, PurchasedAt: now.AddDate(-1, 0, 0)},
	}
	prices := map[string]*models.StockPrice{"AAPL": price("AAPL", 120)}

	got := testAggregator().Aggregate(txns, prices, now)

	require.Len(t, got.Holdings, 1)
	assert.Equal(t, "AAPL", got.Holdings[0].Ticker)
	// Skipped holding contributes nothing to the sums.
	assert.InDelta(t, 1000.0, got.TotalInvested, 1e-9)
	assert.InDelta(t, 1200.0, got.TotalCurrentValue, 1e-9)
}

func TestAggregate_FutureDatedCAGRLeftNull(t *testing.T) {
	// Aggregation continues with the holding's CAGR left null when the
	// calculation fails.
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{ID: "1", Ticker: "AAPL", Quantity: 10, Price: 100, PurchasedAt: now.AddDate(0, 1, 0)},
	}
	prices := map[string]*models.StockPrice{"AAPL": price("AAPL", 120)}

	got := testAggregator().Aggregate(txns, prices, now)

	require.Len(t, got.Holdings, 1)
	assert.Nil(t, got.Holdings[0].CAGR)
	assert.Nil(t, got.Holdings[0].XIRR)
}

func TestAggregate_HoldingOrderFollowsFirstAppearance(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{ID: "1", Ticker: "MSFT", Quantity: 1, Price: 100, PurchasedAt: now.AddDate(-1, 0, 0)},
		{ID: "2", Ticker: "AAPL", Quantity: 1, Price: 100, PurchasedAt: now.AddDate(-1, 0, 0)},
		{ID: "3", Ticker: "MSFT", Quantity: 1, Price: 110, PurchasedAt: now.AddDate(0, -6, 0)},
	}
	prices := map[string]*models.StockPrice{
		"MSFT": price("MSFT", 120),
		"AAPL": price("AAPL", 120),
	}

	got := testAggregator().Aggregate(txns, prices, now)

	require.Len(t, got.Holdings, 2)
	assert.Equal(t, "MSFT", got.Holdings[0].Ticker)
	assert.Equal(t, "AAPL", got.Holdings[1].Ticker)
}

func TestAggregate_OverallXIRRUsesFlatTransactionList(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{ID: "1", Ticker: "AAPL", Quantity: 10, Price: 100, PurchasedAt: now.AddDate(-1, 0, 0)},
		{ID: "2", Ticker: "MSFT", Quantity: 10, Price: 100, PurchasedAt: now.AddDate(0, -6, 0)},
	}
	prices := map[string]*models.StockPrice{
		"AAPL": price("AAPL", 120),
		"MSFT": price("MSFT", 110),
	}

	got := testAggregator().Aggregate(txns, prices, now)

	require.NotNil(t, got.OverallXIRR)

	// Must match a direct solve over the flat list plus the terminal inflow,
	// not any combination of the per-holding rates.
	want := CalculateXIRR(BuildCashFlows(txns, got.TotalCurrentValue, now))
	require.NotNil(t, want)
	assert.InDelta(t, *want, *got.OverallXIRR, 1e-12)
}

func TestAggregate_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{ID: "1", Ticker: "AAPL", Quantity: 10, Price: 100, PurchasedAt: now.AddDate(-1, 0, 0)},
		{ID: "2", Ticker: "AAPL", Quantity: 5, Price: 110, PurchasedAt: now.AddDate(0, -3, 0)},
		{ID: "3", Ticker: "MSFT", Quantity: 2, Price: 300, PurchasedAt: now.AddDate(0, -9, 0)},
	}
	prices := map[string]*models.StockPrice{
		"AAPL": price("AAPL", 120),
		"MSFT": price("MSFT", 310),
	}

	agg := testAggregator()
	first := agg.Aggregate(txns, prices, now)
	second := agg.Aggregate(txns, prices, now)

	assert.True(t, reflect.DeepEqual(first, second), "identical inputs must produce identical output")
}
