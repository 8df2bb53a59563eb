// Package analytics implements the portfolio return analytics engine:
// cash-flow construction, the closed-form CAGR calculator, and the
// Newton-Raphson XIRR solver used for multi-purchase holdings.
package analytics

import (
	"time"

	"github.com/naganikhilbijjala/finpilot/internal/models"
)

// CashFlow represents a single timed monetary event.
// Negative values = money out (purchases), positive values = money in
// (current valuation or redemption).
type CashFlow struct {
	Amount float64
	When   time.Time
}

// BuildCashFlows converts transactions into a cash-flow series: one outflow
// of -(quantity × price) per transaction at its purchase time, plus one
// synthetic inflow of currentValue at now. The result carries no ordering
// guarantee; the solver sorts by timestamp before use.
func BuildCashFlows(transactions []models.Transaction, currentValue float64, now time.Time) []CashFlow {
	flows := make([]CashFlow, 0, len(transactions)+1)
	for _, t := range transactions {
		flows = append(flows, CashFlow{
			Amount: -(t.Quantity * t.Price),
			When:   t.PurchasedAt,
		})
	}
	flows = append(flows, CashFlow{Amount: currentValue, When: now})
	return flows
}
