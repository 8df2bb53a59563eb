package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/naganikhilbijjala/finpilot/internal/models"
)

const (
	xirrInitialGuess = 0.10
	xirrTolerance    = 1e-6
	xirrMaxIter      = 100
)

// solveOutcome tags the result of a Newton-Raphson run. Non-convergence and
// divergence are defined outcomes of the solver, not errors.
type solveOutcome int

const (
	solveConverged solveOutcome = iota
	solveNoConvergence
	solveDiverged
)

// CalculateXIRR computes the annualised internal rate of return that zeroes
// the net present value of the given cash flows. It returns nil for fewer
// than two flows (no rate of return is defined), when the iteration fails to
// converge within the cap, or when an iterate diverges to a non-finite value
// (e.g. all flows share one sign and no real solution exists).
func CalculateXIRR(flows []CashFlow) *float64 {
	if len(flows) < 2 {
		return nil
	}

	sorted := make([]CashFlow, len(flows))
	copy(sorted, flows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].When.Before(sorted[j].When)
	})

	// Year offsets from the earliest flow, so the first flow is at zero.
	base := sorted[0].When
	years := make([]float64, len(sorted))
	for i, f := range sorted {
		years[i] = f.When.Sub(base).Hours() / 24 / daysPerYear
	}

	rate, outcome := solveNewton(sorted, years)
	if outcome != solveConverged {
		return nil
	}
	// A converged value that is itself non-finite is invalid.
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil
	}
	return &rate
}

// solveNewton runs Newton-Raphson on NPV(r) = Σ amount_i / (1+r)^years_i.
// The derivative is Σ −amount_i · years_i / ((1+r)^years_i · (1+r)).
func solveNewton(flows []CashFlow, years []float64) (float64, solveOutcome) {
	guess := xirrInitialGuess

	for iter := 0; iter < xirrMaxIter; iter++ {
		npv := 0.0
		dnpv := 0.0

		for i, f := range flows {
			factor := math.Pow(1+guess, years[i])
			npv += f.Amount / factor
			dnpv -= f.Amount * years[i] / (factor * (1 + guess))
		}

		newGuess := guess - npv/dnpv

		if math.Abs(newGuess-guess) < xirrTolerance {
			return newGuess, solveConverged
		}

		guess = newGuess

		// A near-zero derivative or a sign-degenerate series sends the
		// iterate to infinity; abort rather than oscillate.
		if math.IsNaN(guess) || math.IsInf(guess, 0) {
			return 0, solveDiverged
		}
	}

	return 0, solveNoConvergence
}

// CalculateStockXIRR computes the XIRR for one instrument's transactions,
// valuing the total quantity held at currentPrice today. An empty
// transaction list yields nil.
func CalculateStockXIRR(transactions []models.Transaction, currentPrice float64, now time.Time) *float64 {
	if len(transactions) == 0 {
		return nil
	}

	totalQuantity := 0.0
	for _, t := range transactions {
		totalQuantity += t.Quantity
	}
	currentValue := totalQuantity * currentPrice

	return CalculateXIRR(BuildCashFlows(transactions, currentValue, now))
}
