package analytics

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidInput reports CAGR inputs outside the calculator's domain
// (non-positive values, or a purchase date in the future).
var ErrInvalidInput = errors.New("invalid input")

const (
	daysPerYear = 365.25

	// Below this span the power formula blows up in the exponent, so the
	// calculator falls back to the simple return.
	sameDayThreshold = 1.0 / 365
)

// CalculateCAGR computes the compound annual growth rate:
// (endingValue / beginningValue)^(1/years) − 1.
// All three inputs must be strictly positive.
func CalculateCAGR(beginningValue, endingValue, years float64) (float64, error) {
	if beginningValue <= 0 || endingValue <= 0 || years <= 0 {
		return 0, fmt.Errorf("%w: all values must be positive for CAGR calculation", ErrInvalidInput)
	}
	return math.Pow(endingValue/beginningValue, 1/years) - 1, nil
}

// CalculateCAGRFromDates computes CAGR for a single purchase held from
// purchaseDate until now. Same-day observations return the simple return
// (currentPrice − purchasePrice) / purchasePrice instead of annualising.
func CalculateCAGRFromDates(purchasePrice, currentPrice float64, purchaseDate, now time.Time) (float64, error) {
	years := now.Sub(purchaseDate).Hours() / 24 / daysPerYear

	if years < 0 {
		return 0, fmt.Errorf("%w: purchase date cannot be in the future", ErrInvalidInput)
	}

	if years < sameDayThreshold {
		if purchasePrice <= 0 {
			return 0, fmt.Errorf("%w: all values must be positive for CAGR calculation", ErrInvalidInput)
		}
		return (currentPrice - purchasePrice) / purchasePrice, nil
	}

	return CalculateCAGR(purchasePrice, currentPrice, years)
}
