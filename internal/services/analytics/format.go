package analytics

import (
	"fmt"
	"math"
)

// FormatRate renders a decimal rate as a percentage string, e.g. 0.1523 →
// "15.23%". A nil or non-finite rate renders as "N/A".
func FormatRate(rate *float64) string {
	if rate == nil || math.IsNaN(*rate) || math.IsInf(*rate, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *rate*100)
}
