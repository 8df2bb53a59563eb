package analytics

import (
	"math"
	"testing"
)

func TestFormatRate(t *testing.T) {
	pos := 0.1523
	neg := -0.05
	nan := math.NaN()

	tests := []struct {
		name string
		rate *float64
		want string
	}{
		{"positive", &pos, "15.23%"},
		{"negative", &neg, "-5.00%"},
		{"nil", nil, "N/A"},
		{"nan", &nan, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRate(tt.rate); got != tt.want {
				t.Errorf("FormatRate = %q, want %q", got, tt.want)
			}
		})
	}
}
