// Package models defines data structures for FinPilot
package models

import (
	"fmt"
	"strings"
	"time"
)

// Transaction represents a single stock purchase recorded by a user.
// Quantity and Price are positive; fractional shares are allowed.
type Transaction struct {
	ID          string    `json:"id" badgerhold:"key"`
	UserID      string    `json:"user_id" badgerhold:"index"`
	Ticker      string    `json:"ticker"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	PurchasedAt time.Time `json:"purchased_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Cost returns the total amount paid for this transaction.
func (t *Transaction) Cost() float64 {
	return t.Quantity * t.Price
}

// Normalize upper-cases and trims the ticker symbol.
func (t *Transaction) Normalize() {
	t.Ticker = strings.ToUpper(strings.TrimSpace(t.Ticker))
}

// Validate checks the transaction fields against the evaluation time now.
func (t *Transaction) Validate(now time.Time) error {
	if strings.TrimSpace(t.Ticker) == "" {
		return fmt.Errorf("ticker is required")
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if t.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	if t.PurchasedAt.IsZero() {
		return fmt.Errorf("purchased_at is required")
	}
	if t.PurchasedAt.After(now) {
		return fmt.Errorf("purchased_at cannot be in the future")
	}
	return nil
}
