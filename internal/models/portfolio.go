package models

import "time"

// StockPrice is a current market quote for one ticker.
type StockPrice struct {
	Ticker            string    `json:"ticker"`
	CurrentPrice      float64   `json:"currentPrice"`
	Currency          string    `json:"currency"`
	Timestamp         time.Time `json:"timestamp"`
	RegularMarketTime int64     `json:"regularMarketTime,omitempty"`
}

// Holding aggregates all transactions in one instrument. Exactly one of
// CAGR/XIRR is populated: a single-transaction holding carries CAGR, a
// multi-transaction holding carries XIRR. A nil rate serializes as JSON null.
type Holding struct {
	Ticker         string        `json:"ticker"`
	TotalQuantity  float64       `json:"totalQuantity"`
	AveragePrice   float64       `json:"averagePrice"`
	CurrentPrice   float64       `json:"currentPrice"`
	TotalInvested  float64       `json:"totalInvested"`
	CurrentValue   float64       `json:"currentValue"`
	AbsoluteGain   float64       `json:"absoluteGain"`
	PercentageGain float64       `json:"percentageGain"`
	CAGR           *float64      `json:"cagr"`
	XIRR           *float64      `json:"xirr"`
	Transactions   []Transaction `json:"transactions"`
}

// PortfolioAnalytics is the top-level analytics document returned to clients.
// Holdings are ordered by first appearance of each ticker in the transaction
// list. OverallXIRR is the money-weighted return over the flat transaction
// list plus the total current value as one terminal inflow.
type PortfolioAnalytics struct {
	Holdings            []Holding `json:"holdings"`
	TotalInvested       float64   `json:"totalInvested"`
	TotalCurrentValue   float64   `json:"totalCurrentValue"`
	TotalAbsoluteGain   float64   `json:"totalAbsoluteGain"`
	TotalPercentageGain float64   `json:"totalPercentageGain"`
	OverallXIRR         *float64  `json:"overallXIRR"`
	LastUpdated         time.Time `json:"lastUpdated"`
}
