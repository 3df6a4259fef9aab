package domain

import "time"

// Transient market data shapes. These are cache values rebuilt from
// upstream responses and are never persisted.

// Quote is a live price snapshot for a symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// SearchResult is one match from a symbol search.
type SearchResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// HistoricalPoint is one closing price in a historical series.
type HistoricalPoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}
