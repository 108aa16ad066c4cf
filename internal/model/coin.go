package model

import "time"

// Coin is one entry of the upstream coin list. ID is the market data
// provider's canonical identifier (e.g. "bitcoin"), Symbol the ticker ("btc").
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// PricePoint is a single market price sample for a coin. Price histories are
// ascending-chronological and deduplicated by timestamp.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}
