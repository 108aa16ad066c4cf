package model

import "time"

// PortfolioItem groups one symbol's ledger transactions with its target
// allocation. Transactions keep their original ledger order; the aggregator
// does not re-sort them.
type PortfolioItem struct {
	Symbol        string        `json:"symbol"`
	Transactions  []Transaction `json:"transactions"`
	TargetPercent float64       `json:"targetPercent"`
}

// TimeSeriesPoint is one entry of a valuation time series.
type TimeSeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Asset is the valuation engine's output for a single holding: a cumulative
// value history plus its totals. A holding with no usable price data is
// represented as a zero-valued Asset, never as an error.
type Asset struct {
	Symbol        string            `json:"symbol"`
	History       []TimeSeriesPoint `json:"history"`
	TotalSpent    float64           `json:"totalSpent"`
	TotalValue    float64           `json:"totalValue"`
	TargetPercent float64           `json:"targetPercent"`
}

// Slice is the display-ready summary of one asset's standing versus its
// target allocation. Computed fresh per next-cash amount, never stored.
type Slice struct {
	Symbol        string  `json:"symbol"`
	TotalValue    float64 `json:"totalValue"`
	Gain          float64 `json:"gain"`
	Return        float64 `json:"return"`
	TargetPercent float64 `json:"targetPercent"`
	ActualPercent float64 `json:"actualPercent"`
	NextBuy       float64 `json:"nextBuy"`
}

// PortfolioSnapshot is the full query surface consumed by the presentation
// layer: slices, the combined time series, the flat transaction list and the
// portfolio-wide totals.
type PortfolioSnapshot struct {
	Slices        []Slice               `json:"slices"`
	TimeSeries    []TimeSeriesPoint     `json:"timeSeries"`
	Transactions  []TransactionResponse `json:"transactions"`
	SumTotalValue float64               `json:"sumTotalValue"`
	SumTotalCost  float64               `json:"sumTotalCost"`
}
