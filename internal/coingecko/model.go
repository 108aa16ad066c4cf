package coingecko

import (
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// CoinListEntry represents one element of the raw /coins/list response.
type CoinListEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// MarketChart represents the raw /coins/{id}/market_chart response.
// Prices is a list of [millisecond-epoch, price] pairs in ascending order.
// Only the price series is consumed; the response also carries market caps
// and volumes, which are ignored.
type MarketChart struct {
	Prices [][]float64 `json:"prices"`
}

// PricePoints converts the raw price pairs into typed price points.
// Pairs that do not have exactly two elements are skipped.
func (m MarketChart) PricePoints() []model.PricePoint {
	points := make([]model.PricePoint, 0, len(m.Prices))
	for _, pair := range m.Prices {
		if len(pair) != 2 {
			continue
		}
		points = append(points, model.PricePoint{
			Date:  time.UnixMilli(int64(pair[0])).UTC(),
			Price: pair[1],
		})
	}
	return points
}
