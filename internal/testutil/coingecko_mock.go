package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/coingecko"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// MockGeckoClient is a mock implementation of coingecko.Client for testing.
// It returns predefined test data instead of making actual API calls.
//
// Fetches can run concurrently, so the call counters are mutex-guarded.
type MockGeckoClient struct {
	// CoinList is the response returned by GetCoinList
	CoinList []model.Coin
	// Charts maps coin ids to the market chart returned by GetMarketHistory
	Charts map[string]coingecko.MarketChart
	// Err is the error to return from all methods
	Err error

	mu sync.Mutex
	// CoinListCalls tracks how many times GetCoinList was called
	CoinListCalls int
	// HistoryCalls tracks how many times GetMarketHistory was called, per coin id
	HistoryCalls map[string]int
}

// NewMockGeckoClient creates a new mock CoinGecko client with no data configured.
func NewMockGeckoClient() *MockGeckoClient {
	return &MockGeckoClient{
		Charts:       make(map[string]coingecko.MarketChart),
		HistoryCalls: make(map[string]int),
	}
}

// GetCoinList mocks the coin list query with the configured data.
func (m *MockGeckoClient) GetCoinList(_ context.Context) ([]model.Coin, error) {
	m.mu.Lock()
	m.CoinListCalls++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.CoinList, nil
}

// GetMarketHistory mocks the market chart query with the configured data.
// Coins without a configured chart return an empty chart, mirroring the real
// client's behavior for unknown coins.
func (m *MockGeckoClient) GetMarketHistory(_ context.Context, coinID string) (coingecko.MarketChart, error) {
	m.mu.Lock()
	m.HistoryCalls[coinID]++
	m.mu.Unlock()

	if m.Err != nil {
		return coingecko.MarketChart{}, m.Err
	}
	return m.Charts[coinID], nil
}

// TotalHistoryCalls returns the total GetMarketHistory call count across all coins.
func (m *MockGeckoClient) TotalHistoryCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, n := range m.HistoryCalls {
		total += n
	}
	return total
}

// WithCoinList configures the mock coin list response.
func (m *MockGeckoClient) WithCoinList(coins []model.Coin) *MockGeckoClient {
	m.CoinList = coins
	return m
}

// WithChart configures the market chart returned for a coin id.
func (m *MockGeckoClient) WithChart(coinID string, chart coingecko.MarketChart) *MockGeckoClient {
	m.Charts[coinID] = chart
	return m
}

// WithError configures the mock to return the specified error from all methods.
func (m *MockGeckoClient) WithError(err error) *MockGeckoClient {
	m.Err = err
	return m
}

// CreateMockChart creates a market chart with `days` daily price points ending
// at endDate, each priced via the price function over the day index.
//
// Example usage:
//
//	chart := testutil.CreateMockChart(end, 3, func(i int) float64 { return 100 + float64(i) })
func CreateMockChart(endDate time.Time, days int, price func(i int) float64) coingecko.MarketChart {
	pairs := make([][]float64, days)
	for i := 0; i < days; i++ {
		date := endDate.AddDate(0, 0, -days+i+1)
		pairs[i] = []float64{float64(date.UnixMilli()), price(i)}
	}
	return coingecko.MarketChart{Prices: pairs}
}
