package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Client defines the interface for fetching market data from CoinGecko.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	GetCoinList(ctx context.Context) ([]model.Coin, error)
	GetMarketHistory(ctx context.Context, coinID string) (MarketChart, error)
}

// GeckoClient provides methods for fetching market data from the CoinGecko API.
// It wraps an HTTP client and decodes the coin list and market chart payloads.
//
// Unparseable payloads yield empty results rather than errors: callers must
// tolerate a coin with no price data, and a malformed upstream response is
// treated the same as no data.
type GeckoClient struct {
	httpClient *http.Client
	baseURL    string

	// APIKeyFunc, when set, supplies an optional CoinGecko API key per request.
	APIKeyFunc func() string
}

// NewGeckoClient creates a new CoinGecko client with default HTTP settings.
func NewGeckoClient() *GeckoClient {
	return &GeckoClient{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
	}
}

// NewGeckoClientWithBaseURL creates a client pointed at a custom endpoint.
// Used by tests to target an httptest server.
func NewGeckoClientWithBaseURL(baseURL string) *GeckoClient {
	return &GeckoClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

// GetCoinList fetches the full list of known coins.
//
// Returns an empty list when the payload does not decode; returns an error
// only for transport-level failures or non-2xx statuses.
func (c *GeckoClient) GetCoinList(ctx context.Context) ([]model.Coin, error) {
	data, err := c.get(ctx, c.baseURL+"/coins/list")
	if err != nil {
		return nil, err
	}

	var entries []CoinListEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []model.Coin{}, nil
	}

	coins := make([]model.Coin, len(entries))
	for i, e := range entries {
		coins[i] = model.Coin{ID: e.ID, Symbol: e.Symbol, Name: e.Name}
	}
	return coins, nil
}

// GetMarketHistory fetches the full USD price history for a coin id.
//
// Returns an empty chart when the payload does not decode; returns an error
// only for transport-level failures or non-2xx statuses.
func (c *GeckoClient) GetMarketHistory(ctx context.Context, coinID string) (MarketChart, error) {
	requestURL := fmt.Sprintf(
		"%s/coins/%s/market_chart?vs_currency=usd&days=max",
		c.baseURL,
		url.PathEscape(coinID),
	)

	data, err := c.get(ctx, requestURL)
	if err != nil {
		return MarketChart{}, err
	}

	var chart MarketChart
	if err := json.Unmarshal(data, &chart); err != nil {
		return MarketChart{}, nil
	}

	return chart, nil
}

// get executes a GET request against the CoinGecko API and returns the body.
func (c *GeckoClient) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if c.APIKeyFunc != nil {
		if key := c.APIKeyFunc(); key != "" {
			req.Header.Set("x-cg-demo-api-key", key)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	return data, nil
}
