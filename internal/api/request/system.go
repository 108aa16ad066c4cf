package request

// UpdateAPIKeyRequest carries a new market data API key to store.
type UpdateAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}
