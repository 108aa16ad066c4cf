package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// parseJSON decodes a request body into the given request type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// parseCashParam reads a non-negative float query parameter, defaulting to 0
// for missing or unparseable values.
func parseCashParam(r *http.Request, name string) float64 {
	value, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
