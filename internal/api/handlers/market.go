package handlers

import (
	"errors"
	"net/http"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// MarketHandler handles HTTP requests for market data refresh operations.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler with the provided service dependency.
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// RefreshCoins handles POST requests to refresh the cached coin list.
//
// Endpoint: POST /api/market/coins/refresh
// Response: 204 No Content
// Error: 429 Too Many Requests within the cooldown window
// Error: 500 Internal Server Error if the refresh fails
func (h *MarketHandler) RefreshCoins(w http.ResponseWriter, r *http.Request) {
	if err := h.marketService.RefreshCoinList(r.Context()); err != nil {
		if errors.Is(err, apperrors.ErrTooManyRequests) {
			response.RespondError(w, http.StatusTooManyRequests, apperrors.ErrTooManyRequests.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshCoinList.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// RefreshPrices handles POST requests to warm the price cache for a random
// window of cached coins.
//
// Endpoint: POST /api/market/prices/refresh
// Response: 204 No Content
// Error: 429 Too Many Requests within the cooldown window
// Error: 500 Internal Server Error when no coins are cached or the refresh fails
func (h *MarketHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	if err := h.marketService.RefreshRandomCoinPrices(r.Context()); err != nil {
		if errors.Is(err, apperrors.ErrTooManyRequests) {
			response.RespondError(w, http.StatusTooManyRequests, apperrors.ErrTooManyRequests.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
