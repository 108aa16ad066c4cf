package handlers

import (
	"net/http"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the portfolio query surface.
// It serves as the HTTP layer adapter, parsing requests and delegating
// computation to the portfolioService.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Snapshot handles GET requests for the full portfolio snapshot: slices,
// combined time series, flat transaction list and totals. Price histories
// are fetched (and cached) on demand for any held coin not yet in the cache.
//
// Endpoint: GET /api/portfolio?nextCash=N
// Response: 200 OK with PortfolioSnapshot
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	nextCash := parseCashParam(r, "nextCash")

	snapshot, err := h.portfolioService.Snapshot(r.Context(), nextCash)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// Slices handles GET requests to recompute allocation slices for a new cash
// amount. Recomputing with the same amount yields identical output until the
// ledger or price data changes.
//
// Endpoint: GET /api/portfolio/slices?nextCash=N
// Response: 200 OK with array of Slice, sorted descending by total value
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Slices(w http.ResponseWriter, r *http.Request) {
	nextCash := parseCashParam(r, "nextCash")

	slices, err := h.portfolioService.Slices(r.Context(), nextCash)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, slices)
}
