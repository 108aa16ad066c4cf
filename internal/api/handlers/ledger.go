package handlers

import (
	"net/http"
	"slices"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// LedgerHandler handles HTTP requests for ledger import and retrieval.
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler with the provided service dependency.
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// ImportResponse reports how many rows of an uploaded ledger were imported.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// Import handles POST requests carrying a raw Coinbase CSV export as the
// request body. The stored ledger is replaced wholesale with the rows that
// parsed; malformed rows are skipped silently.
//
// Endpoint: POST /api/ledger/import
// Request Body: CSV text
// Response: 200 OK with ImportResponse
// Error: 500 Internal Server Error if persistence fails
func (h *LedgerHandler) Import(w http.ResponseWriter, r *http.Request) {
	imported, err := h.ledgerService.ImportLedger(r.Body)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImportLedger.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ImportResponse{Imported: imported})
}

// List handles GET requests for the flat transaction list, most recent first.
//
// Endpoint: GET /api/ledger
// Response: 200 OK with array of TransactionResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *LedgerHandler) List(w http.ResponseWriter, _ *http.Request) {
	transactions, err := h.ledgerService.GetTransactions()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	flat := make([]model.TransactionResponse, len(transactions))
	for i, t := range transactions {
		flat[i] = model.TransactionResponse{
			Date:   t.Date,
			Symbol: t.Symbol,
			Value:  t.Quantity,
		}
	}
	slices.SortStableFunc(flat, func(a, b model.TransactionResponse) int {
		return b.Date.Compare(a.Date)
	})

	response.RespondJSON(w, http.StatusOK, flat)
}
