package handlers

import (
	"errors"
	"net/http"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService  *service.SystemService
	settingService *service.SettingService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, settingService *service.SettingService) *SystemHandler {
	return &SystemHandler{
		systemService:  systemService,
		settingService: settingService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
//
// Endpoint: GET /api/system/health
// Response: 200 OK when healthy, 503 Service Unavailable otherwise
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// Version returns the application version string
//
// Endpoint: GET /api/system/version
// Response: 200 OK with {"version": "..."}
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]string{
		"version": h.systemService.CheckVersion(),
	})
}

// UpdateAPIKey stores a new market data API key, encrypted at rest.
//
// Endpoint: PUT /api/system/api-key
// Request Body: UpdateAPIKeyRequest (apiKey)
// Response: 204 No Content
// Error: 400 Bad Request for an empty key or invalid body
// Error: 409 Conflict when no fernet key is configured
// Error: 500 Internal Server Error if storage fails
func (h *SystemHandler) UpdateAPIKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateAPIKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.settingService.SetAPIKey(req.APIKey); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingAPIKey):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrMissingAPIKey.Error(), nil)
		case errors.Is(err, apperrors.ErrFernetKeyNotConfigured):
			response.RespondError(w, http.StatusConflict, apperrors.ErrFernetKeyNotConfigured.Error(), nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToStoreAPIKey.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
