package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/middleware"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	settingService *service.SettingService,
	portfolioService *service.PortfolioService,
	ledgerService *service.LedgerService,
	marketService *service.MarketService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService, settingService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.With(custommiddleware.APIKeyMiddleware).Put("/api-key", systemHandler.UpdateAPIKey)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			r.Get("/", portfolioHandler.Snapshot)
			r.Get("/slices", portfolioHandler.Slices)
		})

		r.Route("/ledger", func(r chi.Router) {
			ledgerHandler := handlers.NewLedgerHandler(ledgerService)
			r.Get("/", ledgerHandler.List)
			r.Post("/import", ledgerHandler.Import)
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(marketService)
			r.With(custommiddleware.APIKeyMiddleware).Post("/coins/refresh", marketHandler.RefreshCoins)
			r.With(custommiddleware.APIKeyMiddleware).Post("/prices/refresh", marketHandler.RefreshPrices)
		})
	})

	return r
}
