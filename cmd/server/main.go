package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/coingecko"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/database"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/scheduler"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	coinRepo := repository.NewCoinRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	settingService, err := service.NewSettingService(settingRepo, cfg.Security.FernetKey)
	if err != nil {
		log.Fatalf("Failed to create setting service: %v", err)
	}

	geckoClient := coingecko.NewGeckoClient()
	geckoClient.APIKeyFunc = settingService.APIKey

	ledgerService := service.NewLedgerService(ledgerRepo)
	marketService := service.NewMarketService(
		geckoClient,
		coinRepo,
		priceRepo,
		cfg.Market.RefreshCooldown,
	)
	portfolioService := service.NewPortfolioService(ledgerService, marketService)

	// Background price refresh; skipped runs inside the cooldown window are expected.
	refreshTask, err := scheduler.NewScheduledTask(cfg.Market.RefreshSchedule, func() {
		err := marketService.RefreshRandomCoinPrices(context.Background())
		if err != nil && !errors.Is(err, apperrors.ErrTooManyRequests) && !errors.Is(err, apperrors.ErrNoCoins) {
			log.Printf("Scheduled price refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule price refresh: %v", err)
	}
	defer refreshTask.Cancel()

	// Create router
	router := api.NewRouter(systemService, settingService, portfolioService, ledgerService, marketService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
