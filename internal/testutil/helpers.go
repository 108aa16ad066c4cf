package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/coingecko"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// TestCooldown is the refresh cooldown used by test service constructors.
// Long enough that a second refresh within a test always trips the gate.
const TestCooldown = time.Minute

func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	ledgerRepo := repository.NewLedgerRepository(db)

	return service.NewLedgerService(ledgerRepo)
}

func NewTestMarketService(t *testing.T, db *sql.DB, client coingecko.Client) *service.MarketService {
	t.Helper()

	coinRepo := repository.NewCoinRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	return service.NewMarketService(
		client,
		coinRepo,
		priceRepo,
		TestCooldown,
	)
}

// NewTestPortfolioService creates a PortfolioService backed by a mock market
// client. This is useful for testing the valuation pipeline without making
// real API calls.
func NewTestPortfolioService(t *testing.T, db *sql.DB, client coingecko.Client) *service.PortfolioService {
	t.Helper()

	ledgerService := NewTestLedgerService(t, db)
	marketService := NewTestMarketService(t, db, client)

	return service.NewPortfolioService(ledgerService, marketService)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeTransaction builds a ledger transaction for tests. Dates are pinned to
// UTC so merge comparisons against price timestamps stay deterministic.
func MakeTransaction(transactionType model.TransactionType, symbol string, date time.Time, quantity, totalPrice float64) model.Transaction {
	return model.Transaction{
		Date:       date.UTC(),
		Type:       transactionType,
		Symbol:     symbol,
		Quantity:   quantity,
		TotalPrice: totalPrice,
	}
}

// Day returns midnight UTC for the given date. Most fixtures only care about
// day-level ordering.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
