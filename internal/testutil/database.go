package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Coin list cache
		CREATE TABLE coin (
			id VARCHAR(100) NOT NULL PRIMARY KEY,
			symbol VARCHAR(50) NOT NULL,
			name VARCHAR(255) NOT NULL,
			updated_at DATETIME NOT NULL
		);

		-- Price history cache (insert-only, deduplicated per coin and timestamp)
		CREATE TABLE price (
			coin_id VARCHAR(100) NOT NULL,
			date DATETIME NOT NULL,
			price_usd FLOAT NOT NULL,
			PRIMARY KEY (coin_id, date),
			FOREIGN KEY(coin_id) REFERENCES coin(id) ON DELETE CASCADE
		);

		-- Imported ledger snapshot
		CREATE TABLE ledger_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			position INTEGER NOT NULL,
			date DATETIME NOT NULL,
			type VARCHAR(10) NOT NULL,
			symbol VARCHAR(50) NOT NULL,
			quantity FLOAT NOT NULL,
			total_price FLOAT NOT NULL
		);

		-- Key-value application settings
		CREATE TABLE setting (
			"key" VARCHAR(50) NOT NULL PRIMARY KEY,
			value VARCHAR(500) NOT NULL
		);

		-- Indexes for performance
		CREATE INDEX ix_ledger_transaction_position ON ledger_transaction(position);
		CREATE INDEX ix_price_date ON price(date);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"price",
		"coin",
		"ledger_transaction",
		"setting",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}

// InsertCoin inserts a coin row directly, bypassing the repository layer.
//
// Example usage:
//
//	testutil.InsertCoin(t, db, "bitcoin", "btc", "Bitcoin")
func InsertCoin(t *testing.T, db *sql.DB, id, symbol, name string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO coin (id, symbol, name, updated_at) VALUES (?, ?, ?, ?)`,
		id, symbol, name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to insert coin %s: %v", id, err)
	}
}

// InsertPrice inserts a price row directly, bypassing the repository layer.
func InsertPrice(t *testing.T, db *sql.DB, coinID string, date time.Time, price float64) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO price (coin_id, date, price_usd) VALUES (?, ?, ?)`,
		coinID, date.UTC().Format(time.RFC3339), price,
	)
	if err != nil {
		t.Fatalf("Failed to insert price for %s: %v", coinID, err)
	}
}
