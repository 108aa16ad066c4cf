package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// CoinRepository provides data access methods for the coin list cache.
type CoinRepository struct {
	db *sql.DB
}

// NewCoinRepository creates a new CoinRepository with the provided database connection.
func NewCoinRepository(db *sql.DB) *CoinRepository {
	return &CoinRepository{db: db}
}

// UpsertCoins inserts the given coins, skipping ids that already exist.
// Existing rows are left untouched so their updated_at is preserved.
func (r *CoinRepository) UpsertCoins(coins []model.Coin) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.Prepare(`
		INSERT INTO coin (id, symbol, name, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare coin insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, coin := range coins {
		if _, err := stmt.Exec(coin.ID, coin.Symbol, coin.Name, now); err != nil {
			return fmt.Errorf("failed to insert coin %s: %w", coin.ID, err)
		}
	}

	return tx.Commit()
}

// LatestUpdate returns the most recent updated_at across all coins.
// Returns time.Time{} (zero value) when the table is empty.
func (r *CoinRepository) LatestUpdate() (time.Time, error) {
	var latestStr sql.NullString
	err := r.db.QueryRow(`SELECT MAX(updated_at) FROM coin`).Scan(&latestStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query coin table: %w", err)
	}
	if !latestStr.Valid {
		return time.Time{}, nil
	}
	return ParseTime(latestStr.String)
}

// CountCoins returns the number of cached coins.
func (r *CoinRepository) CountCoins() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM coin`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count coins: %w", err)
	}
	return count, nil
}

// GetCoinsAtOffset returns up to limit coins ordered by id, starting at offset.
// Used by the random price refresh to pick a stable window of coins.
func (r *CoinRepository) GetCoinsAtOffset(offset, limit int) ([]model.Coin, error) {
	rows, err := r.db.Query(`
		SELECT id, symbol, name
		FROM coin
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query coin table: %w", err)
	}
	defer rows.Close()

	coins := []model.Coin{}
	for rows.Next() {
		var c model.Coin
		if err := rows.Scan(&c.ID, &c.Symbol, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan coin table results: %w", err)
		}
		coins = append(coins, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coin table: %w", err)
	}

	return coins, nil
}

// HasCoin reports whether a coin with the given id exists.
func (r *CoinRepository) HasCoin(id string) (bool, error) {
	var exists int
	err := r.db.QueryRow(`SELECT 1 FROM coin WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query coin table: %w", err)
	}
	return true, nil
}

// SymbolIDMap builds a lowercase symbol -> coin id lookup table.
//
// The upstream list allows multiple coins per symbol, so vendor-noise ids
// (wrapped/bridged variants) are excluded and later rows overwrite earlier
// ones. Callers apply manual overrides on top of this map.
func (r *CoinRepository) SymbolIDMap() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT id, symbol FROM coin ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query coin table: %w", err)
	}
	defer rows.Close()

	lookup := make(map[string]string)
	for rows.Next() {
		var id, symbol string
		if err := rows.Scan(&id, &symbol); err != nil {
			return nil, fmt.Errorf("failed to scan coin table results: %w", err)
		}
		if strings.HasSuffix(id, "wormhole") ||
			strings.HasPrefix(id, "binance-peg") ||
			strings.HasPrefix(id, "wrapped") {
			continue
		}
		lookup[strings.ToLower(symbol)] = id
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coin table: %w", err)
	}

	return lookup, nil
}
