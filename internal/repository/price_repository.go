package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// PriceRepository provides data access methods for the price history cache.
// Price history for past dates is immutable, so rows are insert-only and
// deduplicated on (coin_id, date).
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// InsertPrices stores the given price points for a coin, skipping timestamps
// that are already cached.
func (r *PriceRepository) InsertPrices(coinID string, points []model.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.Prepare(`
		INSERT INTO price (coin_id, date, price_usd)
		VALUES (?, ?, ?)
		ON CONFLICT (coin_id, date) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare price insert: %w", err)
	}
	defer stmt.Close()

	for _, point := range points {
		if _, err := stmt.Exec(coinID, point.Date.UTC().Format(time.RFC3339), point.Price); err != nil {
			return fmt.Errorf("failed to insert price for %s: %w", coinID, err)
		}
	}

	return tx.Commit()
}

// GetPrices retrieves the cached price history for the given coin ids,
// ascending by date, grouped by coin id. Coins with no cached prices are
// absent from the returned map.
func (r *PriceRepository) GetPrices(coinIDs []string) (map[string][]model.PricePoint, error) {
	if len(coinIDs) == 0 {
		return make(map[string][]model.PricePoint), nil
	}

	placeholders := make([]string, len(coinIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	priceQuery := `
		SELECT coin_id, date, price_usd
		FROM price
		WHERE coin_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY date ASC
	`

	args := make([]any, len(coinIDs))
	for i, id := range coinIDs {
		args[i] = id
	}

	rows, err := r.db.Query(priceQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query price table: %w", err)
	}
	defer rows.Close()

	pricesByCoin := make(map[string][]model.PricePoint)
	for rows.Next() {
		var coinID, dateStr string
		var point model.PricePoint

		if err := rows.Scan(&coinID, &dateStr, &point.Price); err != nil {
			return nil, fmt.Errorf("failed to scan price table results: %w", err)
		}
		point.Date, err = ParseTime(dateStr)
		if err != nil || point.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		pricesByCoin[coinID] = append(pricesByCoin[coinID], point)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price table: %w", err)
	}

	return pricesByCoin, nil
}

// CoinsWithoutPrices returns the subset of the given coin ids that exist in
// the coin table but have no cached prices yet.
func (r *PriceRepository) CoinsWithoutPrices(coinIDs []string) ([]string, error) {
	if len(coinIDs) == 0 {
		return []string{}, nil
	}

	placeholders := make([]string, len(coinIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	query := `
		SELECT c.id
		FROM coin c
		LEFT JOIN price p ON p.coin_id = c.id
		WHERE c.id IN (` + strings.Join(placeholders, ",") + `)
		GROUP BY c.id
		HAVING COUNT(p.coin_id) = 0
	`

	args := make([]any, len(coinIDs))
	for i, id := range coinIDs {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query price table: %w", err)
	}
	defer rows.Close()

	missing := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan price table results: %w", err)
		}
		missing = append(missing, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price table: %w", err)
	}

	return missing, nil
}

// LatestPriceDate returns the most recent cached price timestamp across all
// coins. Returns time.Time{} (zero value) when the cache is empty.
func (r *PriceRepository) LatestPriceDate() (time.Time, error) {
	var latestStr sql.NullString
	err := r.db.QueryRow(`SELECT MAX(date) FROM price`).Scan(&latestStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query price table: %w", err)
	}
	if !latestStr.Valid {
		return time.Time{}, nil
	}
	return ParseTime(latestStr.String)
}
