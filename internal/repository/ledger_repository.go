package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// LedgerRepository abstracts the persisted ledger snapshot so services can be
// tested against in-memory doubles. An import is a full replace, never an
// append-merge.
type LedgerRepository interface {
	// LoadLedger returns the stored transactions in original import order.
	LoadLedger() ([]model.Transaction, error)
	// SaveLedger replaces the stored ledger wholesale.
	SaveLedger(transactions []model.Transaction) error
}

// SQLLedgerRepository is the SQLite-backed LedgerRepository.
type SQLLedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new SQLLedgerRepository with the provided database connection.
func NewLedgerRepository(db *sql.DB) *SQLLedgerRepository {
	return &SQLLedgerRepository{db: db}
}

// LoadLedger retrieves all stored transactions ordered by import position.
// Position order, not date order, is what the aggregator consumes; the two
// coincide for well-formed exports.
func (r *SQLLedgerRepository) LoadLedger() ([]model.Transaction, error) {
	rows, err := r.db.Query(`
		SELECT date, type, symbol, quantity, total_price
		FROM ledger_transaction
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var dateStr, typeStr string
		var t model.Transaction

		if err := rows.Scan(&dateStr, &typeStr, &t.Symbol, &t.Quantity, &t.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan ledger_transaction table results: %w", err)
		}
		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		t.Type = model.TransactionType(typeStr)

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger_transaction table: %w", err)
	}

	return transactions, nil
}

// SaveLedger replaces the stored ledger with the given transactions inside a
// single database transaction.
func (r *SQLLedgerRepository) SaveLedger(transactions []model.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(`DELETE FROM ledger_transaction`); err != nil {
		return fmt.Errorf("failed to clear ledger_transaction table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO ledger_transaction (id, position, date, type, symbol, quantity, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare ledger insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range transactions {
		_, err := stmt.Exec(
			uuid.New().String(),
			i,
			t.Date.UTC().Format(time.RFC3339),
			string(t.Type),
			t.Symbol,
			t.Quantity,
			t.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ledger transaction: %w", err)
		}
	}

	return tx.Commit()
}
