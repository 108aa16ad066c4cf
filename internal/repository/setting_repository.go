package repository

import (
	"database/sql"
	"fmt"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
)

// SettingRepository provides data access methods for key/value settings.
// Values may be fernet tokens; encryption is the caller's concern.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Set stores a value under the given key, replacing any existing value.
func (r *SettingRepository) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO setting (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}

// Get retrieves the value stored under the given key.
// Returns apperrors.ErrSettingNotFound when the key has no value.
func (r *SettingRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting table: %w", err)
	}
	return value, nil
}
