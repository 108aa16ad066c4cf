package service_test

import (
	"errors"
	"testing"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

// testFernetKey is a fixed 32-byte base64url key for encrypting test settings.
const testFernetKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="

// TestSettingService_APIKey tests encrypted API key storage.
//
// WHY: The market data API key is a secret stored in a plain SQLite file.
// It must round-trip through encryption, and every failure mode on read must
// degrade to anonymous access rather than break market requests.
func TestSettingService_APIKey(t *testing.T) {
	t.Run("round-trips the key through encryption", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc, err := service.NewSettingService(repository.NewSettingRepository(db), testFernetKey)
		if err != nil {
			t.Fatalf("NewSettingService() returned unexpected error: %v", err)
		}

		// Execute
		if err := svc.SetAPIKey("CG-secret-key"); err != nil {
			t.Fatalf("SetAPIKey() returned unexpected error: %v", err)
		}

		// Assert
		if got := svc.APIKey(); got != "CG-secret-key" {
			t.Errorf("Expected decrypted key, got %q", got)
		}

		// The stored value must not be the plaintext.
		var stored string
		if err := db.QueryRow(`SELECT value FROM setting WHERE "key" = 'coingecko_api_key'`).Scan(&stored); err != nil {
			t.Fatalf("Failed to read stored setting: %v", err)
		}
		if stored == "CG-secret-key" {
			t.Error("Expected stored value to be encrypted")
		}
	})

	t.Run("overwrites a previously stored key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, err := service.NewSettingService(repository.NewSettingRepository(db), testFernetKey)
		if err != nil {
			t.Fatalf("NewSettingService() returned unexpected error: %v", err)
		}

		if err := svc.SetAPIKey("old"); err != nil {
			t.Fatalf("SetAPIKey() returned unexpected error: %v", err)
		}
		if err := svc.SetAPIKey("new"); err != nil {
			t.Fatalf("SetAPIKey() returned unexpected error: %v", err)
		}

		if got := svc.APIKey(); got != "new" {
			t.Errorf("Expected 'new', got %q", got)
		}
		testutil.AssertRowCount(t, db, "setting", 1)
	})

	t.Run("rejects an empty key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, err := service.NewSettingService(repository.NewSettingRepository(db), testFernetKey)
		if err != nil {
			t.Fatalf("NewSettingService() returned unexpected error: %v", err)
		}

		if err := svc.SetAPIKey(""); !errors.Is(err, apperrors.ErrMissingAPIKey) {
			t.Errorf("Expected ErrMissingAPIKey, got %v", err)
		}
	})

	t.Run("rejects storage without a configured fernet key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, err := service.NewSettingService(repository.NewSettingRepository(db), "")
		if err != nil {
			t.Fatalf("NewSettingService() returned unexpected error: %v", err)
		}

		if err := svc.SetAPIKey("CG-secret-key"); !errors.Is(err, apperrors.ErrFernetKeyNotConfigured) {
			t.Errorf("Expected ErrFernetKeyNotConfigured, got %v", err)
		}
		if got := svc.APIKey(); got != "" {
			t.Errorf("Expected empty key, got %q", got)
		}
	})

	t.Run("returns empty when nothing is stored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, err := service.NewSettingService(repository.NewSettingRepository(db), testFernetKey)
		if err != nil {
			t.Fatalf("NewSettingService() returned unexpected error: %v", err)
		}

		if got := svc.APIKey(); got != "" {
			t.Errorf("Expected empty key, got %q", got)
		}
	})

	t.Run("returns empty for a token that does not verify", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, err := service.NewSettingService(repository.NewSettingRepository(db), testFernetKey)
		if err != nil {
			t.Fatalf("NewSettingService() returned unexpected error: %v", err)
		}

		// Simulate a row written under a different fernet key.
		if err := repository.NewSettingRepository(db).Set("coingecko_api_key", "not-a-fernet-token"); err != nil {
			t.Fatalf("Failed to store setting: %v", err)
		}

		if got := svc.APIKey(); got != "" {
			t.Errorf("Expected empty key for unverifiable token, got %q", got)
		}
	})

	t.Run("rejects a malformed fernet key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		if _, err := service.NewSettingService(repository.NewSettingRepository(db), "not-base64!"); err == nil {
			t.Error("Expected error for malformed fernet key, got nil")
		}
	})
}
