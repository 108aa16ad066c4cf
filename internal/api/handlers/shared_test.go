package handlers_test

import (
	"database/sql"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// saveTestLedger persists transactions through the repository, replacing
// whatever ledger was stored before.
func saveTestLedger(db *sql.DB, transactions []model.Transaction) error {
	return repository.NewLedgerRepository(db).SaveLedger(transactions)
}
