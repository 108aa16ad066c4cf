package service

import (
	"fmt"
	"io"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/ledger"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// LedgerService handles ledger import and retrieval. It owns the canonical
// transaction list: imports replace the persisted snapshot wholesale, and an
// empty ledger falls back to the generated demo dataset.
type LedgerService struct {
	ledgerRepo repository.LedgerRepository
	now        func() time.Time
}

// NewLedgerService creates a new LedgerService with the provided repository dependency.
func NewLedgerService(ledgerRepo repository.LedgerRepository) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		now:        time.Now,
	}
}

// GetTransactions returns the persisted ledger in original import order.
// When no ledger has been imported yet, the deterministic demo ledger is
// returned instead; it is not persisted, so the first real import still
// starts from a clean slate.
func (s *LedgerService) GetTransactions() ([]model.Transaction, error) {
	transactions, err := s.ledgerRepo.LoadLedger()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	if len(transactions) == 0 {
		return ledger.Seed(s.now().UTC()), nil
	}
	return transactions, nil
}

// ImportLedger parses a Coinbase CSV export and replaces the stored ledger
// with the rows that parsed. Malformed rows are skipped, not fatal; the
// import succeeds with whatever subset was valid.
func (s *LedgerService) ImportLedger(r io.Reader) (int, error) {
	transactions := ledger.ParseLedger(r)
	if err := s.ledgerRepo.SaveLedger(transactions); err != nil {
		return 0, fmt.Errorf("failed to save ledger: %w", err)
	}
	return len(transactions), nil
}
