package model

import "time"

// TransactionType classifies a canonical ledger entry.
type TransactionType string

// Canonical transaction types. Exchange-specific labels are mapped onto these
// during import; anything unrecognized becomes TypeOther.
const (
	TypeBuy     TransactionType = "Buy"
	TypeSell    TransactionType = "Sell"
	TypeSend    TransactionType = "Send"
	TypeReceive TransactionType = "Receive"
	TypeStake   TransactionType = "Stake"
	TypeOther   TransactionType = "Other"
)

// Transaction is the canonical ledger entry all downstream computation consumes.
// Immutable once created. The ledger is kept in original import order, which is
// assumed chronological ascending; the valuation engine depends on that ordering.
type Transaction struct {
	Date       time.Time       `json:"date"`
	Type       TransactionType `json:"type"`
	Symbol     string          `json:"symbol"`
	Quantity   float64         `json:"quantity"`
	TotalPrice float64         `json:"totalPrice"`
}

// TransactionResponse is the flattened display form of a ledger entry
// returned by the API, sorted most-recent-first.
type TransactionResponse struct {
	Date   time.Time `json:"date"`
	Symbol string    `json:"symbol"`
	Value  float64   `json:"value"`
}
