// Package ledger maps raw exchange export rows onto canonical transactions
// and generates the first-run demo ledger.
package ledger

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// Field positions of a Coinbase transaction export row.
const (
	fieldTimestamp = iota
	fieldType
	fieldAsset
	fieldQuantity
	fieldSpotCurrency
	fieldSpotPrice
	fieldSubtotal
	fieldTotal
	fieldFees
	fieldNotes

	fieldCount = 10
)

// NormalizeType maps an exchange transaction-type label onto a canonical type.
// Plain Buy/Sell/Send/Receive map to themselves, the advanced-trade variants
// collapse onto Buy/Sell, rewards become Stake and anything unrecognized
// becomes Other.
func NormalizeType(raw string) model.TransactionType {
	switch raw {
	case "Buy":
		return model.TypeBuy
	case "Sell":
		return model.TypeSell
	case "Send":
		return model.TypeSend
	case "Receive":
		return model.TypeReceive
	case "Advanced Trade Buy":
		return model.TypeBuy
	case "Advanced Trade Sell":
		return model.TypeSell
	case "Rewards Income":
		return model.TypeStake
	default:
		return model.TypeOther
	}
}

// NormalizeSymbol rewrites known broken vendor symbols. Coinbase reports
// staked ether as ETH2, which no market data provider knows about.
func NormalizeSymbol(symbol string) string {
	if symbol == "ETH2" {
		return "ETH"
	}
	return symbol
}

// ParseRow maps one raw export row onto a canonical transaction.
// Returns false for rows whose date or numeric fields do not parse; callers
// skip those rows and continue, so a corrupt export degrades gracefully
// instead of aborting the import.
func ParseRow(fields []string) (model.Transaction, bool) {
	if len(fields) < fieldCount {
		return model.Transaction{}, false
	}

	date, err := parseTimestamp(strings.TrimSpace(fields[fieldTimestamp]))
	if err != nil {
		return model.Transaction{}, false
	}

	quantity, err := strconv.ParseFloat(strings.TrimSpace(fields[fieldQuantity]), 64)
	if err != nil {
		return model.Transaction{}, false
	}

	subtotal, err := strconv.ParseFloat(strings.TrimSpace(fields[fieldSubtotal]), 64)
	if err != nil {
		return model.Transaction{}, false
	}

	// Spot price, total and fees must be numeric for the row to count as
	// well-formed, even though only quantity and subtotal are kept.
	for _, idx := range []int{fieldSpotPrice, fieldTotal, fieldFees} {
		if _, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64); err != nil {
			return model.Transaction{}, false
		}
	}

	return model.Transaction{
		Date:       date,
		Type:       NormalizeType(strings.TrimSpace(fields[fieldType])),
		Symbol:     NormalizeSymbol(strings.TrimSpace(fields[fieldAsset])),
		Quantity:   quantity,
		TotalPrice: subtotal,
	}, true
}

// ParseLedger reads a Coinbase CSV export and returns the canonical
// transactions in file order. Header lines and malformed rows are skipped
// silently; a partially valid file imports its valid rows.
func ParseLedger(r io.Reader) []model.Transaction {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var transactions []model.Transaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if transaction, ok := ParseRow(record); ok {
			transactions = append(transactions, transaction)
		}
	}
	return transactions
}

// parseTimestamp accepts the timestamp formats seen in exchange exports.
func parseTimestamp(value string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	var err error
	var parsed time.Time
	for _, format := range formats {
		parsed, err = time.Parse(format, value)
		if err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, err
}
