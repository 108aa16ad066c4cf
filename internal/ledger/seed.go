package ledger

import (
	"time"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// seedEpoch is the fixed start date of the demo ledger.
var seedEpoch = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// seedBasket is the fixed basket of coins bought weekly in the demo ledger.
// Symbols are market data provider ids so histories resolve without a coin
// list refresh.
var seedBasket = []struct {
	ID     string
	Amount float64
}{
	{"bitcoin", 0.015},
	{"ethereum", 0.25},
	{"dogecoin", 2_500},
	{"monero", 1.5},
	{"chainlink", 50},
	{"the-graph", 2_500},
}

// Seed generates the synthetic first-run ledger: one Buy per basket coin per
// week, from the fixed epoch up to (but excluding) now. The output is
// reproducible for a given now.
func Seed(now time.Time) []model.Transaction {
	var transactions []model.Transaction
	for date := seedEpoch; date.Before(now); date = date.AddDate(0, 0, 7) {
		for _, coin := range seedBasket {
			transactions = append(transactions, model.Transaction{
				Date:       date,
				Type:       model.TypeBuy,
				Symbol:     coin.ID,
				Quantity:   coin.Amount,
				TotalPrice: -1,
			})
		}
	}
	return transactions
}
