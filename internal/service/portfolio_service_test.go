package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// newPortfolioService returns a service suitable for exercising the pure
// computation methods, which never touch the collaborators.
func newPortfolioService() *service.PortfolioService {
	return service.NewPortfolioService(nil, nil)
}

// TestGainAndReturn tests the gain and return ratio helpers.
//
// WHY: Return divides by cost basis, and the zero-cost case (a portfolio of
// only received coins) must come back as 0 rather than NaN or Inf, which
// would poison every JSON response downstream.
func TestGainAndReturn(t *testing.T) {
	t.Run("computes gain and return", func(t *testing.T) {
		if got := service.Gain(200, 100); got != 100 {
			t.Errorf("Gain(200, 100) = %v, want 100", got)
		}
		if got := service.Return(200, 100); got != 1.0 {
			t.Errorf("Return(200, 100) = %v, want 1.0", got)
		}
	})

	t.Run("negative gain and return for a losing position", func(t *testing.T) {
		if got := service.Gain(50, 100); got != -50 {
			t.Errorf("Gain(50, 100) = %v, want -50", got)
		}
		if got := service.Return(50, 100); got != -0.5 {
			t.Errorf("Return(50, 100) = %v, want -0.5", got)
		}
	})

	t.Run("return is 0 at zero cost", func(t *testing.T) {
		if got := service.Return(200, 0); got != 0 {
			t.Errorf("Return(200, 0) = %v, want 0", got)
		}
	})
}

// TestPortfolioService_Aggregate tests grouping of the flat ledger into
// per-symbol items.
//
// WHY: Grouping determines both the asset set and the uniform target
// allocation. First-appearance ordering, preserved transaction order within
// each symbol and the 1/N target are all load-bearing for the output.
func TestPortfolioService_Aggregate(t *testing.T) {
	svc := newPortfolioService()

	t.Run("groups by symbol in order of first appearance", func(t *testing.T) {
		transactions := []model.Transaction{
			testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 1), 1, 100),
			testutil.MakeTransaction(model.TypeBuy, "ETH", testutil.Day(2024, 1, 2), 2, 50),
			testutil.MakeTransaction(model.TypeSell, "BTC", testutil.Day(2024, 1, 3), 0.5, 60),
		}

		items := svc.Aggregate(transactions)

		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		if items[0].Symbol != "BTC" || items[1].Symbol != "ETH" {
			t.Errorf("Expected order [BTC ETH], got [%s %s]", items[0].Symbol, items[1].Symbol)
		}
		if len(items[0].Transactions) != 2 {
			t.Errorf("Expected 2 BTC transactions, got %d", len(items[0].Transactions))
		}
		if items[0].Transactions[1].Type != model.TypeSell {
			t.Error("Expected BTC transactions to keep ledger order")
		}
	})

	t.Run("assigns uniform target allocation", func(t *testing.T) {
		transactions := []model.Transaction{
			testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 1), 1, 100),
			testutil.MakeTransaction(model.TypeBuy, "ETH", testutil.Day(2024, 1, 2), 2, 50),
			testutil.MakeTransaction(model.TypeBuy, "DOGE", testutil.Day(2024, 1, 3), 500, 50),
			testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 4), 1, 110),
		}

		items := svc.Aggregate(transactions)

		if len(items) != 3 {
			t.Fatalf("Expected 3 items, got %d", len(items))
		}
		for _, item := range items {
			if !almostEqual(item.TargetPercent, 1.0/3.0) {
				t.Errorf("Expected target 1/3 for %s, got %v", item.Symbol, item.TargetPercent)
			}
		}
	})

	t.Run("keeps non-buy types in the grouping", func(t *testing.T) {
		transactions := []model.Transaction{
			testutil.MakeTransaction(model.TypeReceive, "BTC", testutil.Day(2024, 1, 1), 1, 0),
			testutil.MakeTransaction(model.TypeStake, "ETH", testutil.Day(2024, 1, 2), 0.1, 0),
		}

		items := svc.Aggregate(transactions)

		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
	})

	t.Run("returns no items for an empty ledger", func(t *testing.T) {
		if items := svc.Aggregate(nil); len(items) != 0 {
			t.Errorf("Expected no items, got %d", len(items))
		}
	})
}

// TestPortfolioService_Valuate tests the merge walk of transactions against
// price history.
//
// WHY: This is the heart of the valuation engine. Cost booked at the next
// price sample, the inclusive same-day boundary and multiple transactions
// consumed at one price point all change the reported totals.
func TestPortfolioService_Valuate(t *testing.T) {
	svc := newPortfolioService()

	t.Run("books cost at the price sample and values the holding", func(t *testing.T) {
		item := model.PortfolioItem{
			Symbol: "BTC",
			Transactions: []model.Transaction{
				testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 1), 1, -1),
			},
			TargetPercent: 1,
		}
		prices := []model.PricePoint{
			{Date: testutil.Day(2024, 1, 1), Price: 100},
			{Date: testutil.Day(2024, 1, 2), Price: 200},
		}

		asset := svc.Valuate(item, prices)

		if !almostEqual(asset.TotalSpent, 100) {
			t.Errorf("Expected total spent 100, got %v", asset.TotalSpent)
		}
		if !almostEqual(asset.TotalValue, 200) {
			t.Errorf("Expected total value 200, got %v", asset.TotalValue)
		}
		if len(asset.History) != 2 {
			t.Fatalf("Expected 2 history points, got %d", len(asset.History))
		}
		if !almostEqual(asset.History[0].Value, 100) || !almostEqual(asset.History[1].Value, 200) {
			t.Errorf("Expected history values [100 200], got [%v %v]", asset.History[0].Value, asset.History[1].Value)
		}
		if !almostEqual(service.Gain(asset.TotalValue, asset.TotalSpent), 100) {
			t.Errorf("Expected gain 100, got %v", service.Gain(asset.TotalValue, asset.TotalSpent))
		}
		if !almostEqual(service.Return(asset.TotalValue, asset.TotalSpent), 1.0) {
			t.Errorf("Expected return 1.0, got %v", service.Return(asset.TotalValue, asset.TotalSpent))
		}
	})

	t.Run("discards price points before the first transaction", func(t *testing.T) {
		item := model.PortfolioItem{
			Symbol: "BTC",
			Transactions: []model.Transaction{
				testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 3), 1, -1),
			},
		}
		prices := []model.PricePoint{
			{Date: testutil.Day(2024, 1, 1), Price: 50},
			{Date: testutil.Day(2024, 1, 2), Price: 60},
			{Date: testutil.Day(2024, 1, 3), Price: 70},
			{Date: testutil.Day(2024, 1, 4), Price: 80},
		}

		asset := svc.Valuate(item, prices)

		if len(asset.History) != 2 {
			t.Fatalf("Expected 2 history points, got %d", len(asset.History))
		}
		if !asset.History[0].Date.Equal(testutil.Day(2024, 1, 3)) {
			t.Errorf("Expected history to start at the first buy date, got %v", asset.History[0].Date)
		}
		if !almostEqual(asset.TotalSpent, 70) {
			t.Errorf("Expected total spent 70, got %v", asset.TotalSpent)
		}
	})

	t.Run("transaction coincident with a price point counts at that point", func(t *testing.T) {
		item := model.PortfolioItem{
			Symbol: "BTC",
			Transactions: []model.Transaction{
				testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 1), 1, -1),
				testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 2), 1, -1),
			},
		}
		prices := []model.PricePoint{
			{Date: testutil.Day(2024, 1, 1), Price: 100},
			{Date: testutil.Day(2024, 1, 2), Price: 110},
		}

		asset := svc.Valuate(item, prices)

		// Second buy lands exactly on the second sample: 2 coins at 110.
		if !almostEqual(asset.History[1].Value, 220) {
			t.Errorf("Expected value 220 at the second point, got %v", asset.History[1].Value)
		}
		if !almostEqual(asset.TotalSpent, 210) {
			t.Errorf("Expected total spent 210, got %v", asset.TotalSpent)
		}
	})

	t.Run("consumes multiple transactions at one price point", func(t *testing.T) {
		item := model.PortfolioItem{
			Symbol: "BTC",
			Transactions: []model.Transaction{
				testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 1), 1, -1),
				testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 2), 1, -1),
				testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 3), 1, -1),
			},
		}
		// Sparse history: one sample covers three buy dates.
		prices := []model.PricePoint{
			{Date: testutil.Day(2024, 1, 1), Price: 100},
			{Date: testutil.Day(2024, 1, 5), Price: 120},
		}

		asset := svc.Valuate(item, prices)

		if !almostEqual(asset.History[0].Value, 100) {
			t.Errorf("Expected value 100 at the first point, got %v", asset.History[0].Value)
		}
		// Buys two and three both fold in at the 120 sample.
		if !almostEqual(asset.History[1].Value, 360) {
			t.Errorf("Expected value 360 at the second point, got %v", asset.History[1].Value)
		}
		if !almostEqual(asset.TotalSpent, 100+120+120) {
			t.Errorf("Expected total spent 340, got %v", asset.TotalSpent)
		}
	})

	t.Run("returns a zero asset without price history", func(t *testing.T) {
		item := model.PortfolioItem{
			Symbol: "OBSCURE",
			Transactions: []model.Transaction{
				testutil.MakeTransaction(model.TypeBuy, "OBSCURE", testutil.Day(2024, 1, 1), 100, 50),
			},
			TargetPercent: 0.5,
		}

		asset := svc.Valuate(item, nil)

		if asset.TotalValue != 0 || asset.TotalSpent != 0 {
			t.Errorf("Expected zero totals, got value=%v spent=%v", asset.TotalValue, asset.TotalSpent)
		}
		if len(asset.History) != 0 {
			t.Errorf("Expected empty history, got %d points", len(asset.History))
		}
		if asset.TargetPercent != 0.5 {
			t.Errorf("Expected target percent preserved, got %v", asset.TargetPercent)
		}
	})

	t.Run("returns a zero asset without transactions", func(t *testing.T) {
		asset := svc.Valuate(model.PortfolioItem{Symbol: "BTC"}, []model.PricePoint{
			{Date: testutil.Day(2024, 1, 1), Price: 100},
		})

		if asset.TotalValue != 0 || len(asset.History) != 0 {
			t.Errorf("Expected zero asset, got %+v", asset)
		}
	})

	t.Run("history timestamps ascend", func(t *testing.T) {
		item := model.PortfolioItem{
			Symbol: "BTC",
			Transactions: []model.Transaction{
				testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 1), 1, -1),
			},
		}
		prices := []model.PricePoint{
			{Date: testutil.Day(2024, 1, 1), Price: 100},
			{Date: testutil.Day(2024, 1, 2), Price: 105},
			{Date: testutil.Day(2024, 1, 3), Price: 95},
		}

		asset := svc.Valuate(item, prices)

		for i := 1; i < len(asset.History); i++ {
			if !asset.History[i-1].Date.Before(asset.History[i].Date) {
				t.Errorf("History not ascending at index %d", i)
			}
		}
	})
}

// TestPortfolioService_BuildTimeSeries tests the combined portfolio series.
//
// WHY: Assets bought at different times have histories of different lengths.
// The series aligns them by recency, not by date, and anchors the chart with
// a synthetic zero one day before the earliest point.
func TestPortfolioService_BuildTimeSeries(t *testing.T) {
	svc := newPortfolioService()

	t.Run("sums equally long histories pointwise", func(t *testing.T) {
		assets := []model.Asset{
			{Symbol: "BTC", History: []model.TimeSeriesPoint{
				{Date: testutil.Day(2024, 1, 1), Value: 100},
				{Date: testutil.Day(2024, 1, 2), Value: 200},
			}},
			{Symbol: "ETH", History: []model.TimeSeriesPoint{
				{Date: testutil.Day(2024, 1, 1), Value: 10},
				{Date: testutil.Day(2024, 1, 2), Value: 20},
			}},
		}

		series := svc.BuildTimeSeries(assets)

		// Two summed points plus the leading zero anchor.
		if len(series) != 3 {
			t.Fatalf("Expected 3 points, got %d", len(series))
		}
		if series[0].Value != 0 {
			t.Errorf("Expected leading zero anchor, got %v", series[0].Value)
		}
		if !series[0].Date.Equal(testutil.Day(2023, 12, 31)) {
			t.Errorf("Expected anchor one day before the earliest point, got %v", series[0].Date)
		}
		if !almostEqual(series[1].Value, 110) || !almostEqual(series[2].Value, 220) {
			t.Errorf("Expected values [110 220], got [%v %v]", series[1].Value, series[2].Value)
		}
	})

	t.Run("aligns histories of different lengths by recency", func(t *testing.T) {
		assets := []model.Asset{
			{Symbol: "BTC", History: []model.TimeSeriesPoint{
				{Date: testutil.Day(2024, 1, 1), Value: 100},
				{Date: testutil.Day(2024, 1, 2), Value: 110},
				{Date: testutil.Day(2024, 1, 3), Value: 120},
			}},
			// ETH only has the two most recent days.
			{Symbol: "ETH", History: []model.TimeSeriesPoint{
				{Date: testutil.Day(2024, 1, 2), Value: 10},
				{Date: testutil.Day(2024, 1, 3), Value: 20},
			}},
		}

		series := svc.BuildTimeSeries(assets)

		if len(series) != 4 {
			t.Fatalf("Expected 4 points, got %d", len(series))
		}
		// Oldest aligned position holds BTC alone.
		if !almostEqual(series[1].Value, 100) {
			t.Errorf("Expected oldest point 100, got %v", series[1].Value)
		}
		if !almostEqual(series[2].Value, 120) || !almostEqual(series[3].Value, 140) {
			t.Errorf("Expected [120 140] for the aligned points, got [%v %v]", series[2].Value, series[3].Value)
		}
	})

	t.Run("returns an empty series without histories", func(t *testing.T) {
		if series := svc.BuildTimeSeries([]model.Asset{{Symbol: "BTC"}}); len(series) != 0 {
			t.Errorf("Expected empty series, got %d points", len(series))
		}
		if series := svc.BuildTimeSeries(nil); len(series) != 0 {
			t.Errorf("Expected empty series, got %d points", len(series))
		}
	})
}

// TestPortfolioService_BuildSlices tests allocation slice derivation.
//
// WHY: The next-buy split drives real purchase decisions. The deficit math
// must hand everything to under-target assets, nothing to over-target ones,
// sum to the available cash, and survive all-zero portfolios.
func TestPortfolioService_BuildSlices(t *testing.T) {
	svc := newPortfolioService()

	t.Run("splits cash toward the under-allocated asset", func(t *testing.T) {
		// A holds 0, B holds 100, both targeting 50%. With 100 of new cash
		// A's deficit is 100 and B's is 0: everything goes to A.
		assets := []model.Asset{
			{Symbol: "A", TotalValue: 0, TargetPercent: 0.5},
			{Symbol: "B", TotalValue: 100, TargetPercent: 0.5},
		}

		result := svc.BuildSlices(assets, 100, 100)

		byName := make(map[string]model.Slice)
		for _, slice := range result {
			byName[slice.Symbol] = slice
		}
		if !almostEqual(byName["A"].NextBuy, 100) {
			t.Errorf("Expected A to receive 100, got %v", byName["A"].NextBuy)
		}
		if !almostEqual(byName["B"].NextBuy, 0) {
			t.Errorf("Expected B to receive 0, got %v", byName["B"].NextBuy)
		}
	})

	t.Run("next buys sum to the available cash", func(t *testing.T) {
		assets := []model.Asset{
			{Symbol: "A", TotalValue: 10, TargetPercent: 1.0 / 3},
			{Symbol: "B", TotalValue: 50, TargetPercent: 1.0 / 3},
			{Symbol: "C", TotalValue: 40, TargetPercent: 1.0 / 3},
		}

		result := svc.BuildSlices(assets, 100, 60)

		var total float64
		for _, slice := range result {
			total += slice.NextBuy
			if slice.NextBuy < 0 {
				t.Errorf("Expected non-negative next buy for %s, got %v", slice.Symbol, slice.NextBuy)
			}
		}
		if !almostEqual(total, 60) {
			t.Errorf("Expected next buys to sum to 60, got %v", total)
		}
	})

	t.Run("allocates nothing when every asset is at target", func(t *testing.T) {
		assets := []model.Asset{
			{Symbol: "A", TotalValue: 50, TargetPercent: 0.5},
			{Symbol: "B", TotalValue: 50, TargetPercent: 0.5},
		}

		result := svc.BuildSlices(assets, 100, 0)

		for _, slice := range result {
			if slice.NextBuy != 0 {
				t.Errorf("Expected next buy 0 for %s, got %v", slice.Symbol, slice.NextBuy)
			}
		}
	})

	t.Run("survives an all-zero portfolio", func(t *testing.T) {
		assets := []model.Asset{
			{Symbol: "A", TotalValue: 0, TargetPercent: 0.5},
			{Symbol: "B", TotalValue: 0, TargetPercent: 0.5},
		}

		result := svc.BuildSlices(assets, 0, 0)

		for _, slice := range result {
			if math.IsNaN(slice.NextBuy) || math.IsNaN(slice.ActualPercent) || math.IsNaN(slice.Return) {
				t.Errorf("Expected finite values for %s, got %+v", slice.Symbol, slice)
			}
			if slice.NextBuy != 0 || slice.ActualPercent != 0 {
				t.Errorf("Expected zeros for %s, got %+v", slice.Symbol, slice)
			}
		}
	})

	t.Run("sorts slices descending by total value", func(t *testing.T) {
		assets := []model.Asset{
			{Symbol: "SMALL", TotalValue: 10, TargetPercent: 0.25},
			{Symbol: "BIG", TotalValue: 1000, TargetPercent: 0.25},
			{Symbol: "MID", TotalValue: 100, TargetPercent: 0.25},
		}

		result := svc.BuildSlices(assets, 1110, 0)

		expected := []string{"BIG", "MID", "SMALL"}
		for i, symbol := range expected {
			if result[i].Symbol != symbol {
				t.Errorf("Position %d: expected %s, got %s", i, symbol, result[i].Symbol)
			}
		}
	})

	t.Run("is idempotent for the same inputs", func(t *testing.T) {
		assets := []model.Asset{
			{Symbol: "A", TotalValue: 30, TotalSpent: 20, TargetPercent: 0.5},
			{Symbol: "B", TotalValue: 70, TotalSpent: 90, TargetPercent: 0.5},
		}

		first := svc.BuildSlices(assets, 100, 40)
		second := svc.BuildSlices(assets, 100, 40)

		if len(first) != len(second) {
			t.Fatalf("Expected identical lengths, got %d and %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("Slice %d differs between runs: %+v vs %+v", i, first[i], second[i])
			}
		}
	})

	t.Run("computes actual percent against the portfolio total", func(t *testing.T) {
		assets := []model.Asset{
			{Symbol: "A", TotalValue: 25, TargetPercent: 0.5},
			{Symbol: "B", TotalValue: 75, TargetPercent: 0.5},
		}

		result := svc.BuildSlices(assets, 100, 0)

		byName := make(map[string]model.Slice)
		for _, slice := range result {
			byName[slice.Symbol] = slice
		}
		if !almostEqual(byName["A"].ActualPercent, 0.25) {
			t.Errorf("Expected actual percent 0.25, got %v", byName["A"].ActualPercent)
		}
		if !almostEqual(byName["B"].ActualPercent, 0.75) {
			t.Errorf("Expected actual percent 0.75, got %v", byName["B"].ActualPercent)
		}
	})
}

// TestPortfolioService_Snapshot tests the end-to-end snapshot pipeline against
// a database-backed ledger and a mock market client.
//
// WHY: Snapshot stitches every stage together. This guards the integration:
// imported transactions resolve to coins, histories valuate, and the response
// carries consistent totals and a most-recent-first transaction list.
func TestPortfolioService_Snapshot(t *testing.T) {
	t.Run("builds a consistent snapshot from an imported ledger", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.InsertCoin(t, db, "bitcoin", "btc", "Bitcoin")
		testutil.InsertPrice(t, db, "bitcoin", testutil.Day(2024, 1, 1), 100)
		testutil.InsertPrice(t, db, "bitcoin", testutil.Day(2024, 1, 2), 200)

		mock := testutil.NewMockGeckoClient()
		svc := testutil.NewTestPortfolioService(t, db, mock)

		saveLedger(t, db, []model.Transaction{
			testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 1), 1, -1),
		})

		// Execute
		snapshot, err := svc.Snapshot(context.Background(), 0)

		// Assert
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}
		if len(snapshot.Slices) != 1 {
			t.Fatalf("Expected 1 slice, got %d", len(snapshot.Slices))
		}
		if !almostEqual(snapshot.SumTotalValue, 200) {
			t.Errorf("Expected total value 200, got %v", snapshot.SumTotalValue)
		}
		if !almostEqual(snapshot.SumTotalCost, 100) {
			t.Errorf("Expected total cost 100, got %v", snapshot.SumTotalCost)
		}
		if !almostEqual(snapshot.Slices[0].Gain, 100) {
			t.Errorf("Expected gain 100, got %v", snapshot.Slices[0].Gain)
		}
		if len(snapshot.Transactions) != 1 {
			t.Errorf("Expected 1 flat transaction, got %d", len(snapshot.Transactions))
		}
		// Two history points plus the zero anchor.
		if len(snapshot.TimeSeries) != 3 {
			t.Errorf("Expected 3 time series points, got %d", len(snapshot.TimeSeries))
		}
		// No fetches: the price cache already covered the held coin.
		if mock.TotalHistoryCalls() != 0 {
			t.Errorf("Expected no history fetches, got %d", mock.TotalHistoryCalls())
		}
	})

	t.Run("lists flat transactions most recent first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.InsertCoin(t, db, "bitcoin", "btc", "Bitcoin")
		testutil.InsertPrice(t, db, "bitcoin", testutil.Day(2024, 1, 1), 100)

		mock := testutil.NewMockGeckoClient()
		svc := testutil.NewTestPortfolioService(t, db, mock)

		saveLedger(t, db, []model.Transaction{
			testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 1, 1), 1, -1),
			testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 3, 1), 1, -1),
			testutil.MakeTransaction(model.TypeBuy, "BTC", testutil.Day(2024, 2, 1), 1, -1),
		})

		snapshot, err := svc.Snapshot(context.Background(), 0)
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}

		for i := 1; i < len(snapshot.Transactions); i++ {
			if snapshot.Transactions[i-1].Date.Before(snapshot.Transactions[i].Date) {
				t.Errorf("Transactions not sorted most recent first at index %d", i)
			}
		}
	})

	t.Run("unresolvable symbols valuate to zero without failing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		mock := testutil.NewMockGeckoClient()
		svc := testutil.NewTestPortfolioService(t, db, mock)

		saveLedger(t, db, []model.Transaction{
			testutil.MakeTransaction(model.TypeBuy, "NOSUCHCOIN", testutil.Day(2024, 1, 1), 10, 100),
		})

		snapshot, err := svc.Snapshot(context.Background(), 0)
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}
		if snapshot.SumTotalValue != 0 {
			t.Errorf("Expected zero total value, got %v", snapshot.SumTotalValue)
		}
		if len(snapshot.Slices) != 1 {
			t.Errorf("Expected the unresolved asset to still appear, got %d slices", len(snapshot.Slices))
		}
	})
}
