package service

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// PortfolioService holds the portfolio computation pipeline: grouping ledger
// transactions into per-symbol items, valuating each item against its price
// history, and deriving the combined time series and allocation slices.
//
// The computations themselves are pure, synchronous functions over
// already-fetched data; the only I/O happens in Snapshot, which pulls the
// ledger and price histories through its collaborators first.
type PortfolioService struct {
	ledgerService *LedgerService
	marketService *MarketService
}

// NewPortfolioService creates a new PortfolioService with the provided service dependencies.
func NewPortfolioService(ledgerService *LedgerService, marketService *MarketService) *PortfolioService {
	return &PortfolioService{
		ledgerService: ledgerService,
		marketService: marketService,
	}
}

// Gain is current value minus cost basis.
func Gain(value, cost float64) float64 {
	return value - cost
}

// Return is gain relative to cost basis, defined as 0 at zero cost.
func Return(value, cost float64) float64 {
	if cost == 0 {
		return 0
	}
	return (value - cost) / cost
}

// Aggregate groups the canonical transaction list into one PortfolioItem per
// distinct symbol, in order of first appearance.
//
// Each item receives the uniform target allocation 1/N over the N distinct
// symbols (1 when the ledger is empty, so downstream ratios stay defined).
// Transactions keep their ledger order and no types are filtered out.
func (s *PortfolioService) Aggregate(transactions []model.Transaction) []model.PortfolioItem {
	distinct := make(map[string]struct{})
	for _, t := range transactions {
		distinct[t.Symbol] = struct{}{}
	}
	targetPercent := 1.0
	if len(distinct) > 0 {
		targetPercent = 1.0 / float64(len(distinct))
	}

	index := make(map[string]int)
	items := []model.PortfolioItem{}
	for _, t := range transactions {
		i, ok := index[t.Symbol]
		if !ok {
			i = len(items)
			index[t.Symbol] = i
			items = append(items, model.PortfolioItem{
				Symbol:        t.Symbol,
				TargetPercent: targetPercent,
			})
		}
		items[i].Transactions = append(items[i].Transactions, t)
	}
	return items
}

// Valuate walks an item's price history against its transaction list in a
// single forward merge and produces the cumulative value history plus the
// running totals.
//
// Price points before the first transaction are discarded. At each remaining
// price point, every not-yet-consumed transaction dated at or before that
// point is folded in: its quantity joins the cumulative holding and its cost
// is booked at that point's price. A transaction exactly coincident with a
// price point is included in that point's valuation.
//
// Missing or empty price history yields a zero-valued asset, not an error.
func (s *PortfolioService) Valuate(item model.PortfolioItem, prices []model.PricePoint) model.Asset {
	asset := model.Asset{
		Symbol:        item.Symbol,
		History:       []model.TimeSeriesPoint{},
		TargetPercent: item.TargetPercent,
	}
	if len(item.Transactions) == 0 || len(prices) == 0 {
		return asset
	}

	firstBuyDate := item.Transactions[0].Date

	var totalSpent, cumulativeQuantity float64
	buyIndex := 0
	history := make([]model.TimeSeriesPoint, 0, len(prices))

	for _, price := range prices {
		if price.Date.Before(firstBuyDate) {
			continue
		}
		for buyIndex < len(item.Transactions) && !item.Transactions[buyIndex].Date.After(price.Date) {
			transaction := item.Transactions[buyIndex]
			totalSpent += transaction.Quantity * price.Price
			cumulativeQuantity += transaction.Quantity
			buyIndex++
		}
		history = append(history, model.TimeSeriesPoint{
			Date:  price.Date,
			Value: cumulativeQuantity * price.Price,
		})
	}

	asset.History = history
	asset.TotalSpent = totalSpent
	if len(history) > 0 {
		asset.TotalValue = history[len(history)-1].Value
	}
	return asset
}

// BuildTimeSeries sums the assets' value histories into one portfolio-wide
// series, plus a synthetic zero-value point one day before the earliest
// entry to anchor chart rendering at zero.
//
// Histories of different lengths are aligned by index from the end: the Nth
// most recent entries are summed together regardless of whether their dates
// match. Each aligned position takes its timestamp from the last asset that
// contributed to it.
func (s *PortfolioService) BuildTimeSeries(assets []model.Asset) []model.TimeSeriesPoint {
	maxHistoryLength := 0
	for _, asset := range assets {
		if len(asset.History) > maxHistoryLength {
			maxHistoryLength = len(asset.History)
		}
	}

	series := make([]model.TimeSeriesPoint, 0, maxHistoryLength+1)
	var timestamp model.TimeSeriesPoint
	for i := 0; i < maxHistoryLength; i++ {
		var value float64
		found := false
		for _, asset := range assets {
			idx := len(asset.History) - i - 1
			if idx < 0 {
				continue
			}
			value += asset.History[idx].Value
			timestamp = asset.History[idx]
			found = true
		}
		if found {
			series = append(series, model.TimeSeriesPoint{Date: timestamp.Date, Value: value})
		}
	}
	if len(series) > 0 {
		series = append(series, model.TimeSeriesPoint{
			Date:  series[len(series)-1].Date.AddDate(0, 0, -1),
			Value: 0,
		})
	}
	slices.Reverse(series)
	return series
}

// BuildSlices derives the display-ready allocation slices for a new cash
// amount to deploy.
//
// Each asset's deficit is how far it sits below its target share of the
// post-contribution portfolio; the cash is split proportionally across the
// deficits, so assets at or above target receive 0 and the amounts sum to
// the cash (when any deficit exists). Every ratio guards its zero
// denominator. Slices are sorted descending by total value for display.
func (s *PortfolioService) BuildSlices(assets []model.Asset, sumTotalValue, nextCash float64) []model.Slice {
	var sumDeficits float64
	for _, asset := range assets {
		sumDeficits += allocationDeficit(asset, sumTotalValue, nextCash)
	}

	result := make([]model.Slice, 0, len(assets))
	for _, asset := range assets {
		nextBuy := 0.0
		if sumDeficits != 0 {
			nextBuy = nextCash * allocationDeficit(asset, sumTotalValue, nextCash) / sumDeficits
		}
		actualPercent := 0.0
		if sumTotalValue != 0 {
			actualPercent = asset.TotalValue / sumTotalValue
		}
		result = append(result, model.Slice{
			Symbol:        asset.Symbol,
			TotalValue:    asset.TotalValue,
			Gain:          Gain(asset.TotalValue, asset.TotalSpent),
			Return:        Return(asset.TotalValue, asset.TotalSpent),
			TargetPercent: asset.TargetPercent,
			ActualPercent: actualPercent,
			NextBuy:       nextBuy,
		})
	}

	slices.SortStableFunc(result, func(a, b model.Slice) int {
		return cmp.Compare(b.TotalValue, a.TotalValue)
	})
	return result
}

// allocationDeficit is how far an asset sits below its target share of the
// portfolio after the new cash is added. Assets at or above target have a
// deficit of 0.
func allocationDeficit(asset model.Asset, sumTotalValue, nextCash float64) float64 {
	return math.Max(0, (sumTotalValue+nextCash)*asset.TargetPercent-asset.TotalValue)
}

// Assets runs the full valuation pipeline: load the ledger, group it,
// resolve symbols, fetch histories and valuate every item. Items whose
// symbol does not resolve, or whose fetch failed, come back as zero-valued
// assets.
func (s *PortfolioService) Assets(ctx context.Context) ([]model.Asset, []model.PortfolioItem, error) {
	transactions, err := s.ledgerService.GetTransactions()
	if err != nil {
		return nil, nil, err
	}

	items := s.Aggregate(transactions)

	symbols := make([]string, len(items))
	for i, item := range items {
		symbols[i] = item.Symbol
	}

	coinIDs, err := s.marketService.ResolveCoinIDs(symbols)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(coinIDs))
	for _, id := range coinIDs {
		ids = append(ids, id)
	}

	histories, err := s.marketService.GetHistories(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	assets := make([]model.Asset, len(items))
	for i, item := range items {
		assets[i] = s.Valuate(item, histories[coinIDs[item.Symbol]])
	}
	return assets, items, nil
}

// Snapshot builds the full query surface for the presentation layer: slices
// for the given cash amount, the combined time series, the flat transaction
// list (most recent first) and the portfolio totals.
func (s *PortfolioService) Snapshot(ctx context.Context, nextCash float64) (model.PortfolioSnapshot, error) {
	assets, items, err := s.Assets(ctx)
	if err != nil {
		return model.PortfolioSnapshot{}, err
	}

	var sumTotalValue, sumTotalCost float64
	for _, asset := range assets {
		sumTotalValue += asset.TotalValue
		sumTotalCost += asset.TotalSpent
	}

	flat := []model.TransactionResponse{}
	for _, item := range items {
		for _, t := range item.Transactions {
			flat = append(flat, model.TransactionResponse{
				Date:   t.Date,
				Symbol: item.Symbol,
				Value:  t.Quantity,
			})
		}
	}
	slices.SortStableFunc(flat, func(a, b model.TransactionResponse) int {
		return b.Date.Compare(a.Date)
	})

	return model.PortfolioSnapshot{
		Slices:        s.BuildSlices(assets, sumTotalValue, nextCash),
		TimeSeries:    s.BuildTimeSeries(assets),
		Transactions:  flat,
		SumTotalValue: sumTotalValue,
		SumTotalCost:  sumTotalCost,
	}, nil
}

// Slices recomputes just the allocation slices for a new cash amount.
// Pure with respect to asset state: the same cash amount yields the same
// slices until the ledger or price data changes.
func (s *PortfolioService) Slices(ctx context.Context, nextCash float64) ([]model.Slice, error) {
	assets, _, err := s.Assets(ctx)
	if err != nil {
		return nil, err
	}

	var sumTotalValue float64
	for _, asset := range assets {
		sumTotalValue += asset.TotalValue
	}
	return s.BuildSlices(assets, sumTotalValue, nextCash), nil
}
