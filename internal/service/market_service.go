package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/coingecko"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// randomRefreshBatchSize is the number of coins refreshed per random refresh.
const randomRefreshBatchSize = 10

// symbolOverrides pins symbols where the coin list lookup picks the wrong
// coin (duplicate tickers upstream).
var symbolOverrides = map[string]string{
	"snx":  "havven",
	"poly": "polymath",
}

// MarketService is the market data gateway: it resolves ledger symbols to
// coin ids, serves price histories cache-first with parallel backfill of
// missing coins, and exposes the cooldown-gated refresh operations.
type MarketService struct {
	client    coingecko.Client
	coinRepo  *repository.CoinRepository
	priceRepo *repository.PriceRepository
	cooldown  time.Duration
	now       func() time.Time
}

// NewMarketService creates a new MarketService with the provided dependencies.
func NewMarketService(
	client coingecko.Client,
	coinRepo *repository.CoinRepository,
	priceRepo *repository.PriceRepository,
	cooldown time.Duration,
) *MarketService {
	return &MarketService{
		client:    client,
		coinRepo:  coinRepo,
		priceRepo: priceRepo,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// ResolveCoinIDs maps ledger symbols onto coin ids.
//
// A symbol that matches a coin id directly resolves to itself (the demo
// ledger uses ids as symbols); otherwise the symbol is looked up in the coin
// list with the manual overrides applied. Symbols that resolve to nothing are
// absent from the result and end up as zero-valued assets.
func (s *MarketService) ResolveCoinIDs(symbols []string) (map[string]string, error) {
	lookup, err := s.coinRepo.SymbolIDMap()
	if err != nil {
		return nil, err
	}
	for symbol, id := range symbolOverrides {
		lookup[symbol] = id
	}

	resolved := make(map[string]string, len(symbols))
	for _, symbol := range symbols {
		lower := strings.ToLower(symbol)

		exists, err := s.coinRepo.HasCoin(lower)
		if err != nil {
			return nil, err
		}
		if exists {
			resolved[symbol] = lower
			continue
		}

		if id, ok := lookup[lower]; ok {
			resolved[symbol] = id
		}
	}
	return resolved, nil
}

// GetHistories returns the ascending price history for each of the given coin
// ids, grouped by id.
//
// Histories are served from the cache; coins with no cached prices are
// fetched in parallel first and their histories stored. A failed or empty
// fetch degrades to an empty history for that coin only, never an error for
// the whole portfolio.
func (s *MarketService) GetHistories(ctx context.Context, coinIDs []string) (map[string][]model.PricePoint, error) {
	missing, err := s.priceRepo.CoinsWithoutPrices(coinIDs)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, coinID := range missing {
		coinID := coinID
		g.Go(func() error {
			chart, err := s.client.GetMarketHistory(ctx, coinID)
			if err != nil {
				log.Printf("market history fetch failed for %s: %v", coinID, err)
				return nil
			}
			points := chart.PricePoints()
			if len(points) == 0 {
				return nil
			}
			return s.priceRepo.InsertPrices(coinID, points)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.priceRepo.GetPrices(coinIDs)
}

// RefreshCoinList fetches the upstream coin list and caches any new coins.
// Returns apperrors.ErrTooManyRequests when invoked within the cooldown
// window of the previous refresh.
func (s *MarketService) RefreshCoinList(ctx context.Context) error {
	latest, err := s.coinRepo.LatestUpdate()
	if err != nil {
		return err
	}
	if !latest.IsZero() && s.now().Sub(latest) < s.cooldown {
		return apperrors.ErrTooManyRequests
	}

	coins, err := s.client.GetCoinList(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch coin list: %w", err)
	}

	return s.coinRepo.UpsertCoins(coins)
}

// RefreshRandomCoinPrices fetches price histories for a random window of
// cached coins, warming the cache ahead of demand.
//
// Returns apperrors.ErrNoCoins when the coin list is empty and
// apperrors.ErrTooManyRequests within the cooldown window, measured against
// the newest cached price timestamp.
func (s *MarketService) RefreshRandomCoinPrices(ctx context.Context) error {
	count, err := s.coinRepo.CountCoins()
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.ErrNoCoins
	}

	latest, err := s.priceRepo.LatestPriceDate()
	if err != nil {
		return err
	}
	if !latest.IsZero() && s.now().Sub(latest) < s.cooldown {
		return apperrors.ErrTooManyRequests
	}

	coins, err := s.coinRepo.GetCoinsAtOffset(rand.Intn(count), randomRefreshBatchSize)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, coin := range coins {
		coin := coin
		g.Go(func() error {
			chart, err := s.client.GetMarketHistory(ctx, coin.ID)
			if err != nil {
				log.Printf("market history fetch failed for %s: %v", coin.ID, err)
				return nil
			}
			points := chart.PricePoints()
			if len(points) == 0 {
				return nil
			}
			return s.priceRepo.InsertPrices(coin.ID, points)
		})
	}
	return g.Wait()
}
