// Package market provides asset catalogs, market data boards and live quotes.
package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/folio/internal/clientdata"
	"github.com/aristath/folio/internal/domain"
	"github.com/rs/zerolog"
)

// Service serves asset catalogs and market quotes.
//
// Crypto data comes from the quote provider through the quote cache. When the
// provider fails, a stale cache entry is served; when there is none, the static
// fallback list is used for catalogs and the caller is told quotes are unavailable.
type Service struct {
	provider domain.QuoteProvider
	cache    *clientdata.QuoteCache[[]domain.Quote]
	log      zerolog.Logger
	timeout  time.Duration
}

// NewService creates a new market service.
// provider may be nil, in which case only static data is served.
func NewService(
	provider domain.QuoteProvider,
	cache *clientdata.QuoteCache[[]domain.Quote],
	timeout time.Duration,
	log zerolog.Logger,
) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		timeout:  timeout,
		log:      log.With().Str("service", "market").Logger(),
	}
}

// Cache exposes the quote cache for cleanup and status reporting
func (s *Service) Cache() clientdata.Purger {
	return s.cache
}

// AvailableAssets returns the assets a user can pick for the given asset type
func (s *Service) AvailableAssets(ctx context.Context, assetType string) ([]domain.CatalogEntry, error) {
	t, ok := domain.ParseAssetType(assetType)
	if !ok {
		return nil, domain.NewValidationError("type", "unknown asset type %q", assetType)
	}

	switch t {
	case domain.AssetTypeStock:
		return toEntries(bistStocks), nil
	case domain.AssetTypeFund:
		return toEntries(turkishFunds), nil
	case domain.AssetTypeCommodity:
		return toEntries(commodities), nil
	}

	quotes, _, err := s.crypto(ctx, cryptoListKey, cryptoListSize)
	if err != nil {
		s.log.Warn().Err(err).Msg("Serving static crypto list")
		return toEntries(fallbackCoins), nil
	}

	entries := make([]domain.CatalogEntry, len(quotes))
	for i, q := range quotes {
		entries[i] = entryFromQuote(q)
	}
	return entries, nil
}

// MarketData returns the board for boardType. Unknown boards are empty.
func (s *Service) MarketData(ctx context.Context, boardType string) ([]Ticker, error) {
	board := strings.ToUpper(strings.TrimSpace(boardType))
	if board == "" {
		return nil, domain.NewValidationError("type", "is required")
	}

	if board != BoardCrypto {
		static := staticBoards[board]
		tickers := make([]Ticker, len(static))
		copy(tickers, static)
		return tickers, nil
	}

	quotes, _, err := s.crypto(ctx, cryptoBoardKey, cryptoBoardSize)
	if err != nil {
		return nil, err
	}

	tickers := make([]Ticker, len(quotes))
	for i, q := range quotes {
		tickers[i] = tickerFromQuote(q)
	}
	return tickers, nil
}

// QuotesFor returns the live quotes matching symbols, keyed by upper-case symbol.
// Symbols without a quote are absent from the map. degraded is true when the
// provider failed and cached data was served instead.
func (s *Service) QuotesFor(ctx context.Context, symbols []string) (map[string]domain.Quote, bool, error) {
	result := make(map[string]domain.Quote)
	if len(symbols) == 0 {
		return result, false, nil
	}

	quotes, degraded, err := s.crypto(ctx, cryptoListKey, cryptoListSize)
	if err != nil {
		return nil, true, err
	}

	wanted := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		wanted[strings.ToUpper(strings.TrimSpace(sym))] = true
	}
	for _, q := range quotes {
		// The provider can list several coins under one ticker; the larger market cap comes first.
		if _, seen := result[q.Symbol]; wanted[q.Symbol] && !seen {
			result[q.Symbol] = q
		}
	}
	return result, degraded, nil
}

// Refresh fetches the crypto list from the provider and replaces both cached crypto views
func (s *Service) Refresh(ctx context.Context) error {
	if s.provider == nil {
		return domain.ErrQuoteUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	quotes, err := s.provider.Markets(ctx, cryptoListSize)
	if err != nil {
		return fmt.Errorf("failed to refresh crypto quotes: %w", err)
	}

	s.cache.Set(cryptoListKey, quotes)
	top := quotes
	if len(top) > cryptoBoardSize {
		top = top[:cryptoBoardSize]
	}
	s.cache.Set(cryptoBoardKey, top)

	s.log.Debug().Int("quotes", len(quotes)).Msg("Refreshed crypto quotes")
	return nil
}

// crypto reads the top size coins through the cache, bounded by the quote timeout.
// A provider failure falls back to the stale entry for key.
func (s *Service) crypto(ctx context.Context, key string, size int) ([]domain.Quote, bool, error) {
	if s.provider == nil {
		return nil, true, domain.ErrQuoteUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	quotes, err := s.cache.GetOrFetch(ctx, key, func(ctx context.Context) ([]domain.Quote, error) {
		return s.provider.Markets(ctx, size)
	})
	if err == nil {
		return quotes, false, nil
	}

	if stale, age, ok := s.cache.GetStale(key); ok {
		s.log.Warn().
			Err(err).
			Str("key", key).
			Dur("age", age).
			Msg("Quote provider failed, serving stale quotes")
		return stale, true, nil
	}

	return nil, true, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
}
