package market

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aristath/folio/internal/clientdata"
	"github.com/aristath/folio/internal/domain"
	testingpkg "github.com/aristath/folio/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func setupService(t *testing.T) (*Service, *testingpkg.MockQuoteProvider, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	provider := testingpkg.NewMockQuoteProvider()
	provider.SetQuotes(testingpkg.NewQuoteFixtures())

	cache := clientdata.NewQuoteCache[[]domain.Quote](clientdata.TTLQuote, zerolog.Nop()).
		WithClock(clock.Now).
		WithFetchTimeout(200 * time.Millisecond)
	return NewService(provider, cache, 200*time.Millisecond, zerolog.Nop()), provider, clock
}

func TestAvailableAssets_StaticCatalogs(t *testing.T) {
	svc, provider, _ := setupService(t)

	tests := []struct {
		assetType string
		count     int
		first     string
	}{
		{"stock", 103, "THYAO"},
		{"fund", 20, "ZPX"},
		{"Commodity", 25, "GAU"},
	}

	for _, tt := range tests {
		t.Run(tt.assetType, func(t *testing.T) {
			entries, err := svc.AvailableAssets(context.Background(), tt.assetType)
			require.NoError(t, err)
			assert.Len(t, entries, tt.count)
			assert.Equal(t, tt.first, entries[0].Symbol)
			assert.Nil(t, entries[0].CurrentPrice)
		})
	}
	assert.Equal(t, 0, provider.Calls())
}

func TestAvailableAssets_StockSymbolsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range bistStocks {
		assert.False(t, seen[s.symbol], "duplicate symbol %s", s.symbol)
		seen[s.symbol] = true
	}
}

func TestAvailableAssets_UnknownType(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.AvailableAssets(context.Background(), "bond")
	details, ok := domain.ValidationDetails(err)
	require.True(t, ok)
	assert.Equal(t, "type", details[0].Field)
}

func TestAvailableAssets_CryptoFromProviderIsCached(t *testing.T) {
	svc, provider, _ := setupService(t)

	entries, err := svc.AvailableAssets(context.Background(), "crypto")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "BTC", entries[0].Symbol)
	require.NotNil(t, entries[0].CurrentPrice)
	assert.Equal(t, "65000", entries[0].CurrentPrice.String())

	_, err = svc.AvailableAssets(context.Background(), "crypto")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.Calls())
}

func TestAvailableAssets_CryptoFallsBackToStaleThenStatic(t *testing.T) {
	svc, provider, clock := setupService(t)

	provider.SetError(errors.New("rate limited"))
	entries, err := svc.AvailableAssets(context.Background(), "crypto")
	require.NoError(t, err)
	assert.Len(t, entries, 20)
	assert.Nil(t, entries[0].CurrentPrice)

	provider.SetError(nil)
	_, err = svc.AvailableAssets(context.Background(), "crypto")
	require.NoError(t, err)

	clock.Advance(clientdata.TTLQuote + time.Second)
	provider.SetError(errors.New("rate limited"))
	entries, err = svc.AvailableAssets(context.Background(), "crypto")
	require.NoError(t, err)
	assert.Len(t, entries, 3, "stale provider data beats the static list")
}

func TestMarketData(t *testing.T) {
	svc, provider, _ := setupService(t)

	t.Run("crypto board is live", func(t *testing.T) {
		tickers, err := svc.MarketData(context.Background(), "CRYPTO")
		require.NoError(t, err)
		require.Len(t, tickers, 3)
		assert.Equal(t, "ETH", tickers[1].Symbol)
		assert.Equal(t, "-1.2", tickers[1].Change.String())
	})

	t.Run("static board", func(t *testing.T) {
		tickers, err := svc.MarketData(context.Background(), "forex")
		require.NoError(t, err)
		require.Len(t, tickers, 2)
		assert.Equal(t, "USDTRY", tickers[0].Symbol)
	})

	t.Run("unknown board is empty", func(t *testing.T) {
		tickers, err := svc.MarketData(context.Background(), "NIKKEI")
		require.NoError(t, err)
		assert.NotNil(t, tickers)
		assert.Empty(t, tickers)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := svc.MarketData(context.Background(), " ")
		_, ok := domain.ValidationDetails(err)
		assert.True(t, ok)
	})

	t.Run("crypto unavailable", func(t *testing.T) {
		svc, provider, _ := setupService(t)
		provider.SetError(errors.New("down"))
		_, err := svc.MarketData(context.Background(), "CRYPTO")
		assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)
	})

	assert.Equal(t, 1, provider.Calls())
}

func TestQuotesFor(t *testing.T) {
	svc, _, _ := setupService(t)

	quotes, degraded, err := svc.QuotesFor(context.Background(), []string{"btc", "SOL", "UNKNOWN"})
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, quotes, 2)
	assert.Equal(t, "140", quotes["SOL"].Price.String())

	empty, degraded, err := svc.QuotesFor(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Empty(t, empty)
}

func TestQuotesFor_DegradedOnStale(t *testing.T) {
	svc, provider, clock := setupService(t)

	_, _, err := svc.QuotesFor(context.Background(), []string{"BTC"})
	require.NoError(t, err)

	clock.Advance(clientdata.TTLQuote)
	provider.SetError(errors.New("boom"))

	quotes, degraded, err := svc.QuotesFor(context.Background(), []string{"BTC"})
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Contains(t, quotes, "BTC")
}

func TestQuotesFor_TimesOut(t *testing.T) {
	svc, provider, _ := setupService(t)
	provider.SetBlocking(true)

	start := time.Now()
	_, degraded, err := svc.QuotesFor(context.Background(), []string{"BTC"})
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)
	assert.True(t, degraded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNilProvider(t *testing.T) {
	cache := clientdata.NewQuoteCache[[]domain.Quote](clientdata.TTLQuote, zerolog.Nop())
	svc := NewService(nil, cache, time.Second, zerolog.Nop())

	entries, err := svc.AvailableAssets(context.Background(), "crypto")
	require.NoError(t, err)
	assert.Len(t, entries, 20)

	_, _, err = svc.QuotesFor(context.Background(), []string{"BTC"})
	assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)

	assert.ErrorIs(t, svc.Refresh(context.Background()), domain.ErrQuoteUnavailable)
}

func TestWarmupJob(t *testing.T) {
	svc, provider, _ := setupService(t)
	job := NewWarmupJob(svc, zerolog.Nop())
	assert.Equal(t, "market_quote_warmup", job.Name())

	require.NoError(t, job.Run())
	assert.Equal(t, 2, svc.Cache().Len())

	// Both views are now served from the cache
	_, err := svc.MarketData(context.Background(), "CRYPTO")
	require.NoError(t, err)
	_, _, err = svc.QuotesFor(context.Background(), []string{"ETH"})
	require.NoError(t, err)
	assert.Equal(t, 1, provider.Calls())

	provider.SetError(errors.New("down"))
	assert.Error(t, job.Run())
	assert.Equal(t, 2, svc.Cache().Len())
}
