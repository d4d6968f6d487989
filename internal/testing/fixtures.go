package testing

import (
	"time"

	"github.com/aristath/folio/internal/domain"
	"github.com/shopspring/decimal"
)

// FixtureUserID is the owner used by fixture holdings.
const FixtureUserID = "demo-user"

// NewHoldingFixture returns an unsaved holding with the given type, quantity and prices.
// An empty currentPrice leaves the current price unset.
func NewHoldingFixture(symbol string, assetType domain.AssetType, quantity, purchasePrice, currentPrice string) *domain.Holding {
	h := &domain.Holding{
		UserID:        FixtureUserID,
		Name:          symbol,
		Symbol:        symbol,
		Type:          assetType,
		Quantity:      decimal.RequireFromString(quantity),
		PurchasePrice: decimal.RequireFromString(purchasePrice),
		PurchaseDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	if currentPrice != "" {
		h.CurrentPrice = decimal.NewNullDecimal(decimal.RequireFromString(currentPrice))
	}
	return h
}

// NewPortfolioFixtures returns a small mixed portfolio:
// THYAO 10 @ 100 -> 120, BTC 0.5 @ 50000 -> 60000, GAU 20 @ 2000 (no current price).
func NewPortfolioFixtures() []*domain.Holding {
	return []*domain.Holding{
		NewHoldingFixture("THYAO", domain.AssetTypeStock, "10", "100", "120"),
		NewHoldingFixture("BTC", domain.AssetTypeCrypto, "0.5", "50000", "60000"),
		NewHoldingFixture("GAU", domain.AssetTypeCommodity, "20", "2000", ""),
	}
}

// NewQuoteFixtures returns market quotes for a few large coins.
func NewQuoteFixtures() []domain.Quote {
	return []domain.Quote{
		{Symbol: "BTC", Name: "Bitcoin", Price: decimal.RequireFromString("65000"), PercentChange24h: decimal.RequireFromString("2.5")},
		{Symbol: "ETH", Name: "Ethereum", Price: decimal.RequireFromString("3200.50"), PercentChange24h: decimal.RequireFromString("-1.2")},
		{Symbol: "SOL", Name: "Solana", Price: decimal.RequireFromString("140"), PercentChange24h: decimal.RequireFromString("0.4")},
	}
}
