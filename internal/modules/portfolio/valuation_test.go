package portfolio

import (
	"testing"

	"github.com/aristath/folio/internal/domain"
	testingpkg "github.com/aristath/folio/internal/testing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func holding(id, symbol string, t domain.AssetType, qty, purchase, current string) domain.Holding {
	h := testingpkg.NewHoldingFixture(symbol, t, qty, purchase, current)
	h.ID = id
	return *h
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), append([]interface{}{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func TestValueHoldings_Empty(t *testing.T) {
	result := ValueHoldings(nil, nil)

	assertDecimal(t, "0", result.TotalValue)
	assertDecimal(t, "0", result.TotalCost)
	assertDecimal(t, "0", result.AbsoluteGainLoss)
	assertDecimal(t, "0", result.PercentGainLoss)
	assert.Empty(t, result.PerHolding)
	assert.Empty(t, result.Unpriced)
	assert.NotNil(t, result.PerHolding)
}

func TestValueHoldings_SingleStock(t *testing.T) {
	holdings := []domain.Holding{
		holding("h1", "THYAO", domain.AssetTypeStock, "10", "100", "120"),
	}

	result := ValueHoldings(holdings, nil)

	assertDecimal(t, "1200", result.TotalValue)
	assertDecimal(t, "1000", result.TotalCost)
	assertDecimal(t, "200", result.AbsoluteGainLoss)
	assertDecimal(t, "20", result.PercentGainLoss)

	require.Len(t, result.PerHolding, 1)
	hv := result.PerHolding[0]
	assert.Equal(t, "h1", hv.HoldingID)
	assert.Equal(t, PriceSourceStored, hv.PriceSource)
	assertDecimal(t, "120", hv.EffectivePrice)
	assertDecimal(t, "200", hv.GainLoss)
	assertDecimal(t, "20", hv.GainLossPercent)
	assert.Empty(t, result.Unpriced)
}

func TestValueHoldings_NullCurrentPriceFallsBackToPurchase(t *testing.T) {
	holdings := []domain.Holding{
		holding("h1", "GARAN", domain.AssetTypeStock, "5", "50", ""),
		holding("h2", "BTC", domain.AssetTypeCrypto, "2", "1000", "1200"),
	}

	result := ValueHoldings(holdings, nil)

	assertDecimal(t, "250", result.PerHolding[0].CurrentValue)
	assertDecimal(t, "0", result.PerHolding[0].GainLoss)
	assert.Equal(t, PriceSourcePurchase, result.PerHolding[0].PriceSource)
	assertDecimal(t, "2400", result.PerHolding[1].CurrentValue)
	assertDecimal(t, "2650", result.TotalValue)
	assertDecimal(t, "2250", result.TotalCost)
	assert.Equal(t, []string{"h1"}, result.Unpriced)
}

func TestValueHoldings_ZeroCurrentPriceIsAPrice(t *testing.T) {
	holdings := []domain.Holding{
		holding("h1", "LUNA", domain.AssetTypeCrypto, "100", "5", "0"),
	}

	result := ValueHoldings(holdings, nil)

	assertDecimal(t, "0", result.TotalValue)
	assertDecimal(t, "500", result.TotalCost)
	assertDecimal(t, "-500", result.AbsoluteGainLoss)
	assertDecimal(t, "-100", result.PercentGainLoss)
	assert.Equal(t, PriceSourceStored, result.PerHolding[0].PriceSource)
	assert.Empty(t, result.Unpriced)
}

func TestValueHoldings_ZeroCostBasis(t *testing.T) {
	holdings := []domain.Holding{
		holding("h1", "AIRDROP", domain.AssetTypeCrypto, "10", "0", "3"),
	}

	result := ValueHoldings(holdings, nil)

	assertDecimal(t, "30", result.TotalValue)
	assertDecimal(t, "0", result.TotalCost)
	assertDecimal(t, "30", result.AbsoluteGainLoss)
	assertDecimal(t, "0", result.PercentGainLoss)
	assertDecimal(t, "0", result.PerHolding[0].GainLossPercent)
}

func TestValueHoldings_ZeroQuantity(t *testing.T) {
	holdings := []domain.Holding{
		holding("h1", "THYAO", domain.AssetTypeStock, "0", "100", "120"),
	}

	result := ValueHoldings(holdings, nil)
	assertDecimal(t, "0", result.TotalValue)
	assertDecimal(t, "0", result.PercentGainLoss)
}

func TestValueHoldings_QuotePrecedence(t *testing.T) {
	holdings := []domain.Holding{
		holding("h1", "btc", domain.AssetTypeCrypto, "0.5", "50000", "60000"),
		holding("h2", "ETH", domain.AssetTypeCrypto, "1", "2000", ""),
		// A stock sharing a crypto ticker must not pick up the crypto quote
		holding("h3", "SOL", domain.AssetTypeStock, "1", "10", "12"),
	}
	quotes := QuotePrices{
		"BTC": dec("65000"),
		"SOL": dec("140"),
	}

	result := ValueHoldings(holdings, quotes)

	assert.Equal(t, PriceSourceQuote, result.PerHolding[0].PriceSource)
	assertDecimal(t, "32500", result.PerHolding[0].CurrentValue)
	assert.Equal(t, PriceSourcePurchase, result.PerHolding[1].PriceSource)
	assert.Equal(t, PriceSourceStored, result.PerHolding[2].PriceSource)
	assertDecimal(t, "12", result.PerHolding[2].CurrentValue)
	assert.Equal(t, []string{"h2"}, result.Unpriced)
}

func TestValueHoldings_DecimalPrecision(t *testing.T) {
	// 0.1 + 0.2 style drift must not appear
	holdings := []domain.Holding{
		holding("h1", "A", domain.AssetTypeCrypto, "0.1", "1", "1"),
		holding("h2", "B", domain.AssetTypeCrypto, "0.2", "1", "1"),
		holding("h3", "C", domain.AssetTypeCrypto, "0.12345678", "1234.56", "1234.56"),
	}

	result := ValueHoldings(holdings, nil)

	assertDecimal(t, "0.1", result.PerHolding[0].CurrentValue)
	assertDecimal(t, "0.2", result.PerHolding[1].CurrentValue)
	// 0.12345678 * 1234.56 = 152.4148...
	assertDecimal(t, "152.41", result.PerHolding[2].CurrentValue)
	assertDecimal(t, "152.71", result.TotalValue)
}

func TestValueHoldings_PercentRounding(t *testing.T) {
	holdings := []domain.Holding{
		holding("h1", "X", domain.AssetTypeFund, "3", "1", "1.333"),
	}

	result := ValueHoldings(holdings, nil)

	// value 3.999 rounds to 4.00, cost 3: gain 1 => 33.33%
	assertDecimal(t, "4", result.TotalValue)
	assertDecimal(t, "33.33", result.PercentGainLoss)
}

func TestValueHoldings_Idempotent(t *testing.T) {
	holdings := make([]domain.Holding, 0)
	for i, h := range testingpkg.NewPortfolioFixtures() {
		h.ID = string(rune('a' + i))
		holdings = append(holdings, *h)
	}
	quotes := QuotePrices{"BTC": dec("65000")}

	first := ValueHoldings(holdings, quotes)
	second := ValueHoldings(holdings, quotes)

	assert.Equal(t, first, second)
}
