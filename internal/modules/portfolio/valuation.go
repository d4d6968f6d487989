package portfolio

import (
	"strings"

	"github.com/aristath/folio/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// QuotePrices maps an upper-cased symbol to its live market price.
type QuotePrices map[string]decimal.Decimal

// quotedTypes are the asset types live quotes apply to. The quote provider
// only covers crypto markets, so other symbols are never matched against it.
var quotedTypes = map[domain.AssetType]bool{
	domain.AssetTypeCrypto: true,
}

// ValueHoldings computes total value, cost basis and gain/loss over holdings.
//
// Effective price precedence: live quote (quoted types only), then the stored
// current price, then the purchase price. A stored price of zero is a real
// price. Each holding's value and cost are rounded to currency precision before
// summing, so per-holding and per-category figures add up to the totals exactly.
//
// The computation is pure: the same holdings and quotes always yield the same result.
func ValueHoldings(holdings []domain.Holding, quotes QuotePrices) *ValuationResult {
	result := &ValuationResult{
		TotalValue:       decimal.Zero,
		TotalCost:        decimal.Zero,
		AbsoluteGainLoss: decimal.Zero,
		PercentGainLoss:  decimal.Zero,
		PerHolding:       make([]HoldingValuation, 0, len(holdings)),
		Unpriced:         make([]string, 0),
	}

	for _, h := range holdings {
		price, source := effectivePrice(h, quotes)

		value := domain.RoundCurrency(price.Mul(h.Quantity))
		cost := domain.RoundCurrency(h.PurchasePrice.Mul(h.Quantity))
		gain := value.Sub(cost)

		result.PerHolding = append(result.PerHolding, HoldingValuation{
			HoldingID:       h.ID,
			Name:            h.Name,
			Symbol:          h.Symbol,
			Type:            h.Type,
			PriceSource:     source,
			Quantity:        h.Quantity,
			EffectivePrice:  price,
			CurrentValue:    value,
			Cost:            cost,
			GainLoss:        gain,
			GainLossPercent: percentOf(gain, cost),
		})

		if source == PriceSourcePurchase {
			result.Unpriced = append(result.Unpriced, h.ID)
		}

		result.TotalValue = result.TotalValue.Add(value)
		result.TotalCost = result.TotalCost.Add(cost)
	}

	result.AbsoluteGainLoss = result.TotalValue.Sub(result.TotalCost)
	result.PercentGainLoss = percentOf(result.AbsoluteGainLoss, result.TotalCost)

	return result
}

func effectivePrice(h domain.Holding, quotes QuotePrices) (decimal.Decimal, PriceSource) {
	if quotedTypes[h.Type] && quotes != nil {
		if p, ok := quotes[strings.ToUpper(h.Symbol)]; ok {
			return p, PriceSourceQuote
		}
	}
	if h.CurrentPrice.Valid {
		return h.CurrentPrice.Decimal, PriceSourceStored
	}
	return h.PurchasePrice, PriceSourcePurchase
}

// percentOf returns part/whole*100 rounded to currency precision, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return domain.RoundCurrency(part.Mul(hundred).DivRound(whole, domain.QuantityScale))
}
