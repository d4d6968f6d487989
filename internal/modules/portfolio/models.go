package portfolio

import (
	"github.com/aristath/folio/internal/domain"
	"github.com/shopspring/decimal"
)

// PriceSource tells where a holding's effective price came from.
type PriceSource string

const (
	PriceSourceQuote    PriceSource = "quote"    // live market quote
	PriceSourceStored   PriceSource = "stored"   // current price saved on the holding
	PriceSourcePurchase PriceSource = "purchase" // no price known, purchase price used
)

// HoldingValuation is the per-holding line of a valuation.
type HoldingValuation struct {
	HoldingID       string           `json:"holding_id"`
	Name            string           `json:"name"`
	Symbol          string           `json:"symbol"`
	Type            domain.AssetType `json:"type"`
	PriceSource     PriceSource      `json:"price_source"`
	Quantity        decimal.Decimal  `json:"quantity"`
	EffectivePrice  decimal.Decimal  `json:"effective_price"`
	CurrentValue    decimal.Decimal  `json:"current_value"`
	Cost            decimal.Decimal  `json:"cost"`
	GainLoss        decimal.Decimal  `json:"gain_loss"`
	GainLossPercent decimal.Decimal  `json:"gain_loss_percent"`
	FormattedValue  string           `json:"formatted_value,omitempty"`
}

// ValuationResult is the owner-level valuation.
// Unpriced lists holdings valued at their purchase price because no other price was known.
// Degraded is set when live quotes were requested but could not be fetched.
type ValuationResult struct {
	TotalValue          decimal.Decimal    `json:"total_value"`
	TotalCost           decimal.Decimal    `json:"total_cost"`
	AbsoluteGainLoss    decimal.Decimal    `json:"absolute_gain_loss"`
	PercentGainLoss     decimal.Decimal    `json:"percent_gain_loss"`
	Currency            string             `json:"currency,omitempty"`
	FormattedTotalValue string             `json:"formatted_total_value,omitempty"`
	FormattedTotalCost  string             `json:"formatted_total_cost,omitempty"`
	FormattedGainLoss   string             `json:"formatted_gain_loss,omitempty"`
	PerHolding          []HoldingValuation `json:"per_holding"`
	Unpriced            []string           `json:"unpriced"`
	Degraded            bool               `json:"degraded"`
}

// CategoryBucket is one category total of a distribution.
type CategoryBucket struct {
	Type           domain.AssetType `json:"type"`
	Label          string           `json:"label"`
	Icon           string           `json:"icon"`
	ColorTag       string           `json:"color_tag"`
	FormattedValue string           `json:"formatted_value,omitempty"`
	TotalValue     decimal.Decimal  `json:"total_value"`
	WeightPercent  decimal.Decimal  `json:"weight_percent"`
	HoldingCount   int              `json:"holding_count"`
}

// CategoryDistribution groups a valuation by asset type.
// Concentration is the Herfindahl index of the bucket weights (1 = single bucket).
type CategoryDistribution struct {
	TotalValue    decimal.Decimal  `json:"total_value"`
	Currency      string           `json:"currency,omitempty"`
	Buckets       []CategoryBucket `json:"buckets"`
	Concentration float64          `json:"concentration"`
}

// PortfolioSummary is a valuation and its distribution computed from one read.
type PortfolioSummary struct {
	Valuation    *ValuationResult      `json:"valuation"`
	Distribution *CategoryDistribution `json:"distribution"`
	HoldingCount int                   `json:"holding_count"`
}
