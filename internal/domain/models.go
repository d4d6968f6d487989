// Package domain provides core domain models and types.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Decimal scales matching the stored schema precision.
const (
	QuantityScale int32 = 8
	CurrencyScale int32 = 2
)

// RoundQuantity rounds a quantity to the stored quantity precision.
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityScale)
}

// RoundCurrency rounds a monetary amount to the stored currency precision.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}

// Holding represents a user's recorded ownership of a quantity of an asset.
// Quantity and prices are decimals; CurrentPrice is null until explicitly set.
type Holding struct {
	PurchaseDate  time.Time           `json:"purchase_date"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	CategoryID    string              `json:"category_id"`
	Name          string              `json:"name"`
	Symbol        string              `json:"symbol"`
	Type          AssetType           `json:"type"`
	Quantity      decimal.Decimal     `json:"quantity"`
	PurchasePrice decimal.Decimal     `json:"purchase_price"`
	CurrentPrice  decimal.NullDecimal `json:"current_price"`
}

// HoldingUpdate carries the fields of a partial holding update.
// Nil fields are left untouched.
type HoldingUpdate struct {
	CategoryID        *string
	Name              *string
	Symbol            *string
	Type              *AssetType
	Quantity          *decimal.Decimal
	PurchasePrice     *decimal.Decimal
	CurrentPrice      *decimal.Decimal
	ClearCurrentPrice bool
	PurchaseDate      *time.Time
}

// IsEmpty reports whether the update carries no field at all.
func (u HoldingUpdate) IsEmpty() bool {
	return u.CategoryID == nil && u.Name == nil && u.Symbol == nil && u.Type == nil &&
		u.Quantity == nil && u.PurchasePrice == nil && u.CurrentPrice == nil &&
		!u.ClearCurrentPrice && u.PurchaseDate == nil
}

// Category is a persisted classification bucket.
// AssetType is empty for categories created by hand rather than seeded.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	AssetType AssetType `json:"asset_type,omitempty"`
}

// TransactionType is the side of a recorded transaction
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "buy"
	TransactionTypeSell TransactionType = "sell"
)

// ParseTransactionType validates a transaction side.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(s) {
	case TransactionTypeBuy, TransactionTypeSell:
		return TransactionType(s), true
	}
	return "", false
}

// Transaction is an entry of the append-only buy/sell log.
type Transaction struct {
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
	Notes           *string         `json:"notes"`
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	AssetID         string          `json:"asset_id"`
	Type            TransactionType `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// Quote is an externally sourced market price. Quotes are never persisted.
type Quote struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	Image            string          `json:"image,omitempty"`
	Price            decimal.Decimal `json:"price"`
	PercentChange24h decimal.Decimal `json:"percent_change_24h"`
}

// CatalogEntry is an asset a user can pick when adding a holding.
// Price fields are only known for live catalogs.
type CatalogEntry struct {
	Symbol         string           `json:"symbol"`
	Name           string           `json:"name"`
	Image          string           `json:"image,omitempty"`
	CurrentPrice   *decimal.Decimal `json:"current_price,omitempty"`
	PriceChange24h *decimal.Decimal `json:"price_change_24h,omitempty"`
}
