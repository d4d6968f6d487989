package portfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/folio/internal/domain"
	"github.com/shopspring/decimal"
)

// Bounds on amounts accepted from clients. They are checked before any
// rescaling so that exponent notation cannot force huge expansions.
const (
	maxAmountLength         = 64
	maxAmountIntegerDigits  = 20
	maxAmountFractionDigits = 24
)

// NumericInput holds a decimal supplied either as a JSON number or a numeric string.
type NumericInput string

// UnmarshalJSON accepts 12.5 as well as "12.5".
func (n *NumericInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericInput(s)
		return nil
	}
	*n = NumericInput(b)
	return nil
}

// HoldingInput is the payload for creating a holding
type HoldingInput struct {
	CurrentPrice  *NumericInput `json:"current_price"`
	UserID        string        `json:"user_id"`
	CategoryID    string        `json:"category_id"`
	Name          string        `json:"name"`
	Symbol        string        `json:"symbol"`
	Type          string        `json:"type"`
	Quantity      NumericInput  `json:"quantity"`
	PurchasePrice NumericInput  `json:"purchase_price"`
	PurchaseDate  string        `json:"purchase_date"`
}

// HoldingPatch is the payload for a partial holding update.
// A JSON null current_price clears the stored price.
type HoldingPatch struct {
	CategoryID    *string         `json:"category_id"`
	Name          *string         `json:"name"`
	Symbol        *string         `json:"symbol"`
	Type          *string         `json:"type"`
	Quantity      *NumericInput   `json:"quantity"`
	PurchasePrice *NumericInput   `json:"purchase_price"`
	PurchaseDate  *string         `json:"purchase_date"`
	CurrentPrice  json.RawMessage `json:"current_price"`
}

// TransactionInput is the payload for recording a transaction
type TransactionInput struct {
	Notes           *string      `json:"notes"`
	UserID          string       `json:"user_id"`
	AssetID         string       `json:"asset_id"`
	Type            string       `json:"type"`
	Quantity        NumericInput `json:"quantity"`
	Price           NumericInput `json:"price"`
	TransactionDate string       `json:"transaction_date"`
}

// CategoryInput is the payload for creating a category by hand
type CategoryInput struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	AssetType string `json:"asset_type"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("expected RFC3339 or YYYY-MM-DD date, got %q", s)
}

// parseAmount validates a non-negative decimal with at most scale fractional digits.
// Problems are added to errs under field.
func parseAmount(errs *domain.ValidationErrors, field string, raw NumericInput, scale int32, positive bool) decimal.Decimal {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		errs.Add(field, "is required")
		return decimal.Zero
	}

	if len(s) > maxAmountLength {
		errs.Add(field, "must be at most %d characters", maxAmountLength)
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		errs.Add(field, "must be a decimal number, got %q", s)
		return decimal.Zero
	}
	if int64(d.NumDigits())+int64(d.Exponent()) > maxAmountIntegerDigits {
		errs.Add(field, "must have at most %d integer digits", maxAmountIntegerDigits)
		return decimal.Zero
	}
	if d.Exponent() < -maxAmountFractionDigits {
		errs.Add(field, "must have at most %d decimal places", scale)
		return decimal.Zero
	}
	if d.IsNegative() {
		errs.Add(field, "must not be negative")
		return decimal.Zero
	}
	if positive && d.IsZero() {
		errs.Add(field, "must be greater than zero")
		return decimal.Zero
	}
	if !d.Equal(d.Truncate(scale)) {
		errs.Add(field, "must have at most %d decimal places", scale)
		return decimal.Zero
	}
	return d
}

func requireText(errs *domain.ValidationErrors, field, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		errs.Add(field, "is required")
	}
	return v
}

// normalizeSymbol trims and upper-cases a ticker.
func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
