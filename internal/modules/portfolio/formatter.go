package portfolio

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// MoneyFormatter renders decimal amounts as display strings in one currency.
type MoneyFormatter struct {
	currency *money.Currency
}

// NewMoneyFormatter creates a formatter for the ISO 4217 currency code.
func NewMoneyFormatter(code string) (*MoneyFormatter, error) {
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &MoneyFormatter{currency: cur}, nil
}

// Code returns the ISO code of the formatter's currency.
func (f *MoneyFormatter) Code() string {
	return f.currency.Code
}

// Format converts amount to minor units and renders it with the currency template.
func (f *MoneyFormatter) Format(amount decimal.Decimal) string {
	minor := amount.Shift(int32(f.currency.Fraction)).Round(0).IntPart()
	return money.New(minor, f.currency.Code).Display()
}

// ApplyValuation fills the display fields of a valuation.
func (f *MoneyFormatter) ApplyValuation(v *ValuationResult) {
	v.Currency = f.Code()
	v.FormattedTotalValue = f.Format(v.TotalValue)
	v.FormattedTotalCost = f.Format(v.TotalCost)
	v.FormattedGainLoss = f.Format(v.AbsoluteGainLoss)
	for i := range v.PerHolding {
		v.PerHolding[i].FormattedValue = f.Format(v.PerHolding[i].CurrentValue)
	}
}

// ApplyDistribution fills the display fields of a distribution.
func (f *MoneyFormatter) ApplyDistribution(d *CategoryDistribution) {
	d.Currency = f.Code()
	for i := range d.Buckets {
		d.Buckets[i].FormattedValue = f.Format(d.Buckets[i].TotalValue)
	}
}
