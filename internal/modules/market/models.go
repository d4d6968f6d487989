package market

import (
	"github.com/aristath/folio/internal/domain"
	"github.com/shopspring/decimal"
)

// Market data boards accepted by MarketData
const (
	BoardCrypto    = "CRYPTO"
	BoardBIST      = "BIST"
	BoardABD       = "ABD"
	BoardForex     = "FOREX"
	BoardCommodity = "COMMODITY"
)

// Cache keys and page sizes for the crypto provider
const (
	cryptoListKey   = "crypto-list"
	cryptoListSize  = 100
	cryptoBoardKey  = "market-" + BoardCrypto
	cryptoBoardSize = 10
)

// Ticker is one row of a market data board
type Ticker struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Change decimal.Decimal `json:"change"`
}

func tickerFromQuote(q domain.Quote) Ticker {
	return Ticker{
		Symbol: q.Symbol,
		Name:   q.Name,
		Price:  q.Price,
		Change: q.PercentChange24h,
	}
}

func entryFromQuote(q domain.Quote) domain.CatalogEntry {
	price := q.Price
	change := q.PercentChange24h
	return domain.CatalogEntry{
		Symbol:         q.Symbol,
		Name:           q.Name,
		Image:          q.Image,
		CurrentPrice:   &price,
		PriceChange24h: &change,
	}
}
