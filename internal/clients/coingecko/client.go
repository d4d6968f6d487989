// Package coingecko provides market quote fetching from the CoinGecko public API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aristath/folio/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public CoinGecko v3 API.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// DefaultQuoteCurrency prices quotes in US dollars.
const DefaultQuoteCurrency = "usd"

var _ domain.QuoteProvider = (*Client)(nil)

// Client for api.coingecko.com
type Client struct {
	baseURL       string
	quoteCurrency string
	client        *http.Client
	log           zerolog.Logger
}

// NewClient creates a new CoinGecko client. An empty baseURL selects the public API.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		quoteCurrency: DefaultQuoteCurrency,
		client:        &http.Client{Timeout: 10 * time.Second},
		log:           log.With().Str("client", "coingecko").Logger(),
	}
}

// WithQuoteCurrency prices quotes in the given ISO currency (e.g. "TRY").
// An empty code keeps the current setting.
func (c *Client) WithQuoteCurrency(code string) *Client {
	if code != "" {
		c.quoteCurrency = strings.ToLower(code)
	}
	return c
}

// marketCoin is one row of the /coins/markets response.
type marketCoin struct {
	ID                       string              `json:"id"`
	Symbol                   string              `json:"symbol"`
	Name                     string              `json:"name"`
	Image                    string              `json:"image"`
	CurrentPrice             decimal.NullDecimal `json:"current_price"`
	PriceChangePercentage24h decimal.NullDecimal `json:"price_change_percentage_24h"`
}

// Markets returns the top perPage coins by market cap, priced in the quote currency.
func (c *Client) Markets(ctx context.Context, perPage int) ([]domain.Quote, error) {
	if perPage <= 0 {
		return nil, fmt.Errorf("perPage must be positive, got %d", perPage)
	}

	url := fmt.Sprintf("%s/coins/markets?vs_currency=%s&order=market_cap_desc&per_page=%d&page=1",
		c.baseURL, c.quoteCurrency, perPage)
	c.log.Debug().Str("url", url).Msg("Fetching markets")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var coins []marketCoin
	if err := json.NewDecoder(resp.Body).Decode(&coins); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	quotes := make([]domain.Quote, 0, len(coins))
	unpriced := 0
	for _, coin := range coins {
		// A coin without a price is not a zero-priced coin
		if !coin.CurrentPrice.Valid {
			unpriced++
			continue
		}
		quotes = append(quotes, domain.Quote{
			Symbol:           strings.ToUpper(coin.Symbol),
			Name:             coin.Name,
			Image:            coin.Image,
			Price:            coin.CurrentPrice.Decimal,
			PercentChange24h: coin.PriceChangePercentage24h.Decimal,
		})
	}

	c.log.Info().Int("count", len(quotes)).Int("skipped_unpriced", unpriced).Msg("Fetched markets")
	return quotes, nil
}
