package di

import (
	"fmt"

	"github.com/aristath/folio/internal/clientdata"
	"github.com/aristath/folio/internal/clients/coingecko"
	"github.com/aristath/folio/internal/config"
	"github.com/aristath/folio/internal/domain"
	"github.com/aristath/folio/internal/modules/market"
	"github.com/aristath/folio/internal/modules/portfolio"
	"github.com/rs/zerolog"
)

// InitializeServices creates clients, caches and services
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	// Quotes are priced in the reporting currency, same as stored prices
	container.CoinGeckoClient = coingecko.NewClient(cfg.CoinGeckoBaseURL, log).
		WithQuoteCurrency(cfg.ReportingCurrency)
	container.QuoteCache = clientdata.NewQuoteCache[[]domain.Quote](cfg.QuoteFreshness, log).
		WithFetchTimeout(cfg.QuoteTimeout)

	container.MarketService = market.NewService(
		container.CoinGeckoClient,
		container.QuoteCache,
		cfg.QuoteTimeout,
		log,
	)

	portfolioService, err := portfolio.NewPortfolioService(
		container.HoldingRepo,
		container.TransactionRepo,
		container.CategoryRepo,
		container.MarketService,
		portfolio.ServiceConfig{
			DefaultUserID: cfg.DemoUserID,
			Currency:      cfg.ReportingCurrency,
			LivePricing:   cfg.LivePricing,
		},
		log,
	)
	if err != nil {
		return fmt.Errorf("failed to create portfolio service: %w", err)
	}
	container.PortfolioService = portfolioService

	return nil
}
