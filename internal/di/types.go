// Package di provides dependency injection type definitions.
package di

import (
	"github.com/aristath/folio/internal/clientdata"
	"github.com/aristath/folio/internal/clients/coingecko"
	"github.com/aristath/folio/internal/database"
	"github.com/aristath/folio/internal/domain"
	"github.com/aristath/folio/internal/modules/market"
	"github.com/aristath/folio/internal/modules/portfolio"
	"github.com/aristath/folio/internal/scheduler"
)

// Container holds all dependencies for the application.
//
// It is created by Wire() and passed to the server for access to services.
type Container struct {
	// Database
	DB *database.DB

	// Repositories
	HoldingRepo     *portfolio.HoldingRepository
	TransactionRepo *portfolio.TransactionRepository
	CategoryRepo    *portfolio.CategoryRepository

	// Clients
	CoinGeckoClient *coingecko.Client

	// Caches
	QuoteCache *clientdata.QuoteCache[[]domain.Quote]

	// Services
	MarketService    *market.Service
	PortfolioService *portfolio.PortfolioService
}

// Close releases the resources held by the container
func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// JobInstances holds the background jobs for scheduling and manual triggering
type JobInstances struct {
	QuoteWarmup         scheduler.Job
	CacheCleanup        scheduler.Job
	DatabaseMaintenance scheduler.Job
}
