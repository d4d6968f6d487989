package portfolio

import (
	"context"

	"github.com/aristath/folio/internal/domain"
)

// HoldingRepositoryInterface defines the holding storage operations used by the service
type HoldingRepositoryInterface interface {
	ListByUser(userID string) ([]domain.Holding, error)
	ListByType(userID string, assetType domain.AssetType) ([]domain.Holding, error)
	GetByID(id string) (*domain.Holding, error)
	Create(h *domain.Holding) error
	Update(id string, upd domain.HoldingUpdate) (*domain.Holding, error)
	Delete(id string) error
}

// TransactionRepositoryInterface defines the transaction log operations used by the service
type TransactionRepositoryInterface interface {
	ListByUser(userID string) ([]domain.Transaction, error)
	ListByAsset(assetID string) ([]domain.Transaction, error)
	Create(t *domain.Transaction) error
}

// CategoryRepositoryInterface defines the category operations used by the service
type CategoryRepositoryInterface interface {
	List() ([]domain.Category, error)
	GetByID(id string) (*domain.Category, error)
	GetByType(assetType domain.AssetType) (*domain.Category, error)
	Create(c *domain.Category) error
}

// QuoteSource supplies live prices for valuation.
// Defined here to avoid an import cycle with the market module.
type QuoteSource interface {
	// QuotesFor returns the quotes known for symbols, keyed by upper-cased symbol.
	// degraded reports that the provider failed and stale or no data was used.
	QuotesFor(ctx context.Context, symbols []string) (quotes map[string]domain.Quote, degraded bool, err error)
}
