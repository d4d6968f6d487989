package portfolio

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aristath/folio/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ServiceConfig holds the portfolio service settings
type ServiceConfig struct {
	DefaultUserID string // Owner used when a request names none
	Currency      string // Reporting currency for formatted amounts
	LivePricing   bool   // Ask the quote source for live prices during valuation
}

// PortfolioService orchestrates holdings, transactions and valuations.
//
// Responsibilities:
//   - Validate and persist holdings, categories and transactions
//   - Value an owner's holdings (Valuation Engine)
//   - Group valued holdings by category (Category Aggregator)
//
// Dependencies:
//   - HoldingRepositoryInterface, TransactionRepositoryInterface, CategoryRepositoryInterface: storage
//   - QuoteSource: live market prices (optional)
//   - MoneyFormatter: display strings in the reporting currency
type PortfolioService struct {
	holdingRepo     HoldingRepositoryInterface
	transactionRepo TransactionRepositoryInterface
	categoryRepo    CategoryRepositoryInterface
	quotes          QuoteSource
	formatter       *MoneyFormatter
	cfg             ServiceConfig
	log             zerolog.Logger
}

// NewPortfolioService creates a new portfolio service.
// quotes may be nil, in which case valuations use stored prices only.
func NewPortfolioService(
	holdingRepo HoldingRepositoryInterface,
	transactionRepo TransactionRepositoryInterface,
	categoryRepo CategoryRepositoryInterface,
	quotes QuoteSource,
	cfg ServiceConfig,
	log zerolog.Logger,
) (*PortfolioService, error) {
	formatter, err := NewMoneyFormatter(cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to create money formatter: %w", err)
	}

	return &PortfolioService{
		holdingRepo:     holdingRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		quotes:          quotes,
		formatter:       formatter,
		cfg:             cfg,
		log:             log.With().Str("service", "portfolio").Logger(),
	}, nil
}

// ResolveUserID returns userID, or the default owner when it is blank
func (s *PortfolioService) ResolveUserID(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return s.cfg.DefaultUserID
	}
	return strings.TrimSpace(userID)
}

// Categories

// ListCategories returns all categories
func (s *PortfolioService) ListCategories() ([]domain.Category, error) {
	return s.categoryRepo.List()
}

// CreateCategory validates and stores a hand-made category
func (s *PortfolioService) CreateCategory(in CategoryInput) (*domain.Category, error) {
	var errs domain.ValidationErrors
	c := &domain.Category{
		Name:  requireText(&errs, "name", in.Name),
		Icon:  requireText(&errs, "icon", in.Icon),
		Color: requireText(&errs, "color", in.Color),
	}
	if in.AssetType != "" {
		t, ok := domain.ParseAssetType(in.AssetType)
		if !ok {
			errs.Add("asset_type", "unknown asset type %q", in.AssetType)
		}
		c.AssetType = t
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

// Holdings

// ListHoldings returns the holdings of userID (default owner when blank)
func (s *PortfolioService) ListHoldings(userID string) ([]domain.Holding, error) {
	return s.holdingRepo.ListByUser(s.ResolveUserID(userID))
}

// ListHoldingsByType returns the holdings of userID with the given asset type.
// An unknown type is a validation error.
func (s *PortfolioService) ListHoldingsByType(userID, assetType string) ([]domain.Holding, error) {
	typ, ok := domain.ParseAssetType(assetType)
	if !ok {
		return nil, domain.NewValidationError("type", "unknown asset type %q", assetType)
	}
	return s.holdingRepo.ListByType(s.ResolveUserID(userID), typ)
}

// GetHolding returns one holding or an error wrapping domain.ErrNotFound
func (s *PortfolioService) GetHolding(id string) (*domain.Holding, error) {
	return s.holdingRepo.GetByID(id)
}

// CreateHolding validates in and stores a new holding.
// The category is resolved from the asset type unless one is given explicitly.
func (s *PortfolioService) CreateHolding(in HoldingInput) (*domain.Holding, error) {
	var errs domain.ValidationErrors

	h := &domain.Holding{
		UserID:        s.ResolveUserID(in.UserID),
		Name:          requireText(&errs, "name", in.Name),
		Symbol:        normalizeSymbol(requireText(&errs, "symbol", in.Symbol)),
		Quantity:      parseAmount(&errs, "quantity", in.Quantity, domain.QuantityScale, false),
		PurchasePrice: parseAmount(&errs, "purchase_price", in.PurchasePrice, domain.CurrencyScale, false),
	}

	assetType, ok := domain.ParseAssetType(in.Type)
	if !ok {
		errs.Add("type", "unknown asset type %q", in.Type)
	}
	h.Type = assetType

	if in.CurrentPrice != nil {
		h.CurrentPrice = decimal.NewNullDecimal(parseAmount(&errs, "current_price", *in.CurrentPrice, domain.CurrencyScale, false))
	}

	if strings.TrimSpace(in.PurchaseDate) != "" {
		d, err := parseDate(in.PurchaseDate)
		if err != nil {
			errs.Add("purchase_date", "%s", err.Error())
		}
		h.PurchaseDate = d
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(in.CategoryID, h.Type)
	if err != nil {
		return nil, err
	}
	h.CategoryID = categoryID

	if err := s.holdingRepo.Create(h); err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}

	s.log.Info().
		Str("id", h.ID).
		Str("symbol", h.Symbol).
		Str("type", string(h.Type)).
		Msg("Holding created")

	return h, nil
}

// UpdateHolding applies a partial update to a holding.
// Changing the type without naming a category re-resolves the category from the type.
func (s *PortfolioService) UpdateHolding(id string, patch HoldingPatch) (*domain.Holding, error) {
	var errs domain.ValidationErrors
	var upd domain.HoldingUpdate

	if patch.Name != nil {
		name := requireText(&errs, "name", *patch.Name)
		upd.Name = &name
	}
	if patch.Symbol != nil {
		symbol := normalizeSymbol(requireText(&errs, "symbol", *patch.Symbol))
		upd.Symbol = &symbol
	}
	if patch.Type != nil {
		t, ok := domain.ParseAssetType(*patch.Type)
		if !ok {
			errs.Add("type", "unknown asset type %q", *patch.Type)
		}
		upd.Type = &t
	}
	if patch.Quantity != nil {
		q := parseAmount(&errs, "quantity", *patch.Quantity, domain.QuantityScale, false)
		upd.Quantity = &q
	}
	if patch.PurchasePrice != nil {
		p := parseAmount(&errs, "purchase_price", *patch.PurchasePrice, domain.CurrencyScale, false)
		upd.PurchasePrice = &p
	}
	if len(patch.CurrentPrice) > 0 {
		if bytes.Equal(bytes.TrimSpace(patch.CurrentPrice), []byte("null")) {
			upd.ClearCurrentPrice = true
		} else {
			var raw NumericInput
			if err := raw.UnmarshalJSON(patch.CurrentPrice); err != nil {
				errs.Add("current_price", "must be a decimal number")
			} else {
				p := parseAmount(&errs, "current_price", raw, domain.CurrencyScale, false)
				upd.CurrentPrice = &p
			}
		}
	}
	if patch.PurchaseDate != nil {
		d, err := parseDate(*patch.PurchaseDate)
		if err != nil {
			errs.Add("purchase_date", "%s", err.Error())
		}
		upd.PurchaseDate = &d
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if patch.CategoryID != nil || upd.Type != nil {
		var requested string
		if patch.CategoryID != nil {
			requested = *patch.CategoryID
		}
		var t domain.AssetType
		if upd.Type != nil {
			t = *upd.Type
		} else {
			current, err := s.holdingRepo.GetByID(id)
			if err != nil {
				return nil, err
			}
			t = current.Type
		}
		categoryID, err := s.resolveCategory(requested, t)
		if err != nil {
			return nil, err
		}
		upd.CategoryID = &categoryID
	}

	if upd.IsEmpty() {
		return s.holdingRepo.GetByID(id)
	}

	return s.holdingRepo.Update(id, upd)
}

// DeleteHolding removes a holding and its transactions. Missing holdings are not an error.
func (s *PortfolioService) DeleteHolding(id string) error {
	if err := s.holdingRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	s.log.Info().Str("id", id).Msg("Holding deleted")
	return nil
}

// resolveCategory validates an explicitly requested category or looks one up from the asset type.
func (s *PortfolioService) resolveCategory(requested string, assetType domain.AssetType) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		c, err := s.categoryRepo.GetByID(requested)
		if domain.IsNotFound(err) {
			return "", domain.NewValidationError("category_id", "category %s does not exist", requested)
		}
		if err != nil {
			return "", err
		}
		return c.ID, nil
	}

	c, err := s.categoryRepo.GetByType(assetType)
	if err != nil {
		return "", fmt.Errorf("failed to resolve category for %s: %w", assetType, err)
	}
	return c.ID, nil
}

// Transactions

// ListTransactions returns userID's transactions, newest first
func (s *PortfolioService) ListTransactions(userID string) ([]domain.Transaction, error) {
	return s.transactionRepo.ListByUser(s.ResolveUserID(userID))
}

// ListTransactionsByAsset returns the transactions of one holding, newest first
func (s *PortfolioService) ListTransactionsByAsset(assetID string) ([]domain.Transaction, error) {
	return s.transactionRepo.ListByAsset(assetID)
}

// CreateTransaction validates and records a buy or sell.
// The total is quantity x price at currency precision. The holding itself is not modified.
func (s *PortfolioService) CreateTransaction(in TransactionInput) (*domain.Transaction, error) {
	var errs domain.ValidationErrors

	t := &domain.Transaction{
		AssetID:  requireText(&errs, "asset_id", in.AssetID),
		Quantity: parseAmount(&errs, "quantity", in.Quantity, domain.QuantityScale, true),
		Price:    parseAmount(&errs, "price", in.Price, domain.CurrencyScale, false),
		Notes:    in.Notes,
	}

	txType, ok := domain.ParseTransactionType(strings.ToLower(strings.TrimSpace(in.Type)))
	if !ok {
		errs.Add("type", "must be buy or sell, got %q", in.Type)
	}
	t.Type = txType

	if strings.TrimSpace(in.TransactionDate) != "" {
		d, err := parseDate(in.TransactionDate)
		if err != nil {
			errs.Add("transaction_date", "%s", err.Error())
		}
		t.TransactionDate = d
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	holding, err := s.holdingRepo.GetByID(t.AssetID)
	if domain.IsNotFound(err) {
		return nil, domain.NewValidationError("asset_id", "holding %s does not exist", t.AssetID)
	}
	if err != nil {
		return nil, err
	}

	t.UserID = holding.UserID
	if in.UserID != "" && in.UserID != holding.UserID {
		return nil, domain.NewValidationError("user_id", "holding %s belongs to another user", t.AssetID)
	}

	t.TotalAmount = domain.RoundCurrency(t.Quantity.Mul(t.Price))

	if err := s.transactionRepo.Create(t); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.log.Info().
		Str("id", t.ID).
		Str("asset_id", t.AssetID).
		Str("type", string(t.Type)).
		Str("total", t.TotalAmount.String()).
		Msg("Transaction recorded")

	return t, nil
}

// Valuation and distribution

// Valuation values userID's holdings
func (s *PortfolioService) Valuation(ctx context.Context, userID string) (*ValuationResult, error) {
	holdings, err := s.holdingRepo.ListByUser(s.ResolveUserID(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return s.value(ctx, holdings), nil
}

// Distribution groups userID's valued holdings by category
func (s *PortfolioService) Distribution(ctx context.Context, userID string) (*CategoryDistribution, error) {
	valuation, err := s.Valuation(ctx, userID)
	if err != nil {
		return nil, err
	}
	dist := AggregateByCategory(valuation)
	s.formatter.ApplyDistribution(dist)
	return dist, nil
}

// Summary returns a valuation and its distribution computed from a single holdings read
func (s *PortfolioService) Summary(ctx context.Context, userID string) (*PortfolioSummary, error) {
	holdings, err := s.holdingRepo.ListByUser(s.ResolveUserID(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	valuation := s.value(ctx, holdings)
	dist := AggregateByCategory(valuation)
	s.formatter.ApplyDistribution(dist)

	return &PortfolioSummary{
		Valuation:    valuation,
		Distribution: dist,
		HoldingCount: len(holdings),
	}, nil
}

// value runs the valuation engine, consulting live quotes when enabled.
// Quote failures never abort the valuation: affected holdings fall back to stored prices.
func (s *PortfolioService) value(ctx context.Context, holdings []domain.Holding) *ValuationResult {
	prices, degraded := s.livePrices(ctx, holdings)

	result := ValueHoldings(holdings, prices)
	result.Degraded = degraded
	s.formatter.ApplyValuation(result)

	if len(result.Unpriced) > 0 {
		s.log.Warn().
			Int("unpriced", len(result.Unpriced)).
			Msg("Valuing holdings without a known price at purchase price")
	}

	return result
}

func (s *PortfolioService) livePrices(ctx context.Context, holdings []domain.Holding) (QuotePrices, bool) {
	if !s.cfg.LivePricing || s.quotes == nil {
		return nil, false
	}

	seen := make(map[string]bool)
	symbols := make([]string, 0)
	for _, h := range holdings {
		sym := normalizeSymbol(h.Symbol)
		if quotedTypes[h.Type] && !seen[sym] {
			seen[sym] = true
			symbols = append(symbols, sym)
		}
	}
	if len(symbols) == 0 {
		return nil, false
	}

	quotes, degraded, err := s.quotes.QuotesFor(ctx, symbols)
	if err != nil {
		s.log.Warn().Err(err).Msg("Live quotes unavailable, using stored prices")
		return nil, true
	}

	prices := make(QuotePrices, len(quotes))
	for sym, q := range quotes {
		prices[normalizeSymbol(sym)] = q.Price
	}
	return prices, degraded
}
