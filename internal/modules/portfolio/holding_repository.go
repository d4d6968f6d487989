package portfolio

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/folio/internal/database"
	"github.com/aristath/folio/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const holdingColumns = `id, user_id, category_id, name, symbol, type, quantity,
	purchase_price, current_price, purchase_date, created_at, updated_at`

// HoldingRepository handles holding database operations
type HoldingRepository struct {
	db  *sql.DB // portfolio.db - holdings, transactions
	now func() time.Time
	log zerolog.Logger
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *sql.DB, log zerolog.Logger) *HoldingRepository {
	return &HoldingRepository{
		db:  db,
		now: time.Now,
		log: log.With().Str("repo", "holding").Logger(),
	}
}

// ListByUser returns the holdings owned by userID in insertion order
func (r *HoldingRepository) ListByUser(userID string) ([]domain.Holding, error) {
	rows, err := r.db.Query(`SELECT `+holdingColumns+` FROM holdings
		WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	return scanHoldings(rows)
}

// ListByType returns the holdings of one asset type owned by userID
func (r *HoldingRepository) ListByType(userID string, assetType domain.AssetType) ([]domain.Holding, error) {
	rows, err := r.db.Query(`SELECT `+holdingColumns+` FROM holdings
		WHERE user_id = ? AND type = ? ORDER BY rowid`, userID, string(assetType))
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings by type: %w", err)
	}
	defer rows.Close()

	return scanHoldings(rows)
}

// GetByID returns a holding, or an error wrapping domain.ErrNotFound
func (r *HoldingRepository) GetByID(id string) (*domain.Holding, error) {
	row := r.db.QueryRow(`SELECT `+holdingColumns+` FROM holdings WHERE id = ?`, id)

	h, err := scanHolding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("holding %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holding %s: %w", id, err)
	}
	return h, nil
}

// Create inserts a holding, assigning its ID and timestamps
func (r *HoldingRepository) Create(h *domain.Holding) error {
	now := r.now().UTC().Truncate(time.Second)
	h.ID = uuid.New().String()
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.PurchaseDate.IsZero() {
		h.PurchaseDate = now
	}
	h.Quantity = domain.RoundQuantity(h.Quantity)
	h.PurchasePrice = domain.RoundCurrency(h.PurchasePrice)
	if h.CurrentPrice.Valid {
		h.CurrentPrice.Decimal = domain.RoundCurrency(h.CurrentPrice.Decimal)
	}

	_, err := r.db.Exec(`INSERT INTO holdings (`+holdingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.UserID, h.CategoryID, h.Name, h.Symbol, string(h.Type),
		h.Quantity.String(), h.PurchasePrice.String(), h.CurrentPrice,
		h.PurchaseDate.Unix(), h.CreatedAt.Unix(), h.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}

	r.log.Debug().Str("id", h.ID).Str("symbol", h.Symbol).Msg("Holding created")
	return nil
}

// Update merges the provided fields into the stored holding and refreshes updated_at.
// Fields left nil in upd are not touched.
func (r *HoldingRepository) Update(id string, upd domain.HoldingUpdate) (*domain.Holding, error) {
	var updated *domain.Holding

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		row := tx.QueryRow(`SELECT `+holdingColumns+` FROM holdings WHERE id = ?`, id)
		h, err := scanHolding(row)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("holding %s: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load holding: %w", err)
		}

		applyUpdate(h, upd)
		h.UpdatedAt = r.now().UTC().Truncate(time.Second)

		_, err = tx.Exec(`UPDATE holdings SET category_id = ?, name = ?, symbol = ?, type = ?,
			quantity = ?, purchase_price = ?, current_price = ?, purchase_date = ?, updated_at = ?
			WHERE id = ?`,
			h.CategoryID, h.Name, h.Symbol, string(h.Type),
			h.Quantity.String(), h.PurchasePrice.String(), h.CurrentPrice,
			h.PurchaseDate.Unix(), h.UpdatedAt.Unix(), id,
		)
		if err != nil {
			return fmt.Errorf("failed to update holding: %w", err)
		}

		updated = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Debug().Str("id", id).Msg("Holding updated")
	return updated, nil
}

// Delete removes a holding together with its transactions.
// Deleting a holding that does not exist is not an error.
func (r *HoldingRepository) Delete(id string) error {
	var removed int64

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := deleteTransactionsForAsset(tx, id); err != nil {
			return err
		}

		res, err := tx.Exec(`DELETE FROM holdings WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete holding: %w", err)
		}
		removed, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count deleted holdings: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if removed > 0 {
		r.log.Debug().Str("id", id).Msg("Holding deleted")
	}
	return nil
}

func applyUpdate(h *domain.Holding, upd domain.HoldingUpdate) {
	if upd.CategoryID != nil {
		h.CategoryID = *upd.CategoryID
	}
	if upd.Name != nil {
		h.Name = *upd.Name
	}
	if upd.Symbol != nil {
		h.Symbol = *upd.Symbol
	}
	if upd.Type != nil {
		h.Type = *upd.Type
	}
	if upd.Quantity != nil {
		h.Quantity = domain.RoundQuantity(*upd.Quantity)
	}
	if upd.PurchasePrice != nil {
		h.PurchasePrice = domain.RoundCurrency(*upd.PurchasePrice)
	}
	if upd.ClearCurrentPrice {
		h.CurrentPrice.Valid = false
	} else if upd.CurrentPrice != nil {
		h.CurrentPrice.Decimal = domain.RoundCurrency(*upd.CurrentPrice)
		h.CurrentPrice.Valid = true
	}
	if upd.PurchaseDate != nil {
		h.PurchaseDate = upd.PurchaseDate.UTC().Truncate(time.Second)
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHolding(row rowScanner) (*domain.Holding, error) {
	var h domain.Holding
	var assetType string
	var purchaseDate, createdAt, updatedAt int64

	err := row.Scan(
		&h.ID, &h.UserID, &h.CategoryID, &h.Name, &h.Symbol, &assetType,
		&h.Quantity, &h.PurchasePrice, &h.CurrentPrice,
		&purchaseDate, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.Type = domain.AssetType(assetType)
	h.PurchaseDate = time.Unix(purchaseDate, 0).UTC()
	h.CreatedAt = time.Unix(createdAt, 0).UTC()
	h.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &h, nil
}

func scanHoldings(rows *sql.Rows) ([]domain.Holding, error) {
	holdings := make([]domain.Holding, 0)
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}
	return holdings, nil
}
