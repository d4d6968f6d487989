package portfolio

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aristath/folio/internal/database"
	"github.com/aristath/folio/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CategoryRepository handles category database operations
type CategoryRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, log zerolog.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:  db,
		log: log.With().Str("repo", "category").Logger(),
	}
}

// List returns all categories in creation order
func (r *CategoryRepository) List() ([]domain.Category, error) {
	rows, err := r.db.Query(`SELECT id, name, icon, color, asset_type FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// GetByID returns a category, or an error wrapping domain.ErrNotFound
func (r *CategoryRepository) GetByID(id string) (*domain.Category, error) {
	row := r.db.QueryRow(`SELECT id, name, icon, color, asset_type FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	return c, nil
}

// GetByType returns the category seeded for an asset type
func (r *CategoryRepository) GetByType(assetType domain.AssetType) (*domain.Category, error) {
	row := r.db.QueryRow(`SELECT id, name, icon, color, asset_type FROM categories WHERE asset_type = ?`, string(assetType))
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category for type %s: %w", assetType, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category for type %s: %w", assetType, err)
	}
	return c, nil
}

// Create inserts a category, assigning its ID
func (r *CategoryRepository) Create(c *domain.Category) error {
	c.ID = uuid.New().String()
	if err := insertCategory(r.db, c); err != nil {
		return err
	}
	r.log.Debug().Str("id", c.ID).Str("name", c.Name).Msg("Category created")
	return nil
}

// SeedDefaults inserts the default category of every known asset type that has none yet.
// It returns the number of categories inserted; running it again inserts nothing.
func (r *CategoryRepository) SeedDefaults() (int, error) {
	inserted := 0

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		for _, c := range domain.DefaultCategories() {
			var exists int
			err := tx.QueryRow(`SELECT COUNT(*) FROM categories WHERE asset_type = ?`, string(c.AssetType)).Scan(&exists)
			if err != nil {
				return fmt.Errorf("failed to check category %s: %w", c.AssetType, err)
			}
			if exists > 0 {
				continue
			}

			c.ID = uuid.New().String()
			if err := insertCategory(tx, &c); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		r.log.Info().Int("inserted", inserted).Msg("Seeded default categories")
	}
	return inserted, nil
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func insertCategory(db execer, c *domain.Category) error {
	var assetType sql.NullString
	if c.AssetType != "" {
		assetType = sql.NullString{String: string(c.AssetType), Valid: true}
	}

	_, err := db.Exec(`INSERT INTO categories (id, name, icon, color, asset_type) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Icon, c.Color, assetType)
	if err != nil {
		return fmt.Errorf("failed to insert category %s: %w", c.Name, err)
	}
	return nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	var assetType sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &assetType); err != nil {
		return nil, err
	}
	if assetType.Valid {
		c.AssetType = domain.AssetType(assetType.String)
	}
	return &c, nil
}
