package di

import (
	"fmt"

	"github.com/aristath/folio/internal/modules/portfolio"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates the repositories and seeds the default categories
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil || container.DB == nil {
		return fmt.Errorf("container database cannot be nil")
	}

	conn := container.DB.Conn()
	container.HoldingRepo = portfolio.NewHoldingRepository(conn, log)
	container.TransactionRepo = portfolio.NewTransactionRepository(conn, log)
	container.CategoryRepo = portfolio.NewCategoryRepository(conn, log)

	seeded, err := container.CategoryRepo.SeedDefaults()
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if seeded > 0 {
		log.Info().Int("count", seeded).Msg("Seeded default categories")
	}

	return nil
}
