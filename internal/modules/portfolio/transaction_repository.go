package portfolio

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aristath/folio/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const transactionColumns = `id, user_id, asset_id, type, quantity, price,
	total_amount, transaction_date, notes, created_at`

// TransactionRepository handles transaction log database operations.
// The log is append-only; rows are only removed together with their holding.
type TransactionRepository struct {
	db  *sql.DB
	now func() time.Time
	log zerolog.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB, log zerolog.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:  db,
		now: time.Now,
		log: log.With().Str("repo", "transaction").Logger(),
	}
}

// ListByUser returns userID's transactions, newest transaction date first
func (r *TransactionRepository) ListByUser(userID string) ([]domain.Transaction, error) {
	rows, err := r.db.Query(`SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = ? ORDER BY transaction_date DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByAsset returns the transactions recorded against one holding, newest first
func (r *TransactionRepository) ListByAsset(assetID string) ([]domain.Transaction, error) {
	rows, err := r.db.Query(`SELECT `+transactionColumns+` FROM transactions
		WHERE asset_id = ? ORDER BY transaction_date DESC, rowid DESC`, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for asset: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Create appends a transaction, assigning its ID and creation time
func (r *TransactionRepository) Create(t *domain.Transaction) error {
	now := r.now().UTC().Truncate(time.Second)
	t.ID = uuid.New().String()
	t.CreatedAt = now
	if t.TransactionDate.IsZero() {
		t.TransactionDate = now
	}

	_, err := r.db.Exec(`INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.AssetID, string(t.Type),
		t.Quantity.String(), t.Price.String(), t.TotalAmount.String(),
		t.TransactionDate.Unix(), t.Notes, t.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	r.log.Debug().Str("id", t.ID).Str("asset_id", t.AssetID).Msg("Transaction recorded")
	return nil
}

// deleteTransactionsForAsset removes the transactions of a holding inside tx.
func deleteTransactionsForAsset(tx *sql.Tx, assetID string) (int64, error) {
	res, err := tx.Exec(`DELETE FROM transactions WHERE asset_id = ?`, assetID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions for asset %s: %w", assetID, err)
	}
	return res.RowsAffected()
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var t domain.Transaction
		var txType string
		var notes sql.NullString
		var txDate, createdAt int64

		err := rows.Scan(
			&t.ID, &t.UserID, &t.AssetID, &txType,
			&t.Quantity, &t.Price, &t.TotalAmount,
			&txDate, &notes, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		t.Type = domain.TransactionType(txType)
		t.TransactionDate = time.Unix(txDate, 0).UTC()
		t.CreatedAt = time.Unix(createdAt, 0).UTC()
		if notes.Valid {
			n := notes.String
			t.Notes = &n
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}
