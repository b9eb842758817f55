package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// TransactionRepository handles ledger transaction rows. It never touches
// account balances; callers pair each write with AccountRepository.ApplyDelta.
type TransactionRepository struct {
	db database.PGXDB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db database.PGXDB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, account_id, type, amount, description, category_id, payment_method_id, time_stamp`

// Create inserts a transaction and fills in its ID and timestamp.
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO transactions (account_id, type, amount, description, category_id, payment_method_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, amount, time_stamp
	`, tx.AccountID, tx.Type, tx.Amount, tx.Description, tx.CategoryID, tx.PaymentMethodID,
	).Scan(&tx.ID, &tx.Amount, &tx.Timestamp)
	if err != nil {
		return wrap(err, "failed to create transaction")
	}
	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	return r.get(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a transaction and locks its row until the
// enclosing database transaction ends.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Transaction, error) {
	return r.get(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
}

func (r *TransactionRepository) get(ctx context.Context, query string, id int64) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tx.ID, &tx.AccountID, &tx.Type, &tx.Amount, &tx.Description,
		&tx.CategoryID, &tx.PaymentMethodID, &tx.Timestamp,
	)
	if err != nil {
		return nil, wrap(err, "failed to get transaction")
	}
	return &tx, nil
}

// ListByAccount retrieves all transactions of an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.account_id, t.type, t.amount, t.description, t.category_id, t.payment_method_id, t.time_stamp,
		       COALESCE(c.name, ''), a.name
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.account_id = $1
		ORDER BY t.time_stamp DESC, t.id DESC
	`, accountID)
	if err != nil {
		return nil, wrap(err, "failed to query account transactions")
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListRecentByProfile retrieves the most recent transactions of a profile.
func (r *TransactionRepository) ListRecentByProfile(ctx context.Context, profileID int64, limit int) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.account_id, t.type, t.amount, t.description, t.category_id, t.payment_method_id, t.time_stamp,
		       COALESCE(c.name, ''), a.name
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE a.profile_id = $1
		ORDER BY t.time_stamp DESC, t.id DESC
		LIMIT $2
	`, profileID, limit)
	if err != nil {
		return nil, wrap(err, "failed to query profile transactions")
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListRecentByUser retrieves the most recent transactions across all of a user's profiles.
func (r *TransactionRepository) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.account_id, t.type, t.amount, t.description, t.category_id, t.payment_method_id, t.time_stamp,
		       COALESCE(c.name, ''), a.name
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN profiles p ON a.profile_id = p.id
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE p.user_id = $1
		ORDER BY t.time_stamp DESC, t.id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, wrap(err, "failed to query user transactions")
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListByProfileSince retrieves a profile's transactions at or after since, oldest first.
func (r *TransactionRepository) ListByProfileSince(ctx context.Context, profileID int64, since time.Time) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.account_id, t.type, t.amount, t.description, t.category_id, t.payment_method_id, t.time_stamp,
		       COALESCE(c.name, ''), a.name
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE a.profile_id = $1 AND t.time_stamp >= $2
		ORDER BY t.time_stamp ASC, t.id ASC
	`, profileID, since)
	if err != nil {
		return nil, wrap(err, "failed to query profile transactions since")
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// SumSignedByAccount replays every surviving transaction of an account and
// returns the net signed total.
func (r *TransactionRepository) SumSignedByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		FROM transactions WHERE account_id = $1
	`, accountID).Scan(&total)
	if err != nil {
		return decimal.Zero, wrap(err, "failed to sum account transactions")
	}
	return total, nil
}

// SpentAmount sums expense amounts for a profile's category in [start, end).
func (r *TransactionRepository) SpentAmount(
	ctx context.Context,
	profileID, categoryID int64,
	start, end time.Time,
) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		WHERE a.profile_id = $1 AND t.category_id = $2 AND t.type = 'expense'
		  AND t.time_stamp >= $3 AND t.time_stamp < $4
	`, profileID, categoryID, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, wrap(err, "failed to get spent amount")
	}
	return total, nil
}

// Delete removes a transaction by ID.
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "failed to delete transaction")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to delete transaction")
	}
	return nil
}

// scanTransactions scans rows carrying the category and account name joins.
func scanTransactions(rows rowScanner) ([]models.Transaction, error) {
	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.AccountID, &tx.Type, &tx.Amount, &tx.Description,
			&tx.CategoryID, &tx.PaymentMethodID, &tx.Timestamp,
			&tx.CategoryName, &tx.AccountName,
		); err != nil {
			return nil, wrap(err, "failed to scan transaction")
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating transactions")
	}
	return txs, nil
}
