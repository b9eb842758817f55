package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// AccountRepository handles account database operations.
type AccountRepository struct {
	db database.PGXDB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db database.PGXDB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, profile_id, name, balance, created_at`

// Create adds a new account with an opening balance.
func (r *AccountRepository) Create(ctx context.Context, a *models.Account) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (profile_id, name, balance) VALUES ($1, $2, $3)
		RETURNING id, balance, created_at
	`, a.ProfileID, a.Name, a.Balance).Scan(&a.ID, &a.Balance, &a.CreatedAt)
	if err != nil {
		return wrap(err, "failed to create account")
	}
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	var a models.Account
	err := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id).
		Scan(&a.ID, &a.ProfileID, &a.Name, &a.Balance, &a.CreatedAt)
	if err != nil {
		return nil, wrap(err, "failed to get account")
	}
	return &a, nil
}

// ListByProfile retrieves all accounts of a profile.
func (r *AccountRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE profile_id = $1 ORDER BY id
	`, profileID)
	if err != nil {
		return nil, wrap(err, "failed to query accounts")
	}
	defer rows.Close()
	return scanAccounts(rows)
}

// ListByUser retrieves all accounts across every profile of a user.
func (r *AccountRepository) ListByUser(ctx context.Context, userID int64) ([]models.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.profile_id, a.name, a.balance, a.created_at
		FROM accounts a
		JOIN profiles p ON a.profile_id = p.id
		WHERE p.user_id = $1
		ORDER BY a.id
	`, userID)
	if err != nil {
		return nil, wrap(err, "failed to query user accounts")
	}
	defer rows.Close()
	return scanAccounts(rows)
}

// Rename changes an account's display name.
func (r *AccountRepository) Rename(ctx context.Context, id int64, name string) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return wrap(err, "failed to rename account")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to rename account")
	}
	return nil
}

// SetBalance overwrites the stored balance. Used only for direct user edits.
func (r *AccountRepository) SetBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET balance = $2 WHERE id = $1`, id, balance)
	if err != nil {
		return wrap(err, "failed to set account balance")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to set account balance")
	}
	return nil
}

// ApplyDelta adds a signed amount to the balance in a single statement and
// returns the new balance. The increment happens in the database so
// concurrent callers cannot lose each other's updates.
func (r *AccountRepository) ApplyDelta(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRow(ctx, `
		UPDATE accounts SET balance = balance + $2 WHERE id = $1
		RETURNING balance
	`, id, delta).Scan(&balance)
	if err != nil {
		return decimal.Zero, wrap(err, "failed to apply balance delta")
	}
	return balance, nil
}

// SumByProfile returns the total balance of a profile's accounts.
func (r *AccountRepository) SumByProfile(ctx context.Context, profileID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE profile_id = $1
	`, profileID).Scan(&total)
	if err != nil {
		return decimal.Zero, wrap(err, "failed to sum profile balances")
	}
	return total, nil
}

// SumByUser returns the total balance across all of a user's profiles.
func (r *AccountRepository) SumByUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(a.balance), 0) FROM accounts a
		JOIN profiles p ON a.profile_id = p.id
		WHERE p.user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, wrap(err, "failed to sum user balances")
	}
	return total, nil
}

// Delete removes an account and its transactions.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "failed to delete account")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to delete account")
	}
	return nil
}

func scanAccounts(rows rowScanner) ([]models.Account, error) {
	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.Name, &a.Balance, &a.CreatedAt); err != nil {
			return nil, wrap(err, "failed to scan account")
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating accounts")
	}
	return accounts, nil
}
