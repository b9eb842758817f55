package repository

import (
	"context"

	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// RecurringRepository handles recurring transaction definitions.
type RecurringRepository struct {
	db database.PGXDB
}

// NewRecurringRepository creates a new RecurringRepository.
func NewRecurringRepository(db database.PGXDB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

const recurringColumns = `id, profile_id, category_id, type, description, amount, frequency, end_date, created_at`

// Create adds a recurring definition.
func (r *RecurringRepository) Create(ctx context.Context, rt *models.RecurringTransaction) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO recurring_transactions (profile_id, category_id, type, description, amount, frequency, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, amount, created_at
	`, rt.ProfileID, rt.CategoryID, rt.Type, rt.Description, rt.Amount, rt.Frequency, rt.EndDate,
	).Scan(&rt.ID, &rt.Amount, &rt.CreatedAt)
	if err != nil {
		return wrap(err, "failed to create recurring transaction")
	}
	return nil
}

// GetByID retrieves a recurring definition by ID.
func (r *RecurringRepository) GetByID(ctx context.Context, id int64) (*models.RecurringTransaction, error) {
	var rt models.RecurringTransaction
	err := r.db.QueryRow(ctx, `SELECT `+recurringColumns+` FROM recurring_transactions WHERE id = $1`, id).Scan(
		&rt.ID, &rt.ProfileID, &rt.CategoryID, &rt.Type, &rt.Description,
		&rt.Amount, &rt.Frequency, &rt.EndDate, &rt.CreatedAt,
	)
	if err != nil {
		return nil, wrap(err, "failed to get recurring transaction")
	}
	return &rt, nil
}

// ListByProfile retrieves all recurring definitions of a profile.
func (r *RecurringRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.RecurringTransaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+recurringColumns+` FROM recurring_transactions WHERE profile_id = $1 ORDER BY id
	`, profileID)
	if err != nil {
		return nil, wrap(err, "failed to query recurring transactions")
	}
	defer rows.Close()

	var out []models.RecurringTransaction
	for rows.Next() {
		var rt models.RecurringTransaction
		if err := rows.Scan(
			&rt.ID, &rt.ProfileID, &rt.CategoryID, &rt.Type, &rt.Description,
			&rt.Amount, &rt.Frequency, &rt.EndDate, &rt.CreatedAt,
		); err != nil {
			return nil, wrap(err, "failed to scan recurring transaction")
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating recurring transactions")
	}
	return out, nil
}

// Update overwrites the mutable fields of a recurring definition.
func (r *RecurringRepository) Update(ctx context.Context, rt *models.RecurringTransaction) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE recurring_transactions SET
			category_id = $2,
			type = $3,
			description = $4,
			amount = $5,
			frequency = $6,
			end_date = $7
		WHERE id = $1
	`, rt.ID, rt.CategoryID, rt.Type, rt.Description, rt.Amount, rt.Frequency, rt.EndDate)
	if err != nil {
		return wrap(err, "failed to update recurring transaction")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to update recurring transaction")
	}
	return nil
}

// Delete removes a recurring definition by ID.
func (r *RecurringRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recurring_transactions WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "failed to delete recurring transaction")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to delete recurring transaction")
	}
	return nil
}
