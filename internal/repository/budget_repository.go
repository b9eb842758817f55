package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// BudgetRepository handles budget database operations. Spent amounts are
// always derived from the transactions table at read time.
type BudgetRepository struct {
	db database.PGXDB
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(db database.PGXDB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Create adds a budget. A second budget for the same profile, category and
// month fails with ErrDuplicate.
func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO budgets (profile_id, category_id, budget, month, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, budget
	`, b.ProfileID, b.CategoryID, b.Limit, b.Month, b.Year).Scan(&b.ID, &b.Limit)
	if err != nil {
		return wrap(err, "failed to create budget")
	}
	return nil
}

// GetByID retrieves a budget by ID without its spent amount.
func (r *BudgetRepository) GetByID(ctx context.Context, id int64) (*models.Budget, error) {
	var b models.Budget
	err := r.db.QueryRow(ctx, `
		SELECT id, profile_id, category_id, budget, month, year FROM budgets WHERE id = $1
	`, id).Scan(&b.ID, &b.ProfileID, &b.CategoryID, &b.Limit, &b.Month, &b.Year)
	if err != nil {
		return nil, wrap(err, "failed to get budget")
	}
	return &b, nil
}

// GetForPeriod retrieves the budget of a profile's category for a month.
func (r *BudgetRepository) GetForPeriod(ctx context.Context, profileID, categoryID int64, year, month int) (*models.Budget, error) {
	var b models.Budget
	err := r.db.QueryRow(ctx, `
		SELECT b.id, b.profile_id, b.category_id, b.budget, b.month, b.year, c.name
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.profile_id = $1 AND b.category_id = $2 AND b.year = $3 AND b.month = $4
	`, profileID, categoryID, year, month).Scan(&b.ID, &b.ProfileID, &b.CategoryID, &b.Limit, &b.Month, &b.Year, &b.CategoryName)
	if err != nil {
		return nil, wrap(err, "failed to get budget for period")
	}
	return &b, nil
}

// ListWithSpent retrieves a profile's budgets for a month, each with the sum
// of matching expense transactions whose timestamp falls in [start, end).
func (r *BudgetRepository) ListWithSpent(
	ctx context.Context,
	profileID int64,
	year, month int,
	start, end time.Time,
) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.profile_id, b.category_id, b.budget, b.month, b.year, c.name,
		       COALESCE((
		           SELECT SUM(t.amount) FROM transactions t
		           JOIN accounts a ON t.account_id = a.id
		           WHERE t.category_id = b.category_id
		             AND a.profile_id = b.profile_id
		             AND t.type = 'expense'
		             AND t.time_stamp >= $4 AND t.time_stamp < $5
		       ), 0) AS spent_amount
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.profile_id = $1 AND b.year = $2 AND b.month = $3
		ORDER BY c.name
	`, profileID, year, month, start, end)
	if err != nil {
		return nil, wrap(err, "failed to query budgets")
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.ProfileID, &b.CategoryID, &b.Limit, &b.Month, &b.Year,
			&b.CategoryName, &b.SpentAmount); err != nil {
			return nil, wrap(err, "failed to scan budget")
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating budgets")
	}
	return budgets, nil
}

// UpdateLimit changes a budget's limit.
func (r *BudgetRepository) UpdateLimit(ctx context.Context, id int64, limit decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `UPDATE budgets SET budget = $2 WHERE id = $1`, id, limit)
	if err != nil {
		return wrap(err, "failed to update budget")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to update budget")
	}
	return nil
}

// Delete removes a budget by ID.
func (r *BudgetRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "failed to delete budget")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to delete budget")
	}
	return nil
}
