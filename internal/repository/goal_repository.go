package repository

import (
	"context"

	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// GoalRepository handles financial goals.
type GoalRepository struct {
	db database.PGXDB
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(db database.PGXDB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, profile_id, goal_name, target_amount, current_amount, target_date, status, created_at`

func scanGoal(row interface{ Scan(dest ...any) error }, g *models.FinancialGoal) error {
	return row.Scan(
		&g.ID, &g.ProfileID, &g.Name, &g.TargetAmount,
		&g.CurrentAmount, &g.TargetDate, &g.Status, &g.CreatedAt,
	)
}

// Create adds a goal.
func (r *GoalRepository) Create(ctx context.Context, g *models.FinancialGoal) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO financial_goals (profile_id, goal_name, target_amount, current_amount, target_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, g.ProfileID, g.Name, g.TargetAmount, g.CurrentAmount, g.TargetDate, g.Status,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return wrap(err, "failed to create financial goal")
	}
	return nil
}

// GetByID retrieves a goal by ID.
func (r *GoalRepository) GetByID(ctx context.Context, id int64) (*models.FinancialGoal, error) {
	var g models.FinancialGoal
	row := r.db.QueryRow(ctx, `SELECT `+goalColumns+` FROM financial_goals WHERE id = $1`, id)
	if err := scanGoal(row, &g); err != nil {
		return nil, wrap(err, "failed to get financial goal")
	}
	return &g, nil
}

// ListByProfile retrieves a profile's goals, nearest target date first.
func (r *GoalRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.FinancialGoal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+goalColumns+` FROM financial_goals
		WHERE profile_id = $1 ORDER BY target_date ASC NULLS LAST, id
	`, profileID)
	if err != nil {
		return nil, wrap(err, "failed to query financial goals")
	}
	defer rows.Close()

	var out []models.FinancialGoal
	for rows.Next() {
		var g models.FinancialGoal
		if err := scanGoal(rows, &g); err != nil {
			return nil, wrap(err, "failed to scan financial goal")
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating financial goals")
	}
	return out, nil
}

// Update overwrites the mutable fields of a goal.
func (r *GoalRepository) Update(ctx context.Context, g *models.FinancialGoal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE financial_goals SET
			goal_name = $2,
			target_amount = $3,
			current_amount = $4,
			target_date = $5,
			status = $6
		WHERE id = $1
	`, g.ID, g.Name, g.TargetAmount, g.CurrentAmount, g.TargetDate, g.Status)
	if err != nil {
		return wrap(err, "failed to update financial goal")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to update financial goal")
	}
	return nil
}

// Delete removes a goal by ID.
func (r *GoalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM financial_goals WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "failed to delete financial goal")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to delete financial goal")
	}
	return nil
}
