package repository

import (
	"context"

	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// InvestmentRepository handles investments and their buy/sell rows.
type InvestmentRepository struct {
	db database.PGXDB
}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository(db database.PGXDB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create adds an investment.
func (r *InvestmentRepository) Create(ctx context.Context, inv *models.Investment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO investments (profile_id, name, type) VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, inv.ProfileID, inv.Name, inv.Type).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return wrap(err, "failed to create investment")
	}
	return nil
}

// GetByID retrieves an investment by ID.
func (r *InvestmentRepository) GetByID(ctx context.Context, id int64) (*models.Investment, error) {
	var inv models.Investment
	err := r.db.QueryRow(ctx, `
		SELECT id, profile_id, name, type, created_at FROM investments WHERE id = $1
	`, id).Scan(&inv.ID, &inv.ProfileID, &inv.Name, &inv.Type, &inv.CreatedAt)
	if err != nil {
		return nil, wrap(err, "failed to get investment")
	}
	return &inv, nil
}

// ListByProfile retrieves all investments of a profile.
func (r *InvestmentRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.Investment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, name, type, created_at FROM investments
		WHERE profile_id = $1 ORDER BY id
	`, profileID)
	if err != nil {
		return nil, wrap(err, "failed to query investments")
	}
	defer rows.Close()

	var out []models.Investment
	for rows.Next() {
		var inv models.Investment
		if err := rows.Scan(&inv.ID, &inv.ProfileID, &inv.Name, &inv.Type, &inv.CreatedAt); err != nil {
			return nil, wrap(err, "failed to scan investment")
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating investments")
	}
	return out, nil
}

// CreateTransaction inserts a buy or sell row.
func (r *InvestmentRepository) CreateTransaction(ctx context.Context, t *models.InvestmentTransaction) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO investment_transactions (investment_id, account_id, transaction_type, quantity, price_per_unit, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, t.InvestmentID, t.AccountID, t.Type, t.Quantity, t.PricePerUnit, t.Date).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return wrap(err, "failed to create investment transaction")
	}
	return nil
}

// ListTransactions retrieves the buy/sell rows of an investment, newest first.
func (r *InvestmentRepository) ListTransactions(ctx context.Context, investmentID int64) ([]models.InvestmentTransaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, investment_id, account_id, transaction_type, quantity, price_per_unit, transaction_date, created_at
		FROM investment_transactions
		WHERE investment_id = $1
		ORDER BY transaction_date DESC, id DESC
	`, investmentID)
	if err != nil {
		return nil, wrap(err, "failed to query investment transactions")
	}
	defer rows.Close()

	var out []models.InvestmentTransaction
	for rows.Next() {
		var t models.InvestmentTransaction
		if err := rows.Scan(&t.ID, &t.InvestmentID, &t.AccountID, &t.Type, &t.Quantity,
			&t.PricePerUnit, &t.Date, &t.CreatedAt); err != nil {
			return nil, wrap(err, "failed to scan investment transaction")
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating investment transactions")
	}
	return out, nil
}
