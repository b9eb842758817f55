package repository

import (
	"context"

	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// PaymentMethodRepository reads the seeded payment methods.
type PaymentMethodRepository struct {
	db database.PGXDB
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository.
func NewPaymentMethodRepository(db database.PGXDB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

// GetAll retrieves all payment methods.
func (r *PaymentMethodRepository) GetAll(ctx context.Context) ([]models.PaymentMethod, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM payment_methods ORDER BY id`)
	if err != nil {
		return nil, wrap(err, "failed to query payment methods")
	}
	defer rows.Close()

	var methods []models.PaymentMethod
	for rows.Next() {
		var m models.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, wrap(err, "failed to scan payment method")
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating payment methods")
	}
	return methods, nil
}

// Exists reports whether a payment method with the given ID exists.
func (r *PaymentMethodRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payment_methods WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, wrap(err, "failed to check payment method")
	}
	return exists, nil
}
