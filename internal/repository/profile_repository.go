package repository

import (
	"context"

	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// ProfileRepository handles profile database operations.
type ProfileRepository struct {
	db database.PGXDB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db database.PGXDB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create adds a new profile.
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, name, type) VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, p.UserID, p.Name, p.Type).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return wrap(err, "failed to create profile")
	}
	return nil
}

// GetByID retrieves a profile by ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	var p models.Profile
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, type, created_at FROM profiles WHERE id = $1
	`, id).Scan(&p.ID, &p.UserID, &p.Name, &p.Type, &p.CreatedAt)
	if err != nil {
		return nil, wrap(err, "failed to get profile")
	}
	return &p, nil
}

// ListByUser retrieves all profiles owned by a user.
func (r *ProfileRepository) ListByUser(ctx context.Context, userID int64) ([]models.Profile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, type, created_at FROM profiles
		WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, wrap(err, "failed to query profiles")
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Type, &p.CreatedAt); err != nil {
			return nil, wrap(err, "failed to scan profile")
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating profiles")
	}
	return profiles, nil
}

// Update renames a profile and sets its type.
func (r *ProfileRepository) Update(ctx context.Context, p *models.Profile) error {
	tag, err := r.db.Exec(ctx, `UPDATE profiles SET name = $2, type = $3 WHERE id = $1`, p.ID, p.Name, p.Type)
	if err != nil {
		return wrap(err, "failed to update profile")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to update profile")
	}
	return nil
}

// Delete removes a profile and, through foreign keys, everything it owns.
func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "failed to delete profile")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to delete profile")
	}
	return nil
}
