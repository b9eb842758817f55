package repository

import (
	"context"

	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// CategoryRepository handles category database operations.
type CategoryRepository struct {
	db database.PGXDB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db database.PGXDB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByProfile retrieves all categories of a profile ordered by name.
func (r *CategoryRepository) ListByProfile(ctx context.Context, profileID int64) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, name, parent_category_id, created_at
		FROM categories WHERE profile_id = $1 ORDER BY name
	`, profileID)
	if err != nil {
		return nil, wrap(err, "failed to query categories")
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.ProfileID, &cat.Name, &cat.ParentCategoryID, &cat.CreatedAt); err != nil {
			return nil, wrap(err, "failed to scan category")
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap(err, "error iterating categories")
	}
	return categories, nil
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var cat models.Category
	err := r.db.QueryRow(ctx, `
		SELECT id, profile_id, name, parent_category_id, created_at FROM categories WHERE id = $1
	`, id).Scan(&cat.ID, &cat.ProfileID, &cat.Name, &cat.ParentCategoryID, &cat.CreatedAt)
	if err != nil {
		return nil, wrap(err, "failed to get category")
	}
	return &cat, nil
}

// NameTaken reports whether another category of the profile already uses name,
// ignoring case. excludeID skips the category being renamed; pass 0 on create.
func (r *CategoryRepository) NameTaken(ctx context.Context, profileID int64, name string, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE profile_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3
		)
	`, profileID, name, excludeID).Scan(&taken)
	if err != nil {
		return false, wrap(err, "failed to check category name")
	}
	return taken, nil
}

// Create adds a new category.
func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (profile_id, name, parent_category_id) VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, cat.ProfileID, cat.Name, cat.ParentCategoryID).Scan(&cat.ID, &cat.CreatedAt)
	if err != nil {
		return wrap(err, "failed to create category")
	}
	return nil
}

// Rename modifies an existing category name.
func (r *CategoryRepository) Rename(ctx context.Context, id int64, name string) error {
	tag, err := r.db.Exec(ctx, `UPDATE categories SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return wrap(err, "failed to update category")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to update category")
	}
	return nil
}

// Delete removes a category by ID.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "failed to delete category")
	}
	if tag.RowsAffected() == 0 {
		return wrap(ErrNotFound, "failed to delete category")
	}
	return nil
}
