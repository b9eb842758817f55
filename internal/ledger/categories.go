package ledger

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"gitlab.com/yelinaung/fintrack/internal/models"
)

func normalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidf("category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > models.MaxCategoryNameLength {
		return "", invalidf("category name is longer than %d characters", models.MaxCategoryNameLength)
	}
	return name, nil
}

// CreateCategory adds a category to a profile. Names are unique per profile
// regardless of case.
func (s *Service) CreateCategory(ctx context.Context, userID, profileID int64, name string, parentID *int64) (*models.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	cat := &models.Category{ProfileID: profileID, Name: name, ParentCategoryID: parentID}
	err = s.inTx(ctx, func(r repos) error {
		if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
			return err
		}
		if err := checkCategory(ctx, r, profileID, parentID); err != nil {
			return err
		}
		taken, err := r.categories.NameTaken(ctx, profileID, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: a category named %q already exists", ErrConflict, name)
		}
		return translate(r.categories.Create(ctx, cat), "category")
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// ListCategories returns a profile's categories.
func (s *Service) ListCategories(ctx context.Context, userID, profileID int64) ([]models.Category, error) {
	r := s.read()
	if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
		return nil, err
	}
	return r.categories.ListByProfile(ctx, profileID)
}

// RenameCategory changes a category's name, keeping names unique per profile.
func (s *Service) RenameCategory(ctx context.Context, userID, categoryID int64, name string) (*models.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	var cat *models.Category
	err = s.inTx(ctx, func(r repos) error {
		var err error
		if cat, err = ownedCategory(ctx, r, userID, categoryID); err != nil {
			return err
		}
		taken, err := r.categories.NameTaken(ctx, cat.ProfileID, name, categoryID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: a category named %q already exists", ErrConflict, name)
		}
		if err := r.categories.Rename(ctx, categoryID, name); err != nil {
			return translate(err, "category")
		}
		cat.Name = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory removes a category. Its transactions become uncategorized.
func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	return s.inTx(ctx, func(r repos) error {
		if _, err := ownedCategory(ctx, r, userID, categoryID); err != nil {
			return err
		}
		return translate(r.categories.Delete(ctx, categoryID), "category")
	})
}

func ownedCategory(ctx context.Context, r repos, userID, id int64) (*models.Category, error) {
	c, err := r.categories.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "category")
	}
	if _, err := authorizeProfile(ctx, r, userID, c.ProfileID); err != nil {
		return nil, err
	}
	return c, nil
}
