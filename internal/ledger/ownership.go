package ledger

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/yelinaung/fintrack/internal/models"
	"gitlab.com/yelinaung/fintrack/internal/repository"
)

// authorizeProfile loads a profile and checks that userID owns it.
func authorizeProfile(ctx context.Context, r repos, userID, profileID int64) (*models.Profile, error) {
	p, err := r.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, translate(err, "profile")
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("%w: profile %d", ErrUnauthorized, profileID)
	}
	return p, nil
}

// authorizeAccount loads an account and checks that userID owns its profile.
func authorizeAccount(ctx context.Context, r repos, userID, accountID int64) (*models.Account, error) {
	a, err := r.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, translate(err, "account")
	}
	if _, err := authorizeProfile(ctx, r, userID, a.ProfileID); err != nil {
		return nil, err
	}
	return a, nil
}

// checkCategory verifies that an optional category belongs to profileID.
func checkCategory(ctx context.Context, r repos, profileID int64, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	c, err := r.categories.GetByID(ctx, *categoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return invalidf("category %d does not exist", *categoryID)
	}
	if err != nil {
		return err
	}
	if c.ProfileID != profileID {
		return invalidf("category %d belongs to another profile", *categoryID)
	}
	return nil
}

// checkPaymentMethod verifies that an optional payment method exists.
func checkPaymentMethod(ctx context.Context, r repos, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := r.paymentMethods.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return invalidf("payment method %d does not exist", *id)
	}
	return nil
}
