package ledger

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/models"
)

// GetUser resolves an authenticated user.
func (s *Service) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.read().users.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func normalizeProfileType(profileType string) (string, error) {
	profileType = strings.ToLower(strings.TrimSpace(profileType))
	if profileType != models.ProfileTypePersonal && profileType != models.ProfileTypeBusiness {
		return "", invalidf("profile type must be personal or business")
	}
	return profileType, nil
}

// CreateProfile adds a personal or business profile for the user.
func (s *Service) CreateProfile(ctx context.Context, userID int64, name, profileType string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("profile name is required")
	}
	if strings.TrimSpace(profileType) == "" {
		profileType = models.ProfileTypePersonal
	}
	profileType, err := normalizeProfileType(profileType)
	if err != nil {
		return nil, err
	}
	p := &models.Profile{UserID: userID, Name: name, Type: profileType}
	if err := s.read().profiles.Create(ctx, p); err != nil {
		return nil, translate(err, "profile")
	}
	return p, nil
}

// ListProfiles returns the user's profiles.
func (s *Service) ListProfiles(ctx context.Context, userID int64) ([]models.Profile, error) {
	return s.read().profiles.ListByUser(ctx, userID)
}

// UpdateProfile renames a profile and changes its type. Blank arguments keep
// the current value.
func (s *Service) UpdateProfile(ctx context.Context, userID, profileID int64, name, profileType string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if strings.TrimSpace(profileType) != "" {
		var err error
		if profileType, err = normalizeProfileType(profileType); err != nil {
			return nil, err
		}
	}
	var p *models.Profile
	err := s.inTx(ctx, func(r repos) error {
		var err error
		if p, err = authorizeProfile(ctx, r, userID, profileID); err != nil {
			return err
		}
		if name != "" {
			p.Name = name
		}
		if profileType != "" {
			p.Type = profileType
		}
		return translate(r.profiles.Update(ctx, p), "profile")
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProfile removes a profile and everything it owns.
func (s *Service) DeleteProfile(ctx context.Context, userID, profileID int64) error {
	return s.inTx(ctx, func(r repos) error {
		if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
			return err
		}
		return translate(r.profiles.Delete(ctx, profileID), "profile")
	})
}

// AccountUpdate carries the editable account fields. A nil Balance leaves the
// balance untouched.
type AccountUpdate struct {
	Name    string
	Balance *decimal.Decimal
}

// CreateAccount opens an account with an opening balance.
func (s *Service) CreateAccount(ctx context.Context, userID, profileID int64, name string, opening decimal.Decimal) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("account name is required")
	}
	if !opening.Equal(opening.Round(2)) || !finiteBalance(opening) {
		return nil, invalidf("balance must be a finite amount with at most two decimal places")
	}
	a := &models.Account{ProfileID: profileID, Name: name, Balance: opening}
	err := s.inTx(ctx, func(r repos) error {
		if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
			return err
		}
		return translate(r.accounts.Create(ctx, a), "account")
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAccount returns one of the user's accounts.
func (s *Service) GetAccount(ctx context.Context, userID, accountID int64) (*models.Account, error) {
	return authorizeAccount(ctx, s.read(), userID, accountID)
}

// ListAccounts returns all of the user's accounts.
func (s *Service) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	return s.read().accounts.ListByUser(ctx, userID)
}

// ListProfileAccounts returns a profile's accounts.
func (s *Service) ListProfileAccounts(ctx context.Context, userID, profileID int64) ([]models.Account, error) {
	r := s.read()
	if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
		return nil, err
	}
	return r.accounts.ListByProfile(ctx, profileID)
}

// UpdateAccount renames an account and optionally overwrites its balance.
// A balance overwrite is a direct edit outside the transaction history.
func (s *Service) UpdateAccount(ctx context.Context, userID, accountID int64, upd AccountUpdate) (*models.Account, error) {
	name := strings.TrimSpace(upd.Name)
	if name == "" {
		return nil, invalidf("account name is required")
	}
	if upd.Balance != nil && (!upd.Balance.Equal(upd.Balance.Round(2)) || !finiteBalance(*upd.Balance)) {
		return nil, invalidf("balance must be a finite amount with at most two decimal places")
	}
	var a *models.Account
	err := s.inTx(ctx, func(r repos) error {
		var err error
		if a, err = authorizeAccount(ctx, r, userID, accountID); err != nil {
			return err
		}
		if err := r.accounts.Rename(ctx, accountID, name); err != nil {
			return translate(err, "account")
		}
		a.Name = name
		if upd.Balance != nil {
			if err := r.accounts.SetBalance(ctx, accountID, *upd.Balance); err != nil {
				return translate(err, "account")
			}
			a.Balance = *upd.Balance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAccount removes an account together with its transactions.
func (s *Service) DeleteAccount(ctx context.Context, userID, accountID int64) error {
	return s.inTx(ctx, func(r repos) error {
		if _, err := authorizeAccount(ctx, r, userID, accountID); err != nil {
			return err
		}
		return translate(r.accounts.Delete(ctx, accountID), "account")
	})
}

// ListPaymentMethods returns the seeded payment methods.
func (s *Service) ListPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	return s.read().paymentMethods.GetAll(ctx)
}
