package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/logger"
	"gitlab.com/yelinaung/fintrack/internal/models"
	"gitlab.com/yelinaung/fintrack/internal/repository"
)

// BudgetInput describes a new monthly budget.
type BudgetInput struct {
	ProfileID  int64
	CategoryID int64
	Limit      decimal.Decimal
	Month      int
	Year       int
}

func validatePeriod(year, month int) error {
	if month < 1 || month > 12 {
		return invalidf("month must be between 1 and 12")
	}
	if year < 1970 || year > 9999 {
		return invalidf("year must be between 1970 and 9999")
	}
	return nil
}

// monthRange returns [start, end) of a calendar month in loc.
func monthRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// CreateBudget adds a spending limit for a profile's category in one month.
func (s *Service) CreateBudget(ctx context.Context, userID int64, in BudgetInput) (*models.Budget, error) {
	if err := validatePeriod(in.Year, in.Month); err != nil {
		return nil, err
	}
	if err := validateAmount("budget", in.Limit); err != nil {
		return nil, err
	}

	b := &models.Budget{
		ProfileID:  in.ProfileID,
		CategoryID: in.CategoryID,
		Limit:      in.Limit,
		Month:      in.Month,
		Year:       in.Year,
	}
	err := s.inTx(ctx, func(r repos) error {
		if _, err := authorizeProfile(ctx, r, userID, in.ProfileID); err != nil {
			return err
		}
		if err := checkCategory(ctx, r, in.ProfileID, &in.CategoryID); err != nil {
			return err
		}
		if err := r.budgets.Create(ctx, b); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: budget already exists for %d-%02d", ErrConflict, in.Year, in.Month)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A budget created below what is already spent notifies immediately.
	s.checkBudgetPeriod(ctx, b.ProfileID, b.CategoryID, b.Year, b.Month)
	return b, nil
}

// ListBudgets returns a profile's budgets for a month, each with its live
// spent amount.
func (s *Service) ListBudgets(ctx context.Context, userID, profileID int64, year, month int) ([]models.Budget, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	r := s.read()
	if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
		return nil, err
	}
	start, end := monthRange(year, month, s.loc)
	return r.budgets.ListWithSpent(ctx, profileID, year, month, start, end)
}

// UpdateBudget changes a budget's limit.
func (s *Service) UpdateBudget(ctx context.Context, userID, budgetID int64, limit decimal.Decimal) (*models.Budget, error) {
	if err := validateAmount("budget", limit); err != nil {
		return nil, err
	}
	var b *models.Budget
	err := s.inTx(ctx, func(r repos) error {
		var err error
		b, err = s.ownedBudget(ctx, r, userID, budgetID)
		if err != nil {
			return err
		}
		if err := r.budgets.UpdateLimit(ctx, budgetID, limit); err != nil {
			return translate(err, "budget")
		}
		b.Limit = limit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBudget removes a budget.
func (s *Service) DeleteBudget(ctx context.Context, userID, budgetID int64) error {
	return s.inTx(ctx, func(r repos) error {
		if _, err := s.ownedBudget(ctx, r, userID, budgetID); err != nil {
			return err
		}
		return translate(r.budgets.Delete(ctx, budgetID), "budget")
	})
}

func (s *Service) ownedBudget(ctx context.Context, r repos, userID, budgetID int64) (*models.Budget, error) {
	b, err := r.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return nil, translate(err, "budget")
	}
	if _, err := authorizeProfile(ctx, r, userID, b.ProfileID); err != nil {
		return nil, err
	}
	return b, nil
}

// SpentAmount sums the expenses of a profile's category within a month. It is
// derived from the live transaction set on every call.
func (s *Service) SpentAmount(ctx context.Context, userID, profileID, categoryID int64, year, month int) (decimal.Decimal, error) {
	if err := validatePeriod(year, month); err != nil {
		return decimal.Zero, err
	}
	r := s.read()
	if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
		return decimal.Zero, err
	}
	start, end := monthRange(year, month, s.loc)
	return r.transactions.SpentAmount(ctx, profileID, categoryID, start, end)
}

// checkBudget runs the overspend check for the month containing at.
func (s *Service) checkBudget(ctx context.Context, profileID, categoryID int64, at time.Time) {
	at = at.In(s.loc)
	s.checkBudgetPeriod(ctx, profileID, categoryID, at.Year(), int(at.Month()))
}

// checkBudgetPeriod emits an overspend notification when a month's spending in
// a category has reached its budget. Failures are logged and dropped.
func (s *Service) checkBudgetPeriod(ctx context.Context, profileID, categoryID int64, year, month int) {
	var notified bool
	err := s.inTx(ctx, func(r repos) error {
		b, err := r.budgets.GetForPeriod(ctx, profileID, categoryID, year, month)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		start, end := monthRange(year, month, s.loc)
		spent, err := r.transactions.SpentAmount(ctx, profileID, categoryID, start, end)
		if err != nil {
			return err
		}
		if spent.LessThan(b.Limit) {
			return nil
		}
		n := &models.Notification{
			ProfileID: profileID,
			Message: fmt.Sprintf("Budget exceeded for %s: spent %s of %s limit",
				b.CategoryName, spent.StringFixed(2), b.Limit.StringFixed(2)),
		}
		if err := r.notifications.Create(ctx, n); err != nil {
			return err
		}
		notified = true
		return nil
	})
	if err != nil {
		logger.Log.Warn().Err(err).
			Str("profile", logger.HashProfileID(profileID)).
			Int64("category_id", categoryID).
			Msg("Budget check failed")
		return
	}
	if notified {
		s.metrics.overspent.Add(ctx, 1)
		logger.Log.Info().
			Str("profile", logger.HashProfileID(profileID)).
			Int64("category_id", categoryID).
			Msg("Budget exceeded notification created")
	}
}
