package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/logger"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// GoalInput describes a new financial goal. A blank Status means In Progress.
type GoalInput struct {
	ProfileID     int64
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Status        string
}

// GoalUpdate carries a partial goal edit. Nil fields keep their stored value.
type GoalUpdate struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	TargetDate    *time.Time
	Status        *string
}

func validateGoal(g *models.FinancialGoal) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return invalidf("goal_name is required")
	}
	if err := validateAmount("target_amount", g.TargetAmount); err != nil {
		return err
	}
	if g.CurrentAmount.IsNegative() {
		return invalidf("current_amount must not be negative")
	}
	if !g.CurrentAmount.IsZero() {
		if err := validateAmount("current_amount", g.CurrentAmount); err != nil {
			return err
		}
	}
	if !models.IsValidGoalStatus(g.Status) {
		return invalidf("status must be %q, %q or %q", models.GoalInProgress, models.GoalAchieved, models.GoalCancelled)
	}
	return nil
}

// CreateGoal adds a financial goal to a profile.
func (s *Service) CreateGoal(ctx context.Context, userID int64, in GoalInput) (*models.FinancialGoal, error) {
	g := &models.FinancialGoal{
		ProfileID:     in.ProfileID,
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		TargetDate:    in.TargetDate,
		Status:        in.Status,
	}
	if g.Status == "" {
		g.Status = models.GoalInProgress
	}
	if err := validateGoal(g); err != nil {
		return nil, err
	}
	err := s.inTx(ctx, func(r repos) error {
		if _, err := authorizeProfile(ctx, r, userID, in.ProfileID); err != nil {
			return err
		}
		return translate(r.goals.Create(ctx, g), "financial goal")
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info().
		Int64("goal_id", g.ID).
		Str("profile", logger.HashProfileID(g.ProfileID)).
		Msg("Financial goal created")
	return g, nil
}

// ListGoals returns a profile's goals, nearest target date first.
func (s *Service) ListGoals(ctx context.Context, userID, profileID int64) ([]models.FinancialGoal, error) {
	r := s.read()
	if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
		return nil, err
	}
	return r.goals.ListByProfile(ctx, profileID)
}

// UpdateGoal applies a partial edit to a goal.
func (s *Service) UpdateGoal(ctx context.Context, userID, goalID int64, upd GoalUpdate) (*models.FinancialGoal, error) {
	var g *models.FinancialGoal
	err := s.inTx(ctx, func(r repos) error {
		var err error
		if g, err = ownedGoal(ctx, r, userID, goalID); err != nil {
			return err
		}
		if upd.Name != nil {
			g.Name = *upd.Name
		}
		if upd.TargetAmount != nil {
			g.TargetAmount = *upd.TargetAmount
		}
		if upd.CurrentAmount != nil {
			g.CurrentAmount = *upd.CurrentAmount
		}
		if upd.TargetDate != nil {
			g.TargetDate = upd.TargetDate
		}
		if upd.Status != nil {
			g.Status = *upd.Status
		}
		if err := validateGoal(g); err != nil {
			return err
		}
		return translate(r.goals.Update(ctx, g), "financial goal")
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	return s.inTx(ctx, func(r repos) error {
		if _, err := ownedGoal(ctx, r, userID, goalID); err != nil {
			return err
		}
		return translate(r.goals.Delete(ctx, goalID), "financial goal")
	})
}

func ownedGoal(ctx context.Context, r repos, userID, id int64) (*models.FinancialGoal, error) {
	g, err := r.goals.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "financial goal")
	}
	if _, err := authorizeProfile(ctx, r, userID, g.ProfileID); err != nil {
		return nil, err
	}
	return g, nil
}
