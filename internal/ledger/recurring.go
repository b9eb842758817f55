package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"gitlab.com/yelinaung/fintrack/internal/logger"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// RecurringInput describes a recurring definition. Type defaults to expense.
type RecurringInput struct {
	ProfileID   int64
	CategoryID  *int64
	Type        string
	Description string
	Amount      decimal.Decimal
	Frequency   string
	EndDate     *time.Time
}

// ExecuteRecurringInput names the definition to run and the account it hits.
type ExecuteRecurringInput struct {
	RecurringID     int64
	AccountID       int64
	PaymentMethodID *int64
}

func (in *RecurringInput) normalize() error {
	in.Type = strings.TrimSpace(in.Type)
	if in.Type == "" {
		in.Type = models.TransactionTypeExpense
	}
	if !models.IsValidTransactionType(in.Type) {
		return invalidf("type must be income or expense")
	}
	if err := validateAmount("amount", in.Amount); err != nil {
		return err
	}
	in.Frequency = strings.TrimSpace(in.Frequency)
	if in.Frequency == "" {
		return invalidf("frequency is required")
	}
	in.Description = strings.TrimSpace(in.Description)
	return nil
}

// CreateRecurring stores a recurring definition.
func (s *Service) CreateRecurring(ctx context.Context, userID int64, in RecurringInput) (*models.RecurringTransaction, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	rt := &models.RecurringTransaction{
		ProfileID:   in.ProfileID,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		Description: in.Description,
		Amount:      in.Amount,
		Frequency:   in.Frequency,
		EndDate:     in.EndDate,
	}
	err := s.inTx(ctx, func(r repos) error {
		if _, err := authorizeProfile(ctx, r, userID, in.ProfileID); err != nil {
			return err
		}
		if err := checkCategory(ctx, r, in.ProfileID, in.CategoryID); err != nil {
			return err
		}
		return translate(r.recurring.Create(ctx, rt), "recurring transaction")
	})
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// ListRecurring returns a profile's recurring definitions.
func (s *Service) ListRecurring(ctx context.Context, userID, profileID int64) ([]models.RecurringTransaction, error) {
	r := s.read()
	if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
		return nil, err
	}
	return r.recurring.ListByProfile(ctx, profileID)
}

// UpdateRecurring overwrites a definition. The profile cannot change.
func (s *Service) UpdateRecurring(ctx context.Context, userID, recurringID int64, in RecurringInput) (*models.RecurringTransaction, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var rt *models.RecurringTransaction
	err := s.inTx(ctx, func(r repos) error {
		var err error
		rt, err = ownedRecurring(ctx, r, userID, recurringID)
		if err != nil {
			return err
		}
		if err := checkCategory(ctx, r, rt.ProfileID, in.CategoryID); err != nil {
			return err
		}
		rt.CategoryID = in.CategoryID
		rt.Type = in.Type
		rt.Description = in.Description
		rt.Amount = in.Amount
		rt.Frequency = in.Frequency
		rt.EndDate = in.EndDate
		return translate(r.recurring.Update(ctx, rt), "recurring transaction")
	})
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// DeleteRecurring removes a definition. Transactions it generated stay.
func (s *Service) DeleteRecurring(ctx context.Context, userID, recurringID int64) error {
	return s.inTx(ctx, func(r repos) error {
		if _, err := ownedRecurring(ctx, r, userID, recurringID); err != nil {
			return err
		}
		return translate(r.recurring.Delete(ctx, recurringID), "recurring transaction")
	})
}

func ownedRecurring(ctx context.Context, r repos, userID, id int64) (*models.RecurringTransaction, error) {
	rt, err := r.recurring.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "recurring transaction")
	}
	if _, err := authorizeProfile(ctx, r, userID, rt.ProfileID); err != nil {
		return nil, err
	}
	return rt, nil
}

// expired reports whether a definition's end date lies before today. Only the
// calendar date of the end date is compared.
func (s *Service) expired(rt *models.RecurringTransaction) bool {
	if rt.EndDate == nil {
		return false
	}
	e := *rt.EndDate
	end := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, s.loc)
	return end.Before(s.today())
}

// ExecuteRecurring generates one transaction from a recurring definition on
// the given account. Execution is only ever triggered by a caller.
func (s *Service) ExecuteRecurring(ctx context.Context, userID int64, in ExecuteRecurringInput) (*models.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.ExecuteRecurring")
	defer span.End()

	var (
		created *models.Transaction
		def     *models.RecurringTransaction
	)
	err := s.inTx(ctx, func(r repos) error {
		var err error
		def, err = ownedRecurring(ctx, r, userID, in.RecurringID)
		if err != nil {
			return err
		}
		if s.expired(def) {
			return fmt.Errorf("%w: ended on %s", ErrExpired, def.EndDate.Format(time.DateOnly))
		}
		account, err := authorizeAccount(ctx, r, userID, in.AccountID)
		if err != nil {
			return err
		}
		if account.ProfileID != def.ProfileID {
			return invalidf("account %d is not in the recurring transaction's profile", in.AccountID)
		}
		if err := checkPaymentMethod(ctx, r, in.PaymentMethodID); err != nil {
			return err
		}

		txType := def.Type
		if !models.IsValidTransactionType(txType) {
			txType = models.TransactionTypeExpense
		}
		desc := def.Description
		if desc == "" {
			desc = models.DefaultRecurringDescription
		}

		if _, err := applyDelta(ctx, r.accounts, account.ID, models.SignedAmount(txType, def.Amount)); err != nil {
			return err
		}
		tx := &models.Transaction{
			AccountID:       account.ID,
			Type:            txType,
			Amount:          def.Amount,
			Description:     desc,
			CategoryID:      def.CategoryID,
			PaymentMethodID: in.PaymentMethodID,
		}
		if err := r.transactions.Create(ctx, tx); err != nil {
			return translate(err, "transaction")
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.recurring.Add(ctx, 1, metric.WithAttributes(attribute.String("type", created.Type)))
	logger.Log.Info().
		Int64("recurring_id", def.ID).
		Int64("transaction_id", created.ID).
		Str("amount", created.Amount.StringFixed(2)).
		Msg("Recurring transaction executed")

	s.notifyRecurring(ctx, def.ProfileID, created)
	if created.Type == models.TransactionTypeExpense && created.CategoryID != nil {
		s.checkBudget(ctx, def.ProfileID, *created.CategoryID, created.Timestamp)
	}
	return created, nil
}

func (s *Service) notifyRecurring(ctx context.Context, profileID int64, tx *models.Transaction) {
	n := &models.Notification{
		ProfileID: profileID,
		Message: fmt.Sprintf("Recurring transaction executed: %s - %s",
			tx.Description, tx.Amount.StringFixed(2)),
	}
	err := s.inTx(ctx, func(r repos) error {
		return r.notifications.Create(ctx, n)
	})
	if err != nil {
		logger.Log.Warn().Err(err).
			Str("profile", logger.HashProfileID(profileID)).
			Msg("Failed to create recurring execution notification")
	}
}
