package ledger

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"gitlab.com/yelinaung/fintrack/internal/logger"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

const (
	defaultListLimit = 10
	maxListLimit     = 500
)

// CreateTransactionInput describes a new income or expense.
type CreateTransactionInput struct {
	AccountID       int64
	Type            string
	Amount          decimal.Decimal
	CategoryID      *int64
	PaymentMethodID *int64
	Description     string
}

// CreateTransaction records a transaction and applies its signed amount to the
// account balance in one database transaction. Expenses with a category are
// then checked against that month's budget.
func (s *Service) CreateTransaction(ctx context.Context, userID int64, in CreateTransactionInput) (*models.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.CreateTransaction")
	defer span.End()

	if !models.IsValidTransactionType(in.Type) {
		return nil, invalidf("type must be income or expense")
	}
	if err := validateAmount("amount", in.Amount); err != nil {
		return nil, err
	}

	var (
		created   *models.Transaction
		profileID int64
	)
	err := s.inTx(ctx, func(r repos) error {
		account, err := authorizeAccount(ctx, r, userID, in.AccountID)
		if err != nil {
			return err
		}
		profileID = account.ProfileID
		if err := checkCategory(ctx, r, account.ProfileID, in.CategoryID); err != nil {
			return err
		}
		if err := checkPaymentMethod(ctx, r, in.PaymentMethodID); err != nil {
			return err
		}

		if _, err := applyDelta(ctx, r.accounts, account.ID, models.SignedAmount(in.Type, in.Amount)); err != nil {
			return err
		}
		tx := &models.Transaction{
			AccountID:       account.ID,
			Type:            in.Type,
			Amount:          in.Amount,
			Description:     strings.TrimSpace(in.Description),
			CategoryID:      in.CategoryID,
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

	s.metrics.created.Add(ctx, 1, metric.WithAttributes(attribute.String("type", created.Type)))
	logger.Log.Info().
		Int64("transaction_id", created.ID).
		Str("type", created.Type).
		Str("amount", created.Amount.StringFixed(2)).
		Str("description", logger.SanitizeDescription(created.Description)).
		Msg("Transaction created")

	if created.Type == models.TransactionTypeExpense && created.CategoryID != nil {
		s.checkBudget(ctx, profileID, *created.CategoryID, created.Timestamp)
	}
	return created, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect in
// one database transaction.
func (s *Service) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	ctx, span := s.tracer.Start(ctx, "ledger.DeleteTransaction")
	defer span.End()

	err := s.inTx(ctx, func(r repos) error {
		tx, err := r.transactions.GetByIDForUpdate(ctx, transactionID)
		if err != nil {
			return translate(err, "transaction")
		}
		if _, err := authorizeAccount(ctx, r, userID, tx.AccountID); err != nil {
			return err
		}
		if _, err := applyDelta(ctx, r.accounts, tx.AccountID, tx.SignedAmount().Neg()); err != nil {
			return err
		}
		return translate(r.transactions.Delete(ctx, tx.ID), "transaction")
	})
	if err != nil {
		return err
	}

	s.metrics.deleted.Add(ctx, 1)
	logger.Log.Info().Int64("transaction_id", transactionID).Msg("Transaction deleted")
	return nil
}

// ListAccountTransactions returns an account's transactions, newest first.
func (s *Service) ListAccountTransactions(ctx context.Context, userID, accountID int64) ([]models.Transaction, error) {
	r := s.read()
	if _, err := authorizeAccount(ctx, r, userID, accountID); err != nil {
		return nil, err
	}
	return r.transactions.ListByAccount(ctx, accountID)
}

// ListProfileTransactions returns a profile's most recent transactions.
func (s *Service) ListProfileTransactions(ctx context.Context, userID, profileID int64, limit int) ([]models.Transaction, error) {
	r := s.read()
	if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
		return nil, err
	}
	return r.transactions.ListRecentByProfile(ctx, profileID, clampLimit(limit))
}

// ListRecentTransactions returns the caller's most recent transactions across
// all of their profiles.
func (s *Service) ListRecentTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	return s.read().transactions.ListRecentByUser(ctx, userID, clampLimit(limit))
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}
