package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"gitlab.com/yelinaung/fintrack/internal/logger"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

// InvestmentTransactionInput describes a buy or sell funded by an account.
// A zero Date means today.
type InvestmentTransactionInput struct {
	InvestmentID int64
	AccountID    int64
	Type         string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	Date         time.Time
}

// CreateInvestment adds a holding to a profile.
func (s *Service) CreateInvestment(ctx context.Context, userID, profileID int64, name, invType string) (*models.Investment, error) {
	name = strings.TrimSpace(name)
	invType = strings.TrimSpace(invType)
	if name == "" || invType == "" {
		return nil, invalidf("investment name and type are required")
	}
	inv := &models.Investment{ProfileID: profileID, Name: name, Type: invType}
	err := s.inTx(ctx, func(r repos) error {
		if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
			return err
		}
		return translate(r.investments.Create(ctx, inv), "investment")
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ListInvestments returns a profile's investments.
func (s *Service) ListInvestments(ctx context.Context, userID, profileID int64) ([]models.Investment, error) {
	r := s.read()
	if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
		return nil, err
	}
	return r.investments.ListByProfile(ctx, profileID)
}

// ListInvestmentTransactions returns an investment's buy/sell rows, newest first.
func (s *Service) ListInvestmentTransactions(ctx context.Context, userID, investmentID int64) ([]models.InvestmentTransaction, error) {
	r := s.read()
	if _, err := ownedInvestment(ctx, r, userID, investmentID); err != nil {
		return nil, err
	}
	return r.investments.ListTransactions(ctx, investmentID)
}

func ownedInvestment(ctx context.Context, r repos, userID, id int64) (*models.Investment, error) {
	inv, err := r.investments.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "investment")
	}
	if _, err := authorizeProfile(ctx, r, userID, inv.ProfileID); err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateInvestmentTransaction records a buy (debit) or sell (credit) against
// the funding account. Holdings are not tracked, so selling more than was
// bought is allowed.
func (s *Service) CreateInvestmentTransaction(ctx context.Context, userID int64, in InvestmentTransactionInput) (*models.InvestmentTransaction, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.CreateInvestmentTransaction")
	defer span.End()

	if in.Type != models.InvestmentBuy && in.Type != models.InvestmentSell {
		return nil, invalidf("transaction_type must be Buy or Sell")
	}
	if err := validateUnits("quantity", in.Quantity); err != nil {
		return nil, err
	}
	if err := validateUnits("price_per_unit", in.PricePerUnit); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = s.today()
	}

	row := &models.InvestmentTransaction{
		InvestmentID: in.InvestmentID,
		AccountID:    in.AccountID,
		Type:         in.Type,
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
		Date:         in.Date,
	}
	total := row.Total().Round(2)
	if !total.IsPositive() {
		return nil, invalidf("transaction amount rounds to zero")
	}
	delta := total
	if in.Type == models.InvestmentBuy {
		delta = total.Neg()
	}

	err := s.inTx(ctx, func(r repos) error {
		inv, err := ownedInvestment(ctx, r, userID, in.InvestmentID)
		if err != nil {
			return err
		}
		account, err := authorizeAccount(ctx, r, userID, in.AccountID)
		if err != nil {
			return err
		}
		if account.ProfileID != inv.ProfileID {
			return invalidf("account and investment belong to different profiles")
		}
		if !finiteBalance(account.Balance.Add(delta)) {
			return invalidf("resulting balance is out of range")
		}
		if _, err := applyDelta(ctx, r.accounts, account.ID, delta); err != nil {
			return err
		}
		return translate(r.investments.CreateTransaction(ctx, row), "investment transaction")
	})
	if err != nil {
		return nil, err
	}

	s.metrics.invested.Add(ctx, 1, metric.WithAttributes(attribute.String("type", row.Type)))
	logger.Log.Info().
		Int64("investment_id", row.InvestmentID).
		Str("type", row.Type).
		Str("total", total.StringFixed(2)).
		Msg("Investment transaction recorded")
	return row, nil
}
