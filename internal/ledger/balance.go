package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/fintrack/internal/repository"
)

// applyDelta adds a signed amount to an account balance and returns the new
// balance. It must run on the same transaction as the ledger row it pairs with,
// so an out-of-range result rolls the whole operation back.
func applyDelta(ctx context.Context, accounts *repository.AccountRepository, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	balance, err := accounts.ApplyDelta(ctx, accountID, delta)
	if err != nil {
		return decimal.Zero, translate(err, "account")
	}
	if !finiteBalance(balance) {
		return decimal.Zero, invalidf("resulting balance is out of range")
	}
	return balance, nil
}
