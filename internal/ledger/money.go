package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

// maxBalance bounds persisted balances well inside NUMERIC(15,2).
var maxBalance = decimal.New(1, 13)

// Investment quantities and prices are stored as NUMERIC(18,6).
const (
	unitScale     = 6
	maxUnitDigits = 12
)

// validateAmount requires a positive amount below maxBalance with at most two
// decimal places.
func validateAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidf("%s must be positive", field)
	}
	if !amount.Equal(amount.Round(2)) {
		return invalidf("%s must have at most two decimal places", field)
	}
	if !amount.LessThan(maxBalance) {
		return invalidf("%s must be less than %s", field, maxBalance.String())
	}
	return nil
}

// validateUnits requires a positive quantity or price that round-trips
// through NUMERIC(18,6) unchanged.
func validateUnits(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return invalidf("%s must be positive", field)
	}
	if !v.Equal(v.Round(unitScale)) {
		return invalidf("%s must have at most %d decimal places", field, unitScale)
	}
	if !v.LessThan(decimal.New(1, maxUnitDigits)) {
		return invalidf("%s must have at most %d integer digits", field, maxUnitDigits)
	}
	return nil
}

// finiteBalance reports whether b is a representable, finite balance.
func finiteBalance(b decimal.Decimal) bool {
	f, _ := b.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	return b.Abs().LessThan(maxBalance)
}
