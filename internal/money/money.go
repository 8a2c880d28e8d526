package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// UZS amounts travel to providers in tiyin, the minor unit (1 UZS = 100 tiyin).
// Conversion must be exact: the gateway never rounds an amount on behalf of the
// caller, it rejects anything finer than tiyin resolution instead.

// MinorUnitScale is the number of decimal digits in the minor unit of UZS.
const MinorUnitScale = 2

// ErrInvalidAmount marks amounts that are non-positive, over-precision, or out of range.
var ErrInvalidAmount = errors.New("invalid amount")

var maxTiyin = decimal.NewFromInt(math.MaxInt64)

// ToTiyin converts a major-unit UZS amount to tiyin.
func ToTiyin(amount decimal.Decimal) (int64, error) {
	if err := Validate(amount); err != nil {
		return 0, err
	}
	return amount.Shift(MinorUnitScale).IntPart(), nil
}

// FromTiyin converts a tiyin amount back to major-unit UZS. It is the exact
// inverse of ToTiyin for every amount ToTiyin accepts.
func FromTiyin(tiyin int64) decimal.Decimal {
	return decimal.New(tiyin, -MinorUnitScale)
}

// Validate reports whether the amount is usable as a payment amount: strictly
// positive and representable in whole tiyin.
func Validate(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidAmount, amount)
	}
	if !amount.Equal(amount.Truncate(MinorUnitScale)) {
		return fmt.Errorf("%w: amount %s exceeds tiyin precision (%d decimal places)", ErrInvalidAmount, amount, MinorUnitScale)
	}
	if amount.Shift(MinorUnitScale).GreaterThan(maxTiyin) {
		return fmt.Errorf("%w: amount %s is out of range", ErrInvalidAmount, amount)
	}
	return nil
}
