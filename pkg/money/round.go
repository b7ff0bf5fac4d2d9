package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Precision levels used across the calculation engines. Monetary values are
// exposed at currency precision only; the higher precisions exist for
// intermediate arithmetic so rounding error does not compound over long
// schedules.
const (
	CurrencyPrecision int32 = 2
	RatePrecision     int32 = 4
	CalcPrecision     int32 = 6
)

// ErrInvalidNumericInput is returned when a value that must be a finite
// decimal is NaN, infinite, or not parseable. Inputs are never silently
// coerced to zero.
var ErrInvalidNumericInput = errors.New("invalid numeric input")

// RoundTo rounds half-to-even to the given number of fractional digits.
// Banker's rounding avoids systematic bias when millions of amounts are
// rounded over the life of a portfolio.
func RoundTo(d decimal.Decimal, digits int32) decimal.Decimal {
	return d.RoundBank(digits)
}

// RoundCurrency rounds to the smallest currency unit (cents).
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return RoundTo(d, CurrencyPrecision)
}

// RoundRate rounds to rate/percentage precision.
func RoundRate(d decimal.Decimal) decimal.Decimal {
	return RoundTo(d, RatePrecision)
}

// RoundCalc rounds to intermediate calculation precision.
func RoundCalc(d decimal.Decimal) decimal.Decimal {
	return RoundTo(d, CalcPrecision)
}

// ParseAmount parses a decimal string, failing with ErrInvalidNumericInput
// on anything that is not a finite number.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidNumericInput, s)
	}
	return d, nil
}

// FromFloat converts a float64 to a decimal, rejecting NaN and infinities.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidNumericInput, f)
	}
	return decimal.NewFromFloat(f), nil
}
