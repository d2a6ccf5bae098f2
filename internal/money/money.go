// Package money converts between the integer-cents representation persisted
// in postgres and the fixed-point decimal amounts used on the wire and by
// the payment gateway.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func ToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// ParseCents parses a decimal string like "1299.99" into cents. More than
// two fractional digits is rejected rather than silently rounded.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.Exponent() < -2 {
		return 0, fmt.Errorf("amount %q has more than 2 decimal places", s)
	}
	return ToCents(d), nil
}
