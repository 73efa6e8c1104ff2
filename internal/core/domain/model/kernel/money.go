package kernel

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Money is a value object representing a non-negative monetary amount with
// fixed precision. Amounts are stored in cents to avoid floating-point
// rounding; display formatting is left to the presentation layer.
//
// The zero value (0 cents) is valid: orders start with empty totals.
type Money struct {
	cents int64
}

// NewMoney creates a Money value from an amount in cents.
// Returns an error for negative amounts: order monetary fields
// (subtotal, discount, tax, shipping, total) are never negative.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats the amount as a decimal with two fraction digits.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
