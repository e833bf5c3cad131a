// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors in the cost cascade.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use MoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// MoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func MoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Percent is a percentage stored as a plain number in [0,100].
// Margins are relative to price, loss rates relative to base cost; the two
// are never mixed (margin math uses Complement, loss math uses Fraction).
type Percent = decimal.Decimal

var hundred = decimal.NewFromInt(100)

// Fraction converts a percentage to its decimal fraction (25 -> 0.25).
func Fraction(p Percent) decimal.Decimal {
	return p.Div(hundred)
}

// Complement returns (1 - p/100), the divisor used when deriving a price
// from a cost and a target margin.
func Complement(p Percent) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(Fraction(p))
}

// RatioPercent returns part/whole expressed as a percentage.
// Returns zero when whole is zero so callers never observe NaN or Infinity.
func RatioPercent(part, whole decimal.Decimal) Percent {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
