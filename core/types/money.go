// Package types - Money and percentage values
package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Money is an exact monetary amount.
// NEVER use float64 for money calculations.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is $0.00
var ZeroMoney = Money{amount: decimal.Zero}

// NewMoney parses a decimal string such as "999.99"
func NewMoney(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", amount, err)
	}
	return Money{amount: d}, nil
}

// MustMoney is NewMoney for literals known to be valid
func MustMoney(amount string) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add adds two monetary amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub subtracts monetary amounts
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Mul multiplies by a scalar
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// MulInt multiplies by an integer quantity
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// Percent returns p percent of m, unrounded
func (m Money) Percent(p Percent) Money {
	return Money{amount: m.amount.Mul(p.Fraction())}
}

// RoundCents rounds half away from zero to two decimal places
func (m Money) RoundCents() Money {
	return Money{amount: m.amount.Round(2)}
}

// IsZero returns true if amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Cmp compares two monetary amounts
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal reports numeric equality, so 5 equals 5.00
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount with two decimal places, e.g. "27.00"
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Display returns a dollar string such as "$27.00" or "-$3.00"
func (m Money) Display() string {
	if m.amount.IsNegative() {
		return "-$" + m.amount.Neg().StringFixed(2)
	}
	return "$" + m.amount.StringFixed(2)
}

// Exact returns the full-precision amount with at least two decimal places
func (m Money) Exact() string {
	s := m.amount.String()
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > 2 {
		return s
	}
	return m.amount.StringFixed(2)
}

// MarshalJSON encodes the exact amount as a JSON string
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Exact())
}

// UnmarshalJSON accepts a JSON string or number
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.amount.UnmarshalJSON(data)
}

// Percent is a percentage such as 15 (meaning 15%). Fractional values are allowed.
type Percent struct {
	value decimal.Decimal
}

// ZeroPercent is 0%
var ZeroPercent = Percent{value: decimal.Zero}

// NewPercent creates a whole-number percentage
func NewPercent(p int64) Percent {
	return Percent{value: decimal.NewFromInt(p)}
}

// ParsePercent parses a decimal string such as "12.5"
func ParsePercent(s string) (Percent, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Percent{}, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	return Percent{value: d}, nil
}

// Decimal returns the percentage value (15 for 15%)
func (p Percent) Decimal() decimal.Decimal {
	return p.value
}

// Fraction returns p/100
func (p Percent) Fraction() decimal.Decimal {
	return p.value.Div(decimal.NewFromInt(100))
}

// Add sums two percentages. Stacked discounts are additive, never compounded.
func (p Percent) Add(other Percent) Percent {
	return Percent{value: p.value.Add(other.value)}
}

// IsZero returns true for 0%
func (p Percent) IsZero() bool {
	return p.value.IsZero()
}

// IsNegative returns true below 0%
func (p Percent) IsNegative() bool {
	return p.value.IsNegative()
}

// Equal reports numeric equality
func (p Percent) Equal(other Percent) bool {
	return p.value.Equal(other.value)
}

// String returns e.g. "15%" or "12.5%"
func (p Percent) String() string {
	return p.value.String() + "%"
}

// MarshalJSON encodes the percentage as a JSON string without the sign
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value.String())
}
