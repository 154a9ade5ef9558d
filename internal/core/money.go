// Package core provides the domain model for the ledger engine.
//
// This file contains the Money type and its parsing helpers. Amounts are
// currency-agnostic decimal magnitudes: the display currency is a label owned
// by the UI collaborator and may be zero-decimal (JPY, KRW), so no cent or
// scale assumption is baked in here.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a non-negative decimal magnitude. The zero value is zero money.
type Money struct {
	value decimal.Decimal
}

// NewMoney wraps a decimal value as Money.
func NewMoney(d decimal.Decimal) Money {
	return Money{value: d}
}

// MoneyZero returns zero money.
func MoneyZero() Money {
	return Money{value: decimal.Zero}
}

// ParseMoney parses a decimal string into Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns an error for invalid formats. Positivity is a separate concern:
// use Validate on the result where a positive amount is required.
//
// Examples:
//
//	ParseMoney("12.34") -> 12.34, nil
//	ParseMoney("12,34") -> 12.34, nil
//	ParseMoney("1200")  -> 1200, nil
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{value: d}, nil
}

func (m Money) Validate() error {
	if !m.value.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value)}
}

func (m Money) Sub(other Money) Money {
	return Money{value: m.value.Sub(other.value)}
}

func (m Money) IsZero() bool {
	return m.value.IsZero()
}

func (m Money) IsPositive() bool {
	return m.value.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.value.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.value.Equal(other.value)
}

// String returns the plain decimal representation, e.g. "1234.5".
func (m Money) String() string {
	return m.value.String()
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// Float64 returns the value as a float64 for display or export purposes.
// Use decimal arithmetic for calculations.
func (m Money) Float64() float64 {
	f, _ := m.value.Float64()
	return f
}

// MarshalJSON emits the amount as a bare JSON number, matching the
// interchange shape of the persistence collaborator.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		m.value = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ErrInvalidAmount
	}
	m.value = d
	return nil
}
