// Package money provides a fixed-precision decimal amount used for every
// monetary value in fintrack. All arithmetic is exact; rounding only happens
// when an amount is rendered (String, MarshalJSON).
package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// displayPlaces is the number of fraction digits used when presenting an amount.
const displayPlaces = 2

// Money is an immutable decimal amount. The zero value is a valid zero amount.
type Money struct {
	d decimal.Decimal
}

// Zero returns a zero amount.
func Zero() Money { return Money{} }

// FromInt returns a whole-unit amount.
func FromInt(units int64) Money { return Money{d: decimal.NewFromInt(units)} }

// FromCents returns an amount expressed in hundredths of a unit.
func FromCents(cents int64) Money { return Money{d: decimal.New(cents, -displayPlaces)} }

// Parse parses a decimal string such as "12.34".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }

// Percent returns p percent of m, computed exactly.
func (m Money) Percent(p int64) Money {
	return Money{d: m.d.Mul(decimal.New(p, -2))}
}

func (m Money) Equal(o Money) bool              { return m.d.Equal(o.d) }
func (m Money) GreaterThan(o Money) bool        { return m.d.GreaterThan(o.d) }
func (m Money) GreaterThanOrEqual(o Money) bool { return m.d.GreaterThanOrEqual(o.d) }
func (m Money) IsZero() bool                    { return m.d.IsZero() }
func (m Money) IsPositive() bool                { return m.d.IsPositive() }

// String renders the amount with two fraction digits.
func (m Money) String() string { return m.d.StringFixed(displayPlaces) }

// MarshalJSON encodes the amount as a JSON number with two fraction digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.d = d
	return nil
}

// Scan implements sql.Scanner so Money can be read from NUMERIC columns.
func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	m.d = d
	return nil
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.d.Value()
}
