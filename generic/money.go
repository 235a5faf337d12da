/*
Package generic provides the core statutory calculation engine.

PURPOSE:
  This package contains domain-agnostic types and algorithms for computing
  legally-defined amounts. Whether evaluating a social-security table, a
  vacation-day reduction or an unemployment parcel, the same primitives
  handle bracket math, threshold lookups, tiered formulas and projections.

KEY CONCEPTS IN THIS FILE (money.go):
  - Money: a non-negative-by-convention amount stored as integer cents
  - Rate:  a decimal.Decimal multiplier (0.075 = 7.5%)

DESIGN PRINCIPLES:
  1. Precision: cents are int64; rates are decimal.Decimal
  2. Single rounding: intermediate products stay in decimal, only the final
     result of a computation is rounded back to cents
  3. Purity: nothing in this package reads the clock or global state

USAGE:
  salary := generic.MustParseMoney("3000.00")
  fgts := salary.MulRate(generic.Rate("0.08")) // 240.00

SEE ALSO:
  - bracket.go: progressive bracket tables
  - entitlement.go: threshold tables
  - tier.go: tiered benefit formula
  - projection.go: regime projector
*/
package generic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Integer cents
// =============================================================================

// Money is an amount in cents.
type Money int64

const centsPerUnit = 100

var hundred = decimal.NewFromInt(centsPerUnit)

// Cents builds Money from a cent count.
func Cents(c int64) Money { return Money(c) }

// Reais builds Money from whole units.
func Reais(r int64) Money { return Money(r * centsPerUnit) }

// NewMoneyFromDecimal rounds d half away from zero to the cent.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(hundred).Round(0).IntPart())
}

// ParseMoney parses "1234.56" (a comma is accepted as decimal separator).
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &InputError{Field: "amount", Value: s, Reason: "not a decimal number"}
	}
	return NewMoneyFromDecimal(d), nil
}

// MustParseMoney is ParseMoney for literals in tables and tests. It panics on bad input.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Rate parses a decimal rate literal. It panics on bad input.
func Rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (m Money) Decimal() decimal.Decimal { return decimal.New(int64(m), -2) }
func (m Money) Cents() int64             { return int64(m) }
func (m Money) Add(o Money) Money        { return m + o }
func (m Money) Sub(o Money) Money        { return m - o }
func (m Money) Neg() Money               { return -m }
func (m Money) IsZero() bool             { return m == 0 }
func (m Money) IsNegative() bool         { return m < 0 }
func (m Money) IsPositive() bool         { return m > 0 }

// MulRate multiplies by a rate and rounds to the cent.
func (m Money) MulRate(r decimal.Decimal) Money {
	return NewMoneyFromDecimal(m.Decimal().Mul(r))
}

// MulInt multiplies by an integer count.
func (m Money) MulInt(n int) Money { return m * Money(n) }

// DivInt divides by n and rounds to the cent. n must be positive.
func (m Money) DivInt(n int) Money {
	return NewMoneyFromDecimal(m.Decimal().Div(decimal.NewFromInt(int64(n))))
}

// Ratio multiplies by num/den without intermediate rounding.
func (m Money) Ratio(num, den int) Money {
	return NewMoneyFromDecimal(m.Decimal().Mul(decimal.NewFromInt(int64(num))).Div(decimal.NewFromInt(int64(den))))
}

func (m Money) Min(o Money) Money {
	if m < o {
		return m
	}
	return o
}

func (m Money) Max(o Money) Money {
	if m > o {
		return m
	}
	return o
}

// ClampZero returns m, or zero when m is negative.
func (m Money) ClampZero() Money { return m.Max(0) }

// String renders a plain two-digit decimal ("1234.56"). Locale formatting is a display concern.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Split returns the integer units and the cents of a non-negative amount.
func (m Money) Split() (units int64, cents int64) {
	return int64(m) / centsPerUnit, int64(m) % centsPerUnit
}

// Sum adds amounts.
func Sum(ms ...Money) Money {
	var total Money
	for _, m := range ms {
		total += m
	}
	return total
}

// =============================================================================
// ENCODING - amounts travel as decimal strings or numbers
// =============================================================================

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(b), err)
	}
	*m = NewMoneyFromDecimal(d)
	return nil
}

func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalText(b []byte) error {
	parsed, err := ParseMoney(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
