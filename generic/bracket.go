/*
bracket.go - Progressive bracket evaluation

PURPOSE:
  Evaluates a progressive table: every bracket taxes only the slice of the
  base that falls inside it. Used for social security (INSS), withholding
  income tax (IRRF) and the FGTS birthday-withdrawal table. Same evaluator,
  different data.

TABLE SHAPE:
  Brackets are contiguous: bracket[i].Upper == bracket[i+1].Lower.
  The first lower bound is zero and the last bracket is unbounded.
  A table that only has a ceiling (INSS "teto") expresses it as a last
  bracket with rate 0.

  lower     upper     rate
  0.00      1412.00   0.075
  1412.00   2666.68   0.09
  2666.68   4000.03   0.12
  4000.03   7786.02   0.14
  7786.02   -         0

ROUNDING:
  Per-bracket products stay in decimal. The sum is rounded once.

EXAMPLE:
  table, err := generic.NewBracketTable("inss", rows)
  contribution := table.Evaluate(generic.MustParseMoney("3000.00")) // 258.82

SEE ALSO:
  - rulebook.go: named, versioned collections of tables
  - labor/payroll.go: INSS and IRRF on top of this evaluator
*/
package generic

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// BRACKET TABLE
// =============================================================================

// Bracket is one row of a progressive table. A nil Upper means unbounded.
type Bracket struct {
	Lower Money
	Upper *Money
	Rate  decimal.Decimal

	// CumulativeBase is the amount owed on all brackets below this one.
	// Filled in by NewBracketTable.
	CumulativeBase decimal.Decimal
}

// Contains reports whether base falls in (Lower, Upper].
func (b Bracket) Contains(base Money) bool {
	if base <= b.Lower && b.Lower > 0 {
		return false
	}
	return b.Upper == nil || base <= *b.Upper
}

// portion returns the slice of base inside the bracket.
func (b Bracket) portion(base Money) Money {
	if base <= b.Lower {
		return 0
	}
	top := base
	if b.Upper != nil && *b.Upper < top {
		top = *b.Upper
	}
	return top - b.Lower
}

// BracketTable is a validated progressive table. Build it with NewBracketTable.
type BracketTable struct {
	name     string
	brackets []Bracket
}

// NewBracketTable validates the rows and precomputes cumulative bases.
func NewBracketTable(name string, rows []Bracket) (*BracketTable, error) {
	if len(rows) == 0 {
		return nil, &TableError{Table: name, Index: -1, Reason: "no brackets", Kind: ErrInvalidTable}
	}
	if rows[0].Lower != 0 {
		return nil, &TableError{Table: name, Index: 0, Reason: "first bracket must start at zero", Kind: ErrInvalidTable}
	}

	brackets := make([]Bracket, len(rows))
	cumulative := decimal.Zero
	for i, row := range rows {
		if row.Rate.IsNegative() || row.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, &TableError{Table: name, Index: i, Reason: fmt.Sprintf("rate %s outside [0, 1]", row.Rate), Kind: ErrInvalidTable}
		}
		last := i == len(rows)-1
		switch {
		case last && row.Upper != nil:
			return nil, &TableError{Table: name, Index: i, Reason: "last bracket must be unbounded", Kind: ErrInvalidTable}
		case !last && row.Upper == nil:
			return nil, &TableError{Table: name, Index: i, Reason: "only the last bracket may be unbounded", Kind: ErrInvalidTable}
		case !last && *row.Upper <= row.Lower:
			return nil, &TableError{Table: name, Index: i, Reason: "upper bound must exceed lower bound", Kind: ErrInvalidTable}
		}
		if i > 0 {
			prev := rows[i-1]
			if row.Lower != *prev.Upper {
				reason := "gap before bracket"
				if row.Lower < *prev.Upper {
					reason = "bracket overlaps previous"
				}
				return nil, &TableError{Table: name, Index: i, Reason: reason, Kind: ErrInvalidTable}
			}
		}

		b := row
		b.CumulativeBase = cumulative
		brackets[i] = b
		if b.Upper != nil {
			cumulative = cumulative.Add((*b.Upper - b.Lower).Decimal().Mul(b.Rate))
		}
	}

	return &BracketTable{name: name, brackets: brackets}, nil
}

// MustBracketTable panics on an invalid table. For literals only.
func MustBracketTable(name string, rows []Bracket) *BracketTable {
	t, err := NewBracketTable(name, rows)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *BracketTable) Name() string { return t.name }

// Brackets returns a copy of the validated rows.
func (t *BracketTable) Brackets() []Bracket {
	out := make([]Bracket, len(t.brackets))
	copy(out, t.brackets)
	return out
}

// Evaluate returns the progressive amount owed on base, rounded once to the cent.
// A base of zero or less owes nothing.
func (t *BracketTable) Evaluate(base Money) Money {
	return NewMoneyFromDecimal(t.evaluateExact(base))
}

func (t *BracketTable) evaluateExact(base Money) decimal.Decimal {
	if base <= 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, b := range t.brackets {
		p := b.portion(base)
		if p <= 0 {
			break
		}
		total = total.Add(p.Decimal().Mul(b.Rate))
	}
	return total
}

// Bracket returns the index and row that base falls in.
func (t *BracketTable) Bracket(base Money) (int, Bracket) {
	for i, b := range t.brackets {
		if b.Contains(base) {
			return i, b
		}
	}
	last := len(t.brackets) - 1
	return last, t.brackets[last]
}

// MarginalRate is the rate applied to the next cent above base.
func (t *BracketTable) MarginalRate(base Money) decimal.Decimal {
	_, b := t.Bracket(base + 1)
	return b.Rate
}

// EffectiveRate is Evaluate(base)/base, zero for a non-positive base.
func (t *BracketTable) EffectiveRate(base Money) decimal.Decimal {
	if base <= 0 {
		return decimal.Zero
	}
	return t.evaluateExact(base).Div(base.Decimal()).Round(6)
}

// Upper is a helper for building bracket literals.
func Upper(m Money) *Money { return &m }
