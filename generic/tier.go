package generic

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// BENEFIT TIER - Piecewise-linear formula with floor and cap
// =============================================================================

// BenefitTier is the three-segment statutory formula used for the
// unemployment-insurance parcel:
//
//	base <= PivotLow             -> base * RatioLow
//	PivotLow < base <= PivotHigh -> PivotValue + (base - PivotLow) * RatioMid
//	base > PivotHigh             -> Cap
//
// The segment result is then limited to Cap and raised to Floor (minimum wage).
// PivotValue defaults to PivotLow * RatioLow; statutes sometimes publish it
// as a fixed figure that differs from the product by a cent.
type BenefitTier struct {
	Name       string
	PivotLow   Money
	PivotHigh  Money
	RatioLow   decimal.Decimal
	RatioMid   decimal.Decimal
	PivotValue *Money
	Cap        Money
	Floor      Money
}

// NewBenefitTier validates the formula parameters.
func NewBenefitTier(t BenefitTier) (*BenefitTier, error) {
	fail := func(reason string) error {
		return &TableError{Table: t.Name, Index: -1, Reason: reason, Kind: ErrInvalidTier}
	}
	switch {
	case t.PivotLow < 0:
		return nil, fail("pivot_low must not be negative")
	case t.PivotHigh <= t.PivotLow:
		return nil, fail("pivot_high must exceed pivot_low")
	case t.RatioLow.IsNegative() || t.RatioMid.IsNegative():
		return nil, fail("ratios must not be negative")
	case t.Floor < 0:
		return nil, fail("floor must not be negative")
	case t.Floor > t.Cap:
		return nil, fail(fmt.Sprintf("floor %s exceeds cap %s", t.Floor, t.Cap))
	case t.PivotValue != nil && *t.PivotValue < 0:
		return nil, fail("pivot_value must not be negative")
	}
	out := t
	if t.PivotValue != nil {
		v := *t.PivotValue
		out.PivotValue = &v
	}
	return &out, nil
}

// MustBenefitTier panics on invalid parameters. For literals only.
func MustBenefitTier(t BenefitTier) *BenefitTier {
	out, err := NewBenefitTier(t)
	if err != nil {
		panic(err)
	}
	return out
}

// Segment reports which segment base falls in: 0 low, 1 middle, 2 capped.
func (t *BenefitTier) Segment(base Money) int {
	switch {
	case base <= t.PivotLow:
		return 0
	case base <= t.PivotHigh:
		return 1
	default:
		return 2
	}
}

// Compute applies the formula. The result always lies in [Floor, Cap].
func (t *BenefitTier) Compute(base Money) (Money, error) {
	if err := RequireNonNegative("base", base); err != nil {
		return 0, err
	}

	var raw decimal.Decimal
	switch t.Segment(base) {
	case 0:
		raw = base.Decimal().Mul(t.RatioLow)
	case 1:
		pivot := t.PivotLow.Decimal().Mul(t.RatioLow)
		if t.PivotValue != nil {
			pivot = t.PivotValue.Decimal()
		}
		raw = pivot.Add((base - t.PivotLow).Decimal().Mul(t.RatioMid))
	default:
		raw = t.Cap.Decimal()
	}

	return NewMoneyFromDecimal(raw).Min(t.Cap).Max(t.Floor), nil
}
