package generic

import "fmt"

// =============================================================================
// ENTITLEMENT RULE - Discrete step table over an integer count
// =============================================================================

// EntitlementStep grants Value to counts in [Min, Max]. A nil Max means unbounded.
type EntitlementStep struct {
	Min   int
	Max   *int
	Value int
}

func (s EntitlementStep) contains(n int) bool {
	return n >= s.Min && (s.Max == nil || n <= *s.Max)
}

// EntitlementRule maps a count (absences, months worked, years of service)
// to a granted value. Steps partition [0, ∞) with no gaps; the last step is
// unbounded and carries the terminal value.
//
// Example (vacation days by unexcused absences):
//
//	0-5   -> 30
//	6-14  -> 24
//	15-23 -> 18
//	24-32 -> 12
//	33+   -> 0
type EntitlementRule struct {
	name  string
	steps []EntitlementStep
}

// NewEntitlementRule validates that steps cover every non-negative integer exactly once.
func NewEntitlementRule(name string, steps []EntitlementStep) (*EntitlementRule, error) {
	if len(steps) == 0 {
		return nil, &TableError{Table: name, Index: -1, Reason: "no steps", Kind: ErrInvalidRule}
	}
	if steps[0].Min != 0 {
		return nil, &TableError{Table: name, Index: 0, Reason: "first step must start at zero", Kind: ErrInvalidRule}
	}
	for i, s := range steps {
		last := i == len(steps)-1
		switch {
		case last && s.Max != nil:
			return nil, &TableError{Table: name, Index: i, Reason: "last step must be unbounded", Kind: ErrInvalidRule}
		case !last && s.Max == nil:
			return nil, &TableError{Table: name, Index: i, Reason: "only the last step may be unbounded", Kind: ErrInvalidRule}
		case !last && *s.Max < s.Min:
			return nil, &TableError{Table: name, Index: i, Reason: "max below min", Kind: ErrInvalidRule}
		}
		if i > 0 {
			want := *steps[i-1].Max + 1
			if s.Min != want {
				return nil, &TableError{Table: name, Index: i,
					Reason: fmt.Sprintf("step starts at %d, expected %d", s.Min, want), Kind: ErrInvalidRule}
			}
		}
	}
	out := make([]EntitlementStep, len(steps))
	copy(out, steps)
	return &EntitlementRule{name: name, steps: out}, nil
}

// MustEntitlementRule panics on an invalid rule. For literals only.
func MustEntitlementRule(name string, steps []EntitlementStep) *EntitlementRule {
	r, err := NewEntitlementRule(name, steps)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *EntitlementRule) Name() string { return r.name }

// Steps returns a copy of the validated steps.
func (r *EntitlementRule) Steps() []EntitlementStep {
	out := make([]EntitlementStep, len(r.steps))
	copy(out, r.steps)
	return out
}

// Lookup returns the value granted for count. Negative counts are rejected.
func (r *EntitlementRule) Lookup(count int) (int, error) {
	if err := RequireCount(r.name, count); err != nil {
		return 0, err
	}
	for _, s := range r.steps {
		if s.contains(count) {
			return s.Value, nil
		}
	}
	// Unreachable for a validated rule: the last step is unbounded.
	return r.steps[len(r.steps)-1].Value, nil
}

// Terminal is the value for counts beyond the last finite threshold.
func (r *EntitlementRule) Terminal() int {
	return r.steps[len(r.steps)-1].Value
}

// MaxInt is a helper for building step literals.
func MaxInt(n int) *int { return &n }

// =============================================================================
// TIERED ENTITLEMENT - Two-dimensional lookup
// =============================================================================

// TieredEntitlementRule selects a sub-rule by ordinal (1st, 2nd, ... request)
// and then scans the count within it. Ordinals past the last tier use the
// last tier ("3rd and later").
type TieredEntitlementRule struct {
	name  string
	tiers []*EntitlementRule
}

// NewTieredEntitlementRule builds a 2-D rule; tiers[0] serves ordinal 1.
func NewTieredEntitlementRule(name string, tiers []*EntitlementRule) (*TieredEntitlementRule, error) {
	if len(tiers) == 0 {
		return nil, &TableError{Table: name, Index: -1, Reason: "no tiers", Kind: ErrInvalidRule}
	}
	for i, t := range tiers {
		if t == nil {
			return nil, &TableError{Table: name, Index: i, Reason: "nil tier", Kind: ErrInvalidRule}
		}
	}
	out := make([]*EntitlementRule, len(tiers))
	copy(out, tiers)
	return &TieredEntitlementRule{name: name, tiers: out}, nil
}

func (r *TieredEntitlementRule) Name() string { return r.name }

// Tiers returns the sub-rules in ordinal order.
func (r *TieredEntitlementRule) Tiers() []*EntitlementRule {
	out := make([]*EntitlementRule, len(r.tiers))
	copy(out, r.tiers)
	return out
}

// Lookup returns the value for count within the tier for ordinal (1-based).
func (r *TieredEntitlementRule) Lookup(count, ordinal int) (int, error) {
	if ordinal < 1 {
		return 0, &InputError{Field: "ordinal", Value: ordinal, Reason: "must be at least 1"}
	}
	idx := ordinal - 1
	if idx >= len(r.tiers) {
		idx = len(r.tiers) - 1
	}
	return r.tiers[idx].Lookup(count)
}

// =============================================================================
// PROPORTIONAL LIMIT - Linear, not stepped
// =============================================================================

// ProportionalLimit is monthly * activeMonths.
func ProportionalLimit(monthly Money, activeMonths int) (Money, error) {
	if err := RequireNonNegative("monthly_limit", monthly); err != nil {
		return 0, err
	}
	if err := RequireCount("active_months", activeMonths); err != nil {
		return 0, err
	}
	return monthly.MulInt(activeMonths), nil
}
