/*
rulebook.go - Versioned, named collection of validated tables

PURPOSE:
  Legal constants change every year. A RuleBook gathers every table, tier
  and scalar in force for one effective year so that callers select the
  version explicitly instead of relying on a process-wide "current year".

CONTENTS:
  Brackets:     progressive tables (INSS, IRRF, FGTS birthday withdrawal)
  Entitlements: step tables (vacation days by absences, notice days)
  Tiered:       2-D step tables (unemployment installments by request)
  Benefits:     tier formulas (unemployment parcel)
  Amounts:      scalars in money (minimum wage, dependent allowance)
  Rates:        scalars as decimals (FGTS deposit rate, fine rate)

LIFECYCLE:
  Built once by the factory (every table validated on the way in), then
  only read. A RuleBook is safe for concurrent readers.

SEE ALSO:
  - factory/rules.go: builds RuleBooks from YAML/JSON
  - labor/ids.go: the table ids the labor calculators expect
*/
package generic

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RuleBook holds the tables in force for one effective year.
type RuleBook struct {
	Year        int
	Description string

	brackets     map[string]*BracketTable
	entitlements map[string]*EntitlementRule
	tiered       map[string]*TieredEntitlementRule
	benefits     map[string]*BenefitTier
	amounts      map[string]Money
	rates        map[string]decimal.Decimal
}

// NewRuleBook returns an empty book for year.
func NewRuleBook(year int, description string) *RuleBook {
	return &RuleBook{
		Year:         year,
		Description:  description,
		brackets:     make(map[string]*BracketTable),
		entitlements: make(map[string]*EntitlementRule),
		tiered:       make(map[string]*TieredEntitlementRule),
		benefits:     make(map[string]*BenefitTier),
		amounts:      make(map[string]Money),
		rates:        make(map[string]decimal.Decimal),
	}
}

// =============================================================================
// BUILDERS (used while loading)
// =============================================================================

func (b *RuleBook) SetBracketTable(id string, t *BracketTable)                { b.brackets[id] = t }
func (b *RuleBook) SetEntitlement(id string, r *EntitlementRule)              { b.entitlements[id] = r }
func (b *RuleBook) SetTieredEntitlement(id string, r *TieredEntitlementRule) { b.tiered[id] = r }
func (b *RuleBook) SetBenefit(id string, t *BenefitTier)                      { b.benefits[id] = t }
func (b *RuleBook) SetAmount(id string, m Money)                              { b.amounts[id] = m }
func (b *RuleBook) SetRate(id string, r decimal.Decimal)                      { b.rates[id] = r }

// =============================================================================
// LOOKUPS
// =============================================================================

func (b *RuleBook) missing(id string) error {
	return &LookupError{Year: b.Year, ID: id, Kind: ErrUnknownTable}
}

func (b *RuleBook) BracketTable(id string) (*BracketTable, error) {
	t, ok := b.brackets[id]
	if !ok {
		return nil, b.missing(id)
	}
	return t, nil
}

func (b *RuleBook) EntitlementRule(id string) (*EntitlementRule, error) {
	r, ok := b.entitlements[id]
	if !ok {
		return nil, b.missing(id)
	}
	return r, nil
}

func (b *RuleBook) TieredEntitlementRule(id string) (*TieredEntitlementRule, error) {
	r, ok := b.tiered[id]
	if !ok {
		return nil, b.missing(id)
	}
	return r, nil
}

func (b *RuleBook) BenefitTier(id string) (*BenefitTier, error) {
	t, ok := b.benefits[id]
	if !ok {
		return nil, b.missing(id)
	}
	return t, nil
}

func (b *RuleBook) Amount(id string) (Money, error) {
	m, ok := b.amounts[id]
	if !ok {
		return 0, b.missing(id)
	}
	return m, nil
}

func (b *RuleBook) Rate(id string) (decimal.Decimal, error) {
	r, ok := b.rates[id]
	if !ok {
		return decimal.Zero, b.missing(id)
	}
	return r, nil
}

// =============================================================================
// ENTRY POINTS - evaluate by table id
// =============================================================================

// Tax evaluates the progressive table id on base.
func (b *RuleBook) Tax(id string, base Money) (Money, error) {
	if err := RequireNonNegative("base", base); err != nil {
		return 0, err
	}
	t, err := b.BracketTable(id)
	if err != nil {
		return 0, err
	}
	return t.Evaluate(base), nil
}

// Entitlement looks count up in rule id.
func (b *RuleBook) Entitlement(id string, count int) (int, error) {
	r, err := b.EntitlementRule(id)
	if err != nil {
		return 0, err
	}
	return r.Lookup(count)
}

// TieredEntitlement looks (count, ordinal) up in the 2-D rule id.
func (b *RuleBook) TieredEntitlement(id string, count, ordinal int) (int, error) {
	r, err := b.TieredEntitlementRule(id)
	if err != nil {
		return 0, err
	}
	return r.Lookup(count, ordinal)
}

// Benefit applies tier formula id to base.
func (b *RuleBook) Benefit(id string, base Money) (Money, error) {
	t, err := b.BenefitTier(id)
	if err != nil {
		return 0, err
	}
	return t.Compute(base)
}

// =============================================================================
// LISTING
// =============================================================================

// TableIDs lists ids by kind, sorted, for discovery endpoints.
func (b *RuleBook) TableIDs() map[string][]string {
	return map[string][]string{
		"brackets":     sortedKeys(b.brackets),
		"entitlements": sortedKeys(b.entitlements),
		"tiered":       sortedKeys(b.tiered),
		"benefits":     sortedKeys(b.benefits),
		"amounts":      sortedKeys(b.amounts),
		"rates":        sortedKeys(b.rates),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
