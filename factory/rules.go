/*
Package factory provides YAML/JSON to RuleBook conversion.

PURPOSE:
  Converts rule-set documents into validated generic.RuleBook objects. Legal
  tables change every year; publishing a new year is a new document, not a
  code change.

DOCUMENT SCHEMA (YAML; JSON uses the same keys):
  year: 2025
  description: "Tabelas vigentes em 2025"
  brackets:
    inss:
      - {lower: "0", upper: "1518.00", rate: "0.075"}
      - {lower: "1518.00", upper: "2793.88", rate: "0.09"}
      - ...
      - {lower: "8157.41", rate: "0"}
  entitlements:
    vacation_absences:
      - {min: 0, max: 5, value: 30}
      - ...
      - {min: 33, value: 0}
  tiered:
    unemployment_installments:
      - [{min: 0, max: 11, value: 0}, {min: 12, max: 23, value: 4}, {min: 24, value: 5}]
      - ...
  benefits:
    unemployment_parcel: {pivot_low: "2138.76", pivot_high: "3564.96", ...}
  amounts:
    minimum_wage: "1518.00"
  rates:
    fgts_deposit_rate: "0.08"

  Amounts and rates are strings so that no value passes through float64.

KEY FEATURES:
  - Every table is validated by its generic constructor
  - Errors name the table id and wrap the generic sentinel
  - Documents can be strict (unknown keys rejected)

USAGE:
  f := factory.NewRuleBookFactory()
  book, err := f.Parse(data, generic.FormatYAML)

SEE ALSO:
  - registry.go: books by year from embedded files, a directory and a store
  - generic/rulebook.go: the RuleBook type
*/
package factory

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/labor-engine/generic"
)

// =============================================================================
// DOCUMENT SCHEMA TYPES
// =============================================================================

// RuleSetDocument is the serialized form of a RuleBook.
type RuleSetDocument struct {
	Year         int                     `yaml:"year" json:"year"`
	Description  string                  `yaml:"description,omitempty" json:"description,omitempty"`
	Brackets     map[string][]BracketDoc `yaml:"brackets,omitempty" json:"brackets,omitempty"`
	Entitlements map[string][]StepDoc    `yaml:"entitlements,omitempty" json:"entitlements,omitempty"`
	Tiered       map[string][][]StepDoc  `yaml:"tiered,omitempty" json:"tiered,omitempty"`
	Benefits     map[string]BenefitDoc   `yaml:"benefits,omitempty" json:"benefits,omitempty"`
	Amounts      map[string]string       `yaml:"amounts,omitempty" json:"amounts,omitempty"`
	Rates        map[string]string       `yaml:"rates,omitempty" json:"rates,omitempty"`
}

// BracketDoc is one progressive bracket. A missing upper means unbounded.
type BracketDoc struct {
	Lower string  `yaml:"lower" json:"lower"`
	Upper *string `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  string  `yaml:"rate" json:"rate"`
}

// StepDoc is one entitlement step. A missing max means unbounded.
type StepDoc struct {
	Min   int  `yaml:"min" json:"min"`
	Max   *int `yaml:"max,omitempty" json:"max,omitempty"`
	Value int  `yaml:"value" json:"value"`
}

// BenefitDoc is a tier formula.
type BenefitDoc struct {
	PivotLow   string  `yaml:"pivot_low" json:"pivot_low"`
	PivotHigh  string  `yaml:"pivot_high" json:"pivot_high"`
	RatioLow   string  `yaml:"ratio_low" json:"ratio_low"`
	RatioMid   string  `yaml:"ratio_mid" json:"ratio_mid"`
	PivotValue *string `yaml:"pivot_value,omitempty" json:"pivot_value,omitempty"`
	Cap        string  `yaml:"cap" json:"cap"`
	Floor      string  `yaml:"floor" json:"floor"`
}

// =============================================================================
// RULE BOOK FACTORY
// =============================================================================

// RuleBookFactory converts documents into RuleBooks.
type RuleBookFactory struct {
	// Validate, when set, runs on every built book (e.g. labor.CheckRuleBook).
	Validate func(*generic.RuleBook) error
}

// NewRuleBookFactory creates a factory with no extra validation.
func NewRuleBookFactory() *RuleBookFactory {
	return &RuleBookFactory{}
}

// Decode parses a document without building it.
func (f *RuleBookFactory) Decode(data []byte, format generic.DocumentFormat) (*RuleSetDocument, error) {
	var doc RuleSetDocument
	switch format {
	case generic.FormatYAML, "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse rule set YAML: %w", err)
		}
	case generic.FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse rule set JSON: %w", err)
		}
	default:
		return nil, &generic.InputError{Field: "format", Value: format, Reason: "must be yaml or json"}
	}
	return &doc, nil
}

// Parse decodes and builds a document.
func (f *RuleBookFactory) Parse(data []byte, format generic.DocumentFormat) (*generic.RuleBook, error) {
	doc, err := f.Decode(data, format)
	if err != nil {
		return nil, err
	}
	return f.Build(doc)
}

// Build converts a decoded document into a validated RuleBook.
func (f *RuleBookFactory) Build(doc *RuleSetDocument) (*generic.RuleBook, error) {
	if doc.Year <= 0 {
		return nil, &generic.InputError{Field: "year", Value: doc.Year, Reason: "must be positive"}
	}
	book := generic.NewRuleBook(doc.Year, doc.Description)

	for _, id := range keys(doc.Brackets) {
		table, err := buildBracketTable(id, doc.Brackets[id])
		if err != nil {
			return nil, err
		}
		book.SetBracketTable(id, table)
	}
	for _, id := range keys(doc.Entitlements) {
		rule, err := generic.NewEntitlementRule(id, buildSteps(doc.Entitlements[id]))
		if err != nil {
			return nil, err
		}
		book.SetEntitlement(id, rule)
	}
	for _, id := range keys(doc.Tiered) {
		tiers := make([]*generic.EntitlementRule, 0, len(doc.Tiered[id]))
		for i, steps := range doc.Tiered[id] {
			rule, err := generic.NewEntitlementRule(fmt.Sprintf("%s[%d]", id, i+1), buildSteps(steps))
			if err != nil {
				return nil, err
			}
			tiers = append(tiers, rule)
		}
		rule, err := generic.NewTieredEntitlementRule(id, tiers)
		if err != nil {
			return nil, err
		}
		book.SetTieredEntitlement(id, rule)
	}
	for _, id := range keys(doc.Benefits) {
		tier, err := buildBenefit(id, doc.Benefits[id])
		if err != nil {
			return nil, err
		}
		book.SetBenefit(id, tier)
	}
	for _, id := range keys(doc.Amounts) {
		m, err := parseMoney(id, doc.Amounts[id])
		if err != nil {
			return nil, err
		}
		book.SetAmount(id, m)
	}
	for _, id := range keys(doc.Rates) {
		r, err := parseRate(id, doc.Rates[id])
		if err != nil {
			return nil, err
		}
		book.SetRate(id, r)
	}

	if f.Validate != nil {
		if err := f.Validate(book); err != nil {
			return nil, err
		}
	}
	return book, nil
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func buildBracketTable(id string, docs []BracketDoc) (*generic.BracketTable, error) {
	rows := make([]generic.Bracket, len(docs))
	for i, d := range docs {
		lower, err := parseMoney(id, d.Lower)
		if err != nil {
			return nil, err
		}
		rate, err := parseRate(id, d.Rate)
		if err != nil {
			return nil, err
		}
		rows[i] = generic.Bracket{Lower: lower, Rate: rate}
		if d.Upper != nil {
			upper, err := parseMoney(id, *d.Upper)
			if err != nil {
				return nil, err
			}
			rows[i].Upper = generic.Upper(upper)
		}
	}
	return generic.NewBracketTable(id, rows)
}

func buildSteps(docs []StepDoc) []generic.EntitlementStep {
	steps := make([]generic.EntitlementStep, len(docs))
	for i, d := range docs {
		steps[i] = generic.EntitlementStep{Min: d.Min, Value: d.Value}
		if d.Max != nil {
			steps[i].Max = generic.MaxInt(*d.Max)
		}
	}
	return steps
}

func buildBenefit(id string, d BenefitDoc) (*generic.BenefitTier, error) {
	var err error
	t := generic.BenefitTier{Name: id}
	if t.PivotLow, err = parseMoney(id, d.PivotLow); err != nil {
		return nil, err
	}
	if t.PivotHigh, err = parseMoney(id, d.PivotHigh); err != nil {
		return nil, err
	}
	if t.RatioLow, err = parseRate(id, d.RatioLow); err != nil {
		return nil, err
	}
	if t.RatioMid, err = parseRate(id, d.RatioMid); err != nil {
		return nil, err
	}
	if t.Cap, err = parseMoney(id, d.Cap); err != nil {
		return nil, err
	}
	if t.Floor, err = parseMoney(id, d.Floor); err != nil {
		return nil, err
	}
	if d.PivotValue != nil {
		v, err := parseMoney(id, *d.PivotValue)
		if err != nil {
			return nil, err
		}
		t.PivotValue = &v
	}
	return generic.NewBenefitTier(t)
}

func parseMoney(id, s string) (generic.Money, error) {
	m, err := generic.ParseMoney(s)
	if err != nil {
		return 0, &generic.TableError{Table: id, Index: -1, Reason: fmt.Sprintf("bad amount %q", s), Kind: generic.ErrInvalidTable}
	}
	return m, nil
}

func parseRate(id, s string) (decimal.Decimal, error) {
	r, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &generic.TableError{Table: id, Index: -1, Reason: fmt.Sprintf("bad rate %q", s), Kind: generic.ErrInvalidTable}
	}
	return r, nil
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
