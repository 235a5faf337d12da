package factory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
)

const minimalYAML = `
year: 2030
description: "minimal"
brackets:
  flat:
    - {lower: "0", upper: "1000.00", rate: "0.10"}
    - {lower: "1000.00", rate: "0.20"}
entitlements:
  days:
    - {min: 0, max: 9, value: 30}
    - {min: 10, value: 0}
tiered:
  parcels:
    - - {min: 0, max: 11, value: 0}
      - {min: 12, value: 4}
    - - {min: 0, value: 3}
benefits:
  parcel:
    pivot_low: "1000.00"
    pivot_high: "2000.00"
    ratio_low: "0.8"
    ratio_mid: "0.5"
    cap: "1500.00"
    floor: "500.00"
amounts:
  minimum_wage: "1000.00"
rates:
  fine: "0.40"
`

func TestParse_YAML(t *testing.T) {
	f := NewRuleBookFactory()

	book, err := f.Parse([]byte(minimalYAML), generic.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 2030, book.Year)
	assert.Equal(t, "minimal", book.Description)

	tax, err := book.Tax("flat", generic.MustParseMoney("1500.00"))
	require.NoError(t, err)
	assert.Equal(t, "200.00", tax.String())

	days, err := book.Entitlement("days", 12)
	require.NoError(t, err)
	assert.Equal(t, 0, days)

	n, err := book.TieredEntitlement("parcels", 5, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	benefit, err := book.Benefit("parcel", generic.MustParseMoney("1000.00"))
	require.NoError(t, err)
	assert.Equal(t, "800.00", benefit.String())

	rate, err := book.Rate("fine")
	require.NoError(t, err)
	assert.Equal(t, "0.4", rate.String())
}

func TestParse_JSON(t *testing.T) {
	doc := `{
		"year": 2031,
		"brackets": {"flat": [{"lower": "0", "rate": "0.05"}]},
		"amounts": {"minimum_wage": "1600.00"}
	}`

	book, err := NewRuleBookFactory().Parse([]byte(doc), generic.FormatJSON)
	require.NoError(t, err)

	wage, err := book.Amount("minimum_wage")
	require.NoError(t, err)
	assert.Equal(t, "1600.00", wage.String())
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	f := NewRuleBookFactory()

	_, err := f.Parse([]byte("year: 2030\nbrakets: {}\n"), generic.FormatYAML)
	assert.Error(t, err)

	_, err = f.Parse([]byte(`{"year": 2030, "ratez": {}}`), generic.FormatJSON)
	assert.Error(t, err)
}

func TestParse_MalformedTables(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"gap between brackets", `
year: 2030
brackets:
  t:
    - {lower: "0", upper: "100", rate: "0.1"}
    - {lower: "200", rate: "0.2"}
`},
		{"bad amount", `
year: 2030
amounts:
  x: "12,3,4"
`},
		{"bad rate", `
year: 2030
rates:
  x: "abc"
`},
		{"overlapping steps", `
year: 2030
entitlements:
  d:
    - {min: 0, max: 10, value: 30}
    - {min: 5, value: 0}
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRuleBookFactory().Parse([]byte(tc.doc), generic.FormatYAML)
			require.Error(t, err)
			assert.True(t, generic.IsClientError(err), "got %v", err)
		})
	}
}

func TestParse_MissingYear(t *testing.T) {
	_, err := NewRuleBookFactory().Parse([]byte(`description: "x"`), generic.FormatYAML)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := NewRuleBookFactory().Parse([]byte(minimalYAML), "toml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
}

func TestBuild_RunsValidate(t *testing.T) {
	// GIVEN: a factory that insists on a "required" rate
	f := NewRuleBookFactory()
	f.Validate = func(b *generic.RuleBook) error {
		_, err := b.Rate("required")
		return err
	}

	// WHEN: building a document without it
	_, err := f.Parse([]byte(minimalYAML), generic.FormatYAML)

	// THEN: the validation error surfaces
	require.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrUnknownTable))
}
