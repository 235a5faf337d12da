package generic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(s string) generic.Money { return generic.MustParseMoney(s) }

// inss2024 is the employee social-security table in force from January 2024.
func inss2024(t *testing.T) *generic.BracketTable {
	t.Helper()
	table, err := generic.NewBracketTable("inss", []generic.Bracket{
		{Lower: 0, Upper: generic.Upper(money("1412.00")), Rate: generic.Rate("0.075")},
		{Lower: money("1412.00"), Upper: generic.Upper(money("2666.68")), Rate: generic.Rate("0.09")},
		{Lower: money("2666.68"), Upper: generic.Upper(money("4000.03")), Rate: generic.Rate("0.12")},
		{Lower: money("4000.03"), Upper: generic.Upper(money("7786.02")), Rate: generic.Rate("0.14")},
		{Lower: money("7786.02"), Rate: generic.Rate("0")},
	})
	require.NoError(t, err)
	return table
}

// =============================================================================
// EVALUATION
// =============================================================================

func TestBracketTable_ProgressiveSum(t *testing.T) {
	// GIVEN: 2024 INSS table (7.5 / 9 / 12 / 14 %)
	// WHEN: base is 3000.00
	// THEN: 1412*7.5% + 1254.68*9% + 333.32*12% = 258.8196 -> 258.82
	table := inss2024(t)

	got := table.Evaluate(money("3000.00"))

	assert.Equal(t, money("258.82"), got)
	assert.NotEqual(t, money("420.00"), got, "must not apply the top rate to the whole base")
}

func TestBracketTable_KnownValues(t *testing.T) {
	table := inss2024(t)
	cases := []struct {
		base string
		want string
	}{
		{"0.00", "0.00"},
		{"1412.00", "105.90"},
		{"2666.68", "218.82"},
		{"4000.03", "378.82"},
		{"7786.02", "908.86"},
		{"20000.00", "908.86"}, // above the ceiling the last bracket adds nothing
	}
	for _, tc := range cases {
		assert.Equal(t, money(tc.want), table.Evaluate(money(tc.base)), "base %s", tc.base)
	}
}

func TestBracketTable_NonPositiveBase(t *testing.T) {
	table := inss2024(t)
	assert.Equal(t, generic.Money(0), table.Evaluate(0))
	assert.Equal(t, generic.Money(0), table.Evaluate(money("-10.00")))
}

func TestBracketTable_Monotonic(t *testing.T) {
	// Progressivity: a larger base never owes less.
	table := inss2024(t)
	prev := table.Evaluate(0)
	for base := generic.Money(0); base <= money("9000.00"); base += 137 {
		cur := table.Evaluate(base)
		assert.GreaterOrEqual(t, int64(cur), int64(prev), "base %s", base)
		prev = cur
	}
}

func TestBracketTable_ContinuousAtBoundaries(t *testing.T) {
	// One cent above a boundary owes at most the new marginal rate on that cent,
	// within one cent of rounding.
	table := inss2024(t)
	for _, b := range table.Brackets() {
		if b.Upper == nil {
			continue
		}
		below := table.Evaluate(*b.Upper)
		above := table.Evaluate(*b.Upper + 1)
		assert.LessOrEqual(t, int64(above-below), int64(1), "jump at %s", *b.Upper)
		assert.GreaterOrEqual(t, int64(above-below), int64(0), "drop at %s", *b.Upper)
	}
}

func TestBracketTable_CumulativeBase(t *testing.T) {
	table := inss2024(t)
	rows := table.Brackets()
	assert.True(t, rows[0].CumulativeBase.IsZero())
	assert.Equal(t, "105.9", rows[1].CumulativeBase.String())
	// The cumulative base of a bracket equals the amount owed at its lower bound.
	for _, b := range rows {
		assert.Equal(t, generic.NewMoneyFromDecimal(b.CumulativeBase), table.Evaluate(b.Lower))
	}
}

func TestBracketTable_MarginalAndEffectiveRate(t *testing.T) {
	table := inss2024(t)
	assert.Equal(t, "0.12", table.MarginalRate(money("3000.00")).String())
	assert.Equal(t, "0.09", table.MarginalRate(money("1412.00")).String())
	assert.Equal(t, "0", table.MarginalRate(money("10000.00")).String())
	assert.Equal(t, "0.086273", table.EffectiveRate(money("3000.00")).String())

	idx, _ := table.Bracket(money("1412.00"))
	assert.Equal(t, 0, idx, "upper bound belongs to the lower bracket")
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestNewBracketTable_RejectsMalformedTables(t *testing.T) {
	cases := map[string][]generic.Bracket{
		"empty": {},
		"not from zero": {
			{Lower: money("1.00"), Rate: generic.Rate("0.1")},
		},
		"gap": {
			{Lower: 0, Upper: generic.Upper(money("100.00")), Rate: generic.Rate("0.1")},
			{Lower: money("150.00"), Rate: generic.Rate("0.2")},
		},
		"overlap": {
			{Lower: 0, Upper: generic.Upper(money("100.00")), Rate: generic.Rate("0.1")},
			{Lower: money("50.00"), Rate: generic.Rate("0.2")},
		},
		"bounded last": {
			{Lower: 0, Upper: generic.Upper(money("100.00")), Rate: generic.Rate("0.1")},
		},
		"unbounded middle": {
			{Lower: 0, Rate: generic.Rate("0.1")},
			{Lower: money("100.00"), Rate: generic.Rate("0.2")},
		},
		"non increasing": {
			{Lower: 0, Upper: generic.Upper(0), Rate: generic.Rate("0.1")},
			{Lower: 0, Rate: generic.Rate("0.2")},
		},
		"rate above one": {
			{Lower: 0, Rate: generic.Rate("1.5")},
		},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := generic.NewBracketTable("broken", rows)
			require.Error(t, err)
			assert.ErrorIs(t, err, generic.ErrInvalidTable)
			var te *generic.TableError
			assert.ErrorAs(t, err, &te)
			assert.Equal(t, "broken", te.Table)
		})
	}
}

func TestBracketTable_IsolatedFromCallerSlice(t *testing.T) {
	rows := []generic.Bracket{
		{Lower: 0, Upper: generic.Upper(money("100.00")), Rate: generic.Rate("0.1")},
		{Lower: money("100.00"), Rate: generic.Rate("0.2")},
	}
	table, err := generic.NewBracketTable("copy", rows)
	require.NoError(t, err)

	rows[0].Rate = generic.Rate("0.9")
	assert.Equal(t, money("10.00"), table.Evaluate(money("100.00")))
}
