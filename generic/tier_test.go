package generic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
)

func parcel2024(t *testing.T) *generic.BenefitTier {
	t.Helper()
	pivot := money("1633.10")
	tier, err := generic.NewBenefitTier(generic.BenefitTier{
		Name:       "unemployment_parcel",
		PivotLow:   money("2041.39"),
		PivotHigh:  money("3402.65"),
		RatioLow:   generic.Rate("0.8"),
		RatioMid:   generic.Rate("0.5"),
		PivotValue: &pivot,
		Cap:        money("2313.74"),
		Floor:      money("1412.00"),
	})
	require.NoError(t, err)
	return tier
}

func TestBenefitTier_Segments(t *testing.T) {
	tier := parcel2024(t)
	cases := []struct {
		base    string
		segment int
		want    string
	}{
		{"1000.00", 0, "1412.00"}, // 800.00 raised to the floor
		{"2000.00", 0, "1600.00"},
		{"2041.39", 0, "1633.11"},
		{"2500.00", 1, "1862.41"}, // 1633.10 + 458.61*0.5 = 1862.405
		{"3402.65", 1, "2313.73"},
		{"5000.00", 2, "2313.74"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.segment, tier.Segment(money(tc.base)), "base %s", tc.base)
		got, err := tier.Compute(money(tc.base))
		require.NoError(t, err)
		assert.Equal(t, money(tc.want), got, "base %s", tc.base)
	}
}

func TestBenefitTier_AlwaysWithinFloorAndCap(t *testing.T) {
	tier := parcel2024(t)
	for base := generic.Money(0); base <= money("10000.00"); base += 1999 {
		got, err := tier.Compute(base)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, int64(got), int64(tier.Floor), "base %s", base)
		assert.LessOrEqual(t, int64(got), int64(tier.Cap), "base %s", base)
	}
}

func TestBenefitTier_DefaultPivotValue(t *testing.T) {
	// Without a published pivot value the middle segment starts at PivotLow*RatioLow.
	tier := generic.MustBenefitTier(generic.BenefitTier{
		Name:      "plain",
		PivotLow:  money("1000.00"),
		PivotHigh: money("2000.00"),
		RatioLow:  generic.Rate("0.8"),
		RatioMid:  generic.Rate("0.5"),
		Cap:       money("5000.00"),
	})

	got, err := tier.Compute(money("1200.00"))
	require.NoError(t, err)
	assert.Equal(t, money("900.00"), got)
}

func TestBenefitTier_Validation(t *testing.T) {
	base := generic.BenefitTier{
		Name:      "t",
		PivotLow:  money("1000.00"),
		PivotHigh: money("2000.00"),
		RatioLow:  generic.Rate("0.8"),
		RatioMid:  generic.Rate("0.5"),
		Cap:       money("3000.00"),
		Floor:     money("500.00"),
	}

	inverted := base
	inverted.PivotHigh = base.PivotLow
	_, err := generic.NewBenefitTier(inverted)
	assert.ErrorIs(t, err, generic.ErrInvalidTier)

	floorAboveCap := base
	floorAboveCap.Floor = money("4000.00")
	_, err = generic.NewBenefitTier(floorAboveCap)
	assert.ErrorIs(t, err, generic.ErrInvalidTier)

	negativeRatio := base
	negativeRatio.RatioMid = generic.Rate("-0.1")
	_, err = generic.NewBenefitTier(negativeRatio)
	assert.ErrorIs(t, err, generic.ErrInvalidTier)

	tier := generic.MustBenefitTier(base)
	_, err = tier.Compute(money("-1.00"))
	assert.ErrorIs(t, err, generic.ErrInvalidInput)
}
