package labor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/labor"
)

func TestThirteenth_FullYear(t *testing.T) {
	res, err := labor.Thirteenth(labor.ThirteenthInput{Salary: money("3000.00"), Year: 2025}, book(t, 2025))
	require.NoError(t, err)

	assert.Equal(t, 12, res.Months)
	assert.Equal(t, "3000.00", res.Total.String())
	assert.Equal(t, "1500.00", res.FirstInstallment.String())
	assert.Equal(t, "253.41", res.SocialSecurity.String())
	assert.Equal(t, "23.83", res.IncomeTax.String())
	assert.Equal(t, "1222.76", res.SecondInstallment.String())
	assert.Equal(t, "2722.76", res.Net.String())
}

func TestThirteenth_AdmissionMidYear(t *testing.T) {
	// GIVEN: admission on March 20 (12 days in March, below the 15-day rule)
	res, err := labor.Thirteenth(labor.ThirteenthInput{
		Salary:    money("6000.00"),
		Year:      2025,
		Admission: date(t, "2025-03-20"),
	}, book(t, 2025))
	require.NoError(t, err)

	// THEN: April through December count
	assert.Equal(t, 9, res.Months)
	assert.Equal(t, "4500.00", res.Total.String())
	assert.Equal(t, "2250.00", res.FirstInstallment.String())
	assert.Equal(t, "439.60", res.SocialSecurity.String())
	assert.Equal(t, "238.10", res.IncomeTax.String())
	assert.Equal(t, "1572.30", res.SecondInstallment.String())
	assert.Equal(t, "3822.30", res.Net.String())
}

func TestThirteenth_MonthsByDates(t *testing.T) {
	b := book(t, 2025)
	cases := []struct {
		name        string
		admission   string
		termination string
		want        int
	}{
		{"admitted on the 18th", "2025-01-18", "", 11},
		{"admitted on the 17th", "2025-01-17", "", 12},
		{"terminated on the 14th", "", "2025-06-14", 5},
		{"terminated on the 15th", "", "2025-06-15", 6},
		{"admitted after the year", "2026-02-01", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := labor.ThirteenthInput{Salary: money("1200.00"), Year: 2025}
			if tc.admission != "" {
				in.Admission = date(t, tc.admission)
			}
			if tc.termination != "" {
				in.Termination = date(t, tc.termination)
			}
			res, err := labor.Thirteenth(in, b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Months)
		})
	}
}

func TestThirteenth_MonthsOverride(t *testing.T) {
	b := book(t, 2025)

	res, err := labor.Thirteenth(labor.ThirteenthInput{Salary: money("1200.00"), Months: 4}, b)
	require.NoError(t, err)
	assert.Equal(t, "400.00", res.Total.String())

	_, err = labor.Thirteenth(labor.ThirteenthInput{Salary: money("1200.00"), Months: 13}, b)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))

	_, err = labor.Thirteenth(labor.ThirteenthInput{Salary: money("1200.00")}, b)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
}
