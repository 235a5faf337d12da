package labor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/labor"
)

func TestVacation_WithAbono(t *testing.T) {
	// GIVEN: 3000 salary plus 600 average variable pay, selling 10 days
	res, err := labor.Vacation(labor.VacationInput{
		Salary:          money("3000.00"),
		AverageVariable: money("600.00"),
		SellDays:        10,
	}, book(t, 2025))
	require.NoError(t, err)

	// THEN: 20 days are taken, 10 sold, and only the taken days are taxed
	assert.Equal(t, 30, res.EntitledDays)
	assert.Equal(t, 20, res.DaysTaken)
	assert.Equal(t, "2400.00", res.VacationPay.String())
	assert.Equal(t, "800.00", res.OneThird.String())
	assert.Equal(t, "1200.00", res.Abono.String())
	assert.Equal(t, "400.00", res.AbonoOneThird.String())
	assert.Equal(t, "4800.00", res.Gross.String())
	assert.Equal(t, "277.41", res.SocialSecurity.String())
	assert.Equal(t, "44.23", res.IncomeTax.String())
	assert.Equal(t, "4478.36", res.Net.String())
}

func TestVacation_AbsencesReduceDays(t *testing.T) {
	res, err := labor.Vacation(labor.VacationInput{Salary: money("3000.00"), Absences: 20}, book(t, 2025))
	require.NoError(t, err)

	assert.Equal(t, 18, res.EntitledDays)
	assert.Equal(t, "1800.00", res.VacationPay.String())
	assert.Equal(t, "600.00", res.OneThird.String())
	assert.Equal(t, "193.23", res.SocialSecurity.String())
	assert.Equal(t, "2206.77", res.Net.String())
}

func TestVacation_InvalidInput(t *testing.T) {
	b := book(t, 2025)
	cases := []struct {
		name  string
		in    labor.VacationInput
		field string
	}{
		{"sell more than a third", labor.VacationInput{Salary: money("3000"), SellDays: 11}, "sell_days"},
		{"taken plus sold above entitlement", labor.VacationInput{Salary: money("3000"), DaysTaken: 25, SellDays: 10}, "days_taken"},
		{"negative salary", labor.VacationInput{Salary: money("-1")}, "salary"},
		{"negative absences", labor.VacationInput{Salary: money("3000"), Absences: -2}, labor.TableVacationAbsences},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := labor.Vacation(tc.in, b)
			var inErr *generic.InputError
			require.True(t, errors.As(err, &inErr), "got %v", err)
			assert.Equal(t, tc.field, inErr.Field)
		})
	}
}

func TestProportionalVacation(t *testing.T) {
	b := book(t, 2025)

	got, err := labor.ProportionalVacation(money("3000.00"), 6, 0, b)
	require.NoError(t, err)
	assert.Equal(t, "2000.00", got.String())

	got, err = labor.ProportionalVacation(money("3000.00"), 5, 0, b)
	require.NoError(t, err)
	assert.Equal(t, "1666.67", got.String())

	got, err = labor.ProportionalVacation(money("3000.00"), 12, 40, b)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = labor.ProportionalVacation(money("3000.00"), 13, 0, b)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
}
