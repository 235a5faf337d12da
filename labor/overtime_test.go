package labor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/labor"
)

func TestOvertime(t *testing.T) {
	b := book(t, 2025)

	// GIVEN: 2200 over 220 hours is 10 per hour
	res, err := labor.Overtime(labor.OvertimeInput{
		Salary:       money("2200.00"),
		Hours:        decimal.NewFromInt(10),
		RestDayHours: decimal.NewFromInt(4),
	}, b)
	require.NoError(t, err)

	assert.Equal(t, "10.00", res.HourlyWage.String())
	assert.Equal(t, "150.00", res.Amount.String())
	assert.Equal(t, "80.00", res.RestDayAmount.String())
	assert.Equal(t, "230.00", res.Total.String())
}

func TestOvertime_Overrides(t *testing.T) {
	b := book(t, 2025)
	rate := decimal.RequireFromString("0.7")

	res, err := labor.Overtime(labor.OvertimeInput{
		Salary:       money("2000.00"),
		MonthlyHours: 200,
		Hours:        decimal.NewFromInt(10),
		Rate:         &rate,
	}, b)
	require.NoError(t, err)
	assert.Equal(t, "170.00", res.Amount.String())

	negative := decimal.RequireFromString("-0.1")
	_, err = labor.Overtime(labor.OvertimeInput{Salary: money("2000.00"), Rate: &negative}, b)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))

	_, err = labor.Overtime(labor.OvertimeInput{Salary: money("2000.00"), Hours: decimal.NewFromInt(-1)}, b)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))

	_, err = labor.Overtime(labor.OvertimeInput{Salary: money("2000.00"), MonthlyHours: -5}, b)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
}

func TestNightDifferential(t *testing.T) {
	b := book(t, 2025)

	// GIVEN: 7 clock hours, which are 8 reduced night hours
	res, err := labor.NightDifferential(labor.NightInput{
		Salary:     money("2200.00"),
		ClockHours: decimal.NewFromInt(7),
		Reduced:    true,
	}, b)
	require.NoError(t, err)

	assert.True(t, res.PaidHours.Equal(decimal.NewFromInt(8)), res.PaidHours.String())
	assert.Equal(t, "16.00", res.Differential.String())

	plain, err := labor.NightDifferential(labor.NightInput{
		Salary:     money("2200.00"),
		ClockHours: decimal.NewFromInt(7),
	}, b)
	require.NoError(t, err)
	assert.Equal(t, "14.00", plain.Differential.String())
}

func TestDSRReflex_Standard(t *testing.T) {
	res, err := labor.DSRReflex(labor.DSRInput{Variable: money("500.00")})
	require.NoError(t, err)
	assert.Equal(t, labor.DSRStandard, res.Mode)
	assert.Equal(t, 25, res.Workdays)
	assert.Equal(t, 5, res.RestDays)
	assert.Equal(t, "100.00", res.Reflex.String())

	res, err = labor.DSRReflex(labor.DSRInput{Variable: money("500.00"), Workdays: 26, RestDays: 4})
	require.NoError(t, err)
	assert.Equal(t, "76.92", res.Reflex.String())
}

func TestDSRReflex_Precise(t *testing.T) {
	// GIVEN: May 2025 has four Sundays plus Labour Day
	res, err := labor.DSRReflex(labor.DSRInput{
		Variable: money("500.00"),
		Mode:     labor.DSRPrecise,
		Year:     2025,
		Month:    time.May,
		Calendar: generic.NationalHolidays(),
	})
	require.NoError(t, err)
	assert.Equal(t, 26, res.Workdays)
	assert.Equal(t, 5, res.RestDays)
	assert.Equal(t, "96.15", res.Reflex.String())

	// Without a calendar only Sundays rest.
	res, err = labor.DSRReflex(labor.DSRInput{
		Variable: money("500.00"),
		Mode:     labor.DSRPrecise,
		Year:     2025,
		Month:    time.February,
	})
	require.NoError(t, err)
	assert.Equal(t, 24, res.Workdays)
	assert.Equal(t, 4, res.RestDays)
	assert.Equal(t, "83.33", res.Reflex.String())
}

func TestDSRReflex_InvalidInput(t *testing.T) {
	_, err := labor.DSRReflex(labor.DSRInput{Variable: money("1"), Mode: "weekly"})
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))

	_, err = labor.DSRReflex(labor.DSRInput{Variable: money("1"), Mode: labor.DSRPrecise})
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))

	_, err = labor.DSRReflex(labor.DSRInput{Variable: money("1"), RestDays: 4})
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
}
