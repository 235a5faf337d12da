package labor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/labor"
)

func TestUnemployment_MiddleSegment(t *testing.T) {
	res, err := labor.Unemployment(labor.UnemploymentInput{
		LastSalaries:   []generic.Money{money("2500.00"), money("3000.00"), money("3500.00")},
		MonthsWorked:   20,
		RequestOrdinal: 1,
	}, book(t, 2025))
	require.NoError(t, err)

	assert.True(t, res.Eligible)
	assert.Equal(t, "3000.00", res.AverageSalary.String())
	assert.Equal(t, 4, res.Installments)
	assert.Equal(t, "2141.63", res.ParcelValue.String())
	assert.Equal(t, "8566.52", res.Total.String())
}

func TestUnemployment_FloorAndCap(t *testing.T) {
	b := book(t, 2025)

	low, err := labor.Unemployment(labor.UnemploymentInput{
		LastSalaries: []generic.Money{money("1200.00")}, MonthsWorked: 30, RequestOrdinal: 1,
	}, b)
	require.NoError(t, err)
	assert.Equal(t, "1518.00", low.ParcelValue.String())
	assert.Equal(t, 5, low.Installments)

	high, err := labor.Unemployment(labor.UnemploymentInput{
		LastSalaries: []generic.Money{money("9000.00")}, MonthsWorked: 30, RequestOrdinal: 1,
	}, b)
	require.NoError(t, err)
	assert.Equal(t, "2424.11", high.ParcelValue.String())
}

func TestUnemployment_RequestOrdinal(t *testing.T) {
	b := book(t, 2025)
	salaries := []generic.Money{money("2000.00")}

	first, err := labor.Unemployment(labor.UnemploymentInput{LastSalaries: salaries, MonthsWorked: 10, RequestOrdinal: 1}, b)
	require.NoError(t, err)
	assert.False(t, first.Eligible)
	assert.Zero(t, first.Installments)
	assert.True(t, first.Total.IsZero())

	second, err := labor.Unemployment(labor.UnemploymentInput{LastSalaries: salaries, MonthsWorked: 10, RequestOrdinal: 2}, b)
	require.NoError(t, err)
	assert.Equal(t, 3, second.Installments)

	fifth, err := labor.Unemployment(labor.UnemploymentInput{LastSalaries: salaries, MonthsWorked: 7, RequestOrdinal: 5}, b)
	require.NoError(t, err)
	assert.Equal(t, 3, fifth.Installments)

	_, err = labor.Unemployment(labor.UnemploymentInput{LastSalaries: salaries, MonthsWorked: 10, RequestOrdinal: 0}, b)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
}

func TestAverageSalary(t *testing.T) {
	avg, err := labor.AverageSalary([]generic.Money{money("1000"), money("2000"), money("3000"), money("4000")}, 3)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", avg.String())

	_, err = labor.AverageSalary(nil, 3)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))

	_, err = labor.AverageSalary([]generic.Money{money("-10")}, 3)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
}

func TestMonthsWorked(t *testing.T) {
	n, err := labor.MonthsWorked(date(t, "2023-01-10"), date(t, "2024-06-09"))
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	_, err = labor.MonthsWorked(date(t, "2024-06-09"), date(t, "2023-01-10"))
	assert.Error(t, err)
}
