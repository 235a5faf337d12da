package labor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/labor"
)

func TestMEILimit(t *testing.T) {
	b := book(t, 2025)

	full, err := labor.MEILimit(12, b)
	require.NoError(t, err)
	assert.Equal(t, "81000.00", full.String())

	partial, err := labor.MEILimit(9, b)
	require.NoError(t, err)
	assert.Equal(t, "60750.00", partial.String())

	_, err = labor.MEILimit(13, b)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
}

func TestActiveMonths(t *testing.T) {
	assert.Equal(t, 9, labor.ActiveMonths(date(t, "2025-04-10"), 2025))
	assert.Equal(t, 1, labor.ActiveMonths(date(t, "2025-12-31"), 2025))
	assert.Equal(t, 12, labor.ActiveMonths(date(t, "2019-07-01"), 2025))
	assert.Equal(t, 0, labor.ActiveMonths(date(t, "2026-01-01"), 2025))
}

func TestCheckMEIRevenue(t *testing.T) {
	b := book(t, 2025)
	cases := []struct {
		revenue string
		status  labor.MEIStatus
		excess  string
	}{
		{"60000.00", labor.MEIWithinLimit, "0.00"},
		{"60750.00", labor.MEIWithinLimit, "0.00"},
		{"70000.00", labor.MEIExcessTolerated, "9250.00"},
		{"72900.00", labor.MEIExcessTolerated, "12150.00"},
		{"80000.00", labor.MEIExcluded, "19250.00"},
	}
	for _, tc := range cases {
		res, err := labor.CheckMEIRevenue(money(tc.revenue), 9, b)
		require.NoError(t, err)
		assert.Equal(t, tc.status, res.Status, tc.revenue)
		assert.Equal(t, tc.excess, res.Excess.String(), tc.revenue)
		assert.Equal(t, "60750.00", res.Limit.String())
	}

	_, err := labor.CheckMEIRevenue(money("-1"), 12, b)
	assert.True(t, errors.Is(err, generic.ErrInvalidInput))
}
