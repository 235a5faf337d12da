package labor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/factory"
	"github.com/warp/labor-engine/generic"
)

var registry = factory.MustDefault()

func book(t *testing.T, year int) *generic.RuleBook {
	t.Helper()
	b, err := registry.ForYear(year)
	require.NoError(t, err)
	return b
}

func money(s string) generic.Money {
	return generic.MustParseMoney(s)
}

func date(t *testing.T, s string) generic.TimePoint {
	t.Helper()
	tp, err := generic.ParseDate(s)
	require.NoError(t, err)
	return tp
}
