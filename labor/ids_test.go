package labor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/labor"
)

func TestCheckRuleBook(t *testing.T) {
	assert.NoError(t, labor.CheckRuleBook(book(t, 2025)))

	// GIVEN: a book with only the INSS table
	partial := generic.NewRuleBook(2030, "partial")
	inss, err := book(t, 2025).BracketTable(labor.TableINSS)
	require.NoError(t, err)
	partial.SetBracketTable(labor.TableINSS, inss)

	// THEN: the error names what is missing
	err = labor.CheckRuleBook(partial)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrUnknownTable))
	assert.Contains(t, err.Error(), "brackets.irrf")
	assert.Contains(t, err.Error(), "rates.fgts_deposit_rate")
	assert.NotContains(t, err.Error(), "brackets.inss")

	assert.True(t, errors.Is(labor.CheckRuleBook(nil), generic.ErrUnknownYear))
}
