package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

const (
	regimeA generic.RegimeID = "full_balance"
	regimeB generic.RegimeID = "annual_draw"
)

// divergenceInput: identical monthly deposits, B draws 10% of its balance
// every twelfth month.
func divergenceInput(steps int) generic.ProjectionInput {
	deposit := generic.CompoundingDeposit{
		Contribution: money("240.00"),
		Yield:        generic.Rate("0.0025"),
	}
	return generic.ProjectionInput{
		Steps: steps,
		Unit:  generic.StepMonth,
		Regimes: []generic.Regime{
			{ID: regimeA, Deposit: deposit},
			{
				ID:      regimeB,
				Deposit: deposit,
				Withdrawal: generic.PeriodicWithdrawal{
					Every:  12,
					Offset: 11,
					Draw:   generic.FractionOf(generic.Rate("0.10")),
				},
			},
		},
	}
}

// =============================================================================
// DIVERGENCE
// =============================================================================

func TestProjection_RegimeDivergence(t *testing.T) {
	// GIVEN: two regimes with identical deposits, B withdrawing 10% yearly
	// WHEN: projected over 10 years
	// THEN: A's balance covers its termination cash, and B exposes no more
	//       than A at every step after B's first withdrawal
	result, err := generic.RunProjection(divergenceInput(120))
	require.NoError(t, err)
	require.Len(t, result.Steps, 120)
	assert.Equal(t, generic.StateTerminated, result.State)

	firstDraw := -1
	for _, step := range result.Steps {
		a, ok := step.Regime(regimeA)
		require.True(t, ok)
		b, ok := step.Regime(regimeB)
		require.True(t, ok)

		assert.GreaterOrEqual(t, int64(a.Balance), int64(a.TerminationCash), "step %d", step.Index)
		if b.Withdrawal > 0 && firstDraw < 0 {
			firstDraw = step.Index
		}
		if firstDraw >= 0 {
			assert.LessOrEqual(t, int64(b.TerminationCash), int64(a.TerminationCash), "step %d", step.Index)
		} else {
			assert.Equal(t, a.Balance, b.Balance, "identical before the first draw, step %d", step.Index)
		}
	}
	assert.Equal(t, 11, firstDraw)

	div := result.Divergence(regimeA, regimeB)
	require.Len(t, div, 120)
	assert.True(t, div[119] > div[11], "the gap widens as B keeps drawing")
}

func TestProjection_BalanceNeverNegative(t *testing.T) {
	// A draw larger than the balance is capped at the balance.
	input := generic.ProjectionInput{
		Steps: 6,
		Regimes: []generic.Regime{{
			ID:      "greedy",
			Deposit: generic.FixedDeposit{Each: money("100.00")},
			Withdrawal: generic.FlowFunc(func(int, generic.RegimeState) generic.Money {
				return money("1000.00")
			}),
		}},
	}

	result, err := generic.RunProjection(input)
	require.NoError(t, err)
	for _, step := range result.Steps {
		snap, _ := step.Regime("greedy")
		assert.Equal(t, generic.Money(0), snap.Balance)
		assert.Equal(t, money("100.00"), snap.Withdrawal)
	}
	final, ok := result.Final()
	require.True(t, ok)
	snap, _ := final.Regime("greedy")
	assert.Equal(t, money("600.00"), snap.TotalWithdrawn)
	assert.Equal(t, snap.TotalDeposited, snap.TotalWithdrawn)
}

func TestProjection_TerminationCashIsSeparateFromBalance(t *testing.T) {
	// Termination exposes only a 40% fine on the amount ever deposited.
	fine := func(_ int, st generic.RegimeState) generic.Money {
		return st.Deposited.MulRate(generic.Rate("0.4"))
	}
	input := generic.ProjectionInput{
		Steps: 3,
		Regimes: []generic.Regime{{
			ID:              "locked",
			Initial:         money("1000.00"),
			Deposit:         generic.FixedDeposit{Each: money("100.00")},
			TerminationCash: fine,
		}},
	}

	result, err := generic.RunProjection(input)
	require.NoError(t, err)

	final, _ := result.Final()
	snap, _ := final.Regime("locked")
	assert.Equal(t, money("1300.00"), snap.Balance)
	assert.Equal(t, money("120.00"), snap.TerminationCash)
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestProjection_Deterministic(t *testing.T) {
	first, err := generic.RunProjection(divergenceInput(60))
	require.NoError(t, err)
	second, err := generic.RunProjection(divergenceInput(60))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProjection_StateMachine(t *testing.T) {
	p, err := generic.NewProjection(divergenceInput(3))
	require.NoError(t, err)
	assert.Equal(t, generic.StateAccumulating, p.State())

	_, err = p.Step()
	require.NoError(t, err)
	assert.Equal(t, generic.StateAccumulating, p.State())

	p.Terminate()
	assert.Equal(t, generic.StateTerminated, p.State())

	_, err = p.Step()
	assert.ErrorIs(t, err, generic.ErrProjectionTerminated)
	assert.Len(t, p.Steps(), 1)
}

func TestRunProjectionUntil_StopsAtTerminationEvent(t *testing.T) {
	result, err := generic.RunProjectionUntil(divergenceInput(120), 23)
	require.NoError(t, err)

	assert.Len(t, result.Steps, 24)
	assert.Equal(t, generic.StateTerminated, result.State)
}

func TestProjection_Labels(t *testing.T) {
	input := divergenceInput(3)
	input.Start = generic.NewTimePoint(2025, time.November, 1)

	result, err := generic.RunProjection(input)
	require.NoError(t, err)
	assert.Equal(t, "2025-11", result.Steps[0].Label)
	assert.Equal(t, "2026-01", result.Steps[2].Label)

	unlabeled, err := generic.RunProjection(divergenceInput(2))
	require.NoError(t, err)
	assert.Equal(t, "month 2", unlabeled.Steps[1].Label)

	yearly := divergenceInput(2)
	yearly.Unit = generic.StepYear
	yearly.Start = generic.NewTimePoint(2025, time.January, 1)
	byYear, err := generic.RunProjection(yearly)
	require.NoError(t, err)
	assert.Equal(t, "2026", byYear.Steps[1].Label)
}

func TestNewProjection_RejectsInvalidInput(t *testing.T) {
	cases := map[string]func(*generic.ProjectionInput){
		"zero horizon":     func(in *generic.ProjectionInput) { in.Steps = 0 },
		"negative horizon": func(in *generic.ProjectionInput) { in.Steps = -5 },
		"bad unit":         func(in *generic.ProjectionInput) { in.Unit = "week" },
		"no regimes":       func(in *generic.ProjectionInput) { in.Regimes = nil },
		"duplicate ids": func(in *generic.ProjectionInput) {
			in.Regimes[1].ID = in.Regimes[0].ID
		},
		"negative initial": func(in *generic.ProjectionInput) {
			in.Regimes[0].Initial = money("-1.00")
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := divergenceInput(12)
			mutate(&input)
			_, err := generic.NewProjection(input)
			assert.ErrorIs(t, err, generic.ErrInvalidInput)
		})
	}
}

func TestProjection_NegativeFlowIsRejected(t *testing.T) {
	input := generic.ProjectionInput{
		Steps: 2,
		Regimes: []generic.Regime{{
			ID:      "broken",
			Deposit: generic.FixedDeposit{Each: money("-5.00")},
		}},
	}
	_, err := generic.RunProjection(input)
	assert.ErrorIs(t, err, generic.ErrInvalidInput)
}
