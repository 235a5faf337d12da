package generic

import "github.com/shopspring/decimal"

// =============================================================================
// FLOW RULE - Interface for how a regime's balance moves each step
// =============================================================================

// FlowRule returns the amount that flows into (deposit) or out of
// (withdrawal) a regime at a step, given the state before that flow.
// Implementations must be pure: same step and state, same answer.
type FlowRule interface {
	Amount(step int, state RegimeState) Money
}

// FlowFunc adapts a function to FlowRule.
type FlowFunc func(step int, state RegimeState) Money

func (f FlowFunc) Amount(step int, state RegimeState) Money { return f(step, state) }

// =============================================================================
// FLOW RULE IMPLEMENTATIONS
// =============================================================================

// FixedDeposit adds the same amount every step.
type FixedDeposit struct {
	Each Money
}

func (d FixedDeposit) Amount(int, RegimeState) Money { return d.Each }

// CompoundingDeposit adds Contribution plus Yield on the balance carried in.
// FGTS deposits are 8% of salary plus the fund's monthly remuneration.
type CompoundingDeposit struct {
	Contribution Money
	Yield        decimal.Decimal // per step
}

func (d CompoundingDeposit) Amount(_ int, state RegimeState) Money {
	return d.Contribution + state.Balance.MulRate(d.Yield)
}

// PeriodicWithdrawal withdraws every Every steps, starting at step Offset.
// The amount is produced by Draw from the state at that moment.
type PeriodicWithdrawal struct {
	Every  int
	Offset int
	Draw   func(state RegimeState) Money
}

func (w PeriodicWithdrawal) Amount(step int, state RegimeState) Money {
	if w.Every <= 0 || step < w.Offset || (step-w.Offset)%w.Every != 0 {
		return 0
	}
	return w.Draw(state)
}

// FractionOf returns a withdrawal amount function taking a fixed fraction of the balance.
func FractionOf(fraction decimal.Decimal) func(RegimeState) Money {
	return func(state RegimeState) Money { return state.Balance.MulRate(fraction) }
}

// ProgressiveOf returns a withdrawal amount function evaluating a bracket table on the balance.
func ProgressiveOf(table *BracketTable) func(RegimeState) Money {
	return func(state RegimeState) Money { return table.Evaluate(state.Balance) }
}
