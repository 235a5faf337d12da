/*
projection.go - Multi-regime balance projection

PURPOSE:
  Simulates two or more competing financial regimes step by step over the
  same horizon and records, for every step, each regime's running balance
  and the cash it would expose on an involuntary termination at that step.

KEY INSIGHT:
  Balance and termination cash are different quantities. A regime that makes
  periodic partial withdrawals (FGTS birthday withdrawal) keeps a locked
  balance that keeps accruing, but on dismissal only exposes a penalty-based
  amount. The projector never conflates them: TerminationCash is computed by
  a separate function per regime.

STEP ORDER (fixed):
  1. Deposit   (may see the balance carried in, e.g. for yield)
  2. Withdraw  (may draw on this step's deposit; capped at the balance)
  3. Clamp     (balance never drops below zero)
  4. Snapshot  (immutable ProjectionStep appended to the result)

STATES:
  ACCUMULATING -> TERMINATED
  The projection terminates when the horizon is reached or when Terminate
  is called at a termination event.

DETERMINISM:
  No clock, no randomness. Start is only used to label steps.

EXAMPLE:
  result, err := generic.RunProjection(generic.ProjectionInput{
      Steps: 120,
      Unit:  generic.StepMonth,
      Start: generic.NewTimePoint(2025, time.January, 1),
      Regimes: []generic.Regime{
          {ID: "rescisao", Deposit: deposit},
          {ID: "aniversario", Deposit: deposit, Withdrawal: yearly, TerminationCash: fineOnly},
      },
  })

SEE ALSO:
  - accrual.go: FlowRule implementations
  - labor/fgts.go: FGTS regime comparison built on this projector
*/
package generic

// =============================================================================
// TYPES
// =============================================================================

type RegimeID string

// StepUnit is the length of one projection step.
type StepUnit string

const (
	StepMonth StepUnit = "month"
	StepYear  StepUnit = "year"
)

// ProjectorState is the lifecycle of a projection.
type ProjectorState string

const (
	StateAccumulating ProjectorState = "ACCUMULATING"
	StateTerminated   ProjectorState = "TERMINATED"
)

// RegimeState is the mutable accumulator of one regime inside one projection.
type RegimeState struct {
	Balance   Money
	Deposited Money
	Withdrawn Money
	Step      int
}

// TerminationCashFunc computes the cash a regime exposes on termination at
// the end of a step. Nil means "the running balance".
type TerminationCashFunc func(step int, state RegimeState) Money

// Regime describes one competing regime.
type Regime struct {
	ID              RegimeID
	Initial         Money
	Deposit         FlowRule
	Withdrawal      FlowRule
	TerminationCash TerminationCashFunc
}

// ProjectionInput contains all inputs for a projection.
type ProjectionInput struct {
	Regimes []Regime
	Steps   int
	Unit    StepUnit

	// Start labels the first step. Zero means "month 1", "month 2", ...
	Start TimePoint
}

// RegimeSnapshot is one regime's figures at the end of a step.
type RegimeSnapshot struct {
	Regime          RegimeID `json:"regime"`
	Balance         Money    `json:"balance"`
	Deposit         Money    `json:"deposit"`
	Withdrawal      Money    `json:"withdrawal"`
	TotalDeposited  Money    `json:"total_deposited"`
	TotalWithdrawn  Money    `json:"total_withdrawn"`
	TerminationCash Money    `json:"termination_cash"`
}

// ProjectionStep is an immutable snapshot of all regimes after one step.
type ProjectionStep struct {
	Index   int              `json:"index"`
	Label   string           `json:"label"`
	Regimes []RegimeSnapshot `json:"regimes"`
}

// Regime returns the snapshot for id.
func (s ProjectionStep) Regime(id RegimeID) (RegimeSnapshot, bool) {
	for _, r := range s.Regimes {
		if r.Regime == id {
			return r, true
		}
	}
	return RegimeSnapshot{}, false
}

// =============================================================================
// PROJECTION - Stateful run over the horizon
// =============================================================================

// Projection is one run. It owns its regime states; nothing is shared
// across runs or regimes.
type Projection struct {
	input  ProjectionInput
	states []RegimeState
	steps  []ProjectionStep
	state  ProjectorState
}

// NewProjection validates the input and returns a projection in ACCUMULATING.
func NewProjection(input ProjectionInput) (*Projection, error) {
	if input.Steps <= 0 {
		return nil, &InputError{Field: "horizon", Value: input.Steps, Reason: "must be positive"}
	}
	if input.Unit == "" {
		input.Unit = StepMonth
	}
	if input.Unit != StepMonth && input.Unit != StepYear {
		return nil, &InputError{Field: "unit", Value: input.Unit, Reason: "must be month or year"}
	}
	if len(input.Regimes) == 0 {
		return nil, &InputError{Field: "regimes", Value: 0, Reason: "at least one regime required"}
	}

	seen := make(map[RegimeID]bool, len(input.Regimes))
	states := make([]RegimeState, len(input.Regimes))
	for i, r := range input.Regimes {
		if r.ID == "" || seen[r.ID] {
			return nil, &InputError{Field: "regime_id", Value: r.ID, Reason: "must be unique and non-empty"}
		}
		seen[r.ID] = true
		if err := RequireNonNegative("initial_balance", r.Initial); err != nil {
			return nil, err
		}
		states[i] = RegimeState{Balance: r.Initial}
	}

	return &Projection{
		input:  input,
		states: states,
		steps:  make([]ProjectionStep, 0, input.Steps),
		state:  StateAccumulating,
	}, nil
}

func (p *Projection) State() ProjectorState { return p.state }

// Steps returns the snapshots recorded so far.
func (p *Projection) Steps() []ProjectionStep {
	out := make([]ProjectionStep, len(p.steps))
	copy(out, p.steps)
	return out
}

// Step advances every regime by one step.
func (p *Projection) Step() (ProjectionStep, error) {
	if p.state == StateTerminated {
		return ProjectionStep{}, ErrProjectionTerminated
	}

	idx := len(p.steps)
	snap := ProjectionStep{
		Index:   idx,
		Label:   stepLabel(p.input.Start, p.input.Unit, idx),
		Regimes: make([]RegimeSnapshot, len(p.input.Regimes)),
	}

	for i, r := range p.input.Regimes {
		st := &p.states[i]
		st.Step = idx

		var deposit Money
		if r.Deposit != nil {
			deposit = r.Deposit.Amount(idx, *st)
		}
		if deposit < 0 {
			return ProjectionStep{}, &InputError{Field: "deposit", Value: deposit.String(), Reason: "deposit rule returned a negative amount"}
		}
		st.Balance += deposit
		st.Deposited += deposit

		var withdrawal Money
		if r.Withdrawal != nil {
			withdrawal = r.Withdrawal.Amount(idx, *st)
		}
		if withdrawal < 0 {
			return ProjectionStep{}, &InputError{Field: "withdrawal", Value: withdrawal.String(), Reason: "withdrawal rule returned a negative amount"}
		}
		withdrawal = withdrawal.Min(st.Balance)
		st.Balance = (st.Balance - withdrawal).ClampZero()
		st.Withdrawn += withdrawal

		cash := st.Balance
		if r.TerminationCash != nil {
			cash = r.TerminationCash(idx, *st).ClampZero()
		}

		snap.Regimes[i] = RegimeSnapshot{
			Regime:          r.ID,
			Balance:         st.Balance,
			Deposit:         deposit,
			Withdrawal:      withdrawal,
			TotalDeposited:  st.Deposited,
			TotalWithdrawn:  st.Withdrawn,
			TerminationCash: cash,
		}
	}

	p.steps = append(p.steps, snap)
	if len(p.steps) >= p.input.Steps {
		p.state = StateTerminated
	}
	return snap, nil
}

// Terminate ends the projection at the current step (termination event).
func (p *Projection) Terminate() {
	p.state = StateTerminated
}

// Result returns the recorded steps and the final state.
func (p *Projection) Result() *ProjectionResult {
	return &ProjectionResult{Steps: p.Steps(), State: p.state}
}

// =============================================================================
// RESULT
// =============================================================================

// ProjectionResult is the full, read-only projection.
type ProjectionResult struct {
	Steps []ProjectionStep `json:"steps"`
	State ProjectorState   `json:"state"`
}

// Final returns the last step.
func (r *ProjectionResult) Final() (ProjectionStep, bool) {
	if len(r.Steps) == 0 {
		return ProjectionStep{}, false
	}
	return r.Steps[len(r.Steps)-1], true
}

// Divergence returns, per step, terminationCash(a) - terminationCash(b).
func (r *ProjectionResult) Divergence(a, b RegimeID) []Money {
	out := make([]Money, 0, len(r.Steps))
	for _, s := range r.Steps {
		ra, _ := s.Regime(a)
		rb, _ := s.Regime(b)
		out = append(out, ra.TerminationCash-rb.TerminationCash)
	}
	return out
}

// RunProjection runs the full horizon, or up to terminateAt (inclusive,
// zero-based) when terminateAt >= 0.
func RunProjection(input ProjectionInput) (*ProjectionResult, error) {
	return RunProjectionUntil(input, -1)
}

// RunProjectionUntil is RunProjection with a termination event at step terminateAt.
func RunProjectionUntil(input ProjectionInput, terminateAt int) (*ProjectionResult, error) {
	p, err := NewProjection(input)
	if err != nil {
		return nil, err
	}
	for p.State() == StateAccumulating {
		s, err := p.Step()
		if err != nil {
			return nil, err
		}
		if terminateAt >= 0 && s.Index >= terminateAt {
			p.Terminate()
		}
	}
	return p.Result(), nil
}
