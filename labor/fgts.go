/*
fgts.go - FGTS withdrawal-regime comparison

PURPOSE:
  An employee chooses between two FGTS regimes:

  saque-rescisão    the balance stays locked until dismissal, then the whole
                    balance plus the 40% fine is released
  saque-aniversário part of the balance is released every year in the birthday
                    month (progressive table); on dismissal only the 40% fine
                    is released and the remaining balance stays locked

  CompareFGTSRegimes projects both regimes month by month with the same
  deposits and reports, per month, the running balance and the cash each
  regime would release on a dismissal at that month.

FINE BASE:
  The fine is computed on every deposit ever made plus yield, including
  what the birthday regime already withdrew: rate * (balance + withdrawn).

SEE ALSO:
  - generic/projection.go: the projector
  - rescission.go: the fine on an actual termination
*/
package labor

import (
	"github.com/shopspring/decimal"

	"github.com/warp/labor-engine/generic"
)

const (
	RegimeRescission generic.RegimeID = "saque_rescisao"
	RegimeBirthday   generic.RegimeID = "saque_aniversario"
)

// FGTSInput describes the projection.
type FGTSInput struct {
	Salary         generic.Money
	InitialBalance generic.Money
	Months         int

	// Start labels the months; it is never compared to the clock.
	Start generic.TimePoint

	// BirthdayMonth is the zero-based month index of the first yearly
	// withdrawal. Zero means the twelfth month (index 11).
	BirthdayMonth int

	// AnnualYield overrides the rule book's yield when set.
	AnnualYield *decimal.Decimal

	// TerminateAt ends the projection at a dismissal in that month
	// (zero-based) when set.
	TerminateAt *int
}

// FGTSComparison is the month-by-month comparison plus the final figures.
type FGTSComparison struct {
	MonthlyDeposit generic.Money             `json:"monthly_deposit"`
	MonthlyYield   decimal.Decimal           `json:"monthly_yield"`
	Projection     *generic.ProjectionResult `json:"projection"`

	Rescission generic.RegimeSnapshot `json:"rescission"`
	Birthday   generic.RegimeSnapshot `json:"birthday"`

	// Divergence is termination cash of saque-rescisão minus that of
	// saque-aniversário, per month.
	Divergence []generic.Money `json:"divergence"`
}

// CompareFGTSRegimes projects both regimes over the horizon.
func CompareFGTSRegimes(in FGTSInput, book *generic.RuleBook) (*FGTSComparison, error) {
	if err := bookOrErr(book); err != nil {
		return nil, err
	}
	if err := nonNegative(field{"salary", in.Salary}, field{"initial_balance", in.InitialBalance}); err != nil {
		return nil, err
	}
	if in.BirthdayMonth < 0 {
		return nil, &generic.InputError{Field: "birthday_month", Value: in.BirthdayMonth, Reason: "must not be negative"}
	}

	depositRate, err := book.Rate(RateFGTSDeposit)
	if err != nil {
		return nil, err
	}
	fineRate, err := book.Rate(RateFGTSFine)
	if err != nil {
		return nil, err
	}
	annual, err := rateOr(in.AnnualYield, RateFGTSAnnualYield, book)
	if err != nil {
		return nil, err
	}
	table, err := book.BracketTable(TableFGTSBirthday)
	if err != nil {
		return nil, err
	}

	monthlyYield := annual.Div(decimal.NewFromInt(12))
	deposit := generic.CompoundingDeposit{
		Contribution: in.Salary.MulRate(depositRate),
		Yield:        monthlyYield,
	}
	birthday := in.BirthdayMonth
	if birthday == 0 {
		birthday = 11
	}

	input := generic.ProjectionInput{
		Steps: in.Months,
		Unit:  generic.StepMonth,
		Start: in.Start,
		Regimes: []generic.Regime{
			{
				ID:              RegimeRescission,
				Initial:         in.InitialBalance,
				Deposit:         deposit,
				TerminationCash: balancePlusFine(fineRate),
			},
			{
				ID:      RegimeBirthday,
				Initial: in.InitialBalance,
				Deposit: deposit,
				Withdrawal: generic.PeriodicWithdrawal{
					Every:  12,
					Offset: birthday,
					Draw:   generic.ProgressiveOf(table),
				},
				TerminationCash: fineOnly(fineRate),
			},
		},
	}

	terminateAt := -1
	if in.TerminateAt != nil {
		terminateAt = *in.TerminateAt
		if terminateAt < 0 {
			return nil, &generic.InputError{Field: "terminate_at", Value: terminateAt, Reason: "must not be negative"}
		}
	}
	result, err := generic.RunProjectionUntil(input, terminateAt)
	if err != nil {
		return nil, err
	}

	out := &FGTSComparison{
		MonthlyDeposit: deposit.Contribution,
		MonthlyYield:   monthlyYield,
		Projection:     result,
		Divergence:     result.Divergence(RegimeRescission, RegimeBirthday),
	}
	if final, ok := result.Final(); ok {
		out.Rescission, _ = final.Regime(RegimeRescission)
		out.Birthday, _ = final.Regime(RegimeBirthday)
	}
	return out, nil
}

// fineBase is every deposit ever made plus yield.
func fineBase(st generic.RegimeState) generic.Money {
	return st.Balance + st.Withdrawn
}

func balancePlusFine(rate decimal.Decimal) generic.TerminationCashFunc {
	return func(_ int, st generic.RegimeState) generic.Money {
		return st.Balance + fineBase(st).MulRate(rate)
	}
}

func fineOnly(rate decimal.Decimal) generic.TerminationCashFunc {
	return func(_ int, st generic.RegimeState) generic.Money {
		return fineBase(st).MulRate(rate)
	}
}

// BirthdayWithdrawal is the amount released in the birthday month for a balance.
func BirthdayWithdrawal(balance generic.Money, book *generic.RuleBook) (generic.Money, error) {
	if err := bookOrErr(book); err != nil {
		return 0, err
	}
	return book.Tax(TableFGTSBirthday, balance)
}
