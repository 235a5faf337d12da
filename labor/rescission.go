/*
rescission.go - Termination settlement (verbas rescisórias)

PURPOSE:
  Computes what an employee receives when the contract ends, per kind of
  termination. The same components appear in every kind; the kind decides
  which of them are due.

                       salary  notice   13th   vacation  vacation  FGTS  unemployment
                       balance                 expired   prop.     fine
  without cause          yes    full     yes     yes       yes      40%     yes
  mutual agreement       yes    half     yes     yes       yes      20%     no
  resignation            yes    -        yes     yes       yes      -       no
  with cause             yes    -        -       yes       -        -       no

NOTICE:
  Notice days come from the notice_days table (30 + 3 per completed year,
  capped at 90). Indemnified notice projects the contract end forward, so
  the projected date drives the 13th and proportional vacation months.
  A resigning employee who does not serve the notice has 30 days of salary
  deducted.

TAXES:
  Salary balance and 13th are taxed separately (INSS and IRRF each).
  Indemnified notice and indemnified vacation are exempt.

FGTS:
  Deposits are also due on salary balance, notice and 13th. The fine is
  the fine rate times the balance for rescission purposes plus those
  deposits; it is paid into the FGTS account, not into the settlement.

SEE ALSO:
  - vacation.go: ProportionalVacation
  - fgts.go: regime projection
*/
package labor

import "github.com/warp/labor-engine/generic"

// TerminationKind is the legal cause of the contract's end.
type TerminationKind string

const (
	WithoutCause    TerminationKind = "without_cause"
	Resignation     TerminationKind = "resignation"
	WithCause       TerminationKind = "with_cause"
	MutualAgreement TerminationKind = "mutual_agreement"
)

func (k TerminationKind) Valid() bool {
	switch k {
	case WithoutCause, Resignation, WithCause, MutualAgreement:
		return true
	}
	return false
}

// RescissionInput describes the contract being terminated.
type RescissionInput struct {
	Kind        TerminationKind
	Salary      generic.Money
	Admission   generic.TimePoint
	Termination generic.TimePoint

	// NoticeWorked means the employee served the notice period, so nothing
	// is indemnified and the end date is not projected.
	NoticeWorked bool
	// NoticeNotServed applies to resignations: the employee left without
	// serving the notice and forfeits 30 days of salary.
	NoticeNotServed bool

	ExpiredVacationPeriods int // complete acquisition periods not yet enjoyed
	Absences               int // unexcused absences in the current acquisition period

	// FGTSBalance is the balance for rescission purposes. Zero estimates it
	// as deposits on the salary over the whole service time.
	FGTSBalance generic.Money

	Dependents int
}

// RescissionResult is the settlement term.
type RescissionResult struct {
	Kind          TerminationKind   `json:"kind"`
	ServiceMonths int               `json:"service_months"`
	ServiceYears  int               `json:"service_years"`
	NoticeDays    int               `json:"notice_days"`
	ProjectedEnd  generic.TimePoint `json:"-"`

	SalaryBalance        generic.Money `json:"salary_balance"`
	Notice               generic.Money `json:"notice"`
	ThirteenthMonths     int           `json:"thirteenth_months"`
	Thirteenth           generic.Money `json:"thirteenth"`
	ExpiredVacation      generic.Money `json:"expired_vacation"`
	VacationMonths       int           `json:"vacation_months"`
	ProportionalVacation generic.Money `json:"proportional_vacation"`

	SocialSecurity  generic.Money `json:"social_security"`
	IncomeTax       generic.Money `json:"income_tax"`
	NoticeDeduction generic.Money `json:"notice_deduction"`

	Gross generic.Money `json:"gross"`
	Net   generic.Money `json:"net"`

	FGTSBalance       generic.Money `json:"fgts_balance"`
	FGTSDeposits      generic.Money `json:"fgts_deposits"`
	FGTSFine          generic.Money `json:"fgts_fine"`
	FGTSAvailable     generic.Money `json:"fgts_available"`
	UnemploymentRight bool          `json:"unemployment_right"`
}

// Rescission computes the termination settlement.
func Rescission(in RescissionInput, book *generic.RuleBook) (*RescissionResult, error) {
	if err := bookOrErr(book); err != nil {
		return nil, err
	}
	if !in.Kind.Valid() {
		return nil, &generic.InputError{Field: "kind", Value: in.Kind, Reason: "unknown termination kind"}
	}
	if err := nonNegative(field{"salary", in.Salary}, field{"fgts_balance", in.FGTSBalance}); err != nil {
		return nil, err
	}
	if err := generic.RequireCount("expired_vacation_periods", in.ExpiredVacationPeriods); err != nil {
		return nil, err
	}
	if err := generic.RequireCount("absences", in.Absences); err != nil {
		return nil, err
	}
	service, err := generic.NewPeriod(in.Admission, in.Termination)
	if err != nil {
		return nil, err
	}

	res := &RescissionResult{
		Kind:          in.Kind,
		ServiceMonths: service.CompletedMonths(),
		ServiceYears:  service.CompletedYears(),
		ProjectedEnd:  in.Termination,
	}

	res.SalaryBalance = salaryBalance(in.Salary, in.Termination)

	// Notice and projection.
	if res.NoticeDays, err = book.Entitlement(TableNoticeDays, res.ServiceYears); err != nil {
		return nil, err
	}
	indemnified := !in.NoticeWorked && (in.Kind == WithoutCause || in.Kind == MutualAgreement)
	if indemnified {
		res.Notice = in.Salary.Ratio(res.NoticeDays, 30)
		if in.Kind == MutualAgreement {
			res.Notice = res.Notice.DivInt(2)
		}
		res.ProjectedEnd = in.Termination.AddDays(res.NoticeDays)
	}
	if in.Kind == Resignation && in.NoticeNotServed {
		res.NoticeDeduction = in.Salary
	}

	// 13th and vacation.
	if in.Kind != WithCause {
		res.ThirteenthMonths, res.Thirteenth, err = rescissionThirteenth(in, res.ProjectedEnd)
		if err != nil {
			return nil, err
		}
		res.VacationMonths = vacationMonths(in.Admission, res.ProjectedEnd)
		res.ProportionalVacation, err = ProportionalVacation(in.Salary, res.VacationMonths, in.Absences, book)
		if err != nil {
			return nil, err
		}
	}
	res.ExpiredVacation = (in.Salary + in.Salary.DivInt(3)).MulInt(in.ExpiredVacationPeriods)

	// Taxes: salary balance and 13th separately.
	balINSS, balIRRF, err := withholdings(res.SalaryBalance, in.Dependents, book)
	if err != nil {
		return nil, err
	}
	thINSS, thIRRF, err := withholdings(res.Thirteenth, in.Dependents, book)
	if err != nil {
		return nil, err
	}
	res.SocialSecurity = balINSS + thINSS
	res.IncomeTax = balIRRF + thIRRF

	res.Gross = generic.Sum(res.SalaryBalance, res.Notice, res.Thirteenth, res.ExpiredVacation, res.ProportionalVacation)
	res.Net = (res.Gross - res.SocialSecurity - res.IncomeTax - res.NoticeDeduction).ClampZero()

	if err := rescissionFGTS(in, res, service, book); err != nil {
		return nil, err
	}
	res.UnemploymentRight = in.Kind == WithoutCause
	return res, nil
}

// salaryBalance pays the days worked in the termination month on a
// 30-day commercial month. The last day of any month is a full month.
func salaryBalance(salary generic.Money, termination generic.TimePoint) generic.Money {
	days := termination.Day()
	if days >= 30 || days == generic.DaysInMonth(termination.Year(), termination.Month()) {
		days = 30
	}
	return salary.Ratio(days, 30)
}

func rescissionThirteenth(in RescissionInput, end generic.TimePoint) (int, generic.Money, error) {
	months, err := thirteenthMonths(ThirteenthInput{
		Year:        end.Year(),
		Admission:   in.Admission,
		Termination: end,
	})
	if err != nil {
		return 0, 0, err
	}
	return months, in.Salary.Ratio(months, 12), nil
}

// vacationMonths counts the months of the open acquisition period, which
// starts at the last anniversary of admission before end.
func vacationMonths(admission, end generic.TimePoint) int {
	whole := generic.Period{Start: admission, End: end}
	open := generic.Period{Start: admission.AddYears(whole.CompletedYears()), End: end}
	if open.End.Before(open.Start) {
		return 0
	}
	months := open.ProportionalMonths(MinDaysForMonth)
	if months > 12 {
		months = 12
	}
	return months
}

func rescissionFGTS(in RescissionInput, res *RescissionResult, service generic.Period, book *generic.RuleBook) error {
	depositRate, err := book.Rate(RateFGTSDeposit)
	if err != nil {
		return err
	}
	res.FGTSBalance = in.FGTSBalance
	if res.FGTSBalance == 0 {
		res.FGTSBalance = in.Salary.MulRate(depositRate).MulInt(service.CompletedMonths())
	}
	res.FGTSDeposits = (res.SalaryBalance + res.Notice + res.Thirteenth).MulRate(depositRate)
	fineBase := res.FGTSBalance + res.FGTSDeposits

	switch in.Kind {
	case WithoutCause:
		fineRate, err := book.Rate(RateFGTSFine)
		if err != nil {
			return err
		}
		res.FGTSFine = fineBase.MulRate(fineRate)
		res.FGTSAvailable = fineBase + res.FGTSFine
	case MutualAgreement:
		fineRate, err := book.Rate(RateFGTSAgreementFine)
		if err != nil {
			return err
		}
		share, err := book.Rate(RateFGTSAgreementWithdrawal)
		if err != nil {
			return err
		}
		res.FGTSFine = fineBase.MulRate(fineRate)
		res.FGTSAvailable = fineBase.MulRate(share) + res.FGTSFine
	}
	return nil
}
