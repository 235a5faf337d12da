/*
Package labor computes Brazilian labor-law amounts on top of the generic engine.

PURPOSE:
  Payroll deductions, vacation, 13th salary, unemployment insurance,
  overtime and night work, rescission, FGTS regime comparison, MEI revenue
  limits and CLT vs PJ comparison. Every calculator takes a
  *generic.RuleBook: the caller chooses the legal year, nothing here reads a
  "current year" constant.

TABLE IDS (ids.go):
  The calculators look tables up by the ids below. A rule book that serves
  this package must define all of them; CheckRuleBook reports the missing
  ones so the factory can reject an incomplete book at load time.

SEE ALSO:
  - generic/rulebook.go: the RuleBook container
  - factory/tables/*.yaml: the books shipped with the engine
*/
package labor

import (
	"fmt"
	"strings"

	"github.com/warp/labor-engine/generic"
)

// Progressive tables.
const (
	TableINSS         = "inss"
	TableIRRF         = "irrf"
	TableFGTSBirthday = "fgts_birthday_withdrawal"
)

// Entitlement tables.
const (
	TableVacationAbsences         = "vacation_absences"
	TableNoticeDays               = "notice_days"
	TableUnemploymentInstallments = "unemployment_installments"
)

// Benefit formulas.
const (
	TableUnemploymentParcel = "unemployment_parcel"
)

// Money scalars.
const (
	AmountMinimumWage        = "minimum_wage"
	AmountDependentAllowance = "irrf_dependent_allowance"
	AmountSimplifiedDiscount = "irrf_simplified_discount"
	AmountMEIMonthlyLimit    = "mei_monthly_limit"
)

// Rate scalars.
const (
	RateFGTSDeposit             = "fgts_deposit_rate"
	RateFGTSFine                = "fgts_fine_rate"
	RateFGTSAgreementFine       = "fgts_agreement_fine_rate"
	RateFGTSAgreementWithdrawal = "fgts_agreement_withdrawal_rate"
	RateFGTSAnnualYield         = "fgts_annual_yield"
	RateOvertime                = "overtime_rate"
	RateOvertimeRestDay         = "overtime_rest_day_rate"
	RateNightDifferential       = "night_differential_rate"
	RateNightHourMinutes        = "night_hour_minutes"
	RateMonthlyHours            = "monthly_hours"
	RateIndividualContribution  = "individual_contribution_rate"
	RateMEIExcessTolerance      = "mei_excess_tolerance"
)

// Required lists every id the calculators read, by kind.
func Required() map[string][]string {
	return map[string][]string{
		"brackets":     {TableINSS, TableIRRF, TableFGTSBirthday},
		"entitlements": {TableVacationAbsences, TableNoticeDays},
		"tiered":       {TableUnemploymentInstallments},
		"benefits":     {TableUnemploymentParcel},
		"amounts":      {AmountMinimumWage, AmountDependentAllowance, AmountSimplifiedDiscount, AmountMEIMonthlyLimit},
		"rates": {
			RateFGTSDeposit, RateFGTSFine, RateFGTSAgreementFine, RateFGTSAgreementWithdrawal,
			RateFGTSAnnualYield, RateOvertime, RateOvertimeRestDay, RateNightDifferential,
			RateNightHourMinutes, RateMonthlyHours, RateIndividualContribution, RateMEIExcessTolerance,
		},
	}
}

// CheckRuleBook returns an error wrapping generic.ErrUnknownTable that names
// every id the book lacks. A nil error means every calculator can run.
func CheckRuleBook(book *generic.RuleBook) error {
	if book == nil {
		return errNoBook
	}
	have := book.TableIDs()
	var missing []string
	for _, kind := range []string{"brackets", "entitlements", "tiered", "benefits", "amounts", "rates"} {
		present := make(map[string]bool, len(have[kind]))
		for _, id := range have[kind] {
			present[id] = true
		}
		for _, id := range Required()[kind] {
			if !present[id] {
				missing = append(missing, kind+"."+id)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("rule book %d is missing %s: %w", book.Year, strings.Join(missing, ", "), generic.ErrUnknownTable)
	}
	return nil
}

var errNoBook = fmt.Errorf("no rule book: %w", generic.ErrUnknownYear)

// bookOrErr guards every calculator entry point.
func bookOrErr(book *generic.RuleBook) error {
	if book == nil {
		return errNoBook
	}
	return nil
}

type field struct {
	name  string
	value generic.Money
}

// nonNegative validates money inputs in order and reports the first bad one.
func nonNegative(fields ...field) error {
	for _, f := range fields {
		if err := generic.RequireNonNegative(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}
