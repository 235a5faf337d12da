package labor

import "github.com/warp/labor-engine/generic"

// =============================================================================
// VACATION (FÉRIAS)
// =============================================================================

// VacationInput describes one vacation grant.
type VacationInput struct {
	Salary          generic.Money
	AverageVariable generic.Money // monthly average of overtime, commissions, night pay
	Absences        int           // unexcused absences in the acquisition period

	// DaysTaken defaults to every entitled day that is not sold.
	DaysTaken int
	// SellDays converts up to a third of the entitled days into cash (abono pecuniário).
	SellDays int

	Dependents int
}

// VacationResult is the vacation receipt.
type VacationResult struct {
	EntitledDays  int           `json:"entitled_days"`
	DaysTaken     int           `json:"days_taken"`
	SoldDays      int           `json:"sold_days"`
	VacationPay   generic.Money `json:"vacation_pay"`
	OneThird      generic.Money `json:"one_third"`
	Abono         generic.Money `json:"abono"`
	AbonoOneThird generic.Money `json:"abono_one_third"`
	Gross         generic.Money `json:"gross"`

	// Only VacationPay + OneThird are taxed; the abono is exempt.
	SocialSecurity generic.Money `json:"social_security"`
	IncomeTax      generic.Money `json:"income_tax"`
	Net            generic.Money `json:"net"`
}

// Vacation computes the vacation receipt. Entitled days come from the
// absence table; each day is worth a thirtieth of the monthly remuneration.
func Vacation(in VacationInput, book *generic.RuleBook) (*VacationResult, error) {
	if err := bookOrErr(book); err != nil {
		return nil, err
	}
	if err := nonNegative(field{"salary", in.Salary}, field{"average_variable", in.AverageVariable}); err != nil {
		return nil, err
	}
	if err := generic.RequireCount("days_taken", in.DaysTaken); err != nil {
		return nil, err
	}
	if err := generic.RequireCount("sell_days", in.SellDays); err != nil {
		return nil, err
	}

	entitled, err := book.Entitlement(TableVacationAbsences, in.Absences)
	if err != nil {
		return nil, err
	}
	if in.SellDays > entitled/3 {
		return nil, &generic.InputError{Field: "sell_days", Value: in.SellDays, Reason: "at most a third of the entitled days may be sold"}
	}
	taken := in.DaysTaken
	if taken == 0 {
		taken = entitled - in.SellDays
	}
	if taken+in.SellDays > entitled {
		return nil, &generic.InputError{Field: "days_taken", Value: taken, Reason: "days taken plus days sold exceed the entitlement"}
	}

	remuneration := in.Salary + in.AverageVariable
	res := &VacationResult{
		EntitledDays: entitled,
		DaysTaken:    taken,
		SoldDays:     in.SellDays,
		VacationPay:  remuneration.Ratio(taken, 30),
		Abono:        remuneration.Ratio(in.SellDays, 30),
	}
	res.OneThird = res.VacationPay.DivInt(3)
	res.AbonoOneThird = res.Abono.DivInt(3)
	res.Gross = generic.Sum(res.VacationPay, res.OneThird, res.Abono, res.AbonoOneThird)

	res.SocialSecurity, res.IncomeTax, err = withholdings(res.VacationPay+res.OneThird, in.Dependents, book)
	if err != nil {
		return nil, err
	}
	res.Net = res.Gross - res.SocialSecurity - res.IncomeTax
	return res, nil
}

// ProportionalVacation is the indemnity for an incomplete acquisition period:
// entitled days times months/12, plus the constitutional third.
func ProportionalVacation(salary generic.Money, months, absences int, book *generic.RuleBook) (generic.Money, error) {
	if err := bookOrErr(book); err != nil {
		return 0, err
	}
	if err := generic.RequireNonNegative("salary", salary); err != nil {
		return 0, err
	}
	if months < 0 || months > 12 {
		return 0, &generic.InputError{Field: "months", Value: months, Reason: "must be between 0 and 12"}
	}
	days, err := book.Entitlement(TableVacationAbsences, absences)
	if err != nil {
		return 0, err
	}
	pay := salary.Ratio(days*months, 30*12)
	return pay + pay.DivInt(3), nil
}
