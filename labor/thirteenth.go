package labor

import (
	"github.com/warp/labor-engine/generic"
)

// MinDaysForMonth is the "avos" rule: a month with at least 15 worked days
// counts as a full twelfth.
const MinDaysForMonth = 15

// ThirteenthInput describes the 13th salary (gratificação natalina) of one year.
type ThirteenthInput struct {
	Salary          generic.Money
	AverageVariable generic.Money
	Year            int

	// Admission and Termination bound the employment; zero values mean
	// "before the year" and "after the year".
	Admission   generic.TimePoint
	Termination generic.TimePoint

	// Months overrides the date-based count when positive.
	Months int

	Dependents int
}

// ThirteenthResult splits the 13th into its two installments.
type ThirteenthResult struct {
	Months int           `json:"months"`
	Total  generic.Money `json:"total"`

	// FirstInstallment is half the total, paid by November 30 without deductions.
	FirstInstallment generic.Money `json:"first_installment"`

	// INSS and IRRF are taxed on the full total and withheld from the second.
	SocialSecurity    generic.Money `json:"social_security"`
	IncomeTax         generic.Money `json:"income_tax"`
	SecondInstallment generic.Money `json:"second_installment"`
	Net               generic.Money `json:"net"`
}

// Thirteenth computes the proportional 13th salary.
func Thirteenth(in ThirteenthInput, book *generic.RuleBook) (*ThirteenthResult, error) {
	if err := bookOrErr(book); err != nil {
		return nil, err
	}
	if err := nonNegative(field{"salary", in.Salary}, field{"average_variable", in.AverageVariable}); err != nil {
		return nil, err
	}
	months, err := thirteenthMonths(in)
	if err != nil {
		return nil, err
	}

	total := (in.Salary + in.AverageVariable).Ratio(months, 12)
	res := &ThirteenthResult{
		Months:           months,
		Total:            total,
		FirstInstallment: total.DivInt(2),
	}
	res.SocialSecurity, res.IncomeTax, err = withholdings(total, in.Dependents, book)
	if err != nil {
		return nil, err
	}
	res.SecondInstallment = (total - res.FirstInstallment - res.SocialSecurity - res.IncomeTax).ClampZero()
	res.Net = res.FirstInstallment + res.SecondInstallment
	return res, nil
}

func thirteenthMonths(in ThirteenthInput) (int, error) {
	if in.Months != 0 {
		if in.Months < 0 || in.Months > 12 {
			return 0, &generic.InputError{Field: "months", Value: in.Months, Reason: "must be between 0 and 12"}
		}
		return in.Months, nil
	}
	if in.Year <= 0 {
		return 0, &generic.InputError{Field: "year", Value: in.Year, Reason: "required when months is not given"}
	}

	start := generic.StartOfYear(in.Year)
	if !in.Admission.IsZero() && in.Admission.After(start) {
		start = in.Admission
	}
	end := generic.EndOfYear(in.Year)
	if !in.Termination.IsZero() && in.Termination.Before(end) {
		end = in.Termination
	}
	if end.Before(start) {
		return 0, nil
	}
	p, err := generic.NewPeriod(start, end)
	if err != nil {
		return 0, err
	}
	return p.ProportionalMonthsInYear(in.Year, MinDaysForMonth), nil
}
