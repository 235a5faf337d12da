package labor

import "github.com/warp/labor-engine/generic"

// =============================================================================
// UNEMPLOYMENT INSURANCE (SEGURO-DESEMPREGO)
// =============================================================================

// UnemploymentInput describes one benefit request.
type UnemploymentInput struct {
	// LastSalaries are the salaries of the last months before dismissal,
	// most recent last. Only the last three are averaged.
	LastSalaries []generic.Money

	MonthsWorked   int
	RequestOrdinal int // 1 for the first request, 2 for the second, ...
}

// UnemploymentResult is the benefit schedule.
type UnemploymentResult struct {
	AverageSalary generic.Money `json:"average_salary"`
	Installments  int           `json:"installments"`
	ParcelValue   generic.Money `json:"parcel_value"`
	Total         generic.Money `json:"total"`
	Eligible      bool          `json:"eligible"`
}

// Unemployment computes the installment count from the 2-D table and the
// parcel value from the tier formula on the average salary.
func Unemployment(in UnemploymentInput, book *generic.RuleBook) (*UnemploymentResult, error) {
	if err := bookOrErr(book); err != nil {
		return nil, err
	}
	avg, err := AverageSalary(in.LastSalaries, 3)
	if err != nil {
		return nil, err
	}

	installments, err := book.TieredEntitlement(TableUnemploymentInstallments, in.MonthsWorked, in.RequestOrdinal)
	if err != nil {
		return nil, err
	}
	res := &UnemploymentResult{AverageSalary: avg, Installments: installments}
	if installments == 0 {
		return res, nil
	}

	res.ParcelValue, err = book.Benefit(TableUnemploymentParcel, avg)
	if err != nil {
		return nil, err
	}
	res.Total = res.ParcelValue.MulInt(installments)
	res.Eligible = true
	return res, nil
}

// AverageSalary averages the last n salaries (fewer if fewer are given).
func AverageSalary(salaries []generic.Money, n int) (generic.Money, error) {
	if len(salaries) == 0 {
		return 0, &generic.InputError{Field: "last_salaries", Value: 0, Reason: "at least one salary required"}
	}
	if len(salaries) > n {
		salaries = salaries[len(salaries)-n:]
	}
	var total generic.Money
	for _, s := range salaries {
		if err := generic.RequireNonNegative("last_salaries", s); err != nil {
			return 0, err
		}
		total += s
	}
	return total.DivInt(len(salaries)), nil
}

// MonthsWorked counts complete months between admission and dismissal.
func MonthsWorked(admission, dismissal generic.TimePoint) (int, error) {
	p, err := generic.NewPeriod(admission, dismissal)
	if err != nil {
		return 0, err
	}
	return p.CompletedMonths(), nil
}
