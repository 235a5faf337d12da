package labor

import (
	"github.com/shopspring/decimal"

	"github.com/warp/labor-engine/generic"
)

// =============================================================================
// CLT vs PJ
// =============================================================================

// CLTvsPJInput compares an employment contract with a service contract
// through a company.
type CLTvsPJInput struct {
	// CLT side.
	Salary          generic.Money
	MonthlyBenefits generic.Money // meal/food vouchers, health plan paid by the employer
	Dependents      int

	// PJ side.
	Revenue      generic.Money   // monthly invoice
	TaxRate      decimal.Decimal // effective rate on revenue (Simples Nacional)
	MonthlyCosts generic.Money   // accountant, fees
	ProLabore    generic.Money   // partner's salary; contributes as an individual
}

// CLTAnnual is the yearly value of the employment contract.
type CLTAnnual struct {
	NetSalaries   generic.Money `json:"net_salaries"`   // 12 monthly nets
	ThirteenthNet generic.Money `json:"thirteenth_net"` // full-year 13th
	VacationBonus generic.Money `json:"vacation_bonus"` // the net third on 30 vacation days
	FGTS          generic.Money `json:"fgts"`           // deposits on salary, 13th and third
	Benefits      generic.Money `json:"benefits"`
	Total         generic.Money `json:"total"`
}

// PJAnnual is the yearly value of the service contract.
type PJAnnual struct {
	Revenue      generic.Money `json:"revenue"`
	Taxes        generic.Money `json:"taxes"`
	Costs        generic.Money `json:"costs"`
	Contribution generic.Money `json:"contribution"` // INSS on pro-labore, capped at the ceiling
	Total        generic.Money `json:"total"`
}

type CLTvsPJResult struct {
	CLT CLTAnnual `json:"clt"`
	PJ  PJAnnual  `json:"pj"`

	// Difference is PJ minus CLT; positive means the PJ contract pays more.
	Difference generic.Money `json:"difference"`

	// BreakEvenRevenue is the monthly invoice at which both totals match.
	BreakEvenRevenue generic.Money `json:"break_even_revenue"`
}

// CompareCLTvsPJ computes the annual net of both contracts.
func CompareCLTvsPJ(in CLTvsPJInput, book *generic.RuleBook) (*CLTvsPJResult, error) {
	if err := bookOrErr(book); err != nil {
		return nil, err
	}
	if err := nonNegative(
		field{"salary", in.Salary}, field{"monthly_benefits", in.MonthlyBenefits},
		field{"revenue", in.Revenue}, field{"monthly_costs", in.MonthlyCosts}, field{"pro_labore", in.ProLabore},
	); err != nil {
		return nil, err
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, &generic.InputError{Field: "tax_rate", Value: in.TaxRate.String(), Reason: "must be in [0, 1)"}
	}

	clt, err := cltAnnual(in, book)
	if err != nil {
		return nil, err
	}
	pj, monthlyContribution, err := pjAnnual(in, book)
	if err != nil {
		return nil, err
	}

	// revenue * (1 - rate) - costs - contribution = clt / 12
	need := clt.Total.Decimal().Div(decimal.NewFromInt(12)).
		Add(in.MonthlyCosts.Decimal()).
		Add(monthlyContribution.Decimal())
	breakEven := need.Div(decimal.NewFromInt(1).Sub(in.TaxRate))

	return &CLTvsPJResult{
		CLT:              *clt,
		PJ:               *pj,
		Difference:       pj.Total - clt.Total,
		BreakEvenRevenue: generic.NewMoneyFromDecimal(breakEven),
	}, nil
}

func cltAnnual(in CLTvsPJInput, book *generic.RuleBook) (*CLTAnnual, error) {
	slip, err := NetSalary(PayslipInput{Gross: in.Salary, Dependents: in.Dependents}, book)
	if err != nil {
		return nil, err
	}
	thirteenth, err := Thirteenth(ThirteenthInput{Salary: in.Salary, Months: 12, Dependents: in.Dependents}, book)
	if err != nil {
		return nil, err
	}
	vacation, err := Vacation(VacationInput{Salary: in.Salary, Dependents: in.Dependents}, book)
	if err != nil {
		return nil, err
	}
	depositRate, err := book.Rate(RateFGTSDeposit)
	if err != nil {
		return nil, err
	}

	// The vacation month pays salary plus a third; the bonus is what that
	// month nets above an ordinary one.
	bonus := (vacation.Net - slip.Net).ClampZero()

	out := &CLTAnnual{
		NetSalaries:   slip.Net.MulInt(12),
		ThirteenthNet: thirteenth.Net,
		VacationBonus: bonus,
		FGTS:          (in.Salary.MulInt(12) + thirteenth.Total + vacation.OneThird).MulRate(depositRate),
		Benefits:      in.MonthlyBenefits.MulInt(12),
	}
	out.Total = generic.Sum(out.NetSalaries, out.ThirteenthNet, out.VacationBonus, out.FGTS, out.Benefits)
	return out, nil
}

func pjAnnual(in CLTvsPJInput, book *generic.RuleBook) (*PJAnnual, generic.Money, error) {
	rate, err := book.Rate(RateIndividualContribution)
	if err != nil {
		return nil, 0, err
	}
	inss, err := book.BracketTable(TableINSS)
	if err != nil {
		return nil, 0, err
	}
	rows := inss.Brackets()
	ceiling := rows[len(rows)-1].Lower

	contribution := in.ProLabore.Min(ceiling).MulRate(rate)
	monthlyTax := in.Revenue.MulRate(in.TaxRate)

	out := &PJAnnual{
		Revenue:      in.Revenue.MulInt(12),
		Taxes:        monthlyTax.MulInt(12),
		Costs:        in.MonthlyCosts.MulInt(12),
		Contribution: contribution.MulInt(12),
	}
	out.Total = out.Revenue - out.Taxes - out.Costs - out.Contribution
	return out, contribution, nil
}
