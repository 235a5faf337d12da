package labor

import (
	"github.com/shopspring/decimal"

	"github.com/warp/labor-engine/generic"
)

// =============================================================================
// SOCIAL SECURITY (INSS)
// =============================================================================

// SocialSecurity is the employee INSS contribution on gross monthly pay.
func SocialSecurity(gross generic.Money, book *generic.RuleBook) (generic.Money, error) {
	if err := bookOrErr(book); err != nil {
		return 0, err
	}
	return book.Tax(TableINSS, gross)
}

// =============================================================================
// INCOME TAX (IRRF)
// =============================================================================

// IncomeTaxInput is the monthly withholding base before deductions.
type IncomeTaxInput struct {
	Gross          generic.Money
	SocialSecurity generic.Money
	Dependents     int
	Alimony        generic.Money // court-ordered, deductible

	// UseSimplified applies the simplified monthly discount when it beats
	// the legal deductions.
	UseSimplified bool
}

// IncomeTaxResult shows how the withholding was reached.
type IncomeTaxResult struct {
	Base          generic.Money   `json:"base"`
	Deductions    generic.Money   `json:"deductions"`
	Simplified    bool            `json:"simplified"`
	Tax           generic.Money   `json:"tax"`
	MarginalRate  decimal.Decimal `json:"marginal_rate"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// IncomeTax computes the IRRF withholding.
func IncomeTax(in IncomeTaxInput, book *generic.RuleBook) (*IncomeTaxResult, error) {
	if err := bookOrErr(book); err != nil {
		return nil, err
	}
	if err := nonNegative(
		field{"gross", in.Gross}, field{"social_security", in.SocialSecurity}, field{"alimony", in.Alimony},
	); err != nil {
		return nil, err
	}
	if err := generic.RequireCount("dependents", in.Dependents); err != nil {
		return nil, err
	}

	allowance, err := book.Amount(AmountDependentAllowance)
	if err != nil {
		return nil, err
	}
	table, err := book.BracketTable(TableIRRF)
	if err != nil {
		return nil, err
	}

	deductions := in.SocialSecurity + allowance.MulInt(in.Dependents) + in.Alimony
	simplified := false
	if in.UseSimplified {
		discount, err := book.Amount(AmountSimplifiedDiscount)
		if err != nil {
			return nil, err
		}
		if discount > deductions {
			deductions = discount
			simplified = true
		}
	}

	base := (in.Gross - deductions).ClampZero()
	return &IncomeTaxResult{
		Base:          base,
		Deductions:    deductions,
		Simplified:    simplified,
		Tax:           table.Evaluate(base),
		MarginalRate:  table.MarginalRate(base),
		EffectiveRate: table.EffectiveRate(base),
	}, nil
}

// =============================================================================
// NET SALARY
// =============================================================================

type PayslipInput struct {
	Gross          generic.Money
	Dependents     int
	Alimony        generic.Money
	OtherDiscounts generic.Money // health plan, transport voucher share; not deductible
	UseSimplified  bool
}

// Payslip is one month's pay breakdown.
type Payslip struct {
	Gross           generic.Money    `json:"gross"`
	SocialSecurity  generic.Money    `json:"social_security"`
	IncomeTax       generic.Money    `json:"income_tax"`
	Alimony         generic.Money    `json:"alimony"`
	OtherDiscounts  generic.Money    `json:"other_discounts"`
	Net             generic.Money    `json:"net"`
	FGTSDeposit     generic.Money    `json:"fgts_deposit"` // employer cost, not discounted
	IncomeTaxDetail *IncomeTaxResult `json:"income_tax_detail"`
}

// NetSalary computes INSS, then IRRF on what is left, then the net.
func NetSalary(in PayslipInput, book *generic.RuleBook) (*Payslip, error) {
	if err := generic.RequireNonNegative("other_discounts", in.OtherDiscounts); err != nil {
		return nil, err
	}
	inss, err := SocialSecurity(in.Gross, book)
	if err != nil {
		return nil, err
	}
	irrf, err := IncomeTax(IncomeTaxInput{
		Gross:          in.Gross,
		SocialSecurity: inss,
		Dependents:     in.Dependents,
		Alimony:        in.Alimony,
		UseSimplified:  in.UseSimplified,
	}, book)
	if err != nil {
		return nil, err
	}
	depositRate, err := book.Rate(RateFGTSDeposit)
	if err != nil {
		return nil, err
	}

	return &Payslip{
		Gross:           in.Gross,
		SocialSecurity:  inss,
		IncomeTax:       irrf.Tax,
		Alimony:         in.Alimony,
		OtherDiscounts:  in.OtherDiscounts,
		Net:             in.Gross - inss - irrf.Tax - in.Alimony - in.OtherDiscounts,
		FGTSDeposit:     in.Gross.MulRate(depositRate),
		IncomeTaxDetail: irrf,
	}, nil
}

// withholdings is INSS and IRRF on an amount taxed on its own (vacation,
// 13th salary, salary balance on rescission). The simplified discount is
// never applied to these.
func withholdings(amount generic.Money, dependents int, book *generic.RuleBook) (inss, irrf generic.Money, err error) {
	inss, err = SocialSecurity(amount, book)
	if err != nil {
		return 0, 0, err
	}
	res, err := IncomeTax(IncomeTaxInput{Gross: amount, SocialSecurity: inss, Dependents: dependents}, book)
	if err != nil {
		return 0, 0, err
	}
	return inss, res.Tax, nil
}
