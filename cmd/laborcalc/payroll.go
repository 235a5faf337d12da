package main

import (
	"github.com/spf13/cobra"

	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/labor"
)

func newNetSalaryCmd(opts *options) *cobra.Command {
	var in labor.PayslipInput

	cmd := &cobra.Command{
		Use:   "net-salary",
		Short: "Compute the monthly payslip (INSS, IRRF, FGTS deposit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := opts.book(0)
			if err != nil {
				return err
			}
			slip, err := labor.NetSalary(in, book)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), slip)
		},
	}

	cmd.Flags().Var(moneyValue{&in.Gross}, "gross", "gross monthly salary")
	cmd.Flags().IntVar(&in.Dependents, "dependents", 0, "IRRF dependents")
	cmd.Flags().Var(moneyValue{&in.Alimony}, "alimony", "court-ordered alimony")
	cmd.Flags().Var(moneyValue{&in.OtherDiscounts}, "other-discounts", "non-deductible discounts")
	cmd.Flags().BoolVar(&in.UseSimplified, "simplified", false, "apply the simplified discount when it is better")
	_ = cmd.MarkFlagRequired("gross")
	return cmd
}

func newVacationCmd(opts *options) *cobra.Command {
	var in labor.VacationInput

	cmd := &cobra.Command{
		Use:   "vacation",
		Short: "Compute the vacation receipt with the constitutional third",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := opts.book(0)
			if err != nil {
				return err
			}
			res, err := labor.Vacation(in, book)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().Var(moneyValue{&in.Salary}, "salary", "monthly salary")
	cmd.Flags().Var(moneyValue{&in.AverageVariable}, "average-variable", "monthly average of variable pay")
	cmd.Flags().IntVar(&in.Absences, "absences", 0, "unexcused absences in the acquisition period")
	cmd.Flags().IntVar(&in.DaysTaken, "days", 0, "days taken (default: every entitled day not sold)")
	cmd.Flags().IntVar(&in.SellDays, "sell", 0, "days sold as abono pecuniário")
	cmd.Flags().IntVar(&in.Dependents, "dependents", 0, "IRRF dependents")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}

func newThirteenthCmd(opts *options) *cobra.Command {
	var in labor.ThirteenthInput

	cmd := &cobra.Command{
		Use:   "thirteenth",
		Short: "Compute the 13th salary and its two installments",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := opts.book(0)
			if err != nil {
				return err
			}
			in.Year = book.Year
			res, err := labor.Thirteenth(in, book)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().Var(moneyValue{&in.Salary}, "salary", "monthly salary")
	cmd.Flags().Var(moneyValue{&in.AverageVariable}, "average-variable", "monthly average of variable pay")
	cmd.Flags().Var(dateValue{&in.Admission}, "admission", "admission date when inside the year")
	cmd.Flags().Var(dateValue{&in.Termination}, "termination", "termination date when inside the year")
	cmd.Flags().IntVar(&in.Months, "months", 0, "months worked, overriding the dates")
	cmd.Flags().IntVar(&in.Dependents, "dependents", 0, "IRRF dependents")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}

func newUnemploymentCmd(opts *options) *cobra.Command {
	var (
		in                   labor.UnemploymentInput
		salaries             []string
		admission, dismissal generic.TimePoint
	)

	cmd := &cobra.Command{
		Use:   "unemployment",
		Short: "Compute the unemployment insurance schedule",
		Long: `Computes installments and parcel value from the last salaries.
Months worked come from --months or from --admission and --dismissal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := opts.book(0)
			if err != nil {
				return err
			}
			for _, s := range salaries {
				m, err := generic.ParseMoney(s)
				if err != nil {
					return err
				}
				in.LastSalaries = append(in.LastSalaries, m)
			}
			if in.MonthsWorked == 0 && !admission.IsZero() {
				if in.MonthsWorked, err = labor.MonthsWorked(admission, dismissal); err != nil {
					return err
				}
			}
			res, err := labor.Unemployment(in, book)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringSliceVar(&salaries, "salaries", nil, "last salaries, most recent last")
	cmd.Flags().IntVar(&in.MonthsWorked, "months", 0, "months worked in the reference period")
	cmd.Flags().Var(dateValue{&admission}, "admission", "admission date")
	cmd.Flags().Var(dateValue{&dismissal}, "dismissal", "dismissal date")
	cmd.Flags().IntVar(&in.RequestOrdinal, "request", 1, "request ordinal (1 for the first)")
	cmd.MarkFlagsRequiredTogether("admission", "dismissal")
	cmd.MarkFlagsMutuallyExclusive("months", "admission")
	_ = cmd.MarkFlagRequired("salaries")
	return cmd
}
