package main

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/warp/labor-engine/labor"
)

func newRescissionCmd(opts *options) *cobra.Command {
	var (
		in   labor.RescissionInput
		kind string
	)

	cmd := &cobra.Command{
		Use:   "rescission",
		Short: "Compute the termination settlement",
		Long: `Computes the settlement term for one of the termination kinds:
without_cause, resignation, with_cause, mutual_agreement.
The rule book defaults to the termination year.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Kind = labor.TerminationKind(kind)
			book, err := opts.book(in.Termination.Year())
			if err != nil {
				return err
			}
			res, err := labor.Rescission(in, book)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), struct {
				*labor.RescissionResult
				ProjectedEnd string `json:"projected_end"`
			}{res, res.ProjectedEnd.String()})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(labor.WithoutCause), "termination kind")
	cmd.Flags().Var(moneyValue{&in.Salary}, "salary", "monthly salary")
	cmd.Flags().Var(dateValue{&in.Admission}, "admission", "admission date")
	cmd.Flags().Var(dateValue{&in.Termination}, "termination", "termination date")
	cmd.Flags().BoolVar(&in.NoticeWorked, "notice-worked", false, "the notice period was served")
	cmd.Flags().BoolVar(&in.NoticeNotServed, "notice-not-served", false, "resignation without serving the notice")
	cmd.Flags().IntVar(&in.ExpiredVacationPeriods, "expired-vacations", 0, "complete vacation periods not enjoyed")
	cmd.Flags().IntVar(&in.Absences, "absences", 0, "unexcused absences in the current period")
	cmd.Flags().Var(moneyValue{&in.FGTSBalance}, "fgts-balance", "FGTS balance (default: estimated)")
	cmd.Flags().IntVar(&in.Dependents, "dependents", 0, "IRRF dependents")
	for _, name := range []string{"salary", "admission", "termination"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newFGTSCmd(opts *options) *cobra.Command {
	var (
		in          labor.FGTSInput
		yield       string
		terminateAt int
	)

	cmd := &cobra.Command{
		Use:   "fgts",
		Short: "Compare saque-rescisão and saque-aniversário month by month",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := opts.book(0)
			if err != nil {
				return err
			}
			if yield != "" {
				d, err := decimal.NewFromString(yield)
				if err != nil {
					return err
				}
				in.AnnualYield = &d
			}
			if cmd.Flags().Changed("terminate-at") {
				in.TerminateAt = &terminateAt
			}
			res, err := labor.CompareFGTSRegimes(in, book)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().Var(moneyValue{&in.Salary}, "salary", "monthly salary")
	cmd.Flags().Var(moneyValue{&in.InitialBalance}, "balance", "initial FGTS balance")
	cmd.Flags().IntVar(&in.Months, "months", 12, "months to project")
	cmd.Flags().Var(dateValue{&in.Start}, "start", "first projected month")
	cmd.Flags().IntVar(&in.BirthdayMonth, "birthday-month", 0, "zero-based month of the first yearly withdrawal")
	cmd.Flags().StringVar(&yield, "annual-yield", "", "annual yield override, e.g. 0.03")
	cmd.Flags().IntVar(&terminateAt, "terminate-at", 0, "zero-based month of a dismissal")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}
