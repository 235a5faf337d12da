/*
main.go - Command-line calculator

PURPOSE:
  Runs the labor calculators without a server. Every command prints the
  result as indented JSON on stdout, the same shape the API returns in
  the "result" field.

COMMANDS:
  years          List the loaded rule book years
  net-salary     Monthly payslip
  vacation       Vacation receipt
  thirteenth     13th salary
  unemployment   Unemployment insurance schedule
  rescission     Termination settlement
  fgts           Saque-rescisão vs saque-aniversário
  words          Amount in Portuguese words

GLOBAL FLAGS:
  --year    Rule book year (default: latest loaded)
  --rules   Directory of extra rule-set documents

EXAMPLES:
  laborcalc net-salary --gross 5000.00
  laborcalc rescission --kind without_cause --salary 3000 \
      --admission 2022-01-10 --termination 2024-06-15 --fgts-balance 7200
  laborcalc words 1000000.50

SEE ALSO:
  - cmd/server/main.go: HTTP server
  - labor/: the calculators
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/warp/labor-engine/factory"
	"github.com/warp/labor-engine/generic"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the persistent flags shared by every command.
type options struct {
	year  int
	rules string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "laborcalc",
		Short:         "Brazilian labor calculations from the command line",
		Long:          `laborcalc computes payroll, vacation, termination and FGTS figures from the yearly rule books.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().IntVar(&opts.year, "year", 0, "rule book year (default: latest loaded)")
	root.PersistentFlags().StringVar(&opts.rules, "rules", "", "directory of extra rule-set documents")

	root.AddCommand(
		newYearsCmd(opts),
		newNetSalaryCmd(opts),
		newVacationCmd(opts),
		newThirteenthCmd(opts),
		newUnemploymentCmd(opts),
		newRescissionCmd(opts),
		newFGTSCmd(opts),
		newWordsCmd(),
	)
	return root
}

// registry loads the embedded tables plus the --rules directory.
func (o *options) registry() (*factory.Registry, error) {
	reg, err := factory.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded tables: %w", err)
	}
	if o.rules != "" {
		if err := reg.LoadDir(o.rules); err != nil {
			return nil, fmt.Errorf("failed to load rules directory: %w", err)
		}
	}
	return reg, nil
}

// book resolves --year, falling back to fallback and then to the latest book.
func (o *options) book(fallback int) (*generic.RuleBook, error) {
	reg, err := o.registry()
	if err != nil {
		return nil, err
	}
	year := o.year
	if year == 0 {
		year = fallback
	}
	return reg.Resolve(year)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// =============================================================================
// FLAG VALUES
// =============================================================================

// moneyValue is a flag holding an amount in reais ("1234.56" or "1234,56").
type moneyValue struct{ m *generic.Money }

func (v moneyValue) String() string {
	if v.m == nil {
		return "0.00"
	}
	return v.m.String()
}

func (v moneyValue) Set(s string) error {
	m, err := generic.ParseMoney(s)
	if err != nil {
		return err
	}
	*v.m = m
	return nil
}

func (v moneyValue) Type() string { return "amount" }

// dateValue is a flag holding a YYYY-MM-DD date.
type dateValue struct{ t *generic.TimePoint }

func (v dateValue) String() string {
	if v.t == nil || v.t.IsZero() {
		return ""
	}
	return v.t.String()
}

func (v dateValue) Set(s string) error {
	t, err := generic.ParseDate(s)
	if err != nil {
		return err
	}
	*v.t = t
	return nil
}

func (v dateValue) Type() string { return "date" }
