package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/words"
)

func newYearsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List the loaded rule book years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			for _, y := range reg.Years() {
				book, err := reg.ForYear(y)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", y, book.Description)
			}
			return nil
		},
	}
}

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words <amount>",
		Short: "Spell an amount in reais in Portuguese",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := generic.ParseMoney(args[0])
			if err != nil {
				return err
			}
			text, err := words.AmountToWords(m)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
