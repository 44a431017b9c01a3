package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChartCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chart [word...]",
		Short: "Dump the CKY chart, one row per span length",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, _, err := opts.newParser()
			if err != nil {
				return err
			}
			inputs, err := sentences(args, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			for _, tokens := range inputs {
				chart, err := parser.FillChart(tokens)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), chart.String())
			}
			return nil
		},
	}
}
