package main

import (
	"fmt"

	"github.com/ling0322/ccg"
	"github.com/spf13/cobra"
)

func newAcceptsCmd(opts *globalOptions) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "accepts [word...]",
		Short: "Report whether sentences derive the start category",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, _, err := opts.newParser()
			if err != nil {
				return err
			}
			startCategory, err := ccg.ParseCategory(start)
			if err != nil {
				return err
			}
			inputs, err := sentences(args, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			rejected := 0
			for _, tokens := range inputs {
				accepted, err := parser.Accepts(tokens, startCategory)
				if err != nil {
					return err
				}
				if !accepted {
					rejected++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%t\t%s\n", accepted, joinTokens(tokens))
			}
			if rejected != 0 {
				return fmt.Errorf("%d of %d sentences rejected", rejected, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&start, "start", "s", ccg.DefaultStart.String(), "category of a complete sentence")

	return cmd
}
