package main

import (
	"fmt"

	"github.com/ling0322/ccg"
	"github.com/spf13/cobra"
)

func newParseCmd(opts *globalOptions) *cobra.Command {
	var start string
	var all bool

	cmd := &cobra.Command{
		Use:   "parse [word...]",
		Short: "Print the derivation trees of a sentence",
		Long: `Print the derivation trees of a sentence.

Words are taken from the arguments. Without arguments every non-empty line of
stdin is parsed as one sentence. Only derivations of the start category are
printed unless --all is given.`,
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

			out := cmd.OutOrStdout()
			for _, tokens := range inputs {
				var trees []*ccg.Tree
				if all {
					trees, err = parser.Parse(tokens)
				} else {
					trees, err = parser.ParseAs(tokens, startCategory)
				}
				if err != nil {
					return err
				}
				if len(trees) == 0 {
					fmt.Fprintln(out, "no parse")
					continue
				}
				for _, tree := range trees {
					fmt.Fprintln(out, tree.String())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&start, "start", "s", ccg.DefaultStart.String(), "category of a complete sentence")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "print derivations of any category")

	return cmd
}
