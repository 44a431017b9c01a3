package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ling0322/ccg"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"
)

var log = commonlog.GetLogger("ccgparse")

// globalOptions are the persistent flags of every subcommand
type globalOptions struct {
	lexicon   string
	rules     string
	workers   int
	verbosity int
}

func (o *globalOptions) newParser() (*ccg.Parser, *ccg.MapLexicon, error) {
	if o.lexicon == "" {
		return nil, nil, fmt.Errorf("--lexicon is required")
	}
	lexicon, err := ccg.LoadLexicon(o.lexicon)
	if err != nil {
		return nil, nil, err
	}
	rules, err := ccg.RuleSetByName(o.rules)
	if err != nil {
		return nil, nil, err
	}
	log.Infof("lexicon %s: %d words, rules %s", o.lexicon, lexicon.Len(), rules)
	parser := ccg.NewParser(lexicon, ccg.WithRules(rules), ccg.WithParallelism(o.workers))
	return parser, lexicon, nil
}

// sentences returns args as one sentence, or one sentence per non-empty line
// of stdin when args is empty
func sentences(args []string, stdin io.Reader) ([][]string, error) {
	if len(args) != 0 {
		return [][]string{strings.Fields(strings.Join(args, " "))}, nil
	}
	result := [][]string{}
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) != 0 {
			result = append(result, tokens)
		}
	}
	return result, scanner.Err()
}

func joinTokens(tokens []string) string {
	return strings.Join(tokens, " ")
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:           "ccgparse",
		Short:         "CKY parser for combinatory categorial grammars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(opts.verbosity, nil)
			if opts.verbosity >= 2 {
				ccg.DebugMode()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.lexicon, "lexicon", "l", "", "lexicon file (.yaml, .yml or text format)")
	flags.StringVar(&opts.rules, "rules", ccg.DefaultRuleSet().String(), "comma separated rule names or tags")
	flags.IntVarP(&opts.workers, "workers", "j", 1, "goroutines filling one span length")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "more logging, repeat for debug output")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newAcceptsCmd(opts))
	rootCmd.AddCommand(newChartCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		util.Exit(1)
	}
	util.Exit(0)
}
