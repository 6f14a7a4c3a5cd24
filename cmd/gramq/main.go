package main

import (
	"os"

	"github.com/dhamidi/gramq/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// options are shared by all subcommands. Flags override the config file.
type options struct {
	configPath string
	grammar    string
	start      string
	format     string
	jobs       int
	verbose    int

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "gramq",
		Short: "Parse source text with declarative grammars and query the trees",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.grammar != "" {
				cfg.Grammar = opts.grammar
			}
			if opts.start != "" {
				cfg.Start = opts.start
			}
			if opts.format != "" {
				cfg.Format = opts.format
			}
			if opts.jobs > 0 {
				cfg.Jobs = opts.jobs
			}
			cfg.Verbosity += opts.verbose
			if err := cfg.Validate(); err != nil {
				return err
			}
			opts.cfg = cfg

			commonlog.Configure(cfg.Verbosity, nil)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath+" if present)")
	flags.StringVarP(&opts.grammar, "grammar", "g", "", "grammar document (.json, .yaml or .ebnf)")
	flags.StringVar(&opts.start, "start", "", "root rule, required for .ebnf grammars")
	flags.StringVarP(&opts.format, "format", "f", "", "output format (line, json)")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "concurrent parses (default one per CPU)")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newQueryCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))

	return rootCmd
}
