package main

import (
	"fmt"

	"github.com/dhamidi/gramq/format"
	"github.com/dhamidi/gramq/parse"
	"github.com/spf13/cobra"
)

func newParseCmd(opts *options) *cobra.Command {
	var printTree bool

	cmd := &cobra.Command{
		Use:          "parse [file...]",
		Short:        "Parse files (or standard input) and report how far each parse got",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(opts.cfg.Grammar, opts.cfg.Start)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				args = []string{"-"}
			}
			texts := make([]string, len(args))
			for i, name := range args {
				if texts[i], err = readInput(cmd.InOrStdin(), name); err != nil {
					return err
				}
			}

			results, err := parse.NewSession(g).RunAll(cmd.Context(), texts, opts.cfg.Jobs)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			out := cmd.OutOrStdout()
			failed := 0
			for i, r := range results {
				d := r.Diagnostics()
				if !r.Success {
					failed++
				}
				switch opts.cfg.Format {
				case "json":
					data, err := format.DiagnosticsJSON(args[i], d)
					if err != nil {
						return fmt.Errorf("encode json: %w", err)
					}
					fmt.Fprintln(out, string(data))
				default:
					fmt.Fprintf(out, "%s: %s\n", args[i], format.Status(d, d.NodeCount))
				}
				if printTree {
					data, err := format.TreeJSON(r.Tree)
					if err != nil {
						return fmt.Errorf("encode tree: %w", err)
					}
					fmt.Fprintln(out, string(data))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed to parse", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&printTree, "tree", false, "print the parse tree as JSON")

	return cmd
}
