package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:           "check [grammar]",
		Short:         "Compile a grammar and report every error",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.cfg.Grammar
			if len(args) == 1 {
				path = args[0]
			}

			g, err := loadGrammar(path, opts.cfg.Start)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules, root %s\n", path, len(g.Names()), g.Root())
			return nil
		},
	}
}
