package main

import (
	"github.com/dhamidi/gramq/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(opts.cfg.Grammar, opts.cfg.Start)
			if err != nil {
				return err
			}
			return lsp.NewServer(g, version).RunStdio()
		},
	}
}
