package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/gramq/format"
	"github.com/dhamidi/gramq/parse"
	"github.com/dhamidi/gramq/query"
	"github.com/dhamidi/gramq/tree"
	"github.com/spf13/cobra"
)

// cursorSelector switches query to point/range mode.
const cursorSelector = "#"

func newQueryCmd(opts *options) *cobra.Command {
	var at int
	var region string

	cmd := &cobra.Command{
		Use:   "query <selector> [file]",
		Short: "Parse a file and print the nodes matching a selector",
		Long: `Parse a file and print the nodes matching a selector.

The selector is a dotted name path such as "class.name"; an empty selector
prints every node. The selector "#" queries by position instead: --at prints
the innermost node at an offset, --range prints every node inside b:e.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := args[0]
			cursor := selector == cursorSelector
			if !cursor && (cmd.Flags().Changed("at") || region != "") {
				return errors.New("--at and --range require the # selector")
			}

			var sel *query.Selector
			if !cursor {
				var err error
				if sel, err = query.CompileSelector(selector); err != nil {
					return err
				}
			}

			begin, end := at, at
			if region != "" {
				var err error
				if begin, end, err = parseRange(region); err != nil {
					return err
				}
			}

			g, err := loadGrammar(opts.cfg.Grammar, opts.cfg.Start)
			if err != nil {
				return err
			}
			filename := ""
			if len(args) == 2 {
				filename = args[1]
			}
			text, err := readInput(cmd.InOrStdin(), filename)
			if err != nil {
				return err
			}

			r := parse.Parse(g, text)

			var nodes []tree.Node
			if cursor {
				nodes = query.Region(r.Tree, begin, end)
			} else {
				nodes = sel.Match(r.Tree)
			}

			var enc format.Encoder
			switch opts.cfg.Format {
			case "json":
				enc = format.NewJSONEncoder(cmd.OutOrStdout())
			default:
				enc = format.NewLineEncoder(cmd.OutOrStdout())
			}
			if err := enc.Encode(nodes); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			status := format.Status(r.Diagnostics(), len(nodes))
			if cursor && r.Success {
				status = format.CursorStatus(nodes)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), status)
			return nil
		},
	}

	cmd.Flags().IntVar(&at, "at", 0, "offset for the # selector")
	cmd.Flags().StringVar(&region, "range", "", "range begin:end for the # selector")

	return cmd
}

func parseRange(s string) (int, int, error) {
	b, e, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q: want begin:end", s)
	}
	begin, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	end, err := strconv.Atoi(e)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return begin, end, nil
}
