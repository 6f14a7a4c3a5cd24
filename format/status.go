package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dhamidi/gramq/parse"
	"github.com/dhamidi/gramq/tree"
)

// Status returns the one-line summary shown after a parse, where tokens is
// the number of nodes a query returned.
func Status(d parse.Diagnostics, tokens int) string {
	if !d.Success {
		return fmt.Sprintf("Parsing failed [%d/%d] in %.2fs", d.EndOffset, d.Length, d.ElapsedSeconds)
	}
	return fmt.Sprintf("Parsing got %d tokens in %.2fs", tokens, d.ElapsedSeconds)
}

// CursorStatus lists the names of the nodes under a cursor or selection.
func CursorStatus(nodes []tree.Node) string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name())
	}
	return strings.Join(names, " ")
}

// DiagnosticsJSON encodes d, labelled with the name of the parsed input.
func DiagnosticsJSON(name string, d parse.Diagnostics) ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
		parse.Diagnostics
	}{name, d})
}
