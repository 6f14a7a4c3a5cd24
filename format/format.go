// Package format renders query results and parse diagnostics.
package format

import (
	"encoding"

	"github.com/dhamidi/gramq/tree"
)

// Encoder writes a list of nodes.
type Encoder interface {
	encoding.TextMarshaler
	Encode(nodes []tree.Node) error
}
