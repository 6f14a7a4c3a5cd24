package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/gramq/tree"
)

// LineEncoder writes each node as
//
//	#begin:end => name
//	   => value
type LineEncoder struct {
	w     io.Writer
	nodes []tree.Node
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(nodes []tree.Node) error {
	e.nodes = nodes
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, n := range e.nodes {
		fmt.Fprintf(&sb, "#%d:%d => %s\n", n.Begin(), n.End(), n.Name())
		fmt.Fprintf(&sb, "   => %s\n", n.Value())
	}
	fmt.Fprintf(&sb, "Total: %d tokens\n", len(e.nodes))
	return []byte(sb.String()), nil
}
