package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/gramq/query"
	"github.com/dhamidi/gramq/tree"
)

type JSONEncoder struct {
	w     io.Writer
	nodes []tree.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(nodes []tree.Node) error {
	e.nodes = nodes
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := make([]jsonNode, len(e.nodes))
	for i, n := range e.nodes {
		data[i] = jsonNode{
			Name:  n.Name(),
			Begin: n.Begin(),
			End:   n.End(),
			Value: n.Value(),
			Path:  query.Path(n),
		}
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonNode struct {
	Name  string   `json:"name"`
	Begin int      `json:"begin"`
	End   int      `json:"end"`
	Value string   `json:"value"`
	Path  []string `json:"path,omitempty"`
}

// TreeJSON returns the whole tree as nested JSON objects.
func TreeJSON(t *tree.Tree) ([]byte, error) {
	if t.Len() == 0 {
		return []byte("null"), nil
	}
	return json.MarshalIndent(treeToJSON(t.Root()), "", "  ")
}

type jsonTreeNode struct {
	Name     string          `json:"name,omitempty"`
	Begin    int             `json:"begin"`
	End      int             `json:"end"`
	Value    string          `json:"value,omitempty"`
	Children []*jsonTreeNode `json:"children,omitempty"`
}

func treeToJSON(n tree.Node) *jsonTreeNode {
	jn := &jsonTreeNode{
		Name:  n.Name(),
		Begin: n.Begin(),
		End:   n.End(),
	}
	children := n.Children()
	if len(children) == 0 {
		jn.Value = n.Value()
	}
	for _, child := range children {
		jn.Children = append(jn.Children, treeToJSON(child))
	}
	return jn
}
