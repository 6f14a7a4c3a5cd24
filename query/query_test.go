package query

import (
	"errors"
	"testing"

	"github.com/dhamidi/gramq/grammar"
	"github.com/dhamidi/gramq/parse"
	"github.com/dhamidi/gramq/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = "class Widget { int size; }\nclass Box { Widget w; }"

// parseSource builds:
//
//	"" > class > name, field > type, name ; class > name, field > type, name
func parseSource(t *testing.T) *tree.Tree {
	t.Helper()
	g, err := grammar.Compile(&grammar.Document{
		Root: "unit",
		Rules: map[string]grammar.Body{
			"unit": grammar.Repeat(grammar.Ref("class"), 0, grammar.Unbounded),
			"class": grammar.Named("class", grammar.Seq(
				grammar.Text("class "),
				grammar.Named("name", grammar.Ref("ident")),
				grammar.Text(" {"),
				grammar.Repeat(grammar.Ref("field"), 0, grammar.Unbounded),
				grammar.Text(" }"),
				grammar.Pattern(`\n?`),
			)),
			"field": grammar.Seq(grammar.Text(" "), grammar.Named("field", grammar.Seq(
				grammar.Named("type", grammar.Ref("ident")),
				grammar.Text(" "),
				grammar.Named("name", grammar.Ref("ident")),
				grammar.Text(";"),
			))),
			"ident": grammar.Pattern(`\w+`),
		},
	})
	require.NoError(t, err)
	r := parse.Parse(g, source)
	require.True(t, r.Success, "parse stopped at %d", r.EndOffset)
	return r.Tree
}

func values(nodes []tree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Value()
	}
	return out
}

func nodeNames(nodes []tree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func TestEnumerate(t *testing.T) {
	tr := parseSource(t)

	nodes := Enumerate(tr)
	require.Len(t, nodes, tr.Len())
	assert.Equal(t, tr.Root().ID(), nodes[0].ID())
	seen := map[tree.ID]bool{}
	for _, n := range nodes {
		assert.False(t, seen[n.ID()], "node %d visited twice", n.ID())
		seen[n.ID()] = true
	}
	assert.Equal(t, []string{"", "class", "name", "field", "type", "name", "class", "name", "field", "type", "name"}, nodeNames(nodes))
	assert.Equal(t, nodeNames(nodes), nodeNames(Enumerate(tr)), "enumeration must be stable")

	assert.Empty(t, Enumerate(nil))
}

func TestSelect(t *testing.T) {
	tr := parseSource(t)

	tests := []struct {
		selector string
		want     []string
	}{
		{"class.name", []string{"Widget", "size", "Box", "w"}},
		{"field.name", []string{"size", "w"}},
		{"class.field.type", []string{"int", "Widget"}},
		{"type", []string{"int", "Widget"}},
		{"field.class", nil},
		{"missing", nil},
		{"*.type", []string{"int", "Widget"}},
		{"class.*.name", []string{"size", "w"}},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			nodes, err := Select(tr, tt.selector)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, nodes)
				return
			}
			assert.Equal(t, tt.want, values(nodes))
		})
	}
}

func TestSelectSingleClassName(t *testing.T) {
	b := tree.NewBuilder([]rune("class Widget"))
	b.Open("", 0, 12)
	b.Open("class", 0, 12)
	b.Open("name", 6, 12)
	b.Close()
	b.Close()
	b.Close()

	nodes, err := Select(b.Tree(), "class.name")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Widget", nodes[0].Value())
}

func TestSelectEmptyIsEnumerate(t *testing.T) {
	tr := parseSource(t)

	nodes, err := Select(tr, "")
	require.NoError(t, err)
	assert.Equal(t, nodeNames(Enumerate(tr)), nodeNames(nodes))
}

func TestSelectInvalid(t *testing.T) {
	tests := []struct {
		selector string
		offset   int
	}{
		{".name", 0},
		{"class.", 6},
		{"class..name", 6},
		{"class name", 5},
		{"cl*ss", 0},
		{"class.n*", 6},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			nodes, err := Select(nil, tt.selector)
			assert.Nil(t, nodes)
			var serr *SelectorError
			require.True(t, errors.As(err, &serr), "got %v", err)
			assert.Equal(t, tt.selector, serr.Selector)
			assert.Equal(t, tt.offset, serr.Offset)
		})
	}
}

func TestAtPoint(t *testing.T) {
	tr := parseSource(t)

	tests := []struct {
		offset int
		name   string
		value  string
	}{
		{0, "class", "class Widget { int size; }\n"},
		{6, "name", "Widget"},
		{11, "name", "Widget"},
		{15, "type", "int"},
		{18, "field", "int size;"},
		{19, "name", "size"},
		{27, "class", "class Box { Widget w; }"},
	}
	for _, tt := range tests {
		n, ok := AtPoint(tr, tt.offset)
		require.True(t, ok, "offset %d", tt.offset)
		assert.Equal(t, tt.name, n.Name(), "offset %d", tt.offset)
		assert.Equal(t, tt.value, n.Value(), "offset %d", tt.offset)

		for other := range tr.All() {
			if other.Contains(tt.offset) {
				assert.LessOrEqual(t, other.Depth(), n.Depth(), "deeper node %d contains %d", other.ID(), tt.offset)
			}
		}
	}

	_, ok := AtPoint(tr, len([]rune(source)))
	assert.False(t, ok, "end of text lies outside every half-open span")
	_, ok = AtPoint(tr, -1)
	assert.False(t, ok)
	_, ok = AtPoint(nil, 0)
	assert.False(t, ok)
}

func TestAtPointZeroWidthTie(t *testing.T) {
	b := tree.NewBuilder([]rune("ab"))
	b.Open("", 0, 2)
	b.Open("a", 0, 1)
	b.Close()
	b.Open("first", 1, 1)
	b.Close()
	b.Open("second", 1, 1)
	b.Close()
	b.Open("b", 1, 2)
	b.Close()
	b.Close()
	tr := b.Tree()

	n, ok := AtPoint(tr, 1)
	require.True(t, ok)
	assert.Equal(t, "first", n.Name())
}

func TestWithinRange(t *testing.T) {
	tr := parseSource(t)

	nodes := WithinRange(tr, 13, 26)
	assert.Equal(t, []string{"field", "type", "name"}, nodeNames(nodes))
	assert.Equal(t, []string{"int size;", "int", "size"}, values(nodes))

	all := WithinRange(tr, 0, len([]rune(source)))
	assert.Len(t, all, tr.Len())

	for _, n := range WithinRange(tr, 5, 40) {
		assert.GreaterOrEqual(t, n.Begin(), 5)
		assert.LessOrEqual(t, n.End(), 40)
	}

	assert.Empty(t, WithinRange(tr, 30, 10))
	assert.Empty(t, WithinRange(tr, 100, 200))
	assert.Empty(t, WithinRange(nil, 0, 10))
}

func TestRegion(t *testing.T) {
	tr := parseSource(t)

	assert.Equal(t, []string{"name"}, nodeNames(Region(tr, 7, 7)))
	assert.Equal(t, []string{"type"}, nodeNames(Region(tr, 18, 15)))
	assert.Empty(t, Region(tr, 500, 500))
}

func TestPath(t *testing.T) {
	tr := parseSource(t)

	n, ok := AtPoint(tr, 19)
	require.True(t, ok)
	assert.Equal(t, []string{"class", "field", "name"}, Path(n))
	assert.Empty(t, Path(tr.Root()))
}
