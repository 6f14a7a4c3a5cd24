package tree

import "fmt"

// Builder appends nodes to a new Tree. Nodes must be opened in pre-order:
// a parent before its children, siblings left to right.
type Builder struct {
	t    *Tree
	open []ID
}

// NewBuilder starts a tree over text.
func NewBuilder(text []rune) *Builder {
	return &Builder{t: &Tree{text: text}}
}

// Open adds a node as a child of the innermost open node and opens it.
func (b *Builder) Open(name string, begin, end int) ID {
	if begin < 0 || end < begin || end > len(b.t.text) {
		panic(fmt.Sprintf("tree: invalid span [%d, %d) for text of length %d", begin, end, len(b.t.text)))
	}
	id := ID(len(b.t.nodes))
	parent := None
	depth := 0
	if len(b.open) > 0 {
		parent = b.open[len(b.open)-1]
		depth = b.t.nodes[parent].depth + 1
		b.t.nodes[parent].children = append(b.t.nodes[parent].children, id)
	}
	b.t.nodes = append(b.t.nodes, node{
		name:   name,
		begin:  begin,
		end:    end,
		depth:  depth,
		parent: parent,
	})
	b.open = append(b.open, id)
	return id
}

// Close closes the innermost open node.
func (b *Builder) Close() {
	if len(b.open) == 0 {
		panic("tree: Close without Open")
	}
	b.open = b.open[:len(b.open)-1]
}

// Tree returns the finished tree. The builder must not be used afterwards.
func (b *Builder) Tree() *Tree {
	if len(b.open) > 0 {
		panic(fmt.Sprintf("tree: %d nodes still open", len(b.open)))
	}
	t := b.t
	b.t = nil
	return t
}
