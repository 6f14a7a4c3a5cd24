// Package tree holds parse trees as an arena of nodes addressed by index.
//
// Node ids are assigned in pre-order, so ascending id order is document
// order. Parents are stored as indices and never own their children.
package tree

import (
	"iter"
)

// ID addresses a node inside one Tree.
type ID int

// None is the ID of a missing node, such as the parent of the root.
const None ID = -1

type node struct {
	name     string
	begin    int
	end      int
	depth    int
	parent   ID
	children []ID
}

// Tree is an immutable parse tree over one source text.
type Tree struct {
	text  []rune
	nodes []node
}

// Node is a lightweight handle to a node of a Tree.
type Node struct {
	tree *Tree
	id   ID
}

// Text returns the source text the tree was built from.
func (t *Tree) Text() string {
	return string(t.text)
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Root returns the root node. It is invalid when the tree is empty.
func (t *Tree) Root() Node {
	if t.Len() == 0 {
		return Node{}
	}
	return Node{tree: t, id: 0}
}

// Node returns the node with the given id.
func (t *Tree) Node(id ID) Node {
	if id < 0 || int(id) >= t.Len() {
		return Node{}
	}
	return Node{tree: t, id: id}
}

// All iterates over every node in pre-order.
func (t *Tree) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for i := 0; i < t.Len(); i++ {
			if !yield(Node{tree: t, id: ID(i)}) {
				return
			}
		}
	}
}

// Walk calls fn for every node in pre-order. Returning false from fn skips
// the node's descendants.
func (t *Tree) Walk(fn func(Node) bool) {
	if t.Len() == 0 {
		return
	}
	var walk func(id ID)
	walk = func(id ID) {
		if !fn(Node{tree: t, id: id}) {
			return
		}
		for _, child := range t.nodes[id].children {
			walk(child)
		}
	}
	walk(0)
}

// Valid reports whether n refers to a node.
func (n Node) Valid() bool {
	return n.tree != nil
}

// ID returns the node's id; ids ascend in document order.
func (n Node) ID() ID {
	if n.tree == nil {
		return None
	}
	return n.id
}

// Tree returns the tree the node belongs to.
func (n Node) Tree() *Tree {
	return n.tree
}

func (n Node) data() *node {
	return &n.tree.nodes[n.id]
}

// Name returns the capture name; the root's name is empty.
func (n Node) Name() string {
	return n.data().name
}

// Begin returns the offset of the first character of the node.
func (n Node) Begin() int {
	return n.data().begin
}

// End returns the offset just past the node.
func (n Node) End() int {
	return n.data().end
}

// Value returns the source text spanned by the node.
func (n Node) Value() string {
	d := n.data()
	return string(n.tree.text[d.begin:d.end])
}

// Depth returns the number of ancestors of n.
func (n Node) Depth() int {
	return n.data().depth
}

// Parent returns the enclosing node, or an invalid node for the root.
func (n Node) Parent() Node {
	return n.tree.Node(n.data().parent)
}

// Children returns the child nodes in document order.
func (n Node) Children() []Node {
	ids := n.data().children
	if len(ids) == 0 {
		return nil
	}
	children := make([]Node, len(ids))
	for i, id := range ids {
		children[i] = Node{tree: n.tree, id: id}
	}
	return children
}

// Ancestors iterates from the parent of n up to the root.
func (n Node) Ancestors() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for p := n.Parent(); p.Valid(); p = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

// Contains reports whether offset lies inside [Begin, End), or equals the
// position of a zero-width node.
func (n Node) Contains(offset int) bool {
	d := n.data()
	if d.begin == d.end {
		return offset == d.begin
	}
	return d.begin <= offset && offset < d.end
}

// Within reports whether the node lies inside [begin, end].
func (n Node) Within(begin, end int) bool {
	d := n.data()
	return begin <= d.begin && d.end <= end
}
