// Package query answers structural queries over parse trees: full
// enumeration, selector paths, point containment and range containment.
//
// All queries are read-only and safe to run concurrently on one tree.
// Queries that match nothing return an empty slice, never an error.
package query

import (
	"slices"

	"github.com/dhamidi/gramq/tree"
)

// Enumerate returns every node in pre-order, root included.
func Enumerate(t *tree.Tree) []tree.Node {
	nodes := make([]tree.Node, 0, t.Len())
	for n := range t.All() {
		nodes = append(nodes, n)
	}
	return nodes
}

// Select compiles selector and returns the matching nodes in document
// order. Malformed selectors fail before the tree is visited.
func Select(t *tree.Tree, selector string) ([]tree.Node, error) {
	sel, err := CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	return sel.Match(t), nil
}

// Match returns the nodes selected by s in document order.
func (s *Selector) Match(t *tree.Tree) []tree.Node {
	if len(s.segments) == 0 {
		return Enumerate(t)
	}
	var nodes []tree.Node
	for n := range t.All() {
		if s.matches(n) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// matches checks the last segment against n and the remaining segments
// against its ancestors, nearest first.
func (s *Selector) matches(n tree.Node) bool {
	last := len(s.segments) - 1
	if !segmentMatches(s.segments[last], n.Name()) {
		return false
	}
	i := last - 1
	for a := range n.Ancestors() {
		if i < 0 {
			break
		}
		if segmentMatches(s.segments[i], a.Name()) {
			i--
		}
	}
	return i < 0
}

// AtPoint returns the deepest node containing offset; between equally deep
// candidates the first in document order wins.
func AtPoint(t *tree.Tree, offset int) (tree.Node, bool) {
	var best tree.Node
	for n := range t.All() {
		if !n.Contains(offset) {
			continue
		}
		if !best.Valid() || n.Depth() > best.Depth() {
			best = n
		}
	}
	return best, best.Valid()
}

// WithinRange returns every node lying inside [begin, end], nested ones
// included, in document order.
func WithinRange(t *tree.Tree, begin, end int) []tree.Node {
	var nodes []tree.Node
	if begin > end {
		return nodes
	}
	for n := range t.All() {
		if n.Within(begin, end) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Region answers an editor selection: an empty selection is a point query,
// any other one a range query.
func Region(t *tree.Tree, begin, end int) []tree.Node {
	if begin == end {
		if n, ok := AtPoint(t, begin); ok {
			return []tree.Node{n}
		}
		return nil
	}
	if begin > end {
		begin, end = end, begin
	}
	return WithinRange(t, begin, end)
}

// Path returns the names of the named nodes from the top of the tree down
// to n.
func Path(n tree.Node) []string {
	var path []string
	if n.Name() != "" {
		path = append(path, n.Name())
	}
	for a := range n.Ancestors() {
		if a.Name() != "" {
			path = append(path, a.Name())
		}
	}
	slices.Reverse(path)
	return path
}
