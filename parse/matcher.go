// Package parse matches source text against a compiled grammar and builds
// parse trees.
package parse

import (
	"fmt"

	"github.com/dhamidi/gramq/grammar"
	"github.com/dhamidi/gramq/tree"
)

// pnode is a capture produced while matching. Only the nodes on the chosen
// path end up in the tree.
type pnode struct {
	name     string
	begin    int
	end      int
	children []*pnode
}

// outcome of matching one expression. On failure, end and nodes describe
// the furthest partial match so it can be reported.
type outcome struct {
	ok    bool
	end   int
	nodes []*pnode
}

// memoKey is used for memoization of rule results.
type memoKey struct {
	name   string
	offset int
}

type matcher struct {
	grammar  *grammar.Grammar
	text     []rune
	furthest int
	memo     map[memoKey]outcome // memoization cache for references
	visiting map[memoKey]bool    // left-recursion guard
	// guarded collects the rules whose guard failed a re-entry during the
	// current reference. An outcome that depends on a rule still being
	// visited is not memoized.
	guarded  map[memoKey]bool
}

// Match runs the grammar's root rule over text. It never fails for
// ordinary non-matching input; Result.Success and Result.EndOffset describe
// how far the match got. g must come from grammar.Compile.
func Match(g *grammar.Grammar, text string) *Result {
	m := &matcher{
		grammar:  g,
		text:     []rune(text),
		memo:     make(map[memoKey]outcome),
		visiting: make(map[memoKey]bool),
	}

	o := m.reference(g.Root(), 0)

	r := &Result{
		Success:   o.ok && o.end == len(m.text),
		EndOffset: m.furthest,
		Length:    len(m.text),
		Tree:      m.build(o),
	}
	if r.Success {
		r.EndOffset = len(m.text)
	}
	return r
}

func (m *matcher) match(expr grammar.Expr, at int) outcome {
	switch e := expr.(type) {
	case *grammar.Literal:
		end, ok := e.MatchAt(m.text, at)
		if !ok {
			return outcome{end: at}
		}
		if end > m.furthest {
			m.furthest = end
		}
		return outcome{ok: true, end: end}

	case *grammar.Sequence:
		return m.sequence(e.Items, at)

	case *grammar.Alternation:
		return m.alternation(e.Items, at)

	case *grammar.Repetition:
		return m.repetition(e, at)

	case *grammar.Reference:
		return m.reference(e.Name, at)

	case *grammar.Capture:
		o := m.match(e.Inner, at)
		if !o.ok && o.end == at && len(o.nodes) == 0 {
			return o
		}
		n := &pnode{name: e.Name, begin: at, end: o.end, children: o.nodes}
		return outcome{ok: o.ok, end: o.end, nodes: []*pnode{n}}
	}
	panic(fmt.Sprintf("parse: unknown expression %T", expr))
}

// sequence is all or nothing: the caller restores its cursor on failure.
func (m *matcher) sequence(items []grammar.Expr, at int) outcome {
	cur := at
	var nodes []*pnode
	for _, item := range items {
		o := m.match(item, cur)
		nodes = append(nodes, o.nodes...)
		if !o.ok {
			return outcome{end: o.end, nodes: nodes}
		}
		cur = o.end
	}
	return outcome{ok: true, end: cur, nodes: nodes}
}

// alternation takes the first item that matches, regardless of length.
func (m *matcher) alternation(items []grammar.Expr, at int) outcome {
	best := outcome{end: at}
	for _, item := range items {
		o := m.match(item, at)
		if o.ok {
			return o
		}
		if o.end > best.end {
			best = o
		}
	}
	return best
}

func (m *matcher) repetition(r *grammar.Repetition, at int) outcome {
	cur := at
	count := 0
	var nodes []*pnode
	for !r.Bounded() || count < r.Max {
		o := m.match(r.Inner, cur)
		if !o.ok {
			if count < r.Min {
				return outcome{end: o.end, nodes: append(nodes, o.nodes...)}
			}
			break
		}
		nodes = append(nodes, o.nodes...)
		count++
		if o.end == cur {
			// An empty iteration would repeat forever; it stands in for
			// every remaining one.
			break
		}
		cur = o.end
	}
	return outcome{ok: true, end: cur, nodes: nodes}
}

func (m *matcher) reference(name string, at int) outcome {
	key := memoKey{name: name, offset: at}

	if o, ok := m.memo[key]; ok {
		return o
	}

	// Re-entering a rule at the same offset is left recursion; fail it so
	// the enclosing alternatives can proceed.
	if m.visiting[key] {
		if m.guarded == nil {
			m.guarded = make(map[memoKey]bool)
		}
		m.guarded[key] = true
		return outcome{end: at}
	}

	expr, ok := m.grammar.Rule(name)
	if !ok {
		panic(fmt.Sprintf("parse: rule %q not in grammar", name))
	}

	outer := m.guarded
	m.guarded = nil

	m.visiting[key] = true
	o := m.match(expr, at)
	delete(m.visiting, key)

	// Failing our own re-entry is part of what this rule means at this
	// offset; failing an enclosing rule's re-entry is not.
	inner := m.guarded
	delete(inner, key)
	if len(inner) == 0 {
		m.memo[key] = o
	}

	for k := range inner {
		if outer == nil {
			outer = make(map[memoKey]bool)
		}
		outer[k] = true
	}
	m.guarded = outer
	return o
}

func (m *matcher) build(o outcome) *tree.Tree {
	b := tree.NewBuilder(m.text)
	b.Open("", 0, o.end)
	for _, n := range o.nodes {
		addNode(b, n)
	}
	b.Close()
	return b.Tree()
}

func addNode(b *tree.Builder, n *pnode) {
	b.Open(n.name, n.begin, n.end)
	for _, child := range n.children {
		addNode(b, child)
	}
	b.Close()
}
