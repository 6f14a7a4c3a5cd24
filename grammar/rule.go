// Package grammar compiles declarative grammar documents into immutable rule sets.
package grammar

import (
	"github.com/dlclark/regexp2"
)

// Unbounded is the Max of a Repetition without an upper limit.
const Unbounded = -1

// Expr is a compiled rule expression. The set of implementations is closed:
// *Literal, *Sequence, *Alternation, *Repetition, *Reference and *Capture.
type Expr interface {
	expr()
}

// Literal matches a pattern anchored at the cursor.
type Literal struct {
	Pattern string
	re      *regexp2.Regexp
}

// Sequence matches every item in order, all or nothing.
type Sequence struct {
	Items []Expr
}

// Alternation matches the first item that matches.
type Alternation struct {
	Items []Expr
}

// Repetition matches Inner between Min and Max times.
type Repetition struct {
	Inner Expr
	Min   int
	Max   int // Unbounded for no limit
}

// Reference matches the named rule.
type Reference struct {
	Name string
}

// Capture materializes a named node around the match of Inner.
type Capture struct {
	Name  string
	Inner Expr
}

func (*Literal) expr()     {}
func (*Sequence) expr()    {}
func (*Alternation) expr() {}
func (*Repetition) expr()  {}
func (*Reference) expr()   {}
func (*Capture) expr()     {}

// MatchAt reports the end offset of the pattern matched exactly at offset at.
// Offsets are rune indices into text.
func (l *Literal) MatchAt(text []rune, at int) (int, bool) {
	if at < 0 || at > len(text) {
		return at, false
	}
	m, err := l.re.FindRunesMatchStartingAt(text, at)
	if err != nil || m == nil || m.Index != at {
		return at, false
	}
	return at + m.Length, true
}

// Bounded reports whether the repetition has an upper limit.
func (r *Repetition) Bounded() bool {
	return r.Max >= 0
}

// Grammar is a compiled, immutable set of named rules. It is safe for
// concurrent use.
type Grammar struct {
	root  string
	rules map[string]Expr
	names []string
}

// Root returns the name of the entry rule.
func (g *Grammar) Root() string {
	return g.root
}

// Rule returns the compiled expression of the named rule.
func (g *Grammar) Rule(name string) (Expr, bool) {
	e, ok := g.rules[name]
	return e, ok
}

// Names returns all rule names in sorted order.
func (g *Grammar) Names() []string {
	return append([]string(nil), g.names...)
}
