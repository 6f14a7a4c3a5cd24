package grammar

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/dlclark/regexp2"
)

// Compile validates a document and turns it into a Grammar. Errors for
// several rules are joined in rule-name order; each is an *Error.
func Compile(doc *Document) (*Grammar, error) {
	if doc == nil {
		return nil, newError(ErrMalformedRule, "", "empty document")
	}

	c := &compiler{doc: doc}
	g := &Grammar{
		root:  doc.Root,
		rules: make(map[string]Expr, len(doc.Rules)),
		names: slices.Sorted(maps.Keys(doc.Rules)),
	}

	var errs []error
	if _, ok := doc.Rules[doc.Root]; !ok {
		errs = append(errs, newError(ErrUnknownRuleReference, "", "%q", doc.Root))
	}
	for _, name := range g.names {
		body := doc.Rules[name]
		expr, err := c.compile(name, &body)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		g.rules[name] = expr
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return g, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(doc *Document) *Grammar {
	g, err := Compile(doc)
	if err != nil {
		panic(err)
	}
	return g
}

type compiler struct {
	doc *Document
}

func (c *compiler) compile(rule string, b *Body) (Expr, error) {
	if b == nil {
		return nil, newError(ErrMalformedRule, rule, "missing rule body")
	}
	shapes := b.shapes()
	switch len(shapes) {
	case 0:
		return nil, newError(ErrMalformedRule, rule, "rule body has no shape")
	case 1:
	default:
		return nil, newError(ErrMalformedRule, rule, "rule body has several shapes: %s", strings.Join(shapes, ", "))
	}
	if b.Repeat == nil && (b.Min != nil || b.Max != nil) {
		return nil, newError(ErrMalformedRule, rule, "min/max outside of repeat")
	}
	if b.Capture == "" && b.Rule != nil {
		return nil, newError(ErrMalformedRule, rule, "rule outside of capture")
	}

	switch {
	case b.Literal != nil:
		return compileLiteral(rule, *b.Literal)

	case b.Text != nil:
		return compileLiteral(rule, regexp2.Escape(*b.Text))

	case b.Sequence != nil:
		items, err := c.compileAll(rule, *b.Sequence)
		if err != nil {
			return nil, err
		}
		return &Sequence{Items: items}, nil

	case b.Alternation != nil:
		if len(*b.Alternation) == 0 {
			return nil, newError(ErrMalformedRule, rule, "empty alternation")
		}
		items, err := c.compileAll(rule, *b.Alternation)
		if err != nil {
			return nil, err
		}
		return &Alternation{Items: items}, nil

	case b.Repeat != nil:
		lo, hi := 0, Unbounded
		if b.Min != nil {
			lo = *b.Min
		}
		if b.Max != nil && *b.Max >= 0 {
			hi = *b.Max
		}
		if lo < 0 {
			return nil, newError(ErrInvalidRepetitionBounds, rule, "min %d is negative", lo)
		}
		if hi != Unbounded && lo > hi {
			return nil, newError(ErrInvalidRepetitionBounds, rule, "min %d exceeds max %d", lo, hi)
		}
		inner, err := c.compile(rule, b.Repeat)
		if err != nil {
			return nil, err
		}
		return &Repetition{Inner: inner, Min: lo, Max: hi}, nil

	case b.Ref != "":
		if _, ok := c.doc.Rules[b.Ref]; !ok {
			return nil, newError(ErrUnknownRuleReference, rule, "%q", b.Ref)
		}
		return &Reference{Name: b.Ref}, nil

	default:
		if b.Rule == nil {
			return nil, newError(ErrMalformedRule, rule, "capture %q has no rule", b.Capture)
		}
		inner, err := c.compile(rule, b.Rule)
		if err != nil {
			return nil, err
		}
		return &Capture{Name: b.Capture, Inner: inner}, nil
	}
}

func (c *compiler) compileAll(rule string, bodies []Body) ([]Expr, error) {
	items := make([]Expr, 0, len(bodies))
	for i := range bodies {
		item, err := c.compile(rule, &bodies[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// compileLiteral checks the pattern on its own before anchoring it, so an
// unbalanced group cannot escape the anchor.
func compileLiteral(rule, pattern string) (Expr, error) {
	if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
		return nil, newError(ErrInvalidPattern, rule, "%q: %v", pattern, err)
	}
	re, err := regexp2.Compile(`\G(?:`+pattern+`)`, regexp2.None)
	if err != nil {
		return nil, newError(ErrInvalidPattern, rule, "%q: %v", pattern, err)
	}
	return &Literal{Pattern: pattern, re: re}, nil
}

func (b *Body) shapes() []string {
	var shapes []string
	if b.Literal != nil {
		shapes = append(shapes, "literal")
	}
	if b.Text != nil {
		shapes = append(shapes, "text")
	}
	if b.Sequence != nil {
		shapes = append(shapes, "sequence")
	}
	if b.Alternation != nil {
		shapes = append(shapes, "alternation")
	}
	if b.Repeat != nil {
		shapes = append(shapes, "repeat")
	}
	if b.Ref != "" {
		shapes = append(shapes, "ref")
	}
	if b.Capture != "" {
		shapes = append(shapes, "capture")
	}
	return shapes
}
