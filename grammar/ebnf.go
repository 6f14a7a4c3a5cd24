package grammar

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"golang.org/x/exp/ebnf"
)

// FromEBNF converts an EBNF grammar into a document rooted at start.
// Every production becomes a capture named after the production.
func FromEBNF(g ebnf.Grammar, start string) (*Document, error) {
	doc := &Document{
		Root:  start,
		Rules: make(map[string]Body, len(g)),
	}
	for _, name := range slices.Sorted(maps.Keys(g)) {
		prod := g[name]
		if prod == nil {
			continue
		}
		body, err := fromExpression(name, prod.Expr)
		if err != nil {
			return nil, err
		}
		doc.Rules[name] = Named(name, body)
	}
	return doc, nil
}

func fromExpression(rule string, expr ebnf.Expression) (Body, error) {
	switch e := expr.(type) {
	case nil:
		return Seq(), nil

	case *ebnf.Name:
		return Ref(e.String), nil

	case *ebnf.Token:
		return Text(e.String), nil

	case *ebnf.Range:
		if utf8.RuneCountInString(e.Begin.String) != 1 || utf8.RuneCountInString(e.End.String) != 1 {
			return Body{}, newError(ErrMalformedRule, rule, "range %q … %q is not a character range", e.Begin.String, e.End.String)
		}
		return Pattern("[" + classEscape(e.Begin.String) + "-" + classEscape(e.End.String) + "]"), nil

	case *ebnf.Group:
		return fromExpression(rule, e.Body)

	case *ebnf.Option:
		body, err := fromExpression(rule, e.Body)
		if err != nil {
			return Body{}, err
		}
		return Repeat(body, 0, 1), nil

	case *ebnf.Repetition:
		body, err := fromExpression(rule, e.Body)
		if err != nil {
			return Body{}, err
		}
		return Repeat(body, 0, Unbounded), nil

	case ebnf.Sequence:
		items, err := fromExpressions(rule, e)
		if err != nil {
			return Body{}, err
		}
		return Seq(items...), nil

	case ebnf.Alternative:
		items, err := fromExpressions(rule, e)
		if err != nil {
			return Body{}, err
		}
		return Alt(items...), nil

	case *ebnf.Bad:
		return Body{}, newError(ErrMalformedRule, rule, "%s", e.Error)
	}
	return Body{}, newError(ErrMalformedRule, rule, "unsupported expression %T", expr)
}

func fromExpressions(rule string, exprs []ebnf.Expression) ([]Body, error) {
	items := make([]Body, 0, len(exprs))
	for _, expr := range exprs {
		item, err := fromExpression(rule, expr)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func classEscape(s string) string {
	if strings.ContainsAny(s, `\]^-[`) {
		return `\` + s
	}
	return regexp2.Escape(s)
}

// LoadEBNF parses EBNF source and verifies it against start before
// converting it.
func LoadEBNF(filename string, src []byte, start string) (*Document, error) {
	g, err := ebnf.Parse(filename, bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse ebnf: %w", err)
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify ebnf: %w", err)
	}
	return FromEBNF(g, start)
}
