package grammar

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestFromEBNF(t *testing.T) {
	src := `
		Package = "package" " " ident { "." ident } ";" .
		ident = letter { letter } .
		letter = "a" … "z" | [ "_" ] .
	`
	g, err := ebnf.Parse("test.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse ebnf: %v", err)
	}

	doc, err := FromEBNF(g, "Package")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(doc.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(doc.Rules))
	}
	for name, body := range doc.Rules {
		if body.Capture != name {
			t.Errorf("rule %s is not captured under its own name: %+v", name, body)
		}
	}

	compiled, err := Compile(doc)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	expr, _ := compiled.Rule("letter")
	alt, ok := expr.(*Capture).Inner.(*Alternation)
	if !ok {
		t.Fatalf("letter body is %T, want *Alternation", expr.(*Capture).Inner)
	}
	lit := alt.Items[0].(*Literal)
	if lit.Pattern != "[a-z]" {
		t.Errorf("range pattern = %q, want [a-z]", lit.Pattern)
	}
	opt := alt.Items[1].(*Repetition)
	if opt.Min != 0 || opt.Max != 1 {
		t.Errorf("option bounds = %d..%d, want 0..1", opt.Min, opt.Max)
	}
}

func TestLoadEBNF(t *testing.T) {
	_, err := LoadEBNF("bad.ebnf", []byte(`A = B .`), "A")
	if err == nil {
		t.Fatal("expected verification error for undefined production")
	}

	doc, err := LoadEBNF("ok.ebnf", []byte(`A = "x" B . B = "-" "]" .`), "A")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := Compile(doc); err != nil {
		t.Errorf("compile: %v", err)
	}
}

func TestFromEBNFRejectsWordRange(t *testing.T) {
	g, err := ebnf.Parse("r.ebnf", strings.NewReader(`A = "ab" … "cd" .`))
	if err != nil {
		t.Fatalf("parse ebnf: %v", err)
	}
	_, err = FromEBNF(g, "A")
	if !errors.Is(err, ErrMalformedRule) {
		t.Errorf("expected malformed rule, got %v", err)
	}
}
