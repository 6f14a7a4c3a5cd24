package grammar

import (
	"strings"
	"testing"
)

const jsonGrammar = `{
	"root": "unit",
	"rules": {
		"unit": {"sequence": [{"text": "class "}, {"capture": "name", "rule": "ident"}]},
		"ident": {"literal": "[A-Za-z_][A-Za-z0-9_]*"},
		"list": {"repeat": "ident", "min": 1}
	}
}`

const yamlGrammar = `
root: unit
rules:
  unit:
    sequence:
      - text: "class "
      - capture: name
        rule: ident
  ident:
    literal: "[A-Za-z_][A-Za-z0-9_]*"
  list:
    repeat: ident
    min: 1
`

func TestDecode(t *testing.T) {
	for name, src := range map[string]string{"json": jsonGrammar, "yaml": yamlGrammar} {
		t.Run(name, func(t *testing.T) {
			doc, err := Decode([]byte(src))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if doc.Root != "unit" {
				t.Errorf("Root = %q, want unit", doc.Root)
			}
			unit := doc.Rules["unit"]
			if unit.Sequence == nil || len(*unit.Sequence) != 2 {
				t.Fatalf("unit sequence = %+v", unit.Sequence)
			}
			capture := (*unit.Sequence)[1]
			if capture.Capture != "name" || capture.Rule == nil || capture.Rule.Ref != "ident" {
				t.Errorf("capture = %+v, want capture name of ref ident", capture)
			}
			list := doc.Rules["list"]
			if list.Repeat == nil || list.Repeat.Ref != "ident" || list.Min == nil || *list.Min != 1 || list.Max != nil {
				t.Errorf("list = %+v", list)
			}

			g, err := Compile(doc)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			expr, _ := g.Rule("list")
			if rep := expr.(*Repetition); rep.Min != 1 || rep.Max != Unbounded {
				t.Errorf("list bounds = %d..%d", rep.Min, rep.Max)
			}
		})
	}
}

func TestDecodeRejectsUnknownJSONKeys(t *testing.T) {
	_, err := Decode([]byte(`{"root": "a", "rules": {"a": {"txt": "x"}}}`))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestDecodeRejectsUnknownYAMLKeys(t *testing.T) {
	src := `
root: a
rules:
  a:
    sequence:
      - repeat: "x"
        mn: 1
`
	_, err := Decode([]byte(src))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), `unknown field "mn"`) {
		t.Errorf("error = %v, want it to name the unknown key", err)
	}
}

func TestDecodeEmptySequence(t *testing.T) {
	doc, err := Decode([]byte(`{"root": "a", "rules": {"a": {"sequence": []}}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := Compile(doc); err != nil {
		t.Errorf("empty sequence should compile: %v", err)
	}
}
