package grammar

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the structured form of a grammar before compilation.
type Document struct {
	Root  string          `json:"root" yaml:"root"`
	Rules map[string]Body `json:"rules" yaml:"rules"`
}

// Body is one rule body. Exactly one shape key must be set: Literal, Text,
// Sequence, Alternation, Repeat, Ref or Capture.
// A bare string in a document is shorthand for a Ref.
type Body struct {
	Literal     *string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Text        *string `json:"text,omitempty" yaml:"text,omitempty"`
	Sequence    *[]Body `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	Alternation *[]Body `json:"alternation,omitempty" yaml:"alternation,omitempty"`
	Repeat      *Body   `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Min         *int    `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *int    `json:"max,omitempty" yaml:"max,omitempty"`
	Ref         string  `json:"ref,omitempty" yaml:"ref,omitempty"`
	Capture     string  `json:"capture,omitempty" yaml:"capture,omitempty"`
	Rule        *Body   `json:"rule,omitempty" yaml:"rule,omitempty"`
}

type bodyFields Body

// bodyKeys are the keys a rule body mapping may use.
var bodyKeys = map[string]bool{
	"literal":     true,
	"text":        true,
	"sequence":    true,
	"alternation": true,
	"repeat":      true,
	"min":         true,
	"max":         true,
	"ref":         true,
	"capture":     true,
	"rule":        true,
}

// UnmarshalJSON accepts either a rule body object or a bare rule name.
func (b *Body) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*b = Body{}
		return json.Unmarshal(data, &b.Ref)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var f bodyFields
	if err := dec.Decode(&f); err != nil {
		return err
	}
	*b = Body(f)
	return nil
}

// UnmarshalYAML accepts either a rule body mapping or a bare rule name.
func (b *Body) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*b = Body{}
		return value.Decode(&b.Ref)
	}
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i]
			if !bodyKeys[key.Value] {
				return fmt.Errorf("line %d: unknown field %q in rule body", key.Line, key.Value)
			}
		}
	}
	var f bodyFields
	if err := value.Decode(&f); err != nil {
		return err
	}
	*b = Body(f)
	return nil
}

// Decode reads a grammar document. Input starting with '{' is decoded as
// JSON, anything else as YAML.
func Decode(data []byte) (*Document, error) {
	var doc Document
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode json grammar: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml grammar: %w", err)
		}
	}
	return &doc, nil
}

// Text returns a body matching s exactly.
func Text(s string) Body { return Body{Text: &s} }

// Pattern returns a body matching the regular expression p.
func Pattern(p string) Body { return Body{Literal: &p} }

// Seq returns a sequence body.
func Seq(items ...Body) Body { return Body{Sequence: &items} }

// Alt returns an alternation body.
func Alt(items ...Body) Body { return Body{Alternation: &items} }

// Repeat returns a repetition body; hi < 0 means unbounded.
func Repeat(inner Body, lo, hi int) Body {
	return Body{Repeat: &inner, Min: &lo, Max: &hi}
}

// Ref returns a reference body.
func Ref(name string) Body { return Body{Ref: name} }

// Named returns a capture body.
func Named(name string, inner Body) Body { return Body{Capture: name, Rule: &inner} }
