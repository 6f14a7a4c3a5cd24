package query

import (
	"fmt"
	"strings"
	"unicode"
)

// Wildcard is a selector segment matching any named node.
const Wildcard = "*"

// SelectorError reports malformed selector syntax.
type SelectorError struct {
	Selector string
	Offset   int // byte offset of the problem
	Reason   string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q at %d: %s", e.Selector, e.Offset, e.Reason)
}

// Selector is a compiled dotted name path such as "class.name". Each
// segment matches a descendant, at any depth, of the previous segment's
// match.
type Selector struct {
	text     string
	segments []string
}

// CompileSelector parses a dotted selector. The empty selector selects
// every node.
func CompileSelector(s string) (*Selector, error) {
	sel := &Selector{text: s}
	if s == "" {
		return sel, nil
	}

	start := 0
	for i, r := range s {
		switch {
		case r == '.':
			if i == start {
				return nil, &SelectorError{Selector: s, Offset: i, Reason: "empty segment"}
			}
			sel.segments = append(sel.segments, s[start:i])
			start = i + 1
		case unicode.IsSpace(r):
			return nil, &SelectorError{Selector: s, Offset: i, Reason: "whitespace in segment"}
		}
	}
	if start == len(s) {
		return nil, &SelectorError{Selector: s, Offset: start, Reason: "empty segment"}
	}
	sel.segments = append(sel.segments, s[start:])

	for i, seg := range sel.segments {
		if strings.Contains(seg, Wildcard) && seg != Wildcard {
			return nil, &SelectorError{Selector: s, Offset: offsetOf(sel.segments, i), Reason: "wildcard must be a whole segment"}
		}
	}
	return sel, nil
}

// MustCompileSelector is like CompileSelector but panics on error.
func MustCompileSelector(s string) *Selector {
	sel, err := CompileSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func (s *Selector) String() string {
	return s.text
}

// Segments returns the selector's name segments.
func (s *Selector) Segments() []string {
	return append([]string(nil), s.segments...)
}

func offsetOf(segments []string, i int) int {
	off := 0
	for _, seg := range segments[:i] {
		off += len(seg) + 1
	}
	return off
}

func segmentMatches(seg, name string) bool {
	if seg == Wildcard {
		return name != ""
	}
	return seg == name
}
