package grammar

import (
	"errors"
	"fmt"
)

// Kinds of compile errors. Match them with errors.Is.
var (
	ErrUnknownRuleReference    = errors.New("unknown rule reference")
	ErrInvalidPattern          = errors.New("invalid pattern")
	ErrInvalidRepetitionBounds = errors.New("invalid repetition bounds")
	ErrMalformedRule           = errors.New("malformed rule")
)

// Error is a load-time error tied to one rule of a grammar document.
type Error struct {
	Kind   error
	Rule   string
	Detail string
}

func (e *Error) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("root: %v: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("rule %q: %v: %s", e.Rule, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, rule, format string, args ...any) *Error {
	return &Error{Kind: kind, Rule: rule, Detail: fmt.Sprintf(format, args...)}
}
