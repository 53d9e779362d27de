// Package cerr defines the closed set of error kinds the compiler
// surfaces (unsupported-node, invalid-continue, invariant-violated) and
// is shared by the parser and lower packages so a caller sees one
// consistent error surface no matter which stage rejected the input.
package cerr

import "github.com/pkg/errors"

// Kind names one of the three error contracts the compiler may report.
type Kind string

const (
	// UnsupportedNode: the input (or an attempted lowering) contains a node
	// kind outside the supported ES5 subset.
	UnsupportedNode Kind = "unsupported-node"
	// InvalidContinue: a `continue` names a label that matches no loop frame
	// on the label stack.
	InvalidContinue Kind = "invalid-continue"
	// InvariantViolated: an internal defect, such as unbalanced
	// temporaries, unresolved jump handles, or a non-empty label stack
	// at finalization.
	InvariantViolated Kind = "invariant-violated"
)

// Error is satisfied by every error this compiler deliberately reports; it
// lets a caller branch on Kind() without a type switch over concrete types.
type Error interface {
	error
	Kind() Kind
}

type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Kind() Kind    { return e.kind }
func (e *kindError) Unwrap() error { return e.err }

// New wraps err, tagging it with kind. It is a no-op if err is nil.
func New(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// Errorf formats according to a format specifier and returns an error tagged
// with kind, with a captured stack trace courtesy of github.com/pkg/errors.
func Errorf(kind Kind, format string, a ...interface{}) error {
	return &kindError{kind: kind, err: errors.Errorf(format, a...)}
}

// KindOf returns the Kind of err if it (or something in its Unwrap chain)
// satisfies Error, and ok == false otherwise.
func KindOf(err error) (Kind, bool) {
	var ce Error
	if errors.As(err, &ce) {
		return ce.Kind(), true
	}
	return "", false
}
