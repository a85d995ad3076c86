// Package serrors defines the semantic error kinds of the solve pipeline and
// a wrapper type that attaches a kind and an optional cause to an error while
// staying fully compatible with errors.Is/As.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. It allows distinguishing semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

// kind is an unexported implementation of Kind used as a sentinel value for a
// semantic error category.
type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name. Kinds are comparable and can be matched with errors.Is/As through the
// serrors.Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

// The solve pipeline classifies every failure into one of these kinds. Each
// stage converts its failures at the stage boundary; none escape the process
// as a non-zero exit.
var (
	// ErrEmptyInput indicates no equation text was supplied; nothing is parsed
	// or solved.
	ErrEmptyInput = NewKind("EMPTY_INPUT")
	// ErrParse indicates the equation text could not be turned into a valid
	// expression in the unknown (disallowed token, unbalanced grouping,
	// foreign variable). Both solving stages are skipped because no
	// expression exists.
	ErrParse = NewKind("PARSE")
	// ErrSymbolicEngine indicates an internal fault of the symbolic kernel
	// during exact solving, as opposed to a legitimate "no solution" outcome.
	// The normalized expression stays usable, so the numeric stage still runs.
	ErrSymbolicEngine = NewKind("SYMBOLIC_ENGINE")
	// ErrEvaluation indicates the expression could not be converted into a
	// numerically evaluable function (residual symbolic parts); the numeric
	// stage aborts for this run.
	ErrEvaluation = NewKind("EVALUATION")
	// ErrNoConvergence indicates the iterative root-finder exhausted its
	// iteration budget or diverged. Reported with the finder's diagnostic,
	// never treated as fatal.
	ErrNoConvergence = NewKind("NO_CONVERGENCE")
)

// Error represents a semantic error carrying a kind (sentinel), an optional
// wrapped cause and an optional message. It fully supports errors.Is/errors.As
// and unwrapping: matching succeeds against either the kind sentinel or the
// wrapped cause.
//
// Error string formatting:
//   - If both msg and cause are set: "<msg>: <cause>"
//   - If only msg is set: "<msg>"
//   - If only cause is set: "<cause>"
//   - If neither is set: the kind's Error() string.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a new semantic error with the given kind and a
// human-readable message. Use Wrap if you also want to record a concrete cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind, wrapping the
// provided cause and adding a message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped cause, enabling errors.Unwrap/Is/As to traverse
// the chain.
func (e *Error) Unwrap() error { return e.err }

// Is matches against either the semantic kind sentinel or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As matches against either the semantic kind sentinel or the wrapped cause.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }
