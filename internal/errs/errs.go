// Package errs defines the sentinel error taxonomy shared across genforge's
// packages, wrapped with fmt.Errorf("...: %w", ...) at each call site.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrArgument marks a malformed caller input (bad CLI flag, bad config
	// value) that never reaches the formula/solver layer.
	ErrArgument = errors.New("invalid argument")

	// ErrFile marks a failure to read or write a named file.
	ErrFile = errors.New("file error")

	// ErrParse marks a failure to parse CSV or configuration content.
	ErrParse = errors.New("parse error")

	// ErrArity marks a Formula.Evaluate call whose values slice does not
	// match the declared variable count.
	ErrArity = errors.New("arity mismatch")

	// ErrDomain marks a fitness evaluator rejecting a row set (e.g.
	// mismatched input/expected row counts).
	ErrDomain = errors.New("domain error")

	// ErrMutation marks a changer that could not produce a valid
	// replacement formula (e.g. no binary operator to flip).
	ErrMutation = errors.New("mutation error")

	// ErrPoolInvariant marks an internal solver-pool invariant violation.
	ErrPoolInvariant = errors.New("pool invariant violation")
)

// Arityf wraps ErrArity with the expected and actual argument counts.
func Arityf(expected, actual int) error {
	return fmt.Errorf("%w: expected %d values, got %d", ErrArity, expected, actual)
}

// Domainf wraps ErrDomain with a formatted detail message.
func Domainf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDomain}, args...)...)
}

// Mutationf wraps ErrMutation with a formatted detail message.
func Mutationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMutation}, args...)...)
}

// Parsef wraps ErrParse with a formatted detail message.
func Parsef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrParse}, args...)...)
}

// Filef wraps ErrFile with a formatted detail message.
func Filef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFile}, args...)...)
}

// Argumentf wraps ErrArgument with a formatted detail message.
func Argumentf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrArgument}, args...)...)
}
