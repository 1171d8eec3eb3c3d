package query_builder

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (possibly wrapped) by the builder.
var (
	// ErrMissingTable is returned when a statement has no table to operate on.
	ErrMissingTable = errors.New("query_builder: missing table")

	// ErrArgument is returned when Field receives arguments that do not match
	// the arity rules of the statement kind.
	ErrArgument = errors.New("query_builder: invalid argument")

	// ErrUnsupported is returned when Where is called with arguments.
	ErrUnsupported = errors.New("query_builder: unsupported operation")

	// ErrIncompleteCondition is returned when a condition is missing an operand or its operator.
	ErrIncompleteCondition = errors.New("query_builder: incomplete condition")

	// ErrTooManyOperands is returned when a condition receives a third operand.
	ErrTooManyOperands = errors.New("query_builder: too many operands")

	// ErrConditionDepth is returned when a condition chain is nested deeper than maxConditionDepth.
	ErrConditionDepth = errors.New("query_builder: condition depth exceeded")
)

// BuildError records the statement kind and the operation that failed.
type BuildError struct {
	Kind Kind   // Statement kind the error was recorded on
	Op   string // Operation that failed, e.g. "field" or "where"
	Err  error  // Underlying sentinel, possibly wrapped
}

// Error returns the error string.
func (e *BuildError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying error so errors.Is matches the sentinels.
func (e *BuildError) Unwrap() error {
	return e.Err
}

func newBuildError(kind Kind, op string, err error) *BuildError {
	return &BuildError{Kind: kind, Op: op, Err: err}
}
