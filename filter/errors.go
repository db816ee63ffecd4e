package filter

import (
	"fmt"
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Position   int // -1 if position is unknown
		Err        error
	}

	// EvaluationError indicates a filter failed at runtime on one item
	EvaluationError struct {
		Expression string
		Index      int
		Reason     string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("filter '%s' does not compile at position %d: %s", e.Expression, e.Position, e.Reason)
	}
	return fmt.Sprintf("filter '%s' does not compile: %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for filter '%s' on item %d: %s", e.Expression, e.Index, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
