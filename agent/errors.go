package agent

import "fmt"

// OrchestrationError indicates the reasoning model failed mid-run.
// Tool failures never produce this error; they are isolated into error
// results and fed back to the model. A broken reasoning channel is the
// one failure the loop cannot recover from.
type OrchestrationError struct {
	// Step is the iteration on which the model query failed (1-indexed).
	Step int

	// Err is the underlying provider error.
	Err error
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("agent: reasoning model failed on iteration %d: %v", e.Step, e.Err)
}

func (e *OrchestrationError) Unwrap() error {
	return e.Err
}
