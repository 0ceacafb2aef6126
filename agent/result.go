package agent

import (
	ai "github.com/toolweave/toolweave"
	"github.com/toolweave/toolweave/store"
)

// TerminationReason indicates why a run stopped.
type TerminationReason string

const (
	// TerminationComplete indicates the model produced a final answer.
	TerminationComplete TerminationReason = "complete"

	// TerminationMaxIterations indicates the iteration limit was reached
	// while the model was still requesting tools.
	TerminationMaxIterations TerminationReason = "max_iterations"

	// TerminationCancelled indicates context cancellation.
	TerminationCancelled TerminationReason = "cancelled"

	// TerminationError indicates the reasoning model failed.
	TerminationError TerminationReason = "error"
)

// TruncatedAnswer is the answer of last resort: it is returned when the
// iteration limit is reached and no assistant text accumulated along the
// way to serve as a best-effort answer.
const TruncatedAnswer = "I could not complete the request within the allowed number of steps."

// Result is the outcome of an agent run.
type Result struct {
	// FinalAnswer is the answer text. For a truncated run this is the
	// best-effort answer: the last assistant text seen, or
	// TruncatedAnswer when there was none.
	FinalAnswer string

	// Truncated reports whether the run hit the iteration limit instead
	// of reaching a natural final answer.
	Truncated bool

	// Response is the last model response, if any.
	Response *ai.Response

	// Steps is the number of model queries made.
	Steps int

	// Termination indicates why the run stopped.
	Termination TerminationReason

	// TotalUsage aggregates token usage across all model queries.
	TotalUsage ai.Usage

	// Error is the error that ended the run, if any.
	Error error

	history *store.MessageStore
}

// Messages returns the full conversation history, including tool call
// and tool result traffic.
func (r *Result) Messages() []ai.Message {
	if r.history == nil {
		return nil
	}
	return r.history.Messages()
}

// MessageCount returns the number of messages in the conversation history.
func (r *Result) MessageCount() int {
	if r.history == nil {
		return 0
	}
	return r.history.Len()
}

// LastMessages returns the last n messages from the conversation history.
func (r *Result) LastMessages(n int) []ai.Message {
	if r.history == nil {
		return nil
	}
	return r.history.Last(n)
}
