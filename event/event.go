// Package event defines the observable events emitted by an agent run.
// Callers that use Agent.RunStream receive these on a channel and can
// drive progress UIs or logs from them.
package event

import (
	"time"

	ai "github.com/toolweave/toolweave"
)

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when an agent run begins.
	RunStart Type = "run_start"

	// RunEnd fires when a run completes with a final answer.
	RunEnd Type = "run_end"

	// RunError fires when an unrecoverable error ends the run.
	RunError Type = "run_error"
)

// Step lifecycle events
const (
	// StepStart fires at the top of each reasoning iteration.
	StepStart Type = "step_start"

	// StepEnd fires when an iteration completes.
	StepEnd Type = "step_end"
)

// Tool call lifecycle events
const (
	// ToolCallStart fires when a requested tool call is about to execute.
	ToolCallStart Type = "tool_call_start"

	// ToolCallResult fires with the outcome of a tool execution.
	ToolCallResult Type = "tool_call_result"

	// ToolCallCached fires when a call is satisfied from the cache
	// without executing the tool.
	ToolCallCached Type = "tool_call_cached"
)

// Event represents an observable occurrence during an agent run.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// Step is the current iteration number (1-indexed).
	Step int

	// Response contains the model response for StepEnd and RunEnd events.
	Response *ai.Response

	// ToolCall contains the tool call for tool-related events.
	ToolCall *ai.ToolCall

	// ToolResult contains the result for ToolCallResult and
	// ToolCallCached events.
	ToolResult *ai.ToolResult

	// Error contains the error for RunError events.
	Error error

	// Message carries additional context, such as a termination reason.
	Message string

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emit sends an event with timestamp to the channel without blocking.
// Events are dropped if the channel is full; a run never stalls on a
// slow listener.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
