package agent

import (
	"context"

	ai "github.com/toolweave/toolweave"
	"github.com/toolweave/toolweave/cache"
	"github.com/toolweave/toolweave/event"
	"github.com/toolweave/toolweave/executor"
	"github.com/toolweave/toolweave/store"
	"github.com/toolweave/toolweave/tool"
)

// Agent orchestrates autonomous tool-calling conversations: it queries the
// reasoning model, executes the tool calls the model requests, feeds the
// results back, and repeats until the model answers without tools or the
// iteration limit is reached.
type Agent struct {
	chatClient ai.ChatProvider
	registry   *tool.Registry
}

// New creates an Agent with the given chat provider and tool registry.
func New(c ai.ChatProvider, registry *tool.Registry) *Agent {
	return &Agent{
		chatClient: c,
		registry:   registry,
	}
}

// Run executes the agent loop and returns the final result. This is a
// blocking call that runs until the model produces a final answer, the
// iteration limit forces a best-effort answer, or the reasoning model
// fails with an *OrchestrationError.
func (a *Agent) Run(ctx context.Context, messages []ai.Message, opts ...Option) (*Result, error) {
	return a.run(ctx, messages, nil, opts...)
}

// RunStream executes the agent loop and returns a channel of lifecycle
// events. The channel is closed when the run completes. Events are emitted
// without blocking; a slow listener drops events rather than stalling the
// run, so callers needing the final outcome should use Run.
func (a *Agent) RunStream(ctx context.Context, messages []ai.Message, opts ...Option) <-chan event.Event {
	eventCh := event.NewChannel()

	go func() {
		defer close(eventCh)
		a.run(ctx, messages, eventCh, opts...)
	}()

	return eventCh
}

func (a *Agent) run(ctx context.Context, messages []ai.Message, eventCh chan<- event.Event, opts ...Option) (*Result, error) {
	o := ApplyOptions(opts...)

	resultCache := o.Cache
	if resultCache == nil {
		cacheOpts := []cache.StoreOption{
			cache.WithTTL(o.CacheTTL),
			cache.WithLogger(o.Logger),
		}
		if o.CacheDir != "" {
			cacheOpts = append(cacheOpts, cache.WithDir(o.CacheDir))
		}
		resultCache = cache.New(cacheOpts...)
	}

	exec := executor.New(
		executor.WithWorkerCount(o.WorkerCount),
		executor.WithStore(resultCache),
		executor.WithInvokeTimeout(o.InvokeTimeout),
		executor.WithLogger(o.Logger),
	)

	chatOpts := append([]ai.Option{ai.WithTools(a.registry.Tools())}, o.ChatOptions...)
	invoke := a.registry.Invoker()

	// Copy messages so the caller's slice is never mutated.
	history := store.NewMessageStoreFrom(messages, nil)
	result := &Result{history: history}

	// Last assistant text seen, used as the best-effort answer on
	// truncation.
	var lastText string

	event.Emit(eventCh, event.Event{Type: event.RunStart})

	for step := 1; ; step++ {
		result.Steps = step

		if err := ctx.Err(); err != nil {
			result.Termination = TerminationCancelled
			result.Error = err
			event.Emit(eventCh, event.Event{Type: event.RunError, Step: step, Error: err})
			return result, err
		}

		event.Emit(eventCh, event.Event{Type: event.StepStart, Step: step})

		response, err := a.chatClient.Chat(ctx, history.Messages(), chatOpts...)
		if err != nil {
			orchErr := &OrchestrationError{Step: step, Err: err}
			result.Termination = TerminationError
			result.Error = orchErr
			o.Logger.Error("agent: reasoning model failed",
				"step", step, "error", err)
			event.Emit(eventCh, event.Event{Type: event.RunError, Step: step, Error: orchErr})
			return result, orchErr
		}

		result.Response = response
		result.TotalUsage.InputTokens += response.Usage.InputTokens
		result.TotalUsage.OutputTokens += response.Usage.OutputTokens
		if response.Content != "" {
			lastText = response.Content
		}

		event.Emit(eventCh, event.Event{Type: event.StepEnd, Step: step, Response: response})

		// No tool calls means the model is done.
		if len(response.ToolCalls) == 0 {
			history.Append(ai.Message{
				Role:    ai.RoleAssistant,
				Content: response.Content,
			})
			result.FinalAnswer = response.Content
			result.Termination = TerminationComplete
			event.Emit(eventCh, event.Event{
				Type:     event.RunEnd,
				Step:     step,
				Response: response,
				Message:  string(TerminationComplete),
			})
			return result, nil
		}

		// The model wants more tools but the iteration limit is hit:
		// terminate with the best answer available.
		if step >= o.MaxIterations {
			answer := lastText
			if answer == "" {
				answer = TruncatedAnswer
			}
			history.Append(ai.Message{
				Role:    ai.RoleAssistant,
				Content: answer,
			})
			result.FinalAnswer = answer
			result.Truncated = true
			result.Termination = TerminationMaxIterations
			o.Logger.Warn("agent: iteration limit reached",
				"max_iterations", o.MaxIterations, "pending_tool_calls", len(response.ToolCalls))
			event.Emit(eventCh, event.Event{
				Type:     event.RunEnd,
				Step:     step,
				Response: response,
				Message:  string(TerminationMaxIterations),
			})
			return result, nil
		}

		for i := range response.ToolCalls {
			event.Emit(eventCh, event.Event{
				Type:     event.ToolCallStart,
				Step:     step,
				ToolCall: &response.ToolCalls[i],
			})
		}

		results := exec.ExecuteBatch(ctx, response.ToolCalls, invoke)

		for i := range results {
			t := event.ToolCallResult
			if results[i].Source == ai.SourceCache {
				t = event.ToolCallCached
			}
			event.Emit(eventCh, event.Event{
				Type:       t,
				Step:       step,
				ToolCall:   &response.ToolCalls[i],
				ToolResult: &results[i],
			})
		}

		// History is mutated only after the whole batch resolves, and
		// results ride in the original call order.
		history.Append(ai.Message{
			Role:      ai.RoleAssistant,
			Content:   response.Content,
			ToolCalls: response.ToolCalls,
		})
		history.Append(ai.NewToolResultMessage(results...))
	}
}
