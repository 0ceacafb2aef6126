package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ai "github.com/toolweave/toolweave"
	"github.com/toolweave/toolweave/cache"
)

// DefaultWorkerCount is the worker pool width used when none is configured.
const DefaultWorkerCount = 4

// Executor runs batches of tool calls. Construct with New; the zero value
// is not usable.
type Executor struct {
	strategy      Strategy
	store         *cache.Store
	invokeTimeout time.Duration
	logger        *slog.Logger
}

// Option configures an Executor.
type Option func(*config)

type config struct {
	workers       int
	sequential    bool
	store         *cache.Store
	invokeTimeout time.Duration
	logger        *slog.Logger
}

// WithWorkerCount sets the worker pool width. Default is 4. A non-positive
// value selects the sequential fallback.
func WithWorkerCount(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithSequential forces strictly sequential execution regardless of worker
// count. Outputs are identical to pooled execution; only latency differs.
func WithSequential() Option {
	return func(c *config) {
		c.sequential = true
	}
}

// WithStore enables result caching through the given store.
func WithStore(s *cache.Store) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithInvokeTimeout bounds each individual tool invocation. A timed-out
// call resolves to an error result like any other isolated failure.
// Zero means no per-call timeout.
func WithInvokeTimeout(d time.Duration) Option {
	return func(c *config) {
		c.invokeTimeout = d
	}
}

// WithLogger sets the executor's logger. Default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an Executor. Strategy selection happens once here: the pooled
// strategy is used unless it cannot be constructed or sequential execution
// was requested, in which case the executor falls back to sequential
// execution with a warning log.
func New(opts ...Option) *Executor {
	cfg := &config{
		workers: DefaultWorkerCount,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	e := &Executor{
		store:         cfg.store,
		invokeTimeout: cfg.invokeTimeout,
		logger:        cfg.logger,
	}

	if cfg.sequential {
		e.strategy = NewSequential()
		return e
	}

	strategy, err := NewPooled(cfg.workers)
	if err != nil {
		cfg.logger.Warn("executor: pooled strategy unavailable, falling back to sequential",
			"workers", cfg.workers, "error", err)
		strategy = NewSequential()
	}
	e.strategy = strategy
	return e
}

// Store returns the configured cache store, or nil.
func (e *Executor) Store() *cache.Store { return e.store }

// ExecuteBatch runs every call in the batch and returns one result per
// call, in input order, matched by ToolCallID. Failures (handler errors,
// panics, per-call timeouts) are isolated to their own call's result and
// never abort the batch. The method returns only after all calls resolve.
//
// Batches of size zero or one skip pool dispatch entirely.
func (e *Executor) ExecuteBatch(ctx context.Context, calls []ai.ToolCall, invoke Invoker) []ai.ToolResult {
	switch len(calls) {
	case 0:
		return nil
	case 1:
		return []ai.ToolResult{e.resolve(ctx, calls[0], invoke)}
	}

	results := make([]ai.ToolResult, len(calls))
	e.strategy.Run(ctx, len(calls), func(i int) {
		results[i] = e.resolve(ctx, calls[i], invoke)
	})
	return results
}

// resolve produces the single result for one call: cache consult, then
// invocation with timeout and panic containment, then cache write-back.
func (e *Executor) resolve(ctx context.Context, call ai.ToolCall, invoke Invoker) ai.ToolResult {
	var key string
	if e.store != nil {
		key = cache.DeriveKey(call.Name, call.Arguments)
		if entry, ok := e.store.Get(ctx, key); ok {
			return ai.ToolResult{
				ToolCallID: call.ID,
				Content:    entry.Value,
				Source:     ai.SourceCache,
			}
		}
	}

	content, err := e.safeInvoke(ctx, call, invoke)
	if err != nil {
		e.logger.Warn("executor: tool call failed",
			"tool", call.Name, "call_id", call.ID, "error", err)
		return ai.ToolResult{
			ToolCallID: call.ID,
			Content:    err.Error(),
			IsError:    true,
			Source:     ai.SourceLive,
		}
	}

	if e.store != nil {
		e.store.Put(ctx, key, content)
	}
	return ai.ToolResult{
		ToolCallID: call.ID,
		Content:    content,
		Source:     ai.SourceLive,
	}
}

// safeInvoke applies the per-call timeout and converts a panicking invoker
// into an error for that call alone. With a timeout configured the invoker
// runs on its own goroutine so a handler that ignores its context cannot
// stall the batch join; the abandoned goroutine finishes in the background.
func (e *Executor) safeInvoke(ctx context.Context, call ai.ToolCall, invoke Invoker) (string, error) {
	if e.invokeTimeout <= 0 {
		return guardPanic(ctx, call, invoke)
	}

	ctx, cancel := context.WithTimeout(ctx, e.invokeTimeout)
	defer cancel()

	type outcome struct {
		content string
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		content, err := guardPanic(ctx, call, invoke)
		done <- outcome{content, err}
	}()

	select {
	case out := <-done:
		return out.content, out.err
	case <-ctx.Done():
		return "", fmt.Errorf("executor: tool %s timed out: %w", call.Name, ctx.Err())
	}
}

// guardPanic invokes the tool, converting a panic into an error.
func guardPanic(ctx context.Context, call ai.ToolCall, invoke Invoker) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("executor: tool %s panicked: %v", call.Name, r)
		}
	}()
	return invoke(ctx, call)
}
