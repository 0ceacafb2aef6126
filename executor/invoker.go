package executor

import (
	"context"

	ai "github.com/toolweave/toolweave"
	"github.com/toolweave/toolweave/cache"
)

// Invoker executes a single tool call and returns its result content.
// An error return signals a failed invocation; the executor converts it
// into an isolated error result.
type Invoker func(ctx context.Context, call ai.ToolCall) (string, error)

// CachingInvoker wraps an invoker so that results are transparently served
// from and written to the given store. The wrapped invoker satisfies the
// same contract as the inner one; only latency and side-effect frequency
// differ. Failed invocations are never cached.
//
// The executor applies this same check/populate sequence internally when a
// store is configured; CachingInvoker is exported so any invoker can be
// wrapped outside a batch context as well.
func CachingInvoker(inner Invoker, store *cache.Store) Invoker {
	if store == nil {
		return inner
	}
	return func(ctx context.Context, call ai.ToolCall) (string, error) {
		key := cache.DeriveKey(call.Name, call.Arguments)
		if entry, ok := store.Get(ctx, key); ok {
			return entry.Value, nil
		}

		content, err := inner(ctx, call)
		if err != nil {
			return "", err
		}
		store.Put(ctx, key, content)
		return content, nil
	}
}
