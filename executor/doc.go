// Package executor runs batches of independent tool calls concurrently on a
// bounded worker pool, with per-call error isolation and an automatic
// sequential fallback.
//
// Every call in a batch resolves to exactly one result: handler errors,
// panics, and per-call timeouts are converted into error results for that
// call alone and never affect sibling calls. ExecuteBatch returns only after
// all calls have resolved, in the order of the input batch.
//
// When a [cache.Store] is configured, each call first consults the cache
// under its derived key; hits are served without invoking the handler and
// fresh results are written back before being returned.
package executor
