// Package cache provides a TTL-bounded store for tool execution results.
//
// Keys are deterministic digests derived from a tool name and its
// canonicalized arguments (see [DeriveKey]): identical logical inputs always
// map to the same key regardless of argument order, so repeat tool requests
// are detected across iterations and runs.
//
// Expiry is computed at query time; there is no background sweeper, and a
// reader can never observe an entry older than its TTL. The store is safe
// for concurrent use.
//
// Persistence is optional and best-effort. A store constructed with
// [WithDir] writes entries through to one JSON file per key and reads them
// back on a memory miss; any durable I/O failure is logged at warn level and
// the store continues in memory-only mode. Durable backing is never a
// correctness requirement.
package cache
