// Package store manages conversation history with pluggable persistence.
// An agent run appends its transcript to a MessageStore; callers that
// want durability sync the store to an Adapter between runs.
package store

import (
	"context"
	"encoding/json"
)

// Adapter is a persistence backend for serialized conversation state.
// Implementations must be safe for concurrent use.
type Adapter interface {
	// Get returns the value stored under key, with false when absent.
	// Absence is not an error.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value json.RawMessage) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every stored value.
	Clear(ctx context.Context) error
}
