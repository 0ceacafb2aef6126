package store

import (
	"context"
	"encoding/json"
	"sync"

	ai "github.com/toolweave/toolweave"
)

// MessageStore holds a conversation history. All accessors copy, so a
// caller can never observe a slice that a concurrent Append is growing.
// Persistence is explicit: nothing is written until Sync is called.
type MessageStore struct {
	mu      sync.RWMutex
	msgs    []ai.Message
	adapter Adapter
}

// NewMessageStore creates an empty MessageStore backed by adapter.
// A nil adapter gets an in-memory one, so Sync and Reload always work.
func NewMessageStore(adapter Adapter) *MessageStore {
	if adapter == nil {
		adapter = NewMemoryAdapter()
	}
	return &MessageStore{adapter: adapter}
}

// NewMessageStoreFrom creates a MessageStore seeded with a copy of the
// given messages.
func NewMessageStoreFrom(messages []ai.Message, adapter Adapter) *MessageStore {
	ms := NewMessageStore(adapter)
	ms.msgs = append(ms.msgs, messages...)
	return ms
}

// Messages returns a copy of the full history.
func (m *MessageStore) Messages() []ai.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ai.Message, len(m.msgs))
	copy(out, m.msgs)
	return out
}

// Append adds messages to the end of the history.
func (m *MessageStore) Append(msgs ...ai.Message) {
	if len(msgs) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msgs...)
}

// Len returns the number of messages in the history.
func (m *MessageStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.msgs)
}

// Clear empties the history. The adapter's persisted copy, if any, is
// untouched until the next Sync.
func (m *MessageStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = nil
}

// Last returns a copy of the trailing n messages, or the whole history
// when it holds fewer than n.
func (m *MessageStore) Last(n int) []ai.Message {
	if n <= 0 {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := len(m.msgs) - n
	if start < 0 {
		start = 0
	}
	out := make([]ai.Message, len(m.msgs)-start)
	copy(out, m.msgs[start:])
	return out
}

// Sync writes the current history to the adapter under key.
func (m *MessageStore) Sync(ctx context.Context, key string) error {
	m.mu.RLock()
	raw, err := json.Marshal(m.msgs)
	m.mu.RUnlock()
	if err != nil {
		return &SerializationError{Key: key, Err: err}
	}
	return m.adapter.Set(ctx, key, raw)
}

// Reload replaces the history with the one persisted under key.
// Returns ErrKeyNotFound when nothing was persisted there.
func (m *MessageStore) Reload(ctx context.Context, key string) error {
	raw, ok, err := m.adapter.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrKeyNotFound
	}

	var msgs []ai.Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return &SerializationError{Key: key, Err: err}
	}

	m.mu.Lock()
	m.msgs = msgs
	m.mu.Unlock()
	return nil
}

// Adapter returns the store's persistence adapter.
func (m *MessageStore) Adapter() Adapter {
	return m.adapter
}
