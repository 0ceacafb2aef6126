package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is the entry lifetime used when none is configured.
const DefaultTTL = time.Hour

// Entry holds a cached tool result with its expiry metadata.
// Entries are never mutated in place; expiry is a logical removal.
type Entry struct {
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the entry's age exceeds its TTL at time now.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Stats holds observability counters for a store.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// Store is a TTL-bounded key/value store for tool results with optional
// durable backing. It is safe for concurrent use; callers never coordinate
// locking.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	hits    int64
	misses  int64

	ttl     time.Duration
	adapter Adapter
	logger  *slog.Logger
	now     func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL sets the default entry lifetime. Default is one hour.
func WithTTL(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithAdapter sets the durable backing adapter.
func WithAdapter(a Adapter) StoreOption {
	return func(s *Store) {
		s.adapter = a
	}
}

// WithDir enables directory-backed persistence. If the directory cannot be
// created, the store degrades to memory-only operation with a warning log;
// construction never fails.
func WithDir(dir string) StoreOption {
	return func(s *Store) {
		adapter, err := NewDirAdapter(dir)
		if err != nil {
			s.logger.Warn("cache: persistence unavailable, using memory only",
				"dir", dir, "error", err)
			return
		}
		s.adapter = adapter
	}
}

// WithLogger sets the logger used for degradation warnings and hit/miss
// debug output. Default is slog.Default.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store with the given options.
func New(opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[string]Entry),
		ttl:     DefaultTTL,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the store's default entry lifetime.
func (s *Store) TTL() time.Duration { return s.ttl }

// Persistent reports whether the store has durable backing.
func (s *Store) Persistent() bool { return s.adapter != nil }

// Get returns the entry for key if present and not expired. Expired entries
// are treated identically to absent entries and are lazily removed. On a
// memory miss, a configured adapter is consulted and a still-valid durable
// entry is promoted back into memory.
func (s *Store) Get(ctx context.Context, key string) (Entry, bool) {
	now := s.now()

	s.mu.Lock()
	entry, ok := s.entries[key]
	if ok && !entry.Expired(now) {
		s.hits++
		s.mu.Unlock()
		s.logger.Debug("cache: hit", "key", key)
		return entry, true
	}
	if ok {
		// Expired: logical removal.
		delete(s.entries, key)
	}
	s.mu.Unlock()

	if entry, ok := s.readDurable(ctx, key, now); ok {
		s.mu.Lock()
		s.entries[key] = entry
		s.hits++
		s.mu.Unlock()
		s.logger.Debug("cache: durable hit", "key", key)
		return entry, true
	}

	s.mu.Lock()
	s.misses++
	s.mu.Unlock()
	s.logger.Debug("cache: miss", "key", key)
	return Entry{}, false
}

// Put inserts or overwrites the entry for key using the store's default TTL.
func (s *Store) Put(ctx context.Context, key, value string) {
	s.PutTTL(ctx, key, value, s.ttl)
}

// PutTTL inserts or overwrites the entry for key with an explicit TTL.
// The in-memory write always succeeds. If durable backing is configured the
// entry is additionally written through; a durable write failure is logged
// and swallowed, never surfaced to the caller.
func (s *Store) PutTTL(ctx context.Context, key, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()
	entry := Entry{
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()

	if s.adapter == nil {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn("cache: durable write skipped", "key", key, "error", err)
		return
	}
	if err := s.adapter.Write(ctx, key, data); err != nil {
		s.logger.Warn("cache: durable write failed", "key", key, "error", err)
	}
}

// Delete removes the entry for key from memory and, if configured, from the
// durable backing.
func (s *Store) Delete(ctx context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()

	if s.adapter != nil {
		if err := s.adapter.Remove(ctx, key); err != nil {
			s.logger.Warn("cache: durable remove failed", "key", key, "error", err)
		}
	}
}

// Clear removes all in-memory entries. Durable entries are left in place
// and will be re-validated against their own expiry on read.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
}

// Len returns the number of in-memory entries, including any that have
// expired but not yet been lazily removed.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns the store's hit/miss counters and current entry count.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Hits:    s.hits,
		Misses:  s.misses,
		Entries: len(s.entries),
	}
}

// readDurable consults the adapter for a still-valid entry. Expired durable
// entries are removed. All I/O failures degrade to a miss with a warning.
func (s *Store) readDurable(ctx context.Context, key string, now time.Time) (Entry, bool) {
	if s.adapter == nil {
		return Entry{}, false
	}

	data, ok, err := s.adapter.Read(ctx, key)
	if err != nil {
		s.logger.Warn("cache: durable read failed", "key", key, "error", err)
		return Entry{}, false
	}
	if !ok {
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Warn("cache: durable entry corrupt", "key", key, "error", err)
		return Entry{}, false
	}
	if entry.Expired(now) {
		if err := s.adapter.Remove(ctx, key); err != nil {
			s.logger.Warn("cache: durable remove failed", "key", key, "error", err)
		}
		return Entry{}, false
	}
	return entry, true
}
