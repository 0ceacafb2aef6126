package cache

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("put then get returns same value within TTL", func(t *testing.T) {
		s := New(WithTTL(time.Hour))

		s.Put(ctx, "lookup_abc", "result-X")
		entry, ok := s.Get(ctx, "lookup_abc")

		require.True(t, ok)
		assert.Equal(t, "result-X", entry.Value)
	})

	t.Run("get after TTL elapses returns absent", func(t *testing.T) {
		s := New(WithTTL(time.Minute))
		base := time.Now()
		s.now = func() time.Time { return base }

		s.Put(ctx, "k", "v")

		s.now = func() time.Time { return base.Add(2 * time.Minute) }
		_, ok := s.Get(ctx, "k")

		assert.False(t, ok)
		assert.Equal(t, 0, s.Len(), "expired entry is lazily removed")
	})

	t.Run("entry exactly at TTL boundary is still valid", func(t *testing.T) {
		s := New(WithTTL(time.Minute))
		base := time.Now()
		s.now = func() time.Time { return base }

		s.Put(ctx, "k", "v")

		s.now = func() time.Time { return base.Add(time.Minute) }
		_, ok := s.Get(ctx, "k")

		assert.True(t, ok)
	})

	t.Run("put overwrites existing entry", func(t *testing.T) {
		s := New()

		s.Put(ctx, "k", "old")
		s.Put(ctx, "k", "new")
		entry, ok := s.Get(ctx, "k")

		require.True(t, ok)
		assert.Equal(t, "new", entry.Value)
	})

	t.Run("explicit TTL overrides default", func(t *testing.T) {
		s := New(WithTTL(time.Hour))
		base := time.Now()
		s.now = func() time.Time { return base }

		s.PutTTL(ctx, "short", "v", time.Second)

		s.now = func() time.Time { return base.Add(2 * time.Second) }
		_, ok := s.Get(ctx, "short")

		assert.False(t, ok)
	})
}

func TestStoreStats(t *testing.T) {
	ctx := context.Background()

	t.Run("counters track gets and puts", func(t *testing.T) {
		s := New()

		s.Put(ctx, "a", "1")
		s.Get(ctx, "a")
		s.Get(ctx, "a")
		s.Get(ctx, "missing")

		stats := s.Stats()
		assert.Equal(t, int64(2), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, 1, stats.Entries)
	})

	t.Run("expired read counts as miss", func(t *testing.T) {
		s := New(WithTTL(time.Minute))
		base := time.Now()
		s.now = func() time.Time { return base }

		s.Put(ctx, "k", "v")
		s.now = func() time.Time { return base.Add(time.Hour) }
		s.Get(ctx, "k")

		stats := s.Stats()
		assert.Equal(t, int64(0), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
	})
}

func TestStorePersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("writes through to adapter", func(t *testing.T) {
		adapter := NewMemoryAdapter()
		s := New(WithAdapter(adapter))

		s.Put(ctx, "k", "v")

		assert.Equal(t, 1, adapter.Len())
	})

	t.Run("memory miss promotes valid durable entry", func(t *testing.T) {
		adapter := NewMemoryAdapter()

		writer := New(WithAdapter(adapter))
		writer.Put(ctx, "k", "durable-value")

		// Fresh store sharing the adapter simulates a process restart.
		reader := New(WithAdapter(adapter))
		entry, ok := reader.Get(ctx, "k")

		require.True(t, ok)
		assert.Equal(t, "durable-value", entry.Value)
		assert.Equal(t, 1, reader.Len(), "promoted into memory")
	})

	t.Run("expired durable entry is removed and missed", func(t *testing.T) {
		adapter := NewMemoryAdapter()

		writer := New(WithAdapter(adapter), WithTTL(time.Minute))
		base := time.Now()
		writer.now = func() time.Time { return base }
		writer.Put(ctx, "k", "v")

		reader := New(WithAdapter(adapter))
		reader.now = func() time.Time { return base.Add(time.Hour) }
		_, ok := reader.Get(ctx, "k")

		assert.False(t, ok)
		assert.Equal(t, 0, adapter.Len(), "expired durable entry removed")
	})

	t.Run("adapter write failure does not fail Put", func(t *testing.T) {
		s := New(WithAdapter(failingAdapter{}))

		s.Put(ctx, "k", "v")
		entry, ok := s.Get(ctx, "k")

		require.True(t, ok, "in-memory write must survive durable failure")
		assert.Equal(t, "v", entry.Value)
	})

	t.Run("unwritable dir degrades to memory only", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		s := New(WithDir(filepath.Join(file, "cache")))

		assert.False(t, s.Persistent())
		s.Put(ctx, "k", "v")
		_, ok := s.Get(ctx, "k")
		assert.True(t, ok)
	})
}

func TestStoreConcurrency(t *testing.T) {
	ctx := context.Background()

	t.Run("concurrent readers and writers", func(t *testing.T) {
		s := New()
		var wg sync.WaitGroup

		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					key := DeriveKey("tool", `{"n":`+string(rune('0'+n))+`}`)
					s.Put(ctx, key, "v")
					s.Get(ctx, key)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 8, s.Len())
	})
}

// failingAdapter always errors, for degradation tests.
type failingAdapter struct{}

func (failingAdapter) Read(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, os.ErrPermission
}

func (failingAdapter) Write(ctx context.Context, key string, data []byte) error {
	return os.ErrPermission
}

func (failingAdapter) Remove(ctx context.Context, key string) error {
	return os.ErrPermission
}
