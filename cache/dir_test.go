package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips bytes through files", func(t *testing.T) {
		adapter, err := NewDirAdapter(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, adapter.Write(ctx, "tool_ab12cd34", []byte(`{"value":"v"}`)))

		data, ok, err := adapter.Read(ctx, "tool_ab12cd34")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `{"value":"v"}`, string(data))
	})

	t.Run("absent key reads as not found", func(t *testing.T) {
		adapter, err := NewDirAdapter(t.TempDir())
		require.NoError(t, err)

		_, ok, err := adapter.Read(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remove deletes the file and is idempotent", func(t *testing.T) {
		adapter, err := NewDirAdapter(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, adapter.Write(ctx, "k", []byte("x")))
		require.NoError(t, adapter.Remove(ctx, "k"))
		require.NoError(t, adapter.Remove(ctx, "k"))

		_, ok, err := adapter.Read(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "cache")

		_, err := NewDirAdapter(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("path traversal in keys is neutralized", func(t *testing.T) {
		dir := t.TempDir()
		adapter, err := NewDirAdapter(dir)
		require.NoError(t, err)

		require.NoError(t, adapter.Write(ctx, "../escape", []byte("x")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.NotContains(t, entries[0].Name(), "/")
	})
}
