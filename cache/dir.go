package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirAdapter stores one file per key in a directory. File names are derived
// from the key; contents are whatever envelope the Store writes (JSON).
type DirAdapter struct {
	dir string
}

// NewDirAdapter creates a directory-backed adapter, creating the directory
// if it does not exist.
func NewDirAdapter(dir string) (*DirAdapter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir %s: %w", dir, err)
	}
	return &DirAdapter{dir: dir}, nil
}

// Dir returns the backing directory path.
func (d *DirAdapter) Dir() string { return d.dir }

// Read returns the file contents for key.
func (d *DirAdapter) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(d.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: read %s: %w", key, err)
	}
	return data, true, nil
}

// Write stores the file contents for key. The write goes through a temp
// file and rename so concurrent readers never observe a partial entry.
func (d *DirAdapter) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	if err := os.Rename(tmpName, d.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	return nil
}

// Remove deletes the file for key.
func (d *DirAdapter) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(d.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cache: remove %s: %w", key, err)
	}
	return nil
}

// path maps a key to a file path, sanitizing separators so a hostile key
// cannot escape the directory.
func (d *DirAdapter) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(d.dir, safe+".json")
}
