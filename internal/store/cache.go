package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Cache is the local durable cache: one opaque blob per namespace, read
// once at startup and rewritten in full on every mutation. It is always
// the source of truth for reads within a session.
type Cache interface {
	Load(namespace string) ([]byte, error)
	Save(namespace string, blob []byte) error
}

// FileCache stores each namespace blob as <dir>/<namespace>.json.
type FileCache struct {
	dir string
}

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

func (f *FileCache) path(namespace string) string {
	return filepath.Join(f.dir, namespace+".json")
}

// Load returns nil with no error when the blob does not exist yet.
func (f *FileCache) Load(namespace string) ([]byte, error) {
	blob, err := os.ReadFile(f.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

// Save rewrites the blob atomically via a temp file rename.
func (f *FileCache) Save(namespace string, blob []byte) error {
	tmp := f.path(namespace) + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(namespace))
}
