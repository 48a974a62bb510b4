package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/morphfst/pkg/codec"
	"github.com/aretw0/morphfst/pkg/domain"
)

// Ext is the extension given to keys that have none.
const Ext = ".fst"

// Store implements ports.AutomatonStore using the local filesystem.
// Each key is one codec-encoded file under BasePath.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, keys resolve against the working directory.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = "."
	}
	return &Store{BasePath: basePath}
}

// Path returns the file backing key. Absolute keys are used as-is.
func (s *Store) Path(key string) string {
	if filepath.Ext(key) == "" {
		key += Ext
	}
	if filepath.IsAbs(key) {
		return key
	}
	return filepath.Join(s.BasePath, key)
}

// Save writes the automaton atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, key string, a *domain.Automaton) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	data, err := codec.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode automaton: %w", err)
	}

	destPath := s.Path(key)
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &domain.StoreError{Op: "save", Key: key, Err: err}
	}

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(destPath)+"-*")
	if err != nil {
		return &domain.StoreError{Op: "save", Key: key, Err: err}
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return &domain.StoreError{Op: "save", Key: key, Err: err}
	}
	if err := tmpFile.Sync(); err != nil {
		return &domain.StoreError{Op: "save", Key: key, Err: err}
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return &domain.StoreError{Op: "save", Key: key, Err: err}
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return &domain.StoreError{Op: "save", Key: key, Err: err}
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return &domain.StoreError{Op: "save", Key: key, Err: err}
	}
	return nil
}

// Load reads and decodes the file backing key.
func (s *Store) Load(ctx context.Context, key string) (*domain.Automaton, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrAutomatonNotFound
		}
		return nil, &domain.StoreError{Op: "load", Key: key, Err: err}
	}
	a, err := codec.Unmarshal(data)
	if err != nil {
		return nil, &domain.StoreError{Op: "load", Key: key, Err: err}
	}
	return a, nil
}

// Exists reports whether the file backing key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.Path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &domain.StoreError{Op: "stat", Key: key, Err: err}
}

// Delete removes the file backing key.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.StoreError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// List returns the keys of every automaton file in BasePath.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, &domain.StoreError{Op: "list", Key: s.BasePath, Err: err}
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != Ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, Ext))
	}
	return keys, nil
}
