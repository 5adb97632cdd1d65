// Package store provides the durable key-value storage used for the top score.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Store is a small integer key-value store.
type Store interface {
	// Get returns the value under key and whether it was present.
	Get(key string) (value int, ok bool, err error)
	// Set stores value under key durably.
	Set(key string, value int) error
}

// FileStore keeps its values in a TOML file, one top-level integer per key.
// It is safe for concurrent use within a process.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// Compile-time check that FileStore implements Store.
var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by the TOML file at path. The file is
// created on the first Set; a missing file reads as an empty store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *FileStore) Get(key string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return 0, false, err
	}
	v, ok := values[key]
	return int(v), ok, nil
}

// Set implements Store. The file is rewritten through a temporary file and
// a rename so a crash never leaves it half written.
func (s *FileStore) Set(key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = int64(value)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".store-*.toml")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(values); err != nil {
		tmp.Close()
		return fmt.Errorf("encode store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// load reads the whole file. Must be called with the lock held.
func (s *FileStore) load() (map[string]int64, error) {
	values := make(map[string]int64)
	if _, err := toml.DecodeFile(s.path, &values); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("decode store %s: %w", s.path, err)
	}
	return values, nil
}

// MemoryStore is a map-backed Store that lives as long as the process.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]int
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

// Get implements Store.
func (s *MemoryStore) Get(key string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements Store.
func (s *MemoryStore) Set(key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Open returns a FileStore at path, or a MemoryStore when path is empty.
func Open(path string) Store {
	if path == "" {
		return NewMemoryStore()
	}
	return NewFileStore(path)
}
