package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "scores.toml"))

	v, ok, err := s.Get("topScore")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.toml")
	s := NewFileStore(path)

	require.NoError(t, s.Set("topScore", 500))
	require.NoError(t, s.Set("other", 3))

	// A fresh store on the same file sees the values
	reopened := NewFileStore(path)
	v, ok, err := reopened.Get("topScore")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 500, v)

	v, ok, err = reopened.Get("other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "topScore = 500")
}

func TestFileStoreOverwrite(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "scores.toml"))
	require.NoError(t, s.Set("topScore", 300))
	require.NoError(t, s.Set("topScore", 750))

	v, _, err := s.Get("topScore")
	require.NoError(t, err)
	assert.Equal(t, 750, v)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.toml")
	require.NoError(t, os.WriteFile(path, []byte("topScore = = nope"), 0o644))

	s := NewFileStore(path)
	_, _, err := s.Get("topScore")
	assert.Error(t, err)
	assert.Error(t, s.Set("topScore", 1))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get("topScore")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("topScore", 42))
	v, ok, err := s.Get("topScore")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestOpen(t *testing.T) {
	assert.IsType(t, &MemoryStore{}, Open(""))

	path := filepath.Join(t.TempDir(), "scores.toml")
	s := Open(path)
	require.IsType(t, &FileStore{}, s)
	assert.Equal(t, path, s.(*FileStore).Path())
}
