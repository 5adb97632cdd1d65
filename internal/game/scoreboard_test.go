package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/sshooter/internal/game/config"
	"github.com/tomz197/sshooter/internal/logging"
	"github.com/tomz197/sshooter/internal/store"
)

// failingStore errors on every call.
type failingStore struct{}

func (failingStore) Get(string) (int, bool, error) { return 0, false, errors.New("disk on fire") }
func (failingStore) Set(string, int) error         { return errors.New("disk on fire") }

func TestScoreboardLoad(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(config.TopScoreKey, 300))

	b := NewScoreboard(st, logging.Discard())
	assert.Equal(t, 300, b.Load())
	assert.Equal(t, 300, b.Top())
}

func TestScoreboardLoadMissing(t *testing.T) {
	b := NewScoreboard(store.NewMemoryStore(), logging.Discard())
	assert.Zero(t, b.Load())
}

func TestScoreboardLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml at all ==="), 0o644))

	b := NewScoreboard(store.NewFileStore(path), logging.Discard())
	assert.Zero(t, b.Load())
}

func TestScoreboardSubmit(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(config.TopScoreKey, 300))
	b := NewScoreboard(st, logging.Discard())
	b.Load()

	assert.False(t, b.Submit(200))
	assert.False(t, b.Submit(300))
	assert.Equal(t, 300, b.Top())

	assert.True(t, b.Submit(500))
	assert.Equal(t, 500, b.Top())

	v, ok, err := st.Get(config.TopScoreKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 500, v)
}

func TestScoreboardSurvivesStoreFailure(t *testing.T) {
	b := NewScoreboard(failingStore{}, logging.Discard())
	assert.Zero(t, b.Load())

	assert.True(t, b.Submit(100))
	assert.Equal(t, 100, b.Top())
}
