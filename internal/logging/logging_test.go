package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInfo(t *testing.T) {
	t.Setenv(EnvLevel, "")
	var buf bytes.Buffer
	logger := New(&buf, "test")

	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}

func TestNewHonorsLevel(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	logger := New(&bytes.Buffer{}, "test")
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestNewFileWithoutPathDiscards(t *testing.T) {
	t.Setenv(EnvFile, "")
	logger, closeFn, err := NewFile("test")
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closeFn())
}

func TestNewFileWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	t.Setenv(EnvFile, path)
	t.Setenv(EnvLevel, "info")

	logger, closeFn, err := NewFile("test")
	require.NoError(t, err)
	logger.Info("hello", "session", "abc")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "session=abc")
}
