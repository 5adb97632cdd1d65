// Package logging builds the structured loggers shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/sshooter/internal/config"
)

// Environment variables read by New.
const (
	EnvLevel = "SSHOOTER_LOG_LEVEL"
	EnvFile  = "SSHOOTER_LOG_FILE"
)

// New returns a logger writing to w with the level from SSHOOTER_LOG_LEVEL
// (default info).
func New(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(levelFromEnv())
	return logger
}

// NewFile returns a logger for programs that own the terminal. It writes to
// SSHOOTER_LOG_FILE when set and discards everything otherwise. The returned
// close function must be called on exit.
func NewFile(prefix string) (*log.Logger, func() error, error) {
	path := config.GetEnv(EnvFile, "")
	if path == "" {
		return New(io.Discard, prefix), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, prefix), f.Close, nil
}

// Discard returns a logger that drops everything. Handy for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func levelFromEnv() log.Level {
	raw := strings.TrimSpace(config.GetEnv(EnvLevel, "info"))
	level, err := log.ParseLevel(raw)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
