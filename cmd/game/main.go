package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/sshooter/internal/audio"
	"github.com/tomz197/sshooter/internal/audio/synth"
	"github.com/tomz197/sshooter/internal/client"
	"github.com/tomz197/sshooter/internal/config"
	"github.com/tomz197/sshooter/internal/game"
	"github.com/tomz197/sshooter/internal/logging"
	"github.com/tomz197/sshooter/internal/store"
)

const defaultVolume = 0.5

func main() {
	logger, closeLog, err := logging.NewFile("game")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	scoreboard := game.NewScoreboard(store.Open(config.GetEnv("SSHOOTER_STORE", defaultStorePath())), logger)
	scoreboard.Load()

	player := openAudio(logger)
	if s, ok := player.(*synth.Synth); ok {
		defer s.Close()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	c := client.New(reader, os.Stdout, client.Options{
		Scoreboard: scoreboard,
		Audio:      player,
		Logger:     logger,
	})
	if err := c.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// openAudio returns the speaker synth, or silence when disabled or when the
// speaker cannot be opened.
func openAudio(logger *log.Logger) audio.Player {
	if !config.GetEnvBool("SSHOOTER_AUDIO", true) {
		return audio.Nop{}
	}
	s, err := synth.New(defaultVolume)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Nop{}
	}
	return s
}

// defaultStorePath is the per-user scores file, or "" (in memory) when no
// config directory is known.
func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sshooter", "scores.toml")
}
