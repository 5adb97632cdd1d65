package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tomz197/sshooter/internal/audio"
	"github.com/tomz197/sshooter/internal/audio/synth"
	"github.com/tomz197/sshooter/internal/config"
	"github.com/tomz197/sshooter/internal/desktop"
	"github.com/tomz197/sshooter/internal/game"
	"github.com/tomz197/sshooter/internal/logging"
	"github.com/tomz197/sshooter/internal/store"
)

const defaultVolume = 0.5

func main() {
	logger := logging.New(os.Stderr, "desktop")

	scoreboard := game.NewScoreboard(store.Open(config.GetEnv("SSHOOTER_STORE", defaultStorePath())), logger)
	scoreboard.Load()

	var player audio.Player = audio.Nop{}
	if config.GetEnvBool("SSHOOTER_AUDIO", true) {
		s, err := synth.New(defaultVolume)
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer s.Close()
			player = s
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := desktop.New(desktop.Options{
		Width:      config.GetEnvInt("SSHOOTER_WIDTH", desktop.DefaultWidth),
		Height:     config.GetEnvInt("SSHOOTER_HEIGHT", desktop.DefaultHeight),
		Scoreboard: scoreboard,
		Audio:      player,
		Logger:     logger,
	})
	if err := g.Run(ctx); err != nil {
		logger.Error("desktop error", "err", err)
		os.Exit(1)
	}
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sshooter", "scores.toml")
}
