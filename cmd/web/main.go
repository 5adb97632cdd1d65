package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomz197/sshooter/internal/config"
	"github.com/tomz197/sshooter/internal/game"
	"github.com/tomz197/sshooter/internal/logging"
	"github.com/tomz197/sshooter/internal/store"
	"github.com/tomz197/sshooter/internal/web"
)

const (
	defaultHost      = "0.0.0.0"
	defaultPort      = "8080"
	defaultStorePath = "/app/data/scores.toml"
)

func main() {
	logger := logging.New(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	storePath := config.GetEnv("SSHOOTER_STORE", defaultStorePath)
	logger.Info("web config", "host", host, "port", port, "store", storePath)

	scoreboard := game.NewScoreboard(store.Open(storePath), logger)
	logger.Info("top score loaded", "top", scoreboard.Load())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connection contexts derive from ctx so open sockets end on shutdown
	srv := &http.Server{
		Addr: net.JoinHostPort(host, port),
		Handler: web.NewHandler(web.Options{
			Scoreboard:         scoreboard,
			Logger:             logger,
			InsecureSkipVerify: config.GetEnvBool("WEB_ANY_ORIGIN", false),
		}),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
