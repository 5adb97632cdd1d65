// Package web serves the browser front-end: an HTML canvas page and a
// WebSocket that runs one game session per connection.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/sshooter/internal/game"
	"github.com/tomz197/sshooter/internal/game/config"
	"github.com/tomz197/sshooter/internal/logging"
)

//go:embed static/index.html
var indexPage []byte

// Canvas size limits accepted in hello.
const (
	minCanvasSize = 100
	maxCanvasSize = 4096
)

// helloTimeout bounds the wait for the first message.
const helloTimeout = 10 * time.Second

// errClosed ends a connection's goroutines when the browser goes away.
var errClosed = errors.New("connection closed")

// Options configures the handler.
type Options struct {
	Scoreboard *game.Scoreboard // Shared by every connection
	Logger     *log.Logger
	TickTime   time.Duration // Frame period, default config.TickTime

	// InsecureSkipVerify disables the WebSocket origin check.
	InsecureSkipVerify bool
}

// Handler serves the page at / and the game socket at /ws.
type Handler struct {
	mux  *http.ServeMux
	opts Options
}

// NewHandler creates the HTTP handler.
func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.TickTime <= 0 {
		opts.TickTime = config.TickTime
	}

	h := &Handler{mux: http.NewServeMux(), opts: opts}
	h.mux.HandleFunc("GET /{$}", h.servePage)
	h.mux.HandleFunc("GET /ws", h.serveSocket)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) servePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (h *Handler) serveSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: h.opts.InsecureSkipVerify,
	})
	if err != nil {
		h.opts.Logger.Error("failed to accept", "err", err)
		return
	}
	defer conn.CloseNow()

	err = h.serveConn(r.Context(), conn)
	switch {
	case err == nil, errors.Is(err, errClosed), errors.Is(err, context.Canceled):
		conn.Close(websocket.StatusNormalClosure, "")
	default:
		h.opts.Logger.Warn("connection failed", "remote", r.RemoteAddr, "err", err)
		conn.Close(websocket.StatusPolicyViolation, err.Error())
	}
}

// serveConn waits for hello, then runs the session, the reader and the
// writer until one of them stops.
func (h *Handler) serveConn(ctx context.Context, conn *websocket.Conn) error {
	hello, err := readHello(ctx, conn)
	if err != nil {
		return err
	}

	session := game.NewSession(game.Options{
		Width:      hello.Width,
		Height:     hello.Height,
		Scoreboard: h.opts.Scoreboard,
		Logger:     h.opts.Logger,
		TickTime:   h.opts.TickTime,
	})
	logger := h.opts.Logger.With("session", session.ID())
	logger.Info("browser connected", "width", hello.Width, "height", hello.Height)
	defer logger.Info("browser disconnected")

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return session.Run(ctx)
	})
	eg.Go(func() error {
		return readLoop(ctx, conn, session)
	})
	eg.Go(func() error {
		return h.writeLoop(ctx, conn, session)
	})
	return eg.Wait()
}

func readHello(ctx context.Context, conn *websocket.Conn) (ClientMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, helloTimeout)
	defer cancel()

	var msg ClientMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		return msg, fmt.Errorf("read hello: %w", err)
	}
	if msg.Type != TypeHello {
		return msg, fmt.Errorf("expected hello, got %q", msg.Type)
	}
	if msg.Width < minCanvasSize || msg.Height < minCanvasSize {
		return msg, fmt.Errorf("canvas %gx%g too small", msg.Width, msg.Height)
	}
	if msg.Width > maxCanvasSize || msg.Height > maxCanvasSize {
		return msg, fmt.Errorf("canvas %gx%g too large", msg.Width, msg.Height)
	}
	return msg, nil
}

// readLoop turns browser messages into session commands.
func readLoop(ctx context.Context, conn *websocket.Conn, session *game.Session) error {
	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != -1 {
				return errClosed
			}
			return fmt.Errorf("read: %w", err)
		}

		switch msg.Type {
		case TypeStart:
			session.Start()
		case TypeFire:
			session.Fire(msg.X, msg.Y)
		case TypeVisibility:
			session.SetVisible(msg.Visible)
		}
	}
}

// writeLoop streams events as they come and the latest snapshot once per
// frame period when it changed.
func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, session *game.Session) error {
	ticker := time.NewTicker(h.opts.TickTime)
	defer ticker.Stop()

	var last *game.Snapshot
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-session.Events():
			if err := wsjson.Write(ctx, conn, NewEventMessage(e)); err != nil {
				return fmt.Errorf("write event: %w", err)
			}
		case <-ticker.C:
			snap := session.Snapshot()
			if snap == last {
				continue
			}
			last = snap
			if err := wsjson.Write(ctx, conn, NewFrameMessage(snap)); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
	}
}
