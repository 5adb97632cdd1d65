// Package client is the terminal front-end: it runs one game session and
// draws it with colored half-blocks, taking mouse clicks and keys from the
// same terminal. It serves both the local game and SSH connections.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/sshooter/internal/audio"
	"github.com/tomz197/sshooter/internal/draw"
	"github.com/tomz197/sshooter/internal/game"
	"github.com/tomz197/sshooter/internal/game/config"
	"github.com/tomz197/sshooter/internal/input"
	"github.com/tomz197/sshooter/internal/logging"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	session      *game.Session
	state        *State
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	audio        audio.Player
	logger       *log.Logger
	termSizeFunc draw.TermSizeFunc
	termCols     int // Last seen terminal size, in cells
	termRows     int
	now          func() time.Time
}

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Scoreboard   *game.Scoreboard  // Shared top score; in-memory when nil
	Audio        audio.Player      // Defaults to silence
	Logger       *log.Logger       // Defaults to a discarding logger

	TickTime    time.Duration // Frame period, passed to the session
	SpawnPeriod time.Duration // Enemy spawn period, passed to the session
}

// New creates a client reading input from r and drawing to w. The logical
// canvas is sized from the terminal once, here, and kept for the whole
// connection; later resizes letterbox it inside the terminal.
func New(r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	player := opts.Audio
	if player == nil {
		player = audio.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	cols, rows, err := termSizeFunc()
	if err != nil || cols <= 0 || rows <= 0 {
		cols, rows = 80, 24
	}
	width := float64(cols * config.CellPixelWidth)
	height := float64(rows * config.CellPixelHeight)

	session := game.NewSession(game.Options{
		Width:       width,
		Height:      height,
		Scoreboard:  opts.Scoreboard,
		Logger:      logger,
		TickTime:    opts.TickTime,
		SpawnPeriod: opts.SpawnPeriod,
	})

	return &Client{
		session:      session,
		state:        NewState(session.Snapshot().TopScore),
		canvas:       draw.NewScaledCanvas(cols, rows, width, height),
		chunkWriter:  draw.NewChunkWriter(w, 0, 0),
		writer:       w,
		inputStream:  input.StartStream(r),
		audio:        player,
		logger:       logger.With("session", session.ID()),
		termSizeFunc: termSizeFunc,
		termCols:     cols,
		termRows:     rows,
		now:          time.Now,
	}
}

// Session returns the game session driven by this client.
func (c *Client) Session() *game.Session {
	return c.session
}

// Run starts the client loop. Blocks until the player quits, the input ends
// or ctx is canceled.
func (c *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.session.Run(ctx)
	defer func() {
		cancel()
		<-c.session.Done()
	}()
	defer c.inputStream.Stop()

	draw.EnterGameMode(c.writer)
	defer draw.ExitGameMode(c.writer)

	c.logger.Info("client connected", "cols", c.termCols, "rows", c.termRows)
	defer c.logger.Info("client disconnected", "top", c.state.TopScore)

	for c.state.Running {
		frameStart := time.Now()

		c.processInput()
		c.processEvents()
		c.updateScreen()

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		wait := config.ClientTargetFrameTime - elapsed
		if wait <= 0 {
			wait = time.Millisecond
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}

	return nil
}

// processInput reads the terminal and forwards it to the session.
func (c *Client) processInput() {
	c.handleInput(input.ReadInput(c.inputStream))
}

func (c *Client) handleInput(in input.Input) {
	if in.Quit {
		c.state.Running = false
		return
	}

	if in.Focus && in.Focused != c.state.Visible {
		c.state.Visible = in.Focused
		c.session.SetVisible(in.Focused)
	}

	switch c.session.Snapshot().Phase {
	case game.PhaseIdle:
		if in.Start || len(in.Clicks) > 0 {
			c.session.Start()
		}
	case game.PhaseOver:
		// Clicks are ignored so a late shot can't dismiss the results
		if in.Start {
			c.session.Start()
		}
	case game.PhasePlaying:
		for _, click := range in.Clicks {
			if x, y, ok := c.canvas.TerminalToLogical(click.Col, click.Row); ok {
				c.session.Fire(x, y)
			}
		}
	}
}

// processEvents drains session events.
func (c *Client) processEvents() {
	for {
		select {
		case e := <-c.session.Events():
			c.handleEvent(e)
		default:
			return
		}
	}
}

func (c *Client) handleEvent(e game.Event) {
	switch e.Type {
	case game.EventScore:
		c.state.Score = e.Score
	case game.EventTopScore:
		c.state.TopScore = e.TopScore
	case game.EventGameOver:
		c.state.Record = e.Record
		if e.Record {
			c.state.RecordUntil = c.now().Add(config.RecordHighlight)
		}
	case game.EventCue:
		c.audio.Play(e.Cue)
	}
}

// updateScreen follows terminal resizes. The logical canvas keeps its size
// and aspect; it is scaled to the largest cell area that fits and centered.
func (c *Client) updateScreen() {
	cols, rows, err := c.termSizeFunc()
	if err != nil || cols <= 0 || rows <= 0 {
		return
	}
	if cols == c.termCols && rows == c.termRows {
		return
	}
	c.termCols, c.termRows = cols, rows

	w, h, offCol, offRow := draw.Letterbox(cols, rows, c.canvas.LogicalWidth(), c.canvas.LogicalHeight(),
		config.CellPixelWidth, config.CellPixelHeight)
	c.canvas.Resize(w, h)
	c.canvas.SetOffset(offCol, offRow)
	c.chunkWriter.SetOffset(c.canvas.OffsetCol(), c.canvas.OffsetRow())
	draw.ClearScreen(c.chunkWriter)
	c.logger.Debug("terminal resized", "cols", cols, "rows", rows, "canvasCols", w, "canvasRows", h)
}
