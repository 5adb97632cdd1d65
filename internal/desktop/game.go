// Package desktop is the windowed front-end, drawn with ebiten.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/sshooter/internal/audio"
	"github.com/tomz197/sshooter/internal/game"
	"github.com/tomz197/sshooter/internal/game/config"
	"github.com/tomz197/sshooter/internal/logging"
)

// Default window size in logical pixels.
const (
	DefaultWidth  = 960
	DefaultHeight = 640
)

// trailFill fades previous frames each Draw.
var trailFill = color.NRGBA{A: uint8(math.Round(config.TrailAlpha * 255))}

// Options configures the window.
type Options struct {
	Width, Height int              // Logical canvas size, defaults to 960x640
	Scoreboard    *game.Scoreboard // In-memory when nil
	Audio         audio.Player     // Defaults to silence
	Logger        *log.Logger      // Defaults to a discarding logger

	TickTime    time.Duration // Frame period, passed to the session
	SpawnPeriod time.Duration // Enemy spawn period, passed to the session
}

// Game implements ebiten.Game on top of a session.
type Game struct {
	session *game.Session
	audio   audio.Player
	logger  *log.Logger
	now     func() time.Time

	width, height int
	trail         *ebiten.Image

	score       int
	topScore    int
	record      bool
	recordUntil time.Time
	focused     bool
}

// controls is one frame of window input.
type controls struct {
	Quit    bool
	Start   bool
	Click   bool
	X, Y    float64
	Focused bool
}

// New creates the game. The session starts when Run is called.
func New(opts Options) *Game {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	session := game.NewSession(game.Options{
		Width:       float64(opts.Width),
		Height:      float64(opts.Height),
		Scoreboard:  opts.Scoreboard,
		Logger:      opts.Logger,
		TickTime:    opts.TickTime,
		SpawnPeriod: opts.SpawnPeriod,
	})
	return &Game{
		session:  session,
		audio:    opts.Audio,
		logger:   opts.Logger.With("session", session.ID()),
		now:      time.Now,
		width:    opts.Width,
		height:   opts.Height,
		topScore: session.Snapshot().TopScore,
		focused:  true,
	}
}

// Session returns the game session driven by the window.
func (g *Game) Session() *game.Session {
	return g.session
}

// Run opens the window and blocks until it is closed or ctx is canceled.
func (g *Game) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go g.session.Run(ctx)
	defer func() {
		cancel()
		<-g.session.Done()
	}()

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("sshooter")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)

	g.logger.Info("window opened", "width", g.width, "height", g.height)
	err := ebiten.RunGame(&window{Game: g, ctx: ctx})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	g.logger.Info("window closed", "top", g.topScore)
	return nil
}

// window binds a Game to the context it runs under.
type window struct {
	*Game
	ctx context.Context
}

// Update implements ebiten.Game.
func (w *window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	return w.Game.Update()
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if err := g.apply(readControls()); err != nil {
		return err
	}
	g.processEvents()
	return nil
}

func readControls() controls {
	var c controls
	c.Quit = inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	c.Start = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	c.Focused = ebiten.IsFocused()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		c.Click = true
		c.X, c.Y = float64(x), float64(y)
	}
	return c
}

// apply forwards one frame of input to the session. A click starts a run
// from the title screen only; after a loss the player restarts with a key.
func (g *Game) apply(c controls) error {
	if c.Quit {
		return ebiten.Termination
	}

	if c.Focused != g.focused {
		g.focused = c.Focused
		g.session.SetVisible(c.Focused)
	}

	switch g.session.Snapshot().Phase {
	case game.PhaseIdle:
		if c.Start || c.Click {
			g.session.Start()
		}
	case game.PhaseOver:
		if c.Start {
			g.session.Start()
		}
	case game.PhasePlaying:
		if c.Click {
			g.session.Fire(c.X, c.Y)
		}
	}
	return nil
}

// processEvents drains session events.
func (g *Game) processEvents() {
	for {
		select {
		case e := <-g.session.Events():
			g.handleEvent(e)
		default:
			return
		}
	}
}

func (g *Game) handleEvent(e game.Event) {
	switch e.Type {
	case game.EventScore:
		g.score = e.Score
	case game.EventTopScore:
		g.topScore = e.TopScore
	case game.EventGameOver:
		g.record = e.Record
		if e.Record {
			g.recordUntil = g.now().Add(config.RecordHighlight)
		}
	case game.EventCue:
		g.audio.Play(e.Cue)
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.trail == nil {
		g.trail = ebiten.NewImage(g.width, g.height)
	}
	snap := g.session.Snapshot()

	vector.DrawFilledRect(g.trail, 0, 0, float32(g.width), float32(g.height), trailFill, false)
	fillCircle(g.trail, snap.Player)
	for _, p := range snap.Particles {
		fillCircle(g.trail, p)
	}
	for _, p := range snap.Projectiles {
		fillCircle(g.trail, p)
	}
	for _, e := range snap.Enemies {
		fillCircle(g.trail, e)
	}

	screen.DrawImage(g.trail, nil)
	for i, line := range g.hud(snap) {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+i*16)
	}
}

// Layout implements ebiten.Game. The canvas keeps its logical size and is
// scaled to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// hud returns the text overlay for the current phase.
func (g *Game) hud(snap *game.Snapshot) []string {
	top := max(snap.TopScore, g.topScore)
	switch snap.Phase {
	case game.PhaseIdle:
		return []string{
			"SSHOOTER",
			"Keep them away from the center",
			fmt.Sprintf("Top score: %d", top),
			"Click or press SPACE to start, Q to quit",
		}
	case game.PhaseOver:
		lines := []string{
			"GAME OVER",
			fmt.Sprintf("Score: %d", snap.Score),
			fmt.Sprintf("Top score: %d", top),
			"Press SPACE to restart",
		}
		if g.record && g.now().Before(g.recordUntil) {
			lines = append(lines, "NEW TOP SCORE!")
		}
		return lines
	default:
		return []string{fmt.Sprintf("Score: %d   Top: %d", snap.Score, top)}
	}
}

func fillCircle(dst *ebiten.Image, c game.Circle) {
	vector.DrawFilledCircle(dst, float32(c.X), float32(c.Y), float32(c.Radius), nrgba(c), true)
}

// nrgba converts a circle's color and opacity to an image color.
func nrgba(c game.Circle) color.NRGBA {
	r, g, b := c.Color.Clamped().RGB255()
	a := min(max(c.Alpha, 0), 1)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}
