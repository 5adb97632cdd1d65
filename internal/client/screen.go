package client

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/sshooter/internal/draw"
	"github.com/tomz197/sshooter/internal/game"
	"github.com/tomz197/sshooter/internal/game/config"
)

var (
	textColor   = colorful.Color{R: 1, G: 1, B: 1}
	dimColor    = colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	panelColor  = colorful.Color{R: 0.08, G: 0.08, B: 0.1}
	recordColor = colorful.Hsl(45, 1, 0.6)
)

// Title art (figlet "small" font).
var titleArt = []string{
	` ___ ___ _  _  ___   ___ _____ ___ ___ `,
	`/ __/ __| || |/ _ \ / _ \_   _| __| _ \`,
	`\__ \__ \ __ | (_) | (_) || | | _||   /`,
	`|___/___/_||_|\___/ \___/ |_| |___|_|_\`,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	snap := c.session.Snapshot()
	cw := c.chunkWriter

	// On phase transitions, do a full terminal clear so text from the
	// previous screen doesn't persist.
	if !c.state.drawnOnce || snap.Phase != c.state.prevPhase {
		draw.ClearScreen(cw)
		c.canvas.Invalidate()
		c.state.prevPhase = snap.Phase
		c.state.drawnOnce = true
	}

	c.drawWorld(snap)
	if err := c.canvas.Render(cw); err != nil {
		return err
	}

	c.drawUI(snap)
	return cw.Flush()
}

// drawWorld paints the snapshot over the fading previous frames.
func (c *Client) drawWorld(snap *game.Snapshot) {
	c.canvas.Fade(config.TrailAlpha)

	c.fill(snap.Player)
	for _, p := range snap.Particles {
		c.fill(p)
	}
	for _, p := range snap.Projectiles {
		c.fill(p)
	}
	for _, e := range snap.Enemies {
		c.fill(e)
	}
}

func (c *Client) fill(circle game.Circle) {
	c.canvas.FillCircle(circle.X, circle.Y, circle.Radius, circle.Color, circle.Alpha)
}

// drawUI draws the text overlay for the current phase.
func (c *Client) drawUI(snap *game.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch snap.Phase {
	case game.PhaseIdle:
		c.drawStartScreen(centerX, centerY, snap)
	case game.PhasePlaying:
		c.drawPlayingHUD(termWidth, snap)
	case game.PhaseOver:
		c.drawPlayingHUD(termWidth, snap)
		c.drawGameOver(centerX, centerY, snap)
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int, snap *game.Snapshot) {
	cw := c.chunkWriter

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	titleStartY := centerY - 5
	for i, line := range titleArt {
		cw.WriteStyledAt(centerX-titleWidth/2, titleStartY+i, line, textColor, draw.Black)
	}

	subtitle := "~ Keep them away from the center ~"
	cw.WriteStyledAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle, dimColor, draw.Black)

	lines := []string{
		"CLICK  . . . . . Shoot",
		"SPACE  . . . . . Start",
		"Q  . . . . . . .  Quit",
	}
	for i, line := range lines {
		cw.WriteStyledAt(centerX-len(line)/2, titleStartY+len(titleArt)+3+i, line, dimColor, draw.Black)
	}

	top := fmt.Sprintf("Top score: %d", max(snap.TopScore, c.state.TopScore))
	cw.WriteStyledAt(centerX-len(top)/2, titleStartY+len(titleArt)+len(lines)+4, top, textColor, draw.Black)

	// Blinking start prompt
	if c.now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE or click to start  <<"
		cw.WriteStyledAt(centerX-len(prompt)/2, titleStartY+len(titleArt)+len(lines)+6, prompt, textColor, draw.Black)
	} else {
		blank := fmt.Sprintf("%*s", len(">>  Press SPACE or click to start  <<"), "")
		cw.WriteStyledAt(centerX-len(blank)/2, titleStartY+len(titleArt)+len(lines)+6, blank, textColor, draw.Black)
	}
}

// drawPlayingHUD draws the score line. Fields are fixed width so shrinking
// values don't leave residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth int, snap *game.Snapshot) {
	cw := c.chunkWriter

	scoreText := fmt.Sprintf("Score: %-8d", snap.Score)
	cw.WriteStyledAt(2, 1, scoreText, textColor, draw.Black)

	topText := fmt.Sprintf("Top: %8d", max(snap.TopScore, c.state.TopScore))
	cw.WriteStyledAt(termWidth-len(topText), 1, topText, textColor, draw.Black)
}

// drawGameOver draws the game over panel.
func (c *Client) drawGameOver(centerX, centerY int, snap *game.Snapshot) {
	cw := c.chunkWriter

	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Top score: %d", max(snap.TopScore, c.state.TopScore)),
		"",
		"Press SPACE to restart",
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	width += 4
	left := centerX - width/2
	top := centerY - len(lines)/2 - 1

	for i := -1; i <= len(lines); i++ {
		cw.WriteStyledAt(left, top+i, fmt.Sprintf("%*s", width, ""), textColor, panelColor)
	}
	for i, l := range lines {
		cw.WriteStyledAt(centerX-len(l)/2, top+i, l, textColor, panelColor)
	}

	if c.state.Highlighting(c.now()) && c.now().UnixMilli()/250%2 == 0 {
		banner := "NEW TOP SCORE!"
		cw.WriteStyledAt(centerX-len(banner)/2, top+1, banner, recordColor, panelColor)
	}
}
