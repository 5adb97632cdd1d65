// Package audio plays the short sound cues that accompany gameplay events.
//
// Playback is best effort: a player that cannot produce sound stays silent
// and never reports errors back to the game.
package audio

import (
	"io"
	"sync"
)

// Cue identifies a sound effect.
type Cue uint8

const (
	CueHit    Cue = iota // Projectile struck an enemy
	CueLose              // Enemy reached the player
	CueRecord            // New top score
)

// String returns the lowercase cue name.
func (c Cue) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueLose:
		return "lose"
	case CueRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Player plays cues. Implementations must not block the caller for longer
// than it takes to queue the sound.
type Player interface {
	Play(c Cue)
}

// Nop is a Player that stays silent.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Cue) {}

// Bell rings the terminal bell on cues worth attention. Hits are too frequent
// for a bell and are skipped.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// Compile-time checks.
var (
	_ Player = Nop{}
	_ Player = (*Bell)(nil)
)

// NewBell returns a Bell writing to w, usually the player's terminal.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play implements Player.
func (b *Bell) Play(c Cue) {
	if c == CueHit {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write([]byte("\a"))
}

// Recorder remembers every cue it is asked to play.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

// Play implements Player.
func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, c)
	r.mu.Unlock()
}

// Cues returns a copy of the cues played so far.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}
