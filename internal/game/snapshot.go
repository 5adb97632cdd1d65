package game

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/sshooter/internal/entity"
)

// Phase is the lifecycle stage of a session.
type Phase uint8

const (
	PhaseIdle    Phase = iota // Title screen, nothing started yet
	PhasePlaying              // Run in progress
	PhaseOver                 // Run lost, waiting for a restart
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Circle is the drawable part of an entity.
type Circle struct {
	X, Y   float64
	Radius float64
	Color  colorful.Color
	Alpha  float64
}

func circleOf(e *entity.Entity) Circle {
	return Circle{X: e.X, Y: e.Y, Radius: e.Radius, Color: e.Color, Alpha: e.Alpha}
}

// Snapshot is an immutable copy of the world for renderers running outside
// the session goroutine.
type Snapshot struct {
	Frame         uint64 // Ticks since the session started
	Phase         Phase
	Width, Height float64
	Score         int
	TopScore      int
	Record        bool // The last finished run set a new top score

	Player      Circle
	Projectiles []Circle
	Enemies     []Circle
	Particles   []Circle
}

// snapshot copies the drawable state of w.
func (w *World) snapshot() *Snapshot {
	snap := &Snapshot{
		Width:       w.Width,
		Height:      w.Height,
		Score:       w.Score,
		Player:      circleOf(w.Player),
		Projectiles: circlesOf(w.Projectiles),
		Enemies:     circlesOf(w.Enemies),
		Particles:   circlesOf(w.Particles),
	}
	return snap
}

func circlesOf(list []*entity.Entity) []Circle {
	if len(list) == 0 {
		return nil
	}
	out := make([]Circle, len(list))
	for i, e := range list {
		out[i] = circleOf(e)
	}
	return out
}
