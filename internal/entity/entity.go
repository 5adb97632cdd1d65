// Package entity defines the circles that populate the game world.
//
// Every entity shares position, radius and color. The fixed set of kinds is
// expressed as a tag on a single struct rather than as separate types, and
// kind-specific fields (velocity, alpha, radius tween) are simply left zero
// where they do not apply.
package entity

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/sshooter/internal/game/config"
	"github.com/tomz197/sshooter/internal/physics"
)

// Kind identifies what an entity is.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindProjectile
	KindEnemy
	KindParticle
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindProjectile:
		return "projectile"
	case KindEnemy:
		return "enemy"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// White is the color of the player and its projectiles.
var White = colorful.Color{R: 1, G: 1, B: 1}

// Entity is a circle in the game world.
type Entity struct {
	Kind   Kind
	X, Y   float64        // Center
	Radius float64        // Collision/draw radius
	Color  colorful.Color // Fill color
	VX, VY float64        // Velocity per tick (projectiles, enemies, particles)
	Alpha  float64        // Opacity in [0,1] (particles fade; others stay at 1)

	shrink tween // Smoothed radius transition (enemies)
}

// NewPlayer creates the player circle at (x,y).
func NewPlayer(x, y float64) *Entity {
	return &Entity{
		Kind:   KindPlayer,
		X:      x,
		Y:      y,
		Radius: config.PlayerRadius,
		Color:  White,
		Alpha:  1,
	}
}

// Move advances the position by one tick of velocity.
func (e *Entity) Move() {
	e.X += e.VX
	e.Y += e.VY
}

// OffScreen reports whether the circle lies entirely beyond any edge of a
// width x height canvas.
func (e *Entity) OffScreen(width, height float64) bool {
	return e.X+e.Radius < 0 ||
		e.X-e.Radius > width ||
		e.Y+e.Radius < 0 ||
		e.Y-e.Radius > height
}

// SurfaceDistance returns the gap between the two circles.
func (e *Entity) SurfaceDistance(other *Entity) float64 {
	return physics.SurfaceDistance(e.X, e.Y, e.Radius, other.X, other.Y, other.Radius)
}

// CenterDistance returns the distance between the two centers.
func (e *Entity) CenterDistance(other *Entity) float64 {
	return physics.Distance(e.X, e.Y, other.X, other.Y)
}
