package entity

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/sshooter/internal/game/config"
)

// Rand is the source of randomness used for spawning. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewEnemy creates an enemy at (x,y) moving along (vx,vy) per tick.
func NewEnemy(x, y, radius float64, color colorful.Color, vx, vy float64) *Entity {
	return &Entity{
		Kind:   KindEnemy,
		X:      x,
		Y:      y,
		Radius: radius,
		Color:  color,
		VX:     vx,
		VY:     vy,
		Alpha:  1,
	}
}

// NewEnemyAtEdge creates an enemy just outside a width x height canvas,
// heading for its center at unit speed.
//
// The spawn edge is picked 50/50 between the left/right pair and the
// top/bottom pair, then 50/50 between the two sides of that pair. The enemy
// is offset by its own radius so it starts fully hidden.
func NewEnemyAtEdge(width, height float64, rng Rand) *Entity {
	radius := rng.Float64()*(config.EnemyMaxRadius-config.EnemyMinRadius) + config.EnemyMinRadius

	var x, y float64
	if rng.Float64() < 0.5 {
		// Left or right
		x = -radius
		if rng.Float64() >= 0.5 {
			x = width + radius
		}
		y = rng.Float64() * height
	} else {
		// Top or bottom
		x = rng.Float64() * width
		y = -radius
		if rng.Float64() >= 0.5 {
			y = height + radius
		}
	}

	color := colorful.Hsl(rng.Float64()*360, config.EnemySaturation, config.EnemyLightness)

	angle := math.Atan2(height/2-y, width/2-x)
	vx := math.Cos(angle) * config.EnemySpeed
	vy := math.Sin(angle) * config.EnemySpeed

	return NewEnemy(x, y, radius, color, vx, vy)
}

// Advance steps the radius transition, if any, then moves the enemy.
func (e *Entity) Advance() {
	if e.shrink.active() {
		e.Radius = e.shrink.advance()
	}
	e.Move()
}

// ShrinkBy starts a smoothed transition from the current radius to
// radius-d. A transition already in progress is replaced, starting from the
// radius it has reached so far.
func (e *Entity) ShrinkBy(d float64) {
	e.shrink = tween{
		from:  e.Radius,
		to:    e.Radius - d,
		steps: config.ShrinkTweenTicks,
	}
}

// Shrinking reports whether a radius transition is in progress.
func (e *Entity) Shrinking() bool {
	return e.shrink.active()
}

// TargetRadius returns the radius the enemy is heading to, or its current
// radius when no transition is running.
func (e *Entity) TargetRadius() float64 {
	if e.shrink.active() {
		return e.shrink.to
	}
	return e.Radius
}
