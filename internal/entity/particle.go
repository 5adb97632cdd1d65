package entity

import (
	"math"
	"sync"

	"github.com/tomz197/sshooter/internal/game/config"
)

// particlePool is a sync.Pool for reusing particle entities to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Entity{}
	},
}

// NewParticle creates a fully opaque particle from the pool.
func NewParticle(x, y, radius float64, from *Entity, vx, vy float64) *Entity {
	p := particlePool.Get().(*Entity)
	*p = Entity{
		Kind:   KindParticle,
		X:      x,
		Y:      y,
		Radius: radius,
		Color:  from.Color,
		VX:     vx,
		VY:     vy,
		Alpha:  1,
	}
	return p
}

// Release returns a particle to the pool for reuse. It must not be touched
// afterwards. Other kinds are left alone.
func (e *Entity) Release() {
	if e.Kind == KindParticle {
		particlePool.Put(e)
	}
}

// SpawnExplosion creates floor(2 * enemy radius) particles at (x,y) in the
// enemy's color, passing each to add.
func SpawnExplosion(x, y float64, enemy *Entity, rng Rand, add func(*Entity)) {
	count := int(math.Floor(enemy.Radius * config.ParticlesPerRadius))
	for range count {
		// Radius in (0, ParticleMaxRadius)
		radius := (1 - rng.Float64()) * config.ParticleMaxRadius * 0.999
		vx := (rng.Float64() - 0.5) * config.ParticleSpeed
		vy := (rng.Float64() - 0.5) * config.ParticleSpeed
		add(NewParticle(x, y, radius, enemy, vx, vy))
	}
}

// UpdateParticle applies friction, moves, and fades the particle by one tick.
func (e *Entity) UpdateParticle() {
	e.VX *= config.ParticleFriction
	e.VY *= config.ParticleFriction
	e.Move()
	e.Alpha -= config.ParticleFade
}

// Faded reports whether the particle has become fully transparent.
func (e *Entity) Faded() bool {
	return e.Alpha <= 0
}
