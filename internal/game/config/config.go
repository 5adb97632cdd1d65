// Package config centralizes all tunable game parameters.
package config

import "time"

// Player
const (
	PlayerRadius = 10.0
)

// Projectiles
const (
	ProjectileRadius = 5.0
	ProjectileSpeed  = 5.0
)

// Enemies
const (
	EnemyMinRadius   = 5.0
	EnemyMaxRadius   = 30.0 // Exclusive upper bound of the spawn radius
	EnemySpeed       = 1.0
	EnemySaturation  = 0.5
	EnemyLightness   = 0.5
	EnemySpawnPeriod = 1400 * time.Millisecond
)

// Hits
const (
	ShrinkStep       = 10.0 // Radius lost per non-lethal hit
	LethalRadius     = 10.0 // A hit is lethal when radius-ShrinkStep <= LethalRadius
	ShrinkTweenTicks = 30   // Length of the smoothed shrink (~0.5s at 60fps)
	HitDistance      = 1.0  // Surface distance below which two circles touch
)

// Scoring
const (
	ScoreShrink  = 100
	ScoreDestroy = 250
)

// Particles
const (
	ParticlesPerRadius = 2
	ParticleMaxRadius  = 3.0
	ParticleSpeed      = 5.0
	ParticleFriction   = 0.99
	ParticleFade       = 0.01
)

// Persistence
const (
	TopScoreKey = "topScore"
)

// Presentation
const (
	TrailAlpha      = 0.08 // Opacity of the black fill drawn each frame
	RecordHighlight = 2000 * time.Millisecond
)

// Tick rate
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Terminal client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	CellPixelWidth        = 6  // Logical pixels per terminal column
	CellPixelHeight       = 12 // Logical pixels per terminal row (two sub-pixels)
)
