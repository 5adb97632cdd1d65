package entity

import (
	"math"

	"github.com/tomz197/sshooter/internal/game/config"
)

// NewProjectile creates a projectile at (x,y) traveling along angle.
func NewProjectile(x, y, angle float64) *Entity {
	return &Entity{
		Kind:   KindProjectile,
		X:      x,
		Y:      y,
		Radius: config.ProjectileRadius,
		Color:  White,
		VX:     math.Cos(angle) * config.ProjectileSpeed,
		VY:     math.Sin(angle) * config.ProjectileSpeed,
		Alpha:  1,
	}
}
