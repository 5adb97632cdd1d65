// Package game holds the simulation: the world and its per-frame update, the
// enemy spawner, the persisted top score and the session that drives them.
package game

import (
	"slices"

	"github.com/tomz197/sshooter/internal/entity"
	"github.com/tomz197/sshooter/internal/game/config"
	"github.com/tomz197/sshooter/internal/physics"
)

// collisionGridCellSize must cover the largest projectile/enemy hit distance:
// an enemy radius just under EnemyMaxRadius plus HitDistance.
const collisionGridCellSize = config.EnemyMaxRadius + config.HitDistance + 1

// TickResult summarizes what happened during one Tick.
type TickResult struct {
	Hits   int  // Projectile/enemy hits
	Points int  // Score gained
	Lost   bool // An enemy reached the player this tick
}

// World is the complete game state. It is not safe for concurrent use; a
// Session owns it from a single goroutine.
type World struct {
	Width, Height float64

	Player      *entity.Entity
	Projectiles []*entity.Entity
	Enemies     []*entity.Entity
	Particles   []*entity.Entity

	Score int
	Over  bool

	rng entity.Rand

	// Hit removals are deferred to the end of the tick
	toRemove map[*entity.Entity]struct{}

	// Broad phase for projectile/enemy hits, rebuilt each tick
	grid       *physics.SpatialGrid
	candidates []int
}

// NewWorld creates a world for a width x height canvas and resets it.
func NewWorld(width, height float64, rng entity.Rand) *World {
	w := &World{
		Width:    width,
		Height:   height,
		rng:      rng,
		toRemove: make(map[*entity.Entity]struct{}),
		grid:     physics.NewSpatialGrid(width, height, collisionGridCellSize),
	}
	w.Reset()
	return w
}

// Reset puts the world in its starting state: the player alone at the
// center with a zero score.
func (w *World) Reset() {
	w.Player = entity.NewPlayer(w.Width/2, w.Height/2)
	for _, p := range w.Particles {
		p.Release()
	}
	clear(w.Projectiles)
	clear(w.Enemies)
	clear(w.Particles)
	w.Projectiles = w.Projectiles[:0]
	w.Enemies = w.Enemies[:0]
	w.Particles = w.Particles[:0]
	w.Score = 0
	w.Over = false
	clear(w.toRemove)
}

// Fire launches a projectile from the player toward (x,y).
func (w *World) Fire(x, y float64) {
	angle := physics.Angle(w.Player.X, w.Player.Y, x, y)
	w.Projectiles = append(w.Projectiles, entity.NewProjectile(w.Player.X, w.Player.Y, angle))
}

// SpawnEnemy adds one enemy just outside a random edge.
func (w *World) SpawnEnemy() {
	w.Enemies = append(w.Enemies, entity.NewEnemyAtEdge(w.Width, w.Height, w.rng))
}

// Tick advances the world by one frame. A world that is over does not move.
func (w *World) Tick() TickResult {
	var res TickResult
	if w.Over {
		return res
	}

	w.updateParticles()
	w.updateProjectiles()

	w.grid.Clear()
	for i, p := range w.Projectiles {
		w.grid.Insert(p.X, p.Y, i)
	}

	for _, e := range w.Enemies {
		e.Advance()

		if e.SurfaceDistance(w.Player) < config.HitDistance {
			w.Over = true
			res.Lost = true
		}

		// Ascending index keeps the scan order of a plain loop
		w.candidates = w.grid.Collect(e.X, e.Y, w.candidates[:0])
		slices.Sort(w.candidates)

		for _, i := range w.candidates {
			p := w.Projectiles[i]
			if w.scheduled(p) {
				continue
			}
			if p.CenterDistance(e)-e.Radius >= config.HitDistance {
				continue
			}
			if w.hit(e, p, &res) {
				break
			}
		}
	}

	w.flushRemovals()
	return res
}

// updateParticles fades particles and drops the transparent ones.
func (w *World) updateParticles() {
	kept := w.Particles[:0]
	for _, p := range w.Particles {
		if p.Faded() {
			p.Release()
			continue
		}
		p.UpdateParticle()
		kept = append(kept, p)
	}
	clear(w.Particles[len(kept):])
	w.Particles = kept
}

// updateProjectiles moves projectiles and drops the ones that left the canvas.
func (w *World) updateProjectiles() {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		p.Move()
		if p.OffScreen(w.Width, w.Height) {
			continue
		}
		kept = append(kept, p)
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept
}

// hit applies a projectile hit on enemy e and reports whether e was
// destroyed.
func (w *World) hit(e, p *entity.Entity, res *TickResult) bool {
	entity.SpawnExplosion(p.X, p.Y, e, w.rng, func(part *entity.Entity) {
		w.Particles = append(w.Particles, part)
	})
	res.Hits++
	w.toRemove[p] = struct{}{}

	if e.Radius-config.ShrinkStep > config.LethalRadius {
		e.ShrinkBy(config.ShrinkStep)
		w.addPoints(config.ScoreShrink, res)
		return false
	}

	w.toRemove[e] = struct{}{}
	w.addPoints(config.ScoreDestroy, res)
	return true
}

func (w *World) addPoints(n int, res *TickResult) {
	w.Score += n
	res.Points += n
}

func (w *World) scheduled(e *entity.Entity) bool {
	_, ok := w.toRemove[e]
	return ok
}

// flushRemovals drops every scheduled entity by identity.
func (w *World) flushRemovals() {
	if len(w.toRemove) == 0 {
		return
	}
	w.Projectiles = w.compact(w.Projectiles)
	w.Enemies = w.compact(w.Enemies)
	clear(w.toRemove)
}

func (w *World) compact(list []*entity.Entity) []*entity.Entity {
	kept := list[:0]
	for _, e := range list {
		if !w.scheduled(e) {
			kept = append(kept, e)
		}
	}
	clear(list[len(kept):])
	return kept
}
