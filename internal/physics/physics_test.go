package physics

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSurfaceDistance(t *testing.T) {
	assert.InDelta(t, 5.0, SurfaceDistance(0, 0, 10, 25, 0, 10), 1e-9)
	assert.InDelta(t, -5.0, SurfaceDistance(0, 0, 10, 0, 15, 10), 1e-9)
	assert.InDelta(t, 0.0, SurfaceDistance(3, 4, 2, 0, 0, 3), 1e-9)
}

func TestPointInCircle(t *testing.T) {
	assert.True(t, PointInCircle(1, 1, 0, 0, 2))
	assert.True(t, PointInCircle(2, 0, 0, 0, 2), "edge counts as inside")
	assert.False(t, PointInCircle(3, 0, 0, 0, 2))
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, 0.0, Angle(0, 0, 10, 0), 1e-9)
	assert.InDelta(t, math.Pi/2, Angle(0, 0, 0, 10), 1e-9)
	assert.InDelta(t, math.Pi, Angle(0, 0, -10, 0), 1e-9)
}

func TestSpatialGridQuery(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(5, 5, 0)
	g.Insert(15, 5, 1)
	g.Insert(95, 95, 2)

	got := g.Collect(5, 5, nil)
	slices.Sort(got)
	assert.Equal(t, []int{0, 1}, got)

	g.Clear()
	assert.Empty(t, g.Collect(5, 5, nil))
}

func TestSpatialGridClampsOffCanvas(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(-25, 50, 0)
	g.Insert(130, 50, 1)

	assert.Equal(t, []int{0}, g.Collect(-2, 50, nil))
	assert.Equal(t, []int{1}, g.Collect(101, 50, nil))
}

func TestSpatialGridNoDuplicatesOnSmallGrid(t *testing.T) {
	g := NewSpatialGrid(15, 15, 10) // 2x2 cells
	g.Insert(1, 1, 0)
	g.Insert(14, 14, 1)

	got := g.Collect(1, 1, nil)
	slices.Sort(got)
	assert.Equal(t, []int{0, 1}, got)
}

// Any two points closer than the cell size must see each other.
func TestSpatialGridFindsNearbyPairs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		const cell = 32.0
		g := NewSpatialGrid(320, 200, cell)

		x := rapid.Float64Range(-100, 420).Draw(t, "x")
		y := rapid.Float64Range(-100, 300).Draw(t, "y")
		angle := rapid.Float64Range(0, 2*math.Pi).Draw(t, "angle")
		dist := rapid.Float64Range(0, cell).Draw(t, "dist")

		g.Insert(x+math.Cos(angle)*dist, y+math.Sin(angle)*dist, 7)
		if !slices.Contains(g.Collect(x, y, nil), 7) {
			t.Fatalf("neighbor at distance %.2f not found", dist)
		}
	})
}
