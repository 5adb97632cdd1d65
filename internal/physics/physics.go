// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// SurfaceDistance returns the gap between two circles: center-to-center
// distance minus the sum of the radii. Negative when they overlap.
func SurfaceDistance(x1, y1, r1, x2, y2, r2 float64) float64 {
	return Distance(x1, y1, x2, y2) - r1 - r2
}

// PointInCircle reports whether (px,py) lies inside or on the circle of the
// given radius centered at (cx,cy).
func PointInCircle(px, py, cx, cy, radius float64) bool {
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= radius*radius
}

// Angle returns the direction from (x1,y1) toward (x2,y2) in radians.
func Angle(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}
