// Package spatialmath defines the 2-D field geometry used for obstacle queries: points,
// segments, labelled shapes, and shape sets that answer hit-set queries.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Epsilon is the tolerance used when comparing field coordinates, in meters.
const Epsilon = 1e-9

// NormalizedTo returns p scaled to magnitude mag. The zero vector stays zero.
func NormalizedTo(p r2.Point, mag float64) r2.Point {
	return p.Normalize().Mul(mag)
}

// DistTo returns the euclidean distance between two points.
func DistTo(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// PointsNearlyEqual reports whether two points are within Epsilon of one another.
func PointsNearlyEqual(a, b r2.Point) bool {
	return math.Abs(a.X-b.X) < Epsilon && math.Abs(a.Y-b.Y) < Epsilon
}

// Lerp linearly interpolates from a to b by t in [0, 1].
func Lerp(a, b r2.Point, t float64) r2.Point {
	return a.Add(b.Sub(a).Mul(t))
}

// IsFinite reports whether both coordinates of p are finite.
func IsFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
