package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Segment is the closed line segment between A and B.
type Segment struct {
	A, B r2.Point
}

// NewSegment returns the segment from a to b.
func NewSegment(a, b r2.Point) Segment {
	return Segment{A: a, B: b}
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return DistTo(s.A, s.B)
}

// NearestPoint returns the point on the segment closest to p.
func (s Segment) NearestPoint(p r2.Point) r2.Point {
	delta := s.B.Sub(s.A)
	lenSq := delta.Dot(delta)
	if lenSq == 0 {
		return s.A
	}
	t := math.Max(0, math.Min(1, p.Sub(s.A).Dot(delta)/lenSq))
	return s.A.Add(delta.Mul(t))
}

// DistToPoint returns the shortest distance from p to the segment.
func (s Segment) DistToPoint(p r2.Point) float64 {
	return DistTo(s.NearestPoint(p), p)
}

// Intersects reports whether the two closed segments share at least one point.
func (s Segment) Intersects(other Segment) bool {
	d1 := orientation(other.A, other.B, s.A)
	d2 := orientation(other.A, other.B, s.B)
	d3 := orientation(s.A, s.B, other.A)
	d4 := orientation(s.A, s.B, other.B)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear and touching cases.
	switch {
	case d1 == 0 && onSegment(other, s.A):
		return true
	case d2 == 0 && onSegment(other, s.B):
		return true
	case d3 == 0 && onSegment(s, other.A):
		return true
	case d4 == 0 && onSegment(s, other.B):
		return true
	}
	return false
}

// orientation is the signed area of the triangle (a, b, c), snapped to zero within Epsilon.
func orientation(a, b, c r2.Point) float64 {
	cross := b.Sub(a).Cross(c.Sub(a))
	if math.Abs(cross) < Epsilon {
		return 0
	}
	return cross
}

// onSegment assumes p is collinear with s and checks that it lies inside the bounding box.
func onSegment(s Segment, p r2.Point) bool {
	return p.X <= math.Max(s.A.X, s.B.X)+Epsilon && p.X >= math.Min(s.A.X, s.B.X)-Epsilon &&
		p.Y <= math.Max(s.A.Y, s.B.Y)+Epsilon && p.Y >= math.Min(s.A.Y, s.B.Y)-Epsilon
}
