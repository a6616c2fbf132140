package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// circleOutlineVertices is the number of vertices used to draw a circle's outline.
const circleOutlineVertices = 32

// Shape is a labelled obstacle on the field. Hit tests are closed: touching the boundary counts
// as a hit.
type Shape interface {
	Label() string
	SetLabel(string)
	HitPoint(p r2.Point) bool
	HitSegment(s Segment) bool
	// Outline returns the boundary vertices in order, for drawing.
	Outline() []r2.Point
}

// Circle is a disc obstacle, e.g. another robot.
type Circle struct {
	Center r2.Point
	Radius float64
	label  string
}

// NewCircle instantiates a new circle Shape.
func NewCircle(center r2.Point, radius float64, label string) (*Circle, error) {
	c := &Circle{Center: center, Radius: radius, label: label}
	if radius <= 0 || math.IsNaN(radius) {
		return nil, newBadShapeDimensionsError(c)
	}
	if !IsFinite(center) {
		return nil, newNonFiniteShapeError(label)
	}
	return c, nil
}

// Label returns the label of the circle.
func (c *Circle) Label() string { return c.label }

// SetLabel sets the label of the circle.
func (c *Circle) SetLabel(label string) { c.label = label }

// HitPoint reports whether p lies in the disc.
func (c *Circle) HitPoint(p r2.Point) bool {
	return DistTo(c.Center, p) <= c.Radius
}

// HitSegment reports whether any point of s lies in the disc.
func (c *Circle) HitSegment(s Segment) bool {
	return s.DistToPoint(c.Center) <= c.Radius
}

// Outline approximates the circle by a regular polygon.
func (c *Circle) Outline() []r2.Point {
	pts := make([]r2.Point, 0, circleOutlineVertices)
	for i := 0; i < circleOutlineVertices; i++ {
		theta := 2 * math.Pi * float64(i) / circleOutlineVertices
		pts = append(pts, c.Center.Add(r2.Point{X: math.Cos(theta), Y: math.Sin(theta)}.Mul(c.Radius)))
	}
	return pts
}

// Rect is an axis-aligned rectangular obstacle, e.g. a goal box.
type Rect struct {
	r2.Rect
	label string
}

// NewRect returns the smallest rectangle containing both corners.
func NewRect(corner1, corner2 r2.Point, label string) (*Rect, error) {
	r := &Rect{Rect: r2.RectFromPoints(corner1, corner2), label: label}
	if !IsFinite(corner1) || !IsFinite(corner2) {
		return nil, newNonFiniteShapeError(label)
	}
	if r.Size().X <= 0 || r.Size().Y <= 0 {
		return nil, newBadShapeDimensionsError(r)
	}
	return r, nil
}

// Label returns the label of the rectangle.
func (r *Rect) Label() string { return r.label }

// SetLabel sets the label of the rectangle.
func (r *Rect) SetLabel(label string) { r.label = label }

// HitPoint reports whether p lies in the closed rectangle.
func (r *Rect) HitPoint(p r2.Point) bool {
	return r.ContainsPoint(p)
}

// HitSegment reports whether any point of s lies in the closed rectangle.
func (r *Rect) HitSegment(s Segment) bool {
	return hitClosedPolygon(r.Outline(), r.HitPoint, s)
}

// Outline returns the corners counter-clockwise starting at the lower left.
func (r *Rect) Outline() []r2.Point {
	v := r.Vertices()
	return v[:]
}

// Polygon is a simple (non self-intersecting) polygon obstacle.
type Polygon struct {
	vertices []r2.Point
	label    string
}

// NewPolygon instantiates a polygon from its vertices in order.
func NewPolygon(vertices []r2.Point, label string) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, newTooFewVerticesError(len(vertices))
	}
	for _, v := range vertices {
		if !IsFinite(v) {
			return nil, newNonFiniteShapeError(label)
		}
	}
	return &Polygon{vertices: append([]r2.Point{}, vertices...), label: label}, nil
}

// Label returns the label of the polygon.
func (p *Polygon) Label() string { return p.label }

// SetLabel sets the label of the polygon.
func (p *Polygon) SetLabel(label string) { p.label = label }

// HitPoint reports whether pt is inside or on the boundary of the polygon.
func (p *Polygon) HitPoint(pt r2.Point) bool {
	inside := false
	n := len(p.vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.vertices[i], p.vertices[j]
		if NewSegment(a, b).DistToPoint(pt) < Epsilon {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) && pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// HitSegment reports whether any point of s lies in the polygon.
func (p *Polygon) HitSegment(s Segment) bool {
	return hitClosedPolygon(p.vertices, p.HitPoint, s)
}

// Outline returns the polygon vertices.
func (p *Polygon) Outline() []r2.Point {
	return append([]r2.Point{}, p.vertices...)
}

// hitClosedPolygon is true when an endpoint of s is inside the polygon or s crosses an edge.
func hitClosedPolygon(vertices []r2.Point, contains func(r2.Point) bool, s Segment) bool {
	if contains(s.A) || contains(s.B) {
		return true
	}
	for i := range vertices {
		edge := NewSegment(vertices[i], vertices[(i+1)%len(vertices)])
		if edge.Intersects(s) {
			return true
		}
	}
	return false
}
