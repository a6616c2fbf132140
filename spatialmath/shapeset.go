package spatialmath

import (
	"sort"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// HitSet is the set of obstacle labels that a point or segment intersects.
type HitSet map[string]struct{}

// NewHitSet returns a hit-set holding the given labels.
func NewHitSet(labels ...string) HitSet {
	h := make(HitSet, len(labels))
	for _, l := range labels {
		h[l] = struct{}{}
	}
	return h
}

// Empty reports whether nothing was hit.
func (h HitSet) Empty() bool {
	return len(h) == 0
}

// Contains reports whether the obstacle with the given label was hit.
func (h HitSet) Contains(label string) bool {
	_, ok := h[label]
	return ok
}

// Labels returns the hit labels in sorted order.
func (h HitSet) Labels() []string {
	labels := lo.Keys(h)
	sort.Strings(labels)
	return labels
}

// SubsetOf reports whether every obstacle in h is also in other.
func (h HitSet) SubsetOf(other HitSet) bool {
	return lo.EveryBy(lo.Keys(h), other.Contains)
}

// Difference returns the obstacles in h that are not in other.
func (h HitSet) Difference(other HitSet) HitSet {
	return lo.OmitBy(h, func(label string, _ struct{}) bool {
		return other.Contains(label)
	})
}

// ShapeSet is a collection of obstacles that answers hit-set queries. A nil *ShapeSet behaves as
// an empty field.
type ShapeSet struct {
	shapes []Shape
}

// NewShapeSet returns a ShapeSet holding the given shapes.
func NewShapeSet(shapes ...Shape) *ShapeSet {
	s := &ShapeSet{}
	s.Add(shapes...)
	return s
}

// Add appends shapes to the set. Shapes without a label are given a random one so that every
// obstacle has an identity.
func (s *ShapeSet) Add(shapes ...Shape) {
	for _, shape := range shapes {
		if shape.Label() == "" {
			shape.SetLabel(uuid.NewString())
		}
		s.shapes = append(s.shapes, shape)
	}
}

// Shapes returns the shapes in insertion order.
func (s *ShapeSet) Shapes() []Shape {
	if s == nil {
		return nil
	}
	return s.shapes
}

// Len returns the number of shapes.
func (s *ShapeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.shapes)
}

// Hit reports whether p lies in any obstacle.
func (s *ShapeSet) Hit(p r2.Point) bool {
	if s == nil {
		return false
	}
	return lo.SomeBy(s.shapes, func(shape Shape) bool { return shape.HitPoint(p) })
}

// HitSet returns the labels of all obstacles containing p.
func (s *ShapeSet) HitSet(p r2.Point) HitSet {
	hits := HitSet{}
	for _, shape := range s.Shapes() {
		if shape.HitPoint(p) {
			hits[shape.Label()] = struct{}{}
		}
	}
	return hits
}

// SegmentHitSet returns the labels of all obstacles the segment touches.
func (s *ShapeSet) SegmentHitSet(seg Segment) HitSet {
	hits := HitSet{}
	for _, shape := range s.Shapes() {
		if shape.HitSegment(seg) {
			hits[shape.Label()] = struct{}{}
		}
	}
	return hits
}
