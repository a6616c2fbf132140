package motionplan

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// FieldSampler draws a random target location for tree growth.
type FieldSampler func() r2.Point

// NewUniformFieldSampler returns a sampler drawing uniformly over a field of the given size,
// x in [-width/2, width/2] and y in [0, length].
func NewUniformFieldSampler(randseed *rand.Rand, length, width float64) FieldSampler {
	return func() r2.Point {
		return r2.Point{
			X: (randseed.Float64() - 0.5) * width,
			Y: randseed.Float64() * length,
		}
	}
}
