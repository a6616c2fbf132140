package motionplan

import (
	"math"

	"github.com/golang/geo/r2"
)

// profileSample is one point of the dense sampling of a Bezier path.
type profileSample struct {
	pos       r2.Point
	tangent   r2.Point
	dist      float64
	curvature float64
	speed     float64
}

// curvature returns the unsigned curvature of a curve with the given first and second derivatives.
// A stationary point has zero curvature.
func curvature(d1, d2 r2.Point) float64 {
	k := math.Abs(d1.Cross(d2)) / math.Pow(d1.Dot(d1), 1.5)
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return 0
	}
	return k
}

// generateVelocityPath samples every segment at interpolations evenly spaced parameters plus the
// final endpoint, and assigns each sample the highest speed that respects maxSpeed, the centripetal
// limit of its curvature, and maxAcceleration between neighbours in both directions of travel. The
// first and last samples keep the speeds of vi and vf.
func generateVelocityPath(
	controls []CubicBezierControlPoints,
	constraints MotionConstraints,
	vi, vf r2.Point,
	interpolations int,
) []TrajectoryEntry {
	if len(controls) == 0 {
		return nil
	}
	maxAcc := constraints.MaxAcceleration
	ceiling := func(c float64) float64 {
		return math.Min(constraints.MaxSpeed, math.Sqrt(maxAcc/c))
	}

	samples := make([]profileSample, 0, len(controls)*interpolations+1)
	totalDist := 0.
	appendSample := func(pos, d1, d2 r2.Point) {
		if len(samples) > 0 {
			totalDist += pos.Sub(samples[len(samples)-1].pos).Norm()
		}
		c := curvature(d1, d2)
		samples = append(samples, profileSample{pos: pos, tangent: d1, dist: totalDist, curvature: c, speed: ceiling(c)})
	}

	for _, cp := range controls {
		for j := 0; j < interpolations; j++ {
			t := float64(j) / float64(interpolations)
			appendSample(cp.Pos(t), cp.FirstDerivative(t), cp.SecondDerivative(t))
		}
	}
	last := controls[len(controls)-1]
	appendSample(last.P3, vf, last.SecondDerivative(1))

	samples[0].speed = vi.Norm()
	samples[len(samples)-1].speed = vf.Norm()

	for i := 1; i < len(samples); i++ {
		prev := samples[i-1]
		samples[i].speed = limitAcceleration(maxAcc, prev.dist, prev.speed, prev.curvature,
			samples[i].dist, samples[i].speed, samples[i].curvature)
	}
	for i := len(samples) - 2; i >= 0; i-- {
		next := samples[i+1]
		samples[i].speed = limitAcceleration(maxAcc, next.dist, next.speed, next.curvature,
			samples[i].dist, samples[i].speed, samples[i].curvature)
	}

	entries := make([]TrajectoryEntry, 0, len(samples))
	totalTime := 0.
	for i, s := range samples {
		if i > 0 {
			dist := s.dist - samples[i-1].dist
			avgSpeed := (s.speed + samples[i-1].speed) / 2
			if dist > 0 && avgSpeed > 0 {
				totalTime += dist / avgSpeed
			}
		}
		entries = append(entries, TrajectoryEntry{
			Motion: MotionInstant{Pos: s.pos, Vel: s.tangent.Normalize().Mul(s.speed)},
			Time:   totalTime,
		})
	}
	return entries
}

// limitAcceleration returns the largest speed not above v2 that a robot moving at v1 at distance d1
// can reach by distance d2. The tangential and centripetal accelerations together may not exceed
// maxAcc, with the centripetal part taken at the larger of the two curvatures. If no speed satisfies
// that, only the tangential part is limited.
func limitAcceleration(maxAcc, d1, v1, c1, d2, v2, c2 float64) float64 {
	if v2 < v1 {
		return v2
	}
	d := math.Abs(d2 - d1)
	c := math.Max(c1, c2)
	a := maxAcc

	// a² = ((v² - v1²) / 2d)² + (v² c)², solved for v.
	disc := math.Sqrt(d * d * (4*a*a*c*c*d*d + a*a - c*c*math.Pow(v1, 4)))
	denom := 4*c*c*d*d + 1
	vLow := math.Sqrt((v1*v1 - 2*disc) / denom)
	vHigh := math.Sqrt((v1*v1 + 2*disc) / denom)

	var reachable float64
	switch {
	case math.IsNaN(vLow) && math.IsNaN(vHigh):
		reachable = math.Sqrt(2*a*d + v1*v1)
	case math.IsNaN(vLow):
		reachable = vHigh
	case math.IsNaN(vHigh):
		reachable = vLow
	default:
		reachable = math.Max(vLow, vHigh)
	}
	return math.Min(v2, reachable)
}
