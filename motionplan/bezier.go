package motionplan

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/fieldplanner/spatialmath"
)

// Fraction of a segment's length used for the tangent handles of heuristic control points.
const heuristicHandleScale = 0.3

// CubicBezierControlPoints describes one cubic Bezier segment. P0 and P3 are path waypoints; P1 and
// P2 shape the tangents at either end.
type CubicBezierControlPoints struct {
	P0, P1, P2, P3 r2.Point
}

// Pos returns the point on the curve at parameter t in [0, 1].
func (c CubicBezierControlPoints) Pos(t float64) r2.Point {
	u := 1 - t
	return c.P0.Mul(u * u * u).
		Add(c.P1.Mul(3 * u * u * t)).
		Add(c.P2.Mul(3 * u * t * t)).
		Add(c.P3.Mul(t * t * t))
}

// FirstDerivative returns dB/dt at parameter t.
func (c CubicBezierControlPoints) FirstDerivative(t float64) r2.Point {
	u := 1 - t
	return c.P1.Sub(c.P0).Mul(3 * u * u).
		Add(c.P2.Sub(c.P1).Mul(6 * u * t)).
		Add(c.P3.Sub(c.P2).Mul(3 * t * t))
}

// SecondDerivative returns d²B/dt² at parameter t.
func (c CubicBezierControlPoints) SecondDerivative(t float64) r2.Point {
	return c.P2.Sub(c.P1.Mul(2)).Add(c.P0).Mul(6 * (1 - t)).
		Add(c.P3.Sub(c.P2.Mul(2)).Add(c.P1).Mul(6 * t))
}

// fitCubicBezier fits one cubic Bezier segment between each pair of consecutive waypoints. The
// curve leaves the first waypoint with velocity vi, arrives at the last with vf, and is continuous
// in velocity and acceleration at every interior waypoint when each segment i is traversed in
// times[i+1]-times[i]. If times is nil, segment times are estimated from a trapezoidal speed profile
// under constraints.
func fitCubicBezier(
	points []r2.Point,
	vi, vf r2.Point,
	constraints MotionConstraints,
	times []float64,
) ([]CubicBezierControlPoints, error) {
	if len(points) < 2 {
		return nil, errTooFewWaypoints
	}
	ks, err := segmentRates(points, vi, vf, constraints, times)
	if err != nil {
		return nil, err
	}

	curves := len(points) - 1
	if curves == 1 {
		return []CubicBezierControlPoints{{
			P0: points[0],
			P1: points[0].Add(vi.Mul(1 / (3 * ks[0]))),
			P2: points[1].Sub(vf.Mul(1 / (3 * ks[0]))),
			P3: points[1],
		}}, nil
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	solX, err := solveLinearSystem(bezierAxisSystem(vi.X, vf.X, xs, ks))
	if err != nil {
		return nil, errors.Wrap(err, "x axis")
	}
	solY, err := solveLinearSystem(bezierAxisSystem(vi.Y, vf.Y, ys, ks))
	if err != nil {
		return nil, errors.Wrap(err, "y axis")
	}

	path := make([]CubicBezierControlPoints, 0, curves)
	for i := 0; i < curves; i++ {
		path = append(path, CubicBezierControlPoints{
			P0: points[i],
			P1: r2.Point{X: solX[2*i], Y: solY[2*i]},
			P2: r2.Point{X: solX[2*i+1], Y: solY[2*i+1]},
			P3: points[i+1],
		})
	}
	return path, nil
}

// segmentRates returns k[i] = 1/(t[i+1]-t[i]) for every segment. A rate that is not positive and
// finite means two waypoints are too close to be given distinct times.
func segmentRates(points []r2.Point, vi, vf r2.Point, constraints MotionConstraints, times []float64) ([]float64, error) {
	if times == nil {
		times = estimateWaypointTimes(points, constraints, vi.Norm(), vf.Norm())
	} else if len(times) != len(points) {
		return nil, newTimesMismatchError(len(times), len(points))
	}

	ks := make([]float64, len(points)-1)
	for i := range ks {
		ks[i] = 1 / (times[i+1] - times[i])
		if !(ks[i] > 0) || math.IsInf(ks[i], 0) {
			return nil, errors.Wrapf(errDegenerateTiming, "segment %d", i)
		}
	}
	return ks, nil
}

// estimateWaypointTimes assigns each waypoint the time a trapezoidal profile along the polyline
// reaches it.
func estimateWaypointTimes(points []r2.Point, constraints MotionConstraints, startSpeed, endSpeed float64) []float64 {
	distances := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		distances[i] = distances[i-1] + spatialmath.DistTo(points[i-1], points[i])
	}
	total := distances[len(distances)-1]

	times := make([]float64, len(points))
	for i, d := range distances {
		times[i] = trapezoidalTime(d, total, constraints.MaxSpeed, constraints.MaxAcceleration, startSpeed, endSpeed)
	}
	return times
}

// bezierAxisSystem builds the linear system for the interior control points of one axis. The
// unknowns are the P1, P2 pairs of each segment in order. The first two rows pin the outer handles
// to the boundary velocities. The remaining rows match velocity, then acceleration, at every
// interior waypoint.
func bezierAxisSystem(vi, vf float64, points, ks []float64) (*mat.Dense, *mat.VecDense) {
	curves := len(points) - 1
	size := 2 * curves
	a := mat.NewDense(size, size, nil)
	b := mat.NewVecDense(size, nil)

	a.Set(0, 0, 1)
	b.SetVec(0, vi/(3*ks[0])+points[0])
	a.Set(1, size-1, 1)
	b.SetVec(1, points[curves]-vf/(3*ks[curves-1]))

	row := 2
	for n := 0; n < curves-1; n++ {
		a.Set(row, 2*n+1, ks[n])
		a.Set(row, 2*n+2, ks[n+1])
		b.SetVec(row, (ks[n]+ks[n+1])*points[n+1])
		row++
	}
	for n := 0; n < curves-1; n++ {
		k2, k2Next := ks[n]*ks[n], ks[n+1]*ks[n+1]
		a.Set(row, 2*n, k2)
		a.Set(row, 2*n+1, -2*k2)
		a.Set(row, 2*n+2, 2*k2Next)
		a.Set(row, 2*n+3, -k2Next)
		b.SetVec(row, points[n+1]*(k2Next-k2))
		row++
	}
	return a, b
}

// solveLinearSystem solves a·x = b by QR factorization.
func solveLinearSystem(a *mat.Dense, b *mat.VecDense) ([]float64, error) {
	var qr mat.QR
	qr.Factorize(a)

	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return nil, errors.Wrap(errSingularSystem, err.Error())
	}
	sol := x.RawVector().Data
	for _, v := range sol {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errSingularSystem
		}
	}
	return sol, nil
}

// heuristicCubicBezier places control points without solving for continuity. Interior tangents
// follow the chord between the neighbouring waypoints while the outer tangents blend the boundary
// velocities with the path direction.
func heuristicCubicBezier(points []r2.Point, vi, vf r2.Point) []CubicBezierControlPoints {
	curves := len(points) - 1
	if curves < 1 {
		return nil
	}

	startHandles := make([]r2.Point, curves)
	endHandles := make([]r2.Point, curves)

	firstLen := spatialmath.DistTo(points[1], points[0])
	startHandles[0] = spatialmath.NormalizedTo(vi.Add(points[1].Sub(points[0]).Normalize()), firstLen*heuristicHandleScale)
	for i := 1; i < curves; i++ {
		chord := points[i+1].Sub(points[i-1])
		endHandles[i-1] = spatialmath.NormalizedTo(chord, spatialmath.DistTo(points[i], points[i-1])*heuristicHandleScale)
		startHandles[i] = spatialmath.NormalizedTo(chord, spatialmath.DistTo(points[i], points[i+1])*heuristicHandleScale)
	}
	last, prev := points[curves], points[curves-1]
	endHandles[curves-1] = spatialmath.NormalizedTo(vf.Add(last.Sub(prev).Normalize()), spatialmath.DistTo(last, prev)*heuristicHandleScale)

	path := make([]CubicBezierControlPoints, 0, curves)
	for i := 0; i < curves; i++ {
		path = append(path, CubicBezierControlPoints{
			P0: points[i],
			P1: points[i].Add(startHandles[i]),
			P2: points[i+1].Sub(endHandles[i]),
			P3: points[i+1],
		})
	}
	return path
}
