package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestNormalizedTo(t *testing.T) {
	p := NormalizedTo(r2.Point{X: 3, Y: 4}, 10)
	test.That(t, p.X, test.ShouldAlmostEqual, 6)
	test.That(t, p.Y, test.ShouldAlmostEqual, 8)

	test.That(t, NormalizedTo(r2.Point{}, 5), test.ShouldResemble, r2.Point{})
}

func TestPointAlmostEqual(t *testing.T) {
	original := r2.Point{X: 1, Y: 2}
	good := r2.Point{X: 1 + 1e-12, Y: 2 - 1e-12}
	bad := r2.Point{X: 1 + 1e-2, Y: 2}
	test.That(t, PointsNearlyEqual(original, good), test.ShouldBeTrue)
	test.That(t, PointsNearlyEqual(original, bad), test.ShouldBeFalse)
}

func TestDistAndLerp(t *testing.T) {
	a, b := r2.Point{X: -1, Y: 1}, r2.Point{X: 2, Y: 5}
	test.That(t, DistTo(a, b), test.ShouldEqual, 5.)
	test.That(t, DistTo(b, a), test.ShouldEqual, 5.)
	test.That(t, Lerp(a, b, 0), test.ShouldResemble, a)
	test.That(t, Lerp(a, b, 1), test.ShouldResemble, b)
	test.That(t, Lerp(a, b, 0.5), test.ShouldResemble, r2.Point{X: 0.5, Y: 3})
}

func TestIsFinite(t *testing.T) {
	test.That(t, IsFinite(r2.Point{X: 1, Y: -1}), test.ShouldBeTrue)
	test.That(t, IsFinite(r2.Point{X: math.NaN()}), test.ShouldBeFalse)
	test.That(t, IsFinite(r2.Point{Y: math.Inf(-1)}), test.ShouldBeFalse)
}
