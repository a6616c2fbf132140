package motionplan

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/fieldplanner/spatialmath"
)

func newTestCircle(t *testing.T, x, y, radius float64, label string) spatialmath.Shape {
	t.Helper()
	c, err := spatialmath.NewCircle(r2.Point{X: x, Y: y}, radius, label)
	test.That(t, err, test.ShouldBeNil)
	return c
}

func newTestRect(t *testing.T, x1, y1, x2, y2 float64, label string) spatialmath.Shape {
	t.Helper()
	r, err := spatialmath.NewRect(r2.Point{X: x1, Y: y1}, r2.Point{X: x2, Y: y2}, label)
	test.That(t, err, test.ShouldBeNil)
	return r
}

func newTestSampler(seed int64) FieldSampler {
	//nolint:gosec
	return NewUniformFieldSampler(rand.New(rand.NewSource(seed)), defaultFieldLength, defaultFieldWidth)
}

func TestMotionConstraintsValidate(t *testing.T) {
	test.That(t, NewDefaultMotionConstraints().Validate(), test.ShouldBeNil)

	err := MotionConstraints{MaxSpeed: 0, MaxAcceleration: -1}.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "max_speed")
	test.That(t, err.Error(), test.ShouldContainSubstring, "max_acceleration")
}

func TestUniformFieldSampler(t *testing.T) {
	sample := newTestSampler(1)
	for i := 0; i < 1000; i++ {
		p := sample()
		test.That(t, p.X, test.ShouldBeGreaterThanOrEqualTo, -defaultFieldWidth/2)
		test.That(t, p.X, test.ShouldBeLessThanOrEqualTo, defaultFieldWidth/2)
		test.That(t, p.Y, test.ShouldBeGreaterThanOrEqualTo, 0)
		test.That(t, p.Y, test.ShouldBeLessThanOrEqualTo, defaultFieldLength)
	}

	// same seed, same samples
	a, b := newTestSampler(7), newTestSampler(7)
	for i := 0; i < 10; i++ {
		test.That(t, a(), test.ShouldResemble, b())
	}
}
