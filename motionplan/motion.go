// Package motionplan plans collision-free, acceleration-limited trajectories for a mobile robot
// on a field of obstacles. A planning cycle grows two random trees between start and goal,
// shortcuts the resulting polyline, fits a velocity-continuous cubic Bezier spline through it,
// and samples that spline into a timed trajectory.
package motionplan

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/fieldplanner/spatialmath"
)

const (
	// default maximum speed of the robot, in m/s.
	defaultMaxSpeed = 2.0

	// default maximum acceleration of the robot, in m/s^2.
	defaultMaxAcceleration = 1.0
)

// MotionInstant is the state of the robot at one instant.
type MotionInstant struct {
	Pos r2.Point
	Vel r2.Point
}

// NewMotionInstant returns a MotionInstant at pos moving with vel.
func NewMotionInstant(pos, vel r2.Point) MotionInstant {
	return MotionInstant{Pos: pos, Vel: vel}
}

func (m MotionInstant) String() string {
	return fmt.Sprintf("pos: %v vel: %v", m.Pos, m.Vel)
}

// Obstacles answers hit-set queries about the field. Implementations must be read-only for the
// duration of a planning call. *spatialmath.ShapeSet satisfies it.
type Obstacles interface {
	HitSet(p r2.Point) spatialmath.HitSet
	SegmentHitSet(s spatialmath.Segment) spatialmath.HitSet
}

// MotionConstraints are the kinematic limits the robot must respect during a planned motion.
type MotionConstraints struct {
	MaxSpeed        float64 `json:"max_speed" yaml:"max_speed"`
	MaxAcceleration float64 `json:"max_acceleration" yaml:"max_acceleration"`
}

// NewDefaultMotionConstraints returns the constraints used when none are configured.
func NewDefaultMotionConstraints() MotionConstraints {
	return MotionConstraints{MaxSpeed: defaultMaxSpeed, MaxAcceleration: defaultMaxAcceleration}
}

// Validate returns an error describing every non-positive or non-finite limit.
func (c MotionConstraints) Validate() error {
	var err error
	if !(c.MaxSpeed > 0) || math.IsInf(c.MaxSpeed, 0) {
		err = multierr.Append(err, errors.Errorf("max_speed must be positive and finite, got %v", c.MaxSpeed))
	}
	if !(c.MaxAcceleration > 0) || math.IsInf(c.MaxAcceleration, 0) {
		err = multierr.Append(err, errors.Errorf("max_acceleration must be positive and finite, got %v", c.MaxAcceleration))
	}
	return err
}
