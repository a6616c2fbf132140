package motionplan

import (
	"github.com/pkg/errors"
)

var (
	// errPlannerFailed is logged, not returned: the planner substitutes a stopped trajectory.
	errPlannerFailed = errors.New("motion planner failed to find path")

	errDegenerateTiming = errors.New("waypoints are too close together to assign segment times")

	errTooFewWaypoints = errors.New("path needs at least two waypoints")

	errNoPlannerOptions = errors.New("planner options are nil")

	errSingularSystem = errors.New("spline system is singular")

	errWrongCommand = errors.New("rrt planner requires a PathTarget command")
)

func newWrongCommandError(c MotionCommand) error {
	if c == nil {
		return errors.Wrap(errWrongCommand, "got nil")
	}
	return errors.Wrapf(errWrongCommand, "got %v", c.CommandType())
}

func newTimesMismatchError(nTimes, nPoints int) error {
	return errors.Errorf("got %d waypoint times for %d waypoints", nTimes, nPoints)
}
