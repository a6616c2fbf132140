package motionplan

import "github.com/golang/geo/r2"

// CommandType identifies the kind of motion a MotionCommand requests.
type CommandType int

const (
	// PathTarget asks the robot to travel to a goal state.
	PathTarget CommandType = iota
	// WorldVelocity asks the robot to hold a velocity in the field frame.
	WorldVelocity
)

func (c CommandType) String() string {
	switch c {
	case PathTarget:
		return "PathTarget"
	case WorldVelocity:
		return "WorldVelocity"
	default:
		return "Unknown"
	}
}

// MotionCommand is a request for motion handed to a planner.
type MotionCommand interface {
	CommandType() CommandType
}

// PathTargetCommand requests a path ending at Goal.
type PathTargetCommand struct {
	Goal MotionInstant
}

// CommandType returns PathTarget.
func (PathTargetCommand) CommandType() CommandType { return PathTarget }

// WorldVelocityCommand requests a constant field-frame velocity. The RRT planner does not
// handle it.
type WorldVelocityCommand struct {
	Vel r2.Point
}

// CommandType returns WorldVelocity.
func (WorldVelocityCommand) CommandType() CommandType { return WorldVelocity }
