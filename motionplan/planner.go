package motionplan

import (
	"context"
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/fieldplanner/logging"
	"go.viam.com/fieldplanner/spatialmath"
)

// PlanRequest is everything a planner needs for one control cycle. Obstacles and PrevPath are
// borrowed for the duration of the call and never modified.
type PlanRequest struct {
	Start       MotionInstant
	Command     MotionCommand
	Constraints MotionConstraints
	Obstacles   Obstacles

	// Trajectory returned by the previous cycle, or nil.
	PrevPath *Trajectory
}

// RRTPlanner plans PathTarget commands with a bidirectional RRT, reusing the previous trajectory
// while it is still valid. Plan calls must not overlap.
type RRTPlanner struct {
	logger  logging.Logger
	opts    *PlannerOptions
	clock   clock.Clock
	sampler FieldSampler
}

// RRTPlannerOption customizes an RRTPlanner at creation time.
type RRTPlannerOption func(*RRTPlanner)

// WithClock sets the clock used to stamp trajectories and age previous ones.
func WithClock(c clock.Clock) RRTPlannerOption {
	return func(mp *RRTPlanner) {
		mp.clock = c
	}
}

// WithFieldSampler replaces the uniform field sampler seeded from PlannerOptions.RandomSeed.
func WithFieldSampler(sampler FieldSampler) RRTPlannerOption {
	return func(mp *RRTPlanner) {
		mp.sampler = sampler
	}
}

// NewRRTPlanner creates an RRTPlanner. A nil logger uses logging.Global and a nil opts uses
// NewBasicPlannerOptions.
func NewRRTPlanner(logger logging.Logger, opts *PlannerOptions, options ...RRTPlannerOption) (*RRTPlanner, error) {
	if logger == nil {
		logger = logging.Global()
	}
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	mp := &RRTPlanner{
		logger: logger,
		opts:   opts,
		clock:  clock.New(),
	}
	for _, o := range options {
		o(mp)
	}
	if mp.sampler == nil {
		//nolint:gosec
		randseed := rand.New(rand.NewSource(int64(opts.RandomSeed)))
		mp.sampler = NewUniformFieldSampler(randseed, opts.FieldLength, opts.FieldWidth)
	}
	return mp, nil
}

// Plan returns the trajectory to follow this cycle. The result is always usable: whenever no path
// can be produced it holds the robot in place at req.Start. A failed search is not an error. Bad
// input is, and so are waypoints too close together to be timed.
func (mp *RRTPlanner) Plan(ctx context.Context, req PlanRequest) (*Trajectory, error) {
	now := mp.clock.Now()
	start := req.Start
	stopped := NewStoppedTrajectory(start.Pos, now)

	var goal MotionInstant
	switch cmd := req.Command.(type) {
	case PathTargetCommand:
		goal = cmd.Goal
	case *PathTargetCommand:
		if cmd == nil {
			return stopped, newWrongCommandError(nil)
		}
		goal = cmd.Goal
	default:
		return stopped, newWrongCommandError(req.Command)
	}
	if err := req.Constraints.Validate(); err != nil {
		return stopped, err
	}

	obstacles := req.Obstacles
	if obstacles == nil {
		obstacles = (*spatialmath.ShapeSet)(nil)
	}

	if start.Pos == goal.Pos {
		return stopped, nil
	}

	var prevGoal *r2.Point
	if !req.PrevPath.Empty() {
		end := req.PrevPath.End().Pos
		prevGoal = &end
	}
	requested := goal.Pos
	goal.Pos = findNonBlockedGoal(goal.Pos, prevGoal, obstacles, mp.sampler,
		mp.opts.EscapeStepSize, mp.opts.EscapeIterations, mp.opts.GoalChangeThreshold)
	if goal.Pos != requested {
		mp.logger.CDebugw(ctx, "goal is blocked, moved it", "requested", requested, "goal", goal.Pos)
	}
	if start.Pos == goal.Pos {
		return stopped, nil
	}

	if !mp.shouldReplan(ctx, start, goal, obstacles, req.PrevPath, now) {
		return req.PrevPath, nil
	}

	points := runRRT(start.Pos, goal.Pos, obstacles, mp.sampler, mp.opts.StepSize, mp.opts.MaxIterations)
	mp.logger.CDebugw(ctx, "rrt search finished", "waypoints", len(points))
	points = simplifyPath(points, obstacles)
	if len(points) < 2 {
		mp.logger.CDebugw(ctx, errPlannerFailed.Error(), "start", start.Pos, "goal", goal.Pos)
		return stopped, nil
	}
	mp.logger.CDebugw(ctx, "simplified path", "waypoints", len(points))

	traj, err := mp.trajectoryThrough(ctx, points, start, goal, req.Constraints, nil, now)
	if err != nil {
		return stopped, err
	}
	mp.logger.CDebugw(ctx, "planned trajectory", "entries", len(traj.Entries), "duration", traj.Duration())
	return traj, nil
}

// trajectoryThrough fits a spline through points and samples it into a trajectory starting at now.
// A nil times estimates waypoint times from constraints. A spline system that cannot be solved
// falls back to heuristic control points.
func (mp *RRTPlanner) trajectoryThrough(
	ctx context.Context,
	points []r2.Point,
	start, goal MotionInstant,
	constraints MotionConstraints,
	times []float64,
	now time.Time,
) (*Trajectory, error) {
	controls, err := fitCubicBezier(points, start.Vel, goal.Vel, constraints, times)
	switch {
	case errors.Is(err, errSingularSystem):
		mp.logger.CWarnw(ctx, "spline fit failed, using heuristic control points", "error", err)
		controls = heuristicCubicBezier(points, start.Vel, goal.Vel)
	case err != nil:
		return nil, err
	}

	entries := generateVelocityPath(controls, constraints, start.Vel, goal.Vel, mp.opts.Interpolations)
	entries[0].Motion.Pos = start.Pos
	return &Trajectory{Entries: entries, StartTime: now}, nil
}

// shouldReplan reports whether prevPath has to be replaced rather than followed for another cycle.
func (mp *RRTPlanner) shouldReplan(
	ctx context.Context,
	start, goal MotionInstant,
	obstacles Obstacles,
	prevPath *Trajectory,
	now time.Time,
) bool {
	if prevPath.Empty() {
		return true
	}

	elapsed := now.Sub(prevPath.StartTime)
	if elapsed > mp.opts.replanTimeoutDuration() {
		mp.logger.CDebugw(ctx, "replanning, previous path timed out", "age", elapsed)
		return true
	}

	timeIntoPath := elapsed.Seconds()
	expected, ok := prevPath.Evaluate(timeIntoPath)
	if !ok {
		expected = prevPath.End()
	}
	if dist := spatialmath.DistTo(expected.Pos, start.Pos); dist > mp.opts.ReplanThreshold {
		mp.logger.CDebugw(ctx, "replanning, robot is off the previous path", "distance", dist)
		return true
	}

	if hitTime, hit := prevPath.Hit(obstacles, timeIntoPath); hit {
		mp.logger.CDebugw(ctx, "replanning, previous path is blocked", "at", hitTime)
		return true
	}

	end := prevPath.End()
	if spatialmath.DistTo(end.Pos, goal.Pos) > mp.opts.GoalChangeThreshold ||
		spatialmath.DistTo(end.Vel, goal.Vel) > mp.opts.GoalChangeThreshold {
		mp.logger.CDebugw(ctx, "replanning, goal changed", "previous", end, "goal", goal)
		return true
	}
	return false
}
