package scenario

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/fieldplanner/logging"
	"go.viam.com/fieldplanner/motionplan"
)

func TestLoad(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "kickoff.yaml"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Name, test.ShouldEqual, "kickoff")
	test.That(t, s.Start.Instant(), test.ShouldResemble, motionplan.NewMotionInstant(r2.Point{X: 0, Y: 1}, r2.Point{}))
	test.That(t, s.Command().Goal.Pos, test.ShouldResemble, r2.Point{X: 0, Y: 7})
	test.That(t, s.Distance(), test.ShouldEqual, 6.)
	test.That(t, s.MotionConstraints(), test.ShouldResemble, motionplan.MotionConstraints{MaxSpeed: 2, MaxAcceleration: 1.5})

	set, err := s.ObstacleSet()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, set.Len(), test.ShouldEqual, 3)
	test.That(t, set.HitSet(r2.Point{X: 0, Y: 4}).Contains("defender"), test.ShouldBeTrue)
	test.That(t, set.HitSet(r2.Point{X: 0, Y: 8.75}).Contains("goal-box"), test.ShouldBeTrue)
	// the unlabelled polygon gets a generated label
	test.That(t, set.HitSet(r2.Point{X: 2, Y: 2.5}).Empty(), test.ShouldBeFalse)
	test.That(t, set.HitSet(r2.Point{X: 2, Y: 2.5}).Labels()[0], test.ShouldNotBeEmpty)

	opts, err := s.PlannerOptions()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts.MaxIterations, test.ShouldEqual, 1000)
	test.That(t, opts.RandomSeed, test.ShouldEqual, 7)
	test.That(t, opts.StepSize, test.ShouldEqual, motionplan.NewBasicPlannerOptions().StepSize)

	bounds := FieldBounds(opts)
	test.That(t, bounds.ContainsPoint(s.Start.Pos), test.ShouldBeTrue)
	test.That(t, bounds.ContainsPoint(s.Goal.Pos), test.ShouldBeTrue)

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte("start: {pos: {x: 1, y: 1}}\ngoal: {pos: {x: 2, y: 2}}\n"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.MotionConstraints(), test.ShouldResemble, motionplan.NewDefaultMotionConstraints())
	test.That(t, s.Obstacles, test.ShouldBeEmpty)

	opts, err := s.PlannerOptions()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts, test.ShouldResemble, motionplan.NewBasicPlannerOptions())

	set, err := s.ObstacleSet()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, set.Len(), test.ShouldEqual, 0)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(nil)
	test.That(t, err, test.ShouldBeError, errEmptyScenario)

	_, err = Parse([]byte("start: {pos: {x: 1, y: 1}}\nspeed: 3\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "speed")

	_, err = Parse([]byte(`
obstacles:
  - type: hexagon
  - type: circle
    radius: -1
`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown obstacle type "hexagon"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, "obstacle 1")

	_, err = Parse([]byte(`
obstacles:
  - {label: a, type: circle, center: {x: 0, y: 1}, radius: 1}
  - {label: a, type: rect, min: {x: 0, y: 0}, max: {x: 1, y: 1}}
  - {type: polygon, vertices: [{x: 0, y: 0}, {x: 1, y: 0}]}
`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `obstacle label "a" is used more than once`)
	test.That(t, err.Error(), test.ShouldContainSubstring, "at least 3 vertices")

	_, err = Parse([]byte("constraints: {max_speed: 0, max_acceleration: 1}\nplanner: {step_size: -1}\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "max_speed")
	test.That(t, err.Error(), test.ShouldContainSubstring, "step_size")
}

func TestPlanScenario(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "kickoff.yaml"))
	test.That(t, err, test.ShouldBeNil)
	obstacles, err := s.ObstacleSet()
	test.That(t, err, test.ShouldBeNil)
	opts, err := s.PlannerOptions()
	test.That(t, err, test.ShouldBeNil)

	mp, err := motionplan.NewRRTPlanner(logging.NewTestLogger(t), opts)
	test.That(t, err, test.ShouldBeNil)
	traj, err := mp.Plan(context.Background(), motionplan.PlanRequest{
		Start:       s.Start.Instant(),
		Command:     s.Command(),
		Constraints: s.MotionConstraints(),
		Obstacles:   obstacles,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.Empty(), test.ShouldBeFalse)
	test.That(t, traj.Start().Pos, test.ShouldResemble, s.Start.Pos)
	if len(traj.Entries) > 1 {
		test.That(t, traj.End().Pos, test.ShouldResemble, s.Goal.Pos)
		test.That(t, traj.Length(), test.ShouldBeGreaterThan, s.Distance())
	}
}
