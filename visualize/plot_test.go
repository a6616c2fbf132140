package visualize

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/fieldplanner/motionplan"
	"go.viam.com/fieldplanner/spatialmath"
)

func TestPlotTrajectory(t *testing.T) {
	circle, err := spatialmath.NewCircle(r2.Point{X: 1, Y: 2}, 0.5, "defender")
	test.That(t, err, test.ShouldBeNil)
	rect, err := spatialmath.NewRect(r2.Point{X: -1, Y: 3}, r2.Point{X: 0, Y: 4}, "box")
	test.That(t, err, test.ShouldBeNil)
	obstacles := spatialmath.NewShapeSet(circle, rect)

	traj := &motionplan.Trajectory{
		StartTime: time.Now(),
		Entries: []motionplan.TrajectoryEntry{
			{Motion: motionplan.NewMotionInstant(r2.Point{X: 0, Y: 0}, r2.Point{})},
			{Motion: motionplan.NewMotionInstant(r2.Point{X: 0.5, Y: 1}, r2.Point{X: 0.5, Y: 1}), Time: 1.5},
			{Motion: motionplan.NewMotionInstant(r2.Point{X: 0, Y: 5}, r2.Point{}), Time: 4},
		},
	}
	waypoints := []r2.Point{{X: 0, Y: 0}, {X: 0.5, Y: 1}, {X: 0, Y: 5}}

	path := filepath.Join(t.TempDir(), "plan.png")
	test.That(t, PlotTrajectory(path, traj, obstacles, waypoints), test.ShouldBeNil)

	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Width, test.ShouldBeGreaterThan, cfg.Height)

	t.Run("no obstacles or waypoints", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bare.png")
		test.That(t, PlotTrajectory(path, traj, nil, nil), test.ShouldBeNil)
		_, err := os.Stat(path)
		test.That(t, err, test.ShouldBeNil)
	})

	t.Run("empty trajectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.png")
		test.That(t, PlotTrajectory(path, nil, obstacles, nil), test.ShouldBeError, errEmptyTrajectory)
		_, err := os.Stat(path)
		test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
	})
}
