// Package visualize renders planned trajectories to images for offline inspection.
package visualize

import (
	"image/color"
	"os"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"go.viam.com/fieldplanner/motionplan"
	"go.viam.com/fieldplanner/spatialmath"
)

var (
	obstacleColor = color.RGBA{R: 200, G: 60, B: 60, A: 255}
	obstacleFill  = color.RGBA{R: 200, G: 60, B: 60, A: 64}
	pathColor     = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	waypointColor = color.RGBA{R: 20, G: 150, B: 60, A: 255}
)

const (
	panelWidth  = 7 * vg.Inch
	panelHeight = 6 * vg.Inch
)

// PlotTrajectory writes a PNG to path with two panels: the field, showing the obstacles, the
// waypoints and the trajectory's path; and the trajectory's speed against time. waypoints may be
// nil.
func PlotTrajectory(path string, traj *motionplan.Trajectory, obstacles *spatialmath.ShapeSet, waypoints []r2.Point) (err error) {
	if traj.Empty() {
		return errEmptyTrajectory
	}
	field, err := fieldPlot(traj, obstacles, waypoints)
	if err != nil {
		return errors.Wrap(err, "field plot")
	}
	speed, err := speedPlot(traj)
	if err != nil {
		return errors.Wrap(err, "speed plot")
	}

	img := vgimg.New(2*panelWidth, panelHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: 2,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align([][]*plot.Plot{{field, speed}}, tiles, dc)
	field.Draw(canvases[0][0])
	speed.Draw(canvases[0][1])

	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return errors.Wrapf(err, "error writing %q", path)
	}
	return nil
}

func fieldPlot(traj *motionplan.Trajectory, obstacles *spatialmath.ShapeSet, waypoints []r2.Point) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Field"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(plotter.NewGrid())

	for _, shape := range obstacles.Shapes() {
		poly, err := plotter.NewPolygon(toXYs(shape.Outline()))
		if err != nil {
			return nil, errors.Wrapf(err, "obstacle %q", shape.Label())
		}
		poly.Color = obstacleFill
		poly.LineStyle.Color = obstacleColor
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)
	}

	pathPts := make(plotter.XYs, 0, len(traj.Entries))
	for _, e := range traj.Entries {
		pathPts = append(pathPts, plotter.XY{X: e.Motion.Pos.X, Y: e.Motion.Pos.Y})
	}
	line, err := plotter.NewLine(pathPts)
	if err != nil {
		return nil, err
	}
	line.Color = pathColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("trajectory", line)

	if len(waypoints) > 0 {
		scatter, err := plotter.NewScatter(toXYs(waypoints))
		if err != nil {
			return nil, err
		}
		scatter.Color = waypointColor
		scatter.Shape = draw.CircleGlyph{}
		scatter.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add("waypoints", scatter)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

func speedPlot(traj *motionplan.Trajectory) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Speed"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "speed (m/s)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(traj.Entries))
	for _, e := range traj.Entries {
		pts = append(pts, plotter.XY{X: e.Time, Y: e.Motion.Vel.Norm()})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = pathColor
	line.Width = vg.Points(1)
	p.Add(line)
	return p, nil
}

func toXYs(pts []r2.Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}
