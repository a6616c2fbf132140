package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/fieldplanner/logging"
	"go.viam.com/fieldplanner/motionplan"
	"go.viam.com/fieldplanner/scenario"
	"go.viam.com/fieldplanner/spatialmath"
	"go.viam.com/fieldplanner/visualize"
)

// cycleReport records one simulated control cycle.
type cycleReport struct {
	Cycle     int
	Time      float64
	Replanned bool
	State     motionplan.MotionInstant
	PlanTime  float64
}

type simulationResult struct {
	Cycles []cycleReport
	Final  *motionplan.Trajectory
	Track  []r2.Point
}

// PlanAction is the corresponding Action for 'plan'.
func PlanAction(c *cli.Context) error {
	logger := logging.NewLogger("fieldplan")
	ctx := c.Context
	if c.Bool(flagDebug) {
		logger = logging.NewDebugLogger("fieldplan")
		ctx = logging.EnableDebugMode(ctx, "")
	}
	logging.ReplaceGlobal(logger)

	cycles := c.Int(planFlagCycles)
	if cycles < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", planFlagCycles, cycles)
	}

	path := c.Path(planFlagScenario)
	logger.Infof("reading scenario from %s", path)
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	opts, err := s.PlannerOptions()
	if err != nil {
		return err
	}
	if c.IsSet(planFlagSeed) {
		opts.RandomSeed = c.Int(planFlagSeed)
	}
	if c.Float64(planFlagRate) <= 0 {
		return errors.Errorf("--%s must be positive, got %v", planFlagRate, c.Float64(planFlagRate))
	}
	period := time.Duration(float64(time.Second) / c.Float64(planFlagRate))

	res, err := runSimulation(ctx, logger, s, opts, cycles, period)
	if err != nil {
		return err
	}
	logger.Infow("simulation finished",
		"scenario", s.Name,
		"cycles", len(res.Cycles),
		"distance", s.Distance(),
		"duration", res.Final.Duration(),
	)

	printCycles(c.App.Writer, res.Cycles)
	printTrajectory(c.App.Writer, res.Final, c.Int(planFlagRows))

	if plotPath := c.Path(planFlagPlot); plotPath != "" {
		obstacles, err := s.ObstacleSet()
		if err != nil {
			return err
		}
		if err := visualize.PlotTrajectory(plotPath, res.Final, obstacles, res.Track); err != nil {
			return err
		}
		logger.Infof("wrote plot to %s", plotPath)
	}
	return nil
}

// runSimulation plans the scenario for up to cycles control cycles. Between cycles the robot is
// moved to where the last trajectory says it should be one period later, and that trajectory is
// handed back to the planner so it can be reused. Simulated time comes from a mock clock.
func runSimulation(
	ctx context.Context,
	logger logging.Logger,
	s *scenario.Scenario,
	opts *motionplan.PlannerOptions,
	cycles int,
	period time.Duration,
) (*simulationResult, error) {
	obstacles, err := s.ObstacleSet()
	if err != nil {
		return nil, err
	}
	mock := clock.NewMock()
	mp, err := motionplan.NewRRTPlanner(logger.Sublogger("planner"), opts, motionplan.WithClock(mock))
	if err != nil {
		return nil, err
	}

	res := &simulationResult{}
	start := mock.Now()
	state := s.Start.Instant()
	goal := s.Command().Goal.Pos
	var prev *motionplan.Trajectory
	for i := 0; i < cycles; i++ {
		res.Track = append(res.Track, state.Pos)

		wallStart := time.Now()
		traj, err := mp.Plan(ctx, motionplan.PlanRequest{
			Start:       state,
			Command:     s.Command(),
			Constraints: s.MotionConstraints(),
			Obstacles:   obstacles,
			PrevPath:    prev,
		})
		if err != nil {
			return nil, err
		}
		res.Cycles = append(res.Cycles, cycleReport{
			Cycle:     i,
			Time:      mock.Now().Sub(start).Seconds(),
			Replanned: traj != prev,
			State:     state,
			PlanTime:  time.Since(wallStart).Seconds(),
		})
		prev = traj
		res.Final = traj

		if spatialmath.PointsNearlyEqual(state.Pos, goal) {
			break
		}
		mock.Add(period)
		next, ok := traj.Evaluate(mock.Now().Sub(traj.StartTime).Seconds())
		if !ok {
			next = traj.End()
		}
		state = next
	}
	return res, nil
}

func printCycles(w io.Writer, cycles []cycleReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Cycles")
	t.AppendHeader(table.Row{"#", "Time", "Replanned", "X", "Y", "Speed", "Plan time"})
	for _, c := range cycles {
		t.AppendRow(table.Row{
			c.Cycle,
			fmt.Sprintf("%.3f", c.Time),
			c.Replanned,
			fmt.Sprintf("%.3f", c.State.Pos.X),
			fmt.Sprintf("%.3f", c.State.Pos.Y),
			fmt.Sprintf("%.3f", c.State.Vel.Norm()),
			fmt.Sprintf("%.1fms", c.PlanTime*1000),
		})
	}
	t.Render()
}

// printTrajectory prints at most maxRows evenly spaced entries of traj, always including the last.
func printTrajectory(w io.Writer, traj *motionplan.Trajectory, maxRows int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Trajectory")
	t.AppendHeader(table.Row{"#", "Time", "X", "Y", "VX", "VY", "Speed"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	stride := 1
	if maxRows > 0 && len(traj.Entries) > maxRows {
		stride = (len(traj.Entries) + maxRows - 1) / maxRows
	}
	for i, e := range traj.Entries {
		if i%stride != 0 && i != len(traj.Entries)-1 {
			continue
		}
		m := e.Motion
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("%.3f", e.Time),
			fmt.Sprintf("%.3f", m.Pos.X),
			fmt.Sprintf("%.3f", m.Pos.Y),
			fmt.Sprintf("%.3f", m.Vel.X),
			fmt.Sprintf("%.3f", m.Vel.Y),
			fmt.Sprintf("%.3f", m.Vel.Norm()),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "length", fmt.Sprintf("%.3f", traj.Length())})
	t.Render()
}
