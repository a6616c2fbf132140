// Package scenario loads planning scenarios from YAML files. A scenario describes one planning
// problem: the robot's start state, the goal, kinematic limits, the obstacles on the field, and
// planner option overrides.
package scenario

import (
	"bytes"
	"io"
	"os"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"go.viam.com/fieldplanner/motionplan"
	"go.viam.com/fieldplanner/spatialmath"
)

// Obstacle types understood in scenario files.
const (
	CircleType  = "circle"
	RectType    = "rect"
	PolygonType = "polygon"
)

// State is a position and velocity in field coordinates.
type State struct {
	Pos r2.Point `yaml:"pos"`
	Vel r2.Point `yaml:"vel"`
}

// Instant converts the state to a motionplan.MotionInstant.
func (s State) Instant() motionplan.MotionInstant {
	return motionplan.NewMotionInstant(s.Pos, s.Vel)
}

func (s State) finite() bool {
	return spatialmath.IsFinite(s.Pos) && spatialmath.IsFinite(s.Vel)
}

// ObstacleConfig describes one obstacle. Which fields are read depends on Type.
type ObstacleConfig struct {
	Label string `yaml:"label,omitempty"`
	Type  string `yaml:"type"`

	// circle
	Center r2.Point `yaml:"center,omitempty"`
	Radius float64  `yaml:"radius,omitempty"`

	// rect, any two opposite corners
	Min r2.Point `yaml:"min,omitempty"`
	Max r2.Point `yaml:"max,omitempty"`

	// polygon, in order
	Vertices []r2.Point `yaml:"vertices,omitempty"`
}

// Shape builds the spatialmath shape the config describes.
func (o ObstacleConfig) Shape() (spatialmath.Shape, error) {
	switch o.Type {
	case CircleType:
		return spatialmath.NewCircle(o.Center, o.Radius, o.Label)
	case RectType:
		return spatialmath.NewRect(o.Min, o.Max, o.Label)
	case PolygonType:
		return spatialmath.NewPolygon(o.Vertices, o.Label)
	default:
		return nil, newUnknownObstacleTypeError(o.Type)
	}
}

// Scenario is a planning problem read from a file.
type Scenario struct {
	Name        string                        `yaml:"name,omitempty"`
	Start       State                         `yaml:"start"`
	Goal        State                         `yaml:"goal"`
	Constraints *motionplan.MotionConstraints `yaml:"constraints,omitempty"`
	Obstacles   []ObstacleConfig              `yaml:"obstacles,omitempty"`

	// Overrides for motionplan.PlannerOptions, keyed by their JSON names.
	Planner map[string]interface{} `yaml:"planner,omitempty"`
}

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading scenario %q", path)
	}
	return s, nil
}

// Parse decodes and validates a scenario. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyScenario
		}
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate returns every problem with the scenario.
func (s *Scenario) Validate() error {
	var err error
	if !s.Start.finite() {
		err = multierr.Append(err, errors.New("start has a non-finite coordinate"))
	}
	if !s.Goal.finite() {
		err = multierr.Append(err, errors.New("goal has a non-finite coordinate"))
	}
	if s.Constraints != nil {
		err = multierr.Append(err, errors.Wrap(s.Constraints.Validate(), "constraints"))
	}
	for i, o := range s.Obstacles {
		if _, shapeErr := o.Shape(); shapeErr != nil {
			err = multierr.Append(err, errors.Wrapf(shapeErr, "obstacle %d", i))
		}
	}
	labels := lo.Compact(lo.Map(s.Obstacles, func(o ObstacleConfig, _ int) string { return o.Label }))
	for _, dup := range lo.FindDuplicates(labels) {
		err = multierr.Append(err, errors.Errorf("obstacle label %q is used more than once", dup))
	}
	if _, optsErr := s.PlannerOptions(); optsErr != nil {
		err = multierr.Append(err, errors.Wrap(optsErr, "planner"))
	}
	return err
}

// MotionConstraints returns the configured limits, or the defaults if none are given.
func (s *Scenario) MotionConstraints() motionplan.MotionConstraints {
	if s.Constraints == nil {
		return motionplan.NewDefaultMotionConstraints()
	}
	return *s.Constraints
}

// Command returns the PathTarget command for the scenario's goal.
func (s *Scenario) Command() motionplan.PathTargetCommand {
	return motionplan.PathTargetCommand{Goal: s.Goal.Instant()}
}

// ObstacleSet builds the field's obstacles. Unlabelled obstacles get a generated label.
func (s *Scenario) ObstacleSet() (*spatialmath.ShapeSet, error) {
	set := spatialmath.NewShapeSet()
	for i, o := range s.Obstacles {
		shape, err := o.Shape()
		if err != nil {
			return nil, errors.Wrapf(err, "obstacle %d", i)
		}
		set.Add(shape)
	}
	return set, nil
}

// PlannerOptions returns the default planner options updated with the scenario's overrides.
func (s *Scenario) PlannerOptions() (*motionplan.PlannerOptions, error) {
	return motionplan.NewPlannerOptionsFromExtra(s.Planner)
}

// FieldBounds returns the rectangle covered by the planner's field sampler.
func FieldBounds(opts *motionplan.PlannerOptions) r2.Rect {
	halfWidth := opts.FieldWidth / 2
	return r2.RectFromPoints(r2.Point{X: -halfWidth, Y: 0}, r2.Point{X: halfWidth, Y: opts.FieldLength})
}

// Distance returns the straight-line distance from start to goal.
func (s *Scenario) Distance() float64 {
	return spatialmath.DistTo(s.Start.Pos, s.Goal.Pos)
}
