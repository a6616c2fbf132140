package motionplan

import (
	"encoding/json"
	"math"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// default values for planning options.
const (
	// Number of bidirectional RRT iterations before giving up.
	defaultMaxIterations = 250

	// Distance each tree extension moves toward its target, in meters.
	defaultStepSize = 0.15

	// Number of samples taken along each Bezier segment when building the velocity profile.
	defaultInterpolations = 40

	// Field dimensions, in meters. Samples are drawn over x in [-width/2, width/2], y in [0, length].
	defaultFieldLength = 9.0
	defaultFieldWidth  = 6.0

	// If the goal moves more than this far from the end of the previous path, replan.
	defaultGoalChangeThreshold = 0.025

	// If the robot is more than this far from where the previous path says it should be, replan.
	defaultReplanThreshold = 0.2

	// Paths older than this are always replanned, in seconds.
	defaultReplanTimeout = 5.0

	// Step size and iteration budget of the tree used to move a blocked goal out of obstacles.
	defaultEscapeStepSize   = 0.1
	defaultEscapeIterations = 300

	// random seed.
	defaultRandomSeed = 0
)

// NewBasicPlannerOptions specifies a set of basic options for the planner.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		MaxIterations:       defaultMaxIterations,
		StepSize:            defaultStepSize,
		Interpolations:      defaultInterpolations,
		FieldLength:         defaultFieldLength,
		FieldWidth:          defaultFieldWidth,
		GoalChangeThreshold: defaultGoalChangeThreshold,
		ReplanThreshold:     defaultReplanThreshold,
		ReplanTimeout:       defaultReplanTimeout,
		EscapeStepSize:      defaultEscapeStepSize,
		EscapeIterations:    defaultEscapeIterations,
		RandomSeed:          defaultRandomSeed,
	}
}

// PlannerOptions are a set of options to be passed to a planner which will specify how to solve a
// motion planning problem.
type PlannerOptions struct {
	// Number of bidirectional RRT iterations. Zero disables the search, so every replan falls back
	// to a stopped trajectory.
	MaxIterations int `json:"max_iterations"`

	// Distance each tree extension moves toward its target.
	StepSize float64 `json:"step_size"`

	// Samples per Bezier segment used by the velocity profiler.
	Interpolations int `json:"interpolations"`

	// Field extents used by the default sampler.
	FieldLength float64 `json:"field_length"`
	FieldWidth  float64 `json:"field_width"`

	// How far the goal may drift from the previous path's end, in position or velocity, before a
	// replan is forced.
	GoalChangeThreshold float64 `json:"goal_change_threshold"`

	// How far the robot may drift from the previous path before a replan is forced.
	ReplanThreshold float64 `json:"replan_threshold"`

	// Number of seconds after which a previous path is always replanned.
	ReplanTimeout float64 `json:"replan_timeout_sec"`

	// Parameters of the tree that moves a blocked goal into free space.
	EscapeStepSize   float64 `json:"escape_step_size"`
	EscapeIterations int     `json:"escape_iterations"`

	// The random seed used by the default field sampler. This parameter guarantees deterministic
	// outputs for a given set of identical inputs.
	RandomSeed int `json:"rseed"`
}

// NewPlannerOptionsFromExtra returns basic default settings updated by overridden parameters
// found in extra, e.g. the `planner` section of a scenario file.
func NewPlannerOptionsFromExtra(extra map[string]interface{}) (*PlannerOptions, error) {
	opt := NewBasicPlannerOptions()

	jsonString, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(jsonString, opt); err != nil {
		return nil, errors.Wrap(err, "invalid planner options")
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return opt, nil
}

// Validate returns every option that is out of range.
func (p *PlannerOptions) Validate() error {
	if p == nil {
		return errNoPlannerOptions
	}
	var err error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			err = multierr.Append(err, errors.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 || math.IsNaN(v) {
			err = multierr.Append(err, errors.Errorf("%s can't be negative, got %v", name, v))
		}
	}

	nonNegative("max_iterations", float64(p.MaxIterations))
	positive("step_size", p.StepSize)
	positive("interpolations", float64(p.Interpolations))
	positive("field_length", p.FieldLength)
	positive("field_width", p.FieldWidth)
	nonNegative("goal_change_threshold", p.GoalChangeThreshold)
	positive("replan_threshold", p.ReplanThreshold)
	positive("replan_timeout_sec", p.ReplanTimeout)
	positive("escape_step_size", p.EscapeStepSize)
	nonNegative("escape_iterations", float64(p.EscapeIterations))
	return err
}

func (p *PlannerOptions) replanTimeoutDuration() time.Duration {
	return time.Duration(p.ReplanTimeout * float64(time.Second))
}
