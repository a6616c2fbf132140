package motionplan

import (
	"time"

	"github.com/golang/geo/r2"

	"go.viam.com/fieldplanner/spatialmath"
)

// TrajectoryEntry is one timed sample of a trajectory. Time is in seconds from the start of the
// trajectory.
type TrajectoryEntry struct {
	Motion MotionInstant
	Time   float64
}

// Trajectory is the output of a planning cycle: timed motion samples plus the absolute time the
// first sample corresponds to. Entry times never decrease, and the first entry is the state the
// robot was planned from. A Trajectory is not modified after it is returned by a planner.
type Trajectory struct {
	Entries   []TrajectoryEntry
	StartTime time.Time
}

// NewStoppedTrajectory returns a single-entry trajectory holding the robot at pos.
func NewStoppedTrajectory(pos r2.Point, startTime time.Time) *Trajectory {
	return &Trajectory{
		Entries:   []TrajectoryEntry{{Motion: MotionInstant{Pos: pos}}},
		StartTime: startTime,
	}
}

// Empty reports whether the trajectory has no entries.
func (t *Trajectory) Empty() bool {
	return t == nil || len(t.Entries) == 0
}

// Start returns the first motion instant. It panics on an empty trajectory.
func (t *Trajectory) Start() MotionInstant {
	return t.Entries[0].Motion
}

// End returns the last motion instant. It panics on an empty trajectory.
func (t *Trajectory) End() MotionInstant {
	return t.Entries[len(t.Entries)-1].Motion
}

// TotalTime returns the time of the last entry, in seconds.
func (t *Trajectory) TotalTime() float64 {
	if t.Empty() {
		return 0
	}
	return t.Entries[len(t.Entries)-1].Time
}

// Duration returns TotalTime as a time.Duration.
func (t *Trajectory) Duration() time.Duration {
	return time.Duration(t.TotalTime() * float64(time.Second))
}

// Length returns the polyline length through the entry positions.
func (t *Trajectory) Length() float64 {
	if t.Empty() {
		return 0
	}
	length := 0.
	for i := 1; i < len(t.Entries); i++ {
		length += spatialmath.DistTo(t.Entries[i-1].Motion.Pos, t.Entries[i].Motion.Pos)
	}
	return length
}

// Evaluate returns the motion the trajectory prescribes secondsIntoPath after its start, linearly
// interpolating position and velocity between entries. It returns false before the start or after
// the end.
func (t *Trajectory) Evaluate(secondsIntoPath float64) (MotionInstant, bool) {
	if t.Empty() || secondsIntoPath < 0 || secondsIntoPath > t.TotalTime() {
		return MotionInstant{}, false
	}
	if len(t.Entries) == 1 {
		return t.Entries[0].Motion, true
	}
	for i := 1; i < len(t.Entries); i++ {
		next := t.Entries[i]
		if next.Time < secondsIntoPath {
			continue
		}
		prev := t.Entries[i-1]
		dt := next.Time - prev.Time
		if dt <= 0 {
			return next.Motion, true
		}
		frac := (secondsIntoPath - prev.Time) / dt
		return MotionInstant{
			Pos: spatialmath.Lerp(prev.Motion.Pos, next.Motion.Pos, frac),
			Vel: spatialmath.Lerp(prev.Motion.Vel, next.Motion.Vel, frac),
		}, true
	}
	return t.End(), true
}

// Hit reports whether the trajectory, from startTimeIntoPath onward, enters an obstacle that the
// robot was not already touching at that time. On a hit it also returns the time of the entry the
// offending segment starts from.
func (t *Trajectory) Hit(obstacles Obstacles, startTimeIntoPath float64) (float64, bool) {
	if t.Empty() {
		return 0, false
	}

	start := 0
	for start < len(t.Entries) && t.Entries[start].Time <= startTimeIntoPath {
		start++
	}
	if start > 0 {
		start--
	}
	if start >= len(t.Entries)-1 {
		return 0, false
	}

	alreadyHit := obstacles.HitSet(t.Entries[start].Motion.Pos)
	for i := start + 1; i < len(t.Entries); i++ {
		seg := spatialmath.NewSegment(t.Entries[i-1].Motion.Pos, t.Entries[i].Motion.Pos)
		if !obstacles.SegmentHitSet(seg).Difference(alreadyHit).Empty() {
			return t.Entries[i-1].Time, true
		}
	}
	return 0, false
}
