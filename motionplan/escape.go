package motionplan

import (
	"github.com/golang/geo/r2"

	"go.viam.com/fieldplanner/spatialmath"
)

// findNonBlockedGoal returns a goal that lies outside every obstacle. An unblocked goal is returned
// unchanged. Otherwise a tree is grown from the goal toward field samples, and its first node in free
// space becomes the new goal. If prevGoal is unblocked and the new goal is not closer to the requested
// goal by more than changeThreshold, prevGoal is kept to stop the goal from jumping between cycles.
// Without a free node or an unblocked prevGoal, the requested goal is returned.
func findNonBlockedGoal(
	goal r2.Point,
	prevGoal *r2.Point,
	obstacles Obstacles,
	sample FieldSampler,
	step float64,
	maxIter int,
	changeThreshold float64,
) r2.Point {
	if obstacles.HitSet(goal).Empty() {
		return goal
	}

	newGoal, found := goal, false
	tree := newFixedStepTree(goal, obstacles, step)
	for i := 0; i < maxIter; i++ {
		idx, ok := tree.Extend(sample())
		if !ok {
			continue
		}
		if obstacles.HitSet(tree.Pos(idx)).Empty() {
			newGoal, found = tree.Pos(idx), true
			break
		}
	}

	if prevGoal != nil && obstacles.HitSet(*prevGoal).Empty() {
		newDist := spatialmath.DistTo(newGoal, goal)
		prevDist := spatialmath.DistTo(*prevGoal, goal)
		if !found || newDist+changeThreshold >= prevDist {
			return *prevGoal
		}
	}
	return newGoal
}
