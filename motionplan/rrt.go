package motionplan

import (
	"github.com/golang/geo/r2"
)

// runRRT grows one tree from start and one from goal, alternating which tree extends toward a field
// sample and which tries to connect to the result. It returns the joined polyline from start to
// goal, or nil if the trees did not meet within maxIter iterations.
func runRRT(start, goal r2.Point, obstacles Obstacles, sample FieldSampler, step float64, maxIter int) []r2.Point {
	startTree := newFixedStepTree(start, obstacles, step)
	goalTree := newFixedStepTree(goal, obstacles, step)

	ta, tb := startTree, goalTree
	for i := 0; i < maxIter; i++ {
		if newIdx, ok := ta.Extend(sample()); ok {
			if tb.Connect(ta.Pos(newIdx)) {
				break
			}
		}
		ta, tb = tb, ta
	}

	p0, p1 := startTree.Last(), goalTree.Last()
	if startTree.Pos(p0) != goalTree.Pos(p1) {
		return nil
	}

	points := startTree.AddPath(nil, p0, false)
	// the meeting point is already the last start tree point
	return goalTree.AddPath(points, goalTree.nodes[p1].parent, true)
}
