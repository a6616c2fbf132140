package motionplan

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/fieldplanner/spatialmath"
)

func TestFixedStepTreeExtend(t *testing.T) {
	tree := newFixedStepTree(r2.Point{}, spatialmath.NewShapeSet(), 0.15)
	test.That(t, tree.Size(), test.ShouldEqual, 1)
	test.That(t, tree.Last(), test.ShouldEqual, 0)

	idx, ok := tree.Extend(r2.Point{X: 1})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, tree.Pos(idx).X, test.ShouldAlmostEqual, 0.15)
	test.That(t, tree.Pos(idx).Y, test.ShouldAlmostEqual, 0.)
	test.That(t, tree.Last(), test.ShouldEqual, idx)

	// a target within one step is reached exactly
	idx, ok = tree.Extend(r2.Point{X: 0.2, Y: 0.05})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, tree.Pos(idx), test.ShouldResemble, r2.Point{X: 0.2, Y: 0.05})
	test.That(t, tree.nodes[idx].parent, test.ShouldEqual, 1)

	// extending onto an existing node does nothing
	_, ok = tree.Extend(r2.Point{X: 0.2, Y: 0.05})
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, tree.Size(), test.ShouldEqual, 3)
}

func TestFixedStepTreeObstacles(t *testing.T) {
	wall := newTestRect(t, 0.1, -1, 0.2, 1, "wall")
	obstacles := spatialmath.NewShapeSet(wall)

	t.Run("free root stays free", func(t *testing.T) {
		tree := newFixedStepTree(r2.Point{}, obstacles, 0.15)
		_, ok := tree.Extend(r2.Point{X: 1})
		test.That(t, ok, test.ShouldBeFalse)
		test.That(t, tree.Size(), test.ShouldEqual, 1)

		_, ok = tree.Extend(r2.Point{X: -1})
		test.That(t, ok, test.ShouldBeTrue)
	})

	t.Run("blocked root can leave its obstacle", func(t *testing.T) {
		second := newTestCircle(t, 0.6, 0, 0.2, "post")
		obstacles := spatialmath.NewShapeSet(wall, second)
		tree := newFixedStepTree(r2.Point{X: 0.15}, obstacles, 0.15)
		test.That(t, tree.nodes[0].hits.Contains("wall"), test.ShouldBeTrue)

		idx, ok := tree.Extend(r2.Point{X: 0.3})
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, obstacles.HitSet(tree.Pos(idx)).Empty(), test.ShouldBeTrue)

		// but may not enter a new one
		_, ok = tree.Extend(r2.Point{X: 0.45})
		test.That(t, ok, test.ShouldBeFalse)
	})
}

func TestFixedStepTreeConnect(t *testing.T) {
	tree := newFixedStepTree(r2.Point{}, spatialmath.NewShapeSet(), 0.15)
	target := r2.Point{X: 1, Y: 1}
	test.That(t, tree.Connect(target), test.ShouldBeTrue)
	test.That(t, tree.Pos(tree.Last()), test.ShouldResemble, target)

	path := tree.AddPath(nil, tree.Last(), false)
	test.That(t, path[0], test.ShouldResemble, r2.Point{})
	test.That(t, path[len(path)-1], test.ShouldResemble, target)
	for i := 1; i < len(path); i++ {
		test.That(t, spatialmath.DistTo(path[i-1], path[i]), test.ShouldBeLessThanOrEqualTo, 0.15+1e-9)
	}

	reversed := tree.AddPath([]r2.Point{{X: 5, Y: 5}}, tree.Last(), true)
	test.That(t, len(reversed), test.ShouldEqual, len(path)+1)
	test.That(t, reversed[1], test.ShouldResemble, target)
	test.That(t, reversed[len(reversed)-1], test.ShouldResemble, r2.Point{})

	blocked := newFixedStepTree(r2.Point{}, spatialmath.NewShapeSet(newTestRect(t, 0.5, -1, 0.6, 2, "wall")), 0.15)
	test.That(t, blocked.Connect(target), test.ShouldBeFalse)
	test.That(t, blocked.Size(), test.ShouldBeGreaterThan, 1)
}
