package motionplan

import (
	"math"
	"slices"

	"github.com/golang/geo/r2"

	"go.viam.com/fieldplanner/spatialmath"
)

// treeNode is one vertex of a fixedStepTree. parent indexes into the owning tree's node slice and is
// -1 for the root. hits is the hit-set of the edge from the parent, or of the root position.
type treeNode struct {
	pos    r2.Point
	parent int
	hits   spatialmath.HitSet
}

// fixedStepTree is a random tree whose extensions move at most step toward their target. Nodes are
// stored in an arena so that parent links are plain indices.
//
// An extension is accepted only if everything its edge touches was already touched by the edge
// leading to its base node. A tree rooted in free space therefore stays in free space, and a tree
// rooted inside an obstacle may leave it without entering any other.
type fixedStepTree struct {
	nodes     []treeNode
	obstacles Obstacles
	step      float64
}

func newFixedStepTree(root r2.Point, obstacles Obstacles, step float64) *fixedStepTree {
	return &fixedStepTree{
		nodes:     []treeNode{{pos: root, parent: -1, hits: obstacles.HitSet(root)}},
		obstacles: obstacles,
		step:      step,
	}
}

// Size returns the number of nodes in the tree.
func (t *fixedStepTree) Size() int {
	return len(t.nodes)
}

// Pos returns the position of the node at idx.
func (t *fixedStepTree) Pos(idx int) r2.Point {
	return t.nodes[idx].pos
}

// Last returns the index of the most recently inserted node.
func (t *fixedStepTree) Last() int {
	return len(t.nodes) - 1
}

// Extend grows the tree from its node nearest to target. It returns the index of the new node, or
// false if the extension was rejected, in which case the tree is unchanged.
func (t *fixedStepTree) Extend(target r2.Point) (int, bool) {
	return t.extendFrom(nearestNeighbor(t.nodes, target), target)
}

func (t *fixedStepTree) extendFrom(base int, target r2.Point) (int, bool) {
	if base < 0 {
		return -1, false
	}
	from := t.nodes[base]
	delta := target.Sub(from.pos)
	if delta.Norm() < spatialmath.Epsilon {
		return -1, false
	}

	pos := target
	if delta.Norm() > t.step {
		pos = from.pos.Add(spatialmath.NormalizedTo(delta, t.step))
	}

	hits := t.obstacles.SegmentHitSet(spatialmath.NewSegment(from.pos, pos))
	if !hits.SubsetOf(from.hits) {
		return -1, false
	}
	t.nodes = append(t.nodes, treeNode{pos: pos, parent: base, hits: hits})
	return len(t.nodes) - 1, true
}

// Connect extends the tree toward target until a node lands exactly on it or an extension fails.
func (t *fixedStepTree) Connect(target r2.Point) bool {
	base := nearestNeighbor(t.nodes, target)
	if base < 0 {
		return false
	}

	attempts := int(math.Ceil(spatialmath.DistTo(t.nodes[base].pos, target)/t.step)) + 1
	for i := 0; i < attempts; i++ {
		next, ok := t.extendFrom(base, target)
		if !ok {
			return false
		}
		if t.nodes[next].pos == target {
			return true
		}
		base = next
	}
	return false
}

// AddPath appends the positions from the root to node idx onto buf, or from idx to the root when
// reverse is set.
func (t *fixedStepTree) AddPath(buf []r2.Point, idx int, reverse bool) []r2.Point {
	var path []r2.Point
	for i := idx; i >= 0; i = t.nodes[i].parent {
		path = append(path, t.nodes[i].pos)
	}
	if !reverse {
		slices.Reverse(path)
	}
	return append(buf, path...)
}
