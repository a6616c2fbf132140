package motionplan

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestNearestNeighbor(t *testing.T) {
	test.That(t, nearestNeighbor(nil, r2.Point{}), test.ShouldEqual, -1)

	nodes := []treeNode{}
	for i := 0.0; i < 110.0; i++ {
		nodes = append(nodes, treeNode{pos: r2.Point{X: i, Y: -i}, parent: len(nodes) - 1})
	}
	nn := nearestNeighbor(nodes, r2.Point{X: 23.1, Y: -23.4})
	test.That(t, nodes[nn].pos.X, test.ShouldAlmostEqual, 23.0)

	// ties keep the earliest node
	nn = nearestNeighbor(nodes, r2.Point{X: 0.5, Y: -0.5})
	test.That(t, nn, test.ShouldEqual, 0)
}
