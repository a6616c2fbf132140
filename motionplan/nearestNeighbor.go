package motionplan

import (
	"math"

	"github.com/golang/geo/r2"
)

// nearestNeighbor returns the index of the node closest to target, or -1 for an empty tree.
func nearestNeighbor(nodes []treeNode, target r2.Point) int {
	bestDist := math.Inf(1)
	best := -1
	for i := range nodes {
		// squared distance orders the same as distance
		diff := nodes[i].pos.Sub(target)
		dist := diff.Dot(diff)
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}
