package motionplan

import (
	"github.com/golang/geo/r2"

	"go.viam.com/fieldplanner/spatialmath"
)

// simplifyPath removes waypoints that can be skipped by a straight shortcut. A shortcut is allowed if
// every obstacle it touches was already touched by the first waypoint, so a path starting inside an
// obstacle is not forced to detour around it. Spans are tried from 2 upward and a span is only
// widened after a full pass over the path removes nothing. Any removal restarts the sweep at span 2
// rather than continuing at the current span: continuing can leave shortcuts that only a second call
// would take, while restarting makes the result a fixed point, so simplifyPath(simplifyPath(p)) equals
// simplifyPath(p). The input slice is not modified.
func simplifyPath(pts []r2.Point, obstacles Obstacles) []r2.Point {
	out := append([]r2.Point(nil), pts...)
	if len(out) < 2 {
		return out
	}

	startHits := obstacles.HitSet(out[0])
	span := 2
	for span < len(out) {
		changed := false
		for i := 0; i+span < len(out); i++ {
			hits := obstacles.SegmentHitSet(spatialmath.NewSegment(out[i], out[i+span]))
			if hits.SubsetOf(startHits) {
				out = append(out[:i+1], out[i+span:]...)
				changed = true
			}
		}
		if changed {
			span = 2
		} else {
			span++
		}
	}
	return out
}
