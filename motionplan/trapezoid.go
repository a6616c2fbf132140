package motionplan

import "math"

// trapezoidalTime returns the time at which a robot following a trapezoidal speed profile along a
// path of pathLength has covered distance. The profile accelerates at maxAcc from startSpeed,
// cruises at no more than maxSpeed, and decelerates at maxAcc into endSpeed. Boundary speeds that
// cannot be reached within the path are relaxed to the nearest reachable value.
func trapezoidalTime(distance, pathLength, maxSpeed, maxAcc, startSpeed, endSpeed float64) float64 {
	if pathLength <= 0 || maxAcc <= 0 {
		return 0
	}
	distance = math.Max(0, math.Min(distance, pathLength))

	vs := math.Min(startSpeed, maxSpeed)
	ve := math.Min(endSpeed, maxSpeed)
	if ve*ve > vs*vs+2*maxAcc*pathLength {
		ve = math.Sqrt(vs*vs + 2*maxAcc*pathLength)
	} else if vs*vs > ve*ve+2*maxAcc*pathLength {
		ve = math.Sqrt(vs*vs - 2*maxAcc*pathLength)
	}

	vPeak := math.Min(maxSpeed, math.Sqrt((2*maxAcc*pathLength+vs*vs+ve*ve)/2))
	if vPeak <= 0 {
		return 0
	}

	accelDist := math.Max(0, (vPeak*vPeak-vs*vs)/(2*maxAcc))
	decelDist := math.Max(0, (vPeak*vPeak-ve*ve)/(2*maxAcc))
	cruiseDist := math.Max(0, pathLength-accelDist-decelDist)

	accelTime := (vPeak - vs) / maxAcc
	cruiseTime := cruiseDist / vPeak

	switch {
	case distance <= accelDist:
		return (-vs + math.Sqrt(vs*vs+2*maxAcc*distance)) / maxAcc
	case distance <= accelDist+cruiseDist:
		return accelTime + (distance-accelDist)/vPeak
	default:
		y := distance - accelDist - cruiseDist
		return accelTime + cruiseTime + (vPeak-math.Sqrt(math.Max(0, vPeak*vPeak-2*maxAcc*y)))/maxAcc
	}
}
