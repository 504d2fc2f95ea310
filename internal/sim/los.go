package sim

import "math"

// HasLineOfSight samples the segment (ax,ay)->(bx,by) every step units and
// returns false as soon as a sample lands in a wall cell. The start point is
// not sampled; the end point is.
func HasLineOfSight(gm *GridMap, ax, ay, bx, by, step float64) bool {
	dx := bx - ax
	dy := by - ay
	dist := math.Hypot(dx, dy)
	steps := int(math.Ceil(dist / step))
	for s := 1; s <= steps; s++ {
		t := float64(s) / float64(steps)
		if gm.IsWall(ax+dx*t, ay+dy*t) {
			return false
		}
	}
	return true
}
