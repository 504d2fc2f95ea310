package sim

import "math"

// HeadingTo returns the angle in radians from (ox,oy) toward (tx,ty).
func HeadingTo(ox, oy, tx, ty float64) float64 {
	return math.Atan2(ty-oy, tx-ox)
}

// normalizeAngle wraps an angle into (-pi, pi]. Works for arbitrarily large
// inputs since the player's heading accumulates without wrapping.
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// AngleOffset returns the signed angle between heading and the direction from
// (ox,oy) to (tx,ty), plus the distance between the two points.
func AngleOffset(ox, oy, heading, tx, ty float64) (offset, dist float64) {
	dx := tx - ox
	dy := ty - oy
	dist = math.Hypot(dx, dy)
	offset = normalizeAngle(math.Atan2(dy, dx) - heading)
	return offset, dist
}

// InCone reports whether (tx,ty) lies strictly inside the cone of the given
// half-angle around heading and no further than maxRange.
func InCone(ox, oy, heading, tx, ty, halfAngle, maxRange float64) bool {
	off, dist := AngleOffset(ox, oy, heading, tx, ty)
	if dist > maxRange {
		return false
	}
	return math.Abs(off) < halfAngle
}
