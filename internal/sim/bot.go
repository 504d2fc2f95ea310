package sim

import "math"

// AutoAim is a scripted intent policy used by headless runs. It turns toward
// the nearest enemy it can see, fires once the target is inside the firing
// cone, and sweeps right when nothing is visible. It never walks.
type AutoAim struct {
	// Sweep turns the player when no target is visible.
	Sweep bool
}

// Decide returns the intent for the next tick.
func (b AutoAim) Decide(s *Sim) Intent {
	p := s.Player
	cfg := s.cfg
	var target *Enemy
	best := math.Inf(1)
	for _, e := range s.Enemies {
		d := math.Hypot(e.X-p.X, e.Y-p.Y)
		if d > cfg.MaxDepth || d >= best {
			continue
		}
		if !HasLineOfSight(s.Grid, p.X, p.Y, e.X, e.Y, cfg.LOSStep) {
			continue
		}
		target = e
		best = d
	}
	if target == nil {
		return Intent{TurnRight: b.Sweep}
	}

	off, _ := AngleOffset(p.X, p.Y, p.Angle, target.X, target.Y)
	in := Intent{}
	// Snap with a look delta when close, otherwise turn at full rate so the
	// bot obeys the same angular speed as a keyboard player.
	maxTurn := cfg.RotSpeed * cfg.MaxDelta
	switch {
	case math.Abs(off) <= maxTurn:
		in.LookDelta = off
	case off > 0:
		in.TurnRight = true
	default:
		in.TurnLeft = true
	}
	in.Fire = math.Abs(off) < cfg.fireHalfCone()
	return in
}
