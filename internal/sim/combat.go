package sim

import "math"

// ShotOutcome is what a trigger pull did.
type ShotOutcome int

const (
	ShotCooldown ShotOutcome = iota // still cooling down, nothing happened
	ShotDry                         // out of ammo, nothing happened
	ShotMiss                        // ammo spent, no valid target
	ShotHit                         // target damaged and still alive
	ShotKill                        // target removed
)

func (o ShotOutcome) String() string {
	switch o {
	case ShotCooldown:
		return "cooldown"
	case ShotDry:
		return "dry"
	case ShotMiss:
		return "miss"
	case ShotHit:
		return "hit"
	case ShotKill:
		return "kill"
	default:
		return "unknown"
	}
}

// Fired reports whether the shot consumed ammo.
func (o ShotOutcome) Fired() bool {
	return o >= ShotMiss
}

// ShotResult describes one TryShoot call.
type ShotResult struct {
	Outcome  ShotOutcome
	Target   *Enemy // nil unless Outcome is ShotHit or ShotKill
	Distance float64
}

// TryShoot fires the player's weapon at sim time now. At most one enemy is
// damaged: the nearest one inside the firing cone with a clear line of sight.
func (s *Sim) TryShoot(now float64) ShotResult {
	p := s.Player
	if now-p.LastShot < s.cfg.BulletCooldown {
		return ShotResult{Outcome: ShotCooldown}
	}
	if p.Ammo <= 0 {
		return ShotResult{Outcome: ShotDry}
	}
	p.LastShot = now
	p.Ammo--

	idx, dist := s.pickTarget()
	if idx < 0 {
		s.emit("you", "combat", "miss", "no target in cone", 0)
		return ShotResult{Outcome: ShotMiss}
	}
	target := s.Enemies[idx]
	target.HP--
	if target.HP <= 0 {
		s.Enemies = append(s.Enemies[:idx], s.Enemies[idx+1:]...)
		s.emit(target.Label(), "combat", "kill", target.Kind.String()+" down", dist)
		if len(s.Enemies) == 0 {
			s.emit("--", "level", "cleared", "all demons down", 0)
		}
		return ShotResult{Outcome: ShotKill, Target: target, Distance: dist}
	}
	s.emit(target.Label(), "combat", "hit", target.Kind.String()+" hit", dist)
	return ShotResult{Outcome: ShotHit, Target: target, Distance: dist}
}

// pickTarget returns the index of the nearest unobstructed enemy inside the
// firing cone and its distance, or -1 when there is none.
func (s *Sim) pickTarget() (int, float64) {
	p := s.Player
	best := -1
	bestDist := math.Inf(1)
	half := s.cfg.fireHalfCone()
	for i, e := range s.Enemies {
		off, dist := AngleOffset(p.X, p.Y, p.Angle, e.X, e.Y)
		if dist > s.cfg.MaxDepth || math.Abs(off) >= half {
			continue
		}
		if !HasLineOfSight(s.Grid, p.X, p.Y, e.X, e.Y, s.cfg.LOSStep) {
			continue
		}
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best, bestDist
}
