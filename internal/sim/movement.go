package sim

import "math"

// MovePlayer applies the movement intents for dt seconds. The x and y
// displacements are committed separately so the player slides along a wall
// when only one axis is blocked.
func MovePlayer(gm *GridMap, cfg Config, p *Player, in Intent, dt float64) {
	sin, cos := math.Sincos(p.Angle)
	var mx, my float64
	if in.MoveForward {
		mx += cos * cfg.MoveSpeed * dt
		my += sin * cfg.MoveSpeed * dt
	}
	if in.MoveBack {
		mx -= cos * cfg.MoveSpeed * dt
		my -= sin * cfg.MoveSpeed * dt
	}
	if in.StrafeLeft {
		mx += -sin * cfg.StrafeSpeed * dt
		my += cos * cfg.StrafeSpeed * dt
	}
	if in.StrafeRight {
		mx += sin * cfg.StrafeSpeed * dt
		my += -cos * cfg.StrafeSpeed * dt
	}
	if mx == 0 && my == 0 {
		return
	}
	if nx := p.X + mx; canMove(gm, nx, p.Y, cfg.PlayerPad) {
		p.X = nx
	}
	if ny := p.Y + my; canMove(gm, p.X, ny, cfg.PlayerPad) {
		p.Y = ny
	}
}

// RotatePlayer turns the player by the turn intents and the look delta.
func RotatePlayer(cfg Config, p *Player, in Intent, dt float64) {
	if in.TurnLeft {
		p.Angle -= cfg.RotSpeed * dt
	}
	if in.TurnRight {
		p.Angle += cfg.RotSpeed * dt
	}
	p.Angle += in.LookDelta
}

// AdvanceEnemies moves every enemy toward the player and applies melee
// damage from those already within reach. It returns the total damage dealt.
func AdvanceEnemies(gm *GridMap, cfg Config, p *Player, enemies []*Enemy, dt float64) float64 {
	dealt := 0.0
	reach := cfg.meleeRadius()
	for _, e := range enemies {
		dx := p.X - e.X
		dy := p.Y - e.Y
		dist := math.Hypot(dx, dy)
		if dist > 0.001 {
			step := math.Min(cfg.EnemySpeed*dt, dist-0.001) * cfg.EnemyDamping
			nx := e.X + dx/dist*step
			ny := e.Y + dy/dist*step
			if !gm.IsWall(nx, e.Y) {
				e.X = nx
			}
			if !gm.IsWall(e.X, ny) {
				e.Y = ny
			}
		}
		if dist < reach {
			before := p.Health
			p.Damage(cfg.MeleeDPS * dt)
			dealt += before - p.Health
		}
	}
	return dealt
}
