package sim

import (
	"fmt"
	"math"
)

// Sim owns the whole game state. Only Tick (and TryShoot) mutate it, so a
// Sim must be driven from a single goroutine.
type Sim struct {
	cfg     Config
	Grid    *GridMap
	Player  *Player
	Enemies []*Enemy // active set; every member has HP > 0

	// Log, when set, receives every event emitted by Tick.
	Log *SimLog

	width, height int
	clock         float64 // sim seconds, sum of clamped dt
	tick          int
	events        []SimLogEntry // events of the tick in progress
	minimap       []MinimapCell // static, built once
}

// NewSim loads level and places the player at its spawn.
func NewSim(cfg Config, level []string) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gm, enemies, spawn, err := LoadMap(level)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	if !canMove(gm, spawn.X, spawn.Y, cfg.PlayerPad) {
		return nil, fmt.Errorf("load level: %w: (%.2f,%.2f) with pad %.2f", ErrBlockedSpawn, spawn.X, spawn.Y, cfg.PlayerPad)
	}
	return &Sim{
		cfg:     cfg,
		Grid:    gm,
		Player:  NewPlayer(spawn, cfg.StartHealth, cfg.StartAmmo),
		Enemies: enemies,
		width:   800,
		height:  600,
		minimap: gm.minimapCells(),
	}, nil
}

// Config returns the tuning the sim was built with.
func (s *Sim) Config() Config {
	return s.cfg
}

// SetViewport sets the pixel size frames are projected into.
func (s *Sim) SetViewport(w, h int) {
	s.width = max(1, w)
	s.height = max(1, h)
}

// Viewport returns the current projection size in pixels.
func (s *Sim) Viewport() (int, int) {
	return s.width, s.height
}

// Clock returns the accumulated sim time in seconds.
func (s *Sim) Clock() float64 {
	return s.clock
}

// TickCount returns how many ticks have run.
func (s *Sim) TickCount() int {
	return s.tick
}

// ClampDelta bounds a frame delta to [0, maxDelta].
func ClampDelta(dt, maxDelta float64) float64 {
	if !(dt > 0) {
		return 0
	}
	return math.Min(dt, maxDelta)
}

// Tick advances the simulation by dt seconds (clamped to Config.MaxDelta)
// and returns the frame to draw. Order: move, rotate, fire, enemies, project.
func (s *Sim) Tick(dt float64, in Intent) Frame {
	dt = ClampDelta(dt, s.cfg.MaxDelta)
	s.tick++
	s.clock += dt

	p := s.Player
	alive := p.Alive()
	if alive {
		MovePlayer(s.Grid, s.cfg, p, in, dt)
		RotatePlayer(s.cfg, p, in, dt)
		if in.Fire {
			s.TryShoot(s.clock)
		}
	}

	if dealt := AdvanceEnemies(s.Grid, s.cfg, p, s.Enemies, dt); dealt > 0 {
		s.emit("you", "melee", "damage", fmt.Sprintf("-%.2f hp", dealt), dealt)
	}
	if alive && !p.Alive() {
		s.emit("you", "player", "died", "health depleted", 0)
	}
	if s.Log != nil {
		s.Log.AddVerbose(s.tick, "you", "player", "pose",
			fmt.Sprintf("(%.2f,%.2f) a=%.3f", p.X, p.Y, p.Angle), p.Health)
	}

	f := s.project()
	f.Events = s.events
	if s.Log != nil {
		s.Log.Append(s.events...)
	}
	s.events = nil
	return f
}

func (s *Sim) emit(actor, category, key, value string, num float64) {
	s.events = append(s.events, SimLogEntry{
		Tick:     s.tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   num,
	})
}
