package sim

import "fmt"

// TestSim is a headless harness used by tests and the headless report.
// It wraps a Sim with a fixed dt, an intent policy and a SimLog.
type TestSim struct {
	*Sim
	SimLog *SimLog
	DT     float64
	Last   Frame

	cfg     Config
	level   []string
	player  *Spawn
	heading *float64
	health  *float64
	ammo    *int
	enemies []*Enemy
	verbose bool
	policy  func(*Sim) Intent
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // config, level, verbose; applied first
	simOptActors                      // player pose, enemies; applied after the level loads
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithConfig replaces the default tuning.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg = cfg
	}}
}

// WithLevel replaces the built-in level with the given rows.
func WithLevel(rows ...string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.level = rows
	}}
}

// WithVerbose enables per-tick pose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithDT sets the per-tick delta used by RunTicks.
func WithDT(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.DT = dt
	}}
}

// WithPolicy sets the function that produces each tick's intent.
func WithPolicy(fn func(*Sim) Intent) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.policy = fn
	}}
}

// WithPlayer moves the player to (x,y) facing angle.
func WithPlayer(x, y, angle float64) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.player = &Spawn{X: x, Y: y, Angle: angle}
	}}
}

// WithHeading turns the player to angle without moving them off the spawn.
func WithHeading(angle float64) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.heading = &angle
	}}
}

// WithHealth overrides the player's health.
func WithHealth(h float64) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.health = &h
	}}
}

// WithAmmo overrides the player's ammo.
func WithAmmo(n int) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.ammo = &n
	}}
}

// WithEnemy adds an enemy of kind at (x,y) with hp hit points. Enemies added
// this way get IDs after those spawned by level markers.
func WithEnemy(kind EnemyKind, x, y float64, hp int) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		e := NewEnemy(0, kind, x, y)
		e.HP = hp
		ts.enemies = append(ts.enemies, e)
	}}
}

// NewTestSim constructs a TestSim from the given options. It panics on an
// invalid level since that is always a bug in the test itself.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:   DefaultConfig(),
		level: DefaultLevel,
		DT:    1.0 / 60,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	s, err := NewSim(ts.cfg, ts.level)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.Sim = s
	ts.SimLog = NewSimLog(ts.verbose)
	s.Log = ts.SimLog

	for _, o := range opts {
		if o.kind == simOptActors {
			o.fn(ts)
		}
	}
	if ts.player != nil {
		s.Player.X, s.Player.Y, s.Player.Angle = ts.player.X, ts.player.Y, ts.player.Angle
	}
	if ts.heading != nil {
		s.Player.Angle = *ts.heading
	}
	if ts.health != nil {
		s.Player.Health = clampHealth(*ts.health)
	}
	if ts.ammo != nil {
		s.Player.Ammo = *ts.ammo
	}
	for _, e := range ts.enemies {
		e.ID = len(s.Enemies)
		s.Enemies = append(s.Enemies, e)
	}
	return ts
}

// Step runs one tick with an explicit intent.
func (ts *TestSim) Step(in Intent) Frame {
	ts.Last = ts.Tick(ts.DT, in)
	return ts.Last
}

// RunTicks advances n ticks using the policy, or an empty intent without one.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step(ts.intent())
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step(ts.intent())
		if predicate(ts) {
			return ts.TickCount()
		}
	}
	return -1
}

// EnemyByID returns the active enemy with the given ID, or nil.
func (ts *TestSim) EnemyByID(id int) *Enemy {
	for _, e := range ts.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (ts *TestSim) intent() Intent {
	if ts.policy == nil {
		return Intent{}
	}
	return ts.policy(ts.Sim)
}
