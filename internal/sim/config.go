package sim

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate when a tunable is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every simulation tunable. Distances are in grid units,
// angles in radians and times in seconds.
type Config struct {
	FOV      float64 `yaml:"fov"`       // horizontal field of view
	MaxDepth float64 `yaml:"max_depth"` // render and firing range
	RayStep  float64 `yaml:"ray_step"`  // ray march increment
	WallSize float64 `yaml:"wall_size"`

	MoveSpeed   float64 `yaml:"move_speed"`
	StrafeSpeed float64 `yaml:"strafe_speed"`
	RotSpeed    float64 `yaml:"rot_speed"`
	PlayerPad   float64 `yaml:"player_pad"` // half-extent of the player's collision box

	BulletCooldown float64 `yaml:"bullet_cooldown"`
	FireConeFrac   float64 `yaml:"fire_cone_frac"` // fraction of half-FOV that counts as on target
	LOSStep        float64 `yaml:"los_step"`

	EnemySpeed   float64 `yaml:"enemy_speed"`
	EnemyDamping float64 `yaml:"enemy_damping"`
	EnemyHitbox  float64 `yaml:"enemy_hitbox"`
	MeleeReach   float64 `yaml:"melee_reach"` // added to EnemyHitbox for the melee trigger radius
	MeleeDPS     float64 `yaml:"melee_dps"`

	MaxDelta float64 `yaml:"max_delta"` // per-tick dt ceiling (~30fps floor)

	StartHealth float64 `yaml:"start_health"`
	StartAmmo   int     `yaml:"start_ammo"`

	MouseLookSens float64 `yaml:"mouse_look_sens"` // radians per dragged pixel
	TouchLookSens float64 `yaml:"touch_look_sens"`

	ParallelColumns bool `yaml:"parallel_columns"`
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		FOV:      math.Pi / 3,
		MaxDepth: 20,
		RayStep:  0.01,
		WallSize: 1,

		MoveSpeed:   3.0,
		StrafeSpeed: 2.4,
		RotSpeed:    2.4,
		PlayerPad:   0.2,

		BulletCooldown: 0.22,
		FireConeFrac:   0.4,
		LOSStep:        0.05,

		EnemySpeed:   0.9,
		EnemyDamping: 0.6,
		EnemyHitbox:  0.35,
		MeleeReach:   0.2,
		MeleeDPS:     10,

		MaxDelta: 0.033,

		StartHealth: 100,
		StartAmmo:   99,

		MouseLookSens: 0.003,
		TouchLookSens: 0.004,
	}
}

// LoadConfig reads a YAML file and overlays it onto DefaultConfig. Keys
// missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects tunables that would stall or break the simulation.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"fov", c.FOV},
		{"max_depth", c.MaxDepth},
		{"ray_step", c.RayStep},
		{"wall_size", c.WallSize},
		{"los_step", c.LOSStep},
		{"max_delta", c.MaxDelta},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.FOV >= math.Pi {
		return fmt.Errorf("%w: fov must be < pi, got %v", ErrInvalidConfig, c.FOV)
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"move_speed", c.MoveSpeed},
		{"strafe_speed", c.StrafeSpeed},
		{"rot_speed", c.RotSpeed},
		{"player_pad", c.PlayerPad},
		{"bullet_cooldown", c.BulletCooldown},
		{"fire_cone_frac", c.FireConeFrac},
		{"enemy_speed", c.EnemySpeed},
		{"enemy_damping", c.EnemyDamping},
		{"enemy_hitbox", c.EnemyHitbox},
		{"melee_reach", c.MeleeReach},
		{"melee_dps", c.MeleeDPS},
	}
	for _, p := range nonNegative {
		if p.v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.PlayerPad >= 0.5 {
		return fmt.Errorf("%w: player_pad must be < 0.5, got %v", ErrInvalidConfig, c.PlayerPad)
	}
	if c.StartHealth <= 0 || c.StartHealth > maxHealth {
		return fmt.Errorf("%w: start_health must be in (0,%v], got %v", ErrInvalidConfig, maxHealth, c.StartHealth)
	}
	if c.StartAmmo < 0 {
		return fmt.Errorf("%w: start_ammo must be >= 0, got %d", ErrInvalidConfig, c.StartAmmo)
	}
	return nil
}

// meleeRadius is the distance under which an enemy damages the player.
func (c Config) meleeRadius() float64 {
	return c.EnemyHitbox + c.MeleeReach
}

// fireHalfCone is the maximum angular offset for a hitscan candidate.
func (c Config) fireHalfCone() float64 {
	return c.FOV * 0.5 * c.FireConeFrac
}

// spriteHalfCone is the slightly wider-than-FOV window used for sprite culling.
func (c Config) spriteHalfCone() float64 {
	return c.FOV / 1.2
}

// projPlane is the similar-triangles projection factor for a viewport height.
func (c Config) projPlane(h float64) float64 {
	return h / (2 * math.Tan(c.FOV/2))
}
