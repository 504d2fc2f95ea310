package sim

import (
	"fmt"
	"image/color"
	"math"
)

const maxHealth = 100.0

// neverShot is the initial LastShot stamp so the first trigger pull is never on cooldown.
const neverShot = -999.0

// EnemyKind is the spawn-marker variant of an enemy.
type EnemyKind int

const (
	EnemyGrunt EnemyKind = iota // marker '2'
	EnemyBrute                  // marker '3'
	EnemyElite                  // marker 'E'
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyGrunt:
		return "grunt"
	case EnemyBrute:
		return "brute"
	case EnemyElite:
		return "elite"
	default:
		return "unknown"
	}
}

// StartHP is the hit point pool a freshly spawned enemy of this kind gets.
func (k EnemyKind) StartHP() int {
	switch k {
	case EnemyElite:
		return 5
	case EnemyBrute:
		return 3
	default:
		return 2
	}
}

// Color is the sprite colour for this kind.
func (k EnemyKind) Color() color.NRGBA {
	switch k {
	case EnemyElite:
		return color.NRGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}
	case EnemyBrute:
		return color.NRGBA{R: 0xff, G: 0x88, B: 0x44, A: 0xff}
	default:
		return color.NRGBA{R: 0xff, G: 0xaa, B: 0x33, A: 0xff}
	}
}

func enemyKindForTile(ch byte) EnemyKind {
	switch ch {
	case tileElite:
		return EnemyElite
	case tileBrute:
		return EnemyBrute
	default:
		return EnemyGrunt
	}
}

// Player is the first-person avatar.
type Player struct {
	X, Y     float64
	Angle    float64 // radians, 0 = +x, pi/2 = +y; never normalised
	Health   float64 // clamped to [0,100]
	Ammo     int
	LastShot float64 // sim-clock seconds of the last shot fired
}

// NewPlayer places a player at the spawn with full health.
func NewPlayer(sp Spawn, health float64, ammo int) *Player {
	return &Player{
		X:        sp.X,
		Y:        sp.Y,
		Angle:    sp.Angle,
		Health:   clampHealth(health),
		Ammo:     ammo,
		LastShot: neverShot,
	}
}

// Alive reports whether the player still has health left.
func (p *Player) Alive() bool {
	return p.Health > 0
}

// Damage subtracts amount from health, never going below zero.
func (p *Player) Damage(amount float64) {
	p.Health = clampHealth(p.Health - amount)
}

func clampHealth(h float64) float64 {
	return math.Max(0, math.Min(maxHealth, h))
}

// Enemy is a pursuing demon. It stays in the active set while HP > 0.
type Enemy struct {
	ID    int
	Kind  EnemyKind
	X, Y  float64
	HP    int
	Color color.NRGBA
}

// NewEnemy creates an enemy of the given kind centred at (x,y).
func NewEnemy(id int, kind EnemyKind, x, y float64) *Enemy {
	return &Enemy{
		ID:    id,
		Kind:  kind,
		X:     x,
		Y:     y,
		HP:    kind.StartHP(),
		Color: kind.Color(),
	}
}

// Label is a short identifier used in logs, e.g. "E3".
func (e *Enemy) Label() string {
	return fmt.Sprintf("E%d", e.ID)
}

// canMove reports whether a box of half-extent pad centred on (x,y) is clear
// of walls at all four corners.
func canMove(gm *GridMap, x, y, pad float64) bool {
	return !(gm.IsWall(x-pad, y-pad) ||
		gm.IsWall(x+pad, y-pad) ||
		gm.IsWall(x-pad, y+pad) ||
		gm.IsWall(x+pad, y+pad))
}
