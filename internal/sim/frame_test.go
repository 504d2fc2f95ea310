package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampDelta(t *testing.T) {
	assert.Equal(t, 0.033, ClampDelta(1, 0.033))
	assert.Equal(t, 0.016, ClampDelta(0.016, 0.033))
	assert.Equal(t, 0.0, ClampDelta(-0.5, 0.033))
	assert.Equal(t, 0.0, ClampDelta(math.NaN(), 0.033))
}

func TestTick_ClampsLongFrames(t *testing.T) {
	ts := hallSim(t)
	ts.Tick(2.5, Intent{MoveForward: true})
	assert.InDelta(t, 0.033, ts.Clock(), 1e-12)
	assert.InDelta(t, 2.5+3*0.033, ts.Player.Y, 1e-12)
	assert.Equal(t, 1, ts.TickCount())
}

func TestTick_FiresAfterRotating(t *testing.T) {
	// Facing east with the enemy due south: only the same-tick look delta
	// brings it into the firing cone.
	ts := hallSim(t, WithEnemy(EnemyGrunt, 2.5, 5.5, 2))
	ts.Player.Angle = 0
	f := ts.Step(Intent{Fire: true, LookDelta: math.Pi / 2})
	require.Len(t, f.Events, 1)
	assert.Equal(t, "hit", f.Events[0].Key)
}

func TestTick_MovesBeforeFiring(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 3
	// Out of range at spawn, in range only after stepping forward.
	ts := hallSim(t, WithConfig(cfg), WithEnemy(EnemyGrunt, 2.5, 5.54, 2))
	f := ts.Step(Intent{Fire: true, MoveForward: true})
	require.Len(t, f.Events, 1)
	assert.Equal(t, "hit", f.Events[0].Key)
}

func TestFrame_WallStrips(t *testing.T) {
	ts := hallSim(t)
	f := ts.Render()
	require.Len(t, f.Walls, 180)
	half := float64(f.Height / 2)
	prevX := -1.0
	for i, w := range f.Walls {
		assert.Equal(t, i, w.Column)
		assert.Greater(t, w.Rect.X, prevX)
		prevX = w.Rect.X
		assert.Equal(t, 6.0, w.Rect.W)
		assert.LessOrEqual(t, w.Rect.H, float64(f.Height))
		assert.InDelta(t, half, w.Rect.Y+w.Rect.H/2, 1e-9, "strip %d is centred on the horizon", i)
		assert.Equal(t, uint8(217), w.Color.A)
		assert.LessOrEqual(t, w.SeamAlpha, 0.25)
	}

	ts.SetViewport(400, 300)
	assert.Len(t, ts.Render().Walls, 90)
}

func TestFrame_WallHeightFromDistance(t *testing.T) {
	ts := hallSim(t)
	f := ts.Render()
	// The centre column looks straight down the hall at the south wall.
	mid := f.Walls[90]
	proj := 600 / (2 * math.Tan(math.Pi/6))
	assert.InDelta(t, 4.5, mid.Distance, 0.02)
	assert.InDelta(t, proj/mid.Distance, mid.Rect.H, 1e-9)
	assert.Equal(t, SideHorizontal, mid.Side)
	assert.Equal(t, uint8(170), mid.Color.R)
}

func TestFrame_WallHeightCappedAtViewport(t *testing.T) {
	ts := hallSim(t)
	ts.Player.X, ts.Player.Y, ts.Player.Angle = 1.25, 2.5, math.Pi
	f := ts.Render()
	mid := f.Walls[90]
	assert.Equal(t, 600.0, mid.Rect.H)
	assert.Equal(t, 0.0, mid.Rect.Y)
}

func TestWallColor(t *testing.T) {
	near := wallColor(SideVertical, 1)
	assert.Equal(t, uint8(200), near.R)
	assert.Equal(t, uint8(170), near.G)
	assert.Equal(t, uint8(160), near.B)

	far := wallColor(SideHorizontal, wallShade(25, 20))
	assert.Equal(t, uint8(170), far.R)
	assert.Equal(t, uint8(120), far.G)
	assert.Equal(t, uint8(140), far.B)
}

func TestFrame_SpriteProjection(t *testing.T) {
	ts := hallSim(t, WithEnemy(EnemyGrunt, 2.5, 5.5, 2))
	f := ts.Render()
	require.Len(t, f.Sprites, 1)
	sp := f.Sprites[0]

	proj := 600 / (2 * math.Tan(math.Pi/6))
	size := 2.52 / 3 * proj
	assert.InDelta(t, 3.0, sp.Distance, 1e-12)
	assert.InDelta(t, size, sp.Rect.W, 1e-9)
	assert.InDelta(t, size, sp.Rect.H, 1e-9)
	assert.InDelta(t, 400-size/2, sp.Rect.X, 1e-9)
	assert.InDelta(t, 300-0.9*size, sp.Rect.Y, 1e-9)
	assert.InDelta(t, sp.Rect.Y+0.4*size, sp.Shadow.Y, 1e-9)
	assert.InDelta(t, 0.15*size, sp.Shadow.H, 1e-9)
	assert.InDelta(t, 0.26, sp.ShadowA, 1e-12)
	assert.InDelta(t, 255*(1-3.0/18), float64(sp.Color.A), 1)
	assert.Equal(t, uint8(0xaa), sp.Color.G)
}

func TestFrame_SpritesFarthestFirstAndCulled(t *testing.T) {
	ts := hallSim(t,
		WithEnemy(EnemyGrunt, 2.5, 3.5, 2),
		WithEnemy(EnemyElite, 2.5, 6.5, 5),
		WithEnemy(EnemyBrute, 1.5, 4.5, 3),
		WithEnemy(EnemyGrunt, 2.5, 1.5, 2), // behind the player
	)
	f := ts.Render()
	require.Len(t, f.Sprites, 3)
	for i := 1; i < len(f.Sprites); i++ {
		assert.GreaterOrEqual(t, f.Sprites[i-1].Distance, f.Sprites[i].Distance)
	}
	assert.Equal(t, 1, f.Sprites[0].EnemyID)
	for _, sp := range f.Sprites {
		assert.NotEqual(t, 3, sp.EnemyID)
	}
}

func TestFrame_SpriteAlphaFloor(t *testing.T) {
	ts := NewTestSim(
		WithLevel(corridorRows...),
		WithEnemy(EnemyGrunt, 14.5, 1.5, 2),
	)
	ts.Player.X = 1.2
	f := ts.Render()
	require.Len(t, f.Sprites, 1)

	cfg := DefaultConfig()
	cfg.MaxDepth = 10
	ts2 := NewTestSim(
		WithConfig(cfg),
		WithLevel(corridorRows...),
		WithEnemy(EnemyGrunt, 14.5, 1.5, 2),
	)
	f2 := ts2.Render()
	require.Len(t, f2.Sprites, 1)
	assert.Equal(t, alpha8(0.15), f2.Sprites[0].Color.A)
	assert.Greater(t, f.Sprites[0].Color.A, f2.Sprites[0].Color.A)
}

func TestFrame_HUDRoundsHealth(t *testing.T) {
	ts := hallSim(t, WithHealth(57.5), WithAmmo(12))
	hud := ts.Render().HUD
	assert.Equal(t, 58, hud.Health)
	assert.Equal(t, 12, hud.Ammo)
	assert.Equal(t, 0, hud.Enemies)
	assert.Equal(t, "HP 58  •  Ammo 12  •  Demons 0  •  CLEARED", hud.String())

	ts = hallSim(t, WithHealth(57.4), WithEnemy(EnemyGrunt, 2.5, 5.5, 2))
	hud = ts.Render().HUD
	assert.Equal(t, 57, hud.Health)
	assert.Equal(t, "HP 57  •  Ammo 99  •  Demons 1", hud.String())
}

func TestTick_DeadPlayerIsFrozen(t *testing.T) {
	ts := hallSim(t, WithHealth(0), WithEnemy(EnemyGrunt, 2.5, 5.5, 2))
	f := ts.Step(Intent{MoveForward: true, TurnLeft: true, Fire: true})
	assert.Equal(t, 2.5, ts.Player.X)
	assert.Equal(t, 2.5, ts.Player.Y)
	assert.Equal(t, math.Pi/2, ts.Player.Angle)
	assert.Equal(t, 99, ts.Player.Ammo)
	assert.True(t, f.HUD.Dead)
	assert.Contains(t, f.HUD.String(), "YOU DIED")
	// Enemies keep moving.
	assert.Less(t, ts.Enemies[0].Y, 5.5)
}

func TestTick_DeathEmittedOnce(t *testing.T) {
	ts := hallSim(t, WithHealth(1), WithEnemy(EnemyBrute, 2.5, 2.8, 3))
	ts.RunTicks(60)
	assert.Equal(t, 0.0, ts.Player.Health)
	assert.Equal(t, 1, ts.SimLog.CountCategory("player", "died"))
	assert.InDelta(t, 1.0, ts.SimLog.SumCategory("melee", "damage"), 1e-9)
}

func TestFrame_Minimap(t *testing.T) {
	ts := hallSim(t, WithEnemy(EnemyGrunt, 2.5, 5.5, 2))
	mm := ts.Render().Minimap
	assert.Equal(t, 5, mm.Cols)
	assert.Equal(t, 8, mm.Rows)
	assert.Len(t, mm.Cells, 40)
	require.Len(t, mm.Enemies, 1)
	assert.Equal(t, 5.5, mm.Enemies[0].Y)
	assert.Equal(t, minimapEnemyColor, mm.Enemies[0].Color)
	assert.Equal(t, 2.5, mm.Player.X)
	assert.InDelta(t, 2.5, mm.HeadingX, 1e-12)
	assert.InDelta(t, 3.3, mm.HeadingY, 1e-12)
}

func TestFrame_BackgroundAndCrosshair(t *testing.T) {
	ts := hallSim(t)
	ts.SetViewport(801, 601)
	f := ts.Render()
	assert.Equal(t, 300.0, f.Background.Horizon)
	assert.Equal(t, 400.5, f.Crosshair.CX)
	assert.Equal(t, 300.5, f.Crosshair.CY)
	assert.Equal(t, uint8(102), f.Crosshair.Color.A)
}

func TestSetViewport_Minimum(t *testing.T) {
	ts := hallSim(t)
	ts.SetViewport(0, -4)
	w, h := ts.Viewport()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
	f := ts.Render()
	assert.Len(t, f.Walls, 1)
}

func TestTick_EventsAreLogged(t *testing.T) {
	ts := hallSim(t, WithEnemy(EnemyGrunt, 2.5, 5.5, 1))
	f := ts.Step(Intent{Fire: true})
	require.Len(t, f.Events, 2)
	assert.Equal(t, f.Events, ts.SimLog.Entries())
	assert.Empty(t, ts.Step(Intent{}).Events)
	assert.True(t, ts.SimLog.HasEntry("combat", "kill", "grunt"))
}

func TestNewSim_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FOV = 0
	_, err := NewSim(cfg, DefaultLevel)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSim(DefaultConfig(), []string{"111", "1x1", "111"})
	assert.ErrorIs(t, err, ErrUnknownTile)

	cfg = DefaultConfig()
	cfg.PlayerPad = 0.49
	_, err = NewSim(cfg, []string{"11111", "1P..1", "11111"})
	require.NoError(t, err)
}
