package termview

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Demon-Corridor/internal/sim"
)

func TestShadeRune_Ramp(t *testing.T) {
	assert.Equal(t, '█', ShadeRune(0, 20))
	assert.Equal(t, '█', ShadeRune(3.9, 20))
	assert.Equal(t, '▓', ShadeRune(4, 20))
	assert.Equal(t, '░', ShadeRune(15, 20))
	assert.Equal(t, '·', ShadeRune(19.9, 20))
	assert.Equal(t, '·', ShadeRune(40, 20), "beyond max depth clamps to the last glyph")
	assert.Equal(t, '█', ShadeRune(-1, 20))
	assert.Equal(t, '█', ShadeRune(5, 0))

	prev := 0
	for d := 0.0; d < 20; d += 0.25 {
		idx := rampIndex(ShadeRune(d, 20))
		assert.GreaterOrEqual(t, idx, prev, "ramp must not get brighter with distance")
		prev = idx
	}
}

func rampIndex(r rune) int {
	for i, c := range wallRamp {
		if c == r {
			return i
		}
	}
	return -1
}

func TestViewportFor(t *testing.T) {
	w, h := ViewportFor(80, 24)
	assert.Equal(t, 640, w)
	assert.Equal(t, 384, h)
	w, h = ViewportFor(0, 0)
	assert.Equal(t, CellW, w)
	assert.Equal(t, CellH, h)
}

func newTermSim(t *testing.T, cols, rows int, opts ...sim.SimOption) *sim.TestSim {
	t.Helper()
	base := []sim.SimOption{sim.WithLevel(
		"11111",
		"1...1",
		"1.P.1",
		"1...1",
		"1...1",
		"1...1",
		"1...1",
		"11111",
	), sim.WithPlayer(2.5, 2.5, math.Pi/2)}
	ts := sim.NewTestSim(append(base, opts...)...)
	ts.SetViewport(ViewportFor(cols, rows))
	return ts
}

func TestRasterize_Layout(t *testing.T) {
	ts := newTermSim(t, 40, 20)
	f := ts.Render()
	cells := Rasterize(f, ts.Config().MaxDepth, 40, 20)
	require.Len(t, cells, 20)
	require.Len(t, cells[0], 40)

	// Straight down the hall: far wall in the middle column, ceiling above
	// it and floor below.
	assert.Contains(t, wallRamp, cells[9][20].Ch)
	assert.Equal(t, ceilRune, cells[0][20].Ch)
	assert.Equal(t, floorRune, cells[19][20].Ch)
	assert.Equal(t, crossRune, cells[10][20].Ch, "crosshair sits on the centre cell")
}

func TestRasterize_SpriteOverwritesWall(t *testing.T) {
	ts := newTermSim(t, 40, 20, sim.WithEnemy(sim.EnemyElite, 2.5, 4.5, 5))
	f := ts.Render()
	require.Len(t, f.Sprites, 1)
	cells := Rasterize(f, ts.Config().MaxDepth, 40, 20)
	found := 0
	for _, row := range cells {
		for _, c := range row {
			if c.Ch == spriteRune {
				found++
			}
		}
	}
	assert.Greater(t, found, 4)
}

func TestMinimapRunes(t *testing.T) {
	ts := newTermSim(t, 40, 20, sim.WithEnemy(sim.EnemyGrunt, 1.5, 5.5, 2))
	grid := minimapRunes(ts.Render().Minimap)
	require.Len(t, grid, 8)
	assert.Equal(t, "#####", string(grid[0]))
	assert.Equal(t, 'v', grid[2][2])
	assert.Equal(t, 'd', grid[5][1])
	assert.Equal(t, ' ', grid[1][1])
}

func TestKeyLatch(t *testing.T) {
	var l keyLatch
	t0 := time.Unix(100, 0)
	l.press(ctrlForward, t0)
	l.press(ctrlFire, t0)

	in := l.intent(t0.Add(100 * time.Millisecond))
	assert.True(t, in.MoveForward)
	assert.True(t, in.Fire)
	assert.False(t, in.TurnLeft)

	in = l.intent(t0.Add(holdWindow))
	assert.False(t, in.MoveForward, "latch expires without a repeat")
}

func TestControlFor(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want control
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), ctrlForward},
		{tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), ctrlStrafeL},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ctrlFire},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ctrlTurnL},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), ctrlBack},
	}
	for _, tc := range cases {
		got, ok := controlFor(tc.ev)
		require.True(t, ok)
		assert.Equal(t, tc.want, got)
	}
	_, ok := controlFor(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.False(t, ok)
}

func TestView_StepDrawsAndFires(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 21)

	ts := newTermSim(t, 40, 20, sim.WithEnemy(sim.EnemyGrunt, 2.5, 5.5, 2))
	v := New(screen, ts.Sim)
	w, h := ts.Viewport()
	assert.Equal(t, 320, w)
	assert.Equal(t, 320, h)

	now := time.Unix(50, 0)
	assert.True(t, v.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), now))
	f := v.step(now)
	require.Len(t, f.Events, 1)
	assert.Equal(t, "hit", f.Events[0].Key)

	r, _, _, _ := screen.GetContent(1, 20)
	assert.Equal(t, 'H', r, "status line starts with the HUD")

	assert.False(t, v.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), now))
}
