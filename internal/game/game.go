package game

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/Demon-Corridor/internal/sim"
)

// flashTicks is how long a status message stays on screen.
const flashTicks = 120

// Game adapts a sim.Sim to ebiten. Update feeds wall-clock deltas and the
// accumulated input into Tick; Draw paints the last frame.
type Game struct {
	sim   *sim.Sim
	input sim.InputAccumulator
	touch touchState
	feed  *EventFeed
	frame sim.Frame
	face  *text.GoTextFace

	last      time.Time
	dragging  bool
	lastDragX int
	showFeed  bool

	status      string
	statusUntil int
}

// New builds a game over level using cfg.
func New(cfg sim.Config, level []string) (*Game, error) {
	s, err := sim.NewSim(cfg, level)
	if err != nil {
		return nil, err
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load hud font: %w", err)
	}
	g := &Game{
		sim:      s,
		feed:     NewEventFeed(),
		face:     &text.GoTextFace{Source: src, Size: hudFontSize},
		showFeed: true,
	}
	g.frame = s.Render()
	return g, nil
}

func (g *Game) Update() error {
	now := time.Now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	g.handleInput()
	g.frame = g.sim.Tick(dt, g.input.Snapshot())
	for _, e := range g.frame.Events {
		g.feed.Add(e)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	f := g.frame
	drawFrame(screen, f)
	drawMinimap(screen, f.Minimap, f.Width)
	drawHUD(screen, f.HUD, g.face, f.Height)
	if g.touch.used {
		drawTouchPad(screen, touchLayout(f.Width, f.Height))
	}
	if g.showFeed {
		g.feed.Draw(screen, minimapMargin, minimapMargin)
	}
	if g.status != "" && g.sim.TickCount() < g.statusUntil {
		ebitenutil.DebugPrintAt(screen, g.status, f.Width/2-3*len(g.status), minimapMargin)
	}
}

// Layout resizes the projection to the window, so the column count follows
// the window width.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sim.SetViewport(outsideWidth, outsideHeight)
	return g.sim.Viewport()
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusUntil = g.sim.TickCount() + flashTicks
}
