package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Demon-Corridor/internal/sim"
)

// touchAction is what an on-screen control does while pressed.
type touchAction int

const (
	touchNone touchAction = iota
	touchMoveF
	touchMoveB
	touchStrafeL
	touchStrafeR
	touchTurnL
	touchTurnR
	touchFire
	touchLook
)

// touchButton is one on-screen control in viewport pixels.
type touchButton struct {
	action touchAction
	rect   sim.Rect
	label  string
}

func (b touchButton) contains(x, y float64) bool {
	return x >= b.rect.X && x < b.rect.X+b.rect.W && y >= b.rect.Y && y < b.rect.Y+b.rect.H
}

// touchLayout places the controls for a w×h viewport: a movement pad
// bottom-left flanked by the turn buttons, fire bottom-right, and the
// upper right of the screen as the drag-to-look zone.
func touchLayout(w, h int) []touchButton {
	fw, fh := float64(w), float64(h)
	s := min(fw, fh) * 0.12 // button edge
	gap := s * 0.15
	padX := gap*2 + s
	padY := fh - 3*s - 3*gap
	return []touchButton{
		{touchMoveF, sim.Rect{X: padX, Y: padY, W: s, H: s}, "W"},
		{touchStrafeL, sim.Rect{X: padX - s - gap, Y: padY + s + gap, W: s, H: s}, "Q"},
		{touchMoveB, sim.Rect{X: padX, Y: padY + s + gap, W: s, H: s}, "S"},
		{touchStrafeR, sim.Rect{X: padX + s + gap, Y: padY + s + gap, W: s, H: s}, "E"},
		{touchTurnL, sim.Rect{X: padX - s - gap, Y: padY, W: s, H: s}, "<"},
		{touchTurnR, sim.Rect{X: padX + s + gap, Y: padY, W: s, H: s}, ">"},
		{touchFire, sim.Rect{X: fw - 2*s - 2*gap, Y: fh - 2*s - 2*gap, W: 2 * s, H: 2 * s}, "FIRE"},
		{touchLook, sim.Rect{X: fw / 2, Y: 0, W: fw / 2, H: fh * 0.6}, ""},
	}
}

// actionAt returns the first control under (x,y).
func actionAt(buttons []touchButton, x, y float64) touchAction {
	for _, b := range buttons {
		if b.contains(x, y) {
			return b.action
		}
	}
	return touchNone
}

// applyTouchAction sets the intent flag held by act.
func applyTouchAction(in *sim.Intent, act touchAction) {
	switch act {
	case touchMoveF:
		in.MoveForward = true
	case touchMoveB:
		in.MoveBack = true
	case touchStrafeL:
		in.StrafeLeft = true
	case touchStrafeR:
		in.StrafeRight = true
	case touchTurnL:
		in.TurnLeft = true
	case touchTurnR:
		in.TurnRight = true
	case touchFire:
		in.Fire = true
	}
}

// touchState tracks the one touch that is dragging the view.
type touchState struct {
	ids       []ebiten.TouchID
	fresh     []ebiten.TouchID
	looking   bool
	lookID    ebiten.TouchID
	lookLastX int
	used      bool // show the pad once the device has been touched
}

func (t *touchState) update(held *sim.Intent, acc *sim.InputAccumulator, buttons []touchButton, sens float64) {
	if t.looking && inpututil.IsTouchJustReleased(t.lookID) {
		t.looking = false
	}
	t.fresh = inpututil.AppendJustPressedTouchIDs(t.fresh[:0])
	for _, id := range t.fresh {
		t.used = true
		x, y := ebiten.TouchPosition(id)
		if !t.looking && actionAt(buttons, float64(x), float64(y)) == touchLook {
			t.looking = true
			t.lookID = id
			t.lookLastX = x
		}
	}

	t.ids = ebiten.AppendTouchIDs(t.ids[:0])
	for _, id := range t.ids {
		x, y := ebiten.TouchPosition(id)
		if t.looking && id == t.lookID {
			acc.AddLook(float64(x-t.lookLastX) * sens)
			t.lookLastX = x
			continue
		}
		applyTouchAction(held, actionAt(buttons, float64(x), float64(y)))
	}
}

// handleInput folds this frame's keyboard, mouse and touch state into the
// accumulator that the next tick snapshots.
func (g *Game) handleInput() {
	cfg := g.sim.Config()
	held := sim.Intent{
		MoveForward: ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		MoveBack:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyQ),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyE),
		TurnLeft:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		TurnRight:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Fire:        ebiten.IsKeyPressed(ebiten.KeySpace),
	}

	// Drag to look, click to fire.
	mx, _ := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			g.input.AddLook(float64(mx-g.lastDragX) * cfg.MouseLookSens)
		}
		g.dragging = true
		g.lastDragX = mx
	} else {
		g.dragging = false
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && !g.touch.used {
		g.input.Click()
	}

	w, h := g.sim.Viewport()
	g.touch.update(&held, &g.input, touchLayout(w, h), cfg.TouchLookSens)
	g.input.SetHeld(held)

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showFeed = !g.showFeed
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.copyDebugReport()
	}
}
