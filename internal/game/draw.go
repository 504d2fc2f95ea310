package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Demon-Corridor/internal/sim"
)

const (
	gradientBands = 32
	minimapSize   = 180
	minimapMargin = 12
	hudFontSize   = 18
	hudMargin     = 14
)

var (
	seamColor    = color.NRGBA{A: 255}
	shadowColor  = color.NRGBA{A: 255}
	hudBoxColor  = color.RGBA{R: 8, G: 9, B: 12, A: 170}
	padFillColor = color.RGBA{R: 255, G: 255, B: 255, A: 28}
	padEdgeColor = color.RGBA{R: 255, G: 255, B: 255, A: 70}
)

// lerpNRGBA blends a toward b by t in [0,1].
func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// withAlpha returns c with its alpha replaced by a in [0,1].
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a*255 + 0.5)
	return c
}

func fillGradient(dst *ebiten.Image, y0, y1, w float32, top, bottom color.NRGBA) {
	bh := (y1 - y0) / gradientBands
	for i := 0; i < gradientBands; i++ {
		t := (float64(i) + 0.5) / gradientBands
		vector.FillRect(dst, 0, y0+float32(i)*bh, w, bh+1, lerpNRGBA(top, bottom, t), false)
	}
}

func fillRect(dst *ebiten.Image, r sim.Rect, c color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// drawFrame paints a projected frame: background, walls, sprites, crosshair.
func drawFrame(screen *ebiten.Image, f sim.Frame) {
	w := float32(f.Width)
	bg := f.Background
	fillGradient(screen, 0, float32(bg.Horizon), w, bg.CeilTop, bg.CeilBottom)
	fillGradient(screen, float32(bg.Horizon), float32(f.Height), w, bg.FloorTop, bg.FloorBottom)

	for _, s := range f.Walls {
		fillRect(screen, s.Rect, s.Color)
		vector.FillRect(screen, float32(s.Rect.X), float32(s.Rect.Y), 1, float32(s.Rect.H), withAlpha(seamColor, s.SeamAlpha), false)
	}

	for _, sp := range f.Sprites {
		fillRect(screen, sp.Rect, sp.Color)
		fillRect(screen, sp.Shadow, withAlpha(shadowColor, sp.ShadowA))
	}

	c := f.Crosshair
	cx, cy, arm := float32(c.CX), float32(c.CY), float32(c.Arm)
	vector.StrokeLine(screen, cx-arm, cy, cx+arm, cy, float32(c.Width), c.Color, false)
	vector.StrokeLine(screen, cx, cy-arm, cx, cy+arm, float32(c.Width), c.Color, false)
}

// drawMinimap renders the overview in a fixed square at the top-right.
func drawMinimap(screen *ebiten.Image, mm sim.Minimap, viewW int) {
	if mm.Cols == 0 || mm.Rows == 0 {
		return
	}
	ox := float32(viewW - minimapSize - minimapMargin)
	oy := float32(minimapMargin)
	cw := float32(minimapSize) / float32(mm.Cols)
	ch := float32(minimapSize) / float32(mm.Rows)

	for _, c := range mm.Cells {
		vector.FillRect(screen, ox+float32(c.Col)*cw, oy+float32(c.Row)*ch, cw, ch, c.Color, false)
	}
	for _, e := range mm.Enemies {
		vector.FillCircle(screen, ox+float32(e.X)*cw, oy+float32(e.Y)*ch, float32(e.Radius), e.Color, true)
	}
	p := mm.Player
	px, py := ox+float32(p.X)*cw, oy+float32(p.Y)*ch
	vector.FillCircle(screen, px, py, float32(p.Radius), p.Color, true)
	vector.StrokeLine(screen, px, py, ox+float32(mm.HeadingX)*cw, oy+float32(mm.HeadingY)*ch, 1, p.Color, true)
}

// drawHUD draws the status line in the bottom-left corner.
func drawHUD(screen *ebiten.Image, hud sim.HUDStats, face text.Face, viewH int) {
	line := hud.String()
	tw, th := text.Measure(line, face, 0)
	x := float64(hudMargin)
	y := float64(viewH) - th - hudMargin
	vector.FillRect(screen, float32(x-6), float32(y-4), float32(tw+12), float32(th+8), hudBoxColor, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	switch {
	case hud.Dead:
		op.ColorScale.ScaleWithColor(color.RGBA{R: 255, G: 100, B: 100, A: 255})
	case hud.Cleared:
		op.ColorScale.ScaleWithColor(color.RGBA{R: 158, G: 227, B: 125, A: 255})
	default:
		op.ColorScale.ScaleWithColor(color.White)
	}
	text.Draw(screen, line, face, op)
}

// drawTouchPad outlines the on-screen controls.
func drawTouchPad(screen *ebiten.Image, buttons []touchButton) {
	for _, b := range buttons {
		if b.action == touchLook {
			continue
		}
		fillRect(screen, b.rect, padFillColor)
		vector.StrokeRect(screen, float32(b.rect.X), float32(b.rect.Y), float32(b.rect.W), float32(b.rect.H), 1, padEdgeColor, false)
		ebitenutil.DebugPrintAt(screen, b.label, int(b.rect.X+b.rect.W/2)-3*len(b.label), int(b.rect.Y+b.rect.H/2)-8)
	}
}
