// Package termview draws sim frames as coloured text in a terminal.
package termview

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Demon-Corridor/internal/sim"
)

// Each terminal cell stands for a block of virtual pixels, roughly matching
// a glyph's aspect ratio so walls keep their proportions.
const (
	CellW = 8
	CellH = 16
)

// wallRamp runs from nearest to farthest.
var wallRamp = []rune{'█', '▓', '▒', '░', '·'}

const (
	ceilRune   = ' '
	floorRune  = '.'
	spriteRune = '@'
	crossRune  = '+'
)

// Cell is one rasterised terminal cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// ViewportFor returns the virtual pixel size used for a cols×rows area.
func ViewportFor(cols, rows int) (int, int) {
	return max(1, cols) * CellW, max(1, rows) * CellH
}

// ShadeRune picks the wall glyph for a corrected distance.
func ShadeRune(dist, maxDepth float64) rune {
	if !(maxDepth > 0) {
		return wallRamp[0]
	}
	i := int(dist / maxDepth * float64(len(wallRamp)))
	return wallRamp[max(0, min(len(wallRamp)-1, i))]
}

func tc(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// dim scales a colour's RGB by its alpha, standing in for blending over black.
func dim(c color.NRGBA) color.NRGBA {
	a := float64(c.A) / 255
	return color.NRGBA{
		R: uint8(math.Round(float64(c.R) * a)),
		G: uint8(math.Round(float64(c.G) * a)),
		B: uint8(math.Round(float64(c.B) * a)),
		A: 255,
	}
}

// Rasterize samples f at the centre of each cell of a cols×rows grid. The
// frame must have been projected at ViewportFor(cols, rows).
func Rasterize(f sim.Frame, maxDepth float64, cols, rows int) [][]Cell {
	out := make([][]Cell, rows)
	bg := f.Background
	ceil := tcell.StyleDefault.Background(tc(bg.CeilBottom))
	floor := tcell.StyleDefault.Foreground(tc(bg.FloorBottom)).Background(tc(bg.FloorTop))

	n := len(f.Walls)
	for y := 0; y < rows; y++ {
		out[y] = make([]Cell, cols)
		py := float64(y*CellH) + CellH/2
		for x := 0; x < cols; x++ {
			px := float64(x*CellW) + CellW/2
			c := Cell{Ch: ceilRune, Style: ceil}
			if py >= bg.Horizon {
				c = Cell{Ch: floorRune, Style: floor}
			}
			if n > 0 {
				i := min(n-1, int(px*float64(n)/float64(f.Width)))
				s := f.Walls[i]
				if py >= s.Rect.Y && py < s.Rect.Y+s.Rect.H {
					c = Cell{
						Ch:    ShadeRune(s.Distance, maxDepth),
						Style: tcell.StyleDefault.Foreground(tc(dim(s.Color))).Background(tcell.ColorBlack),
					}
				}
			}
			out[y][x] = c
		}
	}

	// Farthest first, so nearer sprites overwrite.
	for _, sp := range f.Sprites {
		style := tcell.StyleDefault.Foreground(tc(dim(sp.Color))).Background(tcell.ColorBlack)
		for y := 0; y < rows; y++ {
			py := float64(y*CellH) + CellH/2
			if py < sp.Rect.Y || py >= sp.Rect.Y+sp.Rect.H {
				continue
			}
			for x := 0; x < cols; x++ {
				px := float64(x*CellW) + CellW/2
				if px >= sp.Rect.X && px < sp.Rect.X+sp.Rect.W {
					out[y][x] = Cell{Ch: spriteRune, Style: style}
				}
			}
		}
	}

	cx := int(f.Crosshair.CX) / CellW
	cy := int(f.Crosshair.CY) / CellH
	if cy >= 0 && cy < rows && cx >= 0 && cx < cols {
		out[cy][cx] = Cell{Ch: crossRune, Style: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)}
	}
	return out
}

// minimapRunes renders the overview one cell per tile.
func minimapRunes(mm sim.Minimap) [][]rune {
	grid := make([][]rune, mm.Rows)
	for r := range grid {
		grid[r] = make([]rune, mm.Cols)
	}
	for _, c := range mm.Cells {
		ch := ' '
		if c.Wall {
			ch = '#'
		}
		grid[c.Row][c.Col] = ch
	}
	put := func(x, y float64, ch rune) {
		col, row := int(x), int(y)
		if row >= 0 && row < mm.Rows && col >= 0 && col < mm.Cols {
			grid[row][col] = ch
		}
	}
	for _, e := range mm.Enemies {
		put(e.X, e.Y, 'd')
	}
	put(mm.Player.X, mm.Player.Y, headingRune(mm))
	return grid
}

// headingRune points the player marker along the view direction.
func headingRune(mm sim.Minimap) rune {
	dx := mm.HeadingX - mm.Player.X
	dy := mm.HeadingY - mm.Player.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return '>'
		}
		return '<'
	}
	if dy >= 0 {
		return 'v'
	}
	return '^'
}
