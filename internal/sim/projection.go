package sim

import (
	"fmt"
	"image/color"
	"math"
	"sort"
)

const (
	wallAlpha       = 0.85
	seamMaxAlpha    = 0.25
	seamPerUnit     = 0.005
	spriteScale     = 1.4 * 1.8
	spriteLift      = 0.9 // sprite top sits this many sizes above the horizon
	spriteMinAlpha  = 0.15
	spriteFadeDepth = 0.9 // fraction of MaxDepth where sprites reach min alpha
	shadowOffset    = 0.4
	shadowHeight    = 0.15
	crosshairArm    = 10
	headingTickLen  = 0.8
	markerRadiusPx  = 3
)

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// WallStrip is one shaded vertical wall slice.
type WallStrip struct {
	Column    int
	Rect      Rect
	Color     color.NRGBA
	Side      WallSide
	Distance  float64 // fisheye-corrected
	SeamAlpha float64 // darkening of the 1-px seam at Rect.X
}

// Sprite is a projected enemy billboard.
type Sprite struct {
	EnemyID  int
	Kind     EnemyKind
	Rect     Rect
	Color    color.NRGBA // alpha fades with distance
	Shadow   Rect
	ShadowA  float64
	Distance float64
	Offset   float64 // angle from the view direction
}

// HUDStats are the numbers shown in the status line.
type HUDStats struct {
	Health  int
	Ammo    int
	Enemies int
	Dead    bool
	Cleared bool
}

func (h HUDStats) String() string {
	s := fmt.Sprintf("HP %d  •  Ammo %d  •  Demons %d", h.Health, h.Ammo, h.Enemies)
	switch {
	case h.Dead:
		s += "  •  YOU DIED"
	case h.Cleared:
		s += "  •  CLEARED"
	}
	return s
}

// MinimapMarker is a dot on the minimap in grid units.
type MinimapMarker struct {
	X, Y   float64
	Color  color.NRGBA
	Radius float64 // pixels on the minimap surface
}

// Minimap describes the overview map in grid units; the drawing surface
// scales it to whatever size it likes.
type Minimap struct {
	Cols, Rows int
	Cells      []MinimapCell
	Enemies    []MinimapMarker
	Player     MinimapMarker
	HeadingX   float64 // end of the heading tick, grid units
	HeadingY   float64
}

// Crosshair is the centre reticle.
type Crosshair struct {
	CX, CY float64
	Arm    float64
	Width  float64
	Color  color.NRGBA
}

// Background holds the ceiling and floor gradients split at Horizon.
type Background struct {
	Horizon               float64
	CeilTop, CeilBottom   color.NRGBA
	FloorTop, FloorBottom color.NRGBA
}

// Frame is everything a drawing surface needs for one tick.
type Frame struct {
	Width, Height int
	Background    Background
	Walls         []WallStrip // column order
	Sprites       []Sprite    // farthest first
	Crosshair     Crosshair
	HUD           HUDStats
	Minimap       Minimap
	Events        []SimLogEntry
}

// Render projects the current state without advancing time.
func (s *Sim) Render() Frame {
	return s.project()
}

func (s *Sim) project() Frame {
	w, h := float64(s.width), float64(s.height)
	half := float64(s.height >> 1)
	return Frame{
		Width:  s.width,
		Height: s.height,
		Background: Background{
			Horizon:     half,
			CeilTop:     color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0e, A: 0xff},
			CeilBottom:  color.NRGBA{R: 0x0d, G: 0x0f, B: 0x17, A: 0xff},
			FloorTop:    color.NRGBA{R: 0x0d, G: 0x0f, B: 0x17, A: 0xff},
			FloorBottom: color.NRGBA{R: 0x10, G: 0x15, B: 0x1c, A: 0xff},
		},
		Walls:   s.projectWalls(w, h, half),
		Sprites: s.projectSprites(w, h),
		Crosshair: Crosshair{
			CX:    w / 2,
			CY:    h / 2,
			Arm:   crosshairArm,
			Width: 2,
			Color: color.NRGBA{R: 255, G: 255, B: 255, A: alpha8(0.4)},
		},
		HUD:     s.hud(),
		Minimap: s.projectMinimap(),
	}
}

func (s *Sim) projectWalls(w, h, half float64) []WallStrip {
	p := s.Player
	n := ColumnCount(s.width)
	colW := w / float64(n)
	proj := s.cfg.projPlane(h)
	rays := CastColumns(s.Grid, s.cfg, p.X, p.Y, p.Angle, n, s.cfg.ParallelColumns)

	strips := make([]WallStrip, n)
	for i, r := range rays {
		wallH := math.Min(h, (s.cfg.WallSize/r.Corrected)*proj)
		strips[i] = WallStrip{
			Column: i,
			Rect: Rect{
				X: math.Floor(float64(i) * colW),
				Y: half - wallH/2,
				W: math.Ceil(colW + 1),
				H: wallH,
			},
			Color:     wallColor(r.Hit.Side, wallShade(r.Corrected, s.cfg.MaxDepth)),
			Side:      r.Hit.Side,
			Distance:  r.Corrected,
			SeamAlpha: math.Min(seamMaxAlpha, seamPerUnit*r.Corrected),
		}
	}
	return strips
}

// wallShade is 1 at the eye and falls off linearly to 0 at maxDepth.
func wallShade(corrected, maxDepth float64) float64 {
	return math.Max(0, 1-corrected/maxDepth)
}

func wallColor(side WallSide, shade float64) color.NRGBA {
	r := uint8(200)
	if side == SideHorizontal {
		r = 170
	}
	return color.NRGBA{
		R: r,
		G: uint8(math.Floor(120 + 50*shade)),
		B: uint8(math.Floor(140 + 20*shade)),
		A: alpha8(wallAlpha),
	}
}

func (s *Sim) projectSprites(w, h float64) []Sprite {
	p := s.Player
	proj := s.cfg.projPlane(h)
	cone := s.cfg.spriteHalfCone()
	out := make([]Sprite, 0, len(s.Enemies))
	for _, e := range s.Enemies {
		off, dist := AngleOffset(p.X, p.Y, p.Angle, e.X, e.Y)
		if math.Abs(off) >= cone {
			continue
		}
		size := h
		if dist > 0 {
			size = math.Min(h, (spriteScale/dist)*proj)
		}
		cx := (off/s.cfg.FOV + 0.5) * w
		top := h/2 - size*spriteLift
		c := e.Color
		c.A = alpha8(math.Max(spriteMinAlpha, 1-dist/(s.cfg.MaxDepth*spriteFadeDepth)))
		out = append(out, Sprite{
			EnemyID:  e.ID,
			Kind:     e.Kind,
			Rect:     Rect{X: cx - size/2, Y: top, W: size, H: size},
			Color:    c,
			Shadow:   Rect{X: cx - size/2, Y: top + size*shadowOffset, W: size, H: size * shadowHeight},
			ShadowA:  math.Min(0.5, 0.2+dist*0.02),
			Distance: dist,
			Offset:   off,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance > out[j].Distance
	})
	return out
}

func (s *Sim) hud() HUDStats {
	return HUDStats{
		Health:  int(math.Round(s.Player.Health)),
		Ammo:    s.Player.Ammo,
		Enemies: len(s.Enemies),
		Dead:    !s.Player.Alive(),
		Cleared: len(s.Enemies) == 0,
	}
}

func (s *Sim) projectMinimap() Minimap {
	p := s.Player
	sin, cos := math.Sincos(p.Angle)
	mm := Minimap{
		Cols:     s.Grid.Cols,
		Rows:     s.Grid.Rows,
		Cells:    s.minimap,
		Enemies:  make([]MinimapMarker, 0, len(s.Enemies)),
		Player:   MinimapMarker{X: p.X, Y: p.Y, Color: minimapPlayerColor, Radius: markerRadiusPx},
		HeadingX: p.X + cos*headingTickLen,
		HeadingY: p.Y + sin*headingTickLen,
	}
	for _, e := range s.Enemies {
		mm.Enemies = append(mm.Enemies, MinimapMarker{X: e.X, Y: e.Y, Color: minimapEnemyColor, Radius: markerRadiusPx})
	}
	return mm
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}
