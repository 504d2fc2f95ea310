package sim

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// sideEdge is how close to a cell edge a hit must land to count as a face hit.
// Hits near a corner may still be tagged SideVertical because x is tested first.
const sideEdge = 0.02

// WallSide classifies which face of a wall cell a ray struck. Shading only.
type WallSide uint8

const (
	SideHorizontal WallSide = iota // y-fraction near a cell edge
	SideCorner                     // neither fraction near an edge
	SideVertical                   // x-fraction near a cell edge
)

func (s WallSide) String() string {
	switch s {
	case SideVertical:
		return "vertical"
	case SideHorizontal:
		return "horizontal"
	case SideCorner:
		return "corner"
	default:
		return "unknown"
	}
}

// RayHit is the result of marching one ray.
type RayHit struct {
	Distance   float64 // raw distance travelled; maxDepth when nothing was hit
	HitX, HitY float64
	Side       WallSide
	Hit        bool
}

// CastRay marches from (ox,oy) along angle in fixed steps until a wall is
// found or maxDepth is exceeded. The result is fully deterministic.
func CastRay(gm *GridMap, ox, oy, angle, step, maxDepth float64) RayHit {
	sin, cos := math.Sincos(angle)
	for i := 1; ; i++ {
		dist := float64(i) * step
		if dist > maxDepth {
			break
		}
		hx := ox + cos*dist
		hy := oy + sin*dist
		if gm.IsWall(hx, hy) {
			return RayHit{
				Distance: dist,
				HitX:     hx,
				HitY:     hy,
				Side:     classifySide(hx, hy),
				Hit:      true,
			}
		}
	}
	return RayHit{
		Distance: maxDepth,
		HitX:     ox + cos*maxDepth,
		HitY:     oy + sin*maxDepth,
	}
}

func classifySide(hx, hy float64) WallSide {
	fx := hx - math.Floor(hx)
	fy := hy - math.Floor(hy)
	switch {
	case fx < sideEdge || fx > 1-sideEdge:
		return SideVertical
	case fy < sideEdge || fy > 1-sideEdge:
		return SideHorizontal
	default:
		return SideCorner
	}
}

// CorrectFisheye projects a raw ray distance onto the view direction.
func CorrectFisheye(dist, rayAngle, viewAngle float64) float64 {
	return dist * math.Cos(rayAngle-viewAngle)
}

// ColumnCount is the number of ray columns for a viewport width.
func ColumnCount(width int) int {
	n := int(math.Floor(180 * float64(width) / 800))
	if n < 1 {
		n = 1
	}
	return n
}

// ColumnRay is one cast screen column.
type ColumnRay struct {
	Angle     float64
	Hit       RayHit
	Corrected float64
}

// columnAngle is the ray angle of column i out of n for a view heading.
func columnAngle(heading, fov float64, i, n int) float64 {
	return heading - fov/2 + (float64(i)/float64(n))*fov
}

// CastColumns casts n evenly spaced rays across the field of view. When
// parallel is set the columns are split into chunks cast on an errgroup;
// every worker writes only its own slots, so the output matches a
// sequential cast exactly.
func CastColumns(gm *GridMap, cfg Config, x, y, heading float64, n int, parallel bool) []ColumnRay {
	out := make([]ColumnRay, n)
	castRange := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			a := columnAngle(heading, cfg.FOV, i, n)
			hit := CastRay(gm, x, y, a, cfg.RayStep, cfg.MaxDepth)
			out[i] = ColumnRay{
				Angle:     a,
				Hit:       hit,
				Corrected: CorrectFisheye(hit.Distance, a, heading),
			}
		}
	}
	if !parallel || n < 2 {
		castRange(0, n)
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var eg errgroup.Group
	eg.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		eg.Go(func() error {
			castRange(lo, hi)
			return nil
		})
	}
	_ = eg.Wait()
	return out
}
