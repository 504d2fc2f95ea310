package sim

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// CellKind identifies what occupies a grid cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota // open floor
	CellWall                  // solid, blocks movement, rays and sight
)

// Tile characters accepted by LoadMap.
const (
	tileWall   = '1'
	tileEmpty  = '.'
	tileSpawn  = 'P' // optional player spawn
	tileGrunt  = '2'
	tileBrute  = '3'
	tileElite  = 'E'
	defaultSpX = 2.5
	defaultSpY = 2.5
)

// Load-time errors. LoadMap wraps them with row/column context.
var (
	ErrEmptyMap       = errors.New("map has no rows")
	ErrRaggedRow      = errors.New("map row width differs from first row")
	ErrUnknownTile    = errors.New("unrecognised tile")
	ErrDuplicateSpawn = errors.New("more than one player spawn")
	ErrBlockedSpawn   = errors.New("player spawn overlaps a wall")
)

// DefaultLevel is the single built-in arena.
var DefaultLevel = []string{
	"111111111111111111",
	"1...........2....1",
	"1..111..1........1",
	"1..1....1..11....1",
	"1..1....1........1",
	"1..1....1111.....1",
	"1............3...1",
	"1..1111..........1",
	"1..1..1..111.....1",
	"1..1..1..........1",
	"1..1..1111..111..1",
	"1............1...1",
	"1..2........1...31",
	"1...........1....1",
	"1....111.........1",
	"1..............E.1",
	"1................1",
	"111111111111111111",
}

// GridMap is the static tile grid. It is immutable once loaded.
type GridMap struct {
	Cols  int
	Rows  int
	cells []CellKind // row-major
}

// Spawn is the player's starting pose.
type Spawn struct {
	X, Y  float64
	Angle float64
}

// NewGridMap creates an all-empty grid of cols×rows.
func NewGridMap(cols, rows int) *GridMap {
	return &GridMap{
		Cols:  cols,
		Rows:  rows,
		cells: make([]CellKind, cols*rows),
	}
}

// LoadMap parses tile rows into a grid, the enemies placed by spawn markers,
// and the player spawn. Markers are replaced with empty floor.
func LoadMap(rows []string) (*GridMap, []*Enemy, Spawn, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil, Spawn{}, ErrEmptyMap
	}
	cols := len(rows[0])
	gm := NewGridMap(cols, len(rows))
	var enemies []*Enemy
	spawn := Spawn{X: defaultSpX, Y: defaultSpY}
	spawnSet := false

	for y, row := range rows {
		if len(row) != cols {
			return nil, nil, Spawn{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRow, y, len(row), cols)
		}
		for x := 0; x < cols; x++ {
			switch ch := row[x]; ch {
			case tileWall:
				gm.set(x, y, CellWall)
			case tileEmpty:
			case tileSpawn:
				if spawnSet {
					return nil, nil, Spawn{}, fmt.Errorf("%w: second marker at (%d,%d)", ErrDuplicateSpawn, x, y)
				}
				spawn = Spawn{X: float64(x) + 0.5, Y: float64(y) + 0.5}
				spawnSet = true
			case tileGrunt, tileBrute, tileElite:
				enemies = append(enemies, NewEnemy(len(enemies), enemyKindForTile(ch), float64(x)+0.5, float64(y)+0.5))
			default:
				return nil, nil, Spawn{}, fmt.Errorf("%w %q at (%d,%d)", ErrUnknownTile, ch, x, y)
			}
		}
	}

	if !canMove(gm, spawn.X, spawn.Y, DefaultConfig().PlayerPad) {
		return nil, nil, Spawn{}, fmt.Errorf("%w: (%.2f,%.2f)", ErrBlockedSpawn, spawn.X, spawn.Y)
	}
	return gm, enemies, spawn, nil
}

func (gm *GridMap) inBounds(col, row int) bool {
	return col >= 0 && col < gm.Cols && row >= 0 && row < gm.Rows
}

func (gm *GridMap) set(col, row int, k CellKind) {
	if gm.inBounds(col, row) {
		gm.cells[row*gm.Cols+col] = k
	}
}

// Cell returns the kind of the cell at (col,row). Out-of-bounds cells are walls.
func (gm *GridMap) Cell(col, row int) CellKind {
	if !gm.inBounds(col, row) {
		return CellWall
	}
	return gm.cells[row*gm.Cols+col]
}

// IsWall reports whether the continuous point (x,y) lies in a wall cell.
// Points outside the grid count as walls.
func (gm *GridMap) IsWall(x, y float64) bool {
	return gm.Cell(int(math.Floor(x)), int(math.Floor(y))) == CellWall
}

// Minimap colours.
var (
	minimapWallColor   = color.NRGBA{R: 0x3a, G: 0x3f, B: 0x47, A: 0xff}
	minimapEmptyColor  = color.NRGBA{R: 0x13, G: 0x16, B: 0x1b, A: 0xff}
	minimapEnemyColor  = color.NRGBA{R: 0xff, G: 0x64, B: 0x64, A: 0xff}
	minimapPlayerColor = color.NRGBA{R: 0x9e, G: 0xe3, B: 0x7d, A: 0xff}
)

// MinimapCell is one filled square of the minimap, in grid units.
type MinimapCell struct {
	Col, Row int
	Wall     bool
	Color    color.NRGBA
}

// minimapCells lists every grid cell with its minimap colour.
func (gm *GridMap) minimapCells() []MinimapCell {
	out := make([]MinimapCell, 0, gm.Cols*gm.Rows)
	for row := 0; row < gm.Rows; row++ {
		for col := 0; col < gm.Cols; col++ {
			wall := gm.Cell(col, row) == CellWall
			c := minimapEmptyColor
			if wall {
				c = minimapWallColor
			}
			out = append(out, MinimapCell{Col: col, Row: row, Wall: wall, Color: c})
		}
	}
	return out
}
