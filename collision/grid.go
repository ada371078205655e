package collision

import (
	"fmt"
	"math"
)

// Tiles is the read-only view of a tile grid handed to entities and AI.
type Tiles interface {
	Kind(cx, cy int) TileKind
	Code(cx, cy int) int
	TileSize() float64
	Size() (w, h int)
}

// Grid is a fixed-size row-major tile map. Its dimensions never change; the
// only runtime mutation is Clear.
type Grid struct {
	width    int
	height   int
	tileSize float64
	cells    []int
}

// NewGrid copies cells into a new grid. len(cells) must equal width*height.
func NewGrid(width, height int, tileSize float64, cells []int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("collision: grid size %dx%d", width, height)
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("collision: tile size %v", tileSize)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("collision: %d cells for %dx%d grid", len(cells), width, height)
	}
	return &Grid{
		width:    width,
		height:   height,
		tileSize: tileSize,
		cells:    append([]int(nil), cells...),
	}, nil
}

func (g *Grid) TileSize() float64 { return g.tileSize }

func (g *Grid) Size() (w, h int) { return g.width, g.height }

// PixelSize returns the level extent in world units.
func (g *Grid) PixelSize() (w, h float64) {
	return float64(g.width) * g.tileSize, float64(g.height) * g.tileSize
}

func (g *Grid) inBounds(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < g.width && cy < g.height
}

// Code returns the raw tile code, or CodeEmpty outside the grid.
func (g *Grid) Code(cx, cy int) int {
	if !g.inBounds(cx, cy) {
		return CodeEmpty
	}
	return g.cells[cy*g.width+cx]
}

// Kind returns the collision class of a cell. Reads outside the grid never
// fail: the sides and the floor are solid, the sky above is open.
func (g *Grid) Kind(cx, cy int) TileKind {
	if cx < 0 || cx >= g.width {
		return TileSolid
	}
	if cy < 0 {
		return TileEmpty
	}
	if cy >= g.height {
		return TileSolid
	}
	return Classify(g.cells[cy*g.width+cx])
}

// Clear empties a cell. It reports whether the cell changed.
func (g *Grid) Clear(cx, cy int) bool {
	if !g.inBounds(cx, cy) {
		return false
	}
	idx := cy*g.width + cx
	if g.cells[idx] == CodeEmpty {
		return false
	}
	g.cells[idx] = CodeEmpty
	return true
}

// CellAt converts a world point to cell coordinates.
func (g *Grid) CellAt(x, y float64) (cx, cy int) {
	return cellFloor(x, g.tileSize), cellFloor(y, g.tileSize)
}

// Each calls fn for every cell holding code.
func (g *Grid) Each(code int, fn func(cx, cy int)) {
	for i, c := range g.cells {
		if c == code {
			fn(i%g.width, i/g.width)
		}
	}
}

func cellFloor(v, size float64) int {
	return int(math.Floor(v / size))
}

// cellSpan returns the inclusive cell range covered by [lo, hi). A box whose
// edge lies exactly on a cell boundary does not reach into the next cell.
func cellSpan(lo, hi, size float64) (int, int) {
	return cellFloor(lo, size), int(math.Ceil(hi/size)) - 1
}
