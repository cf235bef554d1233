package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"
)

// Initializer supplies the starting state of each cell
type Initializer func(p Point) Cell

// Grid is a fixed-size, bounded board of cells stored row-major
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

// NewGrid creates a width x height grid, filling each cell from init.
// A nil init leaves every cell dead.
func NewGrid(width, height int, init Initializer) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] %dx%d", width, height)
	}
	g := blankGrid(width, height)
	if init != nil {
		for y := range height {
			for x := range width {
				g.cells[y][x] = init(Point{X: x, Y: y})
			}
		}
	}
	return g, nil
}

// NewBlankGrid creates an all-dead grid with the same dimensions as g
func NewBlankGrid(like *Grid) *Grid {
	return blankGrid(like.width, like.height)
}

func blankGrid(width, height int) *Grid {
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Contains reports whether p lies inside the grid
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// CellAt returns the cell at p
func (g *Grid) CellAt(p Point) (Cell, error) {
	if !g.Contains(p) {
		return Cell{}, errors.Wrapf(ErrOutOfBounds, "[CellAt] %v in %dx%d grid", p, g.width, g.height)
	}
	return g.cells[p.Y][p.X], nil
}

// Set sets a cell to alive (true) or dead (false); points outside the grid are ignored
func (g *Grid) Set(x, y int, alive bool) {
	if x >= 0 && x < g.width && y >= 0 && y < g.height {
		g.cells[y][x] = Cell{Live: alive}
	}
}

// Get returns the state of a cell; points outside the grid read as dead
func (g *Grid) Get(x, y int) bool {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return false
	}
	return g.cells[y][x].Live
}

// CountNeighbors counts living cells in the Moore neighborhood of p.
// Offsets falling outside the grid are skipped, there is no wraparound.
func (g *Grid) CountNeighbors(p Point) int {
	count := 0
	for _, off := range mooreOffsets {
		n := p.Add(off)
		if !g.Contains(n) {
			continue
		}
		if g.cells[n.Y][n.X].Live {
			count++
		}
	}
	return count
}

// ForEachCell visits every cell once in row-major order
func ForEachCell(g *Grid, visit func(Cell, Point)) {
	for y := range g.height {
		for x := range g.width {
			visit(g.cells[y][x], Point{X: x, Y: y})
		}
	}
}

// Clear kills all cells
func (g *Grid) Clear() {
	for y := range g.height {
		for x := range g.width {
			g.cells[y][x] = DeadCell
		}
	}
}

// Clone returns a deep copy of g
func (g *Grid) Clone() *Grid {
	c := blankGrid(g.width, g.height)
	for y := range g.height {
		copy(c.cells[y], g.cells[y])
	}
	return c
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x].Live {
				count++
			}
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x].Live {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// reset resizes the grid to new dimensions, killing every cell
func (g *Grid) reset(width, height int) {
	g.width = width
	g.height = height

	if len(g.cells) != height {
		g.cells = make([][]Cell, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]Cell, width)
		} else {
			clear(g.cells[i])
		}
	}
}
