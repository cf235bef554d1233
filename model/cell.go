package model

import "fmt"

// Cell is the state of a single grid position
type Cell struct {
	Live bool
}

var (
	// LiveCell is an alive cell
	LiveCell = Cell{Live: true}
	// DeadCell is a dead cell
	DeadCell = Cell{}
)

// Point addresses a cell: X is the column, Y is the row, both zero-based
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p offset by q
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// mooreOffsets are the eight neighbor offsets around a cell
var mooreOffsets = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}
