package model

import "math/rand/v2"

// Random returns a deterministic initializer where each cell is alive with the given probability
func Random(seed int64, density float64) Initializer {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	return func(Point) Cell {
		return Cell{Live: rng.Float64() < density}
	}
}

// FromPoints makes exactly the listed points alive
func FromPoints(points ...Point) Initializer {
	live := make(map[Point]struct{}, len(points))
	for _, p := range points {
		live[p] = struct{}{}
	}
	return func(p Point) Cell {
		_, ok := live[p]
		return Cell{Live: ok}
	}
}

// FromRows reads a pattern, one rune per column, where '#', 'O' or '*' mark live cells, row y being rows[y]
func FromRows(rows ...string) Initializer {
	var points []Point
	for y, row := range rows {
		x := 0
		for _, c := range row {
			if c == '#' || c == 'O' || c == '*' {
				points = append(points, Point{X: x, Y: y})
			}
			x++
		}
	}
	return FromPoints(points...)
}

// Compose makes a cell alive when any of the initializers does.
// Every initializer is called for every point so stateful ones stay in step.
func Compose(inits ...Initializer) Initializer {
	return func(p Point) Cell {
		live := false
		for _, init := range inits {
			if init(p).Live {
				live = true
			}
		}
		return Cell{Live: live}
	}
}

// Pattern is a set of live offsets relative to an origin
type Pattern []Point

var (
	// Glider moves one cell diagonally every four generations under B3/S23
	Glider = Pattern{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	// Blinker is a horizontal period-2 oscillator
	Blinker = Pattern{{0, 0}, {1, 0}, {2, 0}}
	// Block is a 2x2 still life
	Block = Pattern{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
)

// At places the pattern with its origin at p
func (pt Pattern) At(p Point) Initializer {
	points := make([]Point, len(pt))
	for i, off := range pt {
		points[i] = p.Add(off)
	}
	return FromPoints(points...)
}

// InterestingPatterns scatters gliders and blinkers over a width x height board
func InterestingPatterns(width, height int) Initializer {
	var inits []Initializer
	if width >= 10 && height >= 10 {
		inits = append(inits, Glider.At(Pt(5, 5)))
		if width >= 20 && height >= 15 {
			inits = append(inits, Glider.At(Pt(width-8, 5)))
		}

		inits = append(inits, Blinker.At(Pt(width/4, height/4)))
		if width >= 30 {
			inits = append(inits, Blinker.At(Pt(3*width/4, 3*height/4)))
		}
	}
	return Compose(inits...)
}
