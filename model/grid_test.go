package model

import (
	"errors"
	"testing"
)

func TestNewGridInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-3, 4}, {4, -3}, {0, 0}} {
		g, err := NewGrid(dims[0], dims[1], nil)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("NewGrid(%d, %d) error = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
		if g != nil {
			t.Fatalf("NewGrid(%d, %d) returned a grid alongside the error", dims[0], dims[1])
		}
	}
}

func TestNewGridInitializer(t *testing.T) {
	var seen []Point
	g, err := NewGrid(3, 2, func(p Point) Cell {
		seen = append(seen, p)
		return Cell{Live: p.X == p.Y}
	})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.GetWidth() != 3 || g.GetHeight() != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", g.GetWidth(), g.GetHeight())
	}
	if len(seen) != 6 {
		t.Fatalf("initializer called %d times, want 6", len(seen))
	}
	for y := range 2 {
		for x := range 3 {
			c, err := g.CellAt(Pt(x, y))
			if err != nil {
				t.Fatalf("CellAt(%d,%d): %v", x, y, err)
			}
			if c.Live != (x == y) {
				t.Fatalf("cell (%d,%d) live=%v", x, y, c.Live)
			}
		}
	}
}

func TestCellAtOutOfBounds(t *testing.T) {
	g, _ := NewGrid(2, 3, nil)
	for _, p := range []Point{{-1, 0}, {0, -1}, {2, 0}, {0, 3}, {5, 5}} {
		if _, err := g.CellAt(p); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("CellAt(%v) error = %v, want ErrOutOfBounds", p, err)
		}
	}
	if g.Get(-1, 0) || g.Get(2, 0) {
		t.Fatal("Get outside the grid must read as dead")
	}
}

func TestCountNeighborsCorner(t *testing.T) {
	// All four cells alive: the corner (0,0) only sees its three in-bounds neighbors.
	g, _ := NewGrid(2, 2, func(Point) Cell { return LiveCell })
	for _, p := range []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if n := g.CountNeighbors(p); n != 3 {
			t.Fatalf("CountNeighbors(%v) = %d, want 3", p, n)
		}
	}
}

func TestCountNeighborsInterior(t *testing.T) {
	g, _ := NewGrid(3, 3, func(Point) Cell { return LiveCell })
	if n := g.CountNeighbors(Pt(1, 1)); n != 8 {
		t.Fatalf("center neighbors = %d, want 8", n)
	}
	if n := g.CountNeighbors(Pt(1, 0)); n != 5 {
		t.Fatalf("edge neighbors = %d, want 5", n)
	}

	g.Set(1, 1, false)
	if n := g.CountNeighbors(Pt(1, 1)); n != 8 {
		t.Fatalf("cell itself must not count: got %d", n)
	}
	if n := g.CountNeighbors(Pt(0, 0)); n != 2 {
		t.Fatalf("corner neighbors = %d, want 2", n)
	}
}

func TestForEachCellRowMajor(t *testing.T) {
	g, _ := NewGrid(2, 2, FromPoints(Pt(1, 0)))
	var order []Point
	var live []bool
	ForEachCell(g, func(c Cell, p Point) {
		order = append(order, p)
		live = append(live, c.Live)
	})

	want := []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if len(order) != len(want) {
		t.Fatalf("visited %d cells, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("visit %d = %v, want %v", i, order[i], want[i])
		}
	}
	if live[0] || !live[1] || live[2] || live[3] {
		t.Fatalf("visited cell values = %v", live)
	}
}

func TestCloneEqualHash(t *testing.T) {
	g, _ := NewGrid(4, 4, Random(7, 0.5))
	c := g.Clone()
	if !g.Equal(c) || g.GetGridHash() != c.GetGridHash() {
		t.Fatal("clone must equal original")
	}

	c.Set(0, 0, !c.Get(0, 0))
	if g.Equal(c) {
		t.Fatal("mutating the clone must not affect the original")
	}
	if g.GetGridHash() == c.GetGridHash() {
		t.Fatal("different grids must hash differently")
	}

	other, _ := NewGrid(4, 5, nil)
	if g.Equal(other) {
		t.Fatal("grids with different dimensions are not equal")
	}
}

func TestRandomDeterministic(t *testing.T) {
	a, _ := NewGrid(16, 16, Random(42, 0.3))
	b, _ := NewGrid(16, 16, Random(42, 0.3))
	if !a.Equal(b) {
		t.Fatal("same seed must produce the same grid")
	}

	empty, _ := NewGrid(8, 8, Random(1, 0))
	if empty.CountLivingCells() != 0 {
		t.Fatal("density 0 must produce an empty grid")
	}
	full, _ := NewGrid(8, 8, Random(1, 1))
	if full.CountLivingCells() != 64 {
		t.Fatal("density 1 must fill the grid")
	}
}

func TestPatterns(t *testing.T) {
	g, _ := NewGrid(5, 5, Compose(Blinker.At(Pt(1, 2)), FromRows("#")))
	for _, p := range []Point{{0, 0}, {1, 2}, {2, 2}, {3, 2}} {
		if !g.Get(p.X, p.Y) {
			t.Fatalf("expected %v alive", p)
		}
	}
	if n := g.CountLivingCells(); n != 4 {
		t.Fatalf("living cells = %d, want 4", n)
	}

	rows, _ := NewGrid(3, 3, FromRows(
		".O.",
		"..O",
		"OOO",
	))
	glider, _ := NewGrid(3, 3, Glider.At(Pt(0, 0)))
	if !rows.Equal(glider) {
		t.Fatal("FromRows glider must match Glider pattern")
	}
}

func TestGridPool(t *testing.T) {
	pool := NewGridPool()
	g, _ := NewGrid(3, 3, func(Point) Cell { return LiveCell })
	GridToPool(g, pool)
	if g.CountLivingCells() != 0 {
		t.Fatal("Put must clear the grid")
	}
	GridToPool(g, nil)

	reused := pool.Get(4, 2)
	if reused.GetWidth() != 4 || reused.GetHeight() != 2 {
		t.Fatalf("pooled grid dimensions = %dx%d, want 4x2", reused.GetWidth(), reused.GetHeight())
	}
	if reused.CountLivingCells() != 0 {
		t.Fatal("pooled grid must come back cleared")
	}
}

func TestFromRowsCountsRunes(t *testing.T) {
	// Multi-byte runes still occupy a single column.
	g, _ := NewGrid(3, 2, FromRows("·#", "é.O"))
	for _, p := range []Point{{1, 0}, {2, 1}} {
		if !g.Get(p.X, p.Y) {
			t.Fatalf("expected %v alive", p)
		}
	}
	if n := g.CountLivingCells(); n != 2 {
		t.Fatalf("living cells = %d, want 2", n)
	}
}
