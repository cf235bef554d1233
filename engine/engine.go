// Package engine computes successive generations of a bounded life-like automaton.
package engine

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
)

// Sink receives exactly one notification per cell for every Iterate call:
// Update when the cell changed state, NoUpdate when it kept it.
// Both carry the cell's state in the next generation.
type Sink interface {
	Update(at model.Point, cell model.Cell)
	NoUpdate(at model.Point, cell model.Cell)
}

// Options tunes IterateWith
type Options struct {
	// Workers is the number of goroutines computing row ranges. Values <= 1 run serially,
	// a negative value uses runtime.NumCPU().
	Workers int
	// Pool, when set, supplies the next grid
	Pool *model.GridPool
}

// Iterate computes the generation after cur under rule, notifying sink for every
// cell in row-major order. cur is never modified; a new grid is returned.
func Iterate(cur *model.Grid, rule *rules.Rule, sink Sink) *model.Grid {
	next := model.NewBlankGrid(cur)
	step(cur, next, transition(rule), sink)
	return next
}

// transition resolves the per-cell rule once per generation, using the Conway fast path for B3/S23
func transition(rule *rules.Rule) func(alive bool, liveNeighbors int) bool {
	if rule.IsConway() {
		return func(alive bool, liveNeighbors int) bool {
			return rules.ApplyConwayRules(liveNeighbors, alive)
		}
	}
	return rule.NextState
}

// step fills next from cur in a single row-major pass, notifying as it goes
func step(cur, next *model.Grid, nextState func(bool, int) bool, sink Sink) {
	model.ForEachCell(cur, func(c model.Cell, p model.Point) {
		alive := nextState(c.Live, cur.CountNeighbors(p))
		nc := model.Cell{Live: alive}
		if alive != c.Live {
			sink.Update(p, nc)
		} else {
			sink.NoUpdate(p, nc)
		}
		next.Set(p.X, p.Y, alive)
	})
}

// IterateWith is Iterate with a grid pool and row-parallel computation. Rows are
// split into ranges computed concurrently against the frozen cur grid; sink is then
// notified from a single goroutine in row-major order, so it need not be thread-safe.
func IterateWith(ctx context.Context, cur *model.Grid, rule *rules.Rule, sink Sink, opts Options) (*model.Grid, error) {
	var next *model.Grid
	if opts.Pool != nil {
		next = opts.Pool.Get(cur.GetWidth(), cur.GetHeight())
	} else {
		next = model.NewBlankGrid(cur)
	}

	workers := opts.Workers
	if workers < 0 {
		workers = runtime.NumCPU()
	}
	nextState := transition(rule)
	if workers <= 1 {
		step(cur, next, nextState, sink)
		return next, nil
	}

	if err := computeParallel(ctx, cur, next, nextState, workers); err != nil {
		model.GridToPool(next, opts.Pool)
		return nil, errors.Wrap(err, "[IterateWith] parallel step failed")
	}
	notify(cur, next, sink)
	return next, nil
}

func computeParallel(ctx context.Context, cur, next *model.Grid, nextState func(bool, int) bool, workers int) error {
	var (
		height        = cur.GetHeight()
		width         = cur.GetWidth()
		rowsPerWorker = (height + workers - 1) / workers // Ceiling division
	)

	eg, ctx := errgroup.WithContext(ctx)
	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
		)
		if startRow >= height {
			break
		}

		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for y := startRow; y < endRow; y++ {
				for x := range width {
					p := model.Point{X: x, Y: y}
					next.Set(x, y, nextState(cur.Get(x, y), cur.CountNeighbors(p)))
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

// notify reports every cell of next against cur in row-major order
func notify(cur, next *model.Grid, sink Sink) {
	model.ForEachCell(next, func(c model.Cell, p model.Point) {
		if c.Live != cur.Get(p.X, p.Y) {
			sink.Update(p, c)
		} else {
			sink.NoUpdate(p, c)
		}
	})
}
