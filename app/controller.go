// Package app owns the running simulation: the live grid, its rule and the sink
// that renders each generation.
package app

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
	"github.com/sheikhrachel/go-life/utils"
)

var (
	// ErrNoRule is returned when a controller is built or updated without a rule
	ErrNoRule = errors.New("no rule")
	// ErrFinished is returned by Step once the generation limit is reached
	ErrFinished = errors.New("generation limit reached")
)

// historySize is how many recent grid hashes are kept to detect cycles of period 3 or less
const historySize = 3

// Seeder produces the initializer for a fresh board. It is called on every reset.
type Seeder func() model.Initializer

// Drawer is implemented by sinks that can paint a cell outside of a transition
type Drawer interface {
	DrawCell(cell model.Cell, at model.Point)
}

// Options configures a Controller
type Options struct {
	Width  int
	Height int
	Rule   *rules.Rule
	// Sink receives every transition; nil discards them
	Sink engine.Sink
	// Seeder fills new boards; nil starts all dead
	Seeder Seeder
	// Workers is passed to engine.Options
	Workers int
	// UsePool recycles grids between generations
	UsePool bool
	// AutoRestart reseeds the board on extinction or after StagnationThreshold stagnant generations
	AutoRestart         bool
	StagnationThreshold int
	// MaxGenerations stops Step after this many generations; 0 means no limit
	MaxGenerations int
	Logger         *log.Logger
}

// StepResult describes one generation
type StepResult struct {
	Generation int
	Population int
	Changed    int
	Stagnant   bool
	// Restarted holds the reason the board was reseeded after this step, if it was
	Restarted string
}

// Controller holds the live simulation state. It is not safe for concurrent use.
type Controller struct {
	opts    Options
	grid    *model.Grid
	rule    *rules.Rule
	sink    engine.Sink
	pool    *model.GridPool
	stats   *utils.Stats
	counter engine.Counter
	logger  *log.Logger

	generation    int
	history       []string
	stagnantCount int
	lastStep      time.Time
}

// New builds a controller, seeds the first board and draws it
func New(opts Options) (*Controller, error) {
	if opts.Rule == nil {
		return nil, errors.Wrap(ErrNoRule, "[New]")
	}
	if opts.StagnationThreshold <= 0 {
		opts.StagnationThreshold = utils.DefaultConfig().StagnationThreshold
	}

	c := &Controller{
		opts:   opts,
		rule:   opts.Rule,
		sink:   opts.Sink,
		stats:  utils.NewStats(),
		logger: opts.Logger,
	}
	if c.sink == nil {
		c.sink = engine.Discard
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	if opts.UsePool {
		c.pool = model.NewGridPool()
	}

	if err := c.Reset(); err != nil {
		return nil, errors.Wrap(err, "[New] failed to seed board")
	}
	return c, nil
}

// Reset replaces the board with a freshly seeded one and redraws it
func (c *Controller) Reset() error {
	var init model.Initializer
	if c.opts.Seeder != nil {
		init = c.opts.Seeder()
	}
	grid, err := model.NewGrid(c.opts.Width, c.opts.Height, init)
	if err != nil {
		return errors.Wrap(err, "[Reset]")
	}

	model.GridToPool(c.grid, c.pool)
	c.grid = grid
	c.generation = 0
	c.stagnantCount = 0
	c.history = []string{grid.GetGridHash()}
	c.lastStep = time.Now()
	c.Redraw()
	return nil
}

// Resize replaces the board with a freshly seeded one of the given size
func (c *Controller) Resize(width, height int) error {
	oldWidth, oldHeight := c.opts.Width, c.opts.Height
	c.opts.Width, c.opts.Height = width, height
	if err := c.Reset(); err != nil {
		c.opts.Width, c.opts.Height = oldWidth, oldHeight
		return errors.Wrap(err, "[Resize]")
	}
	return nil
}

// Redraw paints every cell of the current board onto the sink
func (c *Controller) Redraw() {
	if d, ok := c.sink.(Drawer); ok {
		model.ForEachCell(c.grid, func(cell model.Cell, at model.Point) {
			d.DrawCell(cell, at)
		})
		return
	}
	model.ForEachCell(c.grid, func(cell model.Cell, at model.Point) {
		c.sink.Update(at, cell)
	})
}

// SetRule swaps the rule used for the following generations. The board is kept.
func (c *Controller) SetRule(rule *rules.Rule) error {
	if rule == nil {
		return errors.Wrap(ErrNoRule, "[SetRule]")
	}
	c.rule = rule
	c.stagnantCount = 0
	c.history = []string{c.grid.GetGridHash()}
	return nil
}

// SetSink replaces the sink and redraws the board onto it
func (c *Controller) SetSink(sink engine.Sink) {
	if sink == nil {
		sink = engine.Discard
	}
	c.sink = sink
	c.Redraw()
}

// Step advances the board one generation
func (c *Controller) Step(ctx context.Context) (StepResult, error) {
	if c.opts.MaxGenerations > 0 && c.generation >= c.opts.MaxGenerations {
		return StepResult{Generation: c.generation}, ErrFinished
	}

	c.counter.Reset()
	next, err := engine.IterateWith(ctx, c.grid, c.rule, engine.Multi(c.sink, &c.counter), engine.Options{
		Workers: c.opts.Workers,
		Pool:    c.pool,
	})
	if err != nil {
		return StepResult{Generation: c.generation}, errors.Wrapf(err, "[Step] generation %d", c.generation)
	}

	model.GridToPool(c.grid, c.pool)
	c.grid = next
	c.generation++

	res := StepResult{
		Generation: c.generation,
		Population: next.CountLivingCells(),
		Changed:    c.counter.Changed,
	}
	res.Stagnant = c.updateHistory(next.GetGridHash())
	if res.Stagnant {
		c.stagnantCount++
	} else {
		c.stagnantCount = 0
	}

	now := time.Now()
	c.stats.Update(c.generation, res.Population, res.Changed, now.Sub(c.lastStep))
	c.lastStep = now

	if reason := c.restartReason(res.Population); reason != "" && c.opts.AutoRestart {
		c.logger.Printf("restarting after generation %d: %s", c.generation, reason)
		if err := c.Reset(); err != nil {
			return res, errors.Wrap(err, "[Step] restart failed")
		}
		res.Restarted = reason
	}
	return res, nil
}

// updateHistory reports whether hash repeats one of the recent generations
// (a still life or a period 2 or 3 oscillator) and records it
func (c *Controller) updateHistory(hash string) bool {
	stagnant := false
	for _, h := range c.history {
		if h == hash {
			stagnant = true
			break
		}
	}

	c.history = append(c.history, hash)
	if len(c.history) > historySize {
		c.history = c.history[1:]
	}
	return stagnant
}

func (c *Controller) restartReason(population int) string {
	if population == 0 {
		return "extinction"
	}
	if c.stagnantCount >= c.opts.StagnationThreshold {
		return "stagnation detected"
	}
	return ""
}

// Run steps the board every frame until ctx is canceled or the generation limit is hit.
// onStep, when set, is called after every generation.
func (c *Controller) Run(ctx context.Context, frame time.Duration, onStep func(StepResult)) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			res, err := c.Step(ctx)
			if errors.Is(err, ErrFinished) {
				return nil
			}
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if onStep != nil {
				onStep(res)
			}
		}
	}
}

// Grid returns the current board. It must not be modified and, with pooling, is only
// valid until the next Step or Reset.
func (c *Controller) Grid() *model.Grid { return c.grid }

// Rule returns the active rule
func (c *Controller) Rule() *rules.Rule { return c.rule }

// Generation returns the number of generations since the last reset
func (c *Controller) Generation() int { return c.generation }

// Stats returns the running performance figures
func (c *Controller) Stats() *utils.Stats { return c.stats }
