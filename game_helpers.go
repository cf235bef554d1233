package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/app"
	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/render"
	"github.com/sheikhrachel/go-life/rules"
	"github.com/sheikhrachel/go-life/utils"
)

const (
	plainWidth  = 60
	plainHeight = 30

	statusRows = 2
)

type command int

const (
	cmdQuit command = iota
	cmdToggle
	cmdStep
	cmdReset
	cmdRedraw
	cmdNextRule
	cmdToggleCanvas
)

// newLogger writes to the configured file, or to stderr in plain mode
func newLogger(config utils.Config) (*log.Logger, func(), error) {
	if config.LogFile == "" {
		if config.Plain {
			return log.New(os.Stderr, "go-life ", log.LstdFlags), func() {}, nil
		}
		return log.New(io.Discard, "", 0), func() {}, nil
	}

	f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[newLogger] failed to open log file: %+v", config.LogFile)
	}
	var once sync.Once
	return log.New(f, "go-life ", log.LstdFlags), func() { once.Do(func() { f.Close() }) }, nil
}

// resolveRule picks the custom birth/survive pair when given, otherwise the named rule
func resolveRule(config utils.Config) (*rules.Rule, error) {
	if config.CustomRule() {
		return rules.Custom(config.Birth, config.Survive)
	}
	return rules.Lookup(config.Rule)
}

// seederFor returns a seeder producing a new random board on every call
func seederFor(config utils.Config) app.Seeder {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return func() model.Initializer {
		seed++
		return model.Random(seed, config.RandomDensity)
	}
}

// controllerOptions builds the controller settings for a width x height board
func controllerOptions(config utils.Config, rule *rules.Rule, width, height int, sink engine.Sink, logger *log.Logger) app.Options {
	seeder := seederFor(config)
	if config.WithPatterns {
		base := seeder
		seeder = func() model.Initializer {
			return model.Compose(base(), model.InterestingPatterns(width, height))
		}
	}
	return app.Options{
		Width:               width,
		Height:              height,
		Rule:                rule,
		Sink:                sink,
		Seeder:              seeder,
		Workers:             config.Workers,
		UsePool:             config.UseMemoryPool,
		AutoRestart:         config.AutoRestart,
		StagnationThreshold: config.StagnationThreshold,
		MaxGenerations:      config.MaxGenerations,
		Logger:              logger,
	}
}

// statusLine summarizes the current game state
func statusLine(c *app.Controller, res app.StepResult) string {
	grid := c.Grid()
	density := float64(res.Population) / float64(grid.GetWidth()*grid.GetHeight()) * 100

	status := "Active"
	if res.Stagnant {
		status = "Stagnant"
	}
	if res.Population == 0 {
		status = "Extinct"
	}
	if res.Restarted != "" {
		status = "Restarted (" + res.Restarted + ")"
	}

	stats := c.Stats()
	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Changed: %d | Rule: %s | %.1f gen/sec | %s",
		res.Generation, res.Population, density, res.Changed, c.Rule(), stats.GenerationsPerSecond, status)
}

// runPlain prints every generation as text until canceled
func runPlain(ctx context.Context, config utils.Config, rule *rules.Rule, logger *log.Logger) error {
	width, height := config.Width, config.Height
	if width == 0 {
		width = plainWidth
	}
	if height == 0 {
		height = plainHeight
	}

	renderer := render.NewTextRenderer(os.Stdout)
	c, err := app.New(controllerOptions(config, rule, width, height, nil, logger))
	if err != nil {
		return errors.Wrap(err, "[runPlain] failed to start")
	}

	var frameErr error
	err = c.Run(ctx, config.FrameRate, func(res app.StepResult) {
		if frameErr != nil {
			return
		}
		if err := renderer.Clear(); err != nil {
			frameErr = err
			return
		}
		if err := renderer.Display(c.Grid()); err != nil {
			frameErr = err
			return
		}
		fmt.Println(statusLine(c, res))
	})
	if err != nil {
		return errors.Wrap(err, "[runPlain]")
	}
	if frameErr != nil {
		return errors.Wrap(frameErr, "[runPlain]")
	}

	stats := c.Stats()
	fmt.Printf("Final stats: %d generations in %.1f seconds, %.1f avg population\n",
		stats.TotalGenerations, stats.Runtime().Seconds(), stats.AveragePopulation)
	return nil
}

// runScreen runs the interactive tcell UI until the user quits or ctx is canceled
func runScreen(ctx context.Context, config utils.Config, rule *rules.Rule, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runScreen] failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "[runScreen] failed to initialize screen")
	}
	defer screen.Fini()

	mode, err := render.ParseMode(config.CanvasMode)
	if err != nil {
		return errors.Wrap(err, "[runScreen]")
	}
	canvas, err := render.NewCanvas(screen, mode, config.LiveColor)
	if err != nil {
		return errors.Wrap(err, "[runScreen]")
	}

	width, height := fitGrid(screen, config.Width, config.Height)
	c, err := app.New(controllerOptions(config, rule, width, height, canvas, logger))
	if err != nil {
		return errors.Wrap(err, "[runScreen] failed to start")
	}
	canvas.Show()

	s := &session{
		c:         c,
		canvas:    canvas,
		screen:    screen,
		frame:     config.FrameRate,
		liveColor: config.LiveColor,
		maxWidth:  config.Width,
		maxHeight: config.Height,
		logger:    logger,
	}

	cmds := make(chan command)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return pollEvents(ctx, screen, cmds)
	})
	eg.Go(func() error {
		// Fini unblocks PollEvent once the loop is done
		defer screen.Fini()
		return s.loop(ctx, cmds)
	})
	return eg.Wait()
}

// fitGrid returns the board size for the screen, capped by the configured size when set
func fitGrid(screen tcell.Screen, maxWidth, maxHeight int) (width, height int) {
	screenWidth, screenHeight := screen.Size()
	width, height = render.GridSize(screenWidth, screenHeight, statusRows)
	if maxWidth > 0 {
		width = min(width, maxWidth)
	}
	if maxHeight > 0 {
		height = min(height, maxHeight)
	}
	return width, height
}

// pollEvents turns terminal events into commands
func pollEvents(ctx context.Context, screen tcell.Screen, cmds chan<- command) error {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}

		var cmd command
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				cmd = cmdQuit
			case ev.Rune() == ' ':
				cmd = cmdToggle
			case ev.Rune() == 'n':
				cmd = cmdStep
			case ev.Rune() == 'r':
				cmd = cmdReset
			case ev.Rune() == 'c':
				cmd = cmdNextRule
			case ev.Rune() == 'm':
				cmd = cmdToggleCanvas
			default:
				continue
			}
		case *tcell.EventResize:
			screen.Sync()
			cmd = cmdRedraw
		default:
			continue
		}

		select {
		case cmds <- cmd:
		case <-ctx.Done():
			return nil
		}
		if cmd == cmdQuit {
			return nil
		}
	}
}

// session is the interactive UI state. Only its loop goroutine touches it.
type session struct {
	c         *app.Controller
	canvas    *render.Canvas
	screen    tcell.Screen
	frame     time.Duration
	liveColor string
	maxWidth  int
	maxHeight int
	logger    *log.Logger

	running bool
	last    app.StepResult
}

// loop owns the controller: it steps on every tick while running and applies commands
func (s *session) loop(ctx context.Context, cmds <-chan command) error {
	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()

	s.running = true
	s.last = app.StepResult{Population: s.c.Grid().CountLivingCells()}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !s.running {
				continue
			}
			if err := s.step(ctx); err != nil {
				return err
			}
		case cmd := <-cmds:
			if cmd == cmdQuit {
				return nil
			}
			if err := s.apply(ctx, cmd); err != nil {
				return err
			}
		}
		drawStatus(s.screen, s.c.Grid().GetHeight(), statusLine(s.c, s.last), s.running, s.canvas.Mode())
		s.canvas.Show()
	}
}

func (s *session) step(ctx context.Context) error {
	res, err := s.c.Step(ctx)
	if errors.Is(err, app.ErrFinished) {
		s.running = false
		s.logger.Printf("stopped at generation %d: %v", s.c.Generation(), err)
		return nil
	}
	if err != nil {
		return err
	}
	s.last = res
	return nil
}

func (s *session) apply(ctx context.Context, cmd command) error {
	switch cmd {
	case cmdToggle:
		s.running = !s.running
	case cmdStep:
		s.running = false
		return s.step(ctx)
	case cmdReset:
		if err := s.c.Reset(); err != nil {
			return err
		}
		s.last = app.StepResult{Population: s.c.Grid().CountLivingCells()}
	case cmdNextRule:
		rule := rules.NextPreset(s.c.Rule())
		if err := s.c.SetRule(rule); err != nil {
			return err
		}
		s.logger.Printf("rule changed to %s", rule)
	case cmdToggleCanvas:
		canvas, err := render.NewCanvas(s.screen, s.canvas.Mode().Toggle(), s.liveColor)
		if err != nil {
			return err
		}
		s.canvas = canvas
		s.canvas.Clear()
		s.c.SetSink(canvas)
	case cmdRedraw:
		s.canvas.Clear()
		width, height := fitGrid(s.screen, s.maxWidth, s.maxHeight)
		grid := s.c.Grid()
		if width > 0 && height > 0 && (width != grid.GetWidth() || height != grid.GetHeight()) {
			if err := s.c.Resize(width, height); err != nil {
				return err
			}
			s.last = app.StepResult{Population: s.c.Grid().CountLivingCells()}
			return nil
		}
		s.c.Redraw()
	}
	return nil
}

func drawStatus(screen tcell.Screen, row int, status string, running bool, mode render.Mode) {
	width, _ := screen.Size()
	style := tcell.StyleDefault
	for y := row; y < row+statusRows; y++ {
		for x := range width {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}

	state := "running"
	if !running {
		state = "stopped"
	}
	render.DrawText(screen, 0, row, status, style)
	render.DrawText(screen, 0, row+1,
		"["+state+", "+string(mode)+"] space start/stop  n step  r reset  c next rule  m canvas  q quit", style.Dim(true))
}
