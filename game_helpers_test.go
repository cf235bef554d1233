package main

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/go-life/app"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/render"
	"github.com/sheikhrachel/go-life/rules"
	"github.com/sheikhrachel/go-life/utils"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	s.SetSize(20, 10)
	t.Cleanup(s.Fini)
	return s
}

func TestSeederForIsDeterministic(t *testing.T) {
	config := utils.DefaultConfig()
	config.Seed = 5

	first, second := seederFor(config), seederFor(config)
	a, _ := model.NewGrid(10, 10, first())
	b, _ := model.NewGrid(10, 10, second())
	if !a.Equal(b) {
		t.Fatal("seeders with the same seed must produce the same first board")
	}
	c, _ := model.NewGrid(10, 10, first())
	if a.Equal(c) {
		t.Fatal("each reset must get a new board")
	}
}

func TestControllerOptionsWithPatterns(t *testing.T) {
	config := utils.DefaultConfig()
	config.Seed = 1
	config.RandomDensity = 0
	config.WithPatterns = true

	opts := controllerOptions(config, rules.Conway, 30, 20, nil, nil)
	g, err := model.NewGrid(30, 20, opts.Seeder())
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	// Two gliders and two blinkers.
	if n := g.CountLivingCells(); n != 16 {
		t.Fatalf("living cells = %d, want 16", n)
	}
}

func TestStatusLine(t *testing.T) {
	c, err := app.New(app.Options{Width: 4, Height: 5, Rule: rules.HighLife})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	line := statusLine(c, app.StepResult{Generation: 3, Population: 5, Changed: 2})
	for _, want := range []string{"Gen: 3", "Living: 5", "Density: 25.0%", "Changed: 2", "Rule: B36/S23", "Active"} {
		if !strings.Contains(line, want) {
			t.Fatalf("status %q missing %q", line, want)
		}
	}
	if line := statusLine(c, app.StepResult{Restarted: "extinction"}); !strings.Contains(line, "Restarted (extinction)") {
		t.Fatalf("status %q missing restart reason", line)
	}
}

func TestPollEvents(t *testing.T) {
	s := newSimScreen(t)
	cmds := make(chan command)
	done := make(chan error, 1)
	go func() { done <- pollEvents(context.Background(), s, cmds) }()

	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'c', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'm', tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	var got []command
	for cmd := range cmds {
		if cmd == cmdRedraw {
			continue
		}
		got = append(got, cmd)
		if cmd == cmdQuit {
			break
		}
	}
	want := []command{cmdStep, cmdToggle, cmdReset, cmdNextRule, cmdToggleCanvas, cmdQuit}
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("commands = %v, want %v", got, want)
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("pollEvents: %v", err)
	}
}

func newSession(t *testing.T, screen tcell.Screen, mode render.Mode) *session {
	t.Helper()
	canvas, err := render.NewCanvas(screen, mode, "green")
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	c, err := app.New(app.Options{
		Width:  5,
		Height: 5,
		Rule:   rules.Conway,
		Sink:   canvas,
		Seeder: func() model.Initializer { return model.Blinker.At(model.Pt(1, 2)) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &session{
		c:         c,
		canvas:    canvas,
		screen:    screen,
		frame:     time.Hour,
		liveColor: "green",
		maxWidth:  5,
		maxHeight: 5,
		logger:    log.New(io.Discard, "", 0),
	}
}

func runSession(t *testing.T, s *session, cmds ...command) {
	t.Helper()
	ch := make(chan command)
	done := make(chan error, 1)
	go func() { done <- s.loop(context.Background(), ch) }()
	for _, cmd := range cmds {
		ch <- cmd
	}
	ch <- cmdQuit
	if err := <-done; err != nil {
		t.Fatalf("loop: %v", err)
	}
}

func TestScreenLoopCommands(t *testing.T) {
	screen := newSimScreen(t)
	s := newSession(t, screen, render.ModePersisted)
	runSession(t, s, cmdStep, cmdStep, cmdStep, cmdRedraw)

	if s.c.Generation() != 3 {
		t.Fatalf("generation = %d, want 3", s.c.Generation())
	}
	if s.running {
		t.Fatal("stepping by hand must stop the timer")
	}
	if !s.c.Grid().Get(2, 1) {
		t.Fatal("blinker must be vertical after an odd number of steps")
	}
	if r, _, _, _ := screen.GetContent(0, 5); r != 'G' {
		t.Fatalf("status line must start below the board, got %q", r)
	}
}

func TestScreenLoopNextRule(t *testing.T) {
	screen := newSimScreen(t)
	s := newSession(t, screen, render.ModeBasic)
	runSession(t, s, cmdNextRule)

	want := rules.NextPreset(rules.Conway)
	if s.c.Rule() != want {
		t.Fatalf("rule = %s, want %s", s.c.Rule(), want)
	}
	if line := statusLine(s.c, s.last); !strings.Contains(line, "Rule: "+want.String()) {
		t.Fatalf("status %q does not show the new rule", line)
	}
	if s.c.Generation() != 0 || s.c.Grid().CountLivingCells() != 3 {
		t.Fatal("changing the rule must keep the board")
	}
}

func TestScreenLoopToggleCanvas(t *testing.T) {
	screen := newSimScreen(t)
	s := newSession(t, screen, render.ModeBasic)
	first := s.canvas
	runSession(t, s, cmdToggleCanvas)

	if s.canvas == first || s.canvas.Mode() != render.ModePersisted {
		t.Fatalf("canvas mode = %s, want a new persisted canvas", s.canvas.Mode())
	}
	// The new canvas is the controller's sink: the board is redrawn on it.
	_, _, style, _ := screen.GetContent(2, 2)
	if _, bg, _ := style.Decompose(); bg != tcell.ColorGreen {
		t.Fatalf("live cell background after toggle = %v", bg)
	}

	runSession(t, s, cmdToggleCanvas, cmdStep)
	if s.canvas.Mode() != render.ModeBasic {
		t.Fatalf("second toggle mode = %s, want basic", s.canvas.Mode())
	}
	_, _, style, _ = screen.GetContent(4, 1)
	if _, bg, _ := style.Decompose(); bg != tcell.ColorGreen {
		t.Fatal("steps after a toggle must draw on the new canvas")
	}
}

func TestScreenLoopResizeRefitsBoard(t *testing.T) {
	screen := newSimScreen(t)
	s := newSession(t, screen, render.ModeBasic)
	s.maxWidth, s.maxHeight = 0, 0

	screen.SetSize(8, 6)
	runSession(t, s, cmdRedraw)

	if w, h := s.c.Grid().GetWidth(), s.c.Grid().GetHeight(); w != 4 || h != 4 {
		t.Fatalf("board after resize = %dx%d, want 4x4", w, h)
	}

	// A screen too small for any board keeps the current one.
	screen.SetSize(1, 2)
	runSession(t, s, cmdRedraw)
	if w := s.c.Grid().GetWidth(); w != 4 {
		t.Fatalf("board width after tiny screen = %d, want 4", w)
	}
}

func TestResolveRule(t *testing.T) {
	config := utils.DefaultConfig()
	config.Rule = "highlife"
	r, err := resolveRule(config)
	if err != nil || r != rules.HighLife {
		t.Fatalf("resolveRule(highlife) = %v, %v", r, err)
	}

	config.Birth, config.Survive = "2", ""
	r, err = resolveRule(config)
	if err != nil || r.String() != rules.Seeds.String() {
		t.Fatalf("resolveRule(custom B2/S) = %v, %v", r, err)
	}

	config.Birth = "9"
	if _, err := resolveRule(config); !errors.Is(err, rules.ErrMalformedRule) {
		t.Fatalf("resolveRule(bad custom) error = %v", err)
	}
}
