// Package render draws generations onto a terminal.
package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// ErrUnknownColor is returned for a live color tcell cannot resolve
var ErrUnknownColor = errors.New("unknown color")

// ErrUnknownMode is returned for an unrecognized canvas mode
var ErrUnknownMode = errors.New("unknown canvas mode")

// Mode selects how a Canvas reacts to unchanged cells
type Mode string

const (
	// ModeBasic redraws every cell each generation
	ModeBasic Mode = "basic"
	// ModePersisted relies on the screen keeping its content and only redraws changed cells
	ModePersisted Mode = "persisted"
)

// ParseMode resolves a mode name, case-insensitive
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeBasic, ModePersisted:
		return m, nil
	}
	return "", errors.Wrapf(ErrUnknownMode, "[ParseMode] %q", s)
}

// cellWidth is the number of terminal columns per cell, keeping cells roughly square
const cellWidth = 2

// Canvas is an engine sink drawing each cell as a colored block on a tcell screen
type Canvas struct {
	screen        tcell.Screen
	mode          Mode
	live          tcell.Style
	dead          tcell.Style
	drawUnchanged bool
}

// NewCanvas builds a canvas for screen. liveColor is a tcell color name or #rrggbb.
func NewCanvas(screen tcell.Screen, mode Mode, liveColor string) (*Canvas, error) {
	color := tcell.GetColor(strings.ToLower(liveColor))
	if color == tcell.ColorDefault && !strings.EqualFold(liveColor, "default") {
		return nil, errors.Wrapf(ErrUnknownColor, "[NewCanvas] %q", liveColor)
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, errors.Wrap(err, "[NewCanvas]")
	}
	return &Canvas{
		screen:        screen,
		mode:          mode,
		live:          tcell.StyleDefault.Background(color),
		dead:          tcell.StyleDefault.Background(tcell.ColorBlack),
		drawUnchanged: mode == ModeBasic,
	}, nil
}

// Mode returns the canvas mode
func (c *Canvas) Mode() Mode { return c.mode }

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModeBasic {
		return ModePersisted
	}
	return ModeBasic
}

// DrawCell paints a single cell
func (c *Canvas) DrawCell(cell model.Cell, at model.Point) {
	style := c.dead
	if cell.Live {
		style = c.live
	}
	for i := range cellWidth {
		c.screen.SetContent(at.X*cellWidth+i, at.Y, ' ', nil, style)
	}
}

// DrawGrid paints every cell of g
func (c *Canvas) DrawGrid(g *model.Grid) {
	model.ForEachCell(g, c.DrawCell)
}

func (c *Canvas) Update(at model.Point, cell model.Cell) {
	c.DrawCell(cell, at)
}

func (c *Canvas) NoUpdate(at model.Point, cell model.Cell) {
	if c.drawUnchanged {
		c.DrawCell(cell, at)
	}
}

// Show flushes pending drawing to the terminal
func (c *Canvas) Show() {
	c.screen.Show()
}

// Clear blanks the whole screen
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// DrawText writes a line of text starting at column x, row y
func DrawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// GridSize returns how many cells fit on a screen of the given size, leaving reserved rows free
func GridSize(screenWidth, screenHeight, reservedRows int) (width, height int) {
	return screenWidth / cellWidth, screenHeight - reservedRows
}
