package render

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClear = "\033[H\033[2J"
)

// TextRenderer prints whole frames to a plain terminal
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer writes frames to w
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Display renders the grid, one line per row
func (r *TextRenderer) Display(g *model.Grid) error {
	bw := bufio.NewWriter(r.w)
	for y := range g.GetHeight() {
		for x := range g.GetWidth() {
			if g.Get(x, y) {
				bw.WriteString(gridPosBlock)
			} else {
				bw.WriteString(gridPosEmpty)
			}
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[Display] failed to write frame")
	}
	return nil
}

// Clear clears the terminal screen
func (r *TextRenderer) Clear() error {
	if _, err := io.WriteString(r.w, ansiClear); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
