package imposition

import (
	"fmt"

	"github.com/kpauljoseph/deckpress/pkg/models"
)

// fitEpsilon absorbs float rounding when checking the grid against the
// page edge.
const fitEpsilon = 1e-6

// GridConfig describes the card grid on one sheet. All lengths are in
// millimetres. A config is immutable for the duration of a run; the same
// geometry is reused for every front and back page so duplex alignment
// holds when the sheet is flipped.
type GridConfig struct {
	Rows int
	Cols int

	CardWidth  float64
	CardHeight float64

	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64

	GapX float64
	GapY float64
}

// Capacity is the number of cards one sheet side holds.
func (g GridConfig) Capacity() int {
	return g.Rows * g.Cols
}

func (g GridConfig) occupied() (w, h float64) {
	w = float64(g.Cols)*g.CardWidth + float64(g.Cols-1)*g.GapX + g.MarginLeft + g.MarginRight
	h = float64(g.Rows)*g.CardHeight + float64(g.Rows-1)*g.GapY + g.MarginTop + g.MarginBottom
	return w, h
}

// Validate rejects impossible grids before any rendering begins, so a bad
// layout can never be discovered halfway through a document.
func (g GridConfig) Validate(page models.PageDimensions) error {
	if g.Rows < 1 || g.Cols < 1 {
		return layoutErrorf("grid must be at least 1x1, got %dx%d", g.Cols, g.Rows)
	}
	if g.CardWidth <= 0 || g.CardHeight <= 0 {
		return layoutErrorf("card size must be positive, got %.1fx%.1fmm", g.CardWidth, g.CardHeight)
	}
	if g.GapX < 0 || g.GapY < 0 ||
		g.MarginLeft < 0 || g.MarginRight < 0 || g.MarginTop < 0 || g.MarginBottom < 0 {
		return layoutErrorf("margins and gaps must not be negative")
	}

	needW, needH := g.occupied()
	if needW > page.Width+fitEpsilon || needH > page.Height+fitEpsilon {
		return layoutErrorf("%dx%d grid needs %.1fx%.1fmm but the page is %.1fx%.1fmm; reduce margins, gaps or card size",
			g.Cols, g.Rows, needW, needH, page.Width, page.Height)
	}

	return nil
}

// Slot is one grid cell resolved to an absolute rectangle on the page.
// Origin is the top-left page corner, y grows downward, millimetres.
type Slot struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ComputeSlots lays the grid out on the page and returns the slot
// rectangles in row-major order (row 0 left to right, then row 1, ...).
// Pure function of its inputs.
func ComputeSlots(page models.PageDimensions, grid GridConfig) ([]Slot, error) {
	if err := grid.Validate(page); err != nil {
		return nil, err
	}

	slots := make([]Slot, 0, grid.Capacity())
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			slots = append(slots, Slot{
				X:      grid.MarginLeft + float64(c)*(grid.CardWidth+grid.GapX),
				Y:      grid.MarginTop + float64(r)*(grid.CardHeight+grid.GapY),
				Width:  grid.CardWidth,
				Height: grid.CardHeight,
			})
		}
	}

	return slots, nil
}

// LayoutError means the grid cannot fit the page at the requested
// margins, gaps and card size.
type LayoutError struct {
	msg string
}

func (e *LayoutError) Error() string {
	return "layout: " + e.msg
}

func layoutErrorf(format string, args ...interface{}) *LayoutError {
	return &LayoutError{msg: fmt.Sprintf(format, args...)}
}
