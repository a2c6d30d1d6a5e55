package render

import (
	"math"

	"github.com/mo-shahab/go-pong/canvas"
)

// Viewport maps arena units onto a grid of terminal cells. The arena is
// stretched to fill the grid, so the scale differs per axis.
type Viewport struct {
	Arena canvas.Canvas
	Cols  int
	Rows  int
}

func (v Viewport) scale() (sx, sy float64) {
	return float64(v.Cols) / v.Arena.Width, float64(v.Rows) / v.Arena.Height
}

// Cell returns the cell containing the arena point (x, y), clamped to the grid.
func (v Viewport) Cell(x, y float64) (col, row int) {
	sx, sy := v.scale()
	col = clamp(int(math.Floor(x*sx)), 0, v.Cols-1)
	row = clamp(int(math.Floor(y*sy)), 0, v.Rows-1)
	return col, row
}

// CellCenter is the arena point at the middle of a cell.
func (v Viewport) CellCenter(col, row int) (x, y float64) {
	sx, sy := v.scale()
	return (float64(col) + 0.5) / sx, (float64(row) + 0.5) / sy
}

// ArenaY converts a terminal row into arena height, taken at the row's center.
func (v Viewport) ArenaY(row int) float64 {
	_, y := v.CellCenter(0, clamp(row, 0, v.Rows-1))
	return y
}

// RowHeight is the arena height covered by one terminal row.
func (v Viewport) RowHeight() float64 {
	return v.Arena.Height / float64(v.Rows)
}

// Rect returns the inclusive cell range covered by an arena rectangle. A
// rectangle always covers at least one cell.
func (v Viewport) Rect(x, y, w, h float64) (c0, r0, c1, r1 int) {
	sx, sy := v.scale()

	c0 = int(math.Floor(x * sx))
	r0 = int(math.Floor(y * sy))
	c1 = int(math.Ceil((x+w)*sx)) - 1
	r1 = int(math.Ceil((y+h)*sy)) - 1
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}

	return clamp(c0, 0, v.Cols-1), clamp(r0, 0, v.Rows-1),
		clamp(c1, 0, v.Cols-1), clamp(r1, 0, v.Rows-1)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
