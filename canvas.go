package purfectclock

import (
	"math"
	"unicode/utf8"
)

// minCircleSamples is the fewest points used to trace a circle outline.
const minCircleSamples = 360

// Canvas rasterizes viewport geometry into a grid of braille character cells.
// It implements Painter. A Canvas is not safe for concurrent use.
type Canvas struct {
	cols int
	rows int

	xBounds [2]float64
	yBounds [2]float64

	background Color
	cells      []cellState
}

// NewCanvas creates a canvas of cols x rows cells with bounds [-1, 1] on
// both axes.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{
		xBounds:    [2]float64{-1, 1},
		yBounds:    [2]float64{-1, 1},
		background: DefaultColor,
	}
	c.Resize(cols, rows)
	return c
}

// Resize changes the grid size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols = cols
	c.rows = rows
	if cap(c.cells) >= cols*rows {
		c.cells = c.cells[:cols*rows]
	} else {
		c.cells = make([]cellState, cols*rows)
	}
	c.Clear()
}

// Clear erases every dot and glyph. Bounds and background are kept.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cellState{}
	}
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Resolution returns the grid size in braille dots.
func (c *Canvas) Resolution() (w, h int) {
	return c.cols * DotsPerCellX, c.rows * DotsPerCellY
}

// Bounds returns the coordinate extents.
func (c *Canvas) Bounds() (x, y [2]float64) {
	return c.xBounds, c.yBounds
}

// Cell returns the resolved content at column x, row y. Out-of-range
// positions yield a blank cell.
func (c *Canvas) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return Cell{Char: ' ', Foreground: DefaultColor, Background: c.background}
	}
	return c.cells[y*c.cols+x].resolve(c.background)
}

// Rows returns the resolved grid, row-major.
func (c *Canvas) Rows() [][]Cell {
	out := make([][]Cell, c.rows)
	for y := 0; y < c.rows; y++ {
		row := make([]Cell, c.cols)
		for x := 0; x < c.cols; x++ {
			row[x] = c.cells[y*c.cols+x].resolve(c.background)
		}
		out[y] = row
	}
	return out
}

// SetBounds sets the coordinate space. Bounds that are not finite or have
// zero extent are ignored.
func (c *Canvas) SetBounds(x, y [2]float64) {
	for _, v := range [...]float64{x[0], x[1], y[0], y[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	if !(x[1] > x[0]) || !(y[1] > y[0]) {
		return
	}
	c.xBounds = x
	c.yBounds = y
}

// SetBackground sets the color behind every cell.
func (c *Canvas) SetBackground(col Color) {
	c.background = col
}

// DrawLine draws a segment between two viewport points.
func (c *Canvas) DrawLine(from, to Point, col Color) {
	x0, y0, ok0 := c.toDots(from)
	x1, y1, ok1 := c.toDots(to)
	if !ok0 || !ok1 {
		return
	}

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.setDot(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle traces a circle outline. The sample count grows with the
// circle's size in dots so the outline stays closed on large terminals.
func (c *Canvas) DrawCircle(center Point, radius float64, col Color) {
	if !finite(center.X) || !finite(center.Y) || !finite(radius) || radius < 0 {
		return
	}
	w, h := c.Resolution()
	if w == 0 || h == 0 {
		return
	}

	rx := radius * float64(w-1) / (c.xBounds[1] - c.xBounds[0])
	ry := radius * float64(h-1) / (c.yBounds[1] - c.yBounds[0])
	samples := int(2*math.Pi*math.Max(rx, ry)) * 2
	if samples < minCircleSamples {
		samples = minCircleSamples
	}

	for i := 0; i < samples; i++ {
		theta := 2 * math.Pi * float64(i) / float64(samples)
		p := Point{X: center.X + radius*math.Cos(theta), Y: center.Y + radius*math.Sin(theta)}
		if x, y, ok := c.toDots(p); ok {
			c.setDot(x, y, col)
		}
	}
}

// DrawText writes text starting at the cell containing at. Glyphs cover
// any dots in their cells and are clipped at the right edge.
func (c *Canvas) DrawText(at Point, text string, col Color) {
	cx, cy, ok := c.toCell(at)
	if !ok {
		return
	}
	for _, r := range text {
		if cx >= c.cols {
			return
		}
		if r != utf8.RuneError {
			s := &c.cells[cy*c.cols+cx]
			s.text = r
			s.textFg = col
			s.hasText = true
		}
		cx++
	}
}

// toDots maps a viewport point onto the dot grid without clipping, so lines
// with one end off-canvas still draw their visible part.
func (c *Canvas) toDots(p Point) (x, y int, ok bool) {
	if !finite(p.X) || !finite(p.Y) {
		return 0, 0, false
	}
	w, h := c.Resolution()
	if w == 0 || h == 0 {
		return 0, 0, false
	}
	width := c.xBounds[1] - c.xBounds[0]
	height := c.yBounds[1] - c.yBounds[0]
	fx := (p.X - c.xBounds[0]) * float64(w-1) / width
	fy := (c.yBounds[1] - p.Y) * float64(h-1) / height
	// Keep Bresenham loops bounded for points far outside the grid.
	limit := float64(4 * (w + h))
	if math.Abs(fx) > limit || math.Abs(fy) > limit {
		return 0, 0, false
	}
	return int(math.Round(fx)), int(math.Round(fy)), true
}

// toCell maps a viewport point onto a character cell, rejecting points
// outside the bounds.
func (c *Canvas) toCell(p Point) (x, y int, ok bool) {
	if !finite(p.X) || !finite(p.Y) || c.cols == 0 || c.rows == 0 {
		return 0, 0, false
	}
	if p.X < c.xBounds[0] || p.X > c.xBounds[1] || p.Y < c.yBounds[0] || p.Y > c.yBounds[1] {
		return 0, 0, false
	}
	width := c.xBounds[1] - c.xBounds[0]
	height := c.yBounds[1] - c.yBounds[0]
	x = int(math.Round((p.X - c.xBounds[0]) * float64(c.cols-1) / width))
	y = int(math.Round((c.yBounds[1] - p.Y) * float64(c.rows-1) / height))
	return x, y, true
}

func (c *Canvas) setDot(x, y int, col Color) {
	w, h := c.Resolution()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	s := &c.cells[(y/DotsPerCellY)*c.cols+x/DotsPerCellX]
	s.dots |= brailleBits[y%DotsPerCellY][x%DotsPerCellX]
	s.dotsFg = col
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
