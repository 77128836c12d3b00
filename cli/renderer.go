package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phroun/purfectclock"
)

// Grid is a finished frame of character cells
type Grid interface {
	Size() (cols, rows int)
	Cell(x, y int) purfectclock.Cell
}

// Renderer writes frames to the terminal as ANSI text. After the first
// frame only cells that changed are re-sent.
type Renderer struct {
	out   io.Writer
	depth int

	// Previous frame for differential rendering
	lastCells [][]purfectclock.Cell

	// Output buffer for batching writes
	output strings.Builder
}

// NewRenderer creates a renderer writing to out, downgrading colors to depth
func NewRenderer(out io.Writer, depth int) *Renderer {
	return &Renderer{
		out:   out,
		depth: depth,
	}
}

// Invalidate forces the next Render to repaint every cell
func (r *Renderer) Invalidate() {
	r.lastCells = nil
}

// Render draws the grid, sending only what differs from the previous frame.
// A change of grid size clears the screen and repaints everything.
func (r *Renderer) Render(g Grid) error {
	cols, rows := g.Size()

	r.output.Reset()

	prevCells := r.lastCells
	needsFullRender := prevCells == nil || len(prevCells) != rows ||
		(rows > 0 && len(prevCells[0]) != cols)
	if needsFullRender {
		r.output.WriteString("\033[0m\033[2J")
		prevCells = nil
	}

	newCells := make([][]purfectclock.Cell, rows)

	// Current attributes for SGR optimization
	var currentFg, currentBg purfectclock.Color
	firstAttr := true

	// Where the terminal cursor sits, -1 when unknown
	cursorX, cursorY := -1, -1

	for y := 0; y < rows; y++ {
		newCells[y] = make([]purfectclock.Cell, cols)

		for x := 0; x < cols; x++ {
			cell := g.Cell(x, y)
			cell.Foreground = cell.Foreground.Downgrade(r.depth)
			cell.Background = cell.Background.Downgrade(r.depth)
			if cell.IsBlank() {
				// Foreground of an empty cell is invisible
				cell.Char = ' '
				cell.Foreground = purfectclock.DefaultColor
			}
			newCells[y][x] = cell

			if prevCells != nil && prevCells[y][x] == cell {
				continue
			}

			// Move cursor to position
			if cursorX != x || cursorY != y {
				r.output.WriteString("\033[")
				r.output.WriteString(strconv.Itoa(y + 1))
				r.output.WriteByte(';')
				r.output.WriteString(strconv.Itoa(x + 1))
				r.output.WriteByte('H')
			}

			var sgr []string
			if firstAttr {
				sgr = append(sgr, "0")
				currentFg = purfectclock.DefaultColor
				currentBg = purfectclock.DefaultColor
				firstAttr = false
			}
			if cell.Foreground != currentFg {
				sgr = append(sgr, cell.Foreground.SGR(true))
				currentFg = cell.Foreground
			}
			if cell.Background != currentBg {
				sgr = append(sgr, cell.Background.SGR(false))
				currentBg = cell.Background
			}
			if len(sgr) > 0 {
				r.output.WriteString("\033[")
				r.output.WriteString(strings.Join(sgr, ";"))
				r.output.WriteString("m")
			}

			r.output.WriteRune(cell.Char)
			cursorX, cursorY = x+1, y
		}
	}

	if !firstAttr {
		// Reset attributes
		r.output.WriteString("\033[0m")
	}

	if r.output.Len() > 0 {
		if _, err := io.WriteString(r.out, r.output.String()); err != nil {
			// The screen no longer matches what we think it shows
			r.lastCells = nil
			return fmt.Errorf("%w: %w", ErrOutput, err)
		}
	}

	// Store current frame
	r.lastCells = newCells
	return nil
}
