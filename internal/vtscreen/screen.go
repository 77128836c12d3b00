// Package vtscreen is a minimal virtual terminal. It replays the ANSI output
// of the clock renderer into a grid of cells so that what a real terminal
// would show can be inspected without one.
//
// Only what the renderer emits is understood: printable text, cursor
// positioning, erase in display and SGR colors. Everything else is parsed
// and dropped.
package vtscreen

import (
	"strings"

	"github.com/phroun/purfectclock"
)

// Screen holds the visible cells of a virtual terminal
type Screen struct {
	cols, rows int
	cells      [][]purfectclock.Cell

	cursorX, cursorY int
	fg, bg           purfectclock.Color

	parser *parser
}

// New creates a blank cols x rows screen
func New(cols, rows int) *Screen {
	s := &Screen{cols: cols, rows: rows}
	s.cells = make([][]purfectclock.Cell, rows)
	for y := range s.cells {
		s.cells[y] = make([]purfectclock.Cell, cols)
	}
	s.resetAttributes()
	s.clearScreen()
	s.parser = newParser(s)
	return s
}

// Write feeds terminal output to the screen. It never fails.
func (s *Screen) Write(p []byte) (int, error) {
	s.parser.parse(p)
	return len(p), nil
}

// Size returns the screen size in cells
func (s *Screen) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Cell returns the cell at x, y. Out-of-range positions read as blank.
func (s *Screen) Cell(x, y int) purfectclock.Cell {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return blankCell()
	}
	return s.cells[y][x]
}

// Cursor returns the cursor position
func (s *Screen) Cursor() (x, y int) {
	return s.cursorX, s.cursorY
}

// Text returns the screen as lines of plain text, trailing spaces trimmed.
func (s *Screen) Text() string {
	var sb strings.Builder
	for y, row := range s.cells {
		var line strings.Builder
		for _, c := range row {
			line.WriteRune(c.Char)
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		if y < len(s.cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func blankCell() purfectclock.Cell {
	return purfectclock.Cell{Char: ' ', Foreground: purfectclock.DefaultColor, Background: purfectclock.DefaultColor}
}

func (s *Screen) writeChar(ch rune) {
	if s.cursorX >= s.cols || s.cursorY >= s.rows {
		// Pending wrap at the right margin, drop
		return
	}
	s.cells[s.cursorY][s.cursorX] = purfectclock.Cell{Char: ch, Foreground: s.fg, Background: s.bg}
	s.cursorX++
}

func (s *Screen) setCursor(x, y int) {
	s.cursorX = clamp(x, 0, s.cols-1)
	s.cursorY = clamp(y, 0, s.rows-1)
}

// clearScreen erases with the current background, like a real terminal
func (s *Screen) clearScreen() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = purfectclock.Cell{Char: ' ', Foreground: purfectclock.DefaultColor, Background: s.bg}
		}
	}
}

func (s *Screen) resetAttributes() {
	s.fg = purfectclock.DefaultColor
	s.bg = purfectclock.DefaultColor
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
