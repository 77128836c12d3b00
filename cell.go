package purfectclock

// brailleBase is U+2800, the empty braille pattern. Each cell carries a 2x4
// dot matrix encoded in the low byte of the rune.
const brailleBase = '⠀'

// Dots per character cell.
const (
	DotsPerCellX = 2
	DotsPerCellY = 4
)

// brailleBits[row][col] is the bit for one dot in a braille cell.
var brailleBits = [DotsPerCellY][DotsPerCellX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Cell represents a single character cell of a rendered frame
type Cell struct {
	Char       rune
	Foreground Color
	Background Color
}

// IsBlank reports whether the cell shows nothing but its background.
func (c Cell) IsBlank() bool {
	return c.Char == 0 || c.Char == ' ' || c.Char == brailleBase
}

// String returns the printable form of the cell
func (c Cell) String() string {
	if c.IsBlank() {
		return " "
	}
	return string(c.Char)
}

// cellState is the canvas' working storage for one cell.
type cellState struct {
	dots    uint8
	dotsFg  Color
	text    rune
	textFg  Color
	hasText bool
}

func (s cellState) resolve(bg Color) Cell {
	switch {
	case s.hasText:
		return Cell{Char: s.text, Foreground: s.textFg, Background: bg}
	case s.dots != 0:
		return Cell{Char: brailleBase + rune(s.dots), Foreground: s.dotsFg, Background: bg}
	}
	return Cell{Char: ' ', Foreground: DefaultColor, Background: bg}
}
