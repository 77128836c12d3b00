// Package purfectclock provides the core of a terminal analog clock shared by
// every front end.
//
// This package contains:
//   - Color types and themes
//   - The time to hand-angle mapper
//   - Viewport math and the clock-face frame renderer
//   - A recorded display list of draw commands
//   - A braille canvas that rasterizes those commands into character cells
//
// The cli package drives a real terminal with these pieces.
package purfectclock

import "math"

// ColorType indicates how a color was specified
type ColorType uint8

const (
	ColorTypeDefault   ColorType = iota // Use terminal default fg/bg (SGR 39/49)
	ColorTypeStandard                   // Standard 16 ANSI colors (0-15)
	ColorTypePalette                    // 256-color palette (0-255)
	ColorTypeTrueColor                  // 24-bit RGB
)

// Color is a terminal color. R, G and B always hold the resolved RGB value so a
// color can be downgraded when the host terminal lacks true color.
type Color struct {
	Type    ColorType
	Index   uint8 // For Standard (0-15) or Palette (0-255)
	R, G, B uint8
}

// DefaultColor leaves the terminal's own foreground or background in place.
var DefaultColor = Color{Type: ColorTypeDefault}

// StandardColor creates a standard 16-color ANSI color (index 0-15)
func StandardColor(index int) Color {
	if index < 0 || index > 15 {
		index = 7
	}
	rgb := ANSIColorsRGB[index]
	return Color{Type: ColorTypeStandard, Index: uint8(index), R: rgb.R, G: rgb.G, B: rgb.B}
}

// PaletteColor creates a 256-color palette color (index 0-255)
func PaletteColor(index int) Color {
	if index < 0 || index > 255 {
		index = 7
	}
	rgb := Get256ColorRGB(index)
	return Color{Type: ColorTypePalette, Index: uint8(index), R: rgb.R, G: rgb.G, B: rgb.B}
}

// TrueColor creates a 24-bit true color
func TrueColor(r, g, b uint8) Color {
	return Color{Type: ColorTypeTrueColor, R: r, G: g, B: b}
}

// IsDefault returns true if this is the default fg/bg color
func (c Color) IsDefault() bool {
	return c.Type == ColorTypeDefault
}

// SGR returns the SGR parameter(s) selecting this color as foreground (fg=true)
// or background.
func (c Color) SGR(fg bool) string {
	switch c.Type {
	case ColorTypeStandard:
		idx := int(c.Index)
		if idx < 8 {
			if fg {
				return itoa(30 + idx)
			}
			return itoa(40 + idx)
		}
		if fg {
			return itoa(90 + idx - 8)
		}
		return itoa(100 + idx - 8)
	case ColorTypePalette:
		if fg {
			return "38;5;" + itoa(int(c.Index))
		}
		return "48;5;" + itoa(int(c.Index))
	case ColorTypeTrueColor:
		rgb := itoa(int(c.R)) + ";" + itoa(int(c.G)) + ";" + itoa(int(c.B))
		if fg {
			return "38;2;" + rgb
		}
		return "48;2;" + rgb
	}
	if fg {
		return "39"
	}
	return "49"
}

// Color depths, expressed as the number of colors a terminal can show.
const (
	ColorDepthNone      = 0
	ColorDepthBasic     = 8
	ColorDepth16        = 16
	ColorDepth256       = 256
	ColorDepthTrueColor = 1 << 24
)

// Downgrade maps the color into what a terminal of the given depth can show.
// True color keeps everything, 256 turns true colors into the nearest palette
// entry, and anything lower also maps palette entries onto the 16 ANSI colors.
func (c Color) Downgrade(depth int) Color {
	if c.Type == ColorTypeDefault || depth >= ColorDepthTrueColor {
		return c
	}
	if depth >= ColorDepth256 {
		if c.Type == ColorTypeTrueColor {
			return PaletteColor(Nearest256(c.R, c.G, c.B))
		}
		return c
	}
	if depth <= ColorDepthNone {
		return DefaultColor
	}
	if c.Type == ColorTypeStandard {
		return c
	}
	return StandardColor(nearestANSI(c.R, c.G, c.B))
}

// itoa is a simple int to string conversion
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	if i < 0 {
		return "-" + itoa(-i)
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

// RGB holds just the red, green, blue components
type RGB struct {
	R, G, B uint8
}

// Standard ANSI 16-color palette RGB values (in ANSI order)
var ANSIColorsRGB = []RGB{
	{R: 0, G: 0, B: 0},       // 0: Black
	{R: 170, G: 0, B: 0},     // 1: Red
	{R: 0, G: 170, B: 0},     // 2: Green
	{R: 170, G: 85, B: 0},    // 3: Yellow/Brown
	{R: 0, G: 0, B: 170},     // 4: Blue
	{R: 170, G: 0, B: 170},   // 5: Magenta
	{R: 0, G: 170, B: 170},   // 6: Cyan
	{R: 170, G: 170, B: 170}, // 7: White/Silver
	{R: 85, G: 85, B: 85},    // 8: Dark Gray
	{R: 255, G: 85, B: 85},   // 9: Bright Red
	{R: 85, G: 255, B: 85},   // 10: Bright Green
	{R: 255, G: 255, B: 85},  // 11: Bright Yellow
	{R: 85, G: 85, B: 255},   // 12: Bright Blue
	{R: 255, G: 85, B: 255},  // 13: Bright Magenta
	{R: 85, G: 255, B: 255},  // 14: Bright Cyan
	{R: 255, G: 255, B: 255}, // 15: White
}

// ANSIColorNames maps the names accepted in theme files to ANSI indices.
var ANSIColorNames = map[string]int{
	"black": 0, "red": 1, "green": 2, "yellow": 3,
	"blue": 4, "magenta": 5, "cyan": 6, "gray": 7,
	"dark_gray": 8, "light_red": 9, "light_green": 10, "light_yellow": 11,
	"light_blue": 12, "light_magenta": 13, "light_cyan": 14, "white": 15,
}

// Get256ColorRGB returns the RGB values for a 256-color palette index
func Get256ColorRGB(idx int) RGB {
	if idx < 0 {
		idx = 0
	} else if idx > 255 {
		idx = 255
	}
	if idx < 16 {
		return ANSIColorsRGB[idx]
	} else if idx < 232 {
		idx -= 16
		b := idx % 6
		g := (idx / 6) % 6
		r := idx / 36
		return RGB{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51)}
	}
	gray := uint8((idx-232)*10 + 8)
	return RGB{R: gray, G: gray, B: gray}
}

// Nearest256 returns the palette index (16-255) closest to the given RGB value.
// The ANSI range 0-15 is skipped because terminals remap it freely.
func Nearest256(r, g, b uint8) int {
	best, bestDist := 16, math.MaxInt
	for idx := 16; idx < 256; idx++ {
		if d := rgbDistance(Get256ColorRGB(idx), r, g, b); d < bestDist {
			best, bestDist = idx, d
		}
	}
	return best
}

func nearestANSI(r, g, b uint8) int {
	best, bestDist := 0, math.MaxInt
	for idx, rgb := range ANSIColorsRGB {
		if d := rgbDistance(rgb, r, g, b); d < bestDist {
			best, bestDist = idx, d
		}
	}
	return best
}

func rgbDistance(c RGB, r, g, b uint8) int {
	dr := int(c.R) - int(r)
	dg := int(c.G) - int(g)
	db := int(c.B) - int(b)
	return dr*dr + dg*dg + db*db
}

// ParseColor accepts "#RRGGBB", "#RGB", an ANSI color name, or "default".
func ParseColor(s string) (Color, bool) {
	if s == "default" || s == "reset" {
		return DefaultColor, true
	}
	if idx, ok := ANSIColorNames[s]; ok {
		return StandardColor(idx), true
	}
	return ParseHexColor(s)
}

// ParseHexColor parses a hex color string in "#RRGGBB" or "#RGB" format
// Returns a TrueColor type
func ParseHexColor(s string) (Color, bool) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, false
	}
	s = s[1:]
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return Color{}, false
		}
	}
	var r, g, b uint8
	switch len(s) {
	case 3:
		r = parseHexNibble(s[0]) * 17
		g = parseHexNibble(s[1]) * 17
		b = parseHexNibble(s[2]) * 17
	case 6:
		r = parseHexNibble(s[0])<<4 | parseHexNibble(s[1])
		g = parseHexNibble(s[2])<<4 | parseHexNibble(s[3])
		b = parseHexNibble(s[4])<<4 | parseHexNibble(s[5])
	default:
		return Color{}, false
	}
	return TrueColor(r, g, b), true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func parseHexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
