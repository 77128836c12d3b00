package cli

import (
	"strings"

	"github.com/phroun/purfectclock"
)

// Capabilities holds what is known about the host terminal
type Capabilities struct {
	TermType   string // e.g., "xterm-256color"
	IsTerminal bool   // true if this is an interactive terminal
	ColorDepth int    // one of the purfectclock.ColorDepth* constants

	// Screen dimensions at detection time
	Width  int // columns
	Height int // rows
}

// SupportsColor returns true if any color output is possible
func (c Capabilities) SupportsColor() bool {
	return c.ColorDepth > purfectclock.ColorDepthNone
}

// DetectCapabilities derives the color depth from the environment.
// NO_COLOR wins over everything, then COLORTERM, then TERM.
func DetectCapabilities(getenv func(string) string, cols, rows int) Capabilities {
	caps := Capabilities{
		TermType:   getenv("TERM"),
		ColorDepth: purfectclock.ColorDepth16,
		Width:      cols,
		Height:     rows,
	}
	if caps.TermType == "" {
		caps.TermType = "unknown"
	}

	colorTerm := strings.ToLower(getenv("COLORTERM"))
	termType := strings.ToLower(caps.TermType)

	switch {
	case getenv("NO_COLOR") != "":
		caps.ColorDepth = purfectclock.ColorDepthNone
	case termType == "dumb":
		caps.ColorDepth = purfectclock.ColorDepthNone
	case colorTerm == "truecolor" || colorTerm == "24bit":
		caps.ColorDepth = purfectclock.ColorDepthTrueColor
	case strings.Contains(termType, "direct"):
		caps.ColorDepth = purfectclock.ColorDepthTrueColor
	case strings.Contains(termType, "256color"):
		caps.ColorDepth = purfectclock.ColorDepth256
	case termType == "linux" || termType == "vt100":
		caps.ColorDepth = purfectclock.ColorDepthBasic
	}
	return caps
}
