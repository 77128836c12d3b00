package vtscreen

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/phroun/purfectclock"
)

// Parser states
type parserState int

const (
	stateGround   parserState = iota
	stateEscape               // After ESC
	stateCSI                  // After ESC [
	stateCSIParam             // Reading CSI parameters
)

// parser decodes ANSI escape sequences and updates a Screen
type parser struct {
	screen *Screen
	state  parserState

	// CSI sequence accumulator
	csiParams  []int
	csiPrivate byte // For private sequences like ?25h
	csiBuf     strings.Builder

	// UTF-8 multi-byte handling
	utf8Buf []byte
}

func newParser(s *Screen) *parser {
	return &parser{
		screen:    s,
		state:     stateGround,
		csiParams: make([]int, 0, 16),
	}
}

func (p *parser) parse(data []byte) {
	for _, b := range data {
		p.processByte(b)
	}
}

func (p *parser) processByte(b byte) {
	if len(p.utf8Buf) > 0 {
		if b&0xC0 == 0x80 {
			p.utf8Buf = append(p.utf8Buf, b)
			if utf8.FullRune(p.utf8Buf) {
				r, _ := utf8.DecodeRune(p.utf8Buf)
				p.screen.writeChar(r)
				p.utf8Buf = p.utf8Buf[:0]
			}
			return
		}
		// Invalid UTF-8, reset
		p.utf8Buf = p.utf8Buf[:0]
	}

	if p.state == stateGround && b >= 0xC0 {
		p.utf8Buf = append(p.utf8Buf[:0], b)
		return
	}

	switch p.state {
	case stateGround:
		p.handleGround(b)
	case stateEscape:
		p.handleEscape(b)
	case stateCSI, stateCSIParam:
		p.handleCSI(b)
	}
}

func (p *parser) handleGround(b byte) {
	switch b {
	case 0x0A: // LF
		p.screen.setCursor(p.screen.cursorX, p.screen.cursorY+1)
	case 0x0D: // CR
		p.screen.cursorX = 0
	case 0x1B: // ESC
		p.state = stateEscape
	default:
		if b >= 0x20 && b < 0x7F {
			p.screen.writeChar(rune(b))
		}
	}
}

func (p *parser) handleEscape(b byte) {
	switch b {
	case '[': // CSI - Control Sequence Introducer
		p.state = stateCSI
		p.csiParams = p.csiParams[:0]
		p.csiPrivate = 0
		p.csiBuf.Reset()
	default:
		// Unknown escape sequence, return to ground state
		p.state = stateGround
	}
}

func (p *parser) handleCSI(b byte) {
	if p.state == stateCSI {
		// First byte after ESC [
		if b == '?' || b == '>' || b == '<' {
			p.csiPrivate = b
			p.state = stateCSIParam
			return
		}
		p.state = stateCSIParam
	}

	if b >= '0' && b <= '9' {
		p.csiBuf.WriteByte(b)
		return
	}
	if b == ';' {
		p.parseCSIParam()
		p.csiBuf.Reset()
		return
	}
	if b >= 0x20 && b <= 0x2F {
		// Intermediate bytes, nothing emitted by the renderer uses them
		return
	}

	// Final byte - execute the sequence
	p.parseCSIParam()
	p.executeCSI(b)
	p.state = stateGround
}

func (p *parser) parseCSIParam() {
	n, _ := strconv.Atoi(p.csiBuf.String())
	p.csiParams = append(p.csiParams, n)
}

func (p *parser) getParam(idx, defaultVal int) int {
	if idx < len(p.csiParams) && p.csiParams[idx] > 0 {
		return p.csiParams[idx]
	}
	return defaultVal
}

func (p *parser) executeCSI(finalByte byte) {
	if p.csiPrivate != 0 {
		// Private modes (cursor visibility, alternate screen) change nothing visible here
		return
	}
	switch finalByte {
	case 'H', 'f': // CUP/HVP - Cursor Position
		row := p.getParam(0, 1) - 1
		col := p.getParam(1, 1) - 1
		p.screen.setCursor(col, row)

	case 'J': // ED - Erase in Display
		if p.getParam(0, 0) >= 2 {
			p.screen.clearScreen()
		}

	case 'm': // SGR - Select Graphic Rendition
		p.executeSGR()
	}
}

func (p *parser) executeSGR() {
	s := p.screen
	for i := 0; i < len(p.csiParams); i++ {
		param := p.csiParams[i]
		switch {
		case param == 0:
			s.resetAttributes()
		case param >= 30 && param <= 37:
			s.fg = purfectclock.StandardColor(param - 30)
		case param >= 90 && param <= 97:
			s.fg = purfectclock.StandardColor(param - 90 + 8)
		case param >= 40 && param <= 47:
			s.bg = purfectclock.StandardColor(param - 40)
		case param >= 100 && param <= 107:
			s.bg = purfectclock.StandardColor(param - 100 + 8)
		case param == 39:
			s.fg = purfectclock.DefaultColor
		case param == 49:
			s.bg = purfectclock.DefaultColor
		case param == 38 || param == 48:
			c, used := p.extendedColor(i)
			if used == 0 {
				return
			}
			if param == 38 {
				s.fg = c
			} else {
				s.bg = c
			}
			i += used
		}
	}
}

// extendedColor decodes the 5;N or 2;R;G;B tail following parameter i.
// It returns the number of extra parameters consumed, zero if malformed.
func (p *parser) extendedColor(i int) (purfectclock.Color, int) {
	params := p.csiParams
	switch {
	case i+2 < len(params) && params[i+1] == 5:
		return purfectclock.PaletteColor(params[i+2]), 2
	case i+4 < len(params) && params[i+1] == 2:
		return purfectclock.TrueColor(uint8(params[i+2]), uint8(params[i+3]), uint8(params[i+4])), 4
	}
	return purfectclock.Color{}, 0
}
