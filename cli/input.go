package cli

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Key is the outcome of one input poll.
type Key int

const (
	// KeyNone means nothing arrived before the timeout.
	KeyNone Key = iota
	// KeyQuit means "q" was pressed.
	KeyQuit
	// KeyOther means input arrived but none of it was the quit key.
	KeyOther
)

// String returns the metrics label for the key
func (k Key) String() string {
	switch k {
	case KeyQuit:
		return "quit"
	case KeyOther:
		return "ignored"
	}
	return "none"
}

const (
	quitKey             = 'q'
	escByte             = 0x1b
	maxEscapeLen        = 32
	inputBufferSize     = 256
	defaultEscapeExpiry = 50 * time.Millisecond
)

// InputHandler polls keyboard input from the host terminal
type InputHandler struct {
	r    io.Reader
	wait func(timeout time.Duration) (bool, error)
	now  func() time.Time

	buf           []byte
	escapeBuffer  []byte
	escapeTimeout time.Duration
	lastEscape    time.Time
}

// NewInputHandler creates an input handler reading from the given terminal input
func NewInputHandler(in *os.File) *InputHandler {
	return newFileInputHandler(in)
}

func newInputHandler(r io.Reader, wait func(time.Duration) (bool, error)) *InputHandler {
	return &InputHandler{
		r:             r,
		wait:          wait,
		now:           time.Now,
		buf:           make([]byte, inputBufferSize),
		escapeBuffer:  make([]byte, 0, maxEscapeLen),
		escapeTimeout: defaultEscapeExpiry,
	}
}

// Poll waits up to timeout for input and reports what arrived. It never
// blocks longer than timeout when no input is pending.
func (h *InputHandler) Poll(timeout time.Duration) (Key, error) {
	// A lone ESC with nothing after it was the Escape key itself
	if len(h.escapeBuffer) > 0 && h.now().Sub(h.lastEscape) > h.escapeTimeout {
		h.escapeBuffer = h.escapeBuffer[:0]
	}

	ready, err := h.wait(timeout)
	if err != nil {
		return KeyNone, fmt.Errorf("%w: %w", ErrInput, err)
	}
	if !ready {
		return KeyNone, nil
	}

	n, err := h.r.Read(h.buf)
	if err != nil {
		return KeyNone, fmt.Errorf("%w: %w", ErrInput, err)
	}
	if n == 0 {
		return KeyNone, nil
	}
	return h.processInput(h.buf[:n]), nil
}

// processInput classifies raw input bytes. Escape sequences are consumed
// whole so that a trailing "q" in, say, ESC O q is never taken as quit.
func (h *InputHandler) processInput(data []byte) Key {
	if len(h.escapeBuffer) > 0 {
		// Continue a sequence split across reads
		data = append(h.escapeBuffer[:len(h.escapeBuffer):len(h.escapeBuffer)], data...)
		h.escapeBuffer = h.escapeBuffer[:0]
	}

	result := KeyNone
	for i := 0; i < len(data); {
		b := data[i]

		if b != escByte {
			if b == quitKey {
				return KeyQuit
			}
			result = KeyOther
			i++
			continue
		}

		consumed, complete := parseEscapeSequence(data[i:])
		if !complete {
			// Keep the prefix until the rest arrives or it expires
			rest := data[i:]
			if len(rest) > maxEscapeLen {
				rest = rest[:maxEscapeLen]
			}
			h.escapeBuffer = append(h.escapeBuffer[:0], rest...)
			h.lastEscape = h.now()
			if result == KeyNone {
				result = KeyOther
			}
			break
		}
		result = KeyOther
		i += consumed
	}
	return result
}

// parseEscapeSequence measures the escape sequence at the start of seq.
// It returns the number of bytes it spans and whether it is complete.
func parseEscapeSequence(seq []byte) (consumed int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}

	switch seq[1] {
	case '[':
		return parseCSISequence(seq)
	case 'O':
		// SS3: exactly one byte follows
		if len(seq) < 3 {
			return 0, false
		}
		return 3, true
	case escByte:
		// ESC ESC: the first one stands alone
		return 1, true
	}

	// Alt+key: ESC followed by one character
	return 2, true
}

// parseCSISequence measures a CSI (ESC [) sequence: parameter and
// intermediate bytes in 0x20-0x3f, then one final byte in 0x40-0x7e.
func parseCSISequence(seq []byte) (consumed int, complete bool) {
	i := 2
	for i < len(seq) && seq[i] >= 0x20 && seq[i] <= 0x3f {
		i++
		if i >= maxEscapeLen {
			// Runaway sequence, drop what we have
			return i, true
		}
	}
	if i == len(seq) {
		return 0, false
	}
	if seq[i] >= 0x40 && seq[i] <= 0x7e {
		return i + 1, true
	}
	// Malformed, stop before the offending byte
	return i, true
}
