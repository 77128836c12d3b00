package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Escape sequences used to enter and leave the clock screen.
const (
	seqHideCursor    = "\033[?25l"
	seqShowCursor    = "\033[?25h"
	seqAltScreenOn   = "\033[?1049h"
	seqAltScreenOff  = "\033[?1049l"
	seqClearScreen   = "\033[2J\033[H"
	seqResetAttrs    = "\033[0m"
	defaultEnterSeq  = seqAltScreenOn + seqHideCursor + seqClearScreen
	defaultLeaveSeq  = seqResetAttrs + seqShowCursor + seqAltScreenOff
	fallbackColumns  = 80
	fallbackRowCount = 24
)

// Options configures terminal creation
type Options struct {
	In  *os.File // Keyboard input (default: os.Stdin)
	Out *os.File // Frame output (default: os.Stdout)

	// Getenv is used for capability detection (default: os.Getenv)
	Getenv func(string) string
}

// Terminal is the host terminal, switched into raw mode for the clock.
// Start and Stop bracket the session; Stop is safe to call more than once
// and from every exit path.
type Terminal struct {
	mu sync.Mutex

	in   *os.File
	out  *os.File
	caps Capabilities

	// Original terminal state for restoration
	oldState *term.State
	started  bool
	stopOnce sync.Once
	stopErr  error
}

// New checks that input and output are terminals and detects capabilities.
// It does not change any terminal state.
func New(opts Options) (*Terminal, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	if !term.IsTerminal(int(opts.In.Fd())) {
		return nil, fmt.Errorf("%w: input %s", ErrNotTerminal, opts.In.Name())
	}
	if !term.IsTerminal(int(opts.Out.Fd())) {
		return nil, fmt.Errorf("%w: output %s", ErrNotTerminal, opts.Out.Name())
	}

	t := &Terminal{
		in:  opts.In,
		out: opts.Out,
	}
	cols, rows := t.sizeOrDefault()
	t.caps = DetectCapabilities(opts.Getenv, cols, rows)
	t.caps.IsTerminal = true
	return t, nil
}

// Start enters raw mode, switches to the alternate screen and hides the cursor.
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	oldState, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.oldState = oldState
	t.started = true

	if _, err := io.WriteString(t.out, defaultEnterSeq); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return nil
}

// Stop leaves the alternate screen, shows the cursor and restores the
// original terminal mode. Only the first call has any effect.
func (t *Terminal) Stop() error {
	t.stopOnce.Do(func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		if !t.started {
			return
		}
		_, werr := io.WriteString(t.out, defaultLeaveSeq)
		rerr := term.Restore(int(t.in.Fd()), t.oldState)
		t.started = false

		switch {
		case rerr != nil:
			t.stopErr = fmt.Errorf("failed to restore terminal: %w", rerr)
		case werr != nil:
			t.stopErr = fmt.Errorf("%w: %w", ErrOutput, werr)
		}
	})
	return t.stopErr
}

// Close is an alias for Stop
func (t *Terminal) Close() error {
	return t.Stop()
}

// Size returns the current terminal size in character cells. Callers add
// ErrTerminalSize context.
func (t *Terminal) Size() (cols, rows int, err error) {
	return term.GetSize(int(t.out.Fd()))
}

// sizeOrDefault is used before the session starts, where a guess is fine.
func (t *Terminal) sizeOrDefault() (cols, rows int) {
	cols, rows, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return fallbackColumns, fallbackRowCount
	}
	return cols, rows
}

// Write sends raw bytes to the terminal output.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Input returns a key poller reading from the terminal input.
func (t *Terminal) Input() *InputHandler {
	return NewInputHandler(t.in)
}

// Capabilities returns what was detected about the terminal.
func (t *Terminal) Capabilities() Capabilities {
	return t.caps
}
