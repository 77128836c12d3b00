package cli

import "errors"

var (
	// ErrNotTerminal is returned when stdin or stdout is not an interactive terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrTerminalSize is returned when the terminal size cannot be read.
	ErrTerminalSize = errors.New("failed to read terminal size")

	// ErrInput wraps failures reading or polling keyboard input.
	ErrInput = errors.New("failed to read input")

	// ErrOutput wraps failures writing a frame.
	ErrOutput = errors.New("failed to draw frame")
)
