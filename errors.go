package purfectclock

import "errors"

var (
	// ErrInvalidAspectRatio is returned for aspect ratios that are not finite and positive.
	ErrInvalidAspectRatio = errors.New("aspect ratio must be a finite positive number")

	// ErrDegenerateViewport is returned when the terminal is too small to hold a clock face.
	ErrDegenerateViewport = errors.New("terminal too small for clock face")
)
