// Package config defines the clock's process configuration and how it is
// layered together.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/phroun/purfectclock"
)

// Poll interval limits in milliseconds.
const (
	DefaultPollIntervalMS = 10
	MinPollIntervalMS     = 1
	MaxPollIntervalMS     = 1000
)

// Config contains process configuration.
type Config struct {
	// AspectRatio is the width-to-height ratio of one terminal character cell,
	// typically 0.5-0.6. It has no default.
	AspectRatio float64 `koanf:"aspect_ratio"`

	// Theme names a built-in palette; unknown names fall back to "default".
	Theme string `koanf:"theme"`

	// Marks is "ticks" or "numerals".
	Marks string `koanf:"marks"`

	// PollIntervalMS bounds how long each frame waits for a key press.
	PollIntervalMS int `koanf:"poll_interval_ms"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile receives log records. Empty discards them, since the terminal
	// itself is busy showing the clock.
	LogFile string `koanf:"log_file"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Theme:          purfectclock.DefaultThemeName,
		Marks:          purfectclock.MarkTicks.String(),
		PollIntervalMS: DefaultPollIntervalMS,
		LogLevel:       "info",
	}
}

// PollInterval returns PollIntervalMS as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// MarkStyle returns the parsed mark style. Call Validate first.
func (c *Config) MarkStyle() purfectclock.MarkStyle {
	m, _ := purfectclock.ParseMarkStyle(c.Marks)
	return m
}

// Validate checks every field and reports the first problem.
func (c *Config) Validate() error {
	if math.IsNaN(c.AspectRatio) || math.IsInf(c.AspectRatio, 0) || c.AspectRatio <= 0 {
		return fmt.Errorf("%w: aspect ratio must be a positive number, got %v", ErrInvalidConfig, c.AspectRatio)
	}
	if _, err := purfectclock.ParseMarkStyle(c.Marks); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.PollIntervalMS < MinPollIntervalMS || c.PollIntervalMS > MaxPollIntervalMS {
		return fmt.Errorf("%w: poll_interval_ms must be between %d and %d, got %d",
			ErrInvalidConfig, MinPollIntervalMS, MaxPollIntervalMS, c.PollIntervalMS)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
