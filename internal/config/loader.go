package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix     = "PURFECTCLOCK_"
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// Overrides carries command-line values. Zero values leave the lower layers
// untouched; a nil AspectRatio means it was not given.
type Overrides struct {
	ConfigFile   string
	AspectRatio  *float64
	Theme        string
	Marks        string
	PollInterval time.Duration
	LogLevel     string
	LogFile      string
}

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New)
//  2. a YAML file named by ov.ConfigFile or PURFECTCLOCK_CONFIG
//  3. environment variables with the PURFECTCLOCK_ prefix
//  4. command-line overrides
//
// The result is validated before it is returned.
func Load(ctx context.Context, ov Overrides) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	path := ov.ConfigFile
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PURFECTCLOCK_POLL_INTERVAL_MS -> poll_interval_ms
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if ov.AspectRatio == nil && !k.Exists("aspect_ratio") {
		return nil, fmt.Errorf("%w: aspect ratio is required (pass it as the first argument, probably around 0.6)", ErrInvalidConfig)
	}
	ov.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (ov Overrides) apply(cfg *Config) {
	if ov.AspectRatio != nil {
		cfg.AspectRatio = *ov.AspectRatio
	}
	if ov.Theme != "" {
		cfg.Theme = ov.Theme
	}
	if ov.Marks != "" {
		cfg.Marks = ov.Marks
	}
	if ov.PollInterval > 0 {
		cfg.PollIntervalMS = int(ov.PollInterval / time.Millisecond)
	}
	if ov.LogLevel != "" {
		cfg.LogLevel = ov.LogLevel
	}
	if ov.LogFile != "" {
		cfg.LogFile = ov.LogFile
	}
}
