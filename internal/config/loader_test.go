package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phroun/purfectclock"
	"github.com/phroun/purfectclock/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"PURFECTCLOCK_CONFIG",
	"PURFECTCLOCK_ASPECT_RATIO",
	"PURFECTCLOCK_THEME",
	"PURFECTCLOCK_MARKS",
	"PURFECTCLOCK_POLL_INTERVAL_MS",
	"PURFECTCLOCK_LOG_LEVEL",
	"PURFECTCLOCK_LOG_FILE",
}

func clearConfigEnvVars() {
	for _, name := range configEnvVars {
		_ = os.Unsetenv(name)
	}
}

func ratio(v float64) *float64 { return &v }

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "purfectclock.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When only the aspect ratio is passed on the command line", func() {
			cfg, err := config.Load(ctx, config.Overrides{AspectRatio: ratio(0.6)})

			convey.Convey("Then the defaults fill in the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AspectRatio, convey.ShouldEqual, 0.6)
				convey.So(cfg.Theme, convey.ShouldEqual, "default")
				convey.So(cfg.Marks, convey.ShouldEqual, "ticks")
				convey.So(cfg.MarkStyle(), convey.ShouldEqual, purfectclock.MarkTicks)
				convey.So(cfg.PollInterval(), convey.ShouldEqual, 10*time.Millisecond)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.LogFile, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When the aspect ratio is given as zero", func() {
			cfg, err := config.Load(ctx, config.Overrides{AspectRatio: ratio(0)})

			convey.Convey("Then it is rejected as not positive rather than missing", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "must be a positive number")
				convey.So(err.Error(), convey.ShouldNotContainSubstring, "required")
			})
		})

		convey.Convey("When the config file sets the aspect ratio to zero", func() {
			path := writeConfigFile(t, "aspect_ratio: 0\n")
			_, err := config.Load(ctx, config.Overrides{ConfigFile: path})

			convey.Convey("Then it is rejected as not positive", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "must be a positive number")
			})
		})

		convey.Convey("When the aspect ratio is missing everywhere", func() {
			cfg, err := config.Load(ctx, config.Overrides{})

			convey.Convey("Then loading fails as invalid config", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "aspect ratio is required")
			})
		})

		convey.Convey("When environment variables are set", func() {
			_ = os.Setenv("PURFECTCLOCK_ASPECT_RATIO", "0.55")
			_ = os.Setenv("PURFECTCLOCK_THEME", "rose_pine")
			_ = os.Setenv("PURFECTCLOCK_MARKS", "numerals")
			_ = os.Setenv("PURFECTCLOCK_POLL_INTERVAL_MS", "25")

			cfg, err := config.Load(ctx, config.Overrides{})

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AspectRatio, convey.ShouldEqual, 0.55)
				convey.So(cfg.Theme, convey.ShouldEqual, "rose_pine")
				convey.So(cfg.MarkStyle(), convey.ShouldEqual, purfectclock.MarkNumerals)
				convey.So(cfg.PollIntervalMS, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When a YAML file is named by the environment", func() {
			path := writeConfigFile(t, `
aspect_ratio: 0.5
theme: rose_pine_dawn
marks: numerals
poll_interval_ms: 40
log_level: debug
`)
			_ = os.Setenv("PURFECTCLOCK_CONFIG", path)
			_ = os.Setenv("PURFECTCLOCK_POLL_INTERVAL_MS", "15")

			cfg, err := config.Load(ctx, config.Overrides{})

			convey.Convey("Then file values load and env still wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AspectRatio, convey.ShouldEqual, 0.5)
				convey.So(cfg.Theme, convey.ShouldEqual, "rose_pine_dawn")
				convey.So(cfg.Marks, convey.ShouldEqual, "numerals")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.PollIntervalMS, convey.ShouldEqual, 15)
			})
		})

		convey.Convey("When command-line overrides are given on top of a file", func() {
			path := writeConfigFile(t, "aspect_ratio: 0.5\ntheme: rose_pine\n")

			cfg, err := config.Load(ctx, config.Overrides{
				ConfigFile:   path,
				AspectRatio:  ratio(0.62),
				Theme:        "rose_pine_moon",
				PollInterval: 5 * time.Millisecond,
				LogFile:      "/tmp/clock.log",
			})

			convey.Convey("Then the command line wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AspectRatio, convey.ShouldEqual, 0.62)
				convey.So(cfg.Theme, convey.ShouldEqual, "rose_pine_moon")
				convey.So(cfg.PollIntervalMS, convey.ShouldEqual, 5)
				convey.So(cfg.LogFile, convey.ShouldEqual, "/tmp/clock.log")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_, err := config.Load(ctx, config.Overrides{
				ConfigFile:  filepath.Join(t.TempDir(), "absent.yaml"),
				AspectRatio: ratio(0.6),
			})

			convey.Convey("Then it reports a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file is malformed", func() {
			path := writeConfigFile(t, "aspect_ratio: [0.6\n")
			_, err := config.Load(ctx, config.Overrides{ConfigFile: path})

			convey.Convey("Then it reports a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the environment holds a non-numeric aspect ratio", func() {
			_ = os.Setenv("PURFECTCLOCK_ASPECT_RATIO", "wide")
			_, err := config.Load(ctx, config.Overrides{})

			convey.Convey("Then unmarshalling fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := config.Load(cctx, config.Overrides{AspectRatio: ratio(0.6)})

			convey.Convey("Then Load returns the context error", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})
}
