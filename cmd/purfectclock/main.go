// Command purfectclock shows a live analog clock in the terminal.
//
// Usage:
//
//	purfectclock 0.5                 # cells twice as tall as wide
//	purfectclock 0.5 rose_pine       # with a theme
//	purfectclock --marks=numerals 0.5
//	purfectclock --list-themes
//
// Press q to quit.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/phroun/purfectclock"
	"github.com/phroun/purfectclock/cli"
	"github.com/phroun/purfectclock/internal/config"
	"github.com/phroun/purfectclock/pkg/logger"
	"github.com/phroun/purfectclock/pkg/metrics"
)

// CLI is the command-line grammar
type CLI struct {
	AspectRatio *float64 `arg:"" optional:"" name:"aspect-ratio" help:"Width of a terminal cell divided by its height, e.g. 0.5."`
	Theme       string   `arg:"" optional:"" name:"theme" help:"Color theme: ${themes}."`

	Marks        string        `help:"Hour marks at 12, 3, 6 and 9: ticks or numerals." placeholder:"STYLE"`
	PollInterval time.Duration `help:"How long to wait for a key between frames (default 10ms)." placeholder:"DURATION"`
	Config       string        `type:"path" help:"YAML configuration file." placeholder:"FILE"`
	LogLevel     string        `help:"Log level: debug, info, warn or error." placeholder:"LEVEL"`
	LogFile      string        `type:"path" help:"Write logs to this file instead of discarding them." placeholder:"FILE"`
	ListThemes   bool          `help:"Print the available themes and exit."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var c CLI
	exitCode := -1
	parser, err := kong.New(&c,
		kong.Name("purfectclock"),
		kong.Description("An analog clock for the terminal. Press q to quit."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
		kong.Vars{"themes": strings.Join(purfectclock.ThemeNames(), ", ")},
	)
	if err != nil {
		fmt.Fprintf(stderr, "purfectclock: %v\n", err)
		return 1
	}

	_, err = parser.Parse(args)
	if exitCode >= 0 {
		// --help already printed
		return exitCode
	}
	if err != nil {
		parser.FatalIfErrorf(err)
		if exitCode < 0 {
			exitCode = 1
		}
		return exitCode
	}

	if c.ListThemes {
		for _, name := range purfectclock.ThemeNames() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	cfg, err := config.Load(ctx, config.Overrides{
		ConfigFile:   c.Config,
		AspectRatio:  c.AspectRatio,
		Theme:        c.Theme,
		Marks:        c.Marks,
		PollInterval: c.PollInterval,
		LogLevel:     c.LogLevel,
		LogFile:      c.LogFile,
	})
	if err != nil {
		fmt.Fprintf(stderr, "purfectclock: %v\n", err)
		return 1
	}

	if err := logger.InitFile(cfg.LogFile); err != nil {
		fmt.Fprintf(stderr, "purfectclock: %v\n", err)
		return 1
	}
	defer logger.Close()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "purfectclock: %v\n", err)
		return 1
	}
	log := logger.Named("purfectclock")

	theme, ok := purfectclock.LookupTheme(cfg.Theme)
	if !ok {
		log.Warn(ctx, "unknown theme, using default", logger.String("theme", cfg.Theme))
	}

	term, err := cli.New(cli.Options{})
	if err != nil {
		fmt.Fprintf(stderr, "purfectclock: %v\n", err)
		return 1
	}
	caps := term.Capabilities()
	log.Info(ctx, "terminal detected",
		logger.String("term", caps.TermType),
		logger.Int("color_depth", caps.ColorDepth),
		logger.Any("color", caps.SupportsColor()),
		logger.Int("cols", caps.Width),
		logger.Int("rows", caps.Height),
	)

	m := metrics.NewManager()
	opts := cli.RunOptions{
		AspectRatio:  cfg.AspectRatio,
		Theme:        theme,
		Face:         purfectclock.FaceOptions{Marks: cfg.MarkStyle()},
		PollInterval: cfg.PollInterval(),
		ColorDepth:   caps.ColorDepth,
		Logger:       log.Named("loop"),
		Metrics:      m,
	}

	code := 0
	if err := session(ctx, term, term.Input(), opts, log); err != nil {
		log.Error(ctx, "clock failed", logger.Error(err))
		fmt.Fprintf(stderr, "purfectclock: %v\n", err)
		code = 1
	}

	if sum, err := m.Summary(); err != nil {
		log.Warn(ctx, "metrics summary unavailable", logger.Error(err))
	} else {
		log.Info(ctx, "session summary",
			logger.Any("frames", sum.FramesRendered),
			logger.Any("degenerate_frames", sum.FramesDegenerate),
			logger.Any("key_events", sum.KeyEvents),
			logger.Float64("mean_frame_ms", sum.MeanFrameMillis),
		)
	}
	return code
}

// rawTerminal is the part of cli.Terminal a session needs
type rawTerminal interface {
	cli.Screen
	Start() error
	Close() error
}

// session owns raw mode. The terminal is restored on every way out,
// including a panic, before anything is printed to stderr.
func session(ctx context.Context, term rawTerminal, keys cli.KeySource, opts cli.RunOptions, log logger.Logger) (err error) {
	if err := term.Start(); err != nil {
		_ = term.Close()
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "panic in clock loop",
				logger.Any("panic", r),
				logger.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	defer func() {
		if closeErr := term.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	runner, err := cli.NewRunner(term, keys, opts)
	if err != nil {
		return err
	}
	return runner.Run(ctx)
}
