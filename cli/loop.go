package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/phroun/purfectclock"
	"github.com/phroun/purfectclock/pkg/logger"
	"github.com/phroun/purfectclock/pkg/metrics"
)

// DefaultPollInterval is how long each iteration waits for a key.
const DefaultPollInterval = 10 * time.Millisecond

// Screen is where frames go
type Screen interface {
	io.Writer
	Size() (cols, rows int, err error)
}

// KeySource delivers key presses with a bounded wait
type KeySource interface {
	Poll(timeout time.Duration) (Key, error)
}

// RunOptions configures the clock loop
type RunOptions struct {
	AspectRatio  float64
	Theme        purfectclock.Theme
	Face         purfectclock.FaceOptions
	PollInterval time.Duration
	ColorDepth   int

	Clock   purfectclock.Clock // default: system clock
	Logger  logger.Logger      // default: no-op
	Metrics *metrics.Manager   // default: private manager
}

// Runner drives the clock: sample the time, paint a frame, poll for a key,
// repeat. Everything happens on the calling goroutine.
type Runner struct {
	screen   Screen
	keys     KeySource
	opts     RunOptions
	canvas   *purfectclock.Canvas
	renderer *Renderer
	log      logger.Logger
	metrics  *metrics.Manager

	degenerate bool
}

// NewRunner validates opts and prepares a runner
func NewRunner(screen Screen, keys KeySource, opts RunOptions) (*Runner, error) {
	if err := purfectclock.ValidateAspectRatio(opts.AspectRatio); err != nil {
		return nil, err
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Clock == nil {
		opts.Clock = purfectclock.SystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewManager()
	}
	if opts.Theme.Name == "" {
		opts.Theme = purfectclock.DefaultTheme()
	}

	return &Runner{
		screen:   screen,
		keys:     keys,
		opts:     opts,
		canvas:   purfectclock.NewCanvas(0, 0),
		renderer: NewRenderer(screen, opts.ColorDepth),
		log:      opts.Logger,
		metrics:  opts.Metrics,
	}, nil
}

// Run loops until "q" is pressed or ctx is done, both of which return nil.
// Failing to read the terminal size, write a frame or read input ends the
// loop with an error.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info(ctx, "clock started",
		logger.Float64("aspect_ratio", r.opts.AspectRatio),
		logger.String("theme", r.opts.Theme.Name),
		logger.String("marks", r.opts.Face.Marks.String()),
		logger.Any("poll_interval", r.opts.PollInterval),
	)

	for {
		if err := ctx.Err(); err != nil {
			r.log.Info(ctx, "clock stopped", logger.String("reason", context.Cause(ctx).Error()))
			return nil
		}

		if err := r.Frame(ctx); err != nil {
			return err
		}

		key, err := r.keys.Poll(r.opts.PollInterval)
		if err != nil {
			return err
		}
		switch key {
		case KeyQuit:
			r.metrics.ObserveKey(key.String())
			r.log.Info(ctx, "clock stopped", logger.String("reason", "quit key"))
			return nil
		case KeyOther:
			r.metrics.ObserveKey(key.String())
		}
	}
}

// Frame paints one frame for the current time and terminal size. A
// terminal too small for a face gets a blank frame.
func (r *Runner) Frame(ctx context.Context) error {
	start := time.Now()

	cols, rows, err := r.screen.Size()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalSize, err)
	}

	sample := purfectclock.SampleTime(r.opts.Clock.Now())
	r.canvas.Resize(cols, rows)

	list, err := purfectclock.RenderFace(cols, rows, r.opts.AspectRatio, r.opts.Theme, sample, r.opts.Face)
	switch {
	case errors.Is(err, purfectclock.ErrDegenerateViewport):
		r.canvas.SetBackground(r.opts.Theme.Background)
		r.metrics.ObserveDegenerateFrame()
		if !r.degenerate {
			r.log.Debug(ctx, "terminal too small for clock face",
				logger.Int("cols", cols), logger.Int("rows", rows))
		}
		r.degenerate = true
	case err != nil:
		return err
	default:
		r.degenerate = false
		list.Paint(r.canvas)
	}

	if err := r.renderer.Render(r.canvas); err != nil {
		return err
	}
	r.metrics.ObserveFrame(time.Since(start), cols, rows)
	return nil
}
