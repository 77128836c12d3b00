package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phroun/purfectclock"
	"github.com/phroun/purfectclock/internal/vtscreen"
)

// requireScreenMatches checks that what a terminal shows equals the canvas.
func requireScreenMatches(t *testing.T, screen *vtscreen.Screen, c *purfectclock.Canvas, depth int) {
	t.Helper()
	cols, rows := c.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			want := c.Cell(x, y)
			want.Foreground = want.Foreground.Downgrade(depth)
			want.Background = want.Background.Downgrade(depth)
			if want.IsBlank() {
				want.Char = ' '
				want.Foreground = purfectclock.DefaultColor
			}
			require.Equal(t, want, screen.Cell(x, y), "cell %d,%d", x, y)
		}
	}
}

func TestDifferentialFramesReproduceCanvas(t *testing.T) {
	const cols, rows = 60, 24
	for _, depth := range []int{purfectclock.ColorDepth16, purfectclock.ColorDepth256, purfectclock.ColorDepthTrueColor} {
		screen := vtscreen.New(cols, rows)
		r := NewRenderer(screen, depth)
		c := purfectclock.NewCanvas(cols, rows)
		theme, _ := purfectclock.LookupTheme("rose_pine_dawn")

		start := time.Date(2024, 5, 6, 11, 58, 50, 0, time.UTC)
		for i := 0; i < 30; i++ {
			sample := purfectclock.SampleTime(start.Add(time.Duration(i) * 700 * time.Millisecond))
			list, err := purfectclock.RenderFace(cols, rows, 0.5, theme, sample, purfectclock.FaceOptions{Marks: purfectclock.MarkNumerals})
			require.NoError(t, err)

			c.Resize(cols, rows)
			list.Paint(c)
			require.NoError(t, r.Render(c))
			requireScreenMatches(t, screen, c, depth)
		}
	}
}

func TestRunnerOutputOnVirtualScreen(t *testing.T) {
	screen := &sizedScreen{Screen: vtscreen.New(50, 20)}
	keys := &fakeKeys{keys: []Key{KeyNone, KeyQuit}}
	opts := testRunOptions(nil)
	opts.Face = purfectclock.FaceOptions{Marks: purfectclock.MarkNumerals}

	r, err := NewRunner(screen, keys, opts)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, r.Run(ctx))

	require.Contains(t, screen.Text(), "12")
	requireScreenMatches(t, screen.Screen, r.canvas, opts.ColorDepth)
}

// sizedScreen adapts a virtual screen to the Screen interface.
type sizedScreen struct {
	*vtscreen.Screen
}

func (s *sizedScreen) Size() (int, int, error) {
	cols, rows := s.Screen.Size()
	return cols, rows, nil
}
