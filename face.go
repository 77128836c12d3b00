package purfectclock

import (
	"fmt"
	"math"
)

// MarkStyle selects how the four cardinal positions are marked on the face.
type MarkStyle int

const (
	MarkTicks    MarkStyle = iota // Short radial lines
	MarkNumerals                  // "12", "3", "6", "9"
)

// ParseMarkStyle parses "ticks" or "numerals".
func ParseMarkStyle(s string) (MarkStyle, error) {
	switch s {
	case "", "ticks":
		return MarkTicks, nil
	case "numerals":
		return MarkNumerals, nil
	}
	return MarkTicks, fmt.Errorf("unknown mark style %q", s)
}

func (m MarkStyle) String() string {
	if m == MarkNumerals {
		return "numerals"
	}
	return "ticks"
}

// Face geometry, as fractions of the bezel radius unless noted.
const (
	DefaultRadius = 0.95

	tickInner   = 0.8
	tickOuter   = 1.0
	numeralDist = 0.9

	// Hand lengths are absolute viewport units.
	secondHandLength = 0.8
	minuteHandLength = 0.7
	hourHandLength   = 0.6
)

var numerals = [4]string{"12", "3", "6", "9"}

// FaceOptions tunes the clock face. The zero value is a ticked face of
// DefaultRadius.
type FaceOptions struct {
	Radius float64
	Marks  MarkStyle
}

func (o FaceOptions) radius() float64 {
	if o.Radius > 0 && o.Radius <= 1 {
		return o.Radius
	}
	return DefaultRadius
}

// Hand describes one clock hand as a segment from the center.
type Hand struct {
	Angle  float64
	Length float64
	Color  Color
}

// Tip returns the hand's far end. x follows sin and y follows cos, so angles
// run clockwise from 12 o'clock.
func (h Hand) Tip() Point {
	return polar(h.Angle, h.Length)
}

// Hands returns the second, minute and hour hands, in drawing order.
func Hands(a Angles, theme Theme) [3]Hand {
	return [3]Hand{
		{Angle: a.Second, Length: secondHandLength, Color: theme.Second},
		{Angle: a.Minute, Length: minuteHandLength, Color: theme.Minute},
		{Angle: a.Hour, Length: hourHandLength, Color: theme.Hour},
	}
}

func polar(angle, dist float64) Point {
	return Point{X: math.Sin(angle) * dist, Y: math.Cos(angle) * dist}
}

// RenderFace records one complete clock frame for a cols x rows terminal.
// The result depends only on its arguments.
func RenderFace(cols, rows int, aspect float64, theme Theme, sample TimeSample, opts FaceOptions) (*DisplayList, error) {
	vp, err := ComputeViewport(cols, rows, aspect)
	if err != nil {
		return nil, err
	}

	var rec Recorder
	rec.SetBounds(vp.XBounds(), vp.YBounds())
	rec.SetBackground(theme.Background)
	DrawFace(&rec, theme, sample, opts)
	return rec.Finish(), nil
}

// DrawFace paints the bezel, cardinal marks and hands onto p, assuming p's
// bounds are already set.
func DrawFace(p Painter, theme Theme, sample TimeSample, opts FaceOptions) {
	r := opts.radius()
	origin := Point{}

	p.DrawCircle(origin, r, theme.Bezel)

	for i, angle := range CardinalAngles() {
		switch opts.Marks {
		case MarkNumerals:
			p.DrawText(polar(angle, r*numeralDist), numerals[i], theme.Ticks)
		default:
			p.DrawLine(polar(angle, r*tickInner), polar(angle, r*tickOuter), theme.Ticks)
		}
	}

	for _, h := range Hands(ComputeAngles(sample), theme) {
		p.DrawLine(origin, h.Tip(), h.Color)
	}
}
