package purfectclock

import (
	"math"
	"time"
)

// TimeSample is a snapshot of local wall-clock time as the clock face sees it.
type TimeSample struct {
	Hour     int     // 0-11
	Minute   int     // 0-59
	Second   int     // 0-59
	Fraction float64 // sub-second remainder, [0, 1)
}

// SampleTime converts t, in its own location, into a TimeSample.
func SampleTime(t time.Time) TimeSample {
	return TimeSample{
		Hour:     t.Hour() % 12,
		Minute:   t.Minute(),
		Second:   t.Second(),
		Fraction: float64(t.Nanosecond()) / float64(time.Second),
	}
}

// Angles holds hand angles in radians, measured clockwise from 12 o'clock.
// Values are not wrapped into [0, 2π).
type Angles struct {
	Second float64
	Minute float64
	Hour   float64
}

// ComputeAngles maps a time sample onto hand angles. The minute hand creeps
// with the seconds and the hour hand with the minutes, so the hour hand moves
// exactly 1/12 of a revolution per hour.
func ComputeAngles(t TimeSample) Angles {
	second := (float64(t.Second) + t.Fraction) / 60 * 2 * math.Pi
	minute := float64(t.Minute)/60*2*math.Pi + second/60
	hour := float64(t.Hour)/12*2*math.Pi + minute/12
	return Angles{Second: second, Minute: minute, Hour: hour}
}

// CardinalAngles returns the 12, 3, 6 and 9 o'clock positions, derived from
// the hour hand so they always agree with the hand convention.
func CardinalAngles() [4]float64 {
	var out [4]float64
	for i, hour := range []int{0, 3, 6, 9} {
		out[i] = ComputeAngles(TimeSample{Hour: hour}).Hour
	}
	return out
}

// Clock supplies the current time. Tests use a fixed clock for
// deterministic frames.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a Clock reading host local time.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}
