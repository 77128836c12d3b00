package purfectclock

import (
	"fmt"
	"math"
)

// ViewportMargin is subtracted from the limiting dimension, in character
// cells, so the bezel never touches the terminal edge.
const ViewportMargin = 1.0

// Viewport is the coordinate space the clock face is drawn in. The face is
// centered at the origin; x spans [-WidthBound, WidthBound] and y spans
// [-HeightBound, HeightBound].
type Viewport struct {
	MinSide     float64
	WidthBound  float64
	HeightBound float64
}

// ComputeViewport sizes the coordinate space for a cols x rows terminal whose
// cells have the given width-to-height aspect ratio. The limiting dimension,
// minus the margin, maps to a unit radius, so a circle of radius 1 always fits.
func ComputeViewport(cols, rows int, aspect float64) (Viewport, error) {
	if err := ValidateAspectRatio(aspect); err != nil {
		return Viewport{}, err
	}
	if cols <= 0 || rows <= 0 {
		return Viewport{}, fmt.Errorf("%w: %dx%d", ErrDegenerateViewport, cols, rows)
	}

	w := float64(cols)
	h := float64(rows)
	minSide := math.Min(w*aspect, h) - ViewportMargin
	if !(minSide > 0) {
		return Viewport{}, fmt.Errorf("%w: %dx%d at aspect %v", ErrDegenerateViewport, cols, rows, aspect)
	}

	vp := Viewport{
		MinSide:     minSide,
		WidthBound:  w / minSide * aspect,
		HeightBound: h / minSide,
	}
	if !finitePositive(vp.WidthBound) || !finitePositive(vp.HeightBound) {
		return Viewport{}, fmt.Errorf("%w: %dx%d at aspect %v", ErrDegenerateViewport, cols, rows, aspect)
	}
	return vp, nil
}

// ValidateAspectRatio rejects zero, negative, NaN and infinite ratios.
func ValidateAspectRatio(aspect float64) error {
	if !finitePositive(aspect) {
		return fmt.Errorf("%w: %v", ErrInvalidAspectRatio, aspect)
	}
	return nil
}

// XBounds returns the horizontal extent.
func (v Viewport) XBounds() [2]float64 {
	return [2]float64{-v.WidthBound, v.WidthBound}
}

// YBounds returns the vertical extent.
func (v Viewport) YBounds() [2]float64 {
	return [2]float64{-v.HeightBound, v.HeightBound}
}

// Fits reports whether a circle of radius r centered at the origin lies
// strictly inside the viewport.
func (v Viewport) Fits(r float64) bool {
	return r < v.WidthBound && r < v.HeightBound
}

func finitePositive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
