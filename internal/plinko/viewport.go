package plinko

import "math"

// Viewport is the square canvas region inside a host window. Side is in
// logical units (what the layout sees); Scale is the device pixel ratio.
type Viewport struct {
	Side  float64
	Scale float64
}

// FitViewport sizes a square to the smaller window dimension minus margin
// on every side. A non-positive scale is treated as 1.
func FitViewport(outerWidth, outerHeight, margin, scale float64) Viewport {
	if scale <= 0 {
		scale = 1
	}
	side := math.Min(outerWidth, outerHeight) - 2*margin
	if side < 1 {
		side = 1
	}
	return Viewport{Side: side, Scale: scale}
}

// Pixels is the backing-buffer side in device pixels.
func (v Viewport) Pixels() int {
	return int(math.Round(v.Side * v.Scale))
}
