package plinko

import (
	"image/color"

	"github.com/iburimskiy/plinko/internal/config"
	"github.com/iburimskiy/plinko/internal/palette"
)

var sinkRamp = palette.MustRamp(config.SinkStopA, config.SinkStopB)

// Peg is a fixed circular collider in the lattice.
type Peg struct {
	X, Y   float64
	Radius float64
}

// Sink is a capture bin. X, Y is the top-left corner of its box.
type Sink struct {
	X, Y          float64
	Width, Height float64
	Color         color.RGBA
	Shadow        color.RGBA
}

// Captures reports whether a ball centred at (x, y) with radius r is inside
// the bin's horizontal span with its bottom edge past the bin's top edge.
// The box is the drawn one, anchored at the top-left. An earlier version
// tested a box centred on (X, Y), half a bin off from what was drawn; do
// not go back to it.
func (s Sink) Captures(x, y, r float64) bool {
	return x > s.X && x < s.X+s.Width && y+r > s.Y
}

// Layout is the static part of the board for one canvas size.
type Layout struct {
	Width, Height float64
	Pegs          []Peg
	Sinks         []Sink
}

// NewLayout builds pegs and sinks for a canvas. It depends on width and
// height only.
func NewLayout(width, height float64) Layout {
	return Layout{
		Width:  width,
		Height: height,
		Pegs:   buildPegs(width, config.PegRows),
		Sinks:  buildSinks(width, height, config.SinkCount),
	}
}

// PegCount is the number of pegs in a lattice with the given row bound.
func PegCount(rows int) int {
	n := 0
	for r := config.PegFirstRow; r < rows; r++ {
		n += r + 1
	}
	return n
}

func buildPegs(width float64, rows int) []Peg {
	pegs := make([]Peg, 0, PegCount(rows))
	for row := config.PegFirstRow; row < rows; row++ {
		y := float64(row * config.RowSpacing)
		for col := 0; col <= row; col++ {
			x := width/2 - config.PegPitch*(float64(row)/2-float64(col))
			pegs = append(pegs, Peg{X: x, Y: y, Radius: config.PegRadius})
		}
	}
	return pegs
}

func buildSinks(width, height float64, count int) []Sink {
	const (
		size = float64(config.SinkSize)
		gap  = 2 * config.PegRadius
	)
	sinks := make([]Sink, 0, count)
	left := width/2 - float64(count)/2*(size+gap)
	for i := 0; i < count; i++ {
		fill := sinkRamp.At(palette.TriangleProgress(i, count))
		sinks = append(sinks, Sink{
			X:      left + float64(i)*(size+gap) + config.PegRadius,
			Y:      height * config.SinkRowY,
			Width:  size,
			Height: size,
			Color:  fill,
			Shadow: palette.Saturate(fill, config.ShadowBoost),
		})
	}
	return sinks
}
