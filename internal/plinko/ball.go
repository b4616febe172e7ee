package plinko

import (
	"image/color"
	"math"

	"github.com/iburimskiy/plinko/internal/config"
	"github.com/iburimskiy/plinko/internal/palette"
)

var ballColor = palette.MustHex(config.BallColor)

// Ball is the only moving entity. Balls never interact with each other.
type Ball struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Color   color.RGBA
	Resting bool
	Bin     int // index of the capturing sink, -1 while falling
}

// NewBall returns a ball at rest at (x, y).
func NewBall(x, y float64) *Ball {
	return &Ball{
		X:      x,
		Y:      y,
		Radius: config.BallRadius,
		Color:  ballColor,
		Bin:    -1,
	}
}

// Contact summarizes what a ball touched during one update.
type Contact struct {
	Pegs   int
	Landed bool
	Bin    int
}

// Speed is the magnitude of the velocity.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Update advances the ball one frame: gravity, integration, then peg and
// sink corrections in slice order. Later overlaps override earlier ones.
// A captured ball is marked resting and is skipped from then on.
func (b *Ball) Update(pegs []Peg, sinks []Sink) Contact {
	c := Contact{Bin: b.Bin}
	if b.Resting {
		return c
	}

	b.VY += config.Gravity
	b.X += b.VX
	b.Y += b.VY

	for _, p := range pegs {
		if b.bounce(p) {
			c.Pegs++
		}
	}

	for i, s := range sinks {
		if !s.Captures(b.X, b.Y, b.Radius) {
			continue
		}
		b.VX = 0
		b.VY = 0
		if !b.Resting {
			b.Resting = true
			b.Bin = i
		}
	}
	if b.Resting {
		c.Landed = true
		c.Bin = b.Bin
	}
	return c
}

// bounce applies the peg response. The new direction is the contact normal,
// scaled by the pre-collision speed and per-axis friction. This is not an
// elastic reflection.
func (b *Ball) bounce(p Peg) bool {
	dx, dy := b.X-p.X, b.Y-p.Y
	dist := math.Hypot(dx, dy)
	reach := b.Radius + p.Radius
	if dist >= reach {
		return false
	}

	// Concentric centres have no normal; atan2(0, 0) is 0, so the ball is
	// pushed along +X.
	angle := math.Atan2(dy, dx)
	speed := b.Speed()
	cos, sin := math.Cos(angle), math.Sin(angle)
	b.VX = cos * speed * config.HorizontalFriction
	b.VY = sin * speed * config.VerticalFriction

	overlap := reach - dist
	b.X += cos * overlap
	b.Y += sin * overlap
	return true
}
