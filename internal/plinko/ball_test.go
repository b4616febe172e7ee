package plinko

import (
	"math"
	"testing"

	"github.com/iburimskiy/plinko/internal/config"
)

func TestFreeFallOneFrame(t *testing.T) {
	x0, y0 := 120.0, 40.0
	b := NewBall(x0, y0)
	c := b.Update(nil, nil)

	if want := y0 + config.Gravity; b.X != x0 || b.Y != want {
		t.Errorf("position = (%v, %v), want (%v, %v)", b.X, b.Y, x0, want)
	}
	if b.VX != 0 || b.VY != config.Gravity {
		t.Errorf("velocity = (%v, %v), want (0, %v)", b.VX, b.VY, config.Gravity)
	}
	if c.Pegs != 0 || c.Landed {
		t.Errorf("unexpected contact %+v", c)
	}
}

func TestPegCollisionResponse(t *testing.T) {
	tests := []struct {
		name       string
		x, y       float64
		vx, vy     float64
		pegX, pegY float64
	}{
		{"glancing from upper left", 96, 94, 1.5, 2, 100, 100},
		{"from the right", 106, 99, -3, 0.4, 100, 100},
		{"straight down onto top", 100, 88, 0, 3, 100, 100},
		{"from below", 102, 108, 0.2, -4, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBall(tt.x, tt.y)
			b.VX, b.VY = tt.vx, tt.vy
			peg := Peg{X: tt.pegX, Y: tt.pegY, Radius: config.PegRadius}

			// Expected values follow the integration step.
			vy := tt.vy + config.Gravity
			x, y := tt.x+tt.vx, tt.y+vy
			dist := math.Hypot(x-peg.X, y-peg.Y)
			if dist >= b.Radius+peg.Radius {
				t.Fatalf("test setup does not overlap: dist=%v", dist)
			}
			angle := math.Atan2(y-peg.Y, x-peg.X)
			speed := math.Hypot(tt.vx, vy)
			overlap := b.Radius + peg.Radius - dist

			c := b.Update([]Peg{peg}, nil)

			if c.Pegs != 1 {
				t.Errorf("Pegs = %d, want 1", c.Pegs)
			}
			wantVX := math.Cos(angle) * speed * config.HorizontalFriction
			wantVY := math.Sin(angle) * speed * config.VerticalFriction
			if !approx(b.VX, wantVX) || !approx(b.VY, wantVY) {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", b.VX, b.VY, wantVX, wantVY)
			}
			if !approx(b.X, x+math.Cos(angle)*overlap) || !approx(b.Y, y+math.Sin(angle)*overlap) {
				t.Errorf("position = (%v, %v) not pushed out along normal", b.X, b.Y)
			}
			// After the push the ball just touches the peg.
			if d := math.Hypot(b.X-peg.X, b.Y-peg.Y); !approx(d, b.Radius+peg.Radius) {
				t.Errorf("post-push distance = %v, want %v", d, b.Radius+peg.Radius)
			}
		})
	}
}

func TestPegMissLeavesVelocity(t *testing.T) {
	b := NewBall(50, 50)
	b.VX = 1
	c := b.Update([]Peg{{X: 80, Y: 80, Radius: config.PegRadius}}, nil)
	if c.Pegs != 0 {
		t.Errorf("Pegs = %d, want 0", c.Pegs)
	}
	if b.VX != 1 || b.VY != config.Gravity {
		t.Errorf("velocity changed without contact: (%v, %v)", b.VX, b.VY)
	}
}

func TestConcentricPegUsesZeroAngle(t *testing.T) {
	b := NewBall(50, 50)
	// Land exactly on the peg centre after one integration step.
	vy := b.VY + config.Gravity
	peg := Peg{X: 50, Y: b.Y + vy, Radius: config.PegRadius}

	b.Update([]Peg{peg}, nil)

	if math.IsNaN(b.X) || math.IsNaN(b.Y) || math.IsNaN(b.VX) || math.IsNaN(b.VY) {
		t.Fatalf("NaN state after concentric hit: %+v", b)
	}
	if !approx(b.X, 50+b.Radius+peg.Radius) || !approx(b.Y, peg.Y) {
		t.Errorf("position = (%v, %v), want pushed along +X", b.X, b.Y)
	}
	if !approx(b.VX, config.Gravity*config.HorizontalFriction) || !approx(b.VY, 0) {
		t.Errorf("velocity = (%v, %v)", b.VX, b.VY)
	}
}

func TestOverlapsApplyInOrder(t *testing.T) {
	// The first peg bounces the ball straight up; the second, now level with
	// it on the right, overrides that with a leftward push.
	b := NewBall(100, 100-config.Gravity)
	pegs := []Peg{
		{X: 100, Y: 108, Radius: config.PegRadius},
		{X: 108, Y: 97, Radius: config.PegRadius},
	}
	c := b.Update(pegs, nil)
	if c.Pegs != 2 {
		t.Fatalf("Pegs = %d, want 2", c.Pegs)
	}
	if b.VX >= 0 {
		t.Errorf("expected leftward velocity from the second peg, got %v", b.VX)
	}
	if math.Abs(b.VY) > 1e-6 {
		t.Errorf("upward bounce from the first peg should be overridden, VY = %v", b.VY)
	}
}

func TestSinkCaptureAndRest(t *testing.T) {
	sinks := []Sink{
		{X: 0, Y: 100, Width: 30, Height: 30},
		{X: 38, Y: 100, Width: 30, Height: 30},
	}
	b := NewBall(53, 90)
	b.VX, b.VY = 0.3, 5

	c := b.Update(nil, sinks)
	if !c.Landed || c.Bin != 1 {
		t.Fatalf("contact = %+v, want landed in bin 1", c)
	}
	if b.VX != 0 || b.VY != 0 || !b.Resting {
		t.Fatalf("ball not at rest: %+v", b)
	}

	x, y := b.X, b.Y
	for i := 0; i < 50; i++ {
		b.Update(nil, sinks)
	}
	if b.X != x || b.Y != y || b.VX != 0 || b.VY != 0 {
		t.Errorf("resting ball moved: (%v, %v) v=(%v, %v)", b.X, b.Y, b.VX, b.VY)
	}
	if b.Bin != 1 {
		t.Errorf("Bin = %d, want 1", b.Bin)
	}
}

func TestSinkMissInGap(t *testing.T) {
	sinks := []Sink{
		{X: 0, Y: 100, Width: 30, Height: 30},
		{X: 38, Y: 100, Width: 30, Height: 30},
	}
	b := NewBall(34, 120)
	c := b.Update(nil, sinks)
	if c.Landed || b.Resting || b.Bin != -1 {
		t.Errorf("ball in the gap should keep falling: %+v", b)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
