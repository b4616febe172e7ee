package plinko

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/iburimskiy/plinko/internal/config"
)

func newTestSim(side float64) *Simulation {
	return New(side, side, rand.New(rand.NewSource(1)))
}

func TestAddBallSpawnRange(t *testing.T) {
	sim := newTestSim(700)
	for i := 0; i < 500; i++ {
		b := sim.AddBall()
		if b.X < 350-config.SpawnJitter || b.X > 350+config.SpawnJitter {
			t.Fatalf("spawn x = %v outside jitter window", b.X)
		}
		if b.Y != config.SpawnY || b.VX != 0 || b.VY != 0 {
			t.Fatalf("spawned ball %+v", b)
		}
		if b.Radius != config.BallRadius || b.Bin != -1 || b.Resting {
			t.Fatalf("spawned ball %+v", b)
		}
	}
	if len(sim.Balls()) != 500 {
		t.Errorf("got %d balls, want 500", len(sim.Balls()))
	}
}

func TestTickReturnsPreStepFrame(t *testing.T) {
	sim := newTestSim(700)
	b := sim.AddBall()
	x0, y0 := b.X, b.Y

	frame, _ := sim.Tick()

	if len(frame.Balls) != 1 {
		t.Fatalf("frame has %d balls", len(frame.Balls))
	}
	if frame.Balls[0].X != x0 || frame.Balls[0].Y != y0 {
		t.Errorf("frame ball at (%v, %v), want pre-step (%v, %v)", frame.Balls[0].X, frame.Balls[0].Y, x0, y0)
	}
	if want := y0 + config.Gravity; b.Y != want {
		t.Errorf("live ball y = %v, want %v", b.Y, want)
	}
	if frame.Tick != 0 || sim.Ticks() != 1 {
		t.Errorf("frame.Tick=%d sim.Ticks=%d", frame.Tick, sim.Ticks())
	}

	// The frame is a copy; stepping again must not move it.
	sim.Tick()
	if frame.Balls[0].Y != y0 {
		t.Error("frame ball aliased live state")
	}
}

func TestResizeReplacesLayout(t *testing.T) {
	sim := newTestSim(700)
	before := sim.Layout()

	sim.Resize(400, 400)
	sim.Resize(400, 400)
	after := sim.Layout()

	if len(after.Pegs) != len(before.Pegs) || len(after.Sinks) != len(before.Sinks) {
		t.Fatalf("resize changed counts: pegs %d->%d sinks %d->%d",
			len(before.Pegs), len(after.Pegs), len(before.Sinks), len(after.Sinks))
	}
	if !reflect.DeepEqual(after, NewLayout(400, 400)) {
		t.Error("layout after resize differs from a fresh layout")
	}
	if after.Sinks[0].Y != 340 {
		t.Errorf("sink y = %v, want 340", after.Sinks[0].Y)
	}
	if after.Pegs[0].X == before.Pegs[0].X {
		t.Error("peg positions did not move with the canvas")
	}
}

func TestTallyCountsLandings(t *testing.T) {
	sim := newTestSim(700)
	sink := sim.Layout().Sinks[4]

	b := sim.AddBall()
	b.X = sink.X + sink.Width/2
	b.Y = sink.Y - b.Radius - 1
	b.VY = 2

	var landed []int
	for i := 0; i < 5; i++ {
		_, st := sim.Tick()
		landed = append(landed, st.Landed...)
	}

	if len(landed) != 1 || landed[0] != 4 {
		t.Fatalf("landed = %v, want [4]", landed)
	}
	tally := sim.Tally()
	if tally[4] != 1 {
		t.Errorf("tally = %v", tally)
	}
	tally[4] = 99
	if sim.Tally()[4] != 1 {
		t.Error("Tally leaked internal slice")
	}
}

func TestLongRunStaysFinite(t *testing.T) {
	sim := newTestSim(700)
	for i := 0; i < 20; i++ {
		sim.AddBall()
	}

	hits := 0
	for i := 0; i < 2000; i++ {
		_, st := sim.Tick()
		hits += st.PegHits
	}

	if hits == 0 {
		t.Error("no peg contacts in a long run")
	}
	landed := 0
	for _, n := range sim.Tally() {
		landed += n
	}
	if landed == 0 {
		t.Error("no ball reached a bin")
	}
	for i, b := range sim.Balls() {
		if math.IsNaN(b.X) || math.IsNaN(b.Y) || math.IsInf(b.VY, 0) {
			t.Errorf("ball %d has non-finite state %+v", i, b)
		}
		if b.Resting && (b.VX != 0 || b.VY != 0) {
			t.Errorf("resting ball %d has velocity (%v, %v)", i, b.VX, b.VY)
		}
	}
}

func TestSeededRunsMatch(t *testing.T) {
	run := func() []Ball {
		sim := newTestSim(700)
		for i := 0; i < 5; i++ {
			sim.AddBall()
		}
		for i := 0; i < 300; i++ {
			sim.Tick()
		}
		return sim.Snapshot().Balls
	}
	if !reflect.DeepEqual(run(), run()) {
		t.Error("same seed produced different runs")
	}
}
