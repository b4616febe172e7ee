package spectate

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/plinko/internal/plinko"
)

func newTestRunner(publish func(*Snapshot)) *Runner {
	sim := plinko.New(700, 700, rand.New(rand.NewSource(3)))
	return NewRunner(sim, 60, 30, publish)
}

func TestNewRunnerSnapshot(t *testing.T) {
	r := newTestRunner(nil)
	s := r.Latest()
	if s.Tick != 0 {
		t.Errorf("tick = %d, want 0", s.Tick)
	}
	if len(s.Pegs) != plinko.PegCount(16) {
		t.Errorf("pegs = %d, want %d", len(s.Pegs), plinko.PegCount(16))
	}
	if len(s.Sinks) != 15 || len(s.Tally) != 15 {
		t.Errorf("sinks = %d, tally = %d, want 15 each", len(s.Sinks), len(s.Tally))
	}
	if s.Sinks[0].Color != "#b7183c" || s.Sinks[14].Color != "#b7183c" {
		t.Errorf("edge sinks = %s, %s", s.Sinks[0].Color, s.Sinks[14].Color)
	}
	if len(s.Balls) != 0 {
		t.Errorf("balls = %d, want 0", len(s.Balls))
	}
}

func TestRunnerAppliesCommandsOnStep(t *testing.T) {
	r := newTestRunner(nil)
	ctx := context.Background()

	if err := r.AddBall(ctx); err != nil {
		t.Fatal(err)
	}
	if err := r.AddBall(ctx); err != nil {
		t.Fatal(err)
	}
	if got := len(r.Latest().Balls); got != 0 {
		t.Fatalf("balls before step = %d", got)
	}

	r.step()
	s := r.Latest()
	if s.Tick != 1 {
		t.Errorf("tick = %d, want 1", s.Tick)
	}
	if len(s.Balls) != 2 {
		t.Fatalf("balls = %d, want 2", len(s.Balls))
	}
	for i, b := range s.Balls {
		if b.Bin != -1 || b.Resting {
			t.Errorf("ball %d should still be falling: %+v", i, b)
		}
		if b.Y <= 50 {
			t.Errorf("ball %d did not fall: y = %v", i, b.Y)
		}
	}
}

func TestRunnerResize(t *testing.T) {
	r := newTestRunner(nil)
	before := r.Latest()

	if err := r.Resize(context.Background(), 400); err != nil {
		t.Fatal(err)
	}
	r.step()

	s := r.Latest()
	if s.Width != 400 || s.Height != 400 {
		t.Errorf("size = %vx%v, want 400x400", s.Width, s.Height)
	}
	if s.Sinks[0].Y != 340 {
		t.Errorf("sink y = %v, want 340", s.Sinks[0].Y)
	}
	if before.Width != 700 || before.Sinks[0].Y != 595 {
		t.Error("published snapshot changed after resize")
	}
}

func TestRunnerSnapshotsAreImmutable(t *testing.T) {
	r := newTestRunner(nil)
	_ = r.AddBall(context.Background())
	r.step()
	first := r.Latest()
	y := first.Balls[0].Y

	for i := 0; i < 5; i++ {
		r.step()
	}
	if first.Tick != 1 || first.Balls[0].Y != y {
		t.Errorf("old snapshot mutated: tick %d y %v", first.Tick, first.Balls[0].Y)
	}
	if r.Latest().Tick != 6 {
		t.Errorf("latest tick = %d, want 6", r.Latest().Tick)
	}
}

func TestRunnerTalliesLandings(t *testing.T) {
	r := newTestRunner(nil)
	for i := 0; i < 10; i++ {
		_ = r.AddBall(context.Background())
	}
	for i := 0; i < 2000; i++ {
		r.step()
	}

	s := r.Latest()
	total := 0
	for _, n := range s.Tally {
		total += n
	}
	resting := 0
	for _, b := range s.Balls {
		if b.Resting {
			resting++
		}
	}
	if total != resting {
		t.Errorf("tally total %d != resting balls %d", total, resting)
	}
}

func TestRunnerRun(t *testing.T) {
	published := make(chan *Snapshot, 64)
	r := newTestRunner(func(s *Snapshot) {
		select {
		case published <- s:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	if err := r.AddBall(ctx); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for len(r.Latest().Balls) == 0 {
		select {
		case <-deadline:
			t.Fatal("ball never appeared")
		case <-time.After(5 * time.Millisecond):
		}
	}

	select {
	case s := <-published:
		if s == nil {
			t.Error("published nil snapshot")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("nothing published")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}

	if err := r.AddBall(context.Background()); !errors.Is(err, ErrStopped) {
		t.Errorf("AddBall after stop = %v, want ErrStopped", err)
	}
}
