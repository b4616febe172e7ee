package spectate

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/plinko/internal/plinko"
)

// ErrStopped is returned by commands sent after the runner has exited.
var ErrStopped = errors.New("runner stopped")

type command func(*Runner)

// Runner steps a simulation on its own goroutine. Everything that touches
// the simulation runs inside Run; other goroutines send commands.
type Runner struct {
	sim   *plinko.Simulation
	board boardView

	tps         int
	broadcastHz int
	publish     func(*Snapshot)

	commands chan command
	done     chan struct{}

	mu     sync.RWMutex
	latest *Snapshot
}

// NewRunner wraps sim. publish, when non-nil, receives the latest snapshot
// broadcastHz times a second.
func NewRunner(sim *plinko.Simulation, tps, broadcastHz int, publish func(*Snapshot)) *Runner {
	if tps <= 0 {
		tps = 60
	}
	r := &Runner{
		sim:         sim,
		board:       newBoardView(sim.Layout()),
		tps:         tps,
		broadcastHz: broadcastHz,
		publish:     publish,
		commands:    make(chan command, 64),
		done:        make(chan struct{}),
	}
	r.latest = newSnapshot(sim.Snapshot(), r.board, sim.Tally())
	return r
}

// Run steps the simulation until ctx ends.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	stepTicker := time.NewTicker(time.Second / time.Duration(r.tps))
	defer stepTicker.Stop()

	var broadcast <-chan time.Time
	if r.publish != nil && r.broadcastHz > 0 {
		t := time.NewTicker(time.Second / time.Duration(r.broadcastHz))
		defer t.Stop()
		broadcast = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stepTicker.C:
			r.step()
		case <-broadcast:
			r.publish(r.Latest())
		}
	}
}

// step applies queued commands, advances one tick and publishes the
// resulting state as the latest snapshot.
func (r *Runner) step() {
	for pending := true; pending; {
		select {
		case cmd := <-r.commands:
			cmd(r)
		default:
			pending = false
		}
	}

	_, st := r.sim.Tick()
	for _, bin := range st.Landed {
		log.Printf("[sim] ball landed in bin %d", bin)
	}

	snap := newSnapshot(r.sim.Snapshot(), r.board, r.sim.Tally())
	r.mu.Lock()
	r.latest = snap
	r.mu.Unlock()
}

// Latest returns the most recent snapshot. Callers must not modify it.
func (r *Runner) Latest() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

// AddBall queues a ball spawn for the next tick.
func (r *Runner) AddBall(ctx context.Context) error {
	return r.send(ctx, func(r *Runner) {
		b := r.sim.AddBall()
		log.Printf("[sim] ball %d spawned at x=%.1f", len(r.sim.Balls()), b.X)
	})
}

// Resize queues a layout rebuild for a side x side canvas.
func (r *Runner) Resize(ctx context.Context, side float64) error {
	return r.send(ctx, func(r *Runner) {
		r.sim.Resize(side, side)
		r.board = newBoardView(r.sim.Layout())
		log.Printf("[sim] canvas resized to %.0f", side)
	})
}

func (r *Runner) send(ctx context.Context, cmd command) error {
	select {
	case <-r.done:
		return ErrStopped
	default:
	}
	select {
	case r.commands <- cmd:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "queue command")
	}
}
