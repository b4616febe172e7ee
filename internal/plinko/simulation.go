package plinko

import (
	"math/rand"

	"github.com/iburimskiy/plinko/internal/config"
)

// Frame is what a renderer draws. Pegs and Sinks share the layout's slices
// and must be treated as read-only; Balls are copies.
type Frame struct {
	Tick          uint64
	Width, Height float64
	Pegs          []Peg
	Sinks         []Sink
	Balls         []Ball
}

// Step reports what happened during one Tick.
type Step struct {
	PegHits int
	Landed  []int // bin index per ball that came to rest this tick
}

// Simulation owns the board and every ball. It is not safe for concurrent
// use; hosts keep it on a single goroutine.
type Simulation struct {
	layout Layout
	balls  []*Ball
	tally  []int
	tick   uint64
	rng    *rand.Rand
}

// New builds a simulation for a width x height canvas. rng drives ball
// spawn positions.
func New(width, height float64, rng *rand.Rand) *Simulation {
	return &Simulation{
		layout: NewLayout(width, height),
		tally:  make([]int, config.SinkCount),
		rng:    rng,
	}
}

// Resize replaces the layout for a new canvas size. Balls keep their state.
func (s *Simulation) Resize(width, height float64) {
	s.layout = NewLayout(width, height)
}

// Layout returns the current board.
func (s *Simulation) Layout() Layout {
	return s.layout
}

// Balls returns the live balls in insertion order.
func (s *Simulation) Balls() []*Ball {
	return s.balls
}

// Tally returns how many balls have come to rest in each bin.
func (s *Simulation) Tally() []int {
	out := make([]int, len(s.tally))
	copy(out, s.tally)
	return out
}

// Ticks is the number of completed steps.
func (s *Simulation) Ticks() uint64 {
	return s.tick
}

// AddBall spawns a ball at a random horizontal offset near top centre.
func (s *Simulation) AddBall() *Ball {
	mid := s.layout.Width / 2
	x := mid - config.SpawnJitter + s.rng.Float64()*2*config.SpawnJitter
	b := NewBall(x, config.SpawnY)
	s.balls = append(s.balls, b)
	return b
}

// Snapshot captures the current state without stepping.
func (s *Simulation) Snapshot() Frame {
	f := Frame{
		Tick:   s.tick,
		Width:  s.layout.Width,
		Height: s.layout.Height,
		Pegs:   s.layout.Pegs,
		Sinks:  s.layout.Sinks,
		Balls:  make([]Ball, len(s.balls)),
	}
	for i, b := range s.balls {
		f.Balls[i] = *b
	}
	return f
}

// Tick captures the frame to draw and then advances every ball one step.
// The returned frame is the pre-step state, so what gets drawn trails the
// physics by one step.
func (s *Simulation) Tick() (Frame, Step) {
	frame := s.Snapshot()

	var st Step
	for _, b := range s.balls {
		wasResting := b.Resting
		c := b.Update(s.layout.Pegs, s.layout.Sinks)
		st.PegHits += c.Pegs
		if c.Landed && !wasResting {
			st.Landed = append(st.Landed, c.Bin)
			if c.Bin >= 0 && c.Bin < len(s.tally) {
				s.tally[c.Bin]++
			}
		}
	}
	s.tick++
	return frame, st
}
