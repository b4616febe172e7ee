// Package spectate serves a running simulation over HTTP and websockets.
// A single Runner goroutine owns the simulation; handlers talk to it
// through a command queue and read immutable snapshots.
package spectate

import (
	"github.com/iburimskiy/plinko/internal/palette"
	"github.com/iburimskiy/plinko/internal/plinko"
)

type PegView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

type SinkView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Color  string  `json:"color"`
	Shadow string  `json:"shadow"`
}

type BallView struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	R       float64 `json:"r"`
	Resting bool    `json:"resting"`
	Bin     int     `json:"bin"`
}

// Snapshot is the wire form of one simulation state. Once published it is
// never modified; Pegs and Sinks are shared between snapshots of the same
// layout.
type Snapshot struct {
	Tick   uint64     `json:"tick"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Pegs   []PegView  `json:"pegs"`
	Sinks  []SinkView `json:"sinks"`
	Balls  []BallView `json:"balls"`
	Tally  []int      `json:"tally"`
}

// boardView caches the static part of a snapshot for one layout.
type boardView struct {
	pegs  []PegView
	sinks []SinkView
}

func newBoardView(l plinko.Layout) boardView {
	v := boardView{
		pegs:  make([]PegView, len(l.Pegs)),
		sinks: make([]SinkView, len(l.Sinks)),
	}
	for i, p := range l.Pegs {
		v.pegs[i] = PegView{X: p.X, Y: p.Y, R: p.Radius}
	}
	for i, s := range l.Sinks {
		v.sinks[i] = SinkView{
			X:      s.X,
			Y:      s.Y,
			W:      s.Width,
			H:      s.Height,
			Color:  palette.ToHex(s.Color),
			Shadow: palette.ToHex(s.Shadow),
		}
	}
	return v
}

func newSnapshot(f plinko.Frame, board boardView, tally []int) *Snapshot {
	balls := make([]BallView, len(f.Balls))
	for i, b := range f.Balls {
		balls[i] = BallView{
			X:       b.X,
			Y:       b.Y,
			VX:      b.VX,
			VY:      b.VY,
			R:       b.Radius,
			Resting: b.Resting,
			Bin:     b.Bin,
		}
	}
	return &Snapshot{
		Tick:   f.Tick,
		Width:  f.Width,
		Height: f.Height,
		Pegs:   board.pegs,
		Sinks:  board.sinks,
		Balls:  balls,
		Tally:  tally,
	}
}
