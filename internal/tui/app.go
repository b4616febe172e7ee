package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/plinko/internal/plinko"
)

// App runs the simulation loop against a terminal. The loop goroutine owns
// the simulation; a second goroutine only forwards terminal events.
type App struct {
	screen   tcell.Screen
	sim      *plinko.Simulation
	renderer *Renderer
	tps      int
}

func NewApp(screen tcell.Screen, sim *plinko.Simulation, tps int) *App {
	if tps <= 0 {
		tps = 60
	}
	return &App{
		screen:   screen,
		sim:      sim,
		renderer: NewRenderer(screen),
		tps:      tps,
	}
}

// Run blocks until the user quits, the context ends or the screen is
// finalized.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go a.pollEvents(ctx, events)

	ticker := time.NewTicker(time.Second / time.Duration(a.tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handle(ev) {
				return nil
			}
		case <-ticker.C:
			a.frame()
		}
	}
}

func (a *App) pollEvents(ctx context.Context, out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// handle applies one terminal event and reports whether to quit.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case ' ', 'b', 'B':
				b := a.sim.AddBall()
				log.Printf("[tui] ball %d at x=%.1f", len(a.sim.Balls()), b.X)
			}
		}
	}
	return false
}

// frame steps once and draws the pre-step state.
func (a *App) frame() {
	f, _ := a.sim.Tick()
	a.renderer.Draw(f, a.status(f))
	a.screen.Show()
}

func (a *App) status(f plinko.Frame) string {
	return fmt.Sprintf("balls %d  tick %d  bins %v  [space] drop  [q] quit",
		len(f.Balls), f.Tick, a.sim.Tally())
}
