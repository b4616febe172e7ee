package game

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/plinko/internal/config"
	"github.com/iburimskiy/plinko/internal/plinko"
)

// Game hosts a plinko.Simulation inside ebiten's loop. Update steps the
// simulation and keeps the pre-step frame; Draw only reads that frame.
type Game struct {
	sim      *plinko.Simulation
	frame    plinko.Frame
	viewport plinko.Viewport

	scaleFactor func() float64

	// audio
	clicks *clickStream

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	// screenshot handoff: Draw captures, the next Update starts a save in
	// the background so the board keeps ticking behind the dialog
	wantShot bool
	shot     *screenshot
	saving   bool
	saveDone chan error
	saveShot func(*screenshot) error

	debug   bool
	started time.Time
	lastErr error
}

// New builds a game for the given settings. rng seeds ball spawns.
func New(settings *config.Settings, rng *rand.Rand) *Game {
	side := float64(settings.WindowSide - 2*config.CanvasMargin)
	g := &Game{
		sim:         plinko.New(side, side, rng),
		scaleFactor: deviceScaleFactor,
		prevKey:     map[ebiten.Key]bool{},
		debug:       settings.Debug,
		started:     time.Now(),
		saveDone:    make(chan error, 1),
		saveShot:    (*screenshot).save,
	}
	g.frame = g.sim.Snapshot()

	if settings.Sound {
		clicks, err := startSound(settings.ClickSample)
		if err != nil {
			// Non-fatal, the board runs silent
			log.Printf("[audio] disabled: %v", err)
		} else {
			g.clicks = clicks
		}
	}
	return g
}

func deviceScaleFactor() float64 {
	return ebiten.Monitor().DeviceScaleFactor()
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	g.handleScreenshot()

	// Button interactions, in logical canvas units
	mx, my := ebiten.CursorPosition()
	lx, ly := g.toLogical(mx, my)
	g.buttonHovered = inButton(lx, ly)

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.sim.AddBall()
		}
		g.buttonPressed = false
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		g.tapAt(g.toLogical(ebiten.TouchPosition(id)))
	}

	if justPressed(ebiten.KeySpace) || justPressed(ebiten.KeyB) {
		g.sim.AddBall()
	}
	if justPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}
	if justPressed(ebiten.KeyS) {
		g.wantShot = true
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.step()
	return nil
}

// handleScreenshot collects the result of a finished save and starts the
// next one. At most one save runs at a time; a newer capture waits.
func (g *Game) handleScreenshot() {
	select {
	case err := <-g.saveDone:
		g.saving = false
		if err != nil {
			g.lastErr = err
			log.Printf("[screenshot] %v", err)
		}
	default:
	}

	if g.shot == nil || g.saving {
		return
	}
	shot, save := g.shot, g.saveShot
	g.shot = nil
	g.saving = true
	go func() { g.saveDone <- save(shot) }()
}

// step advances the simulation once and feeds the click synth.
func (g *Game) step() plinko.Step {
	frame, st := g.sim.Tick()
	g.frame = frame
	if g.clicks != nil && st.PegHits > 0 {
		g.clicks.trigger(st.PegHits)
	}
	return st
}

// tapAt spawns a ball when (x, y) lands on the button.
func (g *Game) tapAt(x, y float64) bool {
	if !inButton(x, y) {
		return false
	}
	g.sim.AddBall()
	return true
}

// Layout fits a square canvas into the window and rebuilds the board
// whenever its logical size or the device scale changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := plinko.FitViewport(float64(outsideWidth), float64(outsideHeight), config.CanvasMargin, g.scaleFactor())
	if vp != g.viewport {
		if vp.Side != g.viewport.Side {
			g.sim.Resize(vp.Side, vp.Side)
			g.frame = g.sim.Snapshot()
		}
		g.viewport = vp
	}
	px := vp.Pixels()
	return px, px
}

func (g *Game) toLogical(x, y int) (float64, float64) {
	s := g.viewport.Scale
	if s <= 0 {
		s = 1
	}
	return float64(x) / s, float64(y) / s
}

func inButton(x, y float64) bool {
	return inRect(x, y, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight)
}
