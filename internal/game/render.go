package game

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/plinko/internal/config"
	"github.com/iburimskiy/plinko/internal/palette"
	"github.com/iburimskiy/plinko/internal/plinko"
)

var (
	backgroundColor = color.RGBA{R: 14, G: 16, B: 30, A: 255}
	pegColor        = palette.MustHex(config.PegColor)

	whiteImage *ebiten.Image
)

// Draw renders the frame captured by the last Update.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	s := float32(g.viewport.Scale)
	if s <= 0 {
		s = 1
	}

	drawPegs(screen, g.frame.Pegs, s)
	drawSinks(screen, g.frame.Sinks, s)
	drawBalls(screen, g.frame.Balls, s)

	g.drawButton(screen, s)
	g.drawStatus(screen)

	if g.wantShot {
		g.shot = captureScreen(screen)
		g.wantShot = false
	}
}

func drawPegs(screen *ebiten.Image, pegs []plinko.Peg, s float32) {
	for _, p := range pegs {
		vector.DrawFilledCircle(screen, float32(p.X)*s, float32(p.Y)*s, float32(p.Radius)*s, pegColor, true)
	}
}

func drawSinks(screen *ebiten.Image, sinks []plinko.Sink, s float32) {
	const (
		corner = config.SinkCorner
		shift  = config.ShadowShift
	)
	for _, k := range sinks {
		x, y := float32(k.X)*s, float32(k.Y)*s
		w, h := float32(k.Width)*s, float32(k.Height)*s

		// Drop shadow first, shifted down, then the bin on top.
		fillPath(screen, roundedRect(x, y+shift*s, w, h, corner*s), k.Shadow)
		fillPath(screen, roundedRect(x, y, w, h, corner*s), k.Color)
	}
}

func drawBalls(screen *ebiten.Image, balls []plinko.Ball, s float32) {
	for _, b := range balls {
		vector.DrawFilledCircle(screen, float32(b.X)*s, float32(b.Y)*s, float32(b.Radius)*s, b.Color, true)
	}
}

func (g *Game) drawButton(screen *ebiten.Image, s float32) {
	// Button background
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	x, y := float32(config.ButtonX)*s, float32(config.ButtonY)*s
	w, h := float32(config.ButtonWidth)*s, float32(config.ButtonHeight)*s
	vector.DrawFilledRect(screen, x, y, w, h, bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, x, y, w, h, 2*s, borderColor, false)

	text := "Add ball"
	textWidth := float32(len(text) * 6) // debug font glyph width
	ebitenutil.DebugPrintAt(screen, text, int(x+(w-textWidth)/2), int(y+h/2-8))
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := fmt.Sprintf("Space or Add ball to drop | balls: %d | %s",
		len(g.frame.Balls), formatDuration(time.Since(g.started)))
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)

	if !g.debug {
		return
	}
	msg := fmt.Sprintf("TPS: %.1f  FPS: %.1f  tick: %d\nbins: %v",
		ebiten.ActualTPS(), ebiten.ActualFPS(), g.frame.Tick, g.sim.Tally())
	ebitenutil.DebugPrintAt(screen, msg, 12, screen.Bounds().Dy()-40)
}

// roundedRect traces a rectangle with arc corners of radius r.
func roundedRect(x, y, w, h, r float32) *vector.Path {
	var p vector.Path
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.ArcTo(x+w, y, x+w, y+r, r)
	p.LineTo(x+w, y+h-r)
	p.ArcTo(x+w, y+h, x+w-r, y+h, r)
	p.LineTo(x+r, y+h)
	p.ArcTo(x, y+h, x, y+h-r, r)
	p.LineTo(x, y+r)
	p.ArcTo(x, y, x+r, y, r)
	p.Close()
	return &p
}

func fillPath(dst *ebiten.Image, p *vector.Path, clr color.RGBA) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	r := float32(clr.R) / 0xff
	gr := float32(clr.G) / 0xff
	b := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = gr
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	dst.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// whitePixel is a 1x1 white source for untextured triangles. It is cut from
// the middle of a 3x3 image so edge sampling never bleeds.
func whitePixel() *ebiten.Image {
	if whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteImage
}

func captureScreen(screen *ebiten.Image) *screenshot {
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)
	return &screenshot{img: img}
}
