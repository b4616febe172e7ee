// Package tui draws the board on a terminal with tcell. A terminal cell is
// roughly twice as tall as it is wide, so the square board maps onto a
// 2:1 block of cells.
package tui

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/plinko/internal/config"
	"github.com/iburimskiy/plinko/internal/palette"
	"github.com/iburimskiy/plinko/internal/plinko"
)

const (
	pegRune  = '·'
	ballRune = '●'
)

var (
	baseStyle   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	pegStyle    = baseStyle.Foreground(rgb(palette.MustHex(config.PegColor)))
	statusStyle = baseStyle.Foreground(tcell.ColorSilver)
)

// board is the cell rectangle the canvas projects onto.
type board struct {
	left, cols, rows int
}

func fitBoard(screenCols, screenRows int) board {
	rows := screenRows - 1 // last row is the status line
	if rows > screenCols/2 {
		rows = screenCols / 2
	}
	if rows < 1 {
		rows = 1
	}
	cols := 2 * rows
	return board{left: (screenCols - cols) / 2, cols: cols, rows: rows}
}

// cell projects a canvas point of a width x height frame onto the board.
func (b board) cell(x, y, width, height float64) (int, int) {
	cx := b.left + int(x/width*float64(b.cols))
	cy := int(y / height * float64(b.rows))
	return cx, cy
}

func (b board) contains(cx, cy int) bool {
	return cx >= b.left && cx < b.left+b.cols && cy >= 0 && cy < b.rows
}

// Renderer paints frames onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw clears the screen and paints pegs, sinks, balls and a status line.
// It does not call Show.
func (r *Renderer) Draw(f plinko.Frame, status string) {
	r.screen.SetStyle(baseStyle)
	r.screen.Clear()
	if f.Width <= 0 || f.Height <= 0 {
		return
	}
	cols, rows := r.screen.Size()
	b := fitBoard(cols, rows)

	for _, p := range f.Pegs {
		r.put(b, p.X, p.Y, f, pegRune, pegStyle)
	}

	for _, s := range f.Sinks {
		x0, y0 := b.cell(s.X, s.Y, f.Width, f.Height)
		x1, y1 := b.cell(s.X+s.Width, s.Y+s.Height, f.Width, f.Height)
		style := baseStyle.Background(rgb(s.Color))
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for cy := y0; cy < y1; cy++ {
			for cx := x0; cx < x1; cx++ {
				if b.contains(cx, cy) {
					r.screen.SetContent(cx, cy, ' ', nil, style)
				}
			}
		}
	}

	for _, ball := range f.Balls {
		r.put(b, ball.X, ball.Y, f, ballRune, baseStyle.Foreground(rgb(ball.Color)))
	}

	for i, ch := range []rune(status) {
		if i >= cols {
			break
		}
		r.screen.SetContent(i, rows-1, ch, nil, statusStyle)
	}
}

func (r *Renderer) put(b board, x, y float64, f plinko.Frame, ch rune, style tcell.Style) {
	cx, cy := b.cell(x, y, f.Width, f.Height)
	if !b.contains(cx, cy) {
		return
	}
	// Keep the sink's background under a ball sitting in it.
	_, _, under, _ := r.screen.GetContent(cx, cy)
	_, bg, _ := under.Decompose()
	r.screen.SetContent(cx, cy, ch, nil, style.Background(bg))
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
