package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"github.com/iburimskiy/plinko/internal/config"
	"github.com/iburimskiy/plinko/internal/game"
)

func main() {
	settings := config.Load()

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("plinko: window %dpx, seed %d, sound %v", settings.WindowSide, seed, settings.Sound)

	g := game.New(settings, rand.New(rand.NewSource(seed)))

	ebiten.SetWindowSize(settings.WindowSide, settings.WindowSide)
	ebiten.SetWindowTitle("Plinko - Space/click: add ball, D: debug, S: screenshot, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		game.ReportFatal(err)
		log.Fatalf("plinko: %v", err)
	}
}
