package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/iburimskiy/plinko/internal/config"
	"github.com/iburimskiy/plinko/internal/plinko"
	"github.com/iburimskiy/plinko/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("plinko-tui: %v", err)
	}
}

func run() error {
	settings := config.Load()

	// The terminal belongs to tcell; logs go to a file.
	logFile, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	side := float64(settings.CanvasSide)
	sim := plinko.New(side, side, rand.New(rand.NewSource(seed)))
	log.Printf("[tui] canvas %dpx, seed %d", settings.CanvasSide, seed)

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tui.NewApp(screen, sim, config.TicksPerSecond).Run(ctx)
	log.Printf("[tui] exit after %d ticks, bins %v", sim.Ticks(), sim.Tally())
	return err
}
