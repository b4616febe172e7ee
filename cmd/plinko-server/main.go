package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/iburimskiy/plinko/internal/config"
	"github.com/iburimskiy/plinko/internal/plinko"
	"github.com/iburimskiy/plinko/internal/spectate"
)

func main() {
	cfg := config.Load()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	side := float64(cfg.CanvasSide)
	sim := plinko.New(side, side, rand.New(rand.NewSource(seed)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The runner publishes into the hub and the hub forwards drops to the
	// runner; neither goroutine starts until both exist.
	var hub *spectate.Hub
	runner := spectate.NewRunner(sim, config.TicksPerSecond, cfg.BroadcastHz, func(s *spectate.Snapshot) {
		hub.BroadcastFrame(s)
	})
	hub = spectate.NewHub(cfg.Origins, spectate.HandleMessage(runner))

	go hub.Run(ctx)
	go runner.Run(ctx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	spectate.SetupRoutes(router, runner, hub, cfg)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		log.Println("[server] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[server] shutdown: %v", err)
		}
	}()

	log.Printf("[server] plinko spectator on %s (canvas %dpx, seed %d, %d Hz)", cfg.Addr, cfg.CanvasSide, seed, cfg.BroadcastHz)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("[server] listen: %v", err)
	}
}
