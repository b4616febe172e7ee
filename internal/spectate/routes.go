package spectate

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/iburimskiy/plinko/internal/config"
)

// SetupRoutes mounts the spectator API under /api/v1.
func SetupRoutes(router *gin.Engine, r *Runner, h *Hub, cfg *config.Settings) {
	router.Use(corsMiddleware(cfg))

	if !cfg.IsProduction() {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Next()
		})
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck)
		v1.GET("/frame", GetFrame(r))
		v1.POST("/balls", DropBall(r))
		v1.PUT("/canvas", ResizeCanvas(r))
		v1.GET("/ws", StreamFrames(h, r))
	}
}

func corsMiddleware(cfg *config.Settings) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.Origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Origins
		log.Printf("[server] allowed origins: %v", cfg.Origins)
	}
	return cors.New(corsConfig)
}
