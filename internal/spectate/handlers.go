package spectate

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	service = "plinko-spectator"
	version = "1.0.0"

	minCanvasSide = 100
	maxCanvasSide = 4096
)

var startTime = time.Now()

// HealthCheck returns server health status.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": service,
		"version": version,
		"uptime":  time.Since(startTime).String(),
	})
}

// GetFrame returns the latest snapshot.
func GetFrame(r *Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, r.Latest())
	}
}

// DropBall queues a new ball. The ball appears in the next tick.
func DropBall(r *Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := r.AddBall(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
	}
}

type resizeRequest struct {
	Side int `json:"side" binding:"required"`
}

// ResizeCanvas rebuilds the layout for a new square canvas.
func ResizeCanvas(r *Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "side is required"})
			return
		}
		if req.Side < minCanvasSide || req.Side > maxCanvasSide {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "side out of range",
				"min":   minCanvasSide,
				"max":   maxCanvasSide,
			})
			return
		}
		if err := r.Resize(c.Request.Context(), float64(req.Side)); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "queued", "side": req.Side})
	}
}

// StreamFrames upgrades to a websocket that receives the current snapshot
// immediately and then every broadcast.
func StreamFrames(h *Hub, r *Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.Serve(c.Writer, c.Request, r.Latest()); err != nil {
			log.Printf("[ws] upgrade from %s failed: %v", c.ClientIP(), err)
		}
	}
}

// HandleMessage lets spectators drop balls over the socket with
// {"type":"drop"}.
func HandleMessage(r *Runner) func(*Client, Message) {
	return func(c *Client, msg Message) {
		switch msg.Type {
		case "drop":
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := r.AddBall(ctx); err != nil {
				c.Send("error", map[string]string{"message": err.Error()})
			}
		case "ping":
			c.Send("pong", nil)
		default:
			c.Send("error", map[string]string{"message": "unknown message type: " + msg.Type})
		}
	}
}
