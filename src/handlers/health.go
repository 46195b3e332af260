package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawonbufatim/storefront-server/src/database"
)

var startTime = time.Now()

// HealthHandler handles liveness checks
type HealthHandler struct {
	db *database.Database
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealth reports liveness. Always 200 while the process is up; the
// database state is informational.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	dbStatus := "connected"
	start := time.Now()
	if err := h.db.Health(c.Request.Context()); err != nil {
		dbStatus = "disconnected"
	}
	dbLatency := time.Since(start)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Pawon Bufatim API is running!",
		"database":   dbStatus,
		"db_latency": dbLatency.String(),
		"uptime":     time.Since(startTime).String(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
