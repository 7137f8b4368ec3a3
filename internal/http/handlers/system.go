package handlers

import (
	"net/http"
	"os"
	"time"

	intconfig "abcbus/internal/config"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": env,
	})
}

// DBCheck pings the shared connection.
func (h *Handler) DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database unavailable", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": "ok"})
}
