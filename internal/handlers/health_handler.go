package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
	Counts(ctx context.Context) (users, villas int64, err error)
}

func Health(h HealthChecker, environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		now := time.Now().UTC().Format(time.RFC3339)
		if err := h.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "error",
				"message":   "Database connection failed",
				"timestamp": now,
			})
			return
		}
		users, villas, err := h.Counts(ctx)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "error",
				"message":   "Database query failed",
				"timestamp": now,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "villastay-api",
			"database": gin.H{
				"connected": true,
				"users":     users,
				"villas":    villas,
			},
			"environment": environment,
			"timestamp":   now,
		})
	}
}
