package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/leekduck/models"
)

// Health returns a handler for GET /api/v1/health.
//
// Status degrades when the species table is empty.
func Health(stats models.TablesStats, version string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		if stats.Species == 0 {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Tables:  stats,
			Version: version,
		})
	}
}
