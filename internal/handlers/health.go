package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"decky-backend/internal/models"
)

// HealthHandler godoc
// @Summary     Health check
// @Description Returns service health status
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Service:   "decky-backend",
		Timestamp: float64(time.Now().UnixNano()) / float64(time.Second),
	})
}

// HeartbeatHandler godoc
// @Summary     Heartbeat
// @Description Lightweight liveness probe for monitoring
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /heartbeat [get]
func HeartbeatHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: float64(time.Now().UnixNano()) / float64(time.Second),
	})
}
