package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"posapi/internal/logger"
	"posapi/internal/middleware"
	"posapi/internal/services"
)

const (
	serviceName    = "pos-api"
	serviceVersion = "1.0.0"
)

// SystemHandler serves the health, banner and admin statistics endpoints.
type SystemHandler struct {
	statsService services.StatsServicer
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(statsService services.StatsServicer) *SystemHandler {
	return &SystemHandler{statsService: statsService}
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status        string    `json:"status"`
	Service       string    `json:"service"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id"`
}

// StatsResponse is returned by the admin statistics endpoint.
type StatsResponse struct {
	services.Stats
	CorrelationID string `json:"correlation_id"`
}

// Health reports liveness.
// @Summary     Health check
// @Tags        system
// @Produce     json
// @Success     200 {object} HealthResponse
// @Router      /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:        "healthy",
		Service:       serviceName,
		Timestamp:     time.Now().UTC(),
		CorrelationID: middleware.GetCorrelationID(c),
	})
}

// Root returns the service banner.
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":        "POS API",
		"version":        serviceVersion,
		"correlation_id": middleware.GetCorrelationID(c),
	})
}

// AdminStats returns sales statistics.
// @Summary     Sales statistics
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} StatsResponse
// @Failure     401 {object} respond.ErrorResponse "Unauthorized"
// @Failure     503 {object} respond.ErrorResponse "Storage unavailable"
// @Router      /admin/stats [get]
func (h *SystemHandler) AdminStats(c *gin.Context) {
	logger.From(c.Request.Context()).Infow("admin stats requested", "user", middleware.GetSubject(c))

	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{Stats: *stats, CorrelationID: middleware.GetCorrelationID(c)})
}
