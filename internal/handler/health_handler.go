package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is anything the service needs reachable before taking traffic
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	service string
	driver  string
	store   Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(service, driver string, store Pinger) *HealthHandler {
	return &HealthHandler{service: service, driver: driver, store: store}
}

// Health returns basic health status
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
	})
}

// Ready checks that the storage backend answers
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not_ready",
			"service": h.service,
			"storage": h.driver,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": h.service,
		"storage": h.driver,
	})
}
