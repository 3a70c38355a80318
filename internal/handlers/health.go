package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger
	aiReady bool
	env     string
}

// NewHealthHandler creates a health handler. aiReady reports whether the remote
// sentiment model is configured.
func NewHealthHandler(store Pinger, aiReady bool, env string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		aiReady: aiReady,
		env:     env,
	}
}

// Health handles GET /health. It always answers 200 so the body can say what is degraded.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	database := "connected"
	if err := h.store.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn("health check: storage ping failed", logger.Err(err))
		database = "failed"
	}

	ai := "no key"
	if h.aiReady {
		ai = "ready"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"env":      h.env,
		"database": database,
		"ai":       ai,
		"message":  "VibeCheck API is running",
	})
}
