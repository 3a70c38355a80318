package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/vibecheck/backend/internal/apierror"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/service"
)

type DemoHandler struct {
	demoService service.DemoService
}

// NewDemoHandler creates a new demo handler
func NewDemoHandler(demoService service.DemoService) *DemoHandler {
	return &DemoHandler{
		demoService: demoService,
	}
}

// CreateDemo handles POST /api/v1/demo
func (h *DemoHandler) CreateDemo(c *gin.Context) {
	creds, err := h.demoService.SeedDemo(c.Request.Context())
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("seed demo data failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"demo_user": creds,
		"message":   "Demo data created! Login with the demo credentials.",
	})
}
