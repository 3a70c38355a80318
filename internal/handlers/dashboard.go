package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/vibecheck/backend/internal/apierror"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/middleware"
	"github.com/JonnyWalker81/vibecheck/backend/internal/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("load dashboard failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
