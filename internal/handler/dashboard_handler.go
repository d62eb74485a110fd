package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/middleware"
	"github.com/Dannesh12/urban-slot-finder/internal/service"
	"github.com/Dannesh12/urban-slot-finder/pkg/response"
)

// DashboardHandler serves the role-specific summary
type DashboardHandler struct {
	dashboards service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboards service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Get returns the caller's dashboard
// GET /api/v1/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		handleError(c, domain.ErrNotAuthenticated)
		return
	}
	response.Success(c, h.dashboards.Dashboard(c.Request.Context(), user))
}
