package handler

import (
	"github.com/gin-gonic/gin"

	"repairdesk/internal/service"
)

// DashboardHandler serves the summary metrics.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Metrics handles GET /api/v1/dashboard/metrics
// @Summary Dashboard metrics
// @Description Job counts, revenue and stock levels for the shop front page
// @Tags dashboard
// @Produce json
// @Success 200 {object} Response{data=domain.DashboardMetrics} "Metrics"
// @Security BearerAuth
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.dashboardService.GetMetrics(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, metrics)
}
