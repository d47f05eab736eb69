package controller

import (
	"context"
	"net/http"
	"time"

	"enquirydesk-backend/services"
	"enquirydesk-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	ctx              context.Context
	dashboardService services.DashboardServiceInterface
	logger           logger.Logger
}

func NewDashboardController(ctx context.Context, dashboardService services.DashboardServiceInterface, log logger.Logger) *DashboardController {
	return &DashboardController{
		ctx:              ctx,
		dashboardService: dashboardService,
		logger:           log,
	}
}

// GetStats handles GET /api/v1/enquiries/stats
// @Summary Enquiry statistics
// @Description Total, time-window and per-facet counts
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Statistics retrieved successfully"
// @Router /enquiries/stats [get]
func (h *DashboardController) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get stats", err)
		respondError(c, "Failed to retrieve statistics", err)
		return
	}

	respondOK(c, "Statistics retrieved successfully", stats)
}

// GetOverview handles GET /api/v1/dashboard/overview
// @Summary Dashboard overview
// @Description Headline counts, recent enquiries and chart breakdowns
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Overview retrieved successfully"
// @Router /dashboard/overview [get]
func (h *DashboardController) GetOverview(c *gin.Context) {
	overview, err := h.dashboardService.GetOverview(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get overview", err)
		respondError(c, "Failed to retrieve overview", err)
		return
	}

	respondOK(c, "Overview retrieved successfully", overview)
}

// GetAnalytics handles GET /api/v1/dashboard/analytics
// @Summary Period-bounded analytics
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param period query string false "One of 7d, 30d, 3m, 6m, 1y (default 30d)"
// @Success 200 {object} models.APIResponse "Analytics retrieved successfully"
// @Router /dashboard/analytics [get]
func (h *DashboardController) GetAnalytics(c *gin.Context) {
	analytics, err := h.dashboardService.GetAnalytics(c.Request.Context(), c.Query("period"))
	if err != nil {
		h.logger.Error("Failed to get analytics", err)
		respondError(c, "Failed to retrieve analytics", err)
		return
	}

	respondOK(c, "Analytics retrieved successfully", analytics)
}

// GetPerformance handles GET /api/v1/dashboard/performance
// @Summary Month-over-month performance
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Performance retrieved successfully"
// @Router /dashboard/performance [get]
func (h *DashboardController) GetPerformance(c *gin.Context) {
	metrics, err := h.dashboardService.GetPerformance(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get performance metrics", err)
		respondError(c, "Failed to retrieve performance metrics", err)
		return
	}

	respondOK(c, "Performance retrieved successfully", metrics)
}

// Export handles GET /api/v1/dashboard/export
// @Summary Export recent enquiries
// @Description format=json returns the envelope, format=csv streams a file
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param format query string false "json (default) or csv"
// @Success 200 {object} models.APIResponse "Export generated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Unknown format"
// @Router /dashboard/export [get]
func (h *DashboardController) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	switch format {
	case "json":
		result, err := h.dashboardService.ExportJSON(c.Request.Context())
		if err != nil {
			h.logger.Error("Failed to export enquiries", err)
			respondError(c, "Failed to export enquiries", err)
			return
		}
		respondOK(c, "Export generated successfully", result)
	case "csv":
		data, err := h.dashboardService.ExportCSV(c.Request.Context())
		if err != nil {
			h.logger.Error("Failed to export enquiries", err)
			respondError(c, "Failed to export enquiries", err)
			return
		}
		filename := "enquiries-" + time.Now().Format("2006-01-02") + ".csv"
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "text/csv", []byte(data))
	default:
		respondBadRequest(c, "Unknown export format", "Format must be json or csv")
	}
}
