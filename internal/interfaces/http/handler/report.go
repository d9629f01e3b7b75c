package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/revenda/backend/internal/application/report"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RegisterRoutes registers reporting routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.Summary)
	}
}

// Summary returns the revenue / collected / outstanding overview
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.GetSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
