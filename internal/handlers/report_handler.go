package handlers

import (
	"net/http"

	"order_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportingService services.ReportingService
}

func NewReportHandler(reportingService services.ReportingService) *ReportHandler {
	return &ReportHandler{reportingService: reportingService}
}

func (h *ReportHandler) Stats(c *gin.Context) {
	monthly, err := h.reportingService.MonthlySummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stats"})
		return
	}

	platforms, err := h.reportingService.PlatformBreakdown()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stats"})
		return
	}

	dateCounts, err := h.reportingService.DailyCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"monthly":     monthly,
		"platforms":   platforms,
		"date_counts": dateCounts,
	})
}

func (h *ReportHandler) Accounting(c *gin.Context) {
	view, err := h.reportingService.AccountingView(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build accounting view"})
		return
	}

	c.JSON(http.StatusOK, view)
}
