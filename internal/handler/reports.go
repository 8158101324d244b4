package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/dto"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

// listReports handles GET /reports
// @Summary List reports
// @Tags reports
// @Produce json
// @Success 200 {array} domain.Report
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	reports, err := h.deps.ReportStore.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list reports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// createReport handles POST /reports
// @Summary Create a report
// @Description Create a report record; generation is triggered separately
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.CreateReportRequest true "Report data"
// @Success 201 {object} domain.Report
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	var req dto.CreateReportRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid report request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	created, err := h.deps.Reports.Create(c.Request.Context(), &domain.Report{
		Title:      req.Title,
		Type:       req.Type,
		Format:     req.Format,
		ProjectIDs: req.ProjectIDs,
	})
	if err != nil {
		h.log.Error("Failed to create report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	h.track(c, "create_report", map[string]interface{}{
		"type":   created.Type,
		"format": created.Format,
	})

	c.JSON(http.StatusCreated, created)
}

// generateReport handles POST /reports/generate
// @Summary Generate a weekly report
// @Description Create a weekly report and queue its generation
// @Tags reports
// @Produce json
// @Success 202 {object} domain.Report
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/generate [post]
func (h *Handler) generateReport(c *gin.Context) {
	report, err := h.deps.Reports.GenerateWeekly(c.Request.Context(), "manual")
	if err != nil {
		h.log.Error("Failed to start report generation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	h.track(c, "generate_report", map[string]interface{}{
		"type":    report.Type,
		"trigger": "manual",
	})

	c.JSON(http.StatusAccepted, report)
}

// downloadReport handles GET /reports/:id/download
// @Summary Download a report
// @Description Resolve the download location for a completed report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.DownloadReportResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/{id}/download [get]
func (h *Handler) downloadReport(c *gin.Context) {
	report, err := h.deps.ReportStore.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "not_found",
				Message: "report not found",
			})
			return
		}
		h.log.Error("Failed to get report",
			zap.Error(err),
			zap.String("report_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	if report.Status != domain.ReportStatusCompleted {
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "not_ready",
			Message: "report generation has not completed",
		})
		return
	}

	h.track(c, "download_report", map[string]interface{}{
		"format": report.Format,
	})

	c.JSON(http.StatusOK, dto.DownloadReportResponse{
		ReportID:    report.ID,
		DownloadURL: report.FilePath,
		Format:      report.Format,
	})
}
