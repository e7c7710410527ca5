package http

import (
	"net/http"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"
	"github.com/clubnautico/club_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *services.ReportService
	logger        ports.LoggerPort
	metrics       ports.MetricsPort
}

type ReportStatusRequest struct {
	Status string `json:"status" binding:"required" example:"en_reparacion"`
}

func NewReportHandler(reportService *services.ReportService, logger ports.LoggerPort, metrics ports.MetricsPort) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
		metrics:       metrics,
	}
}

// @Summary Create fault report
// @Tags boat-reports
// @Accept multipart/form-data
// @Produce json
// @Param boatId formData string true "Boat ID"
// @Param descripcion formData string true "Description"
// @Param fecha formData string false "Date (YYYY-MM-DD)"
// @Param hora formData string false "Time (HH:MM)"
// @Param foto formData file false "Photo"
// @Success 201 {object} domain.BoatReport
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/boat-reports [post]
func (h *ReportHandler) CreateReport(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	foto, closeFoto, err := formUpload(c, "foto")
	if err != nil {
		h.logger.Warn("Failed to read report photo", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid photo upload")
		return
	}
	defer closeFoto()

	report, err := h.reportService.CreateReport(c.Request.Context(), domain.ReportRequest{
		BoatID:      c.PostForm("boatId"),
		Descripcion: c.PostForm("descripcion"),
		Fecha:       c.PostForm("fecha"),
		Hora:        c.PostForm("hora"),
		Foto:        foto,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	h.metrics.RecordEvent("report_created")
	newSuccessResponse(c, http.StatusCreated, report)
}

// @Summary List fault reports
// @Tags boat-reports
// @Produce json
// @Param boatId query string false "Boat ID"
// @Success 200 {array} domain.BoatReport
// @Router /api/boat-reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	reports, err := h.reportService.ListReports(c.Request.Context(), c.Query("boatId"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, reports)
}

// @Summary Get fault report
// @Tags boat-reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} domain.BoatReport
// @Failure 404 {object} errorResponse
// @Router /api/boat-reports/{id} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	report, err := h.reportService.GetReportByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, report)
}

// @Summary Change fault report status
// @Tags boat-reports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body ReportStatusRequest true "New status"
// @Success 200 {object} domain.BoatReport
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/boat-reports/{id} [put]
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req ReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "status is required")
		return
	}

	report, err := h.reportService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	h.metrics.RecordEvent("report_" + string(report.Status))
	newSuccessResponse(c, http.StatusOK, report)
}

// @Summary Delete fault report
// @Tags boat-reports
// @Security BearerAuth
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/boat-reports/{id} [delete]
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.reportService.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, messageResponse{Message: "Report deleted"})
}
