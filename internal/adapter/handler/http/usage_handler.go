package http

import (
	"net/http"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"
	"github.com/clubnautico/club_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type UsageHandler struct {
	usageService *services.UsageService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

type UsageRequest struct {
	BoatID        string   `json:"boatId" example:"123e4567-e89b-12d3-a456-426614174000"`
	DurationHours *float64 `json:"durationHours" example:"1.5"`
	Note          string   `json:"note,omitempty" example:"salida al río"`
}

func NewUsageHandler(usageService *services.UsageService, logger ports.LoggerPort, metrics ports.MetricsPort) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		logger:       logger,
		metrics:      metrics,
	}
}

// @Summary Reserve boat
// @Description Records a reservation; estimatedReturn is computed by the server
// @Tags boat-usages
// @Accept json
// @Produce json
// @Param request body UsageRequest true "Reservation"
// @Success 201 {object} domain.BoatUsage
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} lockedResponse
// @Router /api/boat-usages [post]
func (h *UsageHandler) CreateUsage(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed JSON parse in create usage", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	payload, _ := getAuthPayload(c, authorizationPayloadKey)
	usage, err := h.usageService.CreateUsage(c.Request.Context(), domain.UsageRequest{
		BoatID:        req.BoatID,
		DurationHours: req.DurationHours,
		Note:          req.Note,
		Requester:     *payload,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	h.metrics.RecordEvent("reservation_created")
	newSuccessResponse(c, http.StatusCreated, usage)
}

// @Summary List reservations
// @Description Newest first, at most 200
// @Tags boat-usages
// @Produce json
// @Param boatId query string false "Boat ID"
// @Success 200 {array} domain.BoatUsage
// @Router /api/boat-usages [get]
func (h *UsageHandler) ListUsages(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	usages, err := h.usageService.ListUsages(c.Request.Context(), c.Query("boatId"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, usages)
}

// @Summary Get reservation
// @Tags boat-usages
// @Produce json
// @Param id path string true "Usage ID"
// @Success 200 {object} domain.BoatUsage
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/boat-usages/{id} [get]
func (h *UsageHandler) GetUsage(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	usage, err := h.usageService.GetUsage(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, usage)
}

// @Summary Delete reservation
// @Tags boat-usages
// @Security BearerAuth
// @Produce json
// @Param id path string true "Usage ID"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/boat-usages/{id} [delete]
func (h *UsageHandler) DeleteUsage(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.usageService.DeleteUsage(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, messageResponse{Message: "Usage deleted"})
}
