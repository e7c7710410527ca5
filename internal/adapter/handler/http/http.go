package http

import (
	"net/http"
	"time"

	"github.com/clubnautico/club_service/internal/core/ports"
	"github.com/clubnautico/club_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type BoatHandler struct {
	boatService  *services.BoatService
	usageService *services.UsageService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

func NewBoatHandler(
	boatService *services.BoatService,
	usageService *services.UsageService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *BoatHandler {
	return &BoatHandler{
		boatService:  boatService,
		usageService: usageService,
		logger:       logger,
		metrics:      metrics,
	}
}

// @Summary Create boat
// @Tags boats
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.BoatInput true "Boat"
// @Success 201 {object} domain.Boat
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /api/boats [post]
func (h *BoatHandler) CreateBoat(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req services.BoatInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed JSON parse in create boat", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	boat, err := h.boatService.CreateBoat(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusCreated, boat)
}

// @Summary List boats
// @Tags boats
// @Produce json
// @Success 200 {array} domain.Boat
// @Router /api/boats [get]
func (h *BoatHandler) ListBoats(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	boats, err := h.boatService.ListBoats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, boats)
}

// @Summary Get boat
// @Tags boats
// @Produce json
// @Param id path string true "Boat ID"
// @Success 200 {object} domain.Boat
// @Failure 404 {object} errorResponse
// @Router /api/boats/{id} [get]
func (h *BoatHandler) GetBoat(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	boat, err := h.boatService.GetBoatByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, boat)
}

// @Summary Update boat
// @Tags boats
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Boat ID"
// @Param request body services.BoatInput true "Fields to change"
// @Success 200 {object} domain.Boat
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/boats/{id} [put]
func (h *BoatHandler) UpdateBoat(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req services.BoatInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	boat, err := h.boatService.UpdateBoat(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, boat)
}

// @Summary Delete boat
// @Tags boats
// @Security BearerAuth
// @Produce json
// @Param id path string true "Boat ID"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/boats/{id} [delete]
func (h *BoatHandler) DeleteBoat(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.boatService.DeleteBoat(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, messageResponse{Message: "Boat deleted"})
}

// @Summary Boat availability
// @Description Every boat with its current lock window
// @Tags boats
// @Produce json
// @Success 200 {array} domain.BoatAvailability
// @Router /api/boats/availability [get]
func (h *BoatHandler) Availability(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	availability, err := h.usageService.Availability(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, availability)
}

// @Summary Boat lock state
// @Tags boats
// @Produce json
// @Param id path string true "Boat ID"
// @Success 200 {object} domain.BoatAvailability
// @Failure 404 {object} errorResponse
// @Router /api/boats/{id}/lock [get]
func (h *BoatHandler) GetLock(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	lock, err := h.usageService.BoatLock(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, lock)
}
