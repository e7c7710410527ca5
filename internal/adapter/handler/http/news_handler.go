package http

import (
	"net/http"
	"time"

	"github.com/clubnautico/club_service/internal/core/ports"
	"github.com/clubnautico/club_service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type NewsHandler struct {
	announcementService *services.AnnouncementService
	eventService        *services.EventService
	logger              ports.LoggerPort
	metrics             ports.MetricsPort
}

func NewNewsHandler(
	announcementService *services.AnnouncementService,
	eventService *services.EventService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *NewsHandler {
	return &NewsHandler{
		announcementService: announcementService,
		eventService:        eventService,
		logger:              logger,
		metrics:             metrics,
	}
}

// @Summary List announcements
// @Tags announcements
// @Produce json
// @Success 200 {array} domain.Announcement
// @Router /api/announcements [get]
func (h *NewsHandler) ListAnnouncements(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	announcements, err := h.announcementService.ListAnnouncements(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, announcements)
}

// @Summary Get announcement
// @Tags announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} domain.Announcement
// @Failure 404 {object} errorResponse
// @Router /api/announcements/{id} [get]
func (h *NewsHandler) GetAnnouncement(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	announcement, err := h.announcementService.GetAnnouncementByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, announcement)
}

// @Summary Create announcement
// @Tags announcements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.NewsInput true "Announcement"
// @Success 201 {object} domain.Announcement
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /api/announcements [post]
func (h *NewsHandler) CreateAnnouncement(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req services.NewsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	announcement, err := h.announcementService.CreateAnnouncement(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusCreated, announcement)
}

// @Summary Update announcement
// @Tags announcements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param request body services.NewsInput true "Fields to change"
// @Success 200 {object} domain.Announcement
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/announcements/{id} [put]
func (h *NewsHandler) UpdateAnnouncement(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req services.NewsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	announcement, err := h.announcementService.UpdateAnnouncement(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, announcement)
}

// @Summary Delete announcement
// @Tags announcements
// @Security BearerAuth
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/announcements/{id} [delete]
func (h *NewsHandler) DeleteAnnouncement(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.announcementService.DeleteAnnouncement(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, messageResponse{Message: "Announcement deleted"})
}

// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {array} domain.Event
// @Router /api/events [get]
func (h *NewsHandler) ListEvents(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	events, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, events)
}

// @Summary Get event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 404 {object} errorResponse
// @Router /api/events/{id} [get]
func (h *NewsHandler) GetEvent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	event, err := h.eventService.GetEventByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, event)
}

// @Summary Create event
// @Tags events
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param titulo formData string true "Title"
// @Param fecha formData string false "Date"
// @Param descripcion formData string false "Description"
// @Param imagen formData file false "Image"
// @Success 201 {object} domain.Event
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /api/events [post]
func (h *NewsHandler) CreateEvent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	req, closeImage, ok := h.eventInput(c)
	if !ok {
		return
	}
	defer closeImage()

	event, err := h.eventService.CreateEvent(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusCreated, event)
}

// @Summary Update event
// @Description A new imagen replaces the stored one
// @Tags events
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Event ID"
// @Param titulo formData string false "Title"
// @Param fecha formData string false "Date"
// @Param descripcion formData string false "Description"
// @Param imagen formData file false "Image"
// @Success 200 {object} domain.Event
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/events/{id} [put]
func (h *NewsHandler) UpdateEvent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	req, closeImage, ok := h.eventInput(c)
	if !ok {
		return
	}
	defer closeImage()

	event, err := h.eventService.UpdateEvent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, event)
}

// @Summary Delete event
// @Description Also removes the stored image
// @Tags events
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/events/{id} [delete]
func (h *NewsHandler) DeleteEvent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.eventService.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, messageResponse{Message: "Event deleted"})
}

// eventInput reads a JSON body or a multipart form with an optional imagen file.
func (h *NewsHandler) eventInput(c *gin.Context) (services.NewsInput, func(), bool) {
	var req services.NewsInput
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
			return req, nil, false
		}
		return req, func() {}, true
	}

	formValue := func(key string) *string {
		if v, ok := c.GetPostForm(key); ok {
			return &v
		}
		return nil
	}
	req.Titulo = formValue("titulo")
	req.Fecha = formValue("fecha")
	req.Descripcion = formValue("descripcion")

	image, closeImage, err := formUpload(c, "imagen")
	if err != nil {
		h.logger.Warn("Failed to read event image", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid image upload")
		return req, nil, false
	}
	req.Imagen = image
	return req, closeImage, true
}
