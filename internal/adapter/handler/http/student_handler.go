package http

import (
	"net/http"
	"time"

	"github.com/clubnautico/club_service/internal/core/ports"
	"github.com/clubnautico/club_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentService *services.StudentService
	sheetService   *services.SheetService
	logger         ports.LoggerPort
	metrics        ports.MetricsPort
}

func NewStudentHandler(
	studentService *services.StudentService,
	sheetService *services.SheetService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		sheetService:   sheetService,
		logger:         logger,
		metrics:        metrics,
	}
}

// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {array} domain.Student
// @Router /api/students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	students, err := h.studentService.ListStudents(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, students)
}

// @Summary Get student
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} domain.Student
// @Failure 404 {object} errorResponse
// @Router /api/students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	student, err := h.studentService.GetStudentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, student)
}

// @Summary Create student
// @Tags students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.StudentInput true "Student"
// @Success 201 {object} domain.Student
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req services.StudentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusCreated, student)
}

// @Summary Update student
// @Tags students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body services.StudentInput true "Fields to change"
// @Success 200 {object} domain.Student
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req services.StudentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, student)
}

// @Summary Delete student
// @Tags students
// @Security BearerAuth
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.studentService.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, messageResponse{Message: "Student deleted"})
}

// @Summary List technical sheets
// @Tags technical-sheets
// @Produce json
// @Param studentId query string false "Student ID"
// @Success 200 {array} domain.TechnicalSheet
// @Router /api/technical-sheets [get]
func (h *StudentHandler) ListSheets(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	sheets, err := h.sheetService.ListSheets(c.Request.Context(), c.Query("studentId"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, sheets)
}

// @Summary Get technical sheet
// @Tags technical-sheets
// @Produce json
// @Param id path string true "Sheet ID"
// @Success 200 {object} domain.TechnicalSheet
// @Failure 404 {object} errorResponse
// @Router /api/technical-sheets/{id} [get]
func (h *StudentHandler) GetSheet(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	sheet, err := h.sheetService.GetSheetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, sheet)
}

// @Summary Create technical sheet
// @Tags technical-sheets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.SheetInput true "Sheet"
// @Success 201 {object} domain.TechnicalSheet
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/technical-sheets [post]
func (h *StudentHandler) CreateSheet(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req services.SheetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	sheet, err := h.sheetService.CreateSheet(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusCreated, sheet)
}

// @Summary Update technical sheet
// @Tags technical-sheets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Sheet ID"
// @Param request body services.SheetInput true "Fields to change"
// @Success 200 {object} domain.TechnicalSheet
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/technical-sheets/{id} [put]
func (h *StudentHandler) UpdateSheet(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req services.SheetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	sheet, err := h.sheetService.UpdateSheet(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, sheet)
}

// @Summary Delete technical sheet
// @Tags technical-sheets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sheet ID"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/technical-sheets/{id} [delete]
func (h *StudentHandler) DeleteSheet(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.sheetService.DeleteSheet(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, messageResponse{Message: "Technical sheet deleted"})
}
