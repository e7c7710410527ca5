package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"
	"github.com/clubnautico/club_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService  *services.UserService
	tokenService ports.TokenService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
	production   bool
}

type LoginRequest struct {
	Identifier string `json:"identifier" example:"ana@club.test"`
	Email      string `json:"email,omitempty"`
	DNI        string `json:"dni,omitempty"`
	Password   string `json:"password" example:"secreto1"`
}

type LoginResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type PasswordResetRequest struct {
	Identifier string `json:"identifier" example:"30111222"`
	Email      string `json:"email,omitempty"`
	DNI        string `json:"dni,omitempty"`
}

type PasswordResetResponse struct {
	Message   string     `json:"message"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type ConfirmPasswordRequest struct {
	Token       string `json:"token" example:"9f86d081884c7d65..."`
	NewPassword string `json:"newPassword" example:"nuevo-secreto"`
}

type ChangePasswordRequest struct {
	Identifier      string `json:"identifier" example:"ana@club.test"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func NewUserHandler(
	userService *services.UserService,
	tokenService ports.TokenService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
	production bool,
) *UserHandler {
	return &UserHandler{
		userService:  userService,
		tokenService: tokenService,
		logger:       logger,
		metrics:      metrics,
		production:   production,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// @Summary Login
// @Description Accepts an email or a DNI as identifier
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /api/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.Login(c.Request.Context(), firstNonEmpty(req.Identifier, req.Email, req.DNI), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			newErrorResponse(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		handleError(c, err)
		return
	}

	token, err := h.tokenService.IssueToken(user)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, LoginResponse{User: user, Token: token})
}

// @Summary Request password reset
// @Description Emails a reset link; without a mail relay the token is returned instead
// @Tags users
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Email or DNI"
// @Success 200 {object} PasswordResetResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/users/request-password-change [post]
func (h *UserHandler) RequestPasswordChange(c *gin.Context) {
	h.requestPasswordChange(c, false)
}

// @Summary Request password reset (development)
// @Description Always returns the token. Not available in production.
// @Tags users
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Email or DNI"
// @Success 200 {object} PasswordResetResponse
// @Failure 404 {object} errorResponse
// @Router /api/users/dev-request-password-change [post]
func (h *UserHandler) DevRequestPasswordChange(c *gin.Context) {
	if h.production {
		newErrorResponse(c, http.StatusNotFound, "not found")
		return
	}
	h.requestPasswordChange(c, true)
}

func (h *UserHandler) requestPasswordChange(c *gin.Context, devMode bool) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	reset, err := h.userService.RequestPasswordReset(c.Request.Context(), firstNonEmpty(req.Identifier, req.Email, req.DNI), devMode)
	if err != nil {
		handleError(c, err)
		return
	}

	if reset.Emailed {
		newSuccessResponse(c, http.StatusOK, PasswordResetResponse{Message: "Reset link sent by email"})
		return
	}
	newSuccessResponse(c, http.StatusOK, PasswordResetResponse{
		Message:   "Reset token generated",
		Token:     reset.Token,
		ExpiresAt: &reset.ExpiresAt,
	})
}

// @Summary Confirm password reset
// @Tags users
// @Accept json
// @Produce json
// @Param request body ConfirmPasswordRequest true "Token and new password"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Router /api/users/confirm-password-change [post]
func (h *UserHandler) ConfirmPasswordChange(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req ConfirmPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := h.userService.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, messageResponse{Message: "Password updated"})
}

// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /api/users/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), req.Identifier, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			newErrorResponse(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, messageResponse{Message: "Password updated"})
}

// @Summary List trainers
// @Tags users
// @Produce json
// @Success 200 {array} domain.User
// @Router /api/users/trainers [get]
func (h *UserHandler) ListTrainers(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	trainers, err := h.userService.ListTrainers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, trainers)
}

// @Summary List users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.User
// @Failure 403 {object} errorResponse
// @Router /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, users)
}

// @Summary Get user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, user)
}

// @Summary Create user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.UserInput true "User"
// @Success 201 {object} domain.User
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req domain.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusCreated, user)
}

// @Summary Update user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body domain.UserInput true "Fields to change"
// @Success 200 {object} domain.User
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req domain.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, user)
}

// @Summary Delete user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	newSuccessResponse(c, http.StatusOK, messageResponse{Message: "User deleted"})
}
