package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

const productionKey = "production_mode"

type errorResponse struct {
	Error string `json:"error" example:"boat not found"`
}

type messageResponse struct {
	Message string `json:"message" example:"deleted"`
}

type lockedResponse struct {
	Error       string    `json:"error" example:"boat is reserved"`
	LockedUntil time.Time `json:"lockedUntil"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Error: message})
}

func newSuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// handleError writes the status matching a domain error. Unexpected errors
// keep their message outside production.
func handleError(c *gin.Context, err error) {
	var locked *domain.BoatLockedError
	switch {
	case errors.As(err, &locked):
		c.AbortWithStatusJSON(http.StatusConflict, lockedResponse{Error: "boat is reserved", LockedUntil: locked.LockedUntil})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUpload):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		newErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		newErrorResponse(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		newErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		newErrorResponse(c, http.StatusConflict, err.Error())
	default:
		if c.GetBool(productionKey) {
			newErrorResponse(c, http.StatusInternalServerError, "internal server error")
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

// formUpload returns the file sent under field, or nil when the form has none.
func formUpload(c *gin.Context, field string) (*domain.Upload, func(), error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var file multipart.File
	if file, err = header.Open(); err != nil {
		return nil, nil, err
	}
	return &domain.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, func() { file.Close() }, nil
}
