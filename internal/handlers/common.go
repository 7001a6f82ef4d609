package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadlab/inventory-service/internal/services"
	"github.com/leadlab/inventory-service/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and error mapping for all
// handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.LogError(err, message,
			"status_code", statusCode,
			"method", c.Request.Method,
			"path", c.Request.URL.Path)
	}
	c.JSON(statusCode, ErrorResponse{Message: message})
}

// handleServiceError maps service errors onto HTTP statuses. Invalid
// data selections are forbidden (403); missing aggregate data is a
// plain bad request (400), matching the download contract consumers
// already handle.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs services.ValidationErrors
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: verrs,
		})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: services.ValidationErrors{*verr},
		})
	case errors.Is(err, services.ErrInvalidOrganization),
		errors.Is(err, services.ErrInvalidSession):
		h.RespondWithError(c, http.StatusForbidden, "Invalid data selection.", err)
	case errors.Is(err, services.ErrNoData):
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, services.ErrUnknownInventory):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, services.ErrSubmissionComplete),
		errors.Is(err, services.ErrPageOutOfSequence):
		h.RespondWithError(c, http.StatusConflict, err.Error(), err)
	case services.IsForbidden(err):
		h.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
