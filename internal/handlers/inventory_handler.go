package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadlab/inventory-service/internal/services"
	"github.com/leadlab/inventory-service/internal/utils"
)

type InventoryHandler struct {
	BaseHandler
	submissions services.SubmissionService
}

func NewInventoryHandler(submissions services.SubmissionService, logger utils.Logger) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: NewBaseHandler(logger),
		submissions: submissions,
	}
}

// GetProgress lists every inventory with the user's completion state.
func (h *InventoryHandler) GetProgress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	progress, err := h.submissions.Progress(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetPage returns the page the user should answer next.
func (h *InventoryHandler) GetPage(c *gin.Context) {
	inventoryID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	page, err := h.submissions.GetPage(c.Request.Context(), userID, inventoryID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// SubmitPage saves one page of answers.
func (h *InventoryHandler) SubmitPage(c *gin.Context) {
	inventoryID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.SubmitPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	req.InventoryID = inventoryID

	resp, err := h.submissions.SubmitPage(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Review returns the metrics and presentation of a completed
// submission.
func (h *InventoryHandler) Review(c *gin.Context) {
	inventoryID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	review, err := h.submissions.Review(c.Request.Context(), userID, inventoryID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
