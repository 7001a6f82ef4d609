package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadlab/inventory-service/internal/services"
	"github.com/leadlab/inventory-service/internal/utils"
)

type StatisticsHandler struct {
	BaseHandler
	statistics services.StatisticsService
	export     services.ExportService
}

func NewStatisticsHandler(statistics services.StatisticsService, export services.ExportService, logger utils.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		BaseHandler: NewBaseHandler(logger),
		statistics:  statistics,
		export:      export,
	}
}

// GetData returns the aggregated statistics for the requested scope.
func (h *StatisticsHandler) GetData(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	req, ok := h.scopeFromQuery(c)
	if !ok {
		return
	}

	data, err := h.statistics.Generate(c.Request.Context(), req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// Download streams the per-user metric export in the requested
// format.
func (h *StatisticsHandler) Download(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	scope, ok := h.scopeFromQuery(c)
	if !ok {
		return
	}

	req := &services.ExportRequest{
		OrganizationID: scope.OrganizationID,
		SessionID:      scope.SessionID,
		Format:         c.DefaultQuery("format", services.ExportFormatXLSX),
	}

	result, err := h.export.Export(c.Request.Context(), req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func (h *StatisticsHandler) scopeFromQuery(c *gin.Context) (*services.StatisticsRequest, bool) {
	organizationID, err := parseUintQuery(c, "organization")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid organization",
			Details: err.Error(),
		})
		return nil, false
	}

	sessionID, err := parseUintQuery(c, "session")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid session",
			Details: err.Error(),
		})
		return nil, false
	}

	return &services.StatisticsRequest{
		OrganizationID: organizationID,
		SessionID:      sessionID,
	}, true
}
