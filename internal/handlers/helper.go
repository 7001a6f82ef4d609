package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// requireUserID extracts the authenticated user ID placed in the
// context by the identity middleware. Responds 401 when absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return "", false
	}
	return userID.(string), true
}

// parseIntParam parses an integer path parameter. Responds 400 and
// returns false on failure.
func parseIntParam(c *gin.Context, param string) (int, bool) {
	value, err := strconv.Atoi(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: err.Error(),
		})
		return 0, false
	}
	return value, true
}

// parseUintQuery parses an optional unsigned query parameter,
// returning nil when the parameter is absent.
func parseUintQuery(c *gin.Context, name string) (*uint, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	converted := uint(value)
	return &converted, nil
}
