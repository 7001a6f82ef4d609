package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadlab/inventory-service/internal/services"
	"github.com/leadlab/inventory-service/internal/utils"
)

type HandlerManager struct {
	inventoryHandler  *InventoryHandler
	statisticsHandler *StatisticsHandler
}

func NewHandlerManager(
	submissions services.SubmissionService,
	statistics services.StatisticsService,
	export services.ExportService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		inventoryHandler:  NewInventoryHandler(submissions, logger),
		statisticsHandler: NewStatisticsHandler(statistics, export, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "inventory-service",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(IdentityMiddleware())
	{
		inventories := v1.Group("/inventories")
		{
			inventories.GET("", hm.inventoryHandler.GetProgress)
			inventories.GET("/:id/page", hm.inventoryHandler.GetPage)
			inventories.POST("/:id/pages", hm.inventoryHandler.SubmitPage)
			inventories.GET("/:id/review", hm.inventoryHandler.Review)
		}

		statistics := v1.Group("/statistics")
		{
			statistics.GET("/data", hm.statisticsHandler.GetData)
			statistics.GET("/download", hm.statisticsHandler.Download)
		}
	}
}

// IdentityMiddleware resolves the caller's identity from the
// X-User-ID header set by the authenticating reverse proxy.
// Authentication itself happens upstream; this service only consumes
// the result.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
