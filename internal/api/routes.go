package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/pipeline/trigger", handler.TriggerPipeline)
		v1.GET("/pipeline/status", handler.PipelineStatus)
	}
}
