package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.Health)
	router.GET("/", handler.Index)
	router.GET("/jobs", handler.Jobs)
}
