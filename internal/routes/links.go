package routes

import (
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/handlers"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterLinkRoutes registers link management endpoints under /api
func RegisterLinkRoutes(r gin.IRouter) {
	links := r.Group("/links")
	{
		links.POST("", middleware.CreateRateLimit(), middleware.OptionalAuthMiddleware(), handlers.CreateLink)
		links.GET("", middleware.AuthMiddleware(), handlers.ListLinks)
		links.DELETE("/:id", middleware.AuthMiddleware(), handlers.DeleteLink)
		links.GET("/:code/expand", handlers.ExpandLink)
		links.GET("/:code/stats", handlers.LinkStats)
	}

	bulk := r.Group("/bulk")
	bulk.Use(middleware.CreateRateLimit())
	{
		bulk.POST("", middleware.OptionalAuthMiddleware(), handlers.BulkShorten)
		bulk.POST("/export", handlers.BulkExportCSV)
	}
}
