package routes

import (
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/handlers"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints
func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.GET("/me", middleware.AuthMiddleware(), handlers.Me)
}
