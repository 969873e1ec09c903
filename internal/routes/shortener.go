package routes

import (
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/handlers"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterShortenerRoutes registers the root redirection route
func RegisterShortenerRoutes(r *gin.Engine) {
	r.GET("/:code", middleware.RedirectRateLimit(), handlers.RedirectShortLink)
}
