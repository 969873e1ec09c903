package handlers

import (
	"net/http"
	"time"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/gin-gonic/gin"
)

// RedirectShortLink handles GET /:code. The click is tracked through the
// worker channel; a slow or failed increment never delays the redirect.
func RedirectShortLink(c *gin.Context) {
	code := c.Param("code")

	visit := &models.ClickEvent{
		Referer:   c.Request.Referer(),
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
		Timestamp: time.Now(),
	}

	destination, err := resolver.Destination(c.Request.Context(), code, visit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, destination)
}
