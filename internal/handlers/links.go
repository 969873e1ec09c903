package handlers

import (
	"net/http"
	"time"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/services"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/utils"
	"github.com/gin-gonic/gin"
)

// CreateLink handles POST /api/links
func CreateLink(c *gin.Context) {
	var input struct {
		URL         string `json:"url" binding:"required"`
		CustomAlias string `json:"custom_alias"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A url field is required"})
		return
	}

	identityKey, ownerID := identity(c)

	link, err := shortener.Create(c.Request.Context(), identityKey, ownerID, input.URL, input.CustomAlias)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"link":      link,
		"short_url": shortener.ShortURL(link.ShortCode),
	})
}

// ListLinks handles GET /api/links: the caller's links, newest first,
// with dashboard aggregates.
func ListLinks(c *gin.Context) {
	userId := c.GetString("userId")

	links, err := store.ListByOwner(c.Request.Context(), userId)
	if err != nil {
		respondError(c, err)
		return
	}

	var totalClicks int64
	for _, link := range links {
		totalClicks += link.ClickCount
	}

	c.JSON(http.StatusOK, gin.H{
		"links":        links,
		"total_links":  len(links),
		"total_clicks": totalClicks,
	})
}

// DeleteLink handles DELETE /api/links/:id, an owner-scoped hard delete.
func DeleteLink(c *gin.Context) {
	userId := c.GetString("userId")
	id := c.Param("id")
	if !utils.IsUUID(id) {
		respondError(c, services.ErrNotFound)
		return
	}

	link, err := store.GetOwned(c.Request.Context(), id, userId)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := store.Delete(c.Request.Context(), link.ID); err != nil {
		respondError(c, err)
		return
	}
	services.InvalidateDestination(link.ShortCode)

	c.JSON(http.StatusOK, gin.H{"message": "The shortened URL has been deleted."})
}

// ExpandLink handles GET /api/links/:code/expand: the record plus QR
// image for a redirect page. Expansion counts as a visit.
func ExpandLink(c *gin.Context) {
	code := c.Param("code")

	visit := &models.ClickEvent{
		Referer:   c.Request.Referer(),
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
		Timestamp: time.Now(),
	}

	link, err := resolver.Resolve(c.Request.Context(), code, visit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"short_code":   link.ShortCode,
		"original_url": link.OriginalURL,
		"click_count":  link.ClickCount,
		"qr_code":      link.QRCode(),
		"created_at":   link.CreatedAt,
		"short_url":    shortener.ShortURL(link.ShortCode),
	})
}

// LinkStats handles GET /api/links/:code/stats
func LinkStats(c *gin.Context) {
	code := c.Param("code")

	link, err := store.GetByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	totalClicks, err := store.CountClicks(c.Request.Context(), link.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"short_code":   link.ShortCode,
		"original_url": link.OriginalURL,
		"click_count":  link.ClickCount,
		"total_clicks": totalClicks,
		"created_at":   link.CreatedAt,
	})
}
