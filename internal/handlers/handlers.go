package handlers

import (
	"errors"
	"net/http"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/config"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/database"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Package-level services, wired once at startup (and again per test setup).
var (
	store     *services.Store
	quota     *services.Quota
	shortener *services.Shortener
	resolver  *services.Resolver
	bulkProc  *services.BulkProcessor
)

// Init wires the handler package against a database and the click-event
// channel feeding the worker pool.
func Init(db *gorm.DB, clicks chan<- models.ClickEvent) {
	cfg := config.AppConfig
	store = services.NewStore(db)
	quota = services.NewQuota()
	shortener = services.NewShortener(store, quota, cfg.BaseURL, cfg.DailyLinkLimit)
	resolver = services.NewResolver(store, clicks, cfg.BaseURL)
	bulkProc = services.NewBulkProcessor(store, quota, cfg.BaseURL, cfg.DailyBulkLimit)
}

// identity returns the quota key for the caller (stable user id when
// authenticated, client IP otherwise) and the owner id to stamp on
// created links (nil for anonymous callers).
func identity(c *gin.Context) (string, *string) {
	if userId, ok := c.Get("userId"); ok {
		id := userId.(string)
		return id, &id
	}
	return c.ClientIP(), nil
}

// respondError maps service errors to HTTP responses with short
// human-readable messages.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidURL),
		errors.Is(err, services.ErrInvalidFormat),
		errors.Is(err, services.ErrInvalidAlias):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAliasTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Alias already exists. Please choose a different custom alias."})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
	case errors.Is(err, services.ErrLimitReached):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Daily limit reached. Try again tomorrow."})
	case errors.Is(err, services.ErrAllocationExhausted):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate a unique link. Please try again."})
	case errors.Is(err, services.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// HealthCheckHandler reports liveness plus the state of the optional
// Redis dependency.
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"redis":  database.RedisAvailable(),
	})
}
