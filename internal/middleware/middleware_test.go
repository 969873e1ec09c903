package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/errors"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	os.Exit(m.Run())
}

func perform(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestErrorMiddlewareMapsAppErrors(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandlerMiddleware())
	r.GET("/conflict", func(c *gin.Context) {
		c.Error(errors.Conflict("already exists"))
	})
	r.GET("/bad", func(c *gin.Context) {
		c.Error(errors.BadRequest("bad input"))
	})

	w := perform(r, "/conflict")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"already exists"}`, w.Body.String())

	w = perform(r, "/bad")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad input"}`, w.Body.String())
}

func TestErrorMiddlewareRecoversPanics(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandlerMiddleware())
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := perform(r, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2)

	r := gin.New()
	r.Use(RateLimitMiddleware(limiter))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// The burst admits two requests, the third is rejected.
	require.Equal(t, http.StatusOK, perform(r, "/ping").Code)
	require.Equal(t, http.StatusOK, perform(r, "/ping").Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, "/ping").Code)
}

func TestIPRateLimiterScopesByIP(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)

	r := gin.New()
	r.Use(RateLimitMiddleware(limiter))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}
