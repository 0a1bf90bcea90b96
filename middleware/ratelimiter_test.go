package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/waatech/merch-backend/middleware"
)

func setupLimitedRouter(r rate.Limit, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/submit", middleware.RateLimitMiddleware(r, burst), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func submitFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BurstExhaustionReturns429(t *testing.T) {
	// Refill so slow the burst is the whole budget.
	router := setupLimitedRouter(rate.Every(time.Hour), 2)

	for i := 0; i < 2; i++ {
		w := submitFrom(router, "203.0.113.7:1234")
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := submitFrom(router, "203.0.113.7:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimit_BudgetIsPerIP(t *testing.T) {
	router := setupLimitedRouter(rate.Every(time.Hour), 1)

	assert.Equal(t, http.StatusOK, submitFrom(router, "203.0.113.7:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, submitFrom(router, "203.0.113.7:1234").Code)

	// A different client still has its full budget.
	assert.Equal(t, http.StatusOK, submitFrom(router, "198.51.100.9:5678").Code)
}
