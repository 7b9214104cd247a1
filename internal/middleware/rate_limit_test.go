package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/profilsaya/backend/internal/testhelpers"
)

func TestRateLimiter(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	ctx := context.Background()

	limiter := NewRateLimiter(client, RateLimitConfig{
		Window:    time.Minute,
		Limit:     2,
		KeyPrefix: "rate_limit:test",
	}, zaptest.NewLogger(t))

	remaining, _, err := limiter.GetRemainingRequests(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	allowed, remaining, reset, err := limiter.IsAllowed(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
	assert.True(t, reset.After(time.Now()))

	allowed, _, _, err = limiter.IsAllowed(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, remaining, _, err = limiter.IsAllowed(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, remaining)

	// other subjects have their own budget
	allowed, _, _, err = limiter.IsAllowed(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	limiter := NewAuthRateLimiter(client, 1, zaptest.NewLogger(t))

	router := gin.New()
	router.POST("/auth/login", limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := send()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	limiter := NewSaveRateLimiter(client, 1, zaptest.NewLogger(t))
	require.NoError(t, client.Close())

	router := gin.New()
	router.POST("/profile/save", limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/profile/save", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}
