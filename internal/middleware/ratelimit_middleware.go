package middleware

import (
	"net/http"
	"strconv"

	"nexora-chat/internal/ratelimit"
	"nexora-chat/internal/transport/httpdto"
	"nexora-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// KeyFunc extracts the limiting key from a request.
type KeyFunc func(c *gin.Context) string

// ByClientIP limits per remote address under the given scope.
func ByClientIP(scope string) KeyFunc {
	return func(c *gin.Context) string {
		return scope + ":" + c.ClientIP()
	}
}

// ByUserParam limits per :userId path parameter under the given scope.
func ByUserParam(scope string) KeyFunc {
	return func(c *gin.Context) string {
		return scope + ":" + c.Param("userId")
	}
}

// RateLimitMiddleware rejects requests once key has exhausted its window.
// Limiter failures are logged and the request is let through.
func RateLimitMiddleware(limiter ratelimit.Limiter, key KeyFunc, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.Allow(c.Request.Context(), key(c))
		if err != nil {
			if l != nil {
				l.WithContext(c.Request.Context()).Warn("rate limit check failed", zap.Error(err))
			}
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("Rate limit exceeded", "RATE_LIMITED"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *ratelimit.Result) {
	if result.Limit == 0 {
		return
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
