package middleware

import (
	"context"

	"nexora-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware propagates the caller's request id or mints one, and
// stores it together with any :userId path parameter in the request context
// for logging.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIdKey, requestID)
		if userID := c.Param("userId"); userID != "" {
			ctx = context.WithValue(ctx, logger.UserIdKey, userID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
