package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"nexora-chat/internal/transport/httpdto"
	"nexora-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery is the catch-all for panics raised by handlers. The panic value
// is only echoed back to the client when debug is set.
func Recovery(l *logger.Logger, debugMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if l != nil {
				l.WithContext(c.Request.Context()).Error("panic recovered",
					zap.Any("error", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.ByteString("stack", debug.Stack()),
				)
			}
			resp := httpdto.NewErrorResponse("Internal server error", "INTERNAL_ERROR")
			if debugMode {
				resp = resp.WithDetail(fmt.Sprintf("%v", r))
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		}()
		c.Next()
	}
}

// ErrorHandler turns errors attached with c.Error into the JSON error
// envelope when the handler did not write a response itself.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.WithContext(c.Request.Context()).Error("request error", zap.Error(err))
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Internal server error", "INTERNAL_ERROR"))
	}
}
