package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// UpgradeMiddleware hands every websocket handshake to connect, whatever the
// path, and stops the chain once the connection is done. Plain requests
// continue to the router.
func UpgradeMiddleware(connect gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !websocket.IsWebSocketUpgrade(c.Request) {
			c.Next()
			return
		}
		connect(c)
		c.Abort()
	}
}
