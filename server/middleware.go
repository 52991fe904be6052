package server

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fprint/utils"
)

// requestID assigns each request a request ID (honoring an incoming
// X-Request-ID header), echoes it back, and logs start/end — grounded on
// the pack's sidechain backend RequestIDMiddleware, adapted from zap to
// this engine's slog-based logger.
func requestID() gin.HandlerFunc {
	logger := utils.GetLogger()
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)

		logger.Debug("request started", "request_id", id, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Next()
		logger.Debug("request completed", "request_id", id, "status", c.Writer.Status())
	}
}
