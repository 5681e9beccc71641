package middleware

import (
	"net/http"

	"github.com/jesb1n/immich/internal/config"

	"github.com/gin-gonic/gin"
)

const defaultMaxRequestBodyMB = 2

// BodyLimitMiddleware 限制请求体大小，超出时返回 413
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := config.Get().Limits.MaxRequestBodyMB
		if maxSizeMB <= 0 {
			maxSizeMB = defaultMaxRequestBodyMB
		}
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "请求体过大"})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
