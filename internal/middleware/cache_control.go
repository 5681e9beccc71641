package middleware

import "github.com/gin-gonic/gin"

// CacheControl 为响应添加固定的 Cache-Control 头
func CacheControl(value string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if value != "" {
			c.Header("Cache-Control", value)
		}
		c.Next()
	}
}
