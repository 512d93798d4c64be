package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 為每個請求附上唯一的X-Request-ID，客戶端已帶上時沿用
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("RequestID", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}
